package app

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/payrolldao/vault-core/models"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	HealthCheckName = "health check"
)

// VaultStatus is the slice of the vault read surface the health poster
// needs; it is satisfied by *vault.Vault.
type VaultStatus interface {
	Nonce() uint64
	SignerCount() int
	Paused() bool
}

type HealthService struct {
	wg           *sync.WaitGroup
	stop         chan bool
	interval     time.Duration
	vaultAddress string
	hostname     string
	vault        VaultStatus

	healthMu sync.RWMutex
	health   models.ServiceHealth
}

func (x *HealthService) Start() {
	log.Info("[HEALTH] Starting service")
	stop := false
	for !stop {
		log.Debug("[HEALTH] Posting health")

		x.PostHealth()

		x.UpdateHealth()

		log.Debug("[HEALTH] Finished health sync, Sleeping for ", x.interval)

		select {
		case <-x.stop:
			stop = true
			log.Info("[HEALTH] Stopped service")
		case <-time.After(x.interval):
		}
	}
	x.wg.Done()
}

func (x *HealthService) Health() models.ServiceHealth {
	x.healthMu.RLock()
	defer x.healthMu.RUnlock()

	return x.health
}

func (x *HealthService) UpdateHealth() {
	x.healthMu.Lock()
	defer x.healthMu.Unlock()

	lastSyncTime := time.Now()

	x.health = models.ServiceHealth{
		Name:         HealthCheckName,
		LastSyncTime: lastSyncTime,
		NextSyncTime: lastSyncTime.Add(x.interval),
		VaultNonce:   strconv.FormatUint(x.vault.Nonce(), 10),
		Healthy:      true,
	}
}

func (x *HealthService) Stop() {
	log.Debug("[HEALTH] Stopping service")
	x.stop <- true
}

// lastPostedHealth reads the most recent health record this instance
// posted, if any.
func (x *HealthService) lastPostedHealth() (models.Health, error) {
	var health models.Health
	filter := bson.M{"vault_address": x.vaultAddress, "hostname": x.hostname}
	err := DB.FindOne(models.CollectionHealthChecks, filter, &health)
	return health, err
}

func (x *HealthService) PostHealth() bool {
	health := models.Health{
		VaultAddress: x.vaultAddress,
		Hostname:     x.hostname,
		VaultNonce:   strconv.FormatUint(x.vault.Nonce(), 10),
		SignerCount:  int64(x.vault.SignerCount()),
		Paused:       x.vault.Paused(),
		CreatedAt:    time.Now(),
	}

	filter := bson.M{"vault_address": health.VaultAddress, "hostname": health.Hostname}
	update := bson.M{"$set": health}

	err := DB.UpsertOne(models.CollectionHealthChecks, filter, update)

	if err != nil {
		log.Error("[HEALTH] Error posting health: ", err)
		return false
	}
	return true
}

func NewHealthCheck(wg *sync.WaitGroup, vault VaultStatus) models.Service {
	log.Debug("[HEALTH] Initializing health")

	hostname, err := os.Hostname()
	if err != nil {
		log.Warn("[HEALTH] Error getting hostname: ", err)
		hostname = "unknown"
	}

	x := &HealthService{
		wg:           wg,
		stop:         make(chan bool),
		interval:     time.Duration(Config.HealthCheck.IntervalMillis) * time.Millisecond,
		vaultAddress: Config.Vault.Address,
		hostname:     hostname,
		vault:        vault,
	}

	if last, err := x.lastPostedHealth(); err == nil {
		log.Info("[HEALTH] Last health posted at ", last.CreatedAt)
	} else {
		log.Debug("[HEALTH] No previous health record: ", err)
	}

	log.Debug("[HEALTH] Initialized health")

	return x
}
