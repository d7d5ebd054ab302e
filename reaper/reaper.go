package reaper

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/payrolldao/vault-core/app"
	"github.com/payrolldao/vault-core/models"
	"github.com/payrolldao/vault-core/vault"
	log "github.com/sirupsen/logrus"
)

const (
	ReaperName = "expiry reaper"

	lockResourceSweep = "expiry-sweep"
)

// ReaperService periodically finalizes stale proposals through the vault's
// public expire operation. The vault itself never expires anything on its
// own; staleness is only acted on by callers like this one.
type ReaperService struct {
	wg       *sync.WaitGroup
	stop     chan bool
	interval time.Duration
	vault    *vault.Vault

	healthMu sync.RWMutex
	health   models.ServiceHealth
}

func (x *ReaperService) Start() {
	log.Info("[REAPER] Starting service")
	stop := false
	for !stop {
		log.Debug("[REAPER] Starting sweep")

		x.SweepExpired()

		x.UpdateHealth()

		log.Debug("[REAPER] Finished sweep, Sleeping for ", x.interval)

		select {
		case <-x.stop:
			stop = true
			log.Info("[REAPER] Stopped service")
		case <-time.After(x.interval):
		}
	}
	x.wg.Done()
}

func (x *ReaperService) Health() models.ServiceHealth {
	x.healthMu.RLock()
	defer x.healthMu.RUnlock()

	return x.health
}

func (x *ReaperService) UpdateHealth() {
	x.healthMu.Lock()
	defer x.healthMu.Unlock()

	lastSyncTime := time.Now()

	x.health = models.ServiceHealth{
		Name:         ReaperName,
		LastSyncTime: lastSyncTime,
		NextSyncTime: lastSyncTime.Add(x.interval),
		VaultNonce:   strconv.FormatUint(x.vault.Nonce(), 10),
		Healthy:      true,
	}
}

func (x *ReaperService) Stop() {
	log.Debug("[REAPER] Stopping service")
	x.stop <- true
}

// SweepExpired scans every assigned nonce and expires the stale ones.
// The sweep runs under an exclusive lock so concurrent instances cannot
// double-act on the same records. Returns the number of records finalized.
func (x *ReaperService) SweepExpired() int {
	if x.vault.Paused() {
		log.Debug("[REAPER] Vault is paused, skipping sweep")
		return 0
	}

	lockId, err := app.DB.XLock(lockResourceSweep)
	if err != nil {
		log.Warn("[REAPER] Could not acquire sweep lock, skipping sweep: ", err)
		return 0
	}
	defer func() {
		if err := app.DB.Unlock(lockId); err != nil {
			log.Error("[REAPER] Error releasing sweep lock: ", err)
		}
	}()

	reaped := 0
	total := x.vault.Nonce()
	for nonce := uint64(0); nonce < total; nonce++ {
		tx, err := x.vault.GetTransaction(nonce)
		if err != nil {
			log.Error("[REAPER] Error fetching transaction ", nonce, ": ", err)
			continue
		}
		if tx.Executed || tx.Cancelled {
			continue
		}
		expired, err := x.vault.IsExpired(nonce)
		if err != nil || !expired {
			continue
		}
		err = x.vault.Expire(nonce)
		if err != nil {
			if errors.Is(err, vault.ErrAlreadyFinalized) || errors.Is(err, vault.ErrNotExpired) {
				continue
			}
			log.Error("[REAPER] Error expiring transaction ", nonce, ": ", err)
			continue
		}
		log.Info("[REAPER] Expired transaction ", nonce)
		reaped++
	}
	return reaped
}

func NewReaper(wg *sync.WaitGroup, v *vault.Vault) models.Service {
	if !app.Config.Reaper.Enabled {
		log.Debug("[REAPER] Service disabled")
		return models.NewEmptyService(wg)
	}

	log.Debug("[REAPER] Initializing service")

	x := &ReaperService{
		wg:       wg,
		stop:     make(chan bool),
		interval: time.Duration(app.Config.Reaper.IntervalMillis) * time.Millisecond,
		vault:    v,
	}

	log.Debug("[REAPER] Initialized service")

	return x
}
