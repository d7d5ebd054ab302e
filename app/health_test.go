package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/payrolldao/vault-core/models"
)

type fakeDatabase struct {
	Database
	upserts    []interface{}
	upsertErr  error
	lastHealth *models.Health
}

func (d *fakeDatabase) UpsertOne(collection string, filter interface{}, update interface{}) error {
	if d.upsertErr != nil {
		return d.upsertErr
	}
	d.upserts = append(d.upserts, update)
	return nil
}

func (d *fakeDatabase) FindOne(collection string, filter interface{}, result interface{}) error {
	if d.lastHealth == nil {
		return mongo.ErrNoDocuments
	}
	*result.(*models.Health) = *d.lastHealth
	return nil
}

type fakeVaultStatus struct {
	nonce   uint64
	signers int
	paused  bool
}

func (f fakeVaultStatus) Nonce() uint64    { return f.nonce }
func (f fakeVaultStatus) SignerCount() int { return f.signers }
func (f fakeVaultStatus) Paused() bool     { return f.paused }

func TestPostHealth(t *testing.T) {
	t.Run("Posts Current Status", func(t *testing.T) {
		db := &fakeDatabase{}
		DB = db

		x := &HealthService{
			vaultAddress: "0x00000000000000000000000000000000000000FF",
			hostname:     "host-1",
			vault:        fakeVaultStatus{nonce: 7, signers: 3},
		}

		assert.True(t, x.PostHealth())
		assert.Len(t, db.upserts, 1)

		update := db.upserts[0].(bson.M)
		health := update["$set"].(models.Health)
		assert.Equal(t, "7", health.VaultNonce)
		assert.Equal(t, int64(3), health.SignerCount)
		assert.False(t, health.Paused)
	})

	t.Run("Write Failure Reports Unhealthy", func(t *testing.T) {
		db := &fakeDatabase{upsertErr: errors.New("mongo unavailable")}
		DB = db

		x := &HealthService{
			vaultAddress: "0x00000000000000000000000000000000000000FF",
			hostname:     "host-1",
			vault:        fakeVaultStatus{},
		}

		assert.False(t, x.PostHealth())
	})
}

func TestNewHealthCheck(t *testing.T) {
	defer func() { Config = models.Config{} }()
	Config.HealthCheck.IntervalMillis = 1000
	Config.Vault.Address = "0x00000000000000000000000000000000000000FF"

	t.Run("Restores Last Posted Health", func(t *testing.T) {
		posted := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		db := &fakeDatabase{lastHealth: &models.Health{CreatedAt: posted}}
		DB = db

		s := NewHealthCheck(&sync.WaitGroup{}, fakeVaultStatus{nonce: 1, signers: 3})
		assert.NotNil(t, s)
	})

	t.Run("No Previous Health Record", func(t *testing.T) {
		db := &fakeDatabase{}
		DB = db

		s := NewHealthCheck(&sync.WaitGroup{}, fakeVaultStatus{})
		assert.NotNil(t, s)
	})
}

func TestHealthServiceUpdateHealth(t *testing.T) {
	x := &HealthService{
		interval: time.Second,
		vault:    fakeVaultStatus{nonce: 5, signers: 3},
	}

	x.UpdateHealth()
	health := x.Health()

	assert.Equal(t, HealthCheckName, health.Name)
	assert.Equal(t, "5", health.VaultNonce)
	assert.True(t, health.Healthy)
}
