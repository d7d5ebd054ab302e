package journal

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/payrolldao/vault-core/app"
	"github.com/payrolldao/vault-core/models"
	log "github.com/sirupsen/logrus"
)

// Journal persists every emitted vault fact into the events collection.
// A failed write is logged and dropped: the audit trail is best-effort and
// must never fail the state transition that produced the event.
type Journal struct{}

func NewJournal() *Journal {
	return &Journal{}
}

func (j *Journal) Record(event models.VaultEvent) {
	err := app.DB.InsertOne(models.CollectionEvents, event)
	if err != nil {
		log.Error("[JOURNAL] Error recording event: ", err)
		return
	}
	log.Debug("[JOURNAL] Recorded event: ", event.Kind, " nonce ", event.Nonce)
}

// EventsForTransaction returns the recorded audit trail for one proposal.
// The read runs under a shared lock so it cannot interleave with an
// exclusive writer holding the collection.
func (j *Journal) EventsForTransaction(nonce int64) ([]models.VaultEvent, error) {
	lockId, err := app.DB.SLock(models.CollectionEvents)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := app.DB.Unlock(lockId); err != nil {
			log.Error("[JOURNAL] Error releasing lock: ", err)
		}
	}()

	var events []models.VaultEvent
	if err := app.DB.FindMany(models.CollectionEvents, bson.M{"nonce": nonce}, &events); err != nil {
		return nil, err
	}
	return events, nil
}
