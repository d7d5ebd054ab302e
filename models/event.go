package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionEvents = "events"
)

type EventKind string

const (
	EventSubmitted        EventKind = "submitted"
	EventApproved         EventKind = "approved"
	EventRevoked          EventKind = "revoked"
	EventCancelled        EventKind = "cancelled"
	EventExpired          EventKind = "expired"
	EventExecuted         EventKind = "executed"
	EventBatchSubmitted   EventKind = "batch_submitted"
	EventSignerAdded      EventKind = "signer_added"
	EventSignerRemoved    EventKind = "signer_removed"
	EventThresholdChanged EventKind = "threshold_changed"
	EventDeposit          EventKind = "deposit"
	EventWithdrawal       EventKind = "withdrawal"
	EventPauseChanged     EventKind = "pause_changed"
)

// VaultEvent is one emitted fact of the audit log, one per state transition.
// Record-scoped events carry the proposal nonce; set-level events carry -1.
type VaultEvent struct {
	Id         *primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Kind       EventKind           `bson:"kind" json:"kind"`
	Nonce      int64               `bson:"nonce" json:"nonce"`
	Actor      string              `bson:"actor,omitempty" json:"actor,omitempty"`
	Target     string              `bson:"target,omitempty" json:"target,omitempty"`
	Value      string              `bson:"value,omitempty" json:"value,omitempty"`
	Payload    string              `bson:"payload,omitempty" json:"payload,omitempty"`
	Asset      string              `bson:"asset,omitempty" json:"asset,omitempty"`
	Threshold  int64               `bson:"threshold,omitempty" json:"threshold,omitempty"`
	Success    *bool               `bson:"success,omitempty" json:"success,omitempty"`
	Paused     *bool               `bson:"paused,omitempty" json:"paused,omitempty"`
	Recipients []string            `bson:"recipients,omitempty" json:"recipients,omitempty"`
	Amounts    []string            `bson:"amounts,omitempty" json:"amounts,omitempty"`
	ExpiresAt  *time.Time          `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	CreatedAt  time.Time           `bson:"created_at" json:"created_at"`
}
