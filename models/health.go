package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionHealthChecks = "healthchecks"
)

type Health struct {
	Id           *primitive.ObjectID `bson:"_id,omitempty"`
	VaultAddress string              `bson:"vault_address"`
	Hostname     string              `bson:"hostname"`
	VaultNonce   string              `bson:"vault_nonce"`
	SignerCount  int64               `bson:"signer_count"`
	Paused       bool                `bson:"paused"`
	CreatedAt    time.Time           `bson:"created_at"`
}
