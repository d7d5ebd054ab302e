package models

import (
	"time"
)

// Transaction is the read-surface view of a proposal record. The approval
// ledger is rendered as the list of addresses that currently hold an
// approval on the record.
type Transaction struct {
	Nonce         uint64    `bson:"nonce" json:"nonce"`
	Target        string    `bson:"target" json:"target"`
	Value         string    `bson:"value" json:"value"`
	Payload       string    `bson:"payload" json:"payload"`
	Executed      bool      `bson:"executed" json:"executed"`
	Cancelled     bool      `bson:"cancelled" json:"cancelled"`
	ApprovalCount int       `bson:"approval_count" json:"approval_count"`
	Approvals     []string  `bson:"approvals" json:"approvals"`
	SubmittedAt   time.Time `bson:"submitted_at" json:"submitted_at"`
	ExpiresAt     time.Time `bson:"expires_at" json:"expires_at"`
}
