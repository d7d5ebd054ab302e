package vault

import (
	"math/big"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/payrolldao/vault-core/models"
)

const (
	// MaxBatchSize caps the number of payout entries per batch proposal.
	MaxBatchSize = 100

	// ProposalLifetime is the fixed window between submission and expiry.
	ProposalLifetime = 30 * 24 * time.Hour
)

// transaction is one proposal record. Records are append-only: once
// executed or cancelled they never change again. The approval ledger is
// owned exclusively by the record; entries removed from the signer set are
// not compacted out, so an approval recorded by a since-removed signer
// keeps counting toward quorum.
type transaction struct {
	nonce         uint64
	target        common.Address
	value         *big.Int
	payload       []byte
	executed      bool
	cancelled     bool
	approvalCount int
	approvals     map[common.Address]bool
	submittedAt   time.Time
	expiresAt     time.Time
}

func (tx *transaction) finalized() bool {
	return tx.executed || tx.cancelled
}

func (tx *transaction) view() models.Transaction {
	approvals := make([]string, 0, len(tx.approvals))
	for signer, approved := range tx.approvals {
		if approved {
			approvals = append(approvals, signer.Hex())
		}
	}
	sort.Strings(approvals)

	return models.Transaction{
		Nonce:         tx.nonce,
		Target:        tx.target.Hex(),
		Value:         tx.value.String(),
		Payload:       hexutil.Encode(tx.payload),
		Executed:      tx.executed,
		Cancelled:     tx.cancelled,
		ApprovalCount: tx.approvalCount,
		Approvals:     approvals,
		SubmittedAt:   tx.submittedAt,
		ExpiresAt:     tx.expiresAt,
	}
}

// get looks up a record; existence means the nonce has been assigned, not
// that the record is still active. Lock must be held.
func (v *Vault) get(nonce uint64) (*transaction, error) {
	if nonce >= uint64(len(v.txs)) {
		return nil, ErrUnknownTransaction
	}
	return v.txs[nonce], nil
}

// Nonce returns the next identifier to be assigned; every nonce below it
// addresses an existing record.
func (v *Vault) Nonce() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return uint64(len(v.txs))
}

// Exists reports whether a record has been assigned for the nonce.
func (v *Vault) Exists(nonce uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return nonce < uint64(len(v.txs))
}

// GetTransaction returns the full record view for the nonce.
func (v *Vault) GetTransaction(nonce uint64) (models.Transaction, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	tx, err := v.get(nonce)
	if err != nil {
		return models.Transaction{}, err
	}
	return tx.view(), nil
}

// ApprovalCount returns the number of approvals currently held on a record.
func (v *Vault) ApprovalCount(nonce uint64) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	tx, err := v.get(nonce)
	if err != nil {
		return 0, err
	}
	return tx.approvalCount, nil
}

// HasApproved reports whether a signer currently holds an approval on a record.
func (v *Vault) HasApproved(nonce uint64, signer common.Address) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	tx, err := v.get(nonce)
	if err != nil {
		return false, err
	}
	return tx.approvals[signer], nil
}

// IsExpired reports whether the record's expiry window has passed.
func (v *Vault) IsExpired(nonce uint64) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	tx, err := v.get(nonce)
	if err != nil {
		return false, err
	}
	return v.now().After(tx.expiresAt), nil
}

// CanExecute reports whether Execute would be allowed right now.
func (v *Vault) CanExecute(nonce uint64) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	tx, err := v.get(nonce)
	if err != nil {
		return false, err
	}
	return !tx.executed &&
		!tx.cancelled &&
		tx.approvalCount >= v.threshold &&
		!v.now().After(tx.expiresAt) &&
		!v.paused, nil
}
