package vault

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	log "github.com/sirupsen/logrus"

	"github.com/payrolldao/vault-core/models"
)

// Submit creates a proposal forwarding value and payload to target once
// quorum is reached. The submitter must be a signer and is auto-approved,
// so the new record starts with one approval. Returns the assigned nonce.
func (v *Vault) Submit(from common.Address, target common.Address, value *big.Int, payload []byte) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.submit(from, target, value, payload)
}

func (v *Vault) submit(from common.Address, target common.Address, value *big.Int, payload []byte) (uint64, error) {
	if v.inCall {
		return 0, ErrReentrantCall
	}
	if v.paused {
		return 0, ErrContractPaused
	}
	if !v.isSigner[from] {
		return 0, ErrUnauthorized
	}
	if target == (common.Address{}) {
		return 0, ErrInvalidTarget
	}
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() < 0 {
		return 0, ErrNonPositiveAmount
	}
	if len(payload) == 0 && value.Sign() == 0 {
		return 0, ErrEmptyOperation
	}

	nonce := uint64(len(v.txs))
	submittedAt := v.now()
	tx := &transaction{
		nonce:       nonce,
		target:      target,
		value:       new(big.Int).Set(value),
		payload:     append([]byte(nil), payload...),
		approvals:   make(map[common.Address]bool),
		submittedAt: submittedAt,
		expiresAt:   submittedAt.Add(ProposalLifetime),
	}
	v.txs = append(v.txs, tx)

	log.Info("[VAULT] Transaction ", nonce, " submitted by ", from.Hex(), " targeting ", target.Hex())
	expiresAt := tx.expiresAt
	v.emit(models.VaultEvent{
		Kind:      models.EventSubmitted,
		Nonce:     int64(nonce),
		Actor:     from.Hex(),
		Target:    target.Hex(),
		Value:     value.String(),
		Payload:   hexutil.Encode(tx.payload),
		ExpiresAt: &expiresAt,
	})

	v.recordApproval(from, tx)

	return nonce, nil
}

// recordApproval adds one ledger entry; preconditions are checked by the
// caller. Lock must be held.
func (v *Vault) recordApproval(from common.Address, tx *transaction) {
	tx.approvals[from] = true
	tx.approvalCount++

	log.Info("[VAULT] Transaction ", tx.nonce, " approved by ", from.Hex(), " (", tx.approvalCount, "/", v.threshold, ")")
	v.emit(models.VaultEvent{
		Kind:  models.EventApproved,
		Nonce: int64(tx.nonce),
		Actor: from.Hex(),
	})
}

// Approve records the caller's approval on a pending, unexpired record.
func (v *Vault) Approve(from common.Address, nonce uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.inCall {
		return ErrReentrantCall
	}
	if v.paused {
		return ErrContractPaused
	}
	if !v.isSigner[from] {
		return ErrUnauthorized
	}
	tx, err := v.get(nonce)
	if err != nil {
		return err
	}
	if tx.finalized() {
		return ErrAlreadyFinalized
	}
	if v.now().After(tx.expiresAt) {
		return ErrTransactionExpired
	}
	if tx.approvals[from] {
		return ErrAlreadyApproved
	}

	v.recordApproval(from, tx)
	return nil
}

// Revoke withdraws the caller's earlier approval.
func (v *Vault) Revoke(from common.Address, nonce uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.inCall {
		return ErrReentrantCall
	}
	if v.paused {
		return ErrContractPaused
	}
	if !v.isSigner[from] {
		return ErrUnauthorized
	}
	tx, err := v.get(nonce)
	if err != nil {
		return err
	}
	if tx.finalized() {
		return ErrAlreadyFinalized
	}
	if v.now().After(tx.expiresAt) {
		return ErrTransactionExpired
	}
	if !tx.approvals[from] {
		return ErrNotApproved
	}

	delete(tx.approvals, from)
	tx.approvalCount--

	log.Info("[VAULT] Transaction ", nonce, " approval revoked by ", from.Hex(), " (", tx.approvalCount, "/", v.threshold, ")")
	v.emit(models.VaultEvent{
		Kind:  models.EventRevoked,
		Nonce: int64(nonce),
		Actor: from.Hex(),
	})
	return nil
}

// Cancel finalizes a record without executing it. Before expiry only a
// party currently holding an approval on the record may cancel; after
// expiry any signer may, so stale records cannot wedge.
func (v *Vault) Cancel(from common.Address, nonce uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.inCall {
		return ErrReentrantCall
	}
	if v.paused {
		return ErrContractPaused
	}
	if !v.isSigner[from] {
		return ErrUnauthorized
	}
	tx, err := v.get(nonce)
	if err != nil {
		return err
	}
	if tx.finalized() {
		return ErrAlreadyFinalized
	}
	if !v.now().After(tx.expiresAt) && !tx.approvals[from] {
		return ErrNotApproved
	}

	tx.cancelled = true

	log.Info("[VAULT] Transaction ", nonce, " cancelled by ", from.Hex())
	v.emit(models.VaultEvent{
		Kind:  models.EventCancelled,
		Nonce: int64(nonce),
		Actor: from.Hex(),
	})
	return nil
}

// Expire finalizes a record whose window has passed. Callable by anyone;
// reuses the cancelled terminal state.
func (v *Vault) Expire(nonce uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.inCall {
		return ErrReentrantCall
	}
	if v.paused {
		return ErrContractPaused
	}
	tx, err := v.get(nonce)
	if err != nil {
		return err
	}
	if tx.finalized() {
		return ErrAlreadyFinalized
	}
	if !v.now().After(tx.expiresAt) {
		return ErrNotExpired
	}

	tx.cancelled = true

	log.Info("[VAULT] Transaction ", nonce, " expired")
	v.emit(models.VaultEvent{
		Kind:  models.EventExpired,
		Nonce: int64(nonce),
	})
	return nil
}
