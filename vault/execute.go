package vault

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/payrolldao/vault-core/models"
)

// Execute finalizes a quorum-reached record and forwards its call. Callable
// by anyone. The executed flag is committed before the call is forwarded so
// a reentrant attempt cannot re-execute the record; if the forwarded call
// fails, every effect including that flag is rolled back and the record
// stays eligible for a later retry.
func (v *Vault) Execute(from common.Address, nonce uint64) error {
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
	if v.now().After(tx.expiresAt) {
		return ErrTransactionExpired
	}
	if tx.approvalCount < v.threshold {
		return ErrInsufficientApprovals
	}
	if tx.target != v.address && tx.value.Cmp(v.balance) > 0 {
		return ErrInsufficientBalance
	}

	tx.executed = true
	v.inCall = true

	var execErr error
	if tx.target == v.address {
		execErr = v.dispatchCommand(tx.payload)
	} else {
		execErr = v.forward(tx)
	}

	v.inCall = false

	if execErr != nil {
		tx.executed = false
		success := false
		log.Error("[VAULT] Transaction ", nonce, " execution failed: ", execErr)
		v.emit(models.VaultEvent{
			Kind:    models.EventExecuted,
			Nonce:   int64(nonce),
			Actor:   from.Hex(),
			Success: &success,
		})
		return fmt.Errorf("%w: %w", ErrExecutionFailed, execErr)
	}

	success := true
	log.Info("[VAULT] Transaction ", nonce, " executed by ", from.Hex())
	v.emit(models.VaultEvent{
		Kind:    models.EventExecuted,
		Nonce:   int64(nonce),
		Actor:   from.Hex(),
		Success: &success,
	})
	return nil
}

// forward hands the call to the external caller, releasing the lock for the
// duration so a reentrant mutating call trips the in-flight latch instead
// of deadlocking. Debited value is restored on failure.
func (v *Vault) forward(tx *transaction) error {
	if tx.value.Sign() > 0 {
		v.balance.Sub(v.balance, tx.value)
	}

	target := tx.target
	value := new(big.Int).Set(tx.value)
	payload := append([]byte(nil), tx.payload...)

	v.mu.Unlock()
	err := v.caller.Call(target, value, payload)
	v.mu.Lock()

	if err != nil {
		if tx.value.Sign() > 0 {
			v.balance.Add(v.balance, tx.value)
		}
		return err
	}
	return nil
}

// dispatchCommand routes a self-targeted payload to the privileged mutator
// its selector tags. Each command validates before it mutates, so a failed
// command leaves no partial state behind. Lock must be held.
func (v *Vault) dispatchCommand(payload []byte) error {
	if len(payload) < 4 {
		return ErrUnknownCommand
	}
	var sel [4]byte
	copy(sel[:], payload[:4])
	data := payload[4:]

	switch sel {
	case addSignerSelector:
		values, err := addSignerArgs.Unpack(data)
		if err != nil {
			return err
		}
		return v.addSigner(values[0].(common.Address))

	case removeSignerSelector:
		values, err := removeSignerArgs.Unpack(data)
		if err != nil {
			return err
		}
		return v.removeSigner(values[0].(common.Address))

	case setThresholdSelector:
		values, err := setThresholdArgs.Unpack(data)
		if err != nil {
			return err
		}
		threshold := values[0].(*big.Int)
		if !threshold.IsInt64() || threshold.Int64() > int64(len(v.signers)) {
			return ErrInvalidThreshold
		}
		return v.setThreshold(int(threshold.Int64()))

	case batchTransferSelector:
		values, err := batchTransferArgs.Unpack(data)
		if err != nil {
			return err
		}
		return v.batchTransfer(values[0].([]common.Address), values[1].([]*big.Int))

	case withdrawSelector:
		values, err := withdrawArgs.Unpack(data)
		if err != nil {
			return err
		}
		return v.withdraw(values[0].(common.Address), values[1].(*big.Int))

	default:
		return ErrUnknownCommand
	}
}
