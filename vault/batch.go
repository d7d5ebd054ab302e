package vault

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/payrolldao/vault-core/models"
)

// validateBatch checks the payout lists and returns the batch total.
func validateBatch(recipients []common.Address, amounts []*big.Int) (*big.Int, error) {
	if len(recipients) != len(amounts) {
		return nil, ErrLengthMismatch
	}
	if len(recipients) < 1 || len(recipients) > MaxBatchSize {
		return nil, ErrBatchSize
	}

	total := new(big.Int)
	for i, recipient := range recipients {
		if recipient == (common.Address{}) {
			return nil, ErrInvalidTarget
		}
		if amounts[i] == nil || amounts[i].Sign() <= 0 {
			return nil, ErrNonPositiveAmount
		}
		total.Add(total, amounts[i])
	}
	return total, nil
}

// EncodeBatch packs payout lists into a self-targeted command payload.
func EncodeBatch(recipients []common.Address, amounts []*big.Int) ([]byte, error) {
	if _, err := validateBatch(recipients, amounts); err != nil {
		return nil, err
	}
	return encodeCommand(batchTransferSelector, batchTransferArgs, recipients, amounts)
}

// DecodeBatch unpacks a batch command payload back into payout lists.
func DecodeBatch(payload []byte) ([]common.Address, []*big.Int, error) {
	if len(payload) < 4 || !bytes.Equal(payload[:4], batchTransferSelector[:]) {
		return nil, nil, ErrUnknownCommand
	}
	values, err := batchTransferArgs.Unpack(payload[4:])
	if err != nil {
		return nil, nil, err
	}
	recipients, ok := values[0].([]common.Address)
	if !ok {
		return nil, nil, ErrUnknownCommand
	}
	amounts, ok := values[1].([]*big.Int)
	if !ok {
		return nil, nil, ErrUnknownCommand
	}
	return recipients, amounts, nil
}

// SubmitBatch proposes a batched payout. The pooled balance must cover the
// batch total at submission time; the transfers themselves re-check it when
// the proposal executes.
func (v *Vault) SubmitBatch(from common.Address, recipients []common.Address, amounts []*big.Int) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	total, err := validateBatch(recipients, amounts)
	if err != nil {
		return 0, err
	}
	if total.Cmp(v.balance) > 0 {
		return 0, ErrInsufficientBalance
	}

	payload, err := encodeCommand(batchTransferSelector, batchTransferArgs, recipients, amounts)
	if err != nil {
		return 0, err
	}

	nonce, err := v.submit(from, v.address, nil, payload)
	if err != nil {
		return 0, err
	}

	recipientHexes := make([]string, len(recipients))
	amountStrings := make([]string, len(amounts))
	for i := range recipients {
		recipientHexes[i] = recipients[i].Hex()
		amountStrings[i] = amounts[i].String()
	}

	log.Info("[VAULT] Batch of ", len(recipients), " payouts submitted as transaction ", nonce)
	v.emit(models.VaultEvent{
		Kind:       models.EventBatchSubmitted,
		Nonce:      int64(nonce),
		Actor:      from.Hex(),
		Recipients: recipientHexes,
		Amounts:    amountStrings,
	})

	return nonce, nil
}

// batchTransfer pays out each entry in sequence; any single failure rolls
// the whole batch back. Reachable only from the internal command dispatch.
// Lock must be held.
func (v *Vault) batchTransfer(recipients []common.Address, amounts []*big.Int) error {
	total, err := validateBatch(recipients, amounts)
	if err != nil {
		return err
	}
	if total.Cmp(v.balance) > 0 {
		return ErrInsufficientBalance
	}

	snapshot := new(big.Int).Set(v.balance)
	for i := range recipients {
		v.balance.Sub(v.balance, amounts[i])
		if err := v.caller.Call(recipients[i], new(big.Int).Set(amounts[i]), nil); err != nil {
			v.balance.Set(snapshot)
			return fmt.Errorf("transfer to %s failed: %w", recipients[i].Hex(), err)
		}
	}

	for i := range recipients {
		log.Info("[VAULT] Paid out ", amounts[i], " to ", recipients[i].Hex())
		v.emit(models.VaultEvent{
			Kind:   models.EventWithdrawal,
			Nonce:  -1,
			Target: recipients[i].Hex(),
			Value:  amounts[i].String(),
			Asset:  v.asset,
		})
	}
	return nil
}

// withdraw pays out a single recipient. Reachable only from the internal
// command dispatch. Lock must be held.
func (v *Vault) withdraw(recipient common.Address, amount *big.Int) error {
	if recipient == (common.Address{}) {
		return ErrInvalidTarget
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrNonPositiveAmount
	}
	if amount.Cmp(v.balance) > 0 {
		return ErrInsufficientBalance
	}

	snapshot := new(big.Int).Set(v.balance)
	v.balance.Sub(v.balance, amount)
	if err := v.caller.Call(recipient, new(big.Int).Set(amount), nil); err != nil {
		v.balance.Set(snapshot)
		return fmt.Errorf("transfer to %s failed: %w", recipient.Hex(), err)
	}

	log.Info("[VAULT] Withdrew ", amount, " to ", recipient.Hex())
	v.emit(models.VaultEvent{
		Kind:   models.EventWithdrawal,
		Nonce:  -1,
		Target: recipient.Hex(),
		Value:  amount.String(),
		Asset:  v.asset,
	})
	return nil
}
