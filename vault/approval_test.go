package vault

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/payrolldao/vault-core/models"
)

func TestSubmit(t *testing.T) {
	t.Run("Auto Approves Submitter", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)

		nonce, err := v.Submit(signerA, targetAddr, big.NewInt(10), []byte{0x01})

		assert.Nil(t, err)
		assert.Equal(t, uint64(0), nonce)
		assert.Equal(t, uint64(1), v.Nonce())
		assert.True(t, v.Exists(nonce))

		count, err := v.ApprovalCount(nonce)
		assert.Nil(t, err)
		assert.Equal(t, 1, count)

		approved, err := v.HasApproved(nonce, signerA)
		assert.Nil(t, err)
		assert.True(t, approved)

		assert.Equal(t, []models.EventKind{models.EventSubmitted, models.EventApproved}, v.sink.kinds())
	})

	t.Run("Assigns Expiry Window", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)

		nonce, err := v.Submit(signerA, targetAddr, nil, []byte{0x01})
		assert.Nil(t, err)

		tx, err := v.GetTransaction(nonce)
		assert.Nil(t, err)
		assert.Equal(t, tx.SubmittedAt.Add(ProposalLifetime), tx.ExpiresAt)
	})

	t.Run("Rejects Non Signer", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)

		_, err := v.Submit(outsider, targetAddr, big.NewInt(10), []byte{0x01})

		assert.Equal(t, ErrUnauthorized, err)
		assert.Equal(t, uint64(0), v.Nonce())
	})

	t.Run("Rejects Zero Target", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)

		_, err := v.Submit(signerA, zeroAddress(), big.NewInt(10), []byte{0x01})

		assert.Equal(t, ErrInvalidTarget, err)
	})

	t.Run("Rejects Empty Operation", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)

		_, err := v.Submit(signerA, targetAddr, nil, nil)

		assert.Equal(t, ErrEmptyOperation, err)
	})

	t.Run("Value Only Operation Allowed", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)

		_, err := v.Submit(signerA, targetAddr, big.NewInt(10), nil)

		assert.Nil(t, err)
	})
}

func TestApprove(t *testing.T) {
	t.Run("Second Approval Reaches Quorum", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})

		err := v.Approve(signerB, nonce)

		assert.Nil(t, err)
		count, _ := v.ApprovalCount(nonce)
		assert.Equal(t, 2, count)

		can, err := v.CanExecute(nonce)
		assert.Nil(t, err)
		assert.True(t, can)
	})

	t.Run("Already Approved", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})

		err := v.Approve(signerA, nonce)

		assert.Equal(t, ErrAlreadyApproved, err)
	})

	t.Run("Unknown Transaction", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)

		err := v.Approve(signerA, 7)

		assert.Equal(t, ErrUnknownTransaction, err)
	})

	t.Run("Non Signer", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})

		err := v.Approve(outsider, nonce)

		assert.Equal(t, ErrUnauthorized, err)
	})

	t.Run("Expired Record", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})

		v.clock.Advance(ProposalLifetime + time.Second)
		err := v.Approve(signerB, nonce)

		assert.Equal(t, ErrTransactionExpired, err)
	})
}

func TestRevoke(t *testing.T) {
	t.Run("Clears Ledger Entry", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})
		assert.Nil(t, v.Approve(signerB, nonce))

		err := v.Revoke(signerB, nonce)

		assert.Nil(t, err)
		count, _ := v.ApprovalCount(nonce)
		assert.Equal(t, 1, count)
		approved, _ := v.HasApproved(nonce, signerB)
		assert.False(t, approved)
	})

	t.Run("Not Approved", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})

		err := v.Revoke(signerB, nonce)

		assert.Equal(t, ErrNotApproved, err)
	})

	t.Run("Approve After Revoke", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})
		assert.Nil(t, v.Approve(signerB, nonce))
		assert.Nil(t, v.Revoke(signerB, nonce))

		err := v.Approve(signerB, nonce)

		assert.Nil(t, err)
		count, _ := v.ApprovalCount(nonce)
		assert.Equal(t, 2, count)
	})
}

func TestCancel(t *testing.T) {
	t.Run("Submitter Cancels", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})

		err := v.Cancel(signerA, nonce)

		assert.Nil(t, err)
		tx, _ := v.GetTransaction(nonce)
		assert.True(t, tx.Cancelled)
		assert.Equal(t, 1, tx.ApprovalCount)
	})

	t.Run("Any Approver Cancels Before Expiry", func(t *testing.T) {
		// Any party currently holding an approval may cancel, not only the
		// original submitter.
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})
		assert.Nil(t, v.Approve(signerB, nonce))

		err := v.Cancel(signerB, nonce)

		assert.Nil(t, err)
	})

	t.Run("Non Approver Cannot Cancel Before Expiry", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})

		err := v.Cancel(signerC, nonce)

		assert.Equal(t, ErrNotApproved, err)
	})

	t.Run("Any Signer Cancels After Expiry", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})

		v.clock.Advance(ProposalLifetime + time.Second)
		err := v.Cancel(signerC, nonce)

		assert.Nil(t, err)
	})

	t.Run("Already Finalized", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})
		assert.Nil(t, v.Cancel(signerA, nonce))

		err := v.Cancel(signerA, nonce)

		assert.Equal(t, ErrAlreadyFinalized, err)
	})
}

func TestExpire(t *testing.T) {
	t.Run("Not Yet Expired", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})

		err := v.Expire(nonce)

		assert.Equal(t, ErrNotExpired, err)
	})

	t.Run("Exactly At Expiry Is Not Expired", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})

		v.clock.Advance(ProposalLifetime)
		err := v.Expire(nonce)

		assert.Equal(t, ErrNotExpired, err)
	})

	t.Run("Past Expiry", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})

		v.clock.Advance(ProposalLifetime + time.Second)
		err := v.Expire(nonce)

		assert.Nil(t, err)
		tx, _ := v.GetTransaction(nonce)
		assert.True(t, tx.Cancelled)
		assert.False(t, tx.Executed)

		expired, _ := v.IsExpired(nonce)
		assert.True(t, expired)
	})

	t.Run("Already Finalized", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})
		v.clock.Advance(ProposalLifetime + time.Second)
		assert.Nil(t, v.Expire(nonce))

		err := v.Expire(nonce)

		assert.Equal(t, ErrAlreadyFinalized, err)
	})
}
