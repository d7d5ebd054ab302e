package vault

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestVoteToPause(t *testing.T) {
	t.Run("Majority Engages Pause", func(t *testing.T) {
		// 3 signers, majority bound = 2.
		v := newTestVault(t, threeSigners(), 2)

		assert.Nil(t, v.VoteToPause(signerA))
		assert.False(t, v.Paused())
		assert.Equal(t, 1, v.PauseVoteCount())

		assert.Nil(t, v.VoteToPause(signerB))
		assert.True(t, v.Paused())
		assert.Equal(t, 2, v.PauseVoteCount())
	})

	t.Run("Majority Bound With Five Signers", func(t *testing.T) {
		// floor(5/2) + 1 = 3.
		v := newTestVault(t, fiveSigners(), 2)

		assert.Nil(t, v.VoteToPause(signerA))
		assert.Nil(t, v.VoteToPause(signerB))
		assert.False(t, v.Paused())

		assert.Nil(t, v.VoteToPause(signerC))
		assert.True(t, v.Paused())
	})

	t.Run("Already Voted", func(t *testing.T) {
		v := newTestVault(t, fiveSigners(), 2)
		assert.Nil(t, v.VoteToPause(signerA))

		err := v.VoteToPause(signerA)

		assert.Equal(t, ErrAlreadyVoted, err)
	})

	t.Run("Already Paused", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		assert.Nil(t, v.VoteToPause(signerA))
		assert.Nil(t, v.VoteToPause(signerB))

		err := v.VoteToPause(signerC)

		assert.Equal(t, ErrAlreadyPaused, err)
	})

	t.Run("Non Signer", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)

		err := v.VoteToPause(outsider)

		assert.Equal(t, ErrUnauthorized, err)
	})
}

func TestPauseGatesMutations(t *testing.T) {
	v := newTestVault(t, threeSigners(), 2)
	assert.Nil(t, v.Deposit(outsider, big.NewInt(1000)))
	nonce, _ := v.Submit(signerA, targetAddr, big.NewInt(0), []byte{0x01})

	assert.Nil(t, v.VoteToPause(signerA))
	assert.Nil(t, v.VoteToPause(signerB))
	assert.True(t, v.Paused())

	_, err := v.Submit(signerC, targetAddr, big.NewInt(0), []byte{0x01})
	assert.Equal(t, ErrContractPaused, err)

	assert.Equal(t, ErrContractPaused, v.Approve(signerC, nonce))
	assert.Equal(t, ErrContractPaused, v.Revoke(signerA, nonce))
	assert.Equal(t, ErrContractPaused, v.Cancel(signerA, nonce))
	assert.Equal(t, ErrContractPaused, v.Expire(nonce))
	assert.Equal(t, ErrContractPaused, v.Execute(outsider, nonce))
	assert.Equal(t, ErrContractPaused, v.Deposit(outsider, big.NewInt(1)))

	_, err = v.SubmitBatch(signerC, []common.Address{payee1}, []*big.Int{big.NewInt(1)})
	assert.Equal(t, ErrContractPaused, err)

	// read surface stays open
	assert.Equal(t, uint64(1), v.Nonce())
	count, err := v.ApprovalCount(nonce)
	assert.Nil(t, err)
	assert.Equal(t, 1, count)
}

func TestVoteToUnpause(t *testing.T) {
	t.Run("Dropping Below Bound Clears Pause And Resets Votes", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		assert.Nil(t, v.VoteToPause(signerA))
		assert.Nil(t, v.VoteToPause(signerB))
		assert.True(t, v.Paused())

		assert.Nil(t, v.VoteToUnpause(signerB))

		assert.False(t, v.Paused())
		assert.Equal(t, 0, v.PauseVoteCount())

		// signerA's vote flag was reset too
		err := v.VoteToUnpause(signerA)
		assert.Equal(t, ErrNotVoted, err)

		assert.Nil(t, v.VoteToPause(signerA))
		assert.Equal(t, 1, v.PauseVoteCount())
	})

	t.Run("Unvote Before Pause Engaged", func(t *testing.T) {
		v := newTestVault(t, fiveSigners(), 2)
		assert.Nil(t, v.VoteToPause(signerA))
		assert.Nil(t, v.VoteToPause(signerB))

		assert.Nil(t, v.VoteToUnpause(signerA))

		assert.Equal(t, 1, v.PauseVoteCount())
		assert.False(t, v.Paused())

		// signerB's standing vote survives a partial unvote
		err := v.VoteToPause(signerB)
		assert.Equal(t, ErrAlreadyVoted, err)
	})

	t.Run("Not Voted", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)

		err := v.VoteToUnpause(signerA)

		assert.Equal(t, ErrNotVoted, err)
	})

	t.Run("Allowed While Paused", func(t *testing.T) {
		v := newTestVault(t, threeSigners(), 2)
		assert.Nil(t, v.VoteToPause(signerA))
		assert.Nil(t, v.VoteToPause(signerB))
		assert.True(t, v.Paused())

		err := v.VoteToUnpause(signerA)

		assert.Nil(t, err)
		assert.False(t, v.Paused())
	})
}
