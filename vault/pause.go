package vault

import (
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/payrolldao/vault-core/models"
)

// majorityBound is the pause circuit-breaker threshold: a strict majority
// of the current signer set, independent of the approval threshold.
func (v *Vault) majorityBound() int {
	return len(v.signers)/2 + 1
}

// Paused reports whether the circuit breaker is engaged.
func (v *Vault) Paused() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.paused
}

// PauseVoteCount returns the number of standing pause votes.
func (v *Vault) PauseVoteCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pauseVotes
}

// VoteToPause records the caller's pause vote; once a strict majority of
// signers have voted, the vault pauses.
func (v *Vault) VoteToPause(from common.Address) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.inCall {
		return ErrReentrantCall
	}
	if !v.isSigner[from] {
		return ErrUnauthorized
	}
	if v.paused {
		return ErrAlreadyPaused
	}
	if v.votedToPause[from] {
		return ErrAlreadyVoted
	}

	v.votedToPause[from] = true
	v.pauseVotes++

	log.Info("[VAULT] Pause vote by ", from.Hex(), " (", v.pauseVotes, "/", v.majorityBound(), ")")

	if v.pauseVotes >= v.majorityBound() {
		v.paused = true
		paused := true
		log.Warn("[VAULT] Vault paused")
		v.emit(models.VaultEvent{
			Kind:   models.EventPauseChanged,
			Nonce:  -1,
			Actor:  from.Hex(),
			Paused: &paused,
		})
	}
	return nil
}

// VoteToUnpause withdraws the caller's pause vote. Once the standing votes
// drop below the majority bound the pause clears and every vote flag is
// reset, not just the caller's.
func (v *Vault) VoteToUnpause(from common.Address) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.inCall {
		return ErrReentrantCall
	}
	if !v.isSigner[from] {
		return ErrUnauthorized
	}
	if !v.votedToPause[from] {
		return ErrNotVoted
	}

	delete(v.votedToPause, from)
	v.pauseVotes--

	log.Info("[VAULT] Pause vote withdrawn by ", from.Hex(), " (", v.pauseVotes, "/", v.majorityBound(), ")")

	if v.paused && v.pauseVotes < v.majorityBound() {
		v.paused = false
		v.pauseVotes = 0
		v.votedToPause = make(map[common.Address]bool)
		paused := false
		log.Warn("[VAULT] Vault unpaused")
		v.emit(models.VaultEvent{
			Kind:   models.EventPauseChanged,
			Nonce:  -1,
			Actor:  from.Hex(),
			Paused: &paused,
		})
	}
	return nil
}
