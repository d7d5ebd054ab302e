package vault

import (
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/payrolldao/vault-core/models"
)

// Signers returns a copy of the current signer sequence.
func (v *Vault) Signers() []common.Address {
	v.mu.Lock()
	defer v.mu.Unlock()
	signers := make([]common.Address, len(v.signers))
	copy(signers, v.signers)
	return signers
}

// SignerCount returns the current signer set size.
func (v *Vault) SignerCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.signers)
}

// IsSigner reports whether an address is currently authorized.
func (v *Vault) IsSigner(addr common.Address) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.isSigner[addr]
}

// Threshold returns the current quorum threshold.
func (v *Vault) Threshold() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.threshold
}

// The three mutators below are reachable only from the internal command
// dispatch of the execute path: changing the signer set or threshold
// itself requires quorum. Lock is held by the caller.

func (v *Vault) addSigner(addr common.Address) error {
	if addr == (common.Address{}) {
		return ErrInvalidTarget
	}
	if v.isSigner[addr] {
		return ErrDuplicateSigner
	}

	v.signerIndex[addr] = len(v.signers)
	v.isSigner[addr] = true
	v.signers = append(v.signers, addr)

	log.Info("[VAULT] Signer added: ", addr.Hex())
	v.emit(models.VaultEvent{
		Kind:  models.EventSignerAdded,
		Nonce: -1,
		Actor: addr.Hex(),
	})
	return nil
}

// removeSigner swaps the removed entry with the last element to keep the
// sequence dense, shrinks it, and purges the signer's pause-vote
// participation.
func (v *Vault) removeSigner(addr common.Address) error {
	if !v.isSigner[addr] {
		return ErrUnknownSigner
	}
	if len(v.signers) == 1 {
		return ErrLastSignerProtected
	}
	if v.threshold > len(v.signers)-1 {
		return ErrInvalidThreshold
	}

	idx := v.signerIndex[addr]
	last := len(v.signers) - 1
	moved := v.signers[last]
	v.signers[idx] = moved
	v.signerIndex[moved] = idx
	v.signers = v.signers[:last]
	delete(v.signerIndex, addr)
	delete(v.isSigner, addr)

	if v.votedToPause[addr] {
		delete(v.votedToPause, addr)
		v.pauseVotes--
	}

	log.Info("[VAULT] Signer removed: ", addr.Hex())
	v.emit(models.VaultEvent{
		Kind:  models.EventSignerRemoved,
		Nonce: -1,
		Actor: addr.Hex(),
	})
	return nil
}

func (v *Vault) setThreshold(n int) error {
	if n < 1 || n > len(v.signers) {
		return ErrInvalidThreshold
	}

	v.threshold = n

	log.Info("[VAULT] Threshold changed: ", n)
	v.emit(models.VaultEvent{
		Kind:      models.EventThresholdChanged,
		Nonce:     -1,
		Threshold: int64(n),
	})
	return nil
}
