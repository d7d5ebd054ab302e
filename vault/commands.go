package vault

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Privileged operations are encoded as self-targeted payloads: ABI calldata
// whose 4-byte selector tags the command. The execute path decodes the tag
// and dispatches the unexported mutator directly, so privileged state is
// only reachable through the same quorum path as any other proposal.

func mustNewType(t string) abi.Type {
	ty, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return ty
}

var (
	addressType   = mustNewType("address")
	uint256Type   = mustNewType("uint256")
	addressesType = mustNewType("address[]")
	uint256sType  = mustNewType("uint256[]")
)

var (
	addSignerArgs     = abi.Arguments{{Name: "signer", Type: addressType}}
	removeSignerArgs  = abi.Arguments{{Name: "signer", Type: addressType}}
	setThresholdArgs  = abi.Arguments{{Name: "threshold", Type: uint256Type}}
	batchTransferArgs = abi.Arguments{{Name: "recipients", Type: addressesType}, {Name: "amounts", Type: uint256sType}}
	withdrawArgs      = abi.Arguments{{Name: "recipient", Type: addressType}, {Name: "amount", Type: uint256Type}}
)

func selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

var (
	addSignerSelector     = selector("addSigner(address)")
	removeSignerSelector  = selector("removeSigner(address)")
	setThresholdSelector  = selector("setThreshold(uint256)")
	batchTransferSelector = selector("batchTransfer(address[],uint256[])")
	withdrawSelector      = selector("withdraw(address,uint256)")
)

func encodeCommand(sel [4]byte, args abi.Arguments, values ...interface{}) ([]byte, error) {
	packed, err := args.Pack(values...)
	if err != nil {
		return nil, err
	}
	return append(sel[:], packed...), nil
}

// SubmitAddSigner proposes adding a signer; the addition only happens once
// the proposal reaches quorum and is executed.
func (v *Vault) SubmitAddSigner(from common.Address, signer common.Address) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if signer == (common.Address{}) {
		return 0, ErrInvalidTarget
	}
	if v.isSigner[signer] {
		return 0, ErrDuplicateSigner
	}

	payload, err := encodeCommand(addSignerSelector, addSignerArgs, signer)
	if err != nil {
		return 0, err
	}
	return v.submit(from, v.address, nil, payload)
}

// SubmitRemoveSigner proposes removing a signer. Membership is re-validated
// at execute time.
func (v *Vault) SubmitRemoveSigner(from common.Address, signer common.Address) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.isSigner[signer] {
		return 0, ErrUnknownSigner
	}
	if len(v.signers) == 1 {
		return 0, ErrLastSignerProtected
	}

	payload, err := encodeCommand(removeSignerSelector, removeSignerArgs, signer)
	if err != nil {
		return 0, err
	}
	return v.submit(from, v.address, nil, payload)
}

// SubmitSetThreshold proposes a new quorum threshold. Bounds are checked
// against the signer set both now and again at execute time, since the set
// may change while the proposal is pending.
func (v *Vault) SubmitSetThreshold(from common.Address, threshold int) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if threshold < 1 || threshold > len(v.signers) {
		return 0, ErrInvalidThreshold
	}

	payload, err := encodeCommand(setThresholdSelector, setThresholdArgs, big.NewInt(int64(threshold)))
	if err != nil {
		return 0, err
	}
	return v.submit(from, v.address, nil, payload)
}

// SubmitWithdraw proposes paying out part of the pooled balance to a single
// recipient.
func (v *Vault) SubmitWithdraw(from common.Address, recipient common.Address, amount *big.Int) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if recipient == (common.Address{}) {
		return 0, ErrInvalidTarget
	}
	if amount == nil || amount.Sign() <= 0 {
		return 0, ErrNonPositiveAmount
	}
	if amount.Cmp(v.balance) > 0 {
		return 0, ErrInsufficientBalance
	}

	payload, err := encodeCommand(withdrawSelector, withdrawArgs, recipient, amount)
	if err != nil {
		return 0, err
	}
	return v.submit(from, v.address, nil, payload)
}
