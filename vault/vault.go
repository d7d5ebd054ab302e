package vault

import (
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/payrolldao/vault-core/models"
)

// Caller forwards one quorum-approved call to its target, moving value
// along with the payload. Implementations must be synchronous: the call
// either fully succeeds or returns an error. During a batch payout the
// transport must treat the individual transfers as one unit: when a later
// transfer fails, the earlier ones are rolled back together with the
// enclosing execute, so a transport that cannot undo a delivered transfer
// must withhold delivery until the whole batch has gone through. A Caller
// must not call back into the vault from the same goroutine during a batch
// payout; reentrant mutating calls during a generic forwarded call are
// rejected with ErrReentrantCall.
type Caller interface {
	Call(target common.Address, value *big.Int, payload []byte) error
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(target common.Address, value *big.Int, payload []byte) error

func (f CallerFunc) Call(target common.Address, value *big.Int, payload []byte) error {
	return f(target, value, payload)
}

// EventSink receives one emitted fact per state transition. Sinks must not
// call back into the vault.
type EventSink interface {
	Record(event models.VaultEvent)
}

// Vault is the multisig approval-and-execution engine: a fixed set of
// signers collectively authorize proposals under a quorum threshold, and
// quorum-reached proposals are executed exactly once. Every mutating
// operation is atomic: either all of its effects commit or none do.
type Vault struct {
	mu sync.Mutex

	address common.Address
	asset   string

	signers     []common.Address
	signerIndex map[common.Address]int
	isSigner    map[common.Address]bool
	threshold   int

	txs     []*transaction
	balance *big.Int

	paused       bool
	pauseVotes   int
	votedToPause map[common.Address]bool

	caller Caller
	sink   EventSink
	now    func() time.Time
	inCall bool
}

type Option func(*Vault)

// WithEventSink wires an audit sink; without one, transitions are only logged.
func WithEventSink(sink EventSink) Option {
	return func(v *Vault) {
		v.sink = sink
	}
}

// WithClock overrides the time source, used by expiry tests.
func WithClock(now func() time.Time) Option {
	return func(v *Vault) {
		v.now = now
	}
}

// WithAsset sets the symbol recorded on deposit and withdrawal events.
func WithAsset(symbol string) Option {
	return func(v *Vault) {
		v.asset = symbol
	}
}

// New builds a vault with the initial signer set and threshold. The signer
// list must be non-empty and free of duplicates and zero addresses, and the
// threshold must satisfy 1 <= threshold <= len(signers).
func New(address common.Address, signers []common.Address, threshold int, caller Caller, opts ...Option) (*Vault, error) {
	if address == (common.Address{}) {
		return nil, ErrInvalidTarget
	}
	if caller == nil {
		return nil, ErrInvalidTarget
	}
	if threshold < 1 || threshold > len(signers) {
		return nil, ErrInvalidThreshold
	}

	v := &Vault{
		address:      address,
		signers:      make([]common.Address, 0, len(signers)),
		signerIndex:  make(map[common.Address]int, len(signers)),
		isSigner:     make(map[common.Address]bool, len(signers)),
		threshold:    threshold,
		balance:      new(big.Int),
		votedToPause: make(map[common.Address]bool),
		caller:       caller,
		now:          time.Now,
	}

	for _, signer := range signers {
		if signer == (common.Address{}) {
			return nil, ErrInvalidTarget
		}
		if v.isSigner[signer] {
			return nil, ErrDuplicateSigner
		}
		v.signerIndex[signer] = len(v.signers)
		v.isSigner[signer] = true
		v.signers = append(v.signers, signer)
	}

	for _, opt := range opts {
		opt(v)
	}

	log.Info("[VAULT] Initialized vault at ", address.Hex(), " with ", len(v.signers), " signers, threshold ", threshold)

	return v, nil
}

// Address returns the vault's own address, the target of privileged
// self-targeted proposals.
func (v *Vault) Address() common.Address {
	return v.address
}

// Balance returns the pooled balance.
func (v *Vault) Balance() *big.Int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return new(big.Int).Set(v.balance)
}

// Deposit credits the pooled balance. Anyone may deposit.
func (v *Vault) Deposit(from common.Address, amount *big.Int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.inCall {
		return ErrReentrantCall
	}
	if v.paused {
		return ErrContractPaused
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrNonPositiveAmount
	}

	v.balance.Add(v.balance, amount)

	log.Info("[VAULT] Deposit of ", amount, " from ", from.Hex())
	v.emit(models.VaultEvent{
		Kind:  models.EventDeposit,
		Nonce: -1,
		Actor: from.Hex(),
		Value: amount.String(),
		Asset: v.asset,
	})
	return nil
}

func (v *Vault) emit(event models.VaultEvent) {
	if v.sink == nil {
		return
	}
	event.CreatedAt = v.now()
	v.sink.Record(event)
}
