package vault

import "errors"

// Authorization errors
var (
	ErrUnauthorized = errors.New("caller is not a signer")
)

// Validation errors, rejected before any state mutation
var (
	ErrInvalidTarget       = errors.New("invalid target address")
	ErrEmptyOperation      = errors.New("empty operation")
	ErrDuplicateSigner     = errors.New("duplicate signer")
	ErrUnknownSigner       = errors.New("unknown signer")
	ErrLastSignerProtected = errors.New("cannot remove last signer")
	ErrInvalidThreshold    = errors.New("invalid threshold")
	ErrLengthMismatch      = errors.New("recipients and amounts length mismatch")
	ErrBatchSize           = errors.New("batch size out of bounds")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
)

// State errors, rejected with no side effects
var (
	ErrUnknownTransaction    = errors.New("unknown transaction")
	ErrAlreadyFinalized      = errors.New("transaction already finalized")
	ErrAlreadyApproved       = errors.New("transaction already approved by caller")
	ErrNotApproved           = errors.New("transaction not approved by caller")
	ErrTransactionExpired    = errors.New("transaction expired")
	ErrNotExpired            = errors.New("transaction not yet expired")
	ErrInsufficientApprovals = errors.New("insufficient approvals")
	ErrInsufficientBalance   = errors.New("insufficient pooled balance")
	ErrContractPaused        = errors.New("contract is paused")
	ErrAlreadyPaused         = errors.New("contract already paused")
	ErrNotPaused             = errors.New("contract not paused")
	ErrAlreadyVoted          = errors.New("already voted to pause")
	ErrNotVoted              = errors.New("caller has not voted to pause")
	ErrReentrantCall         = errors.New("reentrant call")
)

// Execution errors
var (
	ErrExecutionFailed = errors.New("execution failed")
	ErrUnknownCommand  = errors.New("unknown internal command")
)
