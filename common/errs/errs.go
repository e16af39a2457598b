package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound        = ErrorKind("Not Found")
	InvalidArgument = ErrorKind("Invalid Argument")
	Unsupported     = ErrorKind("Unsupported")
	Timeout         = ErrorKind("Timeout")
	InternalError   = ErrorKind("Internal Error")
	OverflowUint64  = ErrorKind("overflow uint64")
	OverflowUint256 = ErrorKind("overflow uint256")

	// Unauthorized is returned when the caller lacks the role required
	// by a privileged operation (owner-only calls).
	Unauthorized = ErrorKind("Unauthorized")

	// InvalidTimeWindow is returned when a sale window violates
	// start < end, or start is already in the past.
	InvalidTimeWindow = ErrorKind("Invalid Time Window")

	// InvalidClaimTime is returned when a claim start time does not lie
	// strictly after the sale end, or is already in the past.
	InvalidClaimTime = ErrorKind("Invalid Claim Time")

	// SaleStillInProgress is returned when an operation requires the sale
	// period to be over.
	SaleStillInProgress = ErrorKind("Sale Still In Progress")

	ClaimNotConfigured     = ErrorKind("Claim Not Configured")
	ClaimAlreadyConfigured = ErrorKind("Claim Already Configured")

	// InsufficientReserve is returned when the engine's sale token balance
	// (or the explicit reserve amount) cannot cover all sold tokens.
	InsufficientReserve = ErrorKind("Insufficient Reserve")

	// InvalidSaleState is returned when an operation is attempted outside
	// its valid phase: buying outside Selling, claiming outside ClaimOpen.
	InvalidSaleState = ErrorKind("Invalid Sale State")

	// PresaleLimitExceeded is returned when a purchase would push the
	// cumulative sold amount past the final stage threshold.
	PresaleLimitExceeded = ErrorKind("Presale Limit Exceeded")

	// ZeroAmount is returned when a positive quantity is required.
	ZeroAmount = ErrorKind("Zero Amount")

	InsufficientPayment   = ErrorKind("Insufficient Payment")
	InsufficientAllowance = ErrorKind("Insufficient Allowance")
	InsufficientBalance   = ErrorKind("Insufficient Balance")

	NothingToClaim = ErrorKind("Nothing To Claim")

	AlreadyPaused = ErrorKind("Already Paused")
	NotPaused     = ErrorKind("Not Paused")

	// CapExceeded is returned by the capped ledger when a mint would push
	// total supply over the fixed cap.
	CapExceeded = ErrorKind("Cap Exceeded")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
