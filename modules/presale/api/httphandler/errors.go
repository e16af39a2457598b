package httphandler

import (
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/cockroachdb/errors"
)

// publicErrorKinds are domain failures surfaced to API callers as 400s with
// their kind as the error code. Anything else stays internal.
var publicErrorKinds = []errs.ErrorKind{
	errs.Unauthorized,
	errs.InvalidTimeWindow,
	errs.InvalidClaimTime,
	errs.SaleStillInProgress,
	errs.ClaimNotConfigured,
	errs.ClaimAlreadyConfigured,
	errs.InsufficientReserve,
	errs.InvalidSaleState,
	errs.PresaleLimitExceeded,
	errs.ZeroAmount,
	errs.InsufficientPayment,
	errs.InsufficientAllowance,
	errs.InsufficientBalance,
	errs.NothingToClaim,
	errs.AlreadyPaused,
	errs.NotPaused,
	errs.InvalidArgument,
}

func mapDomainError(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range publicErrorKinds {
		if errors.Is(err, kind) {
			return errs.WithPublicMessageCode(err, "", string(kind))
		}
	}
	return errors.WithStack(err)
}
