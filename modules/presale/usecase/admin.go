package usecase

import (
	"context"
	"time"

	"github.com/asi-network/presale-engine/common"
	"github.com/cockroachdb/errors"
)

func (u *Usecase) ConfigureSaleWindow(ctx context.Context, caller common.Address, start, end time.Time) error {
	return errors.WithStack(u.engine.ConfigureSaleWindow(ctx, caller, start, end))
}

func (u *Usecase) ConfigureClaim(ctx context.Context, caller common.Address, claimStart time.Time, reserve uint64) error {
	return errors.WithStack(u.engine.ConfigureClaim(ctx, caller, claimStart, reserve))
}

func (u *Usecase) ReconfigureClaimStart(ctx context.Context, caller common.Address, newStart time.Time) error {
	return errors.WithStack(u.engine.ReconfigureClaimStart(ctx, caller, newStart))
}

func (u *Usecase) Pause(ctx context.Context, caller common.Address) error {
	return errors.WithStack(u.engine.Pause(ctx, caller))
}

func (u *Usecase) Unpause(ctx context.Context, caller common.Address) error {
	return errors.WithStack(u.engine.Unpause(ctx, caller))
}
