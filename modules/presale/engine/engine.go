package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/asi-network/presale-engine/modules/presale/ledger"
	"github.com/asi-network/presale-engine/modules/presale/oracle"
	"github.com/asi-network/presale-engine/pkg/logger"
	"github.com/asi-network/presale-engine/pkg/logger/slogx"
	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
)

// Phase is the sale lifecycle state, derived from wall-clock time and stored
// configuration on every call; no phase field is persisted.
type Phase string

const (
	PhaseUnstarted    Phase = "unstarted"
	PhaseSelling      Phase = "selling"
	PhaseEnded        Phase = "ended"
	PhaseClaimPending Phase = "claim_pending"
	PhaseClaimOpen    Phase = "claim_open"
)

// Config carries the immutable sale configuration. Collaborators are
// injected; the engine never mints, it only moves balances it already holds
// or is authorized to pull.
type Config struct {
	Owner common.Address
	// Account holding the engine's own sale-token reserve and acting as
	// allowance spender on stablecoin purchases.
	Account      common.Address
	SaleToken    ledger.Ledger
	PaymentToken ledger.Ledger
	// NativeToken is the ledger tracking native-currency balances (18
	// decimals); attached purchase payments move on it.
	NativeToken ledger.Ledger
	PriceFeed   oracle.PriceFeed
	SaleStart   time.Time
	SaleEnd     time.Time
	Stages      []Stage

	// Events receives committed notifications. Optional.
	Events EventSink
	// Now overrides the clock. Optional, used in tests.
	Now func() time.Time
}

// Engine owns staged pricing, time-window enforcement, purchase accounting
// and claim settlement. All public operations are atomic: validation first,
// then local bookkeeping, then external ledger transfers; a failed transfer
// rolls the bookkeeping back before returning.
type Engine struct {
	owner        common.Address
	account      common.Address
	saleToken    ledger.Ledger
	paymentToken ledger.Ledger
	nativeToken  ledger.Ledger
	priceFeed    oracle.PriceFeed
	stages       stageTable
	events       EventSink
	now          func() time.Time

	mu             sync.Mutex
	saleStart      time.Time
	saleEnd        time.Time
	claimStart     time.Time // zero = claim not configured
	reservedTokens uint64
	totalSold      uint64
	purchased      map[common.Address]uint64
	paused         bool
}

func New(config Config) (*Engine, error) {
	if config.SaleToken == nil || config.PaymentToken == nil || config.NativeToken == nil || config.PriceFeed == nil {
		return nil, errors.Wrap(errs.InvalidArgument, "sale token, payment token, native token and price feed are required")
	}
	if config.Owner.IsZero() || config.Account.IsZero() {
		return nil, errors.Wrap(errs.InvalidArgument, "owner and engine account are required")
	}
	stages, err := newStageTable(config.Stages)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	events := config.Events
	if events == nil {
		events = nopSink{}
	}
	if !config.SaleStart.Before(config.SaleEnd) {
		return nil, errors.Wrapf(errs.InvalidTimeWindow, "sale start %s must be before sale end %s", config.SaleStart, config.SaleEnd)
	}
	if config.SaleStart.Before(now()) {
		return nil, errors.Wrap(errs.InvalidTimeWindow, "sale start must not be in the past")
	}
	return &Engine{
		owner:        config.Owner,
		account:      config.Account,
		saleToken:    config.SaleToken,
		paymentToken: config.PaymentToken,
		nativeToken:  config.NativeToken,
		priceFeed:    config.PriceFeed,
		stages:       stages,
		events:       events,
		now:          now,
		saleStart:    config.SaleStart,
		saleEnd:      config.SaleEnd,
		purchased:    make(map[common.Address]uint64),
	}, nil
}

func (e *Engine) Owner() common.Address { return e.owner }

func (e *Engine) Account() common.Address { return e.account }

// Phase derives the lifecycle state from the clock and stored windows.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase()
}

func (e *Engine) phase() Phase {
	now := e.now()
	switch {
	case now.Before(e.saleStart):
		return PhaseUnstarted
	case now.Before(e.saleEnd):
		return PhaseSelling
	case e.claimStart.IsZero():
		return PhaseEnded
	case now.Before(e.claimStart):
		return PhaseClaimPending
	default:
		return PhaseClaimOpen
	}
}

func (e *Engine) TotalTokensSold() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totalSold
}

// PurchasedTokens returns the buyer's outstanding unclaimed whole-token
// balance.
func (e *Engine) PurchasedTokens(buyer common.Address) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.purchased[buyer]
}

func (e *Engine) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// SaleWindow returns the configured sale start and end times.
func (e *Engine) SaleWindow() (start, end time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saleStart, e.saleEnd
}

// ClaimWindow returns the claim start time (zero if unconfigured) and the
// reserved whole-token amount.
func (e *Engine) ClaimWindow() (start time.Time, reserved uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.claimStart, e.reservedTokens
}

// GetTotalPresaleCap returns the final stage threshold, the maximum total
// whole tokens sellable.
func (e *Engine) GetTotalPresaleCap() uint64 {
	return e.stages.cap()
}

// GetCurrentStagePrice returns the per-token payment-token price in effect
// at the current cumulative sold count. At or above the presale limit the
// final stage price is reported.
func (e *Engine) GetCurrentStagePrice() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stages.priceAt(e.totalSold)
}

// GetTotalRevenueAtCurrentSold recomputes the blended total cost of all
// tokens sold so far, in smallest payment-token units.
func (e *Engine) GetTotalRevenueAtCurrentSold() *uint256.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stages.revenueAt(e.totalSold)
}

// QuotePaymentTokenPrice prices amount additional whole tokens in smallest
// payment-token units, blending across stage boundaries.
func (e *Engine) QuotePaymentTokenPrice(amount uint64) (*uint256.Int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stages.quote(e.totalSold, amount)
}

// QuoteNativePrice prices amount additional whole tokens in native-currency
// smallest units, converting the payment-token quote through the price feed.
// The division rounds up so the engine is never undercharged by truncation.
func (e *Engine) QuoteNativePrice(ctx context.Context, amount uint64) (*uint256.Int, error) {
	e.mu.Lock()
	tokenCost, err := e.stages.quote(e.totalSold, amount)
	e.mu.Unlock()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	answer, err := e.readPriceAnswer(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return e.convertToNative(tokenCost, answer), nil
}

// readPriceAnswer fetches and validates the latest price feed answer. It must
// be called outside the bookkeeping lock since the feed may block.
func (e *Engine) readPriceAnswer(ctx context.Context) (*uint256.Int, error) {
	round, err := e.priceFeed.LatestRoundData(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "can't read latest price")
	}
	if round.Answer == nil || round.Answer.IsZero() {
		return nil, errors.Wrap(errs.InvalidArgument, "price feed returned zero answer")
	}
	return round.Answer, nil
}

// convertToNative converts a smallest-payment-token amount to native smallest
// units: ceil(amount * 10^(feedDecimals+nativeDecimals-paymentDecimals) / answer).
func (e *Engine) convertToNative(tokenCost, answer *uint256.Int) *uint256.Int {
	exponent := uint64(e.priceFeed.Decimals()) + uint64(e.nativeToken.Decimals()) - uint64(e.paymentToken.Decimals())
	numerator := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(exponent))
	numerator.Mul(numerator, tokenCost)
	quotient := new(uint256.Int)
	remainder := new(uint256.Int)
	quotient.DivMod(numerator, answer, remainder)
	if !remainder.IsZero() {
		quotient.AddUint64(quotient, 1)
	}
	return quotient
}

// ConfigureSaleWindow overwrites the sale window. Owner-only; the new start
// must precede the new end and must not already be in the past. Once a claim
// start is configured the sale end may not move past it.
func (e *Engine) ConfigureSaleWindow(ctx context.Context, caller common.Address, start, end time.Time) error {
	if err := e.requireOwner(caller); err != nil {
		return err
	}
	e.mu.Lock()
	if !start.Before(end) {
		e.mu.Unlock()
		return errors.Wrapf(errs.InvalidTimeWindow, "start %s must be before end %s", start, end)
	}
	if start.Before(e.now()) {
		e.mu.Unlock()
		return errors.Wrap(errs.InvalidTimeWindow, "start must not be in the past")
	}
	if !e.claimStart.IsZero() && !end.Before(e.claimStart) {
		e.mu.Unlock()
		return errors.Wrapf(errs.InvalidTimeWindow, "end %s must stay before configured claim start %s", end, e.claimStart)
	}
	e.saleStart = start
	e.saleEnd = end
	events := []*entity.SaleEvent{{
		Type:      entity.EventWindowUpdated,
		Timestamp: e.now(),
		SaleStart: start,
		SaleEnd:   end,
	}}
	e.mu.Unlock()

	e.events.Emit(ctx, events)
	return nil
}

// ConfigureClaim opens the claim cycle: sets the claim start time and commits
// an explicit whole-token reserve. Callable once; the reserve must cover all
// sold tokens and must already be funded on the sale-token ledger.
func (e *Engine) ConfigureClaim(ctx context.Context, caller common.Address, claimStart time.Time, reserve uint64) error {
	if err := e.requireOwner(caller); err != nil {
		return err
	}
	e.mu.Lock()
	if !e.claimStart.IsZero() {
		e.mu.Unlock()
		return errors.Wrap(errs.ClaimAlreadyConfigured, "claim start already set")
	}
	if !claimStart.After(e.saleEnd) {
		e.mu.Unlock()
		return errors.Wrapf(errs.InvalidClaimTime, "claim start %s must be after sale end %s", claimStart, e.saleEnd)
	}
	if claimStart.Before(e.now()) {
		e.mu.Unlock()
		return errors.Wrap(errs.InvalidClaimTime, "claim start must not be in the past")
	}
	if reserve < e.totalSold {
		e.mu.Unlock()
		return errors.Wrapf(errs.InsufficientReserve, "reserve %d below %d tokens sold", reserve, e.totalSold)
	}
	held := e.saleToken.BalanceOf(e.account)
	required := e.scaleToSaleToken(reserve)
	if held.Lt(required) {
		e.mu.Unlock()
		return errors.Wrapf(errs.InsufficientReserve, "ledger holds %s, reserve requires %s", held, required)
	}
	e.claimStart = claimStart
	e.reservedTokens = reserve
	events := []*entity.SaleEvent{{
		Type:           entity.EventClaimWindowUpdated,
		Timestamp:      e.now(),
		ClaimStart:     claimStart,
		ReservedTokens: reserve,
	}}
	e.mu.Unlock()

	e.events.Emit(ctx, events)
	return nil
}

// ReconfigureClaimStart moves an already configured claim start time. The new
// time may not fall back inside the sale period.
func (e *Engine) ReconfigureClaimStart(ctx context.Context, caller common.Address, newStart time.Time) error {
	if err := e.requireOwner(caller); err != nil {
		return err
	}
	e.mu.Lock()
	if e.claimStart.IsZero() {
		e.mu.Unlock()
		return errors.Wrap(errs.ClaimNotConfigured, "configure claim first")
	}
	if newStart.Before(e.saleEnd) {
		e.mu.Unlock()
		return errors.Wrapf(errs.SaleStillInProgress, "claim start %s would fall inside the sale period ending %s", newStart, e.saleEnd)
	}
	if newStart.Before(e.now()) {
		e.mu.Unlock()
		return errors.Wrap(errs.InvalidClaimTime, "claim start must not be in the past")
	}
	e.claimStart = newStart
	events := []*entity.SaleEvent{{
		Type:           entity.EventClaimWindowUpdated,
		Timestamp:      e.now(),
		ClaimStart:     newStart,
		ReservedTokens: e.reservedTokens,
	}}
	e.mu.Unlock()

	e.events.Emit(ctx, events)
	return nil
}

// BuyWithNative purchases amount whole tokens, paying with attached native
// currency. The attached value must cover the native quote; the full attached
// value is forwarded to the owner, matching the original settlement.
func (e *Engine) BuyWithNative(ctx context.Context, buyer common.Address, amount uint64, attached *uint256.Int) (*entity.Purchase, error) {
	if buyer.IsZero() {
		return nil, errors.Wrap(errs.InvalidArgument, "buyer is required")
	}
	if attached == nil {
		attached = uint256.NewInt(0)
	}

	e.mu.Lock()
	if _, err := e.validatePurchase(amount); err != nil {
		e.mu.Unlock()
		return nil, errors.WithStack(err)
	}
	e.mu.Unlock()

	// Oracle read happens outside the bookkeeping lock; the quote is
	// recomputed under the lock so competing purchases that move the sold
	// count between the read and the commit still settle at the current
	// blended price.
	answer, err := e.readPriceAnswer(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	e.mu.Lock()
	tokenCost, err := e.validatePurchase(amount)
	if err != nil {
		e.mu.Unlock()
		return nil, errors.WithStack(err)
	}
	nativeCost := e.convertToNative(tokenCost, answer)
	if attached.Lt(nativeCost) {
		e.mu.Unlock()
		return nil, errors.Wrapf(errs.InsufficientPayment, "attached %s below required %s", attached, nativeCost)
	}
	e.totalSold += amount
	e.purchased[buyer] += amount
	e.mu.Unlock()

	// Bookkeeping is committed before the external transfer; on transfer
	// failure the commit is rolled back to leave no partial state.
	if err := e.nativeToken.Transfer(buyer, e.owner, attached); err != nil {
		e.rollbackPurchase(buyer, amount)
		return nil, errors.Wrap(err, "can't forward native payment")
	}

	purchase := &entity.Purchase{
		Buyer:             buyer,
		PaymentKind:       common.PaymentNative,
		TokenAmount:       amount,
		PaymentTokenPrice: tokenCost,
		AmountCharged:     new(uint256.Int).Set(attached),
		PurchasedAt:       e.now(),
	}
	e.emitPurchase(ctx, purchase)
	return purchase, nil
}

// BuyWithPaymentToken purchases amount whole tokens, pulling the quoted
// payment-token price from the buyer's pre-approved allowance.
func (e *Engine) BuyWithPaymentToken(ctx context.Context, buyer common.Address, amount uint64) (*entity.Purchase, error) {
	if buyer.IsZero() {
		return nil, errors.Wrap(errs.InvalidArgument, "buyer is required")
	}

	e.mu.Lock()
	tokenCost, err := e.validatePurchase(amount)
	if err != nil {
		e.mu.Unlock()
		return nil, errors.WithStack(err)
	}
	if allowance := e.paymentToken.Allowance(buyer, e.account); allowance.Lt(tokenCost) {
		e.mu.Unlock()
		return nil, errors.Wrapf(errs.InsufficientAllowance, "allowance %s below required %s", allowance, tokenCost)
	}
	e.totalSold += amount
	e.purchased[buyer] += amount
	e.mu.Unlock()

	if err := e.paymentToken.TransferFrom(e.account, buyer, e.owner, tokenCost); err != nil {
		e.rollbackPurchase(buyer, amount)
		return nil, errors.Wrap(err, "can't pull payment tokens")
	}

	purchase := &entity.Purchase{
		Buyer:             buyer,
		PaymentKind:       common.PaymentToken,
		TokenAmount:       amount,
		PaymentTokenPrice: tokenCost,
		AmountCharged:     new(uint256.Int).Set(tokenCost),
		PurchasedAt:       e.now(),
	}
	e.emitPurchase(ctx, purchase)
	return purchase, nil
}

// validatePurchase checks pause state, sale phase and the stage cap, and
// returns the blended payment-token cost. Caller must hold e.mu.
func (e *Engine) validatePurchase(amount uint64) (*uint256.Int, error) {
	if e.paused {
		return nil, errors.Wrap(errs.InvalidSaleState, "engine is paused")
	}
	if phase := e.phase(); phase != PhaseSelling {
		return nil, errors.Wrapf(errs.InvalidSaleState, "sale is not in progress (phase %s)", phase)
	}
	return e.stages.quote(e.totalSold, amount)
}

func (e *Engine) rollbackPurchase(buyer common.Address, amount uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.totalSold -= amount
	e.purchased[buyer] -= amount
	if e.purchased[buyer] == 0 {
		delete(e.purchased, buyer)
	}
}

func (e *Engine) emitPurchase(ctx context.Context, purchase *entity.Purchase) {
	logger.InfoContext(ctx, "Tokens purchased",
		slogx.Stringer("buyer", purchase.Buyer),
		slogx.Stringer("paymentKind", purchase.PaymentKind),
		slogx.Uint64("amount", purchase.TokenAmount),
		slogx.Stringer("paymentTokenPrice", purchase.PaymentTokenPrice),
		slogx.Stringer("amountCharged", purchase.AmountCharged),
	)
	e.events.Emit(ctx, []*entity.SaleEvent{{
		Type:              entity.EventTokensPurchased,
		Timestamp:         purchase.PurchasedAt,
		Buyer:             purchase.Buyer,
		PaymentKind:       purchase.PaymentKind,
		TokenAmount:       purchase.TokenAmount,
		PaymentTokenPrice: new(uint256.Int).Set(purchase.PaymentTokenPrice),
		AmountCharged:     new(uint256.Int).Set(purchase.AmountCharged),
	}})
}

// Claim settles the caller's outstanding purchased tokens: zeroes the
// bookkeeping entry and transfers the scaled amount from the engine's own
// holdings. A second claim with nothing outstanding fails with
// errs.NothingToClaim.
func (e *Engine) Claim(ctx context.Context, caller common.Address) (*entity.ClaimRecord, error) {
	if caller.IsZero() {
		return nil, errors.Wrap(errs.InvalidArgument, "caller is required")
	}
	e.mu.Lock()
	if e.paused {
		e.mu.Unlock()
		return nil, errors.Wrap(errs.InvalidSaleState, "engine is paused")
	}
	if phase := e.phase(); phase != PhaseClaimOpen {
		e.mu.Unlock()
		return nil, errors.Wrapf(errs.InvalidSaleState, "claim is not open (phase %s)", phase)
	}
	amount := e.purchased[caller]
	if amount == 0 {
		e.mu.Unlock()
		return nil, errors.Wrap(errs.NothingToClaim, "no outstanding purchased tokens")
	}
	delete(e.purchased, caller)
	e.mu.Unlock()

	if err := e.saleToken.Transfer(e.account, caller, e.scaleToSaleToken(amount)); err != nil {
		e.mu.Lock()
		e.purchased[caller] += amount
		e.mu.Unlock()
		return nil, errors.Wrap(err, "can't transfer claimed tokens")
	}

	record := &entity.ClaimRecord{
		Claimer:     caller,
		TokenAmount: amount,
		ClaimedAt:   e.now(),
	}
	logger.InfoContext(ctx, "Tokens claimed",
		slogx.Stringer("claimer", caller),
		slogx.Uint64("amount", amount),
	)
	e.events.Emit(ctx, []*entity.SaleEvent{{
		Type:        entity.EventTokensClaimed,
		Timestamp:   record.ClaimedAt,
		Buyer:       caller,
		TokenAmount: amount,
	}})
	return record, nil
}

// Pause disables purchase and claim operations until Unpause.
func (e *Engine) Pause(ctx context.Context, caller common.Address) error {
	if err := e.requireOwner(caller); err != nil {
		return err
	}
	e.mu.Lock()
	if e.paused {
		e.mu.Unlock()
		return errors.Wrap(errs.AlreadyPaused, "engine already paused")
	}
	e.paused = true
	e.mu.Unlock()

	logger.InfoContext(ctx, "Sale engine paused", slog.String("by", caller.String()))
	e.events.Emit(ctx, []*entity.SaleEvent{{Type: entity.EventPaused, Timestamp: e.now()}})
	return nil
}

func (e *Engine) Unpause(ctx context.Context, caller common.Address) error {
	if err := e.requireOwner(caller); err != nil {
		return err
	}
	e.mu.Lock()
	if !e.paused {
		e.mu.Unlock()
		return errors.Wrap(errs.NotPaused, "engine is not paused")
	}
	e.paused = false
	e.mu.Unlock()

	logger.InfoContext(ctx, "Sale engine unpaused", slog.String("by", caller.String()))
	e.events.Emit(ctx, []*entity.SaleEvent{{Type: entity.EventUnpaused, Timestamp: e.now()}})
	return nil
}

func (e *Engine) requireOwner(caller common.Address) error {
	if caller != e.owner {
		return errors.Wrapf(errs.Unauthorized, "caller %s is not the owner", caller)
	}
	return nil
}

// scaleToSaleToken converts whole tokens to smallest sale-token units.
func (e *Engine) scaleToSaleToken(amount uint64) *uint256.Int {
	out := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(e.saleToken.Decimals())))
	return out.Mul(out, uint256.NewInt(amount))
}
