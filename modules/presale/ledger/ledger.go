package ledger

import (
	"sync"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
)

// Ledger is the capability set the sale engine consumes from a fungible
// balance store. Amounts are always in the ledger's smallest units.
type Ledger interface {
	Name() string
	Symbol() string
	Decimals() uint8
	// Cap returns the fixed supply cap in smallest units. A zero cap means
	// the ledger is uncapped.
	Cap() *uint256.Int
	TotalSupply() *uint256.Int
	BalanceOf(account common.Address) *uint256.Int
	// Transfer moves amount from `from` to `to`. The caller is trusted to
	// act on behalf of `from`; delegated transfers go through TransferFrom.
	Transfer(from, to common.Address, amount *uint256.Int) error
	Approve(owner, spender common.Address, amount *uint256.Int) error
	Allowance(owner, spender common.Address) *uint256.Int
	// TransferFrom moves amount from `from` to `to` using `spender`'s
	// allowance granted by `from`.
	TransferFrom(spender, from, to common.Address, amount *uint256.Int) error
}

// CappedLedger is an in-memory Ledger with an owner-gated mint bounded by a
// fixed cap, and public burn/burnFrom. It mirrors the capped ERC20 the sale
// token is issued on; a zero cap turns it into a plain mintable ledger
// (used for the stablecoin and native-currency ledgers).
type CappedLedger struct {
	name     string
	symbol   string
	decimals uint8
	owner    common.Address
	cap      *uint256.Int

	mu         sync.RWMutex
	supply     *uint256.Int
	balances   map[common.Address]*uint256.Int
	allowances map[common.Address]map[common.Address]*uint256.Int
}

var _ Ledger = (*CappedLedger)(nil)

// NewCapped creates a ledger and mints initialSupply (whole tokens, scaled by
// decimals) to the owner. Construction fails if the scaled initial supply
// exceeds the scaled cap.
func NewCapped(name, symbol string, decimals uint8, initialSupply, cap uint64, owner common.Address) (*CappedLedger, error) {
	if owner.IsZero() {
		return nil, errors.Wrap(errs.InvalidArgument, "ledger owner must not be zero address")
	}
	l := &CappedLedger{
		name:       name,
		symbol:     symbol,
		decimals:   decimals,
		owner:      owner,
		cap:        scale(cap, decimals),
		supply:     uint256.NewInt(0),
		balances:   make(map[common.Address]*uint256.Int),
		allowances: make(map[common.Address]map[common.Address]*uint256.Int),
	}
	if initialSupply > 0 {
		if err := l.Mint(owner, owner, scale(initialSupply, decimals)); err != nil {
			return nil, errors.Wrap(err, "cannot mint initial supply")
		}
	}
	return l, nil
}

func scale(whole uint64, decimals uint8) *uint256.Int {
	out := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals)))
	return out.Mul(out, uint256.NewInt(whole))
}

func (l *CappedLedger) Name() string { return l.name }

func (l *CappedLedger) Symbol() string { return l.symbol }

func (l *CappedLedger) Decimals() uint8 { return l.decimals }

func (l *CappedLedger) Owner() common.Address { return l.owner }

func (l *CappedLedger) Cap() *uint256.Int {
	return new(uint256.Int).Set(l.cap)
}

func (l *CappedLedger) TotalSupply() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(uint256.Int).Set(l.supply)
}

func (l *CappedLedger) BalanceOf(account common.Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if balance, ok := l.balances[account]; ok {
		return new(uint256.Int).Set(balance)
	}
	return uint256.NewInt(0)
}

// Mint creates amount new units for `to`. Owner-only. Fails with
// errs.CapExceeded if the new total supply would exceed the cap.
func (l *CappedLedger) Mint(caller, to common.Address, amount *uint256.Int) error {
	if caller != l.owner {
		return errors.Wrap(errs.Unauthorized, "mint is owner-only")
	}
	if to.IsZero() {
		return errors.Wrap(errs.InvalidArgument, "mint to zero address")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	newSupply := new(uint256.Int).Add(l.supply, amount)
	if !l.cap.IsZero() && newSupply.Gt(l.cap) {
		return errors.Wrapf(errs.CapExceeded, "cap %s, want supply %s", l.cap, newSupply)
	}
	l.supply = newSupply
	l.credit(to, amount)
	return nil
}

// Burn destroys amount units from the caller's balance.
func (l *CappedLedger) Burn(caller common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.debit(caller, amount); err != nil {
		return err
	}
	l.supply = new(uint256.Int).Sub(l.supply, amount)
	return nil
}

// BurnFrom destroys amount units from `from`'s balance using the caller's
// allowance.
func (l *CappedLedger) BurnFrom(caller, from common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.spendAllowance(from, caller, amount); err != nil {
		return err
	}
	if err := l.debit(from, amount); err != nil {
		return err
	}
	l.supply = new(uint256.Int).Sub(l.supply, amount)
	return nil
}

func (l *CappedLedger) Transfer(from, to common.Address, amount *uint256.Int) error {
	if from.IsZero() || to.IsZero() {
		return errors.Wrap(errs.InvalidArgument, "transfer from/to zero address")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.debit(from, amount); err != nil {
		return err
	}
	l.credit(to, amount)
	return nil
}

func (l *CappedLedger) Approve(owner, spender common.Address, amount *uint256.Int) error {
	if owner.IsZero() || spender.IsZero() {
		return errors.Wrap(errs.InvalidArgument, "approve from/to zero address")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	spenders, ok := l.allowances[owner]
	if !ok {
		spenders = make(map[common.Address]*uint256.Int)
		l.allowances[owner] = spenders
	}
	spenders[spender] = new(uint256.Int).Set(amount)
	return nil
}

func (l *CappedLedger) Allowance(owner, spender common.Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if spenders, ok := l.allowances[owner]; ok {
		if allowance, ok := spenders[spender]; ok {
			return new(uint256.Int).Set(allowance)
		}
	}
	return uint256.NewInt(0)
}

func (l *CappedLedger) TransferFrom(spender, from, to common.Address, amount *uint256.Int) error {
	if from.IsZero() || to.IsZero() {
		return errors.Wrap(errs.InvalidArgument, "transfer from/to zero address")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.spendAllowance(from, spender, amount); err != nil {
		return err
	}
	if err := l.debit(from, amount); err != nil {
		return err
	}
	l.credit(to, amount)
	return nil
}

// credit and debit assume l.mu is held for writing.
func (l *CappedLedger) credit(account common.Address, amount *uint256.Int) {
	balance, ok := l.balances[account]
	if !ok {
		balance = uint256.NewInt(0)
		l.balances[account] = balance
	}
	balance.Add(balance, amount)
}

func (l *CappedLedger) debit(account common.Address, amount *uint256.Int) error {
	balance, ok := l.balances[account]
	if !ok || balance.Lt(amount) {
		return errors.Wrapf(errs.InsufficientBalance, "account %s has %s, want %s", account, l.balanceOrZero(account), amount)
	}
	balance.Sub(balance, amount)
	return nil
}

func (l *CappedLedger) balanceOrZero(account common.Address) *uint256.Int {
	if balance, ok := l.balances[account]; ok {
		return balance
	}
	return uint256.NewInt(0)
}

func (l *CappedLedger) spendAllowance(owner, spender common.Address, amount *uint256.Int) error {
	spenders, ok := l.allowances[owner]
	if !ok {
		return errors.Wrapf(errs.InsufficientAllowance, "no allowance from %s to %s", owner, spender)
	}
	allowance, ok := spenders[spender]
	if !ok || allowance.Lt(amount) {
		return errors.Wrapf(errs.InsufficientAllowance, "allowance %s, want %s", l.allowanceOrZero(owner, spender), amount)
	}
	allowance.Sub(allowance, amount)
	return nil
}

func (l *CappedLedger) allowanceOrZero(owner, spender common.Address) *uint256.Int {
	if spenders, ok := l.allowances[owner]; ok {
		if allowance, ok := spenders[spender]; ok {
			return allowance
		}
	}
	return uint256.NewInt(0)
}
