package ledger

import (
	"testing"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ledgerOwner = common.NewAddress("ledger-owner")
	alice       = common.NewAddress("alice")
	bob         = common.NewAddress("bob")
)

func TestNewCapped(t *testing.T) {
	t.Run("mints initial supply to owner", func(t *testing.T) {
		t.Parallel()
		l, err := NewCapped("ASI Token", "ASI", 18, 250_000_000, 1_000_000_000, ledgerOwner)
		require.NoError(t, err)

		expected := new(uint256.Int).Mul(uint256.NewInt(250_000_000), uint256.MustFromDecimal("1000000000000000000"))
		assert.Equal(t, expected, l.TotalSupply())
		assert.Equal(t, expected, l.BalanceOf(ledgerOwner))
		assert.Equal(t, uint8(18), l.Decimals())
	})
	t.Run("initial supply above cap", func(t *testing.T) {
		t.Parallel()
		_, err := NewCapped("ASI Token", "ASI", 18, 1_000_000_001, 1_000_000_000, ledgerOwner)
		assert.ErrorIs(t, err, errs.CapExceeded)
	})
	t.Run("zero cap is uncapped", func(t *testing.T) {
		t.Parallel()
		l, err := NewCapped("Tether USD", "USDT", 6, 0, 0, ledgerOwner)
		require.NoError(t, err)
		require.NoError(t, l.Mint(ledgerOwner, alice, uint256.MustFromDecimal("123456789000000000000000000000")))
	})
	t.Run("zero owner", func(t *testing.T) {
		t.Parallel()
		_, err := NewCapped("ASI Token", "ASI", 18, 0, 0, common.ZeroAddress)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
}

func TestMint(t *testing.T) {
	newLedger := func(t *testing.T) *CappedLedger {
		l, err := NewCapped("ASI Token", "ASI", 6, 100, 200, ledgerOwner)
		require.NoError(t, err)
		return l
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		require.NoError(t, l.Mint(ledgerOwner, alice, uint256.NewInt(50_000_000)))
		assert.Equal(t, uint256.NewInt(50_000_000), l.BalanceOf(alice))
		assert.Equal(t, uint256.NewInt(150_000_000), l.TotalSupply())
	})
	t.Run("exceeds cap", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		err := l.Mint(ledgerOwner, alice, uint256.NewInt(100_000_001))
		assert.ErrorIs(t, err, errs.CapExceeded)
		assert.True(t, l.BalanceOf(alice).IsZero())
	})
	t.Run("exactly at cap", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		require.NoError(t, l.Mint(ledgerOwner, alice, uint256.NewInt(100_000_000)))
		assert.Equal(t, l.Cap(), l.TotalSupply())
	})
	t.Run("not owner", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		err := l.Mint(alice, alice, uint256.NewInt(1))
		assert.ErrorIs(t, err, errs.Unauthorized)
	})
	t.Run("zero recipient", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		err := l.Mint(ledgerOwner, common.ZeroAddress, uint256.NewInt(1))
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
}

func TestTransfer(t *testing.T) {
	newLedger := func(t *testing.T) *CappedLedger {
		l, err := NewCapped("Tether USD", "USDT", 6, 1_000, 0, ledgerOwner)
		require.NoError(t, err)
		return l
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		require.NoError(t, l.Transfer(ledgerOwner, alice, uint256.NewInt(400_000_000)))
		assert.Equal(t, uint256.NewInt(600_000_000), l.BalanceOf(ledgerOwner))
		assert.Equal(t, uint256.NewInt(400_000_000), l.BalanceOf(alice))
	})
	t.Run("insufficient balance", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		err := l.Transfer(alice, bob, uint256.NewInt(1))
		assert.ErrorIs(t, err, errs.InsufficientBalance)
	})
	t.Run("zero address", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		err := l.Transfer(ledgerOwner, common.ZeroAddress, uint256.NewInt(1))
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
}

func TestAllowances(t *testing.T) {
	newLedger := func(t *testing.T) *CappedLedger {
		l, err := NewCapped("Tether USD", "USDT", 6, 1_000, 0, ledgerOwner)
		require.NoError(t, err)
		require.NoError(t, l.Transfer(ledgerOwner, alice, uint256.NewInt(500_000_000)))
		return l
	}

	t.Run("approve sets absolute allowance", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		require.NoError(t, l.Approve(alice, bob, uint256.NewInt(100)))
		require.NoError(t, l.Approve(alice, bob, uint256.NewInt(40)))
		assert.Equal(t, uint256.NewInt(40), l.Allowance(alice, bob))
	})
	t.Run("transfer from decrements allowance", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		require.NoError(t, l.Approve(alice, bob, uint256.NewInt(100)))
		require.NoError(t, l.TransferFrom(bob, alice, ledgerOwner, uint256.NewInt(60)))
		assert.Equal(t, uint256.NewInt(40), l.Allowance(alice, bob))
		assert.Equal(t, uint256.NewInt(499_999_940), l.BalanceOf(alice))
	})
	t.Run("transfer from without allowance", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		err := l.TransferFrom(bob, alice, ledgerOwner, uint256.NewInt(1))
		assert.ErrorIs(t, err, errs.InsufficientAllowance)
	})
	t.Run("transfer from above allowance", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		require.NoError(t, l.Approve(alice, bob, uint256.NewInt(100)))
		err := l.TransferFrom(bob, alice, ledgerOwner, uint256.NewInt(101))
		assert.ErrorIs(t, err, errs.InsufficientAllowance)
		assert.Equal(t, uint256.NewInt(100), l.Allowance(alice, bob))
	})
	t.Run("allowance does not cover missing balance", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		require.NoError(t, l.Approve(bob, alice, uint256.NewInt(1_000)))
		err := l.TransferFrom(alice, bob, ledgerOwner, uint256.NewInt(1_000))
		assert.ErrorIs(t, err, errs.InsufficientBalance)
	})
}

func TestBurn(t *testing.T) {
	newLedger := func(t *testing.T) *CappedLedger {
		l, err := NewCapped("ASI Token", "ASI", 6, 1_000, 0, ledgerOwner)
		require.NoError(t, err)
		return l
	}

	t.Run("burn reduces supply", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		require.NoError(t, l.Burn(ledgerOwner, uint256.NewInt(250_000_000)))
		assert.Equal(t, uint256.NewInt(750_000_000), l.TotalSupply())
		assert.Equal(t, uint256.NewInt(750_000_000), l.BalanceOf(ledgerOwner))
	})
	t.Run("burn above balance", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		err := l.Burn(alice, uint256.NewInt(1))
		assert.ErrorIs(t, err, errs.InsufficientBalance)
	})
	t.Run("burn from spends allowance", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		require.NoError(t, l.Approve(ledgerOwner, alice, uint256.NewInt(100)))
		require.NoError(t, l.BurnFrom(alice, ledgerOwner, uint256.NewInt(60)))
		assert.Equal(t, uint256.NewInt(40), l.Allowance(ledgerOwner, alice))
		assert.Equal(t, uint256.NewInt(999_999_940), l.TotalSupply())
	})
	t.Run("burn from without allowance", func(t *testing.T) {
		t.Parallel()
		l := newLedger(t)
		err := l.BurnFrom(alice, ledgerOwner, uint256.NewInt(1))
		assert.ErrorIs(t, err, errs.InsufficientAllowance)
	})
}
