package httphandler

import (
	"testing"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyRequestValidate(t *testing.T) {
	test := func(name string, req buyRequest, wantValid bool) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := req.Validate()
			if wantValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				var pubErr *errs.PublicError
				require.ErrorAs(t, err, &pubErr)
			}
		})
	}

	test("valid token purchase", buyRequest{Wallet: "0xabc", Amount: 100, Payment: common.PaymentToken}, true)
	test("valid native purchase", buyRequest{Wallet: "0xabc", Amount: 100, Payment: common.PaymentNative, Attached: "7500000000000000"}, true)
	test("missing wallet", buyRequest{Amount: 100, Payment: common.PaymentToken}, false)
	test("zero amount", buyRequest{Wallet: "0xabc", Payment: common.PaymentToken}, false)
	test("invalid payment kind", buyRequest{Wallet: "0xabc", Amount: 100, Payment: "credit_card"}, false)
	test("native without attached", buyRequest{Wallet: "0xabc", Amount: 100, Payment: common.PaymentNative}, false)
	test("native with malformed attached", buyRequest{Wallet: "0xabc", Amount: 100, Payment: common.PaymentNative, Attached: "1.5"}, false)
	test("native with negative attached", buyRequest{Wallet: "0xabc", Amount: 100, Payment: common.PaymentNative, Attached: "-10"}, false)
}

func TestGetQuoteRequestValidate(t *testing.T) {
	t.Run("defaults to token payment", func(t *testing.T) {
		t.Parallel()
		req := getQuoteRequest{Amount: 100}
		require.NoError(t, req.Validate())
		require.NoError(t, req.ParseDefault())
		assert.Equal(t, common.PaymentToken, req.Payment)
	})
	t.Run("zero amount", func(t *testing.T) {
		t.Parallel()
		req := getQuoteRequest{Payment: common.PaymentNative}
		assert.Error(t, req.Validate())
	})
	t.Run("invalid payment kind", func(t *testing.T) {
		t.Parallel()
		req := getQuoteRequest{Amount: 100, Payment: "credit_card"}
		assert.Error(t, req.Validate())
	})
}

func TestPaginationRequestValidate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		req := paginationRequest{}
		require.NoError(t, req.Validate())
		require.NoError(t, req.ParseDefault())
		assert.Equal(t, int32(paginationDefaultLimit), req.Limit)
		assert.Equal(t, int32(0), req.Offset)
	})
	t.Run("explicit limit is kept", func(t *testing.T) {
		t.Parallel()
		req := paginationRequest{Limit: 10, Offset: 20}
		require.NoError(t, req.Validate())
		require.NoError(t, req.ParseDefault())
		assert.Equal(t, int32(10), req.Limit)
	})
	t.Run("negative limit", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, paginationRequest{Limit: -1}.Validate())
	})
	t.Run("limit above max", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, paginationRequest{Limit: paginationMaxLimit + 1}.Validate())
	})
	t.Run("negative offset", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, paginationRequest{Offset: -1}.Validate())
	})
}

func TestAdminRequestsValidate(t *testing.T) {
	t.Run("caller required", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, adminRequest{}.Validate())
		assert.NoError(t, adminRequest{Caller: "0xowner"}.Validate())
	})
	t.Run("sale window timestamps", func(t *testing.T) {
		t.Parallel()
		valid := configureSaleWindowRequest{adminRequest: adminRequest{Caller: "0xowner"}, SaleStart: 1_700_000_000, SaleEnd: 1_700_100_000}
		assert.NoError(t, valid.Validate())
		assert.Error(t, configureSaleWindowRequest{adminRequest: adminRequest{Caller: "0xowner"}, SaleEnd: 1}.Validate())
		assert.Error(t, configureSaleWindowRequest{adminRequest: adminRequest{Caller: "0xowner"}, SaleStart: 1}.Validate())
	})
	t.Run("claim window", func(t *testing.T) {
		t.Parallel()
		valid := configureClaimRequest{adminRequest: adminRequest{Caller: "0xowner"}, ClaimStart: 1_700_000_000, Reserve: 250_000_000}
		assert.NoError(t, valid.Validate())
		assert.Error(t, configureClaimRequest{adminRequest: adminRequest{Caller: "0xowner"}, Reserve: 1}.Validate())
		assert.Error(t, configureClaimRequest{adminRequest: adminRequest{Caller: "0xowner"}, ClaimStart: 1}.Validate())
	})
	t.Run("reconfigure claim start", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, reconfigureClaimStartRequest{adminRequest: adminRequest{Caller: "0xowner"}, ClaimStart: 1_700_000_000}.Validate())
		assert.Error(t, reconfigureClaimStartRequest{adminRequest: adminRequest{Caller: "0xowner"}}.Validate())
	})
}

func TestMapDomainError(t *testing.T) {
	t.Run("domain kinds become public with code", func(t *testing.T) {
		t.Parallel()
		err := mapDomainError(errors.Wrap(errs.InsufficientAllowance, "allowance 0, want 15000"))
		var pubErr *errs.PublicError
		require.ErrorAs(t, err, &pubErr)
		assert.Equal(t, string(errs.InsufficientAllowance), pubErr.Code())
		assert.ErrorIs(t, err, errs.InsufficientAllowance)
	})
	t.Run("unknown errors stay internal", func(t *testing.T) {
		t.Parallel()
		err := mapDomainError(errors.New("pg connection reset"))
		var pubErr *errs.PublicError
		assert.False(t, errors.As(err, &pubErr))
	})
	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, mapDomainError(nil))
	})
}

func TestNewAmount(t *testing.T) {
	t.Run("renders raw and scaled value", func(t *testing.T) {
		t.Parallel()
		a := newAmount(uint256.NewInt(15_000_000), 6)
		require.NotNil(t, a)
		assert.Equal(t, "15000000", a.Raw)
		assert.True(t, a.Decimal.Equal(decimal.RequireFromString("15")))
	})
	t.Run("nil value", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, newAmount(nil, 6))
	})
}
