package engine

import (
	"testing"

	"github.com/asi-network/presale-engine/common/errs"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStages() []Stage {
	return []Stage{
		{Threshold: 40_000_000, Price: uint256.NewInt(15_000)},
		{Threshold: 102_500_000, Price: uint256.NewInt(18_750)},
		{Threshold: 175_000_000, Price: uint256.NewInt(21_010)},
		{Threshold: 250_000_000, Price: uint256.NewInt(22_740)},
	}
}

func TestNewStageTable(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		table, err := newStageTable(testStages())
		require.NoError(t, err)
		assert.Equal(t, uint64(250_000_000), table.cap())
	})
	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		_, err := newStageTable(nil)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
	t.Run("non increasing thresholds", func(t *testing.T) {
		t.Parallel()
		_, err := newStageTable([]Stage{
			{Threshold: 100, Price: uint256.NewInt(1)},
			{Threshold: 100, Price: uint256.NewInt(2)},
		})
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
	t.Run("zero price", func(t *testing.T) {
		t.Parallel()
		_, err := newStageTable([]Stage{{Threshold: 100, Price: uint256.NewInt(0)}})
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
	t.Run("nil price", func(t *testing.T) {
		t.Parallel()
		_, err := newStageTable([]Stage{{Threshold: 100}})
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
}

func TestStageTablePriceAt(t *testing.T) {
	table, err := newStageTable(testStages())
	require.NoError(t, err)

	test := func(name string, sold uint64, expected uint64) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, uint256.NewInt(expected), table.priceAt(sold))
		})
	}

	test("first stage", 0, 15_000)
	test("last token of first stage", 39_999_999, 15_000)
	test("first token of second stage", 40_000_000, 18_750)
	test("third stage", 150_000_000, 21_010)
	test("final stage", 200_000_000, 22_740)
	test("at limit", 250_000_000, 22_740)
	test("above limit", 300_000_000, 22_740)
}

func TestStageTableQuote(t *testing.T) {
	table, err := newStageTable(testStages())
	require.NoError(t, err)

	test := func(name string, sold, amount uint64, expected *uint256.Int) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			actual, err := table.quote(sold, amount)
			require.NoError(t, err)
			assert.Equal(t, expected, actual)
		})
	}
	testError := func(name string, sold, amount uint64, expectedError error) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := table.quote(sold, amount)
			assert.ErrorIs(t, err, expectedError)
		})
	}

	test("single stage", 0, 1_000, uint256.NewInt(15_000_000))
	test("single token", 0, 1, uint256.NewInt(15_000))
	test("exact stage boundary", 0, 40_000_000, uint256.NewInt(600_000_000_000))
	// 500 tokens at 15,000 plus 500 tokens at 18,750
	test("straddles boundary", 39_999_500, 1_000, uint256.NewInt(16_875_000))
	test("starts at boundary", 40_000_000, 1_000, uint256.NewInt(18_750_000))
	// blended total across all four stages
	test("entire presale", 0, 250_000_000, func() *uint256.Int {
		total := uint256.NewInt(0)
		total.Add(total, new(uint256.Int).Mul(uint256.NewInt(40_000_000), uint256.NewInt(15_000)))
		total.Add(total, new(uint256.Int).Mul(uint256.NewInt(62_500_000), uint256.NewInt(18_750)))
		total.Add(total, new(uint256.Int).Mul(uint256.NewInt(72_500_000), uint256.NewInt(21_010)))
		total.Add(total, new(uint256.Int).Mul(uint256.NewInt(75_000_000), uint256.NewInt(22_740)))
		return total
	}())

	testError("zero amount", 0, 0, errs.ZeroAmount)
	testError("exceeds limit", 0, 250_000_001, errs.PresaleLimitExceeded)
	testError("exceeds remaining", 249_999_999, 2, errs.PresaleLimitExceeded)
	testError("sold out", 250_000_000, 1, errs.PresaleLimitExceeded)
}

func TestStageTableRevenueAt(t *testing.T) {
	table, err := newStageTable(testStages())
	require.NoError(t, err)

	assert.Equal(t, uint256.NewInt(0), table.revenueAt(0))
	assert.Equal(t, uint256.NewInt(15_000_000), table.revenueAt(1_000))

	// 40M at 15,000 plus 500 at 18,750
	expected := new(uint256.Int).Mul(uint256.NewInt(40_000_000), uint256.NewInt(15_000))
	expected.Add(expected, uint256.NewInt(9_375_000))
	assert.Equal(t, expected, table.revenueAt(40_000_500))
}
