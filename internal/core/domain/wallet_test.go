package domain_test

import (
	"testing"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.MustParse(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.MustParse(s)
	return &d
}

func TestWallet_SweepAmount(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		percent string
		want    string
	}{
		{name: "quarter", balance: "200.00", percent: "25", want: "50.00"},
		{name: "full", balance: "75.10", percent: "100", want: "75.10"},
		{name: "truncated to cents", balance: "10.00", percent: "33.333", want: "3.33"},
		{name: "capped by balance", balance: "10.00", percent: "150", want: "10.00"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := domain.Wallet{CashBalance: dec(test.balance), SweepPercentage: dec(test.percent)}
			got, err := w.SweepAmount()
			require.NoError(t, err)
			assert.Zero(t, dec(test.want).Cmp(got), "got %s", got)
		})
	}
}

func TestAllocate(t *testing.T) {
	type allocateTest struct {
		name  string
		total string
		picks []domain.Pick
		want  map[string]string
	}

	tests := []allocateTest{
		{
			name:  "equal split, remainder on last symbol",
			total: "100.00",
			picks: []domain.Pick{{Symbol: "MSFT"}, {Symbol: "AAPL"}, {Symbol: "NVDA"}},
			want:  map[string]string{"AAPL": "33.33", "MSFT": "33.33", "NVDA": "33.34"},
		},
		{
			name:  "custom allocations",
			total: "10.00",
			picks: []domain.Pick{
				{Symbol: "AAPL", Allocation: decPtr("60")},
				{Symbol: "MSFT", Allocation: decPtr("40")},
			},
			want: map[string]string{"AAPL": "6.00", "MSFT": "4.00"},
		},
		{
			name:  "custom allocations normalized",
			total: "9.00",
			picks: []domain.Pick{
				{Symbol: "AAPL", Allocation: decPtr("1")},
				{Symbol: "MSFT", Allocation: decPtr("2")},
				{Symbol: "TSLA"},
			},
			want: map[string]string{"AAPL": "3.00", "MSFT": "6.00"},
		},
		{
			name:  "nothing to allocate",
			total: "0",
			picks: []domain.Pick{{Symbol: "AAPL"}},
			want:  map[string]string{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := domain.Allocate(dec(test.total), test.picks)
			require.NoError(t, err)
			require.Len(t, got, len(test.want))

			sum := decimal.Zero
			for _, a := range got {
				want, ok := test.want[a.Symbol]
				require.True(t, ok, "unexpected symbol %s", a.Symbol)
				assert.Zero(t, dec(want).Cmp(a.Amount), "%s: got %s", a.Symbol, a.Amount)
				sum, err = sum.Add(a.Amount)
				require.NoError(t, err)
			}
			if len(got) > 0 {
				assert.Zero(t, dec(test.total).Cmp(sum))
			}
		})
	}
}
