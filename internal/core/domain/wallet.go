package domain

import (
	"fmt"
	"sort"

	"github.com/govalues/decimal"
)

const WalletStatusActive = "active"

// Wallet is the ledger collaborator's view of a member. The pipeline never computes
// balances itself.
type Wallet struct {
	MemberID        string          `json:"member_id"`
	MerchantID      string          `json:"merchant_id"`
	BrokerID        string          `json:"broker_id"`
	CashBalance     decimal.Decimal `json:"cash_balance"`
	SweepPercentage decimal.Decimal `json:"sweep_percentage"`
	Status          string          `json:"status"`
}

func (w *Wallet) Enrolled() bool {
	return w.Status == WalletStatusActive && w.SweepPercentage.IsPos()
}

// SweepAmount is the part of the cash balance the member asked to sweep, in cents.
func (w *Wallet) SweepAmount() (decimal.Decimal, error) {
	part, err := w.CashBalance.Mul(w.SweepPercentage)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sweep amount: %w", err)
	}
	part, err = part.Quo(decimal.Hundred)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sweep amount: %w", err)
	}
	if part.Cmp(w.CashBalance) > 0 {
		part = w.CashBalance
	}
	return part.Trunc(2), nil
}

// Pick is a member's chosen symbol. Allocation is a custom percentage, nil when unset.
type Pick struct {
	MemberID   string           `json:"member_id"`
	Symbol     string           `json:"symbol"`
	Allocation *decimal.Decimal `json:"allocation,omitempty"`
}

type Allocation struct {
	Symbol string
	Amount decimal.Decimal
}

// Allocate splits total across picks. When any pick has a custom allocation the custom
// values are normalized to 100% and picks without one get nothing; otherwise the split
// is equal. The rounding remainder lands on the last symbol.
func Allocate(total decimal.Decimal, picks []Pick) ([]Allocation, error) {
	if !total.IsPos() || len(picks) == 0 {
		return nil, nil
	}

	sorted := make([]Pick, len(picks))
	copy(sorted, picks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Symbol < sorted[j].Symbol })

	type weighted struct {
		symbol string
		weight decimal.Decimal
	}
	var weights []weighted
	sum := decimal.Zero
	for _, p := range sorted {
		if p.Allocation != nil && p.Allocation.IsPos() {
			weights = append(weights, weighted{symbol: p.Symbol, weight: *p.Allocation})
			var err error
			if sum, err = sum.Add(*p.Allocation); err != nil {
				return nil, fmt.Errorf("allocate: %w", err)
			}
		}
	}
	if len(weights) == 0 {
		for _, p := range sorted {
			weights = append(weights, weighted{symbol: p.Symbol, weight: decimal.One})
		}
		sum = decimal.MustNew(int64(len(weights)), 0)
	}

	result := make([]Allocation, 0, len(weights))
	rest := total
	for i, w := range weights {
		amount := rest
		if i < len(weights)-1 {
			share, err := total.Mul(w.weight)
			if err != nil {
				return nil, fmt.Errorf("allocate: %w", err)
			}
			if share, err = share.Quo(sum); err != nil {
				return nil, fmt.Errorf("allocate: %w", err)
			}
			amount = share.Trunc(2)
			if rest, err = rest.Sub(amount); err != nil {
				return nil, fmt.Errorf("allocate: %w", err)
			}
		}
		if !amount.IsPos() {
			continue
		}
		result = append(result, Allocation{Symbol: w.symbol, Amount: amount})
	}
	return result, nil
}
