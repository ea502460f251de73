package utils

import (
	"math"

	"reelstudio-backend/internal/domain"
)

// ProposalTotals provides the monetary breakdown of a proposal. All
// figures are recomputed from the current items, optionals and discount
// on every read; nothing here is persisted except the acceptance
// snapshot taken by the proposal service.
type ProposalTotals struct {
	BaseCents      int64   `json:"base_cents"`
	DiscountCents  int64   `json:"discount_cents"`
	OptionalsCents int64   `json:"optionals_cents"`
	TotalCents     int64   `json:"total_cents"`
	DiscountPct    float64 `json:"discount_percent"`
}

// ComputeProposalTotals calculates base, discount, selected-optionals and
// total values. The discount percentage is applied to the base only,
// never to optionals. It is deliberately not clamped to [0,100]; a
// discount above 100% yields a negative total, matching the behavior of
// the back-office screens.
func ComputeProposalTotals(items []domain.LineItem, optionals []domain.Optional, discountPct float64) ProposalTotals {
	var base int64
	for _, it := range items {
		base += it.TotalCents()
	}

	var selected int64
	for _, op := range optionals {
		if op.IsSelected {
			selected += op.PriceCents
		}
	}

	discount := PercentOfCents(base, discountPct)

	return ProposalTotals{
		BaseCents:      base,
		DiscountCents:  discount,
		OptionalsCents: selected,
		TotalCents:     base + selected - discount,
		DiscountPct:    discountPct,
	}
}

// PercentOfCents applies a percentage to a cents amount, rounding half
// away from zero at the cents boundary.
func PercentOfCents(baseCents int64, pct float64) int64 {
	return int64(math.Round(float64(baseCents) * pct / 100))
}

// SplitBySchedule resolves a payment schedule against an accepted total.
// Percent entries are computed against the total; fixed entries pass
// through. The rounding remainder lands on the last entry so the parts
// always sum to the total. An empty schedule returns a single part
// covering the whole amount.
func SplitBySchedule(totalCents int64, schedule []domain.PaymentScheduleEntry) []int64 {
	if len(schedule) == 0 {
		return []int64{totalCents}
	}

	parts := make([]int64, len(schedule))
	var allocated int64
	for i, entry := range schedule {
		if i == len(schedule)-1 {
			parts[i] = totalCents - allocated
			break
		}
		switch {
		case entry.AmountCents != nil:
			parts[i] = *entry.AmountCents
		case entry.Percent != nil:
			parts[i] = PercentOfCents(totalCents, *entry.Percent)
		}
		allocated += parts[i]
	}
	return parts
}
