package utils

import (
	"testing"

	"reelstudio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestComputeProposalTotals(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: 2, UnitPriceCents: 10000},
		{Quantity: 1, UnitPriceCents: 5000},
	}
	optionals := []domain.Optional{
		{PriceCents: 3000, IsSelected: true},
		{PriceCents: 8000, IsSelected: false},
	}

	t.Run("FullBreakdown", func(t *testing.T) {
		totals := ComputeProposalTotals(items, optionals, 10)
		assert.Equal(t, int64(25000), totals.BaseCents)
		assert.Equal(t, int64(2500), totals.DiscountCents)
		assert.Equal(t, int64(3000), totals.OptionalsCents)
		assert.Equal(t, int64(25500), totals.TotalCents)
	})

	t.Run("DiscountAppliesToBaseOnly", func(t *testing.T) {
		selected := []domain.Optional{{PriceCents: 10000, IsSelected: true}}
		totals := ComputeProposalTotals(items, selected, 50)
		// 25000 - 12500 + 10000, the optional is untouched by the discount
		assert.Equal(t, int64(12500), totals.DiscountCents)
		assert.Equal(t, int64(22500), totals.TotalCents)
	})

	t.Run("ZeroDiscount", func(t *testing.T) {
		totals := ComputeProposalTotals(items, nil, 0)
		assert.Equal(t, int64(0), totals.DiscountCents)
		assert.Equal(t, int64(25000), totals.TotalCents)
	})

	t.Run("DiscountOverHundredGoesNegative", func(t *testing.T) {
		totals := ComputeProposalTotals(items, nil, 150)
		assert.Equal(t, int64(37500), totals.DiscountCents)
		assert.Equal(t, int64(-12500), totals.TotalCents)
	})

	t.Run("EmptyProposal", func(t *testing.T) {
		totals := ComputeProposalTotals(nil, nil, 10)
		assert.Equal(t, int64(0), totals.BaseCents)
		assert.Equal(t, int64(0), totals.TotalCents)
	})

	t.Run("ToggleOptionalMovesTotalByItsPrice", func(t *testing.T) {
		off := ComputeProposalTotals(items, []domain.Optional{{PriceCents: 3000}}, 10)
		on := ComputeProposalTotals(items, []domain.Optional{{PriceCents: 3000, IsSelected: true}}, 10)
		assert.Equal(t, off.TotalCents+3000, on.TotalCents)
	})
}

func TestPercentOfCents(t *testing.T) {
	assert.Equal(t, int64(2500), PercentOfCents(25000, 10))
	// rounding at the cents boundary
	assert.Equal(t, int64(33), PercentOfCents(999, 3.3))
	assert.Equal(t, int64(0), PercentOfCents(0, 50))
}

func TestSplitBySchedule(t *testing.T) {
	pct := func(v float64) *float64 { return &v }
	amt := func(v int64) *int64 { return &v }

	t.Run("EmptyScheduleSinglePart", func(t *testing.T) {
		parts := SplitBySchedule(25500, nil)
		assert.Equal(t, []int64{25500}, parts)
	})

	t.Run("PercentSplitRemainderOnLast", func(t *testing.T) {
		schedule := []domain.PaymentScheduleEntry{
			{Percent: pct(33.33)},
			{Percent: pct(33.33)},
			{Percent: pct(33.34)},
		}
		parts := SplitBySchedule(10001, schedule)
		assert.Len(t, parts, 3)
		var sum int64
		for _, p := range parts {
			sum += p
		}
		assert.Equal(t, int64(10001), sum)
	})

	t.Run("FixedAmounts", func(t *testing.T) {
		schedule := []domain.PaymentScheduleEntry{
			{AmountCents: amt(10000)},
			{AmountCents: amt(15500)},
		}
		parts := SplitBySchedule(25500, schedule)
		assert.Equal(t, []int64{10000, 15500}, parts)
	})

	t.Run("MixedPercentAndAmount", func(t *testing.T) {
		schedule := []domain.PaymentScheduleEntry{
			{Percent: pct(50)},
			{AmountCents: amt(5000)},
			{Percent: pct(30)},
		}
		parts := SplitBySchedule(20000, schedule)
		assert.Equal(t, []int64{10000, 5000, 5000}, parts)
	})
}
