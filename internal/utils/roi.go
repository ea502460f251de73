package utils

import "reelstudio-backend/internal/domain"

// EquipmentROI reports how much of an asset's purchase price its booking
// revenue has recovered. ROIPercent is nil when the purchase price is
// zero or negative (undefined, never Inf or NaN). RecoveryGapCents is
// how far the asset is from paying for itself; zero once it has.
type EquipmentROI struct {
	PurchasePriceCents int64    `json:"purchase_price_cents"`
	TotalRevenueCents  int64    `json:"total_revenue_cents"`
	TotalDaysBooked    int32    `json:"total_days_booked"`
	ROIPercent         *float64 `json:"roi_percent,omitempty"`
	PaidForItself      bool     `json:"paid_for_itself"`
	RecoveryGapCents   int64    `json:"recovery_gap_cents"`
}

// ComputeEquipmentROI derives the ROI figures from the asset's accrued
// booking totals.
func ComputeEquipmentROI(eq *domain.Equipment) EquipmentROI {
	roi := EquipmentROI{
		PurchasePriceCents: eq.PurchasePriceCents,
		TotalRevenueCents:  eq.TotalRevenueGeneratedCents,
		TotalDaysBooked:    eq.TotalDaysBooked,
	}
	if eq.PurchasePriceCents <= 0 {
		return roi
	}

	pct := float64(eq.TotalRevenueGeneratedCents) / float64(eq.PurchasePriceCents) * 100
	roi.ROIPercent = &pct
	roi.PaidForItself = pct >= 100
	if gap := eq.PurchasePriceCents - eq.TotalRevenueGeneratedCents; gap > 0 {
		roi.RecoveryGapCents = gap
	}
	return roi
}
