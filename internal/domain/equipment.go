package domain

import "time"

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentStatusBooked      EquipmentStatus = "BOOKED"
	EquipmentStatusMaintenance EquipmentStatus = "MAINTENANCE"
	EquipmentStatusRetired     EquipmentStatus = "RETIRED"
)

type Equipment struct {
	ID                 int32           `json:"id"`
	Name               string          `json:"name"`
	Category           string          `json:"category"`
	SerialNumber       string          `json:"serial_number,omitempty"`
	PurchasePriceCents int64           `json:"purchase_price_cents"`
	DailyRateCents     int64           `json:"daily_rate_cents"`
	PurchaseDate       *time.Time      `json:"purchase_date,omitempty"`
	Status             EquipmentStatus `json:"status"`
	// Accrued from bookings; inputs to the ROI figures.
	TotalDaysBooked            int32     `json:"total_days_booked"`
	TotalRevenueGeneratedCents int64     `json:"total_revenue_generated_cents"`
	CreatedOn                  time.Time `json:"created_on"`
	UpdatedOn                  time.Time `json:"updated_on"`
}

// EquipmentBooking records a use of the asset on a project. DayRateCents
// is a snapshot of the equipment's rate when the booking was made.
type EquipmentBooking struct {
	ID           int32     `json:"id"`
	EquipmentID  int32     `json:"equipment_id"`
	ProjectID    *int32    `json:"project_id,omitempty"`
	Days         int32     `json:"days"`
	DayRateCents int64     `json:"day_rate_cents"`
	StartDate    time.Time `json:"start_date"`
	CreatedOn    time.Time `json:"created_on"`
}

// RevenueCents is the booking's contribution to the asset's revenue.
func (b EquipmentBooking) RevenueCents() int64 {
	return int64(b.Days) * b.DayRateCents
}
