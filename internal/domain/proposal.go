package domain

import "time"

type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "DRAFT"
	ProposalStatusSent     ProposalStatus = "SENT"
	ProposalStatusViewed   ProposalStatus = "VIEWED"
	ProposalStatusAccepted ProposalStatus = "ACCEPTED"
	ProposalStatusRejected ProposalStatus = "REJECTED"
	ProposalStatusExpired  ProposalStatus = "EXPIRED"
)

// Editable reports whether pricing inputs (items, optionals, discount)
// may still be changed in this status.
func (s ProposalStatus) Editable() bool {
	return s == ProposalStatusDraft || s == ProposalStatusSent
}

// Terminal reports whether the proposal has reached a final decision and
// can no longer change status.
func (s ProposalStatus) Terminal() bool {
	return s == ProposalStatusAccepted || s == ProposalStatusRejected
}

type Proposal struct {
	ID              int32          `json:"id"`
	ClientID        int32          `json:"client_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DiscountPercent float64        `json:"discount_percent"`
	ValidUntil      *time.Time     `json:"valid_until,omitempty"`
	Status          ProposalStatus `json:"status"`
	ShareToken      string         `json:"share_token,omitempty"`
	// AcceptedTotalCents is the snapshot taken at acceptance time. Later
	// edits to items or discount never change it.
	AcceptedTotalCents *int64     `json:"accepted_total_cents,omitempty"`
	AcceptedOn         *time.Time `json:"accepted_on,omitempty"`
	LineItems          []LineItem `json:"line_items"`
	Optionals          []Optional `json:"optionals"`
	PaymentSchedule    []PaymentScheduleEntry `json:"payment_schedule,omitempty"`
	PortfolioVideos    []PortfolioVideo       `json:"portfolio_videos,omitempty"`
	CreatedOn          time.Time              `json:"created_on"`
	UpdatedOn          time.Time              `json:"updated_on"`
}

// EffectiveStatus applies the display-time expiry check: a proposal past
// its valid-until date reads as EXPIRED unless it already reached a
// terminal status. Nothing is written back.
func (p *Proposal) EffectiveStatus(now time.Time) ProposalStatus {
	if p.Status.Terminal() {
		return p.Status
	}
	if p.ValidUntil != nil && p.ValidUntil.Before(now) {
		return ProposalStatusExpired
	}
	return p.Status
}

type LineItem struct {
	ID             int32      `json:"id"`
	ProposalID     int32      `json:"proposal_id"`
	Description    string     `json:"description"`
	Quantity       int32      `json:"quantity"`
	UnitPriceCents int64      `json:"unit_price_cents"`
	EventDate      *time.Time `json:"event_date,omitempty"`
	SortOrder      int32      `json:"sort_order"`
}

// TotalCents is quantity times unit price.
func (li LineItem) TotalCents() int64 {
	return int64(li.Quantity) * li.UnitPriceCents
}

type Optional struct {
	ID          int32      `json:"id"`
	ProposalID  int32      `json:"proposal_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	PriceCents  int64      `json:"price_cents"`
	IsSelected  bool       `json:"is_selected"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	SortOrder   int32      `json:"sort_order"`
}

// PaymentScheduleEntry splits the accepted value into receivables. Either
// Percent or AmountCents is set; percent entries are resolved against the
// accepted total.
type PaymentScheduleEntry struct {
	ID          int32      `json:"id"`
	ProposalID  int32      `json:"proposal_id"`
	Description string     `json:"description"`
	Percent     *float64   `json:"percent,omitempty"`
	AmountCents *int64     `json:"amount_cents,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	SortOrder   int32      `json:"sort_order"`
}

type PortfolioVideo struct {
	ID         int32  `json:"id"`
	ProposalID int32  `json:"proposal_id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}
