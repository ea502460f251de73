package domain

import "time"

type TransactionType string

const (
	TransactionTypeIncome         TransactionType = "INCOME"
	TransactionTypeExpense        TransactionType = "EXPENSE"
	TransactionTypeInitialCapital TransactionType = "INITIAL_CAPITAL"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusScheduled TransactionStatus = "SCHEDULED"
	TransactionStatusPaid      TransactionStatus = "PAID"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// Terminal reports whether no further transition may leave this status.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusPaid || s == TransactionStatusCancelled
}

type TransactionCategory string

const (
	CategoryClientPayment  TransactionCategory = "CLIENT_PAYMENT"
	CategoryCrewTalent     TransactionCategory = "CREW_TALENT"
	CategoryEquipmentBuy   TransactionCategory = "EQUIPMENT_PURCHASE"
	CategoryEquipmentRent  TransactionCategory = "EQUIPMENT_RENTAL"
	CategoryOfficeRent     TransactionCategory = "OFFICE_RENT"
	CategorySoftware       TransactionCategory = "SOFTWARE"
	CategoryTravel         TransactionCategory = "TRAVEL"
	CategoryMarketing      TransactionCategory = "MARKETING"
	CategoryInitialCapital TransactionCategory = "INITIAL_CAPITAL"
	CategoryOther          TransactionCategory = "OTHER"
)

type Transaction struct {
	ID           int32               `json:"id"`
	Type         TransactionType     `json:"type"`
	Category     TransactionCategory `json:"category"`
	AmountCents  int64               `json:"amount_cents"`
	Status       TransactionStatus   `json:"status"`
	Description  string              `json:"description"`
	DueDate      *time.Time          `json:"due_date,omitempty"`
	PaymentDate  *time.Time          `json:"payment_date,omitempty"`
	ProjectID    *int32              `json:"project_id,omitempty"`
	ProposalID   *int32              `json:"proposal_id,omitempty"`
	FreelancerID *int32              `json:"freelancer_id,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	CreatedOn    time.Time           `json:"created_on"`
	UpdatedOn    time.Time           `json:"updated_on"`
}

// IsOverdue is derived, never stored: a transaction is overdue when its
// due date has passed, it is still awaiting settlement, and no payment
// has been recorded. PAID and CANCELLED are never overdue.
func (t *Transaction) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.PaymentDate != nil {
		return false
	}
	if t.Status != TransactionStatusPending && t.Status != TransactionStatusScheduled {
		return false
	}
	return t.DueDate.Before(now)
}
