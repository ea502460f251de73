package domain

import "time"

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "PLANNING"
	ProjectStatusProduction ProjectStatus = "PRODUCTION"
	ProjectStatusPostProd   ProjectStatus = "POST_PRODUCTION"
	ProjectStatusDelivered  ProjectStatus = "DELIVERED"
	ProjectStatusArchived   ProjectStatus = "ARCHIVED"
)

type Project struct {
	ID          int32         `json:"id"`
	ClientID    int32         `json:"client_id"`
	ProposalID  *int32        `json:"proposal_id,omitempty"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	// BudgetCents is the approved value snapshotted from the proposal at
	// acceptance time, or entered manually for projects without one.
	BudgetCents *int64    `json:"budget_cents,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedOn   time.Time  `json:"created_on"`
	UpdatedOn   time.Time  `json:"updated_on"`
}

type ProjectMemberStatus string

const (
	MemberStatusInvited   ProjectMemberStatus = "INVITED"
	MemberStatusConfirmed ProjectMemberStatus = "CONFIRMED"
	MemberStatusDeclined  ProjectMemberStatus = "DECLINED"
	MemberStatusRemoved   ProjectMemberStatus = "REMOVED"
)

type ProjectMember struct {
	ID           int32               `json:"id"`
	ProjectID    int32               `json:"project_id"`
	FreelancerID int32               `json:"freelancer_id"`
	Role         string              `json:"role"`
	// AgreedFeeCents counts toward team costs whenever set, regardless of
	// confirmation status.
	AgreedFeeCents *int64              `json:"agreed_fee_cents,omitempty"`
	Status         ProjectMemberStatus `json:"status"`
	CreatedOn      time.Time           `json:"created_on"`
}

type ExpensePaymentStatus string

const (
	ExpenseUnpaid ExpensePaymentStatus = "UNPAID"
	ExpensePaid   ExpensePaymentStatus = "PAID"
)

type ProjectExpense struct {
	ID                 int32                `json:"id"`
	ProjectID          int32                `json:"project_id"`
	Category           TransactionCategory  `json:"category"`
	Description        string               `json:"description"`
	EstimatedCostCents *int64               `json:"estimated_cost_cents,omitempty"`
	ActualCostCents    *int64               `json:"actual_cost_cents,omitempty"`
	PaymentStatus      ExpensePaymentStatus `json:"payment_status"`
	CreatedOn          time.Time            `json:"created_on"`
}

// EffectiveCostCents prefers the actual cost, falls back to the estimate,
// and contributes zero when neither is recorded.
func (e ProjectExpense) EffectiveCostCents() int64 {
	if e.ActualCostCents != nil {
		return *e.ActualCostCents
	}
	if e.EstimatedCostCents != nil {
		return *e.EstimatedCostCents
	}
	return 0
}

// CalendarEvent is a project schedule entry. Events created from proposal
// acceptance carry the originating line item or optional id.
type CalendarEvent struct {
	ID               int32     `json:"id"`
	ProjectID        int32     `json:"project_id"`
	Title            string    `json:"title"`
	EventDate        time.Time `json:"event_date"`
	SourceItemID     *int32    `json:"source_item_id,omitempty"`
	SourceOptionalID *int32    `json:"source_optional_id,omitempty"`
	CreatedOn        time.Time `json:"created_on"`
}

// FinancialSummary holds per-project revenue figures maintained by the
// bookkeeping screens. Any field may be absent; job costing resolves the
// project value through an ordered fallback chain.
type FinancialSummary struct {
	ProjectID          int32  `json:"project_id"`
	TotalRevenueCents  *int64 `json:"total_revenue_cents,omitempty"`
	ApprovedValueCents *int64 `json:"approved_value_cents,omitempty"`
}
