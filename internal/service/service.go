package service

import (
	"context"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/utils"
)

// AcceptResult reports what proposal acceptance created downstream.
type AcceptResult struct {
	ProjectID             int32 `json:"project_id"`
	CalendarEventsCreated int   `json:"calendar_events_created"`
	TransactionsCreated   int   `json:"transactions_created"`
}

type ProposalService interface {
	Create(ctx context.Context, p *domain.Proposal) (*domain.Proposal, error)
	Get(ctx context.Context, id int32) (*domain.Proposal, utils.ProposalTotals, error)
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Proposal, int32, error)
	UpdateDetails(ctx context.Context, id int32, title, description string, discountPct float64, validUntil *time.Time) (*domain.Proposal, utils.ProposalTotals, error)
	Send(ctx context.Context, id int32) (*domain.Proposal, error)
	Reject(ctx context.Context, id int32) (*domain.Proposal, error)
	Accept(ctx context.Context, id int32) (*AcceptResult, error)

	AddItem(ctx context.Context, item *domain.LineItem) (utils.ProposalTotals, error)
	UpdateItem(ctx context.Context, item *domain.LineItem) (utils.ProposalTotals, error)
	RemoveItem(ctx context.Context, proposalID, itemID int32) (utils.ProposalTotals, error)
	AddOptional(ctx context.Context, op *domain.Optional) (utils.ProposalTotals, error)
	UpdateOptional(ctx context.Context, op *domain.Optional) (utils.ProposalTotals, error)
	RemoveOptional(ctx context.Context, proposalID, optionalID int32) (utils.ProposalTotals, error)
	AddScheduleEntry(ctx context.Context, entry *domain.PaymentScheduleEntry) (*domain.Proposal, error)
	RemoveScheduleEntry(ctx context.Context, proposalID, entryID int32) error

	// Public (share-token) surface used by the prospective client.
	GetByShareToken(ctx context.Context, token string) (*domain.Proposal, utils.ProposalTotals, error)
	ToggleOptional(ctx context.Context, token string, optionalID int32, selected bool) (utils.ProposalTotals, error)
	AcceptByShareToken(ctx context.Context, token string) (*AcceptResult, error)
}

type TransactionService interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	Get(ctx context.Context, id int32) (*domain.Transaction, error)
	List(ctx context.Context, txType, status string, page, pageSize int32) ([]domain.Transaction, int32, error)
	MarkAsPaid(ctx context.Context, id int32) (*domain.Transaction, error)
	Schedule(ctx context.Context, id int32) (*domain.Transaction, error)
	Cancel(ctx context.Context, id int32) (*domain.Transaction, error)
	// Update edits amount, category, dates and notes. Editing a PAID
	// transaction is allowed but returns a warning since historical cash
	// figures shift.
	Update(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, []string, error)
}

type ProjectService interface {
	Get(ctx context.Context, id int32) (*domain.Project, error)
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Project, int32, error)
	JobCosting(ctx context.Context, projectID int32) (*utils.JobCosting, error)

	AddMember(ctx context.Context, m *domain.ProjectMember) (*domain.ProjectMember, error)
	UpdateMemberStatus(ctx context.Context, projectID, memberID int32, status domain.ProjectMemberStatus) (*domain.ProjectMember, error)
	SetMemberFee(ctx context.Context, projectID, memberID int32, feeCents *int64) (*domain.ProjectMember, error)
	ListMembers(ctx context.Context, projectID int32) ([]domain.ProjectMember, error)

	AddExpense(ctx context.Context, e *domain.ProjectExpense) (*domain.ProjectExpense, error)
	UpdateExpense(ctx context.Context, e *domain.ProjectExpense) (*domain.ProjectExpense, error)
	ListExpenses(ctx context.Context, projectID int32) ([]domain.ProjectExpense, error)

	ListCalendarEvents(ctx context.Context, projectID int32) ([]domain.CalendarEvent, error)
	SetFinancialSummary(ctx context.Context, s *domain.FinancialSummary) error
}

type EquipmentService interface {
	Create(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error)
	Get(ctx context.Context, id int32) (*domain.Equipment, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error)
	ROI(ctx context.Context, equipmentID int32) (*utils.EquipmentROI, error)
	// RecordBooking accrues booked days and revenue at the equipment's
	// current day rate, snapshotted on the booking. A non-nil rateOverride
	// replaces the snapshot rate, zero included.
	RecordBooking(ctx context.Context, b *domain.EquipmentBooking, rateOverride *int64) (*domain.Equipment, error)
	ListBookings(ctx context.Context, equipmentID int32) ([]domain.EquipmentBooking, error)
}

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	Get(ctx context.Context, id int32) (*domain.Client, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Client, int32, error)
	Update(ctx context.Context, c *domain.Client) (*domain.Client, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendProposalLink(ctx context.Context, clientEmail, clientName, proposalTitle, link string) error
	SendProposalAcceptedNotice(ctx context.Context, email, proposalTitle string, totalCents int64) error
	SendPaymentOverdueReminder(ctx context.Context, email, description string, amountCents int64, dueDate time.Time) error
}
