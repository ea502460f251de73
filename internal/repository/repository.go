package repository

import (
	"context"
	"errors"
	"time"

	"reelstudio-backend/internal/domain"
)

// ErrNotFound is returned by all repositories when a record id or token
// does not resolve.
var ErrNotFound = errors.New("record not found")

// Repositories bundles every repository for callers that need more than
// one inside a single unit of work.
type Repositories struct {
	Proposals     ProposalRepository
	Transactions  TransactionRepository
	Projects      ProjectRepository
	Equipment     EquipmentRepository
	Clients       ClientRepository
	Notifications NotificationRepository
}

// TxRunner executes fn against repositories that share one database
// transaction; an error from fn rolls everything back. Proposal
// acceptance runs its five sub-steps through this.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}

type ProposalRepository interface {
	Create(ctx context.Context, p *domain.Proposal) error
	GetByID(ctx context.Context, id int32) (*domain.Proposal, error)
	GetByShareToken(ctx context.Context, token string) (*domain.Proposal, error)
	Update(ctx context.Context, p *domain.Proposal) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Proposal, int32, error)
	// ListExpiring returns outstanding (SENT or VIEWED) proposals whose
	// valid_until has passed the cutoff, for reminder jobs.
	ListExpiring(ctx context.Context, cutoff time.Time) ([]domain.Proposal, error)

	CreateItem(ctx context.Context, item *domain.LineItem) error
	UpdateItem(ctx context.Context, item *domain.LineItem) error
	DeleteItem(ctx context.Context, proposalID, itemID int32) error

	CreateOptional(ctx context.Context, op *domain.Optional) error
	UpdateOptional(ctx context.Context, op *domain.Optional) error
	DeleteOptional(ctx context.Context, proposalID, optionalID int32) error
	// SetOptionalSelection persists the public-view toggle on its own so
	// the stored selection and the displayed total never diverge.
	SetOptionalSelection(ctx context.Context, proposalID, optionalID int32, selected bool) error

	CreateScheduleEntry(ctx context.Context, entry *domain.PaymentScheduleEntry) error
	DeleteScheduleEntry(ctx context.Context, proposalID, entryID int32) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id int32) (*domain.Transaction, error)
	Update(ctx context.Context, tx *domain.Transaction) error
	List(ctx context.Context, txType, status string, page, pageSize int32) ([]domain.Transaction, int32, error)
	ListByProject(ctx context.Context, projectID int32) ([]domain.Transaction, error)
	ListDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Transaction, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int32) (*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Project, int32, error)

	AddMember(ctx context.Context, m *domain.ProjectMember) error
	UpdateMember(ctx context.Context, m *domain.ProjectMember) error
	ListMembers(ctx context.Context, projectID int32) ([]domain.ProjectMember, error)

	AddExpense(ctx context.Context, e *domain.ProjectExpense) error
	UpdateExpense(ctx context.Context, e *domain.ProjectExpense) error
	ListExpenses(ctx context.Context, projectID int32) ([]domain.ProjectExpense, error)

	CreateCalendarEvent(ctx context.Context, ev *domain.CalendarEvent) error
	ListCalendarEvents(ctx context.Context, projectID int32) ([]domain.CalendarEvent, error)

	GetFinancialSummary(ctx context.Context, projectID int32) (*domain.FinancialSummary, error)
	UpsertFinancialSummary(ctx context.Context, s *domain.FinancialSummary) error
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error)

	CreateBooking(ctx context.Context, b *domain.EquipmentBooking) error
	ListBookings(ctx context.Context, equipmentID int32) ([]domain.EquipmentBooking, error)
}

type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id int32) (*domain.Client, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.Client, int32, error)
	Update(ctx context.Context, c *domain.Client) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
