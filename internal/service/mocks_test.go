package service_test

import (
	"context"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockProposalRepo
type MockProposalRepo struct {
	mock.Mock
}

func (m *MockProposalRepo) Create(ctx context.Context, p *domain.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProposalRepo) GetByID(ctx context.Context, id int32) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}
func (m *MockProposalRepo) GetByShareToken(ctx context.Context, token string) (*domain.Proposal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}
func (m *MockProposalRepo) Update(ctx context.Context, p *domain.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProposalRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Proposal, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Proposal), args.Get(1).(int32), args.Error(2)
}
func (m *MockProposalRepo) ListExpiring(ctx context.Context, cutoff time.Time) ([]domain.Proposal, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Proposal), args.Error(1)
}
func (m *MockProposalRepo) CreateItem(ctx context.Context, item *domain.LineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockProposalRepo) UpdateItem(ctx context.Context, item *domain.LineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockProposalRepo) DeleteItem(ctx context.Context, proposalID, itemID int32) error {
	args := m.Called(ctx, proposalID, itemID)
	return args.Error(0)
}
func (m *MockProposalRepo) CreateOptional(ctx context.Context, op *domain.Optional) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}
func (m *MockProposalRepo) UpdateOptional(ctx context.Context, op *domain.Optional) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}
func (m *MockProposalRepo) DeleteOptional(ctx context.Context, proposalID, optionalID int32) error {
	args := m.Called(ctx, proposalID, optionalID)
	return args.Error(0)
}
func (m *MockProposalRepo) SetOptionalSelection(ctx context.Context, proposalID, optionalID int32, selected bool) error {
	args := m.Called(ctx, proposalID, optionalID, selected)
	return args.Error(0)
}
func (m *MockProposalRepo) CreateScheduleEntry(ctx context.Context, entry *domain.PaymentScheduleEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockProposalRepo) DeleteScheduleEntry(ctx context.Context, proposalID, entryID int32) error {
	args := m.Called(ctx, proposalID, entryID)
	return args.Error(0)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) Update(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) List(ctx context.Context, txType, status string, page, pageSize int32) ([]domain.Transaction, int32, error) {
	args := m.Called(ctx, txType, status, page, pageSize)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockTransactionRepo) ListByProject(ctx context.Context, projectID int32) ([]domain.Transaction, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) ListDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProjectRepo) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProjectRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Project, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Project), args.Get(1).(int32), args.Error(2)
}
func (m *MockProjectRepo) AddMember(ctx context.Context, member *domain.ProjectMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockProjectRepo) UpdateMember(ctx context.Context, member *domain.ProjectMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockProjectRepo) ListMembers(ctx context.Context, projectID int32) ([]domain.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectMember), args.Error(1)
}
func (m *MockProjectRepo) AddExpense(ctx context.Context, e *domain.ProjectExpense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockProjectRepo) UpdateExpense(ctx context.Context, e *domain.ProjectExpense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockProjectRepo) ListExpenses(ctx context.Context, projectID int32) ([]domain.ProjectExpense, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.ProjectExpense), args.Error(1)
}
func (m *MockProjectRepo) CreateCalendarEvent(ctx context.Context, ev *domain.CalendarEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
func (m *MockProjectRepo) ListCalendarEvents(ctx context.Context, projectID int32) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.CalendarEvent), args.Error(1)
}
func (m *MockProjectRepo) GetFinancialSummary(ctx context.Context, projectID int32) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}
func (m *MockProjectRepo) UpsertFinancialSummary(ctx context.Context, s *domain.FinancialSummary) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}
func (m *MockEquipmentRepo) CreateBooking(ctx context.Context, b *domain.EquipmentBooking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockEquipmentRepo) ListBookings(ctx context.Context, equipmentID int32) ([]domain.EquipmentBooking, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).([]domain.EquipmentBooking), args.Error(1)
}

// MockClientRepo
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, c *domain.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockClientRepo) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Client, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Client), args.Get(1).(int32), args.Error(2)
}
func (m *MockClientRepo) Update(ctx context.Context, c *domain.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendProposalLink(ctx context.Context, clientEmail, clientName, proposalTitle, link string) error {
	args := m.Called(ctx, clientEmail, clientName, proposalTitle, link)
	return args.Error(0)
}
func (m *MockEmailService) SendProposalAcceptedNotice(ctx context.Context, email, proposalTitle string, totalCents int64) error {
	args := m.Called(ctx, email, proposalTitle, totalCents)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentOverdueReminder(ctx context.Context, email, description string, amountCents int64, dueDate time.Time) error {
	args := m.Called(ctx, email, description, amountCents, dueDate)
	return args.Error(0)
}

// stubTxRunner hands the configured repositories straight to fn, so
// acceptance tests exercise the sub-steps without a real database.
type stubTxRunner struct {
	repos repository.Repositories
}

func (s *stubTxRunner) WithinTx(_ context.Context, fn func(repos repository.Repositories) error) error {
	return fn(s.repos)
}
