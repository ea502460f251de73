package service

import (
	"context"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/repository"
	"reelstudio-backend/internal/utils"
)

type projectService struct {
	projectRepo repository.ProjectRepository
}

func NewProjectService(projectRepo repository.ProjectRepository) ProjectService {
	return &projectService{projectRepo: projectRepo}
}

func (s *projectService) Get(ctx context.Context, id int32) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Project, int32, error) {
	return s.projectRepo.List(ctx, status, page, pageSize)
}

// JobCosting aggregates the project's value against team fees and
// ad-hoc expenses. The project value resolves through the fallback
// chain total_revenue -> approved_value -> budget -> 0.
func (s *projectService) JobCosting(ctx context.Context, projectID int32) (*utils.JobCosting, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	summary, err := s.projectRepo.GetFinancialSummary(ctx, projectID)
	if err != nil {
		return nil, err
	}
	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.projectRepo.ListExpenses(ctx, projectID)
	if err != nil {
		return nil, err
	}

	jc := utils.ComputeJobCosting(project, summary, members, expenses)
	return &jc, nil
}

func (s *projectService) AddMember(ctx context.Context, m *domain.ProjectMember) (*domain.ProjectMember, error) {
	if m.FreelancerID == 0 {
		return nil, validationf("member freelancer is required")
	}
	if m.AgreedFeeCents != nil && *m.AgreedFeeCents < 0 {
		return nil, validationf("agreed fee cannot be negative")
	}
	if _, err := s.projectRepo.GetByID(ctx, m.ProjectID); err != nil {
		return nil, err
	}

	if m.Status == "" {
		m.Status = domain.MemberStatusInvited
	}
	if err := s.projectRepo.AddMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *projectService) UpdateMemberStatus(ctx context.Context, projectID, memberID int32, status domain.ProjectMemberStatus) (*domain.ProjectMember, error) {
	switch status {
	case domain.MemberStatusInvited, domain.MemberStatusConfirmed, domain.MemberStatusDeclined, domain.MemberStatusRemoved:
	default:
		return nil, validationf("unknown member status %q", status)
	}

	m, err := s.findMember(ctx, projectID, memberID)
	if err != nil {
		return nil, err
	}
	m.Status = status
	if err := s.projectRepo.UpdateMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *projectService) SetMemberFee(ctx context.Context, projectID, memberID int32, feeCents *int64) (*domain.ProjectMember, error) {
	if feeCents != nil && *feeCents < 0 {
		return nil, validationf("agreed fee cannot be negative")
	}

	m, err := s.findMember(ctx, projectID, memberID)
	if err != nil {
		return nil, err
	}
	m.AgreedFeeCents = feeCents
	if err := s.projectRepo.UpdateMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *projectService) findMember(ctx context.Context, projectID, memberID int32) (*domain.ProjectMember, error) {
	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].ID == memberID {
			return &members[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *projectService) ListMembers(ctx context.Context, projectID int32) ([]domain.ProjectMember, error) {
	return s.projectRepo.ListMembers(ctx, projectID)
}

func (s *projectService) AddExpense(ctx context.Context, e *domain.ProjectExpense) (*domain.ProjectExpense, error) {
	if e.Category == "" {
		return nil, validationf("expense category is required")
	}
	if e.EstimatedCostCents != nil && *e.EstimatedCostCents < 0 {
		return nil, validationf("estimated cost cannot be negative")
	}
	if e.ActualCostCents != nil && *e.ActualCostCents < 0 {
		return nil, validationf("actual cost cannot be negative")
	}
	if _, err := s.projectRepo.GetByID(ctx, e.ProjectID); err != nil {
		return nil, err
	}

	if e.PaymentStatus == "" {
		e.PaymentStatus = domain.ExpenseUnpaid
	}
	if err := s.projectRepo.AddExpense(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *projectService) UpdateExpense(ctx context.Context, e *domain.ProjectExpense) (*domain.ProjectExpense, error) {
	if e.Category == "" {
		return nil, validationf("expense category is required")
	}
	if err := s.projectRepo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *projectService) ListExpenses(ctx context.Context, projectID int32) ([]domain.ProjectExpense, error) {
	return s.projectRepo.ListExpenses(ctx, projectID)
}

func (s *projectService) ListCalendarEvents(ctx context.Context, projectID int32) ([]domain.CalendarEvent, error) {
	return s.projectRepo.ListCalendarEvents(ctx, projectID)
}

func (s *projectService) SetFinancialSummary(ctx context.Context, summary *domain.FinancialSummary) error {
	if _, err := s.projectRepo.GetByID(ctx, summary.ProjectID); err != nil {
		return err
	}
	return s.projectRepo.UpsertFinancialSummary(ctx, summary)
}
