package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/repository"
)

type projectRepository struct {
	db DBTX
}

func NewProjectRepository(db DBTX) repository.ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, client_id, proposal_id, name, COALESCE(description, ''), status, budget_cents, start_date, end_date, created_on, updated_on`

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (client_id, proposal_id, name, description, status, budget_cents, start_date, end_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.ClientID, p.ProposalID, p.Name, p.Description, p.Status, p.BudgetCents, p.StartDate, p.EndDate, now, now,
	).Scan(&p.ID)
}

func (r *projectRepository) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	p := &domain.Project{}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.ClientID, &p.ProposalID, &p.Name, &p.Description, &p.Status, &p.BudgetCents,
		&p.StartDate, &p.EndDate, &p.CreatedOn, &p.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name=$1, description=$2, status=$3, budget_cents=$4, start_date=$5, end_date=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Status, p.BudgetCents, p.StartDate, p.EndDate, time.Now(), p.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *projectRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Project, int32, error) {
	offset := (page - 1) * pageSize
	where := ``
	args := []any{}
	if status != "" {
		where = ` WHERE status = $1`
		args = append(args, status)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM projects`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + projectColumns + ` FROM projects` + where + ` ORDER BY created_on DESC` +
		` LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, pageSize, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(
			&p.ID, &p.ClientID, &p.ProposalID, &p.Name, &p.Description, &p.Status, &p.BudgetCents,
			&p.StartDate, &p.EndDate, &p.CreatedOn, &p.UpdatedOn,
		); err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, count, rows.Err()
}

func (r *projectRepository) AddMember(ctx context.Context, m *domain.ProjectMember) error {
	query := `INSERT INTO project_members (project_id, freelancer_id, role, agreed_fee_cents, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		m.ProjectID, m.FreelancerID, m.Role, m.AgreedFeeCents, m.Status, time.Now(),
	).Scan(&m.ID)
}

func (r *projectRepository) UpdateMember(ctx context.Context, m *domain.ProjectMember) error {
	query := `UPDATE project_members SET role=$1, agreed_fee_cents=$2, status=$3 WHERE id=$4 AND project_id=$5`
	res, err := r.db.ExecContext(ctx, query, m.Role, m.AgreedFeeCents, m.Status, m.ID, m.ProjectID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *projectRepository) ListMembers(ctx context.Context, projectID int32) ([]domain.ProjectMember, error) {
	query := `SELECT id, project_id, freelancer_id, COALESCE(role, ''), agreed_fee_cents, status, created_on
	          FROM project_members WHERE project_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.ProjectMember
	for rows.Next() {
		var m domain.ProjectMember
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.FreelancerID, &m.Role, &m.AgreedFeeCents, &m.Status, &m.CreatedOn); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *projectRepository) AddExpense(ctx context.Context, e *domain.ProjectExpense) error {
	query := `INSERT INTO project_expenses (project_id, category, description, estimated_cost_cents, actual_cost_cents, payment_status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		e.ProjectID, e.Category, e.Description, e.EstimatedCostCents, e.ActualCostCents, e.PaymentStatus, time.Now(),
	).Scan(&e.ID)
}

func (r *projectRepository) UpdateExpense(ctx context.Context, e *domain.ProjectExpense) error {
	query := `UPDATE project_expenses SET category=$1, description=$2, estimated_cost_cents=$3, actual_cost_cents=$4, payment_status=$5
	          WHERE id=$6 AND project_id=$7`
	res, err := r.db.ExecContext(ctx, query,
		e.Category, e.Description, e.EstimatedCostCents, e.ActualCostCents, e.PaymentStatus, e.ID, e.ProjectID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *projectRepository) ListExpenses(ctx context.Context, projectID int32) ([]domain.ProjectExpense, error) {
	query := `SELECT id, project_id, category, COALESCE(description, ''), estimated_cost_cents, actual_cost_cents, payment_status, created_on
	          FROM project_expenses WHERE project_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.ProjectExpense
	for rows.Next() {
		var e domain.ProjectExpense
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Category, &e.Description, &e.EstimatedCostCents, &e.ActualCostCents, &e.PaymentStatus, &e.CreatedOn); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *projectRepository) CreateCalendarEvent(ctx context.Context, ev *domain.CalendarEvent) error {
	query := `INSERT INTO calendar_events (project_id, title, event_date, source_item_id, source_optional_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		ev.ProjectID, ev.Title, ev.EventDate, ev.SourceItemID, ev.SourceOptionalID, time.Now(),
	).Scan(&ev.ID)
}

func (r *projectRepository) ListCalendarEvents(ctx context.Context, projectID int32) ([]domain.CalendarEvent, error) {
	query := `SELECT id, project_id, title, event_date, source_item_id, source_optional_id, created_on
	          FROM calendar_events WHERE project_id = $1 ORDER BY event_date`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.CalendarEvent
	for rows.Next() {
		var ev domain.CalendarEvent
		if err := rows.Scan(&ev.ID, &ev.ProjectID, &ev.Title, &ev.EventDate, &ev.SourceItemID, &ev.SourceOptionalID, &ev.CreatedOn); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// GetFinancialSummary returns nil without error when no summary row
// exists; job costing treats a missing summary as an absent source.
func (r *projectRepository) GetFinancialSummary(ctx context.Context, projectID int32) (*domain.FinancialSummary, error) {
	s := &domain.FinancialSummary{}
	query := `SELECT project_id, total_revenue_cents, approved_value_cents FROM project_financial_summaries WHERE project_id = $1`
	err := r.db.QueryRowContext(ctx, query, projectID).Scan(&s.ProjectID, &s.TotalRevenueCents, &s.ApprovedValueCents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *projectRepository) UpsertFinancialSummary(ctx context.Context, s *domain.FinancialSummary) error {
	query := `INSERT INTO project_financial_summaries (project_id, total_revenue_cents, approved_value_cents)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (project_id) DO UPDATE SET total_revenue_cents = EXCLUDED.total_revenue_cents, approved_value_cents = EXCLUDED.approved_value_cents`
	_, err := r.db.ExecContext(ctx, query, s.ProjectID, s.TotalRevenueCents, s.ApprovedValueCents)
	return err
}
