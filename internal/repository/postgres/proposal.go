package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/repository"
)

type proposalRepository struct {
	db DBTX
}

func NewProposalRepository(db DBTX) repository.ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	query := `INSERT INTO proposals (client_id, title, description, discount_percent, valid_until, status, share_token, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.ClientID, p.Title, p.Description, p.DiscountPercent, p.ValidUntil, p.Status, p.ShareToken, now, now,
	).Scan(&p.ID)
}

const proposalColumns = `id, client_id, title, COALESCE(description, ''), discount_percent, valid_until, status,
	COALESCE(share_token, ''), accepted_total_cents, accepted_on, created_on, updated_on`

func (r *proposalRepository) GetByID(ctx context.Context, id int32) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *proposalRepository) GetByShareToken(ctx context.Context, token string) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE share_token = $1`
	return r.getOne(ctx, query, token)
}

func (r *proposalRepository) getOne(ctx context.Context, query string, arg any) (*domain.Proposal, error) {
	p := &domain.Proposal{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.ClientID, &p.Title, &p.Description, &p.DiscountPercent, &p.ValidUntil, &p.Status,
		&p.ShareToken, &p.AcceptedTotalCents, &p.AcceptedOn, &p.CreatedOn, &p.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *proposalRepository) loadChildren(ctx context.Context, p *domain.Proposal) error {
	items, err := r.listItems(ctx, p.ID)
	if err != nil {
		return err
	}
	p.LineItems = items

	optionals, err := r.listOptionals(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Optionals = optionals

	schedule, err := r.listSchedule(ctx, p.ID)
	if err != nil {
		return err
	}
	p.PaymentSchedule = schedule

	videos, err := r.listVideos(ctx, p.ID)
	if err != nil {
		return err
	}
	p.PortfolioVideos = videos
	return nil
}

func (r *proposalRepository) Update(ctx context.Context, p *domain.Proposal) error {
	query := `UPDATE proposals SET title=$1, description=$2, discount_percent=$3, valid_until=$4, status=$5,
	          share_token=$6, accepted_total_cents=$7, accepted_on=$8, updated_on=$9 WHERE id=$10`
	res, err := r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.DiscountPercent, p.ValidUntil, p.Status,
		p.ShareToken, p.AcceptedTotalCents, p.AcceptedOn, time.Now(), p.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *proposalRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Proposal, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + proposalColumns + ` FROM proposals`
	countQuery := `SELECT count(*) FROM proposals`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
		countQuery += ` WHERE status = $1`
		args = append(args, status)
	} else {
		query += ` ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, query, append(args, pageSize, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var proposals []domain.Proposal
	for rows.Next() {
		var p domain.Proposal
		if err := rows.Scan(
			&p.ID, &p.ClientID, &p.Title, &p.Description, &p.DiscountPercent, &p.ValidUntil, &p.Status,
			&p.ShareToken, &p.AcceptedTotalCents, &p.AcceptedOn, &p.CreatedOn, &p.UpdatedOn,
		); err != nil {
			return nil, 0, err
		}
		proposals = append(proposals, p)
	}
	return proposals, count, rows.Err()
}

func (r *proposalRepository) ListExpiring(ctx context.Context, cutoff time.Time) ([]domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals
	          WHERE status IN ('SENT', 'VIEWED') AND valid_until IS NOT NULL AND valid_until < $1
	          ORDER BY valid_until`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []domain.Proposal
	for rows.Next() {
		var p domain.Proposal
		if err := rows.Scan(
			&p.ID, &p.ClientID, &p.Title, &p.Description, &p.DiscountPercent, &p.ValidUntil, &p.Status,
			&p.ShareToken, &p.AcceptedTotalCents, &p.AcceptedOn, &p.CreatedOn, &p.UpdatedOn,
		); err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func (r *proposalRepository) CreateItem(ctx context.Context, item *domain.LineItem) error {
	query := `INSERT INTO proposal_line_items (proposal_id, description, quantity, unit_price_cents, event_date, sort_order)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		item.ProposalID, item.Description, item.Quantity, item.UnitPriceCents, item.EventDate, item.SortOrder,
	).Scan(&item.ID)
}

func (r *proposalRepository) UpdateItem(ctx context.Context, item *domain.LineItem) error {
	query := `UPDATE proposal_line_items SET description=$1, quantity=$2, unit_price_cents=$3, event_date=$4, sort_order=$5
	          WHERE id=$6 AND proposal_id=$7`
	res, err := r.db.ExecContext(ctx, query,
		item.Description, item.Quantity, item.UnitPriceCents, item.EventDate, item.SortOrder, item.ID, item.ProposalID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *proposalRepository) DeleteItem(ctx context.Context, proposalID, itemID int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM proposal_line_items WHERE id=$1 AND proposal_id=$2`, itemID, proposalID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *proposalRepository) listItems(ctx context.Context, proposalID int32) ([]domain.LineItem, error) {
	query := `SELECT id, proposal_id, description, quantity, unit_price_cents, event_date, sort_order
	          FROM proposal_line_items WHERE proposal_id = $1 ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, query, proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var it domain.LineItem
		if err := rows.Scan(&it.ID, &it.ProposalID, &it.Description, &it.Quantity, &it.UnitPriceCents, &it.EventDate, &it.SortOrder); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *proposalRepository) CreateOptional(ctx context.Context, op *domain.Optional) error {
	query := `INSERT INTO proposal_optionals (proposal_id, title, description, price_cents, is_selected, event_date, sort_order)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		op.ProposalID, op.Title, op.Description, op.PriceCents, op.IsSelected, op.EventDate, op.SortOrder,
	).Scan(&op.ID)
}

func (r *proposalRepository) UpdateOptional(ctx context.Context, op *domain.Optional) error {
	query := `UPDATE proposal_optionals SET title=$1, description=$2, price_cents=$3, is_selected=$4, event_date=$5, sort_order=$6
	          WHERE id=$7 AND proposal_id=$8`
	res, err := r.db.ExecContext(ctx, query,
		op.Title, op.Description, op.PriceCents, op.IsSelected, op.EventDate, op.SortOrder, op.ID, op.ProposalID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *proposalRepository) DeleteOptional(ctx context.Context, proposalID, optionalID int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM proposal_optionals WHERE id=$1 AND proposal_id=$2`, optionalID, proposalID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *proposalRepository) SetOptionalSelection(ctx context.Context, proposalID, optionalID int32, selected bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE proposal_optionals SET is_selected=$1 WHERE id=$2 AND proposal_id=$3`,
		selected, optionalID, proposalID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *proposalRepository) listOptionals(ctx context.Context, proposalID int32) ([]domain.Optional, error) {
	query := `SELECT id, proposal_id, title, COALESCE(description, ''), price_cents, is_selected, event_date, sort_order
	          FROM proposal_optionals WHERE proposal_id = $1 ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, query, proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var optionals []domain.Optional
	for rows.Next() {
		var op domain.Optional
		if err := rows.Scan(&op.ID, &op.ProposalID, &op.Title, &op.Description, &op.PriceCents, &op.IsSelected, &op.EventDate, &op.SortOrder); err != nil {
			return nil, err
		}
		optionals = append(optionals, op)
	}
	return optionals, rows.Err()
}

func (r *proposalRepository) CreateScheduleEntry(ctx context.Context, entry *domain.PaymentScheduleEntry) error {
	query := `INSERT INTO proposal_payment_schedule (proposal_id, description, percent, amount_cents, due_date, sort_order)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		entry.ProposalID, entry.Description, entry.Percent, entry.AmountCents, entry.DueDate, entry.SortOrder,
	).Scan(&entry.ID)
}

func (r *proposalRepository) DeleteScheduleEntry(ctx context.Context, proposalID, entryID int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM proposal_payment_schedule WHERE id=$1 AND proposal_id=$2`, entryID, proposalID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *proposalRepository) listSchedule(ctx context.Context, proposalID int32) ([]domain.PaymentScheduleEntry, error) {
	query := `SELECT id, proposal_id, COALESCE(description, ''), percent, amount_cents, due_date, sort_order
	          FROM proposal_payment_schedule WHERE proposal_id = $1 ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, query, proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PaymentScheduleEntry
	for rows.Next() {
		var e domain.PaymentScheduleEntry
		if err := rows.Scan(&e.ID, &e.ProposalID, &e.Description, &e.Percent, &e.AmountCents, &e.DueDate, &e.SortOrder); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *proposalRepository) listVideos(ctx context.Context, proposalID int32) ([]domain.PortfolioVideo, error) {
	query := `SELECT id, proposal_id, title, url FROM proposal_portfolio_videos WHERE proposal_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []domain.PortfolioVideo
	for rows.Next() {
		var v domain.PortfolioVideo
		if err := rows.Scan(&v.ID, &v.ProposalID, &v.Title, &v.URL); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// requireRow turns a zero-row update or delete into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
