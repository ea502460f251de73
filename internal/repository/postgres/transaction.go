package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/repository"
)

type transactionRepository struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, type, category, amount_cents, status, COALESCE(description, ''), due_date, payment_date,
	project_id, proposal_id, freelancer_id, COALESCE(notes, ''), created_on, updated_on`

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `INSERT INTO transactions (type, category, amount_cents, status, description, due_date, payment_date, project_id, proposal_id, freelancer_id, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		tx.Type, tx.Category, tx.AmountCents, tx.Status, tx.Description, tx.DueDate, tx.PaymentDate,
		tx.ProjectID, tx.ProposalID, tx.FreelancerID, tx.Notes, now, now,
	).Scan(&tx.ID)
}

func (r *transactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	tx := &domain.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tx.ID, &tx.Type, &tx.Category, &tx.AmountCents, &tx.Status, &tx.Description, &tx.DueDate, &tx.PaymentDate,
		&tx.ProjectID, &tx.ProposalID, &tx.FreelancerID, &tx.Notes, &tx.CreatedOn, &tx.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `UPDATE transactions SET category=$1, amount_cents=$2, status=$3, description=$4, due_date=$5,
	          payment_date=$6, notes=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query,
		tx.Category, tx.AmountCents, tx.Status, tx.Description, tx.DueDate, tx.PaymentDate, tx.Notes, time.Now(), tx.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *transactionRepository) List(ctx context.Context, txType, status string, page, pageSize int32) ([]domain.Transaction, int32, error) {
	offset := (page - 1) * pageSize
	where := ``
	args := []any{}
	if txType != "" {
		args = append(args, txType)
		where = ` WHERE type = $1`
	}
	if status != "" {
		args = append(args, status)
		if where == "" {
			where = ` WHERE status = $1`
		} else {
			where += ` AND status = $2`
		}
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM transactions`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions` + where +
		` ORDER BY due_date NULLS LAST, created_on DESC` +
		` LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, pageSize, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	txs, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return txs, count, nil
}

func (r *transactionRepository) ListByProject(ctx context.Context, projectID int32) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE project_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListDueBefore returns unsettled transactions whose due date has passed
// the cutoff. Feeds the overdue reminder job.
func (r *transactionRepository) ListDueBefore(ctx context.Context, cutoff time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
	          WHERE due_date < $1 AND payment_date IS NULL AND status IN ('PENDING', 'SCHEDULED')
	          ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.Type, &tx.Category, &tx.AmountCents, &tx.Status, &tx.Description, &tx.DueDate, &tx.PaymentDate,
			&tx.ProjectID, &tx.ProposalID, &tx.FreelancerID, &tx.Notes, &tx.CreatedOn, &tx.UpdatedOn,
		); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
