package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"reelstudio-backend/internal/repository"

	_ "github.com/lib/pq"
)

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// DBTX is the subset of database/sql used by the repositories. Both
// *sql.DB and *sql.Tx satisfy it, which lets Store.WithinTx hand out
// transaction-scoped repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.ProposalRepository
	repository.TransactionRepository
	repository.ProjectRepository
	repository.EquipmentRepository
	repository.ClientRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ProposalRepository:     NewProposalRepository(db),
		TransactionRepository:  NewTransactionRepository(db),
		ProjectRepository:      NewProjectRepository(db),
		EquipmentRepository:    NewEquipmentRepository(db),
		ClientRepository:       NewClientRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

func txRepositories(tx *sql.Tx) repository.Repositories {
	return repository.Repositories{
		Proposals:     NewProposalRepository(tx),
		Transactions:  NewTransactionRepository(tx),
		Projects:      NewProjectRepository(tx),
		Equipment:     NewEquipmentRepository(tx),
		Clients:       NewClientRepository(tx),
		Notifications: NewNotificationRepository(tx),
	}
}

// WithinTx runs fn against transaction-scoped repositories. Any error
// from fn rolls the whole transaction back. Proposal acceptance uses
// this so the status flip and its downstream records commit or fail as
// one unit.
func (s *Store) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(txRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
