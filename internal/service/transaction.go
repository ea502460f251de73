package service

import (
	"context"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/repository"
)

type transactionService struct {
	txRepo repository.TransactionRepository
}

func NewTransactionService(txRepo repository.TransactionRepository) TransactionService {
	return &transactionService{txRepo: txRepo}
}

func (s *transactionService) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if tx.AmountCents <= 0 {
		return nil, validationf("transaction amount must be positive")
	}
	if tx.Category == "" {
		return nil, validationf("transaction category is required")
	}
	switch tx.Type {
	case domain.TransactionTypeIncome, domain.TransactionTypeExpense, domain.TransactionTypeInitialCapital:
	default:
		return nil, validationf("unknown transaction type %q", tx.Type)
	}

	tx.Status = domain.TransactionStatusPending
	tx.PaymentDate = nil
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) Get(ctx context.Context, id int32) (*domain.Transaction, error) {
	return s.txRepo.GetByID(ctx, id)
}

func (s *transactionService) List(ctx context.Context, txType, status string, page, pageSize int32) ([]domain.Transaction, int32, error) {
	return s.txRepo.List(ctx, txType, status, page, pageSize)
}

// MarkAsPaid settles a transaction. Legal only from PENDING or
// SCHEDULED; a PAID transaction fails here rather than silently
// re-stamping its payment date.
func (s *transactionService) MarkAsPaid(ctx context.Context, id int32) (*domain.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Status != domain.TransactionStatusPending && tx.Status != domain.TransactionStatusScheduled {
		return nil, conflictf("transaction is not pending")
	}

	now := time.Now()
	tx.Status = domain.TransactionStatusPaid
	tx.PaymentDate = &now
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *transactionService) Schedule(ctx context.Context, id int32) (*domain.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Status != domain.TransactionStatusPending {
		return nil, conflictf("transaction is not pending")
	}

	tx.Status = domain.TransactionStatusScheduled
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Cancel is terminal. Nothing transitions out of CANCELLED.
func (s *transactionService) Cancel(ctx context.Context, id int32) (*domain.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Status.Terminal() {
		return nil, conflictf("transaction is already %s", tx.Status)
	}

	tx.Status = domain.TransactionStatusCancelled
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Update edits amount, category, due date, description and notes. Status
// never changes here; transitions go through the dedicated operations.
// Editing a PAID transaction is permitted as a correction mechanism and
// returns a warning, since stored cash-balance history shifts.
func (s *transactionService) Update(ctx context.Context, in *domain.Transaction) (*domain.Transaction, []string, error) {
	if in.AmountCents <= 0 {
		return nil, nil, validationf("transaction amount must be positive")
	}
	if in.Category == "" {
		return nil, nil, validationf("transaction category is required")
	}

	tx, err := s.txRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if tx.Status == domain.TransactionStatusPaid {
		warnings = append(warnings, "editing a settled transaction changes historical cash-balance figures")
	}

	tx.Category = in.Category
	tx.AmountCents = in.AmountCents
	tx.Description = in.Description
	tx.DueDate = in.DueDate
	tx.Notes = in.Notes
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, nil, err
	}
	return tx, warnings, nil
}
