package service_test

import (
	"context"
	"testing"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func pendingTx(id int32) *domain.Transaction {
	return &domain.Transaction{
		ID:          id,
		Type:        domain.TransactionTypeExpense,
		Category:    domain.CategoryCrewTalent,
		AmountCents: 50000,
		Status:      domain.TransactionStatusPending,
		Description: "Camera operator fee",
	}
}

func TestTransactionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("ForcesPendingStatus", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		svc := service.NewTransactionService(txRepo)

		now := time.Now()
		txRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Status == domain.TransactionStatusPending && tx.PaymentDate == nil
		})).Return(nil).Once()

		created, err := svc.Create(ctx, &domain.Transaction{
			Type:        domain.TransactionTypeIncome,
			Category:    domain.CategoryClientPayment,
			AmountCents: 10000,
			Status:      domain.TransactionStatusPaid,
			PaymentDate: &now,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.TransactionStatusPending, created.Status)
		assert.Nil(t, created.PaymentDate)
		txRepo.AssertExpectations(t)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		svc := service.NewTransactionService(new(MockTransactionRepo))
		_, err := svc.Create(ctx, &domain.Transaction{Type: domain.TransactionTypeExpense, Category: domain.CategoryOther})
		assert.True(t, service.IsValidation(err))
	})

	t.Run("RejectsMissingCategory", func(t *testing.T) {
		svc := service.NewTransactionService(new(MockTransactionRepo))
		_, err := svc.Create(ctx, &domain.Transaction{Type: domain.TransactionTypeExpense, AmountCents: 100})
		assert.True(t, service.IsValidation(err))
	})

	t.Run("RejectsUnknownType", func(t *testing.T) {
		svc := service.NewTransactionService(new(MockTransactionRepo))
		_, err := svc.Create(ctx, &domain.Transaction{Type: "TRANSFER", Category: domain.CategoryOther, AmountCents: 100})
		assert.True(t, service.IsValidation(err))
	})
}

func TestTransactionService_MarkAsPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("FromPending", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		svc := service.NewTransactionService(txRepo)

		txRepo.On("GetByID", ctx, int32(1)).Return(pendingTx(1), nil).Once()
		txRepo.On("Update", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Status == domain.TransactionStatusPaid && tx.PaymentDate != nil
		})).Return(nil).Once()

		paid, err := svc.MarkAsPaid(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.TransactionStatusPaid, paid.Status)
		txRepo.AssertExpectations(t)
	})

	t.Run("FromScheduled", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		svc := service.NewTransactionService(txRepo)

		tx := pendingTx(1)
		tx.Status = domain.TransactionStatusScheduled
		txRepo.On("GetByID", ctx, int32(1)).Return(tx, nil).Once()
		txRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.MarkAsPaid(ctx, 1)
		assert.NoError(t, err)
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		svc := service.NewTransactionService(txRepo)

		tx := pendingTx(1)
		tx.Status = domain.TransactionStatusPaid
		txRepo.On("GetByID", ctx, int32(1)).Return(tx, nil).Once()

		_, err := svc.MarkAsPaid(ctx, 1)
		assert.True(t, service.IsConflict(err))
		txRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Cancelled", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		svc := service.NewTransactionService(txRepo)

		tx := pendingTx(1)
		tx.Status = domain.TransactionStatusCancelled
		txRepo.On("GetByID", ctx, int32(1)).Return(tx, nil).Once()

		_, err := svc.MarkAsPaid(ctx, 1)
		assert.True(t, service.IsConflict(err))
	})
}

func TestTransactionService_Schedule(t *testing.T) {
	ctx := context.Background()

	t.Run("FromPending", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		svc := service.NewTransactionService(txRepo)

		txRepo.On("GetByID", ctx, int32(1)).Return(pendingTx(1), nil).Once()
		txRepo.On("Update", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Status == domain.TransactionStatusScheduled
		})).Return(nil).Once()

		scheduled, err := svc.Schedule(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.TransactionStatusScheduled, scheduled.Status)
	})

	t.Run("NotPending", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		svc := service.NewTransactionService(txRepo)

		tx := pendingTx(1)
		tx.Status = domain.TransactionStatusScheduled
		txRepo.On("GetByID", ctx, int32(1)).Return(tx, nil).Once()

		_, err := svc.Schedule(ctx, 1)
		assert.True(t, service.IsConflict(err))
	})
}

func TestTransactionService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("FromScheduled", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		svc := service.NewTransactionService(txRepo)

		tx := pendingTx(1)
		tx.Status = domain.TransactionStatusScheduled
		txRepo.On("GetByID", ctx, int32(1)).Return(tx, nil).Once()
		txRepo.On("Update", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Status == domain.TransactionStatusCancelled
		})).Return(nil).Once()

		cancelled, err := svc.Cancel(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.TransactionStatusCancelled, cancelled.Status)
	})

	t.Run("TerminalStaysPut", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		svc := service.NewTransactionService(txRepo)

		tx := pendingTx(1)
		tx.Status = domain.TransactionStatusPaid
		txRepo.On("GetByID", ctx, int32(1)).Return(tx, nil).Once()

		_, err := svc.Cancel(ctx, 1)
		assert.True(t, service.IsConflict(err))
	})
}

func TestTransactionService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("StatusNeverChanges", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		svc := service.NewTransactionService(txRepo)

		stored := pendingTx(1)
		stored.Status = domain.TransactionStatusScheduled
		txRepo.On("GetByID", ctx, int32(1)).Return(stored, nil).Once()
		txRepo.On("Update", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Status == domain.TransactionStatusScheduled && tx.AmountCents == 60000
		})).Return(nil).Once()

		updated, warnings, err := svc.Update(ctx, &domain.Transaction{
			ID:          1,
			Category:    domain.CategoryCrewTalent,
			AmountCents: 60000,
			Status:      domain.TransactionStatusPaid,
		})
		assert.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, domain.TransactionStatusScheduled, updated.Status)
	})

	t.Run("EditingPaidWarns", func(t *testing.T) {
		txRepo := new(MockTransactionRepo)
		svc := service.NewTransactionService(txRepo)

		stored := pendingTx(1)
		stored.Status = domain.TransactionStatusPaid
		txRepo.On("GetByID", ctx, int32(1)).Return(stored, nil).Once()
		txRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

		_, warnings, err := svc.Update(ctx, &domain.Transaction{
			ID:          1,
			Category:    domain.CategoryCrewTalent,
			AmountCents: 45000,
		})
		assert.NoError(t, err)
		if assert.Len(t, warnings, 1) {
			assert.Contains(t, warnings[0], "settled transaction")
		}
	})
}
