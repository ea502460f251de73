package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/repository"
	"reelstudio-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProposalService(propRepo *MockProposalRepo, clientRepo *MockClientRepo, noteRepo *MockNotificationRepo, projectRepo *MockProjectRepo, txRepo *MockTransactionRepo, emailSvc *MockEmailService) service.ProposalService {
	runner := &stubTxRunner{repos: repository.Repositories{
		Proposals:    propRepo,
		Transactions: txRepo,
		Projects:     projectRepo,
	}}
	return service.NewProposalService(
		propRepo, clientRepo, noteRepo, runner, emailSvc,
		service.OwnerContact{UserID: 1, Email: "owner@reelstudio.test"},
		"https://studio.example",
	)
}

func sentProposal() *domain.Proposal {
	due := time.Now().Add(14 * 24 * time.Hour)
	return &domain.Proposal{
		ID:              7,
		ClientID:        3,
		Title:           "Brand Film",
		Status:          domain.ProposalStatusSent,
		DiscountPercent: 10,
		ShareToken:      "tok-7",
		LineItems: []domain.LineItem{
			{ID: 1, ProposalID: 7, Description: "Shoot day", Quantity: 2, UnitPriceCents: 10000, EventDate: &due},
			{ID: 2, ProposalID: 7, Description: "Edit", Quantity: 1, UnitPriceCents: 5000},
		},
		Optionals: []domain.Optional{
			{ID: 5, ProposalID: 7, Title: "Drone footage", PriceCents: 3000, IsSelected: true},
		},
	}
}

func TestProposalService_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		projectRepo := new(MockProjectRepo)
		txRepo := new(MockTransactionRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := newProposalService(propRepo, new(MockClientRepo), noteRepo, projectRepo, txRepo, emailSvc)

		p := sentProposal()
		propRepo.On("GetByID", ctx, int32(7)).Return(p, nil).Once()
		// base 25000, discount 2500, optional 3000 -> total 25500
		propRepo.On("Update", ctx, mock.MatchedBy(func(up *domain.Proposal) bool {
			return up.Status == domain.ProposalStatusAccepted &&
				up.AcceptedTotalCents != nil && *up.AcceptedTotalCents == 25500 &&
				up.AcceptedOn != nil
		})).Return(nil).Once()
		projectRepo.On("Create", ctx, mock.MatchedBy(func(pr *domain.Project) bool {
			return pr.ClientID == 3 && pr.Name == "Brand Film" &&
				pr.Status == domain.ProjectStatusPlanning &&
				pr.BudgetCents != nil && *pr.BudgetCents == 25500
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Project).ID = 42
		}).Return(nil).Once()
		projectRepo.On("CreateCalendarEvent", ctx, mock.MatchedBy(func(ev *domain.CalendarEvent) bool {
			return ev.ProjectID == 42 && ev.Title == "Shoot day" && ev.SourceItemID != nil
		})).Return(nil).Once()
		txRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.Type == domain.TransactionTypeIncome &&
				tx.Category == domain.CategoryClientPayment &&
				tx.Status == domain.TransactionStatusPending &&
				tx.AmountCents == 25500 &&
				tx.ProjectID != nil && *tx.ProjectID == 42
		})).Return(nil).Once()
		emailSvc.On("SendProposalAcceptedNotice", ctx, "owner@reelstudio.test", "Brand Film", int64(25500)).Return(nil).Once()
		noteRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 1 && n.Attributes["type"] == "PROPOSAL_ACCEPTED"
		})).Return(nil).Once()

		result, err := svc.Accept(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), result.ProjectID)
		assert.Equal(t, 1, result.CalendarEventsCreated)
		assert.Equal(t, 1, result.TransactionsCreated)

		propRepo.AssertExpectations(t)
		projectRepo.AssertExpectations(t)
		txRepo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
		noteRepo.AssertExpectations(t)
	})

	t.Run("ScheduleSplitsReceivables", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		projectRepo := new(MockProjectRepo)
		txRepo := new(MockTransactionRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := newProposalService(propRepo, new(MockClientRepo), noteRepo, projectRepo, txRepo, emailSvc)

		half := 50.0
		dep := time.Now().Add(7 * 24 * time.Hour)
		p := sentProposal()
		p.LineItems[0].EventDate = nil
		p.PaymentSchedule = []domain.PaymentScheduleEntry{
			{ID: 1, ProposalID: 7, Description: "Deposit", Percent: &half, DueDate: &dep},
			{ID: 2, ProposalID: 7, Description: "Final"},
		}
		propRepo.On("GetByID", ctx, int32(7)).Return(p, nil).Once()
		propRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
		projectRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		txRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.AmountCents == 12750 && tx.DueDate != nil
		})).Return(nil).Once()
		txRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
			return tx.AmountCents == 12750 && tx.DueDate == nil
		})).Return(nil).Once()
		emailSvc.On("SendProposalAcceptedNotice", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		noteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		result, err := svc.Accept(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, 2, result.TransactionsCreated)
		txRepo.AssertExpectations(t)
	})

	t.Run("AlreadyAccepted", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		svc := newProposalService(propRepo, new(MockClientRepo), new(MockNotificationRepo), new(MockProjectRepo), new(MockTransactionRepo), new(MockEmailService))

		p := sentProposal()
		p.Status = domain.ProposalStatusAccepted
		propRepo.On("GetByID", ctx, int32(7)).Return(p, nil).Once()

		_, err := svc.Accept(ctx, 7)
		assert.True(t, service.IsConflict(err))
	})

	t.Run("Draft", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		svc := newProposalService(propRepo, new(MockClientRepo), new(MockNotificationRepo), new(MockProjectRepo), new(MockTransactionRepo), new(MockEmailService))

		p := sentProposal()
		p.Status = domain.ProposalStatusDraft
		propRepo.On("GetByID", ctx, int32(7)).Return(p, nil).Once()

		_, err := svc.Accept(ctx, 7)
		assert.True(t, service.IsConflict(err))
	})

	t.Run("Expired", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		svc := newProposalService(propRepo, new(MockClientRepo), new(MockNotificationRepo), new(MockProjectRepo), new(MockTransactionRepo), new(MockEmailService))

		past := time.Now().Add(-time.Hour)
		p := sentProposal()
		p.ValidUntil = &past
		propRepo.On("GetByID", ctx, int32(7)).Return(p, nil).Once()

		_, err := svc.Accept(ctx, 7)
		assert.True(t, service.IsConflict(err))
	})

	t.Run("ProjectCreationFailureNamesStep", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		projectRepo := new(MockProjectRepo)
		svc := newProposalService(propRepo, new(MockClientRepo), new(MockNotificationRepo), projectRepo, new(MockTransactionRepo), new(MockEmailService))

		p := sentProposal()
		propRepo.On("GetByID", ctx, int32(7)).Return(p, nil).Once()
		propRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
		projectRepo.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()

		_, err := svc.Accept(ctx, 7)
		var pse *service.PartialSideEffectError
		if assert.ErrorAs(t, err, &pse) {
			assert.Equal(t, "create_project", pse.Step)
		}
	})
}

func TestProposalService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("DraftGetsTokenAndEmail", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		clientRepo := new(MockClientRepo)
		emailSvc := new(MockEmailService)
		svc := newProposalService(propRepo, clientRepo, new(MockNotificationRepo), new(MockProjectRepo), new(MockTransactionRepo), emailSvc)

		p := sentProposal()
		p.Status = domain.ProposalStatusDraft
		p.ShareToken = ""
		propRepo.On("GetByID", ctx, int32(7)).Return(p, nil).Once()
		propRepo.On("Update", ctx, mock.MatchedBy(func(up *domain.Proposal) bool {
			return up.Status == domain.ProposalStatusSent && up.ShareToken != ""
		})).Return(nil).Once()
		clientRepo.On("GetByID", ctx, int32(3)).Return(&domain.Client{ID: 3, Name: "Acme", Email: "acme@test.com"}, nil).Once()
		emailSvc.On("SendProposalLink", ctx, "acme@test.com", "Acme", "Brand Film", mock.MatchedBy(func(link string) bool {
			return len(link) > len("https://studio.example/public/proposals/")
		})).Return(nil).Once()

		sent, err := svc.Send(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, domain.ProposalStatusSent, sent.Status)
		assert.NotEmpty(t, sent.ShareToken)
		emailSvc.AssertExpectations(t)
	})

	t.Run("NotDraft", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		svc := newProposalService(propRepo, new(MockClientRepo), new(MockNotificationRepo), new(MockProjectRepo), new(MockTransactionRepo), new(MockEmailService))

		propRepo.On("GetByID", ctx, int32(7)).Return(sentProposal(), nil).Once()

		_, err := svc.Send(ctx, 7)
		assert.True(t, service.IsConflict(err))
	})
}

func TestProposalService_GetByShareToken(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstViewFlipsToViewed", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		svc := newProposalService(propRepo, new(MockClientRepo), new(MockNotificationRepo), new(MockProjectRepo), new(MockTransactionRepo), new(MockEmailService))

		p := sentProposal()
		propRepo.On("GetByShareToken", ctx, "tok-7").Return(p, nil).Once()
		propRepo.On("Update", ctx, mock.MatchedBy(func(up *domain.Proposal) bool {
			return up.Status == domain.ProposalStatusViewed
		})).Return(nil).Once()

		got, totals, err := svc.GetByShareToken(ctx, "tok-7")
		assert.NoError(t, err)
		assert.Equal(t, domain.ProposalStatusViewed, got.Status)
		assert.Equal(t, int64(25500), totals.TotalCents)
		propRepo.AssertExpectations(t)
	})

	t.Run("ExpiredReadsExpiredWithoutWrite", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		svc := newProposalService(propRepo, new(MockClientRepo), new(MockNotificationRepo), new(MockProjectRepo), new(MockTransactionRepo), new(MockEmailService))

		past := time.Now().Add(-time.Hour)
		p := sentProposal()
		p.ValidUntil = &past
		propRepo.On("GetByShareToken", ctx, "tok-7").Return(p, nil).Once()

		got, _, err := svc.GetByShareToken(ctx, "tok-7")
		assert.NoError(t, err)
		assert.Equal(t, domain.ProposalStatusExpired, got.Status)
		propRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestProposalService_ToggleOptional(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsSelectionAndRecomputes", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		svc := newProposalService(propRepo, new(MockClientRepo), new(MockNotificationRepo), new(MockProjectRepo), new(MockTransactionRepo), new(MockEmailService))

		p := sentProposal()
		p.Status = domain.ProposalStatusViewed
		propRepo.On("GetByShareToken", ctx, "tok-7").Return(p, nil).Once()
		propRepo.On("SetOptionalSelection", ctx, int32(7), int32(5), false).Return(nil).Once()
		toggled := sentProposal()
		toggled.Optionals[0].IsSelected = false
		propRepo.On("GetByID", ctx, int32(7)).Return(toggled, nil).Once()

		totals, err := svc.ToggleOptional(ctx, "tok-7", 5, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(22500), totals.TotalCents)
		propRepo.AssertExpectations(t)
	})

	t.Run("TerminalProposalRejectsToggle", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		svc := newProposalService(propRepo, new(MockClientRepo), new(MockNotificationRepo), new(MockProjectRepo), new(MockTransactionRepo), new(MockEmailService))

		p := sentProposal()
		p.Status = domain.ProposalStatusAccepted
		propRepo.On("GetByShareToken", ctx, "tok-7").Return(p, nil).Once()

		_, err := svc.ToggleOptional(ctx, "tok-7", 5, true)
		assert.True(t, service.IsConflict(err))
	})
}

func TestProposalService_EditGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("AddItemOnAcceptedProposal", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		svc := newProposalService(propRepo, new(MockClientRepo), new(MockNotificationRepo), new(MockProjectRepo), new(MockTransactionRepo), new(MockEmailService))

		p := sentProposal()
		p.Status = domain.ProposalStatusAccepted
		propRepo.On("GetByID", ctx, int32(7)).Return(p, nil).Once()

		_, err := svc.AddItem(ctx, &domain.LineItem{ProposalID: 7, Description: "Extra", Quantity: 1, UnitPriceCents: 1000})
		assert.True(t, service.IsConflict(err))
	})

	t.Run("InvalidItemRejected", func(t *testing.T) {
		propRepo := new(MockProposalRepo)
		svc := newProposalService(propRepo, new(MockClientRepo), new(MockNotificationRepo), new(MockProjectRepo), new(MockTransactionRepo), new(MockEmailService))

		propRepo.On("GetByID", ctx, int32(7)).Return(sentProposal(), nil).Once()

		_, err := svc.AddItem(ctx, &domain.LineItem{ProposalID: 7, Description: "Bad", Quantity: 0, UnitPriceCents: 1000})
		assert.True(t, service.IsValidation(err))
	})
}
