package service

import (
	"context"
	"fmt"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/logger"
	"reelstudio-backend/internal/repository"
	"reelstudio-backend/internal/utils"

	"github.com/google/uuid"
)

// OwnerContact identifies the back-office account that receives
// acceptance notices and reminders.
type OwnerContact struct {
	UserID int32
	Email  string
}

type proposalService struct {
	proposalRepo repository.ProposalRepository
	clientRepo   repository.ClientRepository
	noteRepo     repository.NotificationRepository
	txRunner     repository.TxRunner
	emailSvc     EmailService
	owner        OwnerContact
	publicBase   string
}

func NewProposalService(
	proposalRepo repository.ProposalRepository,
	clientRepo repository.ClientRepository,
	noteRepo repository.NotificationRepository,
	txRunner repository.TxRunner,
	emailSvc EmailService,
	owner OwnerContact,
	publicBase string,
) ProposalService {
	return &proposalService{
		proposalRepo: proposalRepo,
		clientRepo:   clientRepo,
		noteRepo:     noteRepo,
		txRunner:     txRunner,
		emailSvc:     emailSvc,
		owner:        owner,
		publicBase:   publicBase,
	}
}

func (s *proposalService) Create(ctx context.Context, p *domain.Proposal) (*domain.Proposal, error) {
	if p.Title == "" {
		return nil, validationf("proposal title is required")
	}
	if p.ClientID == 0 {
		return nil, validationf("proposal client is required")
	}
	p.Status = domain.ProposalStatusDraft
	if err := s.proposalRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *proposalService) Get(ctx context.Context, id int32) (*domain.Proposal, utils.ProposalTotals, error) {
	p, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ProposalTotals{}, err
	}
	p.Status = p.EffectiveStatus(time.Now())
	return p, utils.ComputeProposalTotals(p.LineItems, p.Optionals, p.DiscountPercent), nil
}

func (s *proposalService) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Proposal, int32, error) {
	return s.proposalRepo.List(ctx, status, page, pageSize)
}

func (s *proposalService) UpdateDetails(ctx context.Context, id int32, title, description string, discountPct float64, validUntil *time.Time) (*domain.Proposal, utils.ProposalTotals, error) {
	p, err := s.editableProposal(ctx, id)
	if err != nil {
		return nil, utils.ProposalTotals{}, err
	}
	if title == "" {
		return nil, utils.ProposalTotals{}, validationf("proposal title is required")
	}

	p.Title = title
	p.Description = description
	p.DiscountPercent = discountPct
	p.ValidUntil = validUntil
	if err := s.proposalRepo.Update(ctx, p); err != nil {
		return nil, utils.ProposalTotals{}, err
	}
	return p, utils.ComputeProposalTotals(p.LineItems, p.Optionals, p.DiscountPercent), nil
}

func (s *proposalService) Send(ctx context.Context, id int32) (*domain.Proposal, error) {
	p, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProposalStatusDraft {
		return nil, conflictf("proposal is not a draft")
	}

	if p.ShareToken == "" {
		p.ShareToken = uuid.NewString()
	}
	p.Status = domain.ProposalStatusSent
	if err := s.proposalRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	// Notify the client, best effort.
	client, _ := s.clientRepo.GetByID(ctx, p.ClientID)
	if client != nil {
		link := fmt.Sprintf("%s/public/proposals/%s", s.publicBase, p.ShareToken)
		if err := s.emailSvc.SendProposalLink(ctx, client.Email, client.Name, p.Title, link); err != nil {
			logger.Warn("Failed to send proposal link", "proposal_id", p.ID, "error", err)
		}
	}
	return p, nil
}

func (s *proposalService) Reject(ctx context.Context, id int32) (*domain.Proposal, error) {
	p, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProposalStatusSent && p.Status != domain.ProposalStatusViewed {
		return nil, conflictf("proposal cannot be rejected from status %s", p.Status)
	}
	p.Status = domain.ProposalStatusRejected
	if err := s.proposalRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *proposalService) Accept(ctx context.Context, id int32) (*AcceptResult, error) {
	p, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, p)
}

func (s *proposalService) AcceptByShareToken(ctx context.Context, token string) (*AcceptResult, error) {
	p, err := s.proposalRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.accept(ctx, p)
}

// accept runs the five acceptance sub-steps inside one database
// transaction: flip status with the total snapshot, create the project,
// create calendar entries for dated items and optionals, and create the
// income transactions. A failure in any step after the flip is reported
// as a PartialSideEffectError and rolls everything back.
func (s *proposalService) accept(ctx context.Context, p *domain.Proposal) (*AcceptResult, error) {
	switch {
	case p.Status == domain.ProposalStatusAccepted:
		return nil, conflictf("proposal is already accepted")
	case p.Status == domain.ProposalStatusRejected:
		return nil, conflictf("proposal was rejected")
	case p.Status == domain.ProposalStatusDraft:
		return nil, conflictf("proposal has not been sent")
	case p.EffectiveStatus(time.Now()) == domain.ProposalStatusExpired:
		return nil, conflictf("proposal has expired")
	}

	totals := utils.ComputeProposalTotals(p.LineItems, p.Optionals, p.DiscountPercent)
	now := time.Now()
	var result AcceptResult

	err := s.txRunner.WithinTx(ctx, func(repos repository.Repositories) error {
		p.Status = domain.ProposalStatusAccepted
		snapshot := totals.TotalCents
		p.AcceptedTotalCents = &snapshot
		p.AcceptedOn = &now
		if err := repos.Proposals.Update(ctx, p); err != nil {
			return fmt.Errorf("accept proposal %d: %w", p.ID, err)
		}

		project := &domain.Project{
			ClientID:    p.ClientID,
			ProposalID:  &p.ID,
			Name:        p.Title,
			Description: p.Description,
			Status:      domain.ProjectStatusPlanning,
			BudgetCents: &snapshot,
		}
		if err := repos.Projects.Create(ctx, project); err != nil {
			return &PartialSideEffectError{Step: "create_project", Err: err}
		}
		result.ProjectID = project.ID

		if err := s.createCalendarEvents(ctx, repos, p, project.ID, &result); err != nil {
			return err
		}
		if err := s.createReceivables(ctx, repos, p, project.ID, totals.TotalCents, &result); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAccepted(ctx, p, totals.TotalCents)
	return &result, nil
}

func (s *proposalService) createCalendarEvents(ctx context.Context, repos repository.Repositories, p *domain.Proposal, projectID int32, result *AcceptResult) error {
	for _, it := range p.LineItems {
		if it.EventDate == nil {
			continue
		}
		ev := &domain.CalendarEvent{
			ProjectID:    projectID,
			Title:        it.Description,
			EventDate:    *it.EventDate,
			SourceItemID: &it.ID,
		}
		if err := repos.Projects.CreateCalendarEvent(ctx, ev); err != nil {
			return &PartialSideEffectError{Step: "create_calendar_events", Err: err}
		}
		result.CalendarEventsCreated++
	}
	for _, op := range p.Optionals {
		if op.EventDate == nil {
			continue
		}
		ev := &domain.CalendarEvent{
			ProjectID:        projectID,
			Title:            op.Title,
			EventDate:        *op.EventDate,
			SourceOptionalID: &op.ID,
		}
		if err := repos.Projects.CreateCalendarEvent(ctx, ev); err != nil {
			return &PartialSideEffectError{Step: "create_calendar_events", Err: err}
		}
		result.CalendarEventsCreated++
	}
	return nil
}

// createReceivables splits the accepted value into INCOME transactions:
// one per payment-schedule entry when a schedule exists, a single
// receivable otherwise. Non-positive parts (possible when the discount
// exceeds 100%) create nothing.
func (s *proposalService) createReceivables(ctx context.Context, repos repository.Repositories, p *domain.Proposal, projectID int32, totalCents int64, result *AcceptResult) error {
	parts := utils.SplitBySchedule(totalCents, p.PaymentSchedule)
	for i, amount := range parts {
		if amount <= 0 {
			continue
		}
		tx := &domain.Transaction{
			Type:        domain.TransactionTypeIncome,
			Category:    domain.CategoryClientPayment,
			AmountCents: amount,
			Status:      domain.TransactionStatusPending,
			Description: fmt.Sprintf("Receivable for proposal: %s", p.Title),
			ProjectID:   &projectID,
			ProposalID:  &p.ID,
		}
		if i < len(p.PaymentSchedule) {
			entry := p.PaymentSchedule[i]
			tx.DueDate = entry.DueDate
			if entry.Description != "" {
				tx.Description = fmt.Sprintf("%s - %s", p.Title, entry.Description)
			}
		}
		if err := repos.Transactions.Create(ctx, tx); err != nil {
			return &PartialSideEffectError{Step: "create_transactions", Err: err}
		}
		result.TransactionsCreated++
	}
	return nil
}

func (s *proposalService) notifyAccepted(ctx context.Context, p *domain.Proposal, totalCents int64) {
	if s.owner.Email != "" {
		if err := s.emailSvc.SendProposalAcceptedNotice(ctx, s.owner.Email, p.Title, totalCents); err != nil {
			logger.Warn("Failed to send acceptance notice", "proposal_id", p.ID, "error", err)
		}
	}
	if s.owner.UserID != 0 {
		note := &domain.Notification{
			UserID:  s.owner.UserID,
			Title:   "Proposal Accepted",
			Message: fmt.Sprintf("Proposal %q was accepted by the client", p.Title),
			Attributes: map[string]string{
				"type":        "PROPOSAL_ACCEPTED",
				"proposal_id": fmt.Sprintf("%d", p.ID),
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("Failed to create acceptance notification", "proposal_id", p.ID, "error", err)
		}
	}
}

func (s *proposalService) AddItem(ctx context.Context, item *domain.LineItem) (utils.ProposalTotals, error) {
	if _, err := s.editableProposal(ctx, item.ProposalID); err != nil {
		return utils.ProposalTotals{}, err
	}
	if err := validateItem(item); err != nil {
		return utils.ProposalTotals{}, err
	}
	if err := s.proposalRepo.CreateItem(ctx, item); err != nil {
		return utils.ProposalTotals{}, err
	}
	return s.recompute(ctx, item.ProposalID)
}

func (s *proposalService) UpdateItem(ctx context.Context, item *domain.LineItem) (utils.ProposalTotals, error) {
	if _, err := s.editableProposal(ctx, item.ProposalID); err != nil {
		return utils.ProposalTotals{}, err
	}
	if err := validateItem(item); err != nil {
		return utils.ProposalTotals{}, err
	}
	if err := s.proposalRepo.UpdateItem(ctx, item); err != nil {
		return utils.ProposalTotals{}, err
	}
	return s.recompute(ctx, item.ProposalID)
}

func (s *proposalService) RemoveItem(ctx context.Context, proposalID, itemID int32) (utils.ProposalTotals, error) {
	if _, err := s.editableProposal(ctx, proposalID); err != nil {
		return utils.ProposalTotals{}, err
	}
	if err := s.proposalRepo.DeleteItem(ctx, proposalID, itemID); err != nil {
		return utils.ProposalTotals{}, err
	}
	return s.recompute(ctx, proposalID)
}

func (s *proposalService) AddOptional(ctx context.Context, op *domain.Optional) (utils.ProposalTotals, error) {
	if _, err := s.editableProposal(ctx, op.ProposalID); err != nil {
		return utils.ProposalTotals{}, err
	}
	if err := validateOptional(op); err != nil {
		return utils.ProposalTotals{}, err
	}
	if err := s.proposalRepo.CreateOptional(ctx, op); err != nil {
		return utils.ProposalTotals{}, err
	}
	return s.recompute(ctx, op.ProposalID)
}

func (s *proposalService) UpdateOptional(ctx context.Context, op *domain.Optional) (utils.ProposalTotals, error) {
	if _, err := s.editableProposal(ctx, op.ProposalID); err != nil {
		return utils.ProposalTotals{}, err
	}
	if err := validateOptional(op); err != nil {
		return utils.ProposalTotals{}, err
	}
	if err := s.proposalRepo.UpdateOptional(ctx, op); err != nil {
		return utils.ProposalTotals{}, err
	}
	return s.recompute(ctx, op.ProposalID)
}

func (s *proposalService) RemoveOptional(ctx context.Context, proposalID, optionalID int32) (utils.ProposalTotals, error) {
	if _, err := s.editableProposal(ctx, proposalID); err != nil {
		return utils.ProposalTotals{}, err
	}
	if err := s.proposalRepo.DeleteOptional(ctx, proposalID, optionalID); err != nil {
		return utils.ProposalTotals{}, err
	}
	return s.recompute(ctx, proposalID)
}

func (s *proposalService) AddScheduleEntry(ctx context.Context, entry *domain.PaymentScheduleEntry) (*domain.Proposal, error) {
	p, err := s.editableProposal(ctx, entry.ProposalID)
	if err != nil {
		return nil, err
	}
	if entry.Percent == nil && entry.AmountCents == nil {
		return nil, validationf("payment schedule entry needs a percent or an amount")
	}
	if err := s.proposalRepo.CreateScheduleEntry(ctx, entry); err != nil {
		return nil, err
	}
	return s.proposalRepo.GetByID(ctx, p.ID)
}

func (s *proposalService) RemoveScheduleEntry(ctx context.Context, proposalID, entryID int32) error {
	if _, err := s.editableProposal(ctx, proposalID); err != nil {
		return err
	}
	return s.proposalRepo.DeleteScheduleEntry(ctx, proposalID, entryID)
}

// GetByShareToken serves the public proposal view. The first view of a
// SENT proposal records the VIEWED transition; expiry is applied at
// display time only and never written back.
func (s *proposalService) GetByShareToken(ctx context.Context, token string) (*domain.Proposal, utils.ProposalTotals, error) {
	p, err := s.proposalRepo.GetByShareToken(ctx, token)
	if err != nil {
		return nil, utils.ProposalTotals{}, err
	}

	now := time.Now()
	if p.Status == domain.ProposalStatusSent && p.EffectiveStatus(now) != domain.ProposalStatusExpired {
		p.Status = domain.ProposalStatusViewed
		if err := s.proposalRepo.Update(ctx, p); err != nil {
			return nil, utils.ProposalTotals{}, err
		}
	}

	p.Status = p.EffectiveStatus(now)
	return p, utils.ComputeProposalTotals(p.LineItems, p.Optionals, p.DiscountPercent), nil
}

// ToggleOptional is the only mutation available to the unauthenticated
// counterparty. The selection persists immediately and the returned
// totals are recomputed from the stored state, so toggling twice always
// restores the original total.
func (s *proposalService) ToggleOptional(ctx context.Context, token string, optionalID int32, selected bool) (utils.ProposalTotals, error) {
	p, err := s.proposalRepo.GetByShareToken(ctx, token)
	if err != nil {
		return utils.ProposalTotals{}, err
	}
	switch {
	case p.Status.Terminal():
		return utils.ProposalTotals{}, conflictf("proposal is no longer open")
	case p.EffectiveStatus(time.Now()) == domain.ProposalStatusExpired:
		return utils.ProposalTotals{}, conflictf("proposal has expired")
	}

	if err := s.proposalRepo.SetOptionalSelection(ctx, p.ID, optionalID, selected); err != nil {
		return utils.ProposalTotals{}, err
	}
	return s.recompute(ctx, p.ID)
}

// editableProposal loads a proposal and rejects pricing edits outside
// DRAFT and SENT.
func (s *proposalService) editableProposal(ctx context.Context, id int32) (*domain.Proposal, error) {
	p, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.Editable() {
		return nil, conflictf("proposal in status %s cannot be edited", p.Status)
	}
	return p, nil
}

func (s *proposalService) recompute(ctx context.Context, proposalID int32) (utils.ProposalTotals, error) {
	p, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return utils.ProposalTotals{}, err
	}
	return utils.ComputeProposalTotals(p.LineItems, p.Optionals, p.DiscountPercent), nil
}

func validateItem(item *domain.LineItem) error {
	if item.Description == "" {
		return validationf("line item description is required")
	}
	if item.Quantity <= 0 {
		return validationf("line item quantity must be positive")
	}
	if item.UnitPriceCents < 0 {
		return validationf("line item unit price cannot be negative")
	}
	return nil
}

func validateOptional(op *domain.Optional) error {
	if op.Title == "" {
		return validationf("optional title is required")
	}
	if op.PriceCents < 0 {
		return validationf("optional price cannot be negative")
	}
	return nil
}
