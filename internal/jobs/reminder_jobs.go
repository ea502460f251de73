package jobs

import (
	"context"
	"fmt"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/logger"
)

// SendOverdueReminders emails the owner about receivables and payables
// whose due date has passed without a recorded payment.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()
		owner := jr.config.Owner

		overdue, err := jr.store.TransactionRepository.ListDueBefore(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue transactions", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("No overdue transactions")
			return
		}

		sent := 0
		for _, tx := range overdue {
			if owner.Email != "" && tx.DueDate != nil {
				if err := jr.email.SendPaymentOverdueReminder(ctx, owner.Email, tx.Description, tx.AmountCents, *tx.DueDate); err != nil {
					logger.Error("Failed to send overdue reminder", "transaction_id", tx.ID, "error", err)
					continue
				}
			}
			if owner.UserID != 0 {
				note := &domain.Notification{
					UserID:  owner.UserID,
					Title:   "Payment Overdue",
					Message: fmt.Sprintf("%s (%s) is past its due date", tx.Description, tx.Type),
					Attributes: map[string]string{
						"type":           "PAYMENT_OVERDUE",
						"transaction_id": fmt.Sprintf("%d", tx.ID),
					},
				}
				if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
					logger.Error("Failed to create overdue notification", "transaction_id", tx.ID, "error", err)
					continue
				}
			}
			sent++
		}
		logger.Info("Sent overdue reminders", "count", sent, "overdue", len(overdue))
	})
}

// SendExpiryNotifications tells the owner which outstanding proposals
// have passed their valid-until date. The proposal row is not touched;
// expiry is derived at display time.
func (jr *JobRunner) SendExpiryNotifications() {
	jr.runWithRecovery("SendExpiryNotifications", func() {
		ctx := context.Background()
		owner := jr.config.Owner
		if owner.UserID == 0 {
			logger.Info("No owner configured, skipping expiry notifications")
			return
		}

		expired, err := jr.store.ProposalRepository.ListExpiring(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list expiring proposals", "error", err)
			return
		}

		count := 0
		for _, p := range expired {
			note := &domain.Notification{
				UserID:  owner.UserID,
				Title:   "Proposal Expired",
				Message: fmt.Sprintf("Proposal %q passed its valid-until date without a decision", p.Title),
				Attributes: map[string]string{
					"type":        "PROPOSAL_EXPIRED",
					"proposal_id": fmt.Sprintf("%d", p.ID),
				},
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to create expiry notification", "proposal_id", p.ID, "error", err)
				continue
			}
			count++
		}
		logger.Info("Sent expiry notifications", "count", count)
	})
}
