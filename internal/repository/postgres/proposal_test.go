package postgres_test

import (
	"context"
	"testing"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/repository"
	"reelstudio-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var proposalCols = []string{
	"id", "client_id", "title", "description", "discount_percent", "valid_until", "status",
	"share_token", "accepted_total_cents", "accepted_on", "created_on", "updated_on",
}

func expectProposalChildren(mock sqlmock.Sqlmock, proposalID int32) {
	mock.ExpectQuery("FROM proposal_line_items WHERE proposal_id").
		WithArgs(proposalID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "proposal_id", "description", "quantity", "unit_price_cents", "event_date", "sort_order"}).
			AddRow(1, proposalID, "Shoot day", 2, 10000, nil, 0))
	mock.ExpectQuery("FROM proposal_optionals WHERE proposal_id").
		WithArgs(proposalID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "proposal_id", "title", "description", "price_cents", "is_selected", "event_date", "sort_order"}).
			AddRow(5, proposalID, "Drone footage", "", 3000, true, nil, 0))
	mock.ExpectQuery("FROM proposal_payment_schedule WHERE proposal_id").
		WithArgs(proposalID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "proposal_id", "description", "percent", "amount_cents", "due_date", "sort_order"}))
	mock.ExpectQuery("SELECT (.+) FROM proposal_portfolio_videos WHERE proposal_id").
		WithArgs(proposalID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "proposal_id", "title", "url"}))
}

func TestProposalRepository_GetByShareToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewProposalRepository(db)
	ctx := context.Background()

	t.Run("LoadsAggregate", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("FROM proposals WHERE share_token").
			WithArgs("tok-7").
			WillReturnRows(sqlmock.NewRows(proposalCols).
				AddRow(7, 3, "Brand Film", "", 10.0, nil, "SENT", "tok-7", nil, nil, now, now))
		expectProposalChildren(mock, 7)

		p, err := repo.GetByShareToken(ctx, "tok-7")
		assert.NoError(t, err)
		assert.Equal(t, int32(7), p.ID)
		assert.Len(t, p.LineItems, 1)
		assert.Len(t, p.Optionals, 1)
		assert.True(t, p.Optionals[0].IsSelected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownToken", func(t *testing.T) {
		mock.ExpectQuery("FROM proposals WHERE share_token").
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows(proposalCols))

		_, err := repo.GetByShareToken(ctx, "nope")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestProposalRepository_SetOptionalSelection(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewProposalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE proposal_optionals SET is_selected").
			WithArgs(true, int32(5), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetOptionalSelection(ctx, 7, 5, true))
	})

	t.Run("UnknownOptional", func(t *testing.T) {
		mock.ExpectExec("UPDATE proposal_optionals SET is_selected").
			WithArgs(false, int32(99), int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetOptionalSelection(ctx, 7, 99, false), repository.ErrNotFound)
	})
}

func TestProposalRepository_ListExpiring(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewProposalRepository(db)
	ctx := context.Background()

	cutoff := time.Now()
	deadline := cutoff.Add(-24 * time.Hour)
	mock.ExpectQuery("FROM proposals\\s+WHERE status IN").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows(proposalCols).
			AddRow(7, 3, "Brand Film", "", 10.0, deadline, "SENT", "tok-7", nil, nil, deadline, deadline))

	proposals, err := repo.ListExpiring(ctx, cutoff)
	assert.NoError(t, err)
	if assert.Len(t, proposals, 1) {
		assert.Equal(t, domain.ProposalStatusExpired, proposals[0].EffectiveStatus(cutoff))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
