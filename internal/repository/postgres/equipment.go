package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/repository"
)

type equipmentRepository struct {
	db DBTX
}

func NewEquipmentRepository(db DBTX) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, name, COALESCE(category, ''), COALESCE(serial_number, ''), purchase_price_cents, daily_rate_cents,
	purchase_date, status, total_days_booked, total_revenue_generated_cents, created_on, updated_on`

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `INSERT INTO equipment (name, category, serial_number, purchase_price_cents, daily_rate_cents, purchase_date, status, total_days_booked, total_revenue_generated_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		eq.Name, eq.Category, eq.SerialNumber, eq.PurchasePriceCents, eq.DailyRateCents, eq.PurchaseDate,
		eq.Status, eq.TotalDaysBooked, eq.TotalRevenueGeneratedCents, now, now,
	).Scan(&eq.ID)
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&eq.ID, &eq.Name, &eq.Category, &eq.SerialNumber, &eq.PurchasePriceCents, &eq.DailyRateCents,
		&eq.PurchaseDate, &eq.Status, &eq.TotalDaysBooked, &eq.TotalRevenueGeneratedCents, &eq.CreatedOn, &eq.UpdatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	query := `UPDATE equipment SET name=$1, category=$2, serial_number=$3, purchase_price_cents=$4, daily_rate_cents=$5,
	          purchase_date=$6, status=$7, total_days_booked=$8, total_revenue_generated_cents=$9, updated_on=$10 WHERE id=$11`
	res, err := r.db.ExecContext(ctx, query,
		eq.Name, eq.Category, eq.SerialNumber, eq.PurchasePriceCents, eq.DailyRateCents,
		eq.PurchaseDate, eq.Status, eq.TotalDaysBooked, eq.TotalRevenueGeneratedCents, time.Now(), eq.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *equipmentRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM equipment`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + equipmentColumns + ` FROM equipment ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var eq domain.Equipment
		if err := rows.Scan(
			&eq.ID, &eq.Name, &eq.Category, &eq.SerialNumber, &eq.PurchasePriceCents, &eq.DailyRateCents,
			&eq.PurchaseDate, &eq.Status, &eq.TotalDaysBooked, &eq.TotalRevenueGeneratedCents, &eq.CreatedOn, &eq.UpdatedOn,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, eq)
	}
	return items, count, rows.Err()
}

func (r *equipmentRepository) CreateBooking(ctx context.Context, b *domain.EquipmentBooking) error {
	query := `INSERT INTO equipment_bookings (equipment_id, project_id, days, day_rate_cents, start_date, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		b.EquipmentID, b.ProjectID, b.Days, b.DayRateCents, b.StartDate, time.Now(),
	).Scan(&b.ID)
}

func (r *equipmentRepository) ListBookings(ctx context.Context, equipmentID int32) ([]domain.EquipmentBooking, error) {
	query := `SELECT id, equipment_id, project_id, days, day_rate_cents, start_date, created_on
	          FROM equipment_bookings WHERE equipment_id = $1 ORDER BY start_date DESC`
	rows, err := r.db.QueryContext(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.EquipmentBooking
	for rows.Next() {
		var b domain.EquipmentBooking
		if err := rows.Scan(&b.ID, &b.EquipmentID, &b.ProjectID, &b.Days, &b.DayRateCents, &b.StartDate, &b.CreatedOn); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
