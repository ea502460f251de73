package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/repository"
)

type clientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (name, company, email, phone, created_on) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Name, c.Company, c.Email, c.Phone, time.Now()).Scan(&c.ID)
}

func (r *clientRepository) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT id, name, COALESCE(company, ''), email, COALESCE(phone, ''), created_on FROM clients WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET name = $1, company = $2, email = $3, phone = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Company, c.Email, c.Phone, c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *clientRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Client, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM clients`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, COALESCE(company, ''), email, COALESCE(phone, ''), created_on FROM clients ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.CreatedOn); err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, count, rows.Err()
}
