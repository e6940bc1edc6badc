package repository

import (
	"context"
	"fmt"
	"time"

	"teakwood/storefront/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LeadRepository archives contact-form leads that were forwarded to the
// intake.
type LeadRepository interface {
	EnsureSchema(ctx context.Context) error
	SaveLead(ctx context.Context, lead domain.Lead, receivedAt time.Time) error
}

type leadRepository struct {
	db *pgxpool.Pool
}

func NewLeadRepository(db *pgxpool.Pool) LeadRepository {
	return &leadRepository{
		db: db,
	}
}

func (r *leadRepository) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS leads (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		phone       TEXT NOT NULL,
		message     TEXT NOT NULL,
		received_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create leads table: %w", err)
	}
	return nil
}

func (r *leadRepository) SaveLead(ctx context.Context, lead domain.Lead, receivedAt time.Time) error {
	query := `
	INSERT INTO leads (name, phone, message, received_at)
	VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query, lead.Name, lead.Phone, lead.Message, receivedAt)
	if err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}

	return nil
}
