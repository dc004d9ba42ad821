package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/elric-cpu/website-v4-api/internal/database"
	"github.com/elric-cpu/website-v4-api/internal/models"
)

// LeadRepository defines the interface for lead persistence operations.
type LeadRepository interface {
	// Insert stores a captured lead. The lead's ID and CreatedAt must
	// already be set by the caller.
	Insert(ctx context.Context, lead *models.Lead) error

	// MarkForwarded records that the lead was accepted by the external
	// endpoint.
	MarkForwarded(ctx context.Context, id uuid.UUID) error

	// FindByID returns the stored lead.
	// Returns nil, nil if no lead is found (not an error).
	// Returns error only for actual database failures.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
}

// leadRepository is the concrete implementation of LeadRepository.
type leadRepository struct {
	db *database.Database
}

// NewLeadRepository creates a new instance of LeadRepository.
func NewLeadRepository(db *database.Database) LeadRepository {
	return &leadRepository{
		db: db,
	}
}

func (r *leadRepository) Insert(ctx context.Context, lead *models.Lead) error {
	fields, err := json.Marshal(lead.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode lead fields: %w", err)
	}

	query := `
		INSERT INTO leads (
			id,
			category,
			lead_type,
			name,
			email,
			phone,
			zip,
			page_path,
			user_agent,
			fields,
			forwarded,
			submitted_at,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		lead.ID,
		lead.Category,
		lead.Type,
		lead.Contact.Name,
		lead.Contact.Email,
		lead.Contact.Phone,
		lead.Contact.Zip,
		lead.Page.PagePath,
		lead.Page.UserAgent,
		fields,
		lead.Forwarded,
		lead.SubmittedAt,
		lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead %s: %w", lead.ID, err)
	}

	return nil
}

func (r *leadRepository) MarkForwarded(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE leads SET forwarded = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark lead %s forwarded: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lead %s not found", id)
	}
	return nil
}

func (r *leadRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	query := `
		SELECT
			id,
			category,
			lead_type,
			name,
			email,
			phone,
			zip,
			page_path,
			user_agent,
			fields,
			forwarded,
			submitted_at,
			created_at
		FROM leads
		WHERE id = $1
	`

	var lead models.Lead
	var fieldsJSON []byte

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&lead.ID,
		&lead.Category,
		&lead.Type,
		&lead.Contact.Name,
		&lead.Contact.Email,
		&lead.Contact.Phone,
		&lead.Contact.Zip,
		&lead.Page.PagePath,
		&lead.Page.UserAgent,
		&fieldsJSON,
		&lead.Forwarded,
		&lead.SubmittedAt,
		&lead.CreatedAt,
	)

	// No rows found is not an error at the repository level.
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query lead %s: %w", id, err)
	}

	if len(fieldsJSON) > 0 {
		if err := json.Unmarshal(fieldsJSON, &lead.Fields); err != nil {
			return nil, fmt.Errorf("failed to decode fields for lead %s: %w", lead.ID, err)
		}
	}

	return &lead, nil
}
