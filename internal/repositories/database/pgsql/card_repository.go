package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swisspay/swisspay_backend/internal/apperrors"
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	portsrepo "github.com/swisspay/swisspay_backend/internal/core/ports/repositories"
	"github.com/swisspay/swisspay_backend/internal/models"
	"github.com/swisspay/swisspay_backend/internal/utils/mapping"
)

type PgxCardRepository struct {
	BaseRepository
}

// NewPgxCardRepository creates a new repository for card profiles.
func NewPgxCardRepository(pool *pgxpool.Pool) portsrepo.CardRepositoryFacade {
	return &PgxCardRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCardRepository implements portsrepo.CardRepositoryFacade
var _ portsrepo.CardRepositoryFacade = (*PgxCardRepository)(nil)

func (r *PgxCardRepository) FindCardByAccountID(ctx context.Context, accountID string) (*domain.CardProfile, error) {
	query := `
		SELECT account_id, holder, masked_number, expiry_date, design_id, max_limit, day_limit, created_at, last_updated_at
		FROM cards
		WHERE account_id = $1;
	`
	var m models.CardProfile
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&m.AccountID,
		&m.Holder,
		&m.MaskedNumber,
		&m.ExpiryDate,
		&m.DesignID,
		&m.MaxLimit,
		&m.DayLimit,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find card for account %s: %w", accountID, err)
	}
	card := mapping.ToDomainCardProfile(m)
	return &card, nil
}

func (r *PgxCardRepository) UpsertCard(ctx context.Context, card domain.CardProfile) error {
	m := mapping.ToModelCardProfile(card)
	query := `
		INSERT INTO cards (account_id, holder, masked_number, expiry_date, design_id, max_limit, day_limit, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account_id) DO UPDATE SET
			holder = EXCLUDED.holder,
			masked_number = EXCLUDED.masked_number,
			expiry_date = EXCLUDED.expiry_date,
			design_id = EXCLUDED.design_id,
			max_limit = EXCLUDED.max_limit,
			day_limit = EXCLUDED.day_limit,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Holder,
		m.MaskedNumber,
		m.ExpiryDate,
		m.DesignID,
		m.MaxLimit,
		m.DayLimit,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert card for account %s: %w", m.AccountID, err)
	}
	return nil
}
