package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swisspay/swisspay_backend/internal/apperrors"
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	portsrepo "github.com/swisspay/swisspay_backend/internal/core/ports/repositories"
	"github.com/swisspay/swisspay_backend/internal/models"
	"github.com/swisspay/swisspay_backend/internal/utils/mapping"
)

const accountColumns = `account_id, external_id, username, email, balance, is_active, subscription_plan, subscription_purchased_at, created_at, last_updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// NewPgxAccountRepository creates a new repository for account data.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.ExternalID,
		&m.Username,
		&m.Email,
		&m.Balance,
		&m.IsActive,
		&m.SubscriptionPlan,
		&m.SubscriptionPurchasedAt,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAccount persists a new account and its credential in one transaction.
// A collision on the drawn external id is reported as ErrExternalIDTaken so
// the caller can draw again; username and email collisions are terminal.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account, passwordHash string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelAcc := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, external_id, username, email, password_hash, balance, is_active, subscription_plan, subscription_purchased_at, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.ExternalID,
		modelAcc.Username,
		modelAcc.Email,
		passwordHash,
		modelAcc.Balance,
		modelAcc.IsActive,
		modelAcc.SubscriptionPlan,
		modelAcc.SubscriptionPurchasedAt,
		modelAcc.CreatedAt,
		modelAcc.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			switch pgErr.ConstraintName {
			case "accounts_external_id_key":
				return apperrors.ErrExternalIDTaken
			case "accounts_username_key":
				return fmt.Errorf("%w: username %s already taken", apperrors.ErrDuplicate, modelAcc.Username)
			case "accounts_email_key":
				return fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
			}
			return fmt.Errorf("%w: account already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save account: %w", err)
	}

	// Default card profile, created alongside the account
	cardQuery := `
		INSERT INTO cards (account_id, holder, masked_number, expiry_date, design_id, max_limit, day_limit, created_at, last_updated_at)
		VALUES ($1, $2, '', '', 1, 1000, 500, $3, $3);
	`
	_, err = tx.Exec(ctx, cardQuery, modelAcc.AccountID, modelAcc.Username, modelAcc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create default card profile: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

func (r *PgxAccountRepository) FindAccountByExternalID(ctx context.Context, externalID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE external_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by external id %d: %w", externalID, err)
	}
	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

func (r *PgxAccountRepository) FindAccountsByExternalIDs(ctx context.Context, externalIDs []int64) (map[int64]domain.Account, error) {
	if len(externalIDs) == 0 {
		return map[int64]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE external_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts by external ids: %w", err)
	}
	defer rows.Close()

	accounts := make(map[int64]domain.Account, len(externalIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[m.ExternalID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountsByUsernamePrefix matches usernames in the half-open range
// [prefix, prefix-with-last-character-incremented), the same range a
// lexicographic index can serve directly.
func (r *PgxAccountRepository) FindAccountsByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]domain.Account, error) {
	if prefix == "" {
		return []domain.Account{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	upper := usernamePrefixUpperBound(prefix)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE username >= $1 AND username < $2 AND is_active = TRUE
		ORDER BY username
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, prefix, upper, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts by username prefix: %w", err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// usernamePrefixUpperBound increments the last byte of the prefix, producing
// the exclusive upper bound of the range that contains every string starting
// with the prefix.
func usernamePrefixUpperBound(prefix string) string {
	b := []byte(prefix)
	b[len(b)-1]++
	return string(b)
}

func (r *PgxAccountRepository) FindCredentialByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	query := `SELECT account_id, password_hash FROM accounts WHERE username = $1 AND is_active = TRUE;`
	var cred domain.Credential
	err := r.Pool.QueryRow(ctx, query, username).Scan(&cred.AccountID, &cred.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credential for username: %w", err)
	}
	return &cred, nil
}

func (r *PgxAccountRepository) UpdateUsername(ctx context.Context, accountID string, username string, now time.Time) error {
	query := `UPDATE accounts SET username = $1, last_updated_at = $2 WHERE account_id = $3;`
	tag, err := r.Pool.Exec(ctx, query, username, now, accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: username %s already taken", apperrors.ErrDuplicate, username)
		}
		return fmt.Errorf("failed to update username for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, now time.Time) error {
	query := `UPDATE accounts SET is_active = FALSE, last_updated_at = $1 WHERE account_id = $2 AND is_active = TRUE;`
	tag, err := r.Pool.Exec(ctx, query, now, accountID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
