package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/swisspay/swisspay_backend/internal/apperrors"
	"github.com/swisspay/swisspay_backend/internal/core/domain"
	portsrepo "github.com/swisspay/swisspay_backend/internal/core/ports/repositories"
	"github.com/swisspay/swisspay_backend/internal/models"
	"github.com/swisspay/swisspay_backend/internal/utils/mapping"
	"github.com/swisspay/swisspay_backend/internal/utils/pagination"
)

// maxCommitRetries bounds the internal retries on serialization failures and
// deadlocks before giving up with ErrConcurrentModification.
const maxCommitRetries = 3

const transactionColumns = `transaction_id, kind, sender_external_id, receiver_external_id, amount, created_at`

type PgxLedgerRepository struct {
	BaseRepository
}

// NewPgxLedgerRepository creates a new repository for balance mutations and
// the transaction log.
func NewPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// lockedAccount is the minimal row state read under FOR UPDATE.
type lockedAccount struct {
	ExternalID int64
	Balance    decimal.Decimal
	IsActive   bool
}

// lockAccounts locks the rows for the given external ids in ascending id
// order. Every concurrent transfer acquires its locks in the same order, so
// two transfers touching the same pair cannot deadlock on each other.
func lockAccounts(ctx context.Context, tx pgx.Tx, externalIDs []int64) (map[int64]lockedAccount, error) {
	query := `
		SELECT external_id, balance, is_active
		FROM accounts
		WHERE external_id = ANY($1)
		ORDER BY external_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account rows: %w", err)
	}
	defer rows.Close()

	locked := make(map[int64]lockedAccount, len(externalIDs))
	for rows.Next() {
		var a lockedAccount
		if err := rows.Scan(&a.ExternalID, &a.Balance, &a.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked[a.ExternalID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}
	return locked, nil
}

// isRetryableTxError reports whether the error is a serialization failure or
// deadlock that a fresh attempt may resolve.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// classifyInfraError maps non-SQL failures (lost connections, pool exhaustion)
// to ErrStorageUnavailable. SQL-level errors pass through untouched.
func classifyInfraError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
}

// ExecuteTransfer moves the amount between the two accounts and appends the
// log entry in one database transaction. Validation errors carry no side
// effect: the transaction rolls back and no balance or log entry changes.
func (r *PgxLedgerRepository) ExecuteTransfer(ctx context.Context, txn domain.Transaction) error {
	var err error
	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		err = r.executeTransferOnce(ctx, txn)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return fmt.Errorf("%w: transfer %s lost %d races", apperrors.ErrConcurrentModification, txn.TransactionID, maxCommitRetries)
}

func (r *PgxLedgerRepository) executeTransferOnce(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return classifyInfraError(err)
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockAccounts(ctx, tx, []int64{txn.SenderExternalID, txn.ReceiverExternalID})
	if err != nil {
		return classifyInfraError(err)
	}

	sender, ok := locked[txn.SenderExternalID]
	if !ok || !sender.IsActive {
		return apperrors.ErrSenderNotFound
	}
	receiver, ok := locked[txn.ReceiverExternalID]
	if !ok || !receiver.IsActive {
		return apperrors.ErrReceiverNotFound
	}

	// Balance check happens here, against the locked row, not against
	// whatever the caller read earlier.
	if sender.Balance.LessThan(txn.Amount) {
		return apperrors.ErrInsufficientBalance
	}

	if err := applyBalanceChange(ctx, tx, txn.SenderExternalID, txn.Amount.Neg(), txn.CreatedAt); err != nil {
		return classifyInfraError(err)
	}
	if err := applyBalanceChange(ctx, tx, txn.ReceiverExternalID, txn.Amount, txn.CreatedAt); err != nil {
		return classifyInfraError(err)
	}

	if err := insertLogEntry(ctx, tx, txn); err != nil {
		return classifyInfraError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return classifyInfraError(err)
	}
	return nil
}

// ExecutePlanPurchase debits the buyer, activates the plan and appends the
// PLAN_PURCHASE log entry in one database transaction.
func (r *PgxLedgerRepository) ExecutePlanPurchase(ctx context.Context, txn domain.Transaction, plan domain.PlanID, purchasedAt time.Time) error {
	var err error
	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		err = r.executePlanPurchaseOnce(ctx, txn, plan, purchasedAt)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return fmt.Errorf("%w: plan purchase %s lost %d races", apperrors.ErrConcurrentModification, txn.TransactionID, maxCommitRetries)
}

func (r *PgxLedgerRepository) executePlanPurchaseOnce(ctx context.Context, txn domain.Transaction, plan domain.PlanID, purchasedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return classifyInfraError(err)
	}
	defer r.Rollback(ctx, tx)

	locked, err := lockAccounts(ctx, tx, []int64{txn.SenderExternalID})
	if err != nil {
		return classifyInfraError(err)
	}
	buyer, ok := locked[txn.SenderExternalID]
	if !ok || !buyer.IsActive {
		return apperrors.ErrSenderNotFound
	}
	if buyer.Balance.LessThan(txn.Amount) {
		return apperrors.ErrInsufficientBalance
	}

	query := `
		UPDATE accounts
		SET balance = balance - $1, subscription_plan = $2, subscription_purchased_at = $3, last_updated_at = $4
		WHERE external_id = $5;
	`
	if _, err := tx.Exec(ctx, query, txn.Amount, string(plan), purchasedAt, txn.CreatedAt, txn.SenderExternalID); err != nil {
		return classifyInfraError(fmt.Errorf("failed to apply plan purchase: %w", err))
	}

	if err := insertLogEntry(ctx, tx, txn); err != nil {
		return classifyInfraError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return classifyInfraError(err)
	}
	return nil
}

func applyBalanceChange(ctx context.Context, tx pgx.Tx, externalID int64, delta decimal.Decimal, now time.Time) error {
	query := `UPDATE accounts SET balance = balance + $1, last_updated_at = $2 WHERE external_id = $3;`
	if _, err := tx.Exec(ctx, query, delta, now, externalID); err != nil {
		return fmt.Errorf("failed to update balance of account %d: %w", externalID, err)
	}
	return nil
}

func insertLogEntry(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Kind,
		m.SenderExternalID,
		m.ReceiverExternalID,
		m.Amount,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append log entry %s: %w", m.TransactionID, err)
	}
	return nil
}

// ListTransactionsByExternalID returns entries where the account is sender or
// receiver, newest first. The cursor is (created_at, transaction_id) of the
// last entry on the previous page.
func (r *PgxLedgerRepository) ListTransactionsByExternalID(ctx context.Context, externalID int64, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (sender_external_id = $1 OR receiver_external_id = $1)
	`
	args := []interface{}{externalID}

	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, cursorAt, cursorID)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1) // one extra row to detect a further page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, classifyInfraError(fmt.Errorf("failed to list transactions for account %d: %w", externalID, err))
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.TransactionID, &m.Kind, &m.SenderExternalID, &m.ReceiverExternalID, &m.Amount, &m.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		next = &token
	}

	return mapping.ToDomainTransactionSlice(ms), next, nil
}

func (r *PgxLedgerRepository) CountTransactionsByExternalID(ctx context.Context, externalID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE sender_external_id = $1 OR receiver_external_id = $1;`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, externalID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for account %d: %w", externalID, err)
	}
	return count, nil
}
