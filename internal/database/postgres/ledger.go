package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playventures/bizlab/internal/domain"
	"github.com/playventures/bizlab/internal/repository"
)

// querier is the subset of pgx operations shared by the pool and transactions,
// so the row-mapping helpers work inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LedgerRepository implements the reward-ledger repository for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// LedgerTx implements repository.LedgerTx
type LedgerTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *LedgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &LedgerTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *LedgerTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *LedgerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetUserByID retrieves a user with their portfolio, or (nil, nil) if absent
func (r *LedgerRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return getUser(ctx, r.db, queryUserByID, userID)
}

// GetUserByUsername retrieves a user by username, or (nil, nil) if absent
func (r *LedgerRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return getUser(ctx, r.db, queryUserByUsername, username)
}

// CreateUser inserts a new user row. The caller supplies the ID.
func (r *LedgerRepository) CreateUser(ctx context.Context, user *domain.User) error {
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	_, err := r.db.Exec(ctx, queryInsertUser,
		user.ID, user.Username, user.XP, user.Level, user.BizCoins, skills, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrUsernameTaken, user.Username)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpdateUser writes the user row and upserts their portfolio
func (r *LedgerRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return updateUser(ctx, r.db, user)
}

// GetUser retrieves a user inside the transaction, locking the row for update
func (t *LedgerTx) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return getUser(ctx, t.tx, queryUserByIDForUpdate, userID)
}

// UpdateUser writes the user row and upserts their portfolio within the transaction
func (t *LedgerTx) UpdateUser(ctx context.Context, user domain.User) error {
	return updateUser(ctx, t.tx, user)
}

func getUser(ctx context.Context, q querier, query, arg string) (*domain.User, error) {
	var user domain.User
	err := q.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.XP, &user.Level, &user.BizCoins, &user.Skills, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	rows, err := q.Query(ctx, queryPortfolioByUser, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.PortfolioItem
		if err := rows.Scan(&item.BusinessID, &item.ManagerLevel, &item.LastCollected); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio item: %w", err)
		}
		user.Portfolio = append(user.Portfolio, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read portfolio rows: %w", err)
	}

	return &user, nil
}

func updateUser(ctx context.Context, q querier, user domain.User) error {
	skills := user.Skills
	if skills == nil {
		skills = []string{}
	}
	tag, err := q.Exec(ctx, queryUpdateUser,
		user.Username, user.XP, user.Level, user.BizCoins, skills, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, user.ID)
	}

	for _, item := range user.Portfolio {
		_, err := q.Exec(ctx, queryUpsertPortfolioItem,
			user.ID, item.BusinessID, item.ManagerLevel, item.LastCollected)
		if err != nil {
			return fmt.Errorf("failed to upsert portfolio item %s: %w", item.BusinessID, err)
		}
	}
	return nil
}
