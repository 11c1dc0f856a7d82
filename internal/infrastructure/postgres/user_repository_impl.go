package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subtrackhq/subtrack/internal/domain/apperr"
	"github.com/subtrackhq/subtrack/internal/domain/entity"
	"github.com/subtrackhq/subtrack/internal/domain/repository"
)

// uniqueViolation is the Postgres error code raised when an insert breaks a
// unique constraint. It is the authoritative duplicate-account signal.
const uniqueViolation = "23505"

// querier is the query surface shared by the pool and an open transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return getUserByEmail(ctx, r.pool, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, avatar_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
	if err := scanUser(row, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, name = $3, avatar_url = $4, updated_at = $5
		WHERE id = $6
	`, u.Email, u.Password, u.Name, u.AvatarURL, u.UpdatedAt, u.ID)
	if err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "user update failed", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.KindNotFound, "account not found")
	}
	return nil
}

// InTx runs fn inside a single transaction. The deferred rollback fires on
// every exit path, including panics; it is a no-op once the commit succeeds.
func (r *UserRepository) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.UserTx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "begin transaction failed", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, &userTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "commit transaction failed", err)
	}
	return nil
}

type userTx struct {
	tx pgx.Tx
}

func (t *userTx) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return getUserByEmail(ctx, t.tx, email)
}

func (t *userTx) Create(ctx context.Context, u *entity.User) error {
	row := t.tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, avatar_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name, u.AvatarURL)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.Wrap(apperr.KindConflict, "account already exists", err)
		}
		return apperr.Wrap(apperr.KindUnavailable, "user insert failed", err)
	}
	return nil
}

func getUserByEmail(ctx context.Context, q querier, email string) (*entity.User, error) {
	u := &entity.User{}
	row := q.QueryRow(ctx, `
		SELECT id, email, password_hash, name, avatar_url, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	if err := scanUser(row, u); err != nil {
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row, u *entity.User) error {
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.New(apperr.KindNotFound, "account not found")
	}
	return apperr.Wrap(apperr.KindUnavailable, "user lookup failed", err)
}

var _ repository.UserRepository = (*UserRepository)(nil)
