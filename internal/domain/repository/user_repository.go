package repository

import (
	"context"

	"github.com/subtrackhq/subtrack/internal/domain/entity"
)

// UserTx is the transactional view of the user store handed to the
// registration workflow. Everything executed through it is part of one
// all-or-nothing unit.
type UserTx interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
}

// UserRepository defines user store access. Reads return an error of kind
// apperr.KindNotFound when no record matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error

	// InTx runs fn inside a scoped transaction. The transaction commits when
	// fn returns nil and rolls back on every other exit path, including
	// panics; no partial write is ever visible outside the transaction.
	InTx(ctx context.Context, fn func(ctx context.Context, tx UserTx) error) error
}
