package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/subtrackhq/subtrack/internal/domain/apperr"
	"github.com/subtrackhq/subtrack/internal/domain/entity"
	"github.com/subtrackhq/subtrack/internal/domain/repository"
	"github.com/subtrackhq/subtrack/pkg/helpers"
)

// AuthService owns the registration and authentication workflows. Both end
// with a freshly issued bearer token; neither ever returns the stored secret.
type AuthService struct {
	Repo       repository.UserRepository
	JWT        *helpers.JWTManager
	Logger     *logrus.Logger
	BcryptCost int
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, bcryptCost int) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger, BcryptCost: bcryptCost}
}

// AuthResult pairs an account with the token issued for it.
type AuthResult struct {
	User        *entity.User
	Token       string
	TokenExpiry time.Time
}

// Register creates an account inside one transaction: duplicate check,
// hash, insert, commit. The in-transaction existence check is advisory;
// under concurrent registration the unique constraint on email decides the
// single winner, and the loser surfaces as a conflict. Any failure rolls
// the transaction back before the error is returned. The token is issued
// only after the commit succeeds.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	var created *entity.User

	err := s.Repo.InTx(ctx, func(ctx context.Context, tx repository.UserTx) error {
		if _, err := tx.GetByEmail(ctx, email); err == nil {
			return apperr.New(apperr.KindConflict, "account already exists")
		} else if !apperr.Is(err, apperr.KindNotFound) {
			return err
		}

		hash, err := helpers.HashPassword(password, s.BcryptCost)
		if err != nil {
			return apperr.Wrap(apperr.KindInternal, "password hash failed", err)
		}

		u := &entity.User{Email: email, Password: hash, Name: name}
		if err := tx.Create(ctx, u); err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		if s.Logger != nil && !apperr.Is(err, apperr.KindConflict) {
			s.Logger.WithError(err).WithField("email", email).Error("registration failed")
		}
		return nil, err
	}

	token, exp, err := s.JWT.Issue(created.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "token issue failed", err)
	}

	if s.Logger != nil {
		s.Logger.WithField("user_id", created.ID).Info("account registered")
	}
	return &AuthResult{User: created, Token: token, TokenExpiry: exp}, nil
}

// Login verifies the email/password pair and issues a token. Unknown email
// and wrong password stay distinct kinds; the handler boundary decides how
// much of that distinction to expose.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ok, err := helpers.VerifyPassword(u.Password, password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindMalformed, "stored credential is corrupt", err)
	}
	if !ok {
		if s.Logger != nil {
			s.Logger.WithField("user_id", u.ID).Warn("login rejected: wrong password")
		}
		return nil, apperr.New(apperr.KindInvalidCredentials, "invalid password")
	}

	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "token issue failed", err)
	}
	return &AuthResult{User: u, Token: token, TokenExpiry: exp}, nil
}
