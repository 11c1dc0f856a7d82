package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/subtrackhq/subtrack/internal/domain/apperr"
	"github.com/subtrackhq/subtrack/internal/domain/entity"
	"github.com/subtrackhq/subtrack/internal/domain/repository"
	"github.com/subtrackhq/subtrack/pkg/helpers"
)

// UserService serves profile reads and avatar uploads for authenticated
// accounts. It never touches credentials.
type UserService struct {
	Repo      repository.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewUserService(repo repository.UserRepository, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// UploadAvatar stores the image in GCS under a fresh object name and saves
// the public URL on the account.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apperr.New(apperr.KindUnavailable, "object storage not configured")
	}

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUnavailable, "avatar upload failed", err)
	}

	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "object": objectPath}).Info("avatar updated")
	}
	return url, nil
}
