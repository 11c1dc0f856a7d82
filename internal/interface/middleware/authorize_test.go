package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrackhq/subtrack/internal/domain/apperr"
	"github.com/subtrackhq/subtrack/internal/domain/entity"
	"github.com/subtrackhq/subtrack/internal/domain/repository"
	"github.com/subtrackhq/subtrack/pkg/helpers"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "user not found")
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "user not found")
	}
	return u, nil
}

func (s *stubUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }

func (s *stubUserRepo) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.UserTx) error) error {
	return apperr.New(apperr.KindUnavailable, "not supported")
}

func guardedRouter(repo repository.UserRepository, jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Authorize(repo, jwt, nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(CtxUserIDKey)})
	})
	return r
}

func TestAuthorize_MissingHeader(t *testing.T) {
	r := guardedRouter(&stubUserRepo{}, helpers.NewJWTManager("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize_NonBearerScheme(t *testing.T) {
	r := guardedRouter(&stubUserRepo{}, helpers.NewJWTManager("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize_ValidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*entity.User{
		"u-1": {ID: "u-1", Email: "a@b.co", Name: "A"},
	}}
	token, _, err := jwt.Issue("u-1")
	require.NoError(t, err)

	r := guardedRouter(repo, jwt)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u-1"`)
}

func TestAuthorize_ExpiredToken(t *testing.T) {
	issuer := helpers.NewJWTManager("secret", -time.Minute)
	token, _, err := issuer.Issue("u-1")
	require.NoError(t, err)

	repo := &stubUserRepo{users: map[string]*entity.User{
		"u-1": {ID: "u-1", Email: "a@b.co"},
	}}
	r := guardedRouter(repo, helpers.NewJWTManager("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize_WrongSigningKey(t *testing.T) {
	token, _, err := helpers.NewJWTManager("other-secret", time.Hour).Issue("u-1")
	require.NoError(t, err)

	repo := &stubUserRepo{users: map[string]*entity.User{
		"u-1": {ID: "u-1", Email: "a@b.co"},
	}}
	r := guardedRouter(repo, helpers.NewJWTManager("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize_DeletedAccount(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	token, _, err := jwt.Issue("gone")
	require.NoError(t, err)

	r := guardedRouter(&stubUserRepo{users: map[string]*entity.User{}}, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
