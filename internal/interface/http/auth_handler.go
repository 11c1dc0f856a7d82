package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/subtrackhq/subtrack/internal/application"
	"github.com/subtrackhq/subtrack/internal/domain/entity"
	"github.com/subtrackhq/subtrack/pkg/response"
	"github.com/subtrackhq/subtrack/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// userView is the account as returned to clients: the stored secret is
// never part of it.
func userView(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// SignUp POST /api/auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.Failure(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"token": res.Token,
		"user":  userView(res.User),
	}, "account created", gin.H{"token_expires_at": res.TokenExpiry})
}

// SignIn POST /api/auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Failure(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": res.Token,
		"user":  userView(res.User),
	}, "signed in", gin.H{"token_expires_at": res.TokenExpiry})
}

// SignOut POST /api/auth/sign-out
// Tokens are stateless and self-verifying, so there is nothing to revoke
// server-side; the endpoint acknowledges and clients discard their token.
func (h *AuthHandler) SignOut(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"signed_out": true}, "signed out", nil)
}
