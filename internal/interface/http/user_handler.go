package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/subtrackhq/subtrack/internal/application"
	"github.com/subtrackhq/subtrack/internal/domain/entity"
	"github.com/subtrackhq/subtrack/internal/interface/middleware"
	"github.com/subtrackhq/subtrack/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Me GET /api/users/me
// The authorize middleware already resolved the account; reuse it instead of
// a second store read.
func (h *UserHandler) Me(c *gin.Context) {
	if v, ok := c.Get(middleware.CtxUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			response.Success(c, http.StatusOK, userView(u), "profile", nil)
			return
		}
	}

	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "profile", nil)
}

// UploadAvatar PUT /api/users/me/avatar (multipart field "avatar")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "avatar file is not readable", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(
		c.Request.Context(),
		c.GetString(middleware.CtxUserIDKey),
		f,
		fh.Filename,
		fh.Header.Get("Content-Type"),
	)
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar updated", nil)
}
