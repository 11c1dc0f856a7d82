package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/subtrackhq/subtrack/internal/application"
	"github.com/subtrackhq/subtrack/internal/domain/entity"
	"github.com/subtrackhq/subtrack/internal/interface/middleware"
	"github.com/subtrackhq/subtrack/pkg/response"
	"github.com/subtrackhq/subtrack/pkg/validation"
)

type SubscriptionHandler struct {
	Svc    *application.SubscriptionService
	Logger *logrus.Logger
}

func NewSubscriptionHandler(svc *application.SubscriptionService, logger *logrus.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{Svc: svc, Logger: logger}
}

type createSubscriptionRequest struct {
	Name          string     `json:"name" binding:"required,subname"`
	Price         float64    `json:"price" binding:"required,gt=0"`
	Currency      string     `json:"currency" binding:"omitempty,oneof=USD EUR GBP AUD"`
	Frequency     string     `json:"frequency" binding:"required,oneof=daily weekly monthly yearly"`
	Category      string     `json:"category" binding:"required,oneof=entertainment news education health"`
	PaymentMethod string     `json:"payment_method" binding:"required"`
	StartDate     time.Time  `json:"start_date" binding:"required"`
	RenewalDate   *time.Time `json:"renewal_date"`
}

func subscriptionView(s *entity.Subscription) gin.H {
	return gin.H{
		"id":             s.ID,
		"user_id":        s.UserID,
		"name":           s.Name,
		"price":          s.Price,
		"currency":       s.Currency,
		"frequency":      s.Frequency,
		"category":       s.Category,
		"payment_method": s.PaymentMethod,
		"status":         s.Status,
		"start_date":     s.StartDate,
		"renewal_date":   s.RenewalDate,
		"created_at":     s.CreatedAt,
		"updated_at":     s.UpdatedAt,
	}
}

// Create POST /api/subscriptions
func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.StartDate.After(time.Now()) {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"start_date": "must be in the past"})
		return
	}
	if req.RenewalDate != nil && !req.RenewalDate.After(req.StartDate) {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"renewal_date": "must be after start date"})
		return
	}

	in := application.CreateInput{
		Name:          req.Name,
		Price:         req.Price,
		Currency:      entity.Currency(req.Currency),
		Frequency:     entity.Frequency(req.Frequency),
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		StartDate:     req.StartDate,
	}
	if req.RenewalDate != nil {
		in.RenewalDate = *req.RenewalDate
	}

	sub, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), in)
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusCreated, subscriptionView(sub), "subscription created", nil)
}

// List GET /api/subscriptions
func (h *SubscriptionHandler) List(c *gin.Context) {
	subs, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.Failure(c, err)
		return
	}
	out := make([]gin.H, 0, len(subs))
	for _, s := range subs {
		out = append(out, subscriptionView(s))
	}
	response.Success(c, http.StatusOK, out, "subscriptions", gin.H{"count": len(out)})
}

// Get GET /api/subscriptions/:id
func (h *SubscriptionHandler) Get(c *gin.Context) {
	sub, err := h.Svc.Get(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"))
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, subscriptionView(sub), "subscription", nil)
}

// Cancel PUT /api/subscriptions/:id/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	sub, err := h.Svc.Cancel(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"))
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, subscriptionView(sub), "subscription canceled", nil)
}

// Search GET /api/subscriptions/search?q=&size=
func (h *SubscriptionHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), q, size)
	if err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
