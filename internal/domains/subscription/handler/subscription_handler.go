package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/subscription/model"
	"bookcatalog-backend/internal/domains/subscription/service"
	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"
)

type SubscriptionHandler struct {
	service service.ServiceInterface
}

func NewSubscriptionHandler(service service.ServiceInterface) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// Subscribe handles POST /authors/:id/subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	authorID, phone, ok := h.parseRequest(c)
	if !ok {
		return
	}

	created, err := h.service.Subscribe(c.Request.Context(), authorID, phone, middleware.CurrentUserIDPtr(c))
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	if !created {
		response.Success(c, http.StatusOK, gin.H{
			"subscribed": true,
			"message":    "phone is already subscribed to this author",
		})
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"subscribed": true})
}

// Unsubscribe handles DELETE /authors/:id/subscribe
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	authorID, phone, ok := h.parseRequest(c)
	if !ok {
		return
	}

	removed, err := h.service.Unsubscribe(c.Request.Context(), authorID, phone)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	if !removed {
		response.NotFound(c, "subscription not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unsubscribed": true})
}

// parseRequest extracts the author id and a validated phone. The phone is
// normalized first, then held to the Russian mobile format before it ever
// reaches the service.
func (h *SubscriptionHandler) parseRequest(c *gin.Context) (int64, string, bool) {
	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return 0, "", false
	}

	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return 0, "", false
	}

	phone := model.NormalizePhone(req.Phone)
	if !model.IsValidRussianPhone(phone) {
		response.BadRequest(c, "phone must be a valid russian number, e.g. +79123456789")
		return 0, "", false
	}

	return authorID, phone, true
}

func handleSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrAuthorNotFound):
		response.NotFound(c, "author not found")
	case errors.Is(err, model.ErrInvalidPhone):
		response.BadRequest(c, "phone number is invalid")
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("subscription handler error")
		response.InternalServerError(c, "internal server error")
	}
}
