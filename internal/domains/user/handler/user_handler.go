package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/user/model"
	"bookcatalog-backend/internal/domains/user/service"
	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"
)

type UserHandler struct {
	service service.ServiceInterface
}

func NewUserHandler(service service.ServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	u, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, u)
}

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Me handles GET /auth/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Unauthorized(c, "missing authorization header")
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, u)
}

func handleUserError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrDuplicateUsername):
		response.Conflict(c, "username is already taken")
	case errors.Is(err, model.ErrDuplicateEmail):
		response.Conflict(c, "email is already taken")
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, "invalid username or password")
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, "user not found")
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("user handler error")
		response.InternalServerError(c, "internal server error")
	}
}
