package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/domains/book/service"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(service service.ServiceInterface) *BookHandler {
	return &BookHandler{service: service}
}

// Create handles POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handleBookError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, b)
}

// GetByID handles GET /books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// GetAll handles GET /books
func (h *BookHandler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	sortBy := c.Query("sort_by")
	order := c.Query("order")

	books, total, err := h.service.GetAll(c.Request.Context(), page, pageSize, sortBy, order)
	if err != nil {
		handleBookError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Page:  page,
		Limit: pageSize,
		Total: total,
	})
}

// Update handles PUT /books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

// Delete handles DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// UploadCover handles POST /books/:id/cover with a multipart "cover" field.
func (h *BookHandler) UploadCover(c *gin.Context) {
	id, err := parseBookID(c)
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	file, err := c.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "cover file is required")
		return
	}

	b, err := h.service.UpdateCover(c.Request.Context(), id, file)
	if err != nil {
		handleBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, b)
}

func parseBookID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func handleBookError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, "book not found")
	case errors.Is(err, model.ErrAuthorNotFound):
		response.BadRequest(c, "one or more authors do not exist")
	case errors.Is(err, model.ErrDuplicateISBN):
		response.Conflict(c, "isbn already belongs to another book")
	case errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrInvalidExtension),
		errors.Is(err, storage.ErrInvalidMimeType):
		response.BadRequest(c, err.Error())
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("book handler error")
		response.InternalServerError(c, "internal server error")
	}
}
