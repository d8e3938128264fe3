package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/report/service"
	"bookcatalog-backend/internal/shared/response"
)

type ReportHandler struct {
	service service.ServiceInterface
}

func NewReportHandler(service service.ServiceInterface) *ReportHandler {
	return &ReportHandler{service: service}
}

// TopAuthors handles GET /reports/top-authors
func (h *ReportHandler) TopAuthors(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.BadRequest(c, "invalid year")
			return
		}
		year = parsed
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.BadRequest(c, "invalid limit")
			return
		}
		limit = parsed
	}

	report, err := h.service.TopAuthors(c.Request.Context(), year, limit)
	if err != nil {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("report handler error")
		response.InternalServerError(c, "internal server error")
		return
	}

	response.Success(c, http.StatusOK, report)
}
