package analytics

import (
	"net/http"

	"unbroken/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Monthly growth and usage report
// @Description  Trailing 12 months of member growth and session usage, with a 3-month trailing average and an optional drop alert.
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} analytics.Report
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /analytics/monthly [get]
func (h *Handler) MonthlyReport(c *gin.Context) {
	report, err := h.service.MonthlyReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
