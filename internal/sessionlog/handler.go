package sessionlog

import (
	"net/http"
	"strconv"

	"unbroken/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// @Summary      Recent session log entries
// @Description  Most recent audit entries first, for the operations dashboard.
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Maximum entries to return (default 50)"
// @Success      200 {array} sessionlog.Entry
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /logs [get]
func (h *Handler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.repo.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch session log"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
