package member

import (
	"errors"
	"net/http"
	"strconv"

	"unbroken/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Register or update a member
// @Description  Upserts a member by document number.
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body member.UpsertMemberRequest true "Member profile"
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members [post]
func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidMember) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to save member"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Find a member by document
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        document path string true "Member document number"
// @Success      200 {object} member.Member
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{document} [get]
func (h *Handler) FindByDocument(c *gin.Context) {
	document := c.Param("document")

	m, err := h.service.FindByDocument(c.Request.Context(), document)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch member"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Delete a member
// @Description  Admin-only: removes the member and all their subscriptions. Audit log entries survive via snapshots.
// @Tags         admin,members
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/members/{memberID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete member"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Member deleted"})
}
