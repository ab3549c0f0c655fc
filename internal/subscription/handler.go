package subscription

import (
	"errors"
	"net/http"

	"unbroken/internal/api"
	"unbroken/internal/auth"
	"unbroken/internal/member"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type CancelResponse struct {
	Cancelled bool  `json:"cancelled"`
	Affected  int64 `json:"affected"`
}

// @Summary      Register or renew a subscription
// @Description  Creates a new active subscription for the member, cancelling any prior active one. Registers the member if the document is unknown.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body subscription.RegisterRenewRequest true "Renewal payload"
// @Success      201 {object} subscription.Subscription
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /subscriptions/renew [post]
func (h *Handler) RegisterOrRenew(c *gin.Context) {
	var req RegisterRenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	performedBy, performedRole := auth.Actor(c)

	sub, err := h.service.RegisterOrRenew(c.Request.Context(), req, performedBy, performedRole)
	if err != nil {
		switch {
		case errors.Is(err, member.ErrInvalidMember):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrPlanUnavailable):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "Plan is missing or inactive"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to renew subscription"})
		}
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// @Summary      Cancel the member's active subscription
// @Description  Idempotent: cancelling a member with nothing active reports affected=0.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body subscription.CancelRequest true "Cancel payload"
// @Success      200 {object} subscription.CancelResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /subscriptions/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	performedBy, performedRole := auth.Actor(c)

	affected, err := h.service.Cancel(c.Request.Context(), req, performedBy, performedRole)
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel subscription"})
		return
	}

	c.JSON(http.StatusOK, CancelResponse{Cancelled: affected > 0, Affected: affected})
}

// @Summary      Deduct one session
// @Description  Decrements the member's remaining sessions and appends an immutable audit entry.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body subscription.UseSessionRequest true "Usage payload"
// @Success      200 {object} subscription.UsageResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /sessions/use [post]
func (h *Handler) UseSession(c *gin.Context) {
	var req UseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	performedBy, performedRole := auth.Actor(c)

	res, err := h.service.UseSession(c.Request.Context(), req, performedBy, performedRole)
	if err != nil {
		switch {
		case errors.Is(err, member.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, ErrNoActiveSubscription):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Member has no active subscription"})
		case errors.Is(err, ErrSubscriptionExpired):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Subscription end date has passed"})
		case errors.Is(err, ErrNoSessionsRemaining):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "No sessions remaining"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to deduct session"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

// @Summary      Current subscription for a member
// @Description  Most recent subscription row (any status), resolved by highest id.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        document path string true "Member document number"
// @Success      200 {object} subscription.Subscription
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{document}/subscription [get]
func (h *Handler) Current(c *gin.Context) {
	document := c.Param("document")

	sub, err := h.service.Current(c.Request.Context(), document)
	if err != nil {
		switch {
		case errors.Is(err, member.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, ErrNoSubscription):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member has no subscription"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch subscription"})
		}
		return
	}

	c.JSON(http.StatusOK, sub)
}
