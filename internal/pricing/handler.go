package pricing

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jezhtech/fc-fleet-sub002/pkg/common"
)

// Handler handles HTTP requests for fares.
type Handler struct {
	service *Service
}

// NewHandler creates a new fare handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the fare endpoints on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/fares/estimate", h.Estimate)
	rg.POST("/fares/quote", h.Quote)
	rg.GET("/fares/rules", h.ListRules)
	rg.GET("/fares/rules/:id", h.GetRule)
	rg.GET("/fares/peak", h.Peak)
}

// Estimate prices a trip from coordinates; distance and duration come from
// the routing provider.
func (h *Handler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if !common.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Estimate(c.Request.Context(), &req)
	if err != nil {
		h.writeQuoteError(c, err)
		return
	}
	common.SuccessResponse(c, resp)
}

// Quote prices a trip with caller-supplied distance and duration.
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if !common.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Quote(c.Request.Context(), &req)
	if err != nil {
		h.writeQuoteError(c, err)
		return
	}
	common.SuccessResponse(c, resp)
}

// ListRules returns all active fare rules.
func (h *Handler) ListRules(c *gin.Context) {
	rules, err := h.service.ListRules(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list fare rules")
		return
	}

	responses := make([]*RuleResponse, 0, len(rules))
	for _, r := range rules {
		responses = append(responses, ToRuleResponse(r))
	}
	common.ListResponse(c, responses, len(responses))
}

// GetRule returns a single fare rule by id.
func (h *Handler) GetRule(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id", "rule ID")
	if !ok {
		return
	}

	rule, err := h.service.GetRule(c.Request.Context(), id)
	if err != nil {
		common.ErrorResponse(c, http.StatusNotFound, "fare rule not found")
		return
	}
	common.SuccessResponse(c, ToRuleResponse(rule))
}

// Peak classifies an instant against the peak-hour windows. The instant
// defaults to now and can be overridden with an RFC 3339 "at" query
// parameter.
func (h *Handler) Peak(c *gin.Context) {
	var at *time.Time
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "at must be RFC 3339")
			return
		}
		at = &parsed
	}

	common.SuccessResponse(c, h.service.Peak(at))
}

// writeQuoteError maps pricing errors onto HTTP statuses. A missing fare
// rule is a configuration fault, not a client error.
func (h *Handler) writeQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoApplicableRule):
		common.ErrorResponse(c, http.StatusInternalServerError, "no applicable fare rule configured for this trip")
	case errors.Is(err, ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to compute fare")
	}
}
