package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/elric-cpu/website-v4-api/internal/errors"
	"github.com/elric-cpu/website-v4-api/internal/metrics"
	"github.com/elric-cpu/website-v4-api/internal/middleware"
	"github.com/elric-cpu/website-v4-api/internal/models"
	"github.com/elric-cpu/website-v4-api/internal/services"
)

// LeadHandler handles lead capture requests.
type LeadHandler struct {
	service      services.LeadService
	contactPhone string
	collector    *metrics.Collector
}

// NewLeadHandler creates a new LeadHandler instance.
func NewLeadHandler(service services.LeadService, contactPhone string, collector *metrics.Collector) *LeadHandler {
	return &LeadHandler{
		service:      service,
		contactPhone: contactPhone,
		collector:    collector,
	}
}

// LeadRequest represents the body of a lead submission. Validation is
// done by the service so problems come back as a per-field map rather
// than a single binding error.
type LeadRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Zip      string         `json:"zip"`
	Type     string         `json:"type"`
	PagePath string         `json:"page_path"`
	Fields   map[string]any `json:"fields"`
}

// LeadResponse confirms a captured lead and unlocks the detailed
// report on the client.
type LeadResponse struct {
	LeadID         string `json:"lead_id"`
	Forwarded      bool   `json:"forwarded"`
	ReportUnlocked bool   `json:"report_unlocked"`
}

// Submit handles POST /api/v1/leads/:category.
func (h *LeadHandler) Submit(c *gin.Context) {
	category := c.Param("category")

	var req LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	sub := services.LeadSubmission{
		Category: category,
		Type:     req.Type,
		Contact: models.Contact{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
			Zip:   req.Zip,
		},
		Page: models.PageContext{
			PagePath:  req.PagePath,
			UserAgent: c.Request.UserAgent(),
		},
		Fields: req.Fields,
	}

	lead, err := h.service.Submit(c.Request.Context(), sub)
	if err != nil {
		h.handleSubmitError(c, category, err)
		return
	}

	h.collector.RecordLead(category, "forwarded")

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Lead submitted", map[string]interface{}{
			"lead_id":  lead.ID.String(),
			"category": category,
		})
	}

	c.JSON(http.StatusCreated, LeadResponse{
		LeadID:         lead.ID.String(),
		Forwarded:      lead.Forwarded,
		ReportUnlocked: true,
	})
}

func (h *LeadHandler) handleSubmitError(c *gin.Context, category string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrUnknownCategory):
		apierrors.NotFound(c, "Unknown lead category")

	case errors.As(err, &verr):
		h.collector.RecordLead(category, "validation_failed")
		details := make(map[string]interface{}, len(verr.Fields))
		for field, reason := range verr.Fields {
			details[field] = reason
		}
		apierrors.BadRequest(c, "Please correct the highlighted fields", details)

	case errors.Is(err, services.ErrEndpointNotConfigured):
		h.collector.RecordLead(category, "unconfigured")
		apierrors.ServiceUnavailable(c,
			"We can't take online requests right now. Please call "+h.contactPhone+".",
			map[string]interface{}{"phone": h.contactPhone})

	case errors.Is(err, services.ErrForwardFailed):
		h.collector.RecordLead(category, "forward_failed")
		apierrors.ServiceUnavailable(c,
			"We couldn't send your request. Please try again in a moment.",
			nil)

	default:
		apierrors.InternalServerError(c, "Failed to submit request", err)
	}
}
