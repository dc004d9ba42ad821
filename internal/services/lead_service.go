package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/elric-cpu/website-v4-api/internal/config"
	"github.com/elric-cpu/website-v4-api/internal/logger"
	"github.com/elric-cpu/website-v4-api/internal/models"
	"github.com/elric-cpu/website-v4-api/internal/repository"
)

// Lead categories accepted by the capture pipeline.
const (
	CategoryEstimator  = "estimator"
	CategoryCommercial = "commercial"
	CategoryContact    = "contact"
	CategoryCalculator = "calculator"
)

// Service-level errors
var (
	ErrUnknownCategory       = errors.New("unknown lead category")
	ErrEndpointNotConfigured = errors.New("no lead endpoint configured")
	ErrForwardFailed         = errors.New("lead delivery failed")
)

// ValidationError reports per-field contact problems. The handler
// echoes Fields back so the form can highlight each input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid contact fields: %d problem(s)", len(e.Fields))
}

// LeadSubmission is one inbound lead before capture.
type LeadSubmission struct {
	Category string
	Type     string
	Contact  models.Contact
	Page     models.PageContext
	Fields   map[string]any
}

// LeadService defines the interface for lead capture business logic.
type LeadService interface {
	// Submit validates, stores, and forwards a lead.
	// Returns *ValidationError when contact fields fail validation.
	// Returns ErrUnknownCategory for a category outside the known set.
	// Returns ErrEndpointNotConfigured when no endpoint serves the
	// category; the caller should direct the visitor to the phone line.
	// Returns ErrForwardFailed when the endpoint rejects the lead.
	// The stored lead is returned whenever capture got far enough to
	// persist it, even alongside a delivery error.
	Submit(ctx context.Context, sub LeadSubmission) (*models.Lead, error)
}

// leadService is the concrete implementation of LeadService.
type leadService struct {
	repo      repository.LeadRepository
	forwarder Forwarder
	endpoints config.LeadsConfig
	log       *logger.Logger
}

// NewLeadService creates a new instance of LeadService.
func NewLeadService(repo repository.LeadRepository, forwarder Forwarder, endpoints config.LeadsConfig, log *logger.Logger) LeadService {
	return &leadService{
		repo:      repo,
		forwarder: forwarder,
		endpoints: endpoints,
		log:       log,
	}
}

// requiresZip reports whether the category's form collects a ZIP code.
// Estimator and commercial flows localize pricing; contact and
// calculator flows do not ask for one.
func requiresZip(category string) bool {
	return category == CategoryEstimator || category == CategoryCommercial
}

func validCategory(category string) bool {
	switch category {
	case CategoryEstimator, CategoryCommercial, CategoryContact, CategoryCalculator:
		return true
	}
	return false
}

// Submit runs the capture pipeline: validate, persist, forward, mark
// forwarded. Persistence is an audit record; its failure is logged but
// does not block delivery to the endpoint.
func (s *leadService) Submit(ctx context.Context, sub LeadSubmission) (*models.Lead, error) {
	if !validCategory(sub.Category) {
		s.log.Warn("Rejected lead with unknown category", map[string]interface{}{
			"category": sub.Category,
		})
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, sub.Category)
	}

	if problems := sub.Contact.Validate(requiresZip(sub.Category)); len(problems) > 0 {
		s.log.Debug("Rejected lead failing contact validation", map[string]interface{}{
			"category": sub.Category,
			"problems": problems,
		})
		return nil, &ValidationError{Fields: problems}
	}

	now := time.Now().UTC()
	lead := &models.Lead{
		ID:          uuid.New(),
		Category:    sub.Category,
		Type:        sub.Type,
		SubmittedAt: now,
		CreatedAt:   now,
		Contact:     sub.Contact,
		Page:        sub.Page,
		Fields:      sub.Fields,
	}

	if err := s.repo.Insert(ctx, lead); err != nil {
		s.log.Error("Failed to persist lead", err, map[string]interface{}{
			"lead_id":  lead.ID.String(),
			"category": lead.Category,
		})
	}

	endpoint := s.endpoints.EndpointFor(sub.Category)
	if endpoint == "" {
		s.log.Warn("No endpoint configured for lead category", map[string]interface{}{
			"lead_id":  lead.ID.String(),
			"category": sub.Category,
		})
		return lead, ErrEndpointNotConfigured
	}

	s.log.Info("Forwarding lead", map[string]interface{}{
		"lead_id":  lead.ID.String(),
		"category": sub.Category,
		"type":     sub.Type,
	})

	if err := s.forwarder.Forward(ctx, endpoint, lead); err != nil {
		return lead, fmt.Errorf("%w: %v", ErrForwardFailed, err)
	}

	lead.Forwarded = true
	if err := s.repo.MarkForwarded(ctx, lead.ID); err != nil {
		s.log.Error("Failed to mark lead forwarded", err, map[string]interface{}{
			"lead_id": lead.ID.String(),
		})
	}

	s.log.Info("Lead captured", map[string]interface{}{
		"lead_id":  lead.ID.String(),
		"category": sub.Category,
	})

	return lead, nil
}
