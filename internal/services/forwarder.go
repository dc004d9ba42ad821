package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/elric-cpu/website-v4-api/internal/logger"
	"github.com/elric-cpu/website-v4-api/internal/models"
)

// forwardTimeout bounds one delivery attempt. There are no retries; a
// timed-out attempt surfaces to the visitor as a failed submission.
const forwardTimeout = 10 * time.Second

// Forwarder delivers a captured lead to an external ingestion endpoint.
type Forwarder interface {
	// Forward POSTs the lead as JSON in a single attempt. Any non-2xx
	// response or transport failure is an error.
	Forward(ctx context.Context, endpoint string, lead *models.Lead) error
}

// forwardPayload is the wire shape sent to the ingestion endpoint.
type forwardPayload struct {
	LeadID      string         `json:"lead_id"`
	Category    string         `json:"category"`
	Type        string         `json:"type,omitempty"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone,omitempty"`
	Zip         string         `json:"zip,omitempty"`
	PagePath    string         `json:"page_path,omitempty"`
	UserAgent   string         `json:"user_agent,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

// httpForwarder is the concrete HTTP implementation of Forwarder.
type httpForwarder struct {
	client   *http.Client
	log      *logger.Logger
	duration prometheus.Observer
}

// NewHTTPForwarder creates a Forwarder that delivers leads over HTTP.
// duration, when non-nil, records the wall time of each delivery
// attempt.
func NewHTTPForwarder(log *logger.Logger, duration prometheus.Observer) Forwarder {
	return &httpForwarder{
		client:   &http.Client{Timeout: forwardTimeout},
		log:      log,
		duration: duration,
	}
}

func (f *httpForwarder) Forward(ctx context.Context, endpoint string, lead *models.Lead) error {
	payload := forwardPayload{
		LeadID:      lead.ID.String(),
		Category:    lead.Category,
		Type:        lead.Type,
		Name:        lead.Contact.Name,
		Email:       lead.Contact.Email,
		Phone:       lead.Contact.Phone,
		Zip:         lead.Contact.Zip,
		PagePath:    lead.Page.PagePath,
		UserAgent:   lead.Page.UserAgent,
		Fields:      lead.Fields,
		SubmittedAt: lead.SubmittedAt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode lead payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build forward request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if f.duration != nil {
		f.duration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		f.log.Error("Lead forward request failed", err, map[string]interface{}{
			"lead_id":  lead.ID.String(),
			"category": lead.Category,
		})
		return fmt.Errorf("failed to deliver lead: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.log.Warn("Lead endpoint rejected submission", map[string]interface{}{
			"lead_id":  lead.ID.String(),
			"category": lead.Category,
			"status":   resp.StatusCode,
		})
		return fmt.Errorf("lead endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
