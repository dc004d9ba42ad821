package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elric-cpu/website-v4-api/internal/logger"
	"github.com/elric-cpu/website-v4-api/internal/models"
)

func forwardableLead() *models.Lead {
	return &models.Lead{
		ID:          uuid.New(),
		Category:    "estimator",
		Type:        "hvac_load",
		SubmittedAt: time.Now().UTC(),
		Contact: models.Contact{
			Name:  "Jo",
			Email: "jo@example.com",
			Zip:   "60601",
		},
		Page:   models.PageContext{PagePath: "/estimator"},
		Fields: map[string]any{"sqft": float64(2200)},
	}
}

func TestForward_PostsLeadJSON(t *testing.T) {
	var received forwardPayload
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	fwd := NewHTTPForwarder(logger.New("test"), nil)
	lead := forwardableLead()

	err := fwd.Forward(context.Background(), server.URL, lead)

	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, lead.ID.String(), received.LeadID)
	assert.Equal(t, "estimator", received.Category)
	assert.Equal(t, "jo@example.com", received.Email)
	assert.Equal(t, float64(2200), received.Fields["sqft"])
}

func TestForward_NonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	fwd := NewHTTPForwarder(logger.New("test"), nil)

	err := fwd.Forward(context.Background(), server.URL, forwardableLead())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestForward_SingleAttempt(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fwd := NewHTTPForwarder(logger.New("test"), nil)

	err := fwd.Forward(context.Background(), server.URL, forwardableLead())

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestForward_ObservesDeliveryDuration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{Name: "forward_test_duration_seconds"})
	fwd := NewHTTPForwarder(logger.New("test"), duration)

	err := fwd.Forward(context.Background(), server.URL, forwardableLead())

	require.NoError(t, err)
	assert.Equal(t, 1, testutil.CollectAndCount(duration))
}

func TestForward_TransportFailure(t *testing.T) {
	fwd := NewHTTPForwarder(logger.New("test"), nil)

	// Connection refused: nothing listens on this port.
	err := fwd.Forward(context.Background(), "http://127.0.0.1:1/leads", forwardableLead())

	require.Error(t, err)
}
