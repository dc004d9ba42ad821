// Package authgateway is the boundary to the hosted auth provider. All
// credential handling lives on the provider side; this package only
// relays requests, maps provider failures to coarse user-facing errors,
// and issues portal session tokens.
package authgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/elric-cpu/website-v4-api/internal/logger"
)

// Provider-boundary errors. Handlers surface these verbatim; anything
// finer-grained stays in the logs.
var (
	ErrNotConfigured      = errors.New("auth provider is not configured")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrMagicLinkFailed    = errors.New("unable to send magic link")
	ErrSignUpFailed       = errors.New("unable to create account")
	ErrUnknownProvider    = errors.New("unknown oauth provider")
	ErrProviderFailure    = errors.New("auth provider request failed")
)

// Identity is the provider's view of an authenticated user.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}

// ProfileStatus reports whether the customer portal profile has the
// fields the portal needs before showing account pages.
type ProfileStatus struct {
	Complete      bool     `json:"complete"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// Provider is the capability surface this app needs from the hosted
// auth service. Implementations must not persist credentials locally.
type Provider interface {
	// Login exchanges email/password for an identity.
	// Returns ErrInvalidCredentials for any rejection.
	Login(ctx context.Context, email, password string) (*Identity, error)

	// SendMagicLink asks the provider to email a sign-in link.
	SendMagicLink(ctx context.Context, email, redirectTo string) error

	// SignUp creates an account and returns the new identity.
	SignUp(ctx context.Context, email, password, name string) (*Identity, error)

	// OAuthURL returns the provider-hosted URL that starts an OAuth
	// flow for the named external provider.
	OAuthURL(ctx context.Context, provider, redirectTo string) (string, error)

	// GetProfileStatus reports profile completeness for a user.
	GetProfileStatus(ctx context.Context, userID string) (*ProfileStatus, error)
}

const providerTimeout = 10 * time.Second

// httpProvider talks to the hosted auth service over HTTPS with an API
// key header.
type httpProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *logger.Logger
}

// NewHTTPProvider creates a Provider backed by the hosted auth service.
func NewHTTPProvider(baseURL, apiKey string, log *logger.Logger) Provider {
	return &httpProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: providerTimeout},
		log:     log,
	}
}

func (p *httpProvider) Login(ctx context.Context, email, password string) (*Identity, error) {
	var identity Identity
	status, err := p.post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &identity)
	if err != nil {
		return nil, err
	}
	// Every rejection collapses to one message so the form cannot be
	// used to probe which emails have accounts.
	if status != http.StatusOK {
		p.log.Debug("Provider rejected login", map[string]interface{}{
			"status": status,
		})
		return nil, ErrInvalidCredentials
	}
	return &identity, nil
}

func (p *httpProvider) SendMagicLink(ctx context.Context, email, redirectTo string) error {
	status, err := p.post(ctx, "/auth/magic-link", map[string]string{
		"email":       email,
		"redirect_to": redirectTo,
	}, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusAccepted {
		p.log.Warn("Provider rejected magic link request", map[string]interface{}{
			"status": status,
		})
		return ErrMagicLinkFailed
	}
	return nil
}

func (p *httpProvider) SignUp(ctx context.Context, email, password, name string) (*Identity, error) {
	var identity Identity
	status, err := p.post(ctx, "/auth/signup", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, &identity)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		p.log.Warn("Provider rejected signup", map[string]interface{}{
			"status": status,
		})
		return nil, ErrSignUpFailed
	}
	return &identity, nil
}

func (p *httpProvider) OAuthURL(ctx context.Context, provider, redirectTo string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	status, err := p.post(ctx, "/auth/oauth/"+provider, map[string]string{
		"redirect_to": redirectTo,
	}, &out)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrProviderFailure, status)
	}
	return out.URL, nil
}

func (p *httpProvider) GetProfileStatus(ctx context.Context, userID string) (*ProfileStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/users/"+userID+"/profile-status", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProviderFailure, resp.StatusCode)
	}

	var ps ProfileStatus
	if err := json.NewDecoder(resp.Body).Decode(&ps); err != nil {
		return nil, fmt.Errorf("failed to decode profile status: %w", err)
	}
	return &ps, nil
}

// post sends a JSON body and decodes a JSON response into out when out
// is non-nil and the response carries a body. Transport errors wrap
// ErrProviderFailure; HTTP status handling is left to the caller.
func (p *httpProvider) post(ctx context.Context, path string, body map[string]string, out any) (int, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to encode provider request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return 0, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error("Auth provider unreachable", err, map[string]interface{}{
			"path": path,
		})
		return 0, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode provider response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
