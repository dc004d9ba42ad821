package authgateway

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/elric-cpu/website-v4-api/internal/config"
	"github.com/elric-cpu/website-v4-api/internal/logger"
)

// Gateway ties the provider boundary and session issuing together. It
// is what handlers talk to.
type Gateway struct {
	provider Provider
	sessions *Sessions
	cfg      config.AuthConfig
	log      *logger.Logger
}

// New creates a Gateway. Returns ErrNotConfigured when no provider URL
// is set, so the server can expose auth routes conditionally.
func New(cfg config.AuthConfig, provider Provider, log *logger.Logger) (*Gateway, error) {
	if cfg.ProviderURL == "" {
		return nil, ErrNotConfigured
	}
	return &Gateway{
		provider: provider,
		sessions: NewSessions(cfg.SessionSecret, cfg.SessionTTL),
		cfg:      cfg,
		log:      log,
	}, nil
}

// Session is a successful sign-in: the portal token plus the identity.
type Session struct {
	Token    string    `json:"token"`
	Identity *Identity `json:"identity"`
}

// Login signs a visitor in with email and password. All provider
// rejections map to ErrInvalidCredentials.
func (g *Gateway) Login(ctx context.Context, email, password string) (*Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	identity, err := g.provider.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrProviderFailure) {
			g.log.Error("Login failed against provider", err, nil)
		}
		return nil, ErrInvalidCredentials
	}

	token, err := g.sessions.Issue(*identity)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	g.log.Info("User signed in", map[string]interface{}{
		"user_id": identity.UserID,
	})
	return &Session{Token: token, Identity: identity}, nil
}

// SendMagicLink requests a passwordless sign-in email. Failures map to
// ErrMagicLinkFailed.
func (g *Gateway) SendMagicLink(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return ErrMagicLinkFailed
	}
	if err := g.provider.SendMagicLink(ctx, email, g.cfg.OAuthRedirect); err != nil {
		if errors.Is(err, ErrProviderFailure) {
			g.log.Error("Magic link request failed", err, nil)
		}
		return ErrMagicLinkFailed
	}
	g.log.Info("Magic link sent", nil)
	return nil
}

// SignUp creates an account and starts a session.
func (g *Gateway) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrSignUpFailed
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrSignUpFailed)
	}

	identity, err := g.provider.SignUp(ctx, email, password, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, ErrProviderFailure) {
			g.log.Error("Signup failed against provider", err, nil)
			return nil, ErrSignUpFailed
		}
		return nil, err
	}

	token, err := g.sessions.Issue(*identity)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	g.log.Info("Account created", map[string]interface{}{
		"user_id": identity.UserID,
	})
	return &Session{Token: token, Identity: identity}, nil
}

// OAuthRedirect starts an OAuth flow with one of the configured
// external providers.
func (g *Gateway) OAuthRedirect(ctx context.Context, provider string) (string, error) {
	if !g.oauthEnabled(provider) {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	url, err := g.provider.OAuthURL(ctx, provider, g.cfg.OAuthRedirect)
	if err != nil {
		g.log.Error("OAuth URL request failed", err, map[string]interface{}{
			"provider": provider,
		})
		return "", err
	}
	return url, nil
}

// ProfileStatus verifies the session token and returns the profile
// completeness for the signed-in user.
func (g *Gateway) ProfileStatus(ctx context.Context, token string) (*ProfileStatus, error) {
	claims, err := g.sessions.Verify(token)
	if err != nil {
		return nil, err
	}
	return g.provider.GetProfileStatus(ctx, claims.UserID)
}

// VerifySession exposes token verification for middleware.
func (g *Gateway) VerifySession(token string) (*SessionClaims, error) {
	return g.sessions.Verify(token)
}

func (g *Gateway) oauthEnabled(provider string) bool {
	for _, p := range g.cfg.OAuthProviders {
		if p == provider {
			return true
		}
	}
	return false
}

func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", errors.New("email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", err
	}
	return email, nil
}
