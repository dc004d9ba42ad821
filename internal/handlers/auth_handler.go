package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/elric-cpu/website-v4-api/internal/authgateway"
	apierrors "github.com/elric-cpu/website-v4-api/internal/errors"
	"github.com/elric-cpu/website-v4-api/internal/metrics"
)

// AuthHandler relays auth requests to the hosted provider gateway.
type AuthHandler struct {
	gateway   *authgateway.Gateway
	collector *metrics.Collector
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(gateway *authgateway.Gateway, collector *metrics.Collector) *AuthHandler {
	return &AuthHandler{gateway: gateway, collector: collector}
}

// LoginRequest represents the body of a password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// MagicLinkRequest represents the body of a magic link request.
type MagicLinkRequest struct {
	Email string `json:"email" binding:"required"`
}

// SignUpRequest represents the body of an account creation request.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// SessionResponse carries the portal session token after sign-in.
type SessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and password are required", nil)
		return
	}

	session, err := h.gateway.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.collector.RecordAuthAttempt("login", "rejected")
		// Every login failure gets the same message.
		apierrors.Unauthorized(c, authgateway.ErrInvalidCredentials.Error())
		return
	}

	h.collector.RecordAuthAttempt("login", "success")
	c.JSON(http.StatusOK, SessionResponse{
		Token:  session.Token,
		UserID: session.Identity.UserID,
		Email:  session.Identity.Email,
	})
}

// MagicLink handles POST /api/v1/auth/magic-link.
func (h *AuthHandler) MagicLink(c *gin.Context) {
	var req MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email is required", nil)
		return
	}

	if err := h.gateway.SendMagicLink(c.Request.Context(), req.Email); err != nil {
		h.collector.RecordAuthAttempt("magic_link", "failed")
		apierrors.ServiceUnavailable(c, authgateway.ErrMagicLinkFailed.Error(), nil)
		return
	}

	h.collector.RecordAuthAttempt("magic_link", "sent")
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

// SignUp handles POST /api/v1/auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and password are required", nil)
		return
	}

	session, err := h.gateway.SignUp(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.collector.RecordAuthAttempt("signup", "failed")
		apierrors.BadRequest(c, err.Error(), nil)
		return
	}

	h.collector.RecordAuthAttempt("signup", "success")
	c.JSON(http.StatusCreated, SessionResponse{
		Token:  session.Token,
		UserID: session.Identity.UserID,
		Email:  session.Identity.Email,
	})
}

// OAuth handles POST /api/v1/auth/oauth/:provider. It returns the
// provider-hosted URL the client should redirect to.
func (h *AuthHandler) OAuth(c *gin.Context) {
	provider := c.Param("provider")

	url, err := h.gateway.OAuthRedirect(c.Request.Context(), provider)
	if err != nil {
		if errors.Is(err, authgateway.ErrUnknownProvider) {
			apierrors.NotFound(c, "Unknown sign-in provider")
			return
		}
		h.collector.RecordAuthAttempt("oauth", "failed")
		apierrors.ServiceUnavailable(c, "Sign-in is temporarily unavailable", nil)
		return
	}

	h.collector.RecordAuthAttempt("oauth", "redirected")
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ProfileStatus handles GET /api/v1/auth/profile-status.
func (h *AuthHandler) ProfileStatus(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		apierrors.Unauthorized(c, "Missing session token")
		return
	}

	status, err := h.gateway.ProfileStatus(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, authgateway.ErrInvalidSession) {
			apierrors.Unauthorized(c, "Session is invalid or expired")
			return
		}
		apierrors.ServiceUnavailable(c, "Account service is temporarily unavailable", nil)
		return
	}

	c.JSON(http.StatusOK, status)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
