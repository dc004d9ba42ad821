package models

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/elric-cpu/website-v4-api/internal/localization"
)

// emailPattern is deliberately loose: one @, something on each side, a
// dot in the domain. Deliverability is the ingestion backend's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Contact holds the lead's contact fields and drives submission gating.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Zip   string `json:"zip"`
}

// Validate returns a map of field name to problem for every failing
// contact field. requireZip adds the ZIP pattern check for funnels that
// collect one. An empty map means the contact gates submission open.
func (c Contact) Validate(requireZip bool) map[string]string {
	problems := make(map[string]string)

	if utf8.RuneCountInString(strings.TrimSpace(c.Name)) < 2 {
		problems["name"] = "name must be at least 2 characters"
	}
	if !emailPattern.MatchString(strings.TrimSpace(c.Email)) {
		problems["email"] = "enter a valid email address"
	}
	if requireZip && !localization.ValidZip(c.Zip) {
		problems["zip"] = "enter a 5-digit ZIP code"
	}

	return problems
}

// PageContext records where the lead was captured.
type PageContext struct {
	PagePath  string `json:"page_path"`
	UserAgent string `json:"user_agent"`
}

// Lead is a captured prospect: contact details plus the inputs and
// outputs of the tool they used, tagged by calculator/form type. One row
// per accepted submission.
type Lead struct {
	ID          uuid.UUID      `json:"id"`
	Category    string         `json:"category"`
	Type        string         `json:"type"`
	SubmittedAt time.Time      `json:"submitted_at"`
	Contact     Contact        `json:"contact"`
	Page        PageContext    `json:"page"`
	Fields      map[string]any `json:"fields"`
	Forwarded   bool           `json:"forwarded"`
	CreatedAt   time.Time      `json:"created_at"`
}
