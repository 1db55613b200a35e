package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fbsfernando/bot-link-manager/internal/constants"
	"github.com/fbsfernando/bot-link-manager/internal/errors"
)

// ValidateSessionName validates a session name against the naming rules
// enforced by both the dashboard and this service. The returned messages are
// surfaced to the caller verbatim, so the UI can show them directly.
func ValidateSessionName(name string) (string, error) {
	if name == "" {
		return "", errors.NewValidationError("Session name is required")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errors.NewValidationError("Session name cannot be empty")
	}

	for _, char := range trimmed {
		if !isSessionNameChar(char) {
			return "", errors.NewValidationError("Session name can only contain letters, numbers, hyphens (-) and underscores (_)")
		}
	}

	if len(trimmed) < constants.MinSessionNameLength || len(trimmed) > constants.MaxSessionNameLength {
		return "", errors.NewValidationError(fmt.Sprintf("Session name must be between %d and %d characters",
			constants.MinSessionNameLength, constants.MaxSessionNameLength))
	}

	return trimmed, nil
}

func isSessionNameChar(char rune) bool {
	if char > unicode.MaxASCII {
		return false
	}
	return unicode.IsLetter(char) || unicode.IsDigit(char) || char == '_' || char == '-'
}

// NormalizeAppID maps arbitrary input to a safe app identifier: anything
// outside [a-zA-Z0-9_-] becomes a hyphen, truncated to the maximum length.
func NormalizeAppID(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, char := range value {
		if isSessionNameChar(char) {
			b.WriteRune(char)
		} else {
			b.WriteRune('-')
		}
	}
	id := b.String()
	if len(id) > constants.MaxAppIDLength {
		id = id[:constants.MaxAppIDLength]
	}
	return id
}
