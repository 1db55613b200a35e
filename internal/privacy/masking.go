package privacy

import (
	"strings"
)

// MaskEmail masks the local part of an email address, keeping the first
// character and the full domain. Example: "alice@x.com" -> "a****@x.com"
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 {
		if len(email) <= 1 {
			return "*"
		}
		return email[:1] + strings.Repeat("*", len(email)-1)
	}

	local := email[:at]
	domain := email[at:]
	if len(local) == 1 {
		return "*" + domain
	}
	return local[:1] + strings.Repeat("*", len(local)-1) + domain
}

// MaskAPIKey shows only the last 4 characters of an API key
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// MaskToken fully redacts a bearer token while preserving its length class
// for debugging
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// MaskSensitiveFields masks well-known sensitive keys in a log field map
func MaskSensitiveFields(fields map[string]interface{}) map[string]interface{} {
	masked := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		s, ok := v.(string)
		if !ok {
			masked[k] = v
			continue
		}
		switch k {
		case "email", "user_email", "owner_email":
			masked[k] = MaskEmail(s)
		case "api_key":
			masked[k] = MaskAPIKey(s)
		case "token", "authorization":
			masked[k] = MaskToken(s)
		default:
			masked[k] = v
		}
	}
	return masked
}
