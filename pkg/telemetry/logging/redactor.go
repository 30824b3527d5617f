package logging

import (
	"log/slog"
	"strings"
)

// sensitiveKeys are attribute key fragments whose values are never logged.
var sensitiveKeys = []string{
	"password", "secret", "token",
	"api_key", "apikey", "authorization",
}

// redactAttr is a slog ReplaceAttr hook masking sensitive string values.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString || !isSensitiveKey(a.Key) {
		return a
	}
	return slog.String(a.Key, RedactAPIKey(a.Value.String()))
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// RedactAPIKey redacts an API key, keeping only a prefix.
func RedactAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 4 {
		return "***"
	}

	// Keep first 4 characters for identification
	return apiKey[:4] + "***"
}
