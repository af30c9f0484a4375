package middleware

import (
	"context"
	"net/http"

	"honeytrap-lab/internal/config"
)

// ContextKey is a type for context keys
type ContextKey string

// ContextKeyAPIKey is the context key for the API key
const ContextKeyAPIKey ContextKey = "api_key"

// APIKeyHeader is the header the evaluation platform sends the key in.
const APIKeyHeader = "x-api-key"

// devAPIKey is the well-known local-testing key; it only works when
// auth.allow_dev_key is on.
const devAPIKey = "sk_test_123456789"

// rejectionBody is deliberately identical for missing and wrong keys so the
// response leaks nothing about which check failed.
const rejectionBody = `{"status":"error","message":"Invalid API key or malformed request"}`

// APIKeyAuth returns middleware that validates the x-api-key header.
func APIKeyAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip auth for OPTIONS requests (CORS preflight)
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := r.Header.Get(APIKeyHeader)

			// Dev escape hatch: when the configured key is still the test
			// key and dev keys are allowed, let everything through
			if cfg.AllowDevKey && cfg.APIKey == devAPIKey {
				ctx := context.WithValue(r.Context(), ContextKeyAPIKey, apiKey)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if apiKey == "" || apiKey != cfg.APIKey {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, rejectionBody, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAPIKey, apiKey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAPIKey returns the API key from context
func GetAPIKey(ctx context.Context) string {
	if key, ok := ctx.Value(ContextKeyAPIKey).(string); ok {
		return key
	}
	return ""
}
