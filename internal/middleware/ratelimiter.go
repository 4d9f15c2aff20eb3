package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/haguru/signup/internal/interfaces"
	"github.com/haguru/signup/internal/models/dto"
	"golang.org/x/time/rate"
)

const MsgTooManyRequests = "Too many requests. Please try again later."

// RateLimitMiddleware rejects requests with 429 once limiter runs out of tokens.
// onLimited, if not nil, is called for every rejected request.
func RateLimitMiddleware(limiter *rate.Limiter, logger interfaces.Logger, onLimited func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if logger != nil {
					logger.Warn("Request rate limited", "path", r.URL.Path, "remote", r.RemoteAddr)
				}
				if onLimited != nil {
					onLimited()
				}
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				resp := dto.RateLimitResponse{Message: MsgTooManyRequests}
				_ = json.NewEncoder(w).Encode(resp)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
