package middleware

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/haguru/shashin/internal/interfaces"
	"github.com/haguru/shashin/internal/metrics"
	"github.com/haguru/shashin/internal/models/dto"
	"golang.org/x/time/rate"
)

const (
	ErrRateLimited = "rate limit exceeded"
	MsgRateLimited = "Too many requests. Please try again later."
)

// NewLimiter builds the process-wide token bucket. A non-positive rate disables limiting.
func NewLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = int(math.Ceil(requestsPerSecond))
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// RateLimitMiddleware rejects requests with 429 once the limiter runs out of tokens.
func RateLimitMiddleware(limiter *rate.Limiter, m interfaces.Metrics) func(http.Handler) http.Handler {
	retryAfter := "1"
	if limit := limiter.Limit(); limit > 0 && limit != rate.Inf && limit < 1 {
		retryAfter = strconv.Itoa(int(math.Ceil(1 / float64(limit))))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if m != nil {
					m.IncCounter(metrics.RateLimitedTotal)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", retryAfter)
				w.WriteHeader(http.StatusTooManyRequests)
				resp := dto.RateLimitResponse{Error: ErrRateLimited, Message: MsgRateLimited}
				_ = json.NewEncoder(w).Encode(resp)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
