package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haguru/shashin/internal/metrics"
	"github.com/haguru/shashin/internal/models/dto"
	pkgmetrics "github.com/haguru/shashin/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	m := pkgmetrics.NewMetrics("shashin")
	metrics.RegisterAPIMetrics(m)
	handler := RateLimitMiddleware(NewLimiter(1, 2), m)(okHandler())

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/photos", nil))
		codes = append(codes, rr.Code)
		last = rr
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "1", last.Header().Get("Retry-After"))

	var body dto.RateLimitResponse
	require.NoError(t, json.NewDecoder(last.Body).Decode(&body))
	assert.Equal(t, ErrRateLimited, body.Error)
	assert.Equal(t, MsgRateLimited, body.Message)

	count, err := testutil.GatherAndCount(m.GetRegistry(), "shashin_"+metrics.RateLimitedTotal)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewLimiter(t *testing.T) {
	tests := []struct {
		name      string
		rps       float64
		burst     int
		wantBurst int
		unlimited bool
	}{
		{name: "disabled", rps: 0, burst: 10, unlimited: true},
		{name: "explicit burst", rps: 5, burst: 10, wantBurst: 10},
		{name: "burst defaults to rate", rps: 2.5, burst: 0, wantBurst: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewLimiter(tt.rps, tt.burst)
			if tt.unlimited {
				for i := 0; i < 100; i++ {
					assert.True(t, limiter.Allow())
				}
				return
			}
			assert.Equal(t, tt.wantBurst, limiter.Burst())
		})
	}
}
