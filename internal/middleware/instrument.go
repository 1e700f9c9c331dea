package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/haguru/shashin/internal/interfaces"
	"github.com/haguru/shashin/internal/metrics"
)

// unmatched requests share one label so 404 scans cannot blow up the label set
const unmatchedRoute = "unmatched"

// Instrument records request counts, durations and in-flight requests per route template.
// It must be installed as router middleware so the matched route is known.
func Instrument(m interfaces.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.IncGauge(metrics.HTTPRequestsInFlight)
			defer m.DecGauge(metrics.HTTPRequestsInFlight)

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			route := RouteName(r)
			m.IncCounterVec(metrics.HTTPRequestsTotal, route, strconv.Itoa(rec.status))
			m.ObserveHistogramVec(metrics.HTTPRequestDurationSeconds, time.Since(start).Seconds(), route)
		})
	}
}

// RouteName returns the path template of the matched route, e.g. /api/photos/{id}.
func RouteName(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedRoute
	}
	tmpl, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}
	return tmpl
}
