package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/haguru/shashin/internal/metrics"
	pkgmetrics "github.com/haguru/shashin/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument_LabelsByRouteTemplate(t *testing.T) {
	m := pkgmetrics.NewMetrics("shashin")
	metrics.RegisterAPIMetrics(m)

	router := mux.NewRouter()
	router.Use(Instrument(m))
	router.HandleFunc("/api/photos/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodPut)

	for _, id := range []string{"a", "b", "c"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/api/photos/"+id, nil))
	}

	expected := `
# HELP shashin_http_requests_total Total number of HTTP requests by route and status code
# TYPE shashin_http_requests_total counter
shashin_http_requests_total{code="404",route="/api/photos/{id}"} 3
`
	err := testutil.GatherAndCompare(m.GetRegistry(), strings.NewReader(expected), "shashin_"+metrics.HTTPRequestsTotal)
	require.NoError(t, err)

	inFlight, err := testutil.GatherAndCount(m.GetRegistry(), "shashin_"+metrics.HTTPRequestsInFlight)
	require.NoError(t, err)
	assert.Equal(t, 1, inFlight)
}

func TestRouteName_Unmatched(t *testing.T) {
	assert.Equal(t, unmatchedRoute, RouteName(httptest.NewRequest(http.MethodGet, "/nowhere", nil)))
}

func TestRouteName_Templates(t *testing.T) {
	tests := []struct {
		name     string
		register func(*mux.Router, http.HandlerFunc)
		path     string
		want     string
	}{
		{
			name: "path template",
			register: func(r *mux.Router, h http.HandlerFunc) {
				r.HandleFunc("/api/users/{username}", h)
			},
			path: "/api/users/alice",
			want: "/api/users/{username}",
		},
		{
			name: "path prefix",
			register: func(r *mux.Router, h http.HandlerFunc) {
				r.PathPrefix("/uploads/").Handler(h)
			},
			path: "/uploads/photo/1.jpg",
			want: "/uploads/",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			router := mux.NewRouter()
			tt.register(router, func(_ http.ResponseWriter, r *http.Request) {
				got = RouteName(r)
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, got)
		})
	}
}
