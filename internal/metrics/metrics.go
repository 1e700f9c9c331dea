package metrics

import (
	"github.com/haguru/shashin/internal/interfaces"
)

var (
	RequestDurationSecondsBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
)

const (
	// request metrics, labelled by route template
	HTTPRequestsTotal              = "http_requests_total"
	HTTPRequestsTotalHelp          = "Total number of HTTP requests by route and status code"
	HTTPRequestDurationSeconds     = "http_request_duration_seconds"
	HTTPRequestDurationSecondsHelp = "Duration of HTTP requests in seconds by route"
	HTTPRequestsInFlight           = "http_requests_in_flight"
	HTTPRequestsInFlightHelp       = "Number of HTTP requests currently being served"
	RateLimitedTotal               = "rate_limited_total"
	RateLimitedTotalHelp           = "Total number of requests rejected by the rate limiter"

	// account metrics
	SignupSuccessTotal     = "signup_success_total"
	SignupSuccessTotalHelp = "Total number of successful signup requests"
	LoginSuccessTotal      = "login_success_total"
	LoginSuccessTotalHelp  = "Total number of successful login requests"
	LoginFailedTotal       = "login_failed_total"
	LoginFailedTotalHelp   = "Total number of failed login requests"

	// photo metrics
	PhotoUploadsTotal              = "photo_uploads_total"
	PhotoUploadsTotalHelp          = "Total number of uploaded photos"
	LikesToggledTotal              = "likes_toggled_total"
	LikesToggledTotalHelp          = "Total number of like toggles"
	UploadBytesTotal               = "upload_bytes_total"
	UploadBytesTotalHelp           = "Total number of bytes received in uploaded files"
	LastUploadTimestampSeconds     = "last_upload_timestamp_seconds"
	LastUploadTimestampSecondsHelp = "Unix time of the last successful upload"

	// label names
	LabelRoute = "route"
	LabelCode  = "code"
)

// RegisterAPIMetrics registers every metric the API records on m.
func RegisterAPIMetrics(m interfaces.Metrics) {
	m.RegisterCounterVec(HTTPRequestsTotal, HTTPRequestsTotalHelp, []string{LabelRoute, LabelCode})
	m.RegisterHistogramVec(HTTPRequestDurationSeconds, HTTPRequestDurationSecondsHelp,
		RequestDurationSecondsBuckets, []string{LabelRoute})
	m.RegisterGauge(HTTPRequestsInFlight, HTTPRequestsInFlightHelp)
	m.RegisterCounter(RateLimitedTotal, RateLimitedTotalHelp)

	m.RegisterCounter(SignupSuccessTotal, SignupSuccessTotalHelp)
	m.RegisterCounter(LoginSuccessTotal, LoginSuccessTotalHelp)
	m.RegisterCounter(LoginFailedTotal, LoginFailedTotalHelp)

	m.RegisterCounter(PhotoUploadsTotal, PhotoUploadsTotalHelp)
	m.RegisterCounter(LikesToggledTotal, LikesToggledTotalHelp)
	m.RegisterCounter(UploadBytesTotal, UploadBytesTotalHelp)
	m.RegisterGauge(LastUploadTimestampSeconds, LastUploadTimestampSecondsHelp)
}
