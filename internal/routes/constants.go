package routes

import "time"

const (
	// API route constants
	SignupRouteAPI        = "/api/signup"
	LoginRouteAPI         = "/api/login"
	RecoverLoginRouteAPI  = "/api/login/recover"
	ProfileUploadRouteAPI = "/api/profile/upload"
	PhotosRouteAPI        = "/api/photos"
	PhotoUploadRouteAPI   = "/api/photos/upload"
	PhotoLikeRouteAPI     = "/api/photos/like"
	PhotoRouteAPI         = "/api/photos/{" + PhotoIDVar + "}"
	RenameUserRouteAPI    = "/api/users/update"
	PublicProfileRouteAPI = "/api/users/{" + UsernameVar + "}"
	MetricsRouteAPI       = "/metrics"
	HealthRouteAPI        = "/health"

	// path variables
	PhotoIDVar  = "id"
	UsernameVar = "username"

	// multipart field names
	ProfilePicFormField = "profilePic"
	PhotoFormField      = "photo"

	// Content-Type constants
	ContentType              = "Content-Type"
	ContentTypeJson          = "application/json"
	ContentTypeMultipartForm = "multipart/form-data"

	// message constants
	MsgSignupSuccessful     = "Signup successful"
	MsgLoginSuccessful      = "Login successful"
	MsgNeedsRecovery        = "Password does not match, answer the recovery question"
	MsgInvalidCredentials   = "Invalid username or password"
	MsgInvalidAnswer        = "Recovery answer is not correct"
	MsgProfilePicUpdated    = "Profile picture updated"
	MsgPhotoUploaded        = "Photo uploaded"
	MsgPhotoUpdated         = "Photo updated"
	MsgPhotoDeleted         = "Photo deleted"
	MsgUsernameUpdated      = "Username updated"
	MsgServerError          = "Internal server error"
	MsgMethodNotAllowed     = "Method not allowed"
	MsgInvalidJSONType      = "Request Content-Type must be application/json"
	MsgInvalidMultipartType = "Request Content-Type must be multipart/form-data"
	MsgInvalidRequestBody   = "Invalid request body"
	MsgValidationFailed     = "Request data validation failed"
	MsgUploadTooLarge       = "Uploaded file is too large"
	MsgHealthy              = "ok"
	MsgUnhealthy            = "unavailable"

	// Error messages
	ErrInternal                 = "internal error"
	ErrFailedToEncodeResponse   = "failed to encode response"
	ErrInvalidContentTypeFormat = "invalid content-type: %s"
	ErrMethodNotAllowedFormat   = "method %s not allowed"
	ErrUploadTooLargeFormat     = "request body exceeds %d bytes"

	// multipart parts above this size are spooled to temporary files
	multipartMemoryBytes = 8 << 20
)

var HealthCheckTimeout = 2 * time.Second
