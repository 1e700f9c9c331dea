package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/haguru/shashin/internal/apperrors"
	"github.com/haguru/shashin/internal/interfaces"
	"github.com/haguru/shashin/internal/metrics"
	"github.com/haguru/shashin/internal/middleware"
	"github.com/haguru/shashin/internal/models"
	"github.com/haguru/shashin/internal/models/dto"
	"github.com/haguru/shashin/pkg/helper"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

type Route struct {
	Metrics        interfaces.Metrics
	UserService    interfaces.UserService
	PhotoService   interfaces.PhotoService
	HealthChecker  interfaces.HealthChecker
	Logger         interfaces.Logger
	validator      *structValidator.Validate
	maxUploadBytes int64
}

// NewRoute creates a new Route instance.
func NewRoute(metrics interfaces.Metrics, userService interfaces.UserService, photoService interfaces.PhotoService,
	health interfaces.HealthChecker, logger interfaces.Logger, validator *structValidator.Validate, maxUploadBytes int64,
) *Route {
	return &Route{
		Metrics:        metrics,
		UserService:    userService,
		PhotoService:   photoService,
		HealthChecker:  health,
		Logger:         logger,
		validator:      validator,
		maxUploadBytes: maxUploadBytes,
	}
}

// Signup handles user signup requests.
func (r *Route) Signup(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}

	signupRequest := &dto.UserSignupRequestDTO{}
	if !r.decodeJSON(w, req, signupRequest) {
		return
	}

	err := r.UserService.RegisterUser(req.Context(), signupRequest.Username, signupRequest.Password,
		signupRequest.Question, signupRequest.Answer)
	if err != nil {
		r.serviceError(w, req, err, "Failed to register user")
		return
	}

	r.incCounter(metrics.SignupSuccessTotal)
	r.writeJSON(w, http.StatusCreated, &dto.MessageResponseDTO{Message: MsgSignupSuccessful})
}

// Login handles user login requests. A wrong password for an existing user answers
// with the recovery question.
func (r *Route) Login(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}

	loginRequest := &dto.LoginRequestDTO{}
	if !r.decodeJSON(w, req, loginRequest) {
		r.incCounter(metrics.LoginFailedTotal)
		return
	}

	user, err := r.UserService.AuthenticateUser(req.Context(), loginRequest.Username, loginRequest.Password)
	if err != nil {
		r.incCounter(metrics.LoginFailedTotal)

		var recoveryErr *apperrors.RecoveryRequiredError
		if errors.As(err, &recoveryErr) {
			r.writeJSON(w, http.StatusUnauthorized, &dto.NeedsRecoveryResponseDTO{
				NeedsRecovery: true,
				Question:      recoveryErr.Question,
				Message:       MsgNeedsRecovery,
			})
			return
		}
		r.serviceError(w, req, err, MsgInvalidCredentials)
		return
	}

	r.incCounter(metrics.LoginSuccessTotal)
	r.writeJSON(w, http.StatusOK, &dto.UserResponseDTO{Message: MsgLoginSuccessful, User: *user})
}

// RecoverLogin logs the user in with the recovery answer.
func (r *Route) RecoverLogin(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}

	recoverRequest := &dto.RecoverLoginRequestDTO{}
	if !r.decodeJSON(w, req, recoverRequest) {
		r.incCounter(metrics.LoginFailedTotal)
		return
	}

	user, err := r.UserService.RecoverUser(req.Context(), recoverRequest.Username, recoverRequest.Answer)
	if err != nil {
		r.incCounter(metrics.LoginFailedTotal)
		r.serviceError(w, req, err, MsgInvalidAnswer)
		return
	}

	r.incCounter(metrics.LoginSuccessTotal)
	r.writeJSON(w, http.StatusOK, &dto.UserResponseDTO{Message: MsgLoginSuccessful, User: *user})
}

// UploadProfilePicture stores the multipart "profilePic" file for the "username" form value.
func (r *Route) UploadProfilePicture(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}

	form := &dto.ProfilePictureUploadDTO{}
	file, ok := r.decodeMultipart(w, req, ProfilePicFormField, form)
	if !ok {
		return
	}
	defer closeFile(file)

	url, err := r.UserService.UploadProfilePicture(req.Context(), form.Username, uploadedFile(file))
	if err != nil {
		r.serviceError(w, req, err, "Failed to upload profile picture")
		return
	}

	r.recordUpload(file)
	r.writeJSON(w, http.StatusOK, &dto.ProfilePictureResponseDTO{Message: MsgProfilePicUpdated, ProfilePicURL: url})
}

// RenameUser changes a username, photos follow the new name.
func (r *Route) RenameUser(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}

	renameRequest := &dto.RenameUserRequestDTO{}
	if !r.decodeJSON(w, req, renameRequest) {
		return
	}

	user, err := r.UserService.RenameUser(req.Context(), renameRequest.OldUsername, renameRequest.NewUsername)
	if err != nil {
		r.serviceError(w, req, err, "Failed to update username")
		return
	}

	r.writeJSON(w, http.StatusOK, &dto.UserResponseDTO{Message: MsgUsernameUpdated, User: *user})
}

// GetPublicProfile returns the username and profile picture of a user.
func (r *Route) GetPublicProfile(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodGet) {
		return
	}

	user, err := r.UserService.GetPublicProfile(req.Context(), pathVar(req, UsernameVar))
	if err != nil {
		r.serviceError(w, req, err, "User not found")
		return
	}

	r.writeJSON(w, http.StatusOK, &dto.PublicProfileResponseDTO{Username: user.Username, ProfilePic: user.ProfilePic})
}

// Health pings the database.
func (r *Route) Health(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), HealthCheckTimeout)
	defer cancel()

	if err := r.HealthChecker.Ping(ctx); err != nil {
		r.Logger.Error("Health check failed", "error", err)
		r.writeJSON(w, http.StatusServiceUnavailable, &dto.HealthResponseDTO{Status: MsgUnhealthy})
		return
	}
	r.writeJSON(w, http.StatusOK, &dto.HealthResponseDTO{Status: MsgHealthy})
}

func (r *Route) allowMethod(w http.ResponseWriter, req *http.Request, method string) bool {
	if req.Method == method {
		return true
	}
	r.errorResponse(w, http.StatusMethodNotAllowed, fmt.Errorf(ErrMethodNotAllowedFormat, req.Method), MsgMethodNotAllowed)
	return false
}

// decodeJSON checks the content type, decodes the body into dst and validates it.
// It answers 400 itself and returns false when the request is unusable.
func (r *Route) decodeJSON(w http.ResponseWriter, req *http.Request, dst interface{}) bool {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get(ContentType))
	if err != nil || mediaType != ContentTypeJson {
		r.errorResponse(w, http.StatusBadRequest,
			fmt.Errorf(ErrInvalidContentTypeFormat, req.Header.Get(ContentType)), MsgInvalidJSONType)
		return false
	}

	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, MsgInvalidRequestBody)
		return false
	}

	return r.validate(w, dst)
}

// decodeMultipart parses a multipart form no larger than maxUploadBytes, decodes its values
// into dst and returns the file part named field. A missing file is not an error here.
func (r *Route) decodeMultipart(w http.ResponseWriter, req *http.Request, field string, dst interface{}) (*multipartFile, bool) {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get(ContentType))
	if err != nil || mediaType != ContentTypeMultipartForm {
		r.errorResponse(w, http.StatusBadRequest,
			fmt.Errorf(ErrInvalidContentTypeFormat, req.Header.Get(ContentType)), MsgInvalidMultipartType)
		return nil, false
	}

	if r.maxUploadBytes > 0 {
		req.Body = http.MaxBytesReader(w, req.Body, r.maxUploadBytes)
	}
	if err := req.ParseMultipartForm(multipartMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			r.errorResponse(w, http.StatusRequestEntityTooLarge,
				fmt.Errorf(ErrUploadTooLargeFormat, tooLarge.Limit), MsgUploadTooLarge)
			return nil, false
		}
		r.errorResponse(w, http.StatusBadRequest, err, MsgInvalidRequestBody)
		return nil, false
	}

	values := make(map[string]interface{}, len(req.MultipartForm.Value))
	for key, vals := range req.MultipartForm.Value {
		if len(vals) > 0 {
			values[key] = vals[0]
		}
	}
	if err := mapstructure.Decode(values, dst); err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, MsgInvalidRequestBody)
		return nil, false
	}
	if !r.validate(w, dst) {
		return nil, false
	}

	file, header, err := req.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		r.errorResponse(w, http.StatusBadRequest, err, MsgInvalidRequestBody)
		return nil, false
	}
	return &multipartFile{File: file, header: header}, true
}

func (r *Route) validate(w http.ResponseWriter, dst interface{}) bool {
	if r.validator == nil {
		return true
	}
	if err := r.validator.Struct(dst); err != nil {
		var validationErrors structValidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			err = fmt.Errorf("invalid request data: %s", validationErrors)
		}
		r.errorResponse(w, http.StatusBadRequest, err, MsgValidationFailed)
		return false
	}
	return true
}

// serviceError maps a service error to its status code. Server errors are logged
// and answered with a fixed message so storage details do not leak.
func (r *Route) serviceError(w http.ResponseWriter, req *http.Request, err error, message string) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		r.Logger.Error(message, "func", helper.GetCallerFuncName(),
			"request_id", middleware.RequestIDFromContext(req.Context()), "error", err)
		r.errorResponse(w, status, errors.New(ErrInternal), MsgServerError)
		return
	}
	r.errorResponse(w, status, err, message)
}

func (r *Route) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		r.Logger.Error(ErrFailedToEncodeResponse, "error", err)
	}
}

func (r *Route) errorResponse(w http.ResponseWriter, status int, err error, message string) {
	r.writeJSON(w, status, &dto.ErrorResponseDTO{
		Error:   err.Error(),
		Message: message,
	})
}

func (r *Route) incCounter(name string) {
	if r.Metrics != nil {
		r.Metrics.IncCounter(name)
	}
}

func (r *Route) recordUpload(file *multipartFile) {
	if r.Metrics == nil || file == nil {
		return
	}
	r.Metrics.AddCounter(metrics.UploadBytesTotal, float64(file.header.Size))
	r.Metrics.SetCurrentTimeGauge(metrics.LastUploadTimestampSeconds)
}

// multipartFile keeps the header of an opened form file next to its content.
type multipartFile struct {
	multipart.File
	header *multipart.FileHeader
}

func uploadedFile(file *multipartFile) *models.UploadedFile {
	if file == nil {
		return nil
	}
	return &models.UploadedFile{
		Filename: file.header.Filename,
		Size:     file.header.Size,
		Content:  file.File,
	}
}

func closeFile(file *multipartFile) {
	if file != nil {
		_ = file.Close()
	}
}
