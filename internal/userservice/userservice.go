// userservice.go
package userservice

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/haguru/shashin/internal/apperrors"
	"github.com/haguru/shashin/internal/interfaces"
	"github.com/haguru/shashin/internal/models"
	"github.com/haguru/shashin/pkg/helper"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	UserRepo  interfaces.UserRepository
	FileStore interfaces.FileStore
	Logger    interfaces.Logger
	// HashPasswords stores bcrypt hashes, otherwise passwords are stored and compared as given.
	HashPasswords bool
}

// NewUserService creates a new UserService instance.
func NewUserService(repo interfaces.UserRepository, fileStore interfaces.FileStore, logger interfaces.Logger, hashPasswords bool) *UserService {
	return &UserService{
		UserRepo:      repo,
		FileStore:     fileStore,
		Logger:        logger,
		HashPasswords: hashPasswords,
	}
}

// RegisterUser creates the user with the placeholder profile picture.
func (s *UserService) RegisterUser(ctx context.Context, username, password, question, answer string) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	if username == "" || password == "" {
		return fmt.Errorf("%s: %w", ErrMissingCredentials, apperrors.ErrBadRequest)
	}

	existing, err := s.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if existing != nil {
		s.Logger.Warn(ErrUsernameTaken, "func", funcName, "user", username)
		return fmt.Errorf("%s: %w", ErrUsernameTaken, apperrors.ErrConflict)
	}

	storedPassword, err := s.storedPassword(password)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "user", username, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}

	user := models.NewUser(username, storedPassword, question, answer)
	userID, err := s.UserRepo.AddUser(ctx, *user)
	if err != nil {
		s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "user", username, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}

	s.Logger.Info("User registered successfully", "func", funcName, "user", username, "ID", userID)
	return nil
}

// AuthenticateUser checks the credentials and returns the sanitized user.
// A wrong password for an existing user yields a RecoveryRequiredError carrying the stored question.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*models.SanitizedUser, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	user, err := s.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		s.Logger.Warn(ErrUserNotFound, "func", funcName, "user", username)
		return nil, fmt.Errorf("%s: %w", ErrInvalidCredentials, apperrors.ErrUnauthorized)
	}

	if !s.passwordMatches(user.Password, password) {
		s.Logger.Warn("Password mismatch, recovery required", "func", funcName, "user", username)
		return nil, &apperrors.RecoveryRequiredError{Question: user.Question}
	}

	s.Logger.Info("User authenticated successfully", "func", funcName, "user", username)
	sanitized := user.Sanitize()
	return &sanitized, nil
}

// RecoverUser logs the user in when the recovery answer matches exactly.
func (s *UserService) RecoverUser(ctx context.Context, username, answer string) (*models.SanitizedUser, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	user, err := s.UserRepo.GetUserByRecovery(ctx, username, answer)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		s.Logger.Warn(ErrInvalidRecoveryAnswer, "func", funcName, "user", username)
		return nil, fmt.Errorf("%s: %w", ErrInvalidRecoveryAnswer, apperrors.ErrUnauthorized)
	}

	s.Logger.Info("User recovered successfully", "func", funcName, "user", username)
	sanitized := user.Sanitize()
	return &sanitized, nil
}

// RenameUser changes the username and rewrites every photo's uploader and likes.
// Renaming to the same name is a no-op.
func (s *UserService) RenameUser(ctx context.Context, oldUsername, newUsername string) (*models.SanitizedUser, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", oldUsername, "new_user", newUsername)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", oldUsername, "new_user", newUsername)

	if oldUsername == "" {
		return nil, fmt.Errorf("%s: %w", ErrMissingUsername, apperrors.ErrBadRequest)
	}
	if newUsername == "" {
		return nil, fmt.Errorf("%s: %w", ErrMissingNewUsername, apperrors.ErrBadRequest)
	}

	user, err := s.UserRepo.GetUserByUsername(ctx, oldUsername)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", oldUsername, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		s.Logger.Warn(ErrUserNotFound, "func", funcName, "user", oldUsername)
		return nil, fmt.Errorf("%s: %w", ErrUserNotFound, apperrors.ErrNotFound)
	}

	if oldUsername == newUsername {
		sanitized := user.Sanitize()
		return &sanitized, nil
	}

	taken, err := s.UserRepo.GetUserByUsername(ctx, newUsername)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", newUsername, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if taken != nil {
		s.Logger.Warn(ErrUsernameTaken, "func", funcName, "user", newUsername)
		return nil, fmt.Errorf("%s: %w", ErrUsernameTaken, apperrors.ErrConflict)
	}

	if err := s.UserRepo.RenameUser(ctx, oldUsername, newUsername); err != nil {
		s.Logger.Error(ErrFailedToRenameUser, "func", funcName, "user", oldUsername, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToRenameUser, err)
	}

	s.Logger.Info("User renamed successfully", "func", funcName, "user", oldUsername, "new_user", newUsername)
	user.Username = newUsername
	sanitized := user.Sanitize()
	return &sanitized, nil
}

// UploadProfilePicture stores the file and points the user's profile picture at it.
func (s *UserService) UploadProfilePicture(ctx context.Context, username string, file *models.UploadedFile) (string, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	if file == nil || file.Content == nil {
		return "", fmt.Errorf("%s: %w", ErrMissingFile, apperrors.ErrBadRequest)
	}
	if username == "" {
		return "", fmt.Errorf("%s: %w", ErrMissingUsername, apperrors.ErrBadRequest)
	}

	// checked before writing so unknown users leave no file behind
	user, err := s.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return "", fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		s.Logger.Warn(ErrUserNotFound, "func", funcName, "user", username)
		return "", fmt.Errorf("%s: %w", ErrUserNotFound, apperrors.ErrNotFound)
	}

	url, err := s.FileStore.Save(ProfilePicField, file.Filename, file.Content)
	if err != nil {
		s.Logger.Error(ErrSavingFile, "func", funcName, "user", username, "error", err)
		return "", fmt.Errorf("%s: %w", ErrSavingFile, err)
	}

	matched, err := s.UserRepo.UpdateProfilePic(ctx, username, url)
	if err != nil || matched == 0 {
		s.removeFile(funcName, url)
		if err != nil {
			s.Logger.Error(ErrUpdatingProfilePic, "func", funcName, "user", username, "error", err)
			return "", fmt.Errorf("%s: %w", ErrUpdatingProfilePic, err)
		}
		// renamed or gone since the lookup
		return "", fmt.Errorf("%s: %w", ErrUserNotFound, apperrors.ErrNotFound)
	}

	s.Logger.Info("Profile picture updated", "func", funcName, "user", username, "url", url)
	return url, nil
}

// GetPublicProfile returns the public fields of a user.
func (s *UserService) GetPublicProfile(ctx context.Context, username string) (*models.SanitizedUser, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	user, err := s.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%s: %w", ErrUserNotFound, apperrors.ErrNotFound)
	}

	sanitized := user.Sanitize()
	return &sanitized, nil
}

func (s *UserService) storedPassword(password string) (string, error) {
	if !s.HashPasswords {
		return password, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *UserService) passwordMatches(stored, given string) bool {
	if s.HashPasswords {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func (s *UserService) removeFile(funcName, url string) {
	if err := s.FileStore.Remove(url); err != nil {
		s.Logger.Warn("Failed to remove orphaned upload", "func", funcName, "url", url, "error", err)
	}
}

var _ interfaces.UserService = (*UserService)(nil)
