package userservice

const (
	// upload field name, also the URL segment under the public prefix
	ProfilePicField = "profilePic"

	// Error messages for user service operations
	ErrFailedToHashPassword  = "failed to hash password" // #nosec G101
	ErrFailedToRegisterUser  = "failed to register user"
	ErrRetrievingUser        = "error retrieving user"
	ErrUserNotFound          = "user not found"
	ErrUsernameTaken         = "username already exists"
	ErrInvalidCredentials    = "invalid username or password"
	ErrInvalidRecoveryAnswer = "incorrect recovery answer"
	ErrMissingCredentials    = "username and password are required" // #nosec G101
	ErrMissingUsername       = "username is required"
	ErrMissingNewUsername    = "new username is required"
	ErrFailedToRenameUser    = "failed to rename user"
	ErrMissingFile           = "profile picture file is required"
	ErrSavingFile            = "failed to save profile picture"
	ErrUpdatingProfilePic    = "failed to update profile picture"
)
