package constants

// Error messages shared by the repositories
const (
	ErrUsernameExists = "username already exists"
	ErrRenameCascade  = "failed to rename user"
)
