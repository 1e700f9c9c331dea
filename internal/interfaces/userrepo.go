package interfaces

import (
	"context"

	"github.com/haguru/shashin/internal/models"
)

// UserRepository defines the contract for storing and retrieving User data.
// This interface remains the same as it's database-agnostic.
type UserRepository interface {
	AddUser(ctx context.Context, user models.User) (string, error)
	// GetUserByUsername returns nil, nil when no user matches.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByRecovery returns nil, nil unless both username and answer match exactly.
	GetUserByRecovery(ctx context.Context, username, answer string) (*models.User, error)
	// UpdateProfilePic returns the number of matched users.
	UpdateProfilePic(ctx context.Context, username, profilePicURL string) (int64, error)
	// RenameUser renames the user and rewrites every photo's uploader and likes.
	RenameUser(ctx context.Context, oldUsername, newUsername string) error
	EnsureIndices(ctx context.Context) error
}
