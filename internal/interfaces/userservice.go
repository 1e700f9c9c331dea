package interfaces

import (
	"context"

	"github.com/haguru/shashin/internal/models"
)

type UserService interface {
	RegisterUser(ctx context.Context, username, password, question, answer string) error
	AuthenticateUser(ctx context.Context, username, password string) (*models.SanitizedUser, error)
	RecoverUser(ctx context.Context, username, answer string) (*models.SanitizedUser, error)
	RenameUser(ctx context.Context, oldUsername, newUsername string) (*models.SanitizedUser, error)
	UploadProfilePicture(ctx context.Context, username string, file *models.UploadedFile) (string, error)
	GetPublicProfile(ctx context.Context, username string) (*models.SanitizedUser, error)
}
