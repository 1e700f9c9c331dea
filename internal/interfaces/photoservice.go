package interfaces

import (
	"context"

	"github.com/haguru/shashin/internal/models"
)

type PhotoService interface {
	ListPhotos(ctx context.Context) ([]models.Photo, error)
	UploadPhoto(ctx context.Context, uploader, title, tagsCSV, description string, file *models.UploadedFile) (*models.Photo, error)
	ToggleLike(ctx context.Context, photoID, username string) ([]string, error)
	EditPhoto(ctx context.Context, photoID, title, tagsCSV, description string) (*models.Photo, error)
	DeletePhoto(ctx context.Context, photoID string) error
}
