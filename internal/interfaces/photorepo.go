package interfaces

import (
	"context"

	"github.com/haguru/shashin/internal/models"
)

// PhotoRepository defines the contract for storing and retrieving Photo data.
type PhotoRepository interface {
	AddPhoto(ctx context.Context, photo models.Photo) (string, error)
	// GetPhotoByID returns nil, nil when no photo matches, including malformed ids.
	GetPhotoByID(ctx context.Context, id string) (*models.Photo, error)
	// ListPhotos returns every photo, newest first.
	ListPhotos(ctx context.Context) ([]models.Photo, error)
	// UpdateLikes replaces the likes set and returns the number of matched photos.
	UpdateLikes(ctx context.Context, id string, likes []string) (int64, error)
	// UpdateDetails overwrites title, tags and description and returns the number of matched photos.
	UpdateDetails(ctx context.Context, id, title string, tags []string, description string) (int64, error)
	// DeletePhoto returns the number of deleted photos.
	DeletePhoto(ctx context.Context, id string) (int64, error)
	EnsureIndices(ctx context.Context) error
}
