package photoservice

import (
	"context"
	"fmt"
	"time"

	"github.com/haguru/shashin/internal/apperrors"
	"github.com/haguru/shashin/internal/interfaces"
	"github.com/haguru/shashin/internal/models"
	"github.com/haguru/shashin/pkg/helper"
)

type PhotoService struct {
	PhotoRepo interfaces.PhotoRepository
	FileStore interfaces.FileStore
	Logger    interfaces.Logger
	now       func() time.Time
}

// NewPhotoService creates a new PhotoService instance.
func NewPhotoService(repo interfaces.PhotoRepository, fileStore interfaces.FileStore, logger interfaces.Logger) *PhotoService {
	return &PhotoService{
		PhotoRepo: repo,
		FileStore: fileStore,
		Logger:    logger,
		now:       time.Now,
	}
}

// ListPhotos returns every photo, newest first. There is no pagination.
func (s *PhotoService) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	photos, err := s.PhotoRepo.ListPhotos(ctx)
	if err != nil {
		s.Logger.Error(ErrListingPhotos, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrListingPhotos, err)
	}
	if photos == nil {
		photos = []models.Photo{}
	}

	for i := range photos {
		photos[i].Normalize()
	}
	models.SortNewestFirst(photos)
	return photos, nil
}

// UploadPhoto stores the file and creates the photo record with no likes.
func (s *PhotoService) UploadPhoto(ctx context.Context, uploader, title, tagsCSV, description string, file *models.UploadedFile) (*models.Photo, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "uploader", uploader)
	defer s.Logger.Debug("Exiting function", "func", funcName, "uploader", uploader)

	if file == nil || file.Content == nil {
		return nil, fmt.Errorf("%s: %w", ErrMissingFile, apperrors.ErrBadRequest)
	}

	url, err := s.FileStore.Save(PhotoField, file.Filename, file.Content)
	if err != nil {
		s.Logger.Error(ErrSavingFile, "func", funcName, "uploader", uploader, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrSavingFile, err)
	}

	photo := models.NewPhoto(uploader, url, title, tagsCSV, description, s.now().UTC())
	id, err := s.PhotoRepo.AddPhoto(ctx, *photo)
	if err != nil {
		s.Logger.Error(ErrAddingPhoto, "func", funcName, "uploader", uploader, "error", err)
		s.removeFile(funcName, url)
		return nil, fmt.Errorf("%s: %w", ErrAddingPhoto, err)
	}
	photo.ID = id

	s.Logger.Info("Photo uploaded", "func", funcName, "uploader", uploader, "ID", id, "url", url)
	return photo, nil
}

// ToggleLike adds the username to the likes of the photo, or removes it when already present.
// It returns the updated likes.
func (s *PhotoService) ToggleLike(ctx context.Context, photoID, username string) ([]string, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "photo", photoID, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "photo", photoID, "user", username)

	if username == "" {
		return nil, fmt.Errorf("%s: %w", ErrMissingUsername, apperrors.ErrBadRequest)
	}

	photo, err := s.getPhoto(ctx, funcName, photoID)
	if err != nil {
		return nil, err
	}

	liked := photo.ToggleLike(username)
	matched, err := s.PhotoRepo.UpdateLikes(ctx, photoID, photo.Likes)
	if err != nil {
		s.Logger.Error(ErrUpdatingLikes, "func", funcName, "photo", photoID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrUpdatingLikes, err)
	}
	if matched == 0 {
		return nil, fmt.Errorf("%s: %w", ErrPhotoNotFound, apperrors.ErrNotFound)
	}

	s.Logger.Info("Like toggled", "func", funcName, "photo", photoID, "user", username, "liked", liked)
	photo.Normalize()
	return photo.Likes, nil
}

// EditPhoto overwrites title, tags and description. Omitted values are stored empty.
func (s *PhotoService) EditPhoto(ctx context.Context, photoID, title, tagsCSV, description string) (*models.Photo, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "photo", photoID)
	defer s.Logger.Debug("Exiting function", "func", funcName, "photo", photoID)

	matched, err := s.PhotoRepo.UpdateDetails(ctx, photoID, title, models.ParseTags(tagsCSV), description)
	if err != nil {
		s.Logger.Error(ErrUpdatingPhoto, "func", funcName, "photo", photoID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrUpdatingPhoto, err)
	}
	if matched == 0 {
		s.Logger.Warn(ErrPhotoNotFound, "func", funcName, "photo", photoID)
		return nil, fmt.Errorf("%s: %w", ErrPhotoNotFound, apperrors.ErrNotFound)
	}

	photo, err := s.getPhoto(ctx, funcName, photoID)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Photo updated", "func", funcName, "photo", photoID)
	return photo, nil
}

// DeletePhoto removes the photo. Unknown ids succeed. The image file is removed best-effort.
func (s *PhotoService) DeletePhoto(ctx context.Context, photoID string) error {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "photo", photoID)
	defer s.Logger.Debug("Exiting function", "func", funcName, "photo", photoID)

	photo, err := s.PhotoRepo.GetPhotoByID(ctx, photoID)
	if err != nil {
		s.Logger.Error(ErrRetrievingPhoto, "func", funcName, "photo", photoID, "error", err)
		return fmt.Errorf("%s: %w", ErrRetrievingPhoto, err)
	}

	deleted, err := s.PhotoRepo.DeletePhoto(ctx, photoID)
	if err != nil {
		s.Logger.Error(ErrDeletingPhoto, "func", funcName, "photo", photoID, "error", err)
		return fmt.Errorf("%s: %w", ErrDeletingPhoto, err)
	}

	if deleted > 0 && photo != nil {
		s.removeFile(funcName, photo.URL)
	}
	s.Logger.Info("Photo deleted", "func", funcName, "photo", photoID, "deleted", deleted)
	return nil
}

func (s *PhotoService) getPhoto(ctx context.Context, funcName, photoID string) (*models.Photo, error) {
	photo, err := s.PhotoRepo.GetPhotoByID(ctx, photoID)
	if err != nil {
		s.Logger.Error(ErrRetrievingPhoto, "func", funcName, "photo", photoID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingPhoto, err)
	}
	if photo == nil {
		s.Logger.Warn(ErrPhotoNotFound, "func", funcName, "photo", photoID)
		return nil, fmt.Errorf("%s: %w", ErrPhotoNotFound, apperrors.ErrNotFound)
	}
	photo.Normalize()
	return photo, nil
}

func (s *PhotoService) removeFile(funcName, url string) {
	if err := s.FileStore.Remove(url); err != nil {
		s.Logger.Warn(ErrRemovingFile, "func", funcName, "url", url, "error", err)
	}
}

var _ interfaces.PhotoService = (*PhotoService)(nil)
