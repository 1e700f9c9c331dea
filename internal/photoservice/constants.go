package photoservice

const (
	// upload field name, also the URL segment under the public prefix
	PhotoField = "photo"

	// Error messages for photo service operations
	ErrListingPhotos   = "failed to list photos"
	ErrRetrievingPhoto = "error retrieving photo"
	ErrPhotoNotFound   = "photo not found"
	ErrMissingFile     = "photo file is required"
	ErrMissingUsername = "username is required"
	ErrSavingFile      = "failed to save photo file"
	ErrAddingPhoto     = "failed to add photo"
	ErrUpdatingLikes   = "failed to update likes"
	ErrUpdatingPhoto   = "failed to update photo"
	ErrDeletingPhoto   = "failed to delete photo"
	ErrRemovingFile    = "failed to remove photo file"
)
