package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/haguru/shashin/internal/metrics"
	"github.com/haguru/shashin/internal/models/dto"
)

// ListPhotos returns every photo, newest first.
func (r *Route) ListPhotos(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodGet) {
		return
	}

	photos, err := r.PhotoService.ListPhotos(req.Context())
	if err != nil {
		r.serviceError(w, req, err, "Failed to list photos")
		return
	}

	r.writeJSON(w, http.StatusOK, photos)
}

// UploadPhoto stores the multipart "photo" file with its uploader, title, tags and description.
func (r *Route) UploadPhoto(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}

	form := &dto.PhotoUploadDTO{}
	file, ok := r.decodeMultipart(w, req, PhotoFormField, form)
	if !ok {
		return
	}
	defer closeFile(file)

	photo, err := r.PhotoService.UploadPhoto(req.Context(), form.Uploader, form.Title, form.Tags, form.Description,
		uploadedFile(file))
	if err != nil {
		r.serviceError(w, req, err, "Failed to upload photo")
		return
	}

	r.incCounter(metrics.PhotoUploadsTotal)
	r.recordUpload(file)
	r.writeJSON(w, http.StatusCreated, &dto.PhotoResponseDTO{Message: MsgPhotoUploaded, Photo: photo})
}

// ToggleLike likes or unlikes a photo for a user.
func (r *Route) ToggleLike(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPost) {
		return
	}

	likeRequest := &dto.LikeRequestDTO{}
	if !r.decodeJSON(w, req, likeRequest) {
		return
	}

	likes, err := r.PhotoService.ToggleLike(req.Context(), string(likeRequest.PhotoID), likeRequest.Username)
	if err != nil {
		r.serviceError(w, req, err, "Failed to toggle like")
		return
	}

	r.incCounter(metrics.LikesToggledTotal)
	r.writeJSON(w, http.StatusOK, &dto.LikeResponseDTO{Likes: likes})
}

// EditPhoto overwrites title, tags and description of the photo in the path.
func (r *Route) EditPhoto(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodPut) {
		return
	}

	editRequest := &dto.EditPhotoRequestDTO{}
	if !r.decodeJSON(w, req, editRequest) {
		return
	}

	photo, err := r.PhotoService.EditPhoto(req.Context(), pathVar(req, PhotoIDVar),
		editRequest.Title, editRequest.Tags, editRequest.Description)
	if err != nil {
		r.serviceError(w, req, err, "Failed to update photo")
		return
	}

	r.writeJSON(w, http.StatusOK, &dto.PhotoResponseDTO{Message: MsgPhotoUpdated, Photo: photo})
}

// DeletePhoto removes the photo in the path. Unknown ids succeed.
func (r *Route) DeletePhoto(w http.ResponseWriter, req *http.Request) {
	if !r.allowMethod(w, req, http.MethodDelete) {
		return
	}

	if err := r.PhotoService.DeletePhoto(req.Context(), pathVar(req, PhotoIDVar)); err != nil {
		r.serviceError(w, req, err, "Failed to delete photo")
		return
	}

	r.writeJSON(w, http.StatusOK, &dto.MessageResponseDTO{Message: MsgPhotoDeleted})
}

func pathVar(req *http.Request, name string) string {
	return mux.Vars(req)[name]
}
