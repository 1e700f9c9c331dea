package dto

import "github.com/haguru/shashin/internal/models"

type UserSignupRequestDTO struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
	Question string `json:"question" validate:"max=256"`
	Answer   string `json:"answer" validate:"max=256"`
}

type RenameUserRequestDTO struct {
	OldUsername string `json:"oldUsername" validate:"required,max=64"`
	NewUsername string `json:"newUsername" validate:"required,max=64"`
}

type UserResponseDTO struct {
	Message string               `json:"message"`
	User    models.SanitizedUser `json:"user"`
}

type PublicProfileResponseDTO struct {
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
}

// ProfilePictureUploadDTO is decoded from the multipart form values.
type ProfilePictureUploadDTO struct {
	Username string `mapstructure:"username" validate:"max=64"`
}

type ProfilePictureResponseDTO struct {
	Message       string `json:"message"`
	ProfilePicURL string `json:"profilePicUrl"`
}
