package dto

import (
	"bytes"
	"encoding/json"

	"github.com/haguru/shashin/internal/models"
)

// PhotoUploadDTO is decoded from the multipart form values.
type PhotoUploadDTO struct {
	Uploader    string `mapstructure:"uploader" validate:"max=64"`
	Title       string `mapstructure:"title" validate:"max=256"`
	Tags        string `mapstructure:"tags" validate:"max=1024"`
	Description string `mapstructure:"description" validate:"max=4096"`
}

type PhotoResponseDTO struct {
	Message string        `json:"message"`
	Photo   *models.Photo `json:"photo"`
}

// PhotoID accepts both a JSON string and a JSON number, older clients send numeric ids.
type PhotoID string

func (id *PhotoID) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PhotoID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = PhotoID(n.String())
	return nil
}

type LikeRequestDTO struct {
	PhotoID  PhotoID `json:"photoId" validate:"required"`
	Username string  `json:"username" validate:"required,max=64"`
}

type LikeResponseDTO struct {
	Likes []string `json:"likes"`
}

// EditPhotoRequestDTO overwrites all three fields, omitted fields become empty.
type EditPhotoRequestDTO struct {
	Title       string `json:"title" validate:"max=256"`
	Tags        string `json:"tags" validate:"max=1024"`
	Description string `json:"description" validate:"max=4096"`
}
