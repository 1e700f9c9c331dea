package models

import "io"

// UploadedFile is a file received in a multipart request.
type UploadedFile struct {
	Filename string
	Size     int64
	Content  io.Reader
}
