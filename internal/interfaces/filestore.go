package interfaces

import (
	"io"
	"net/http"
)

// FileStore persists uploaded files and serves them back.
type FileStore interface {
	// Save writes the content under fieldName and returns its public URL.
	Save(fieldName, originalName string, content io.Reader) (string, error)
	// Remove deletes the file behind a public URL returned by Save.
	Remove(publicURL string) error
	// Handler serves stored files, it expects the public prefix to be stripped.
	Handler() http.Handler
}
