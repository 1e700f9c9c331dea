package storage

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/haguru/shashin/internal/interfaces"
	"github.com/spf13/afero"
)

const (
	// sniffLen is how much of the content is read to detect a missing extension
	sniffLen = 3072
	// maxNameAttempts bounds the suffixed names tried when uploads share a millisecond
	maxNameAttempts = 100

	ErrInvalidFieldName = "invalid upload field name"
	ErrWritingFile      = "failed to write uploaded file"
	ErrNotStoredURL     = "url does not belong to the upload store"
)

// FileStore writes uploaded files to <root>/<field>/<unix millis><ext> and serves them back.
// A name already taken gets a -<n> suffix, stored files are never overwritten.
type FileStore struct {
	fs           afero.Fs
	root         string
	publicPrefix string
	now          func() time.Time
}

// NewFileStore returns a store rooted at dir on fs. URLs are built as <publicPrefix>/<field>/<file>.
func NewFileStore(fs afero.Fs, dir, publicPrefix string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &FileStore{
		fs:           fs,
		root:         dir,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
		now:          time.Now,
	}, nil
}

// Save writes content and returns the public URL of the stored file.
func (s *FileStore) Save(fieldName, originalName string, content io.Reader) (string, error) {
	if fieldName == "" || strings.ContainsAny(fieldName, `/\.`) {
		return "", fmt.Errorf("%s: %q", ErrInvalidFieldName, fieldName)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		head := make([]byte, sniffLen)
		n, err := io.ReadFull(content, head)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return "", fmt.Errorf("%s: %w", ErrWritingFile, err)
		}
		head = head[:n]
		ext = mimetype.Detect(head).Extension()
		content = io.MultiReader(bytes.NewReader(head), content)
	}

	dir := filepath.Join(s.root, fieldName)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", ErrWritingFile, err)
	}

	file, name, err := s.createUnique(dir, strconv.FormatInt(s.now().UnixMilli(), 10), ext)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrWritingFile, err)
	}

	if _, err := io.Copy(file, content); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("%s: %w", ErrWritingFile, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", ErrWritingFile, err)
	}

	return path.Join(s.publicPrefix, fieldName, name), nil
}

func (s *FileStore) createUnique(dir, stem, ext string) (afero.File, string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := stem + ext
		if attempt > 0 {
			name = stem + "-" + strconv.Itoa(attempt) + ext
		}
		file, err := s.fs.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return file, name, nil
		}
		if !os.IsExist(err) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s%s after %d attempts", stem, ext, maxNameAttempts)
}

// Remove deletes the file behind a URL returned by Save. A missing file is not an error.
func (s *FileStore) Remove(publicURL string) error {
	rel, ok := strings.CutPrefix(path.Clean(publicURL), s.publicPrefix+"/")
	if !ok || rel == "" || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("%s: %s", ErrNotStoredURL, publicURL)
	}

	err := s.fs.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", publicURL, err)
	}
	return nil
}

// Handler serves the stored files read-only, the public prefix must already be stripped.
func (s *FileStore) Handler() http.Handler {
	readOnly := afero.NewReadOnlyFs(afero.NewBasePathFs(s.fs, s.root))
	files := http.FileServer(afero.NewHttpFs(readOnly))

	// no directory listings
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

var _ interfaces.FileStore = (*FileStore)(nil)
