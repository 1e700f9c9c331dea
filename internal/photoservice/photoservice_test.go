package photoservice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/haguru/shashin/internal/apperrors"
	"github.com/haguru/shashin/internal/interfaces/mocks"
	"github.com/haguru/shashin/internal/models"
	"github.com/haguru/shashin/pkg/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*PhotoService, *mocks.MockPhotoRepository, *mocks.MockFileStore) {
	t.Helper()
	repo := mocks.NewMockPhotoRepository(t)
	store := mocks.NewMockFileStore(t)
	svc := NewPhotoService(repo, store, zerolog.NewNopLogger())
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, store
}

func uploadedFile() *models.UploadedFile {
	return &models.UploadedFile{Filename: "beach.jpg", Size: 4, Content: strings.NewReader("jpeg")}
}

func TestUploadPhoto_Tags(t *testing.T) {
	tests := []struct {
		name     string
		tagsCSV  string
		wantTags []string
	}{
		{name: "tags are trimmed", tagsCSV: "a, b ,c", wantTags: []string{"a", "b", "c"}},
		{name: "empty tags are kept", tagsCSV: "a,,b", wantTags: []string{"a", "", "b"}},
		{name: "no tags", tagsCSV: "", wantTags: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, store := newTestService(t)
			store.On("Save", PhotoField, "beach.jpg", mock.Anything).Return("/uploads/photo/1.jpg", nil)
			repo.On("AddPhoto", mock.Anything, models.Photo{
				Uploader:    "alice",
				URL:         "/uploads/photo/1.jpg",
				Title:       "Beach",
				Tags:        tt.wantTags,
				Description: "sunny",
				Likes:       []string{},
				CreatedAt:   fixedNow,
			}).Return("p1", nil)

			photo, err := svc.UploadPhoto(context.Background(), "alice", "Beach", tt.tagsCSV, "sunny", uploadedFile())
			require.NoError(t, err)
			assert.Equal(t, "p1", photo.ID)
			assert.Equal(t, tt.wantTags, photo.Tags)
			assert.Equal(t, []string{}, photo.Likes)
		})
	}
}

func TestUploadPhoto_Failures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.UploadPhoto(context.Background(), "alice", "Beach", "", "", nil)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("store failure removes the file", func(t *testing.T) {
		svc, repo, store := newTestService(t)
		store.On("Save", PhotoField, "beach.jpg", mock.Anything).Return("/uploads/photo/1.jpg", nil)
		repo.On("AddPhoto", mock.Anything, mock.Anything).Return("", errors.New("disk full"))
		store.On("Remove", "/uploads/photo/1.jpg").Return(nil)

		_, err := svc.UploadPhoto(context.Background(), "alice", "Beach", "", "", uploadedFile())
		require.Error(t, err)
		assert.Equal(t, 500, apperrors.HTTPStatus(err))
	})
}

func TestListPhotos_NewestFirst(t *testing.T) {
	svc, repo, _ := newTestService(t)
	first := models.Photo{ID: "1", CreatedAt: fixedNow}
	second := models.Photo{ID: "2", CreatedAt: fixedNow.Add(time.Second)}
	third := models.Photo{ID: "3", CreatedAt: fixedNow.Add(2 * time.Second)}
	repo.On("ListPhotos", mock.Anything).Return([]models.Photo{second, first, third}, nil)

	photos, err := svc.ListPhotos(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.ID)
		assert.NotNil(t, p.Tags)
		assert.NotNil(t, p.Likes)
	}
	assert.Equal(t, []string{"3", "2", "1"}, ids)
}

func TestListPhotos_Empty(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.On("ListPhotos", mock.Anything).Return(nil, nil)

	photos, err := svc.ListPhotos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Photo{}, photos)
}

// fakeLikes wires the repository mock to a single in-memory photo.
func fakeLikes(repo *mocks.MockPhotoRepository, photo *models.Photo) {
	repo.On("GetPhotoByID", mock.Anything, photo.ID).Return(func(context.Context, string) (*models.Photo, error) {
		cp := *photo
		cp.Likes = append([]string{}, photo.Likes...)
		return &cp, nil
	})
	repo.On("UpdateLikes", mock.Anything, photo.ID, mock.Anything).Return(func(_ context.Context, _ string, likes []string) (int64, error) {
		photo.Likes = append([]string{}, likes...)
		return 1, nil
	})
}

func TestToggleLike_IsInvolution(t *testing.T) {
	svc, repo, _ := newTestService(t)
	photo := &models.Photo{ID: "p1", Likes: []string{"carol"}}
	fakeLikes(repo, photo)
	ctx := context.Background()

	likes, err := svc.ToggleLike(ctx, "p1", "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"carol", "alice"}, likes)

	likes, err = svc.ToggleLike(ctx, "p1", "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"carol"}, likes)
	assert.ElementsMatch(t, []string{"carol"}, photo.Likes)
}

func TestToggleLike_UnlikeLastReturnsEmptyArray(t *testing.T) {
	svc, repo, _ := newTestService(t)
	fakeLikes(repo, &models.Photo{ID: "p1", Likes: []string{"alice"}})

	likes, err := svc.ToggleLike(context.Background(), "p1", "alice")
	require.NoError(t, err)
	assert.NotNil(t, likes)
	assert.Empty(t, likes)
}

func TestToggleLike_Failures(t *testing.T) {
	t.Run("unknown photo", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetPhotoByID", mock.Anything, "missing").Return(nil, nil)

		_, err := svc.ToggleLike(context.Background(), "missing", "alice")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("missing username", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.ToggleLike(context.Background(), "p1", "")
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("photo deleted between read and write", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetPhotoByID", mock.Anything, "p1").Return(&models.Photo{ID: "p1"}, nil)
		repo.On("UpdateLikes", mock.Anything, "p1", []string{"alice"}).Return(int64(0), nil)

		_, err := svc.ToggleLike(context.Background(), "p1", "alice")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestEditPhoto(t *testing.T) {
	t.Run("full overwrite", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("UpdateDetails", mock.Anything, "p1", "", []string{"x", "y"}, "").Return(int64(1), nil)
		repo.On("GetPhotoByID", mock.Anything, "p1").Return(&models.Photo{ID: "p1", Tags: []string{"x", "y"}}, nil)

		photo, err := svc.EditPhoto(context.Background(), "p1", "", "x, y", "")
		require.NoError(t, err)
		assert.Equal(t, "", photo.Title)
		assert.Equal(t, []string{"x", "y"}, photo.Tags)
		assert.Equal(t, []string{}, photo.Likes)
	})

	t.Run("unknown photo", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("UpdateDetails", mock.Anything, "missing", "t", []string{}, "d").Return(int64(0), nil)

		_, err := svc.EditPhoto(context.Background(), "missing", "t", "", "d")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestDeletePhoto(t *testing.T) {
	t.Run("removes record and file", func(t *testing.T) {
		svc, repo, store := newTestService(t)
		repo.On("GetPhotoByID", mock.Anything, "p1").Return(&models.Photo{ID: "p1", URL: "/uploads/photo/1.jpg"}, nil)
		repo.On("DeletePhoto", mock.Anything, "p1").Return(int64(1), nil)
		store.On("Remove", "/uploads/photo/1.jpg").Return(errors.New("permission denied"))

		// file removal is best-effort
		assert.NoError(t, svc.DeletePhoto(context.Background(), "p1"))
	})

	t.Run("unknown id is idempotent", func(t *testing.T) {
		svc, repo, store := newTestService(t)
		repo.On("GetPhotoByID", mock.Anything, "missing").Return(nil, nil)
		repo.On("DeletePhoto", mock.Anything, "missing").Return(int64(0), nil)

		assert.NoError(t, svc.DeletePhoto(context.Background(), "missing"))
		store.AssertNotCalled(t, "Remove", mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.On("GetPhotoByID", mock.Anything, "p1").Return(nil, errors.New("timeout"))

		err := svc.DeletePhoto(context.Background(), "p1")
		assert.Equal(t, 500, apperrors.HTTPStatus(err))
	})
}
