package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/haguru/shashin/internal/collections"
	"github.com/haguru/shashin/internal/interfaces"
	"github.com/haguru/shashin/internal/models"
	"github.com/haguru/shashin/pkg/databases/postgres"
)

// seq keeps insertion order for photos created in the same instant.
const createPhotosTable = `
CREATE TABLE IF NOT EXISTS photos (
	id          TEXT PRIMARY KEY,
	seq         BIGSERIAL,
	uploader    TEXT NOT NULL,
	url         TEXT NOT NULL,
	title       TEXT NOT NULL DEFAULT '',
	tags        TEXT[] NOT NULL DEFAULT '{}',
	description TEXT NOT NULL DEFAULT '',
	likes       TEXT[] NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS photos_created_at_idx ON photos (created_at DESC, seq DESC);
CREATE INDEX IF NOT EXISTS photos_uploader_idx ON photos (uploader);
CREATE INDEX IF NOT EXISTS photos_likes_idx ON photos USING GIN (likes);`

// PostgresPhotoRepository implements PhotoRepository for PostgreSQL databases.
type PostgresPhotoRepository struct {
	dbClient *postgres.PostgresDatabaseClient
}

// NewPostgresPhotoRepository creates a new PostgreSQL photo repository.
func NewPostgresPhotoRepository(dbClient *postgres.PostgresDatabaseClient) (interfaces.PhotoRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &PostgresPhotoRepository{dbClient: dbClient}, nil
}

// AddPhoto stores the photo and returns its generated UUID.
func (r *PostgresPhotoRepository) AddPhoto(ctx context.Context, photo models.Photo) (string, error) {
	photo.Normalize()
	doc := map[string]interface{}{
		"uploader":    photo.Uploader,
		"url":         photo.URL,
		"title":       photo.Title,
		"tags":        photo.Tags,
		"description": photo.Description,
		"likes":       photo.Likes,
		"created_at":  photo.CreatedAt,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, collections.Photos, doc)
	if err != nil {
		return "", fmt.Errorf("failed to add photo to PostgreSQL: %w", err)
	}
	strID, ok := insertedID.(string)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to string (expected UUID)")
	}
	return strID, nil
}

// GetPhotoByID returns nil, nil when no photo has the id.
func (r *PostgresPhotoRepository) GetPhotoByID(ctx context.Context, id string) (*models.Photo, error) {
	var photo models.Photo
	err := r.dbClient.FindOne(ctx, collections.Photos, map[string]interface{}{"id": id}, &photo)
	if err != nil {
		if errors.Is(err, postgres.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get photo from PostgreSQL: %w", err)
	}
	photo.Normalize()
	return &photo, nil
}

// ListPhotos returns every photo, newest first.
func (r *PostgresPhotoRepository) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	columns, _, err := postgres.ScanTargets(&models.Photo{})
	if err != nil {
		return nil, err
	}

	//This is a safe use of fmt.Sprintf for SQL query construction, columns come from struct tags.
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at DESC, seq DESC",
		strings.Join(columns, ", "), collections.Photos) // #nosec G201

	rows, err := r.dbClient.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos from PostgreSQL: %w", err)
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var photo models.Photo
		_, pointers, err := postgres.ScanTargets(&photo)
		if err != nil {
			return nil, err
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photo.Normalize()
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list photos from PostgreSQL: %w", err)
	}
	return photos, nil
}

// UpdateLikes replaces the likes array.
func (r *PostgresPhotoRepository) UpdateLikes(ctx context.Context, id string, likes []string) (int64, error) {
	if likes == nil {
		likes = []string{}
	}
	return r.updateByID(ctx, id, map[string]interface{}{"likes": likes})
}

// UpdateDetails overwrites title, tags and description.
func (r *PostgresPhotoRepository) UpdateDetails(ctx context.Context, id, title string, tags []string, description string) (int64, error) {
	if tags == nil {
		tags = []string{}
	}
	return r.updateByID(ctx, id, map[string]interface{}{
		"title":       title,
		"tags":        tags,
		"description": description,
	})
}

func (r *PostgresPhotoRepository) updateByID(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	affected, err := r.dbClient.UpdateOne(ctx, collections.Photos, map[string]interface{}{"id": id}, fields)
	if err != nil {
		return 0, fmt.Errorf("failed to update photo in PostgreSQL: %w", err)
	}
	return affected, nil
}

// DeletePhoto removes the photo and returns the number of deleted rows.
func (r *PostgresPhotoRepository) DeletePhoto(ctx context.Context, id string) (int64, error) {
	deleted, err := r.dbClient.DeleteOne(ctx, collections.Photos, map[string]interface{}{"id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete photo from PostgreSQL: %w", err)
	}
	return deleted, nil
}

// EnsureIndices creates the photos table and its indices.
func (r *PostgresPhotoRepository) EnsureIndices(ctx context.Context) error {
	return r.dbClient.EnsureSchema(ctx, collections.Photos, createPhotosTable)
}
