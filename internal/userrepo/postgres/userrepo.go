package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/haguru/shashin/internal/apperrors"
	"github.com/haguru/shashin/internal/collections"
	"github.com/haguru/shashin/internal/interfaces"
	"github.com/haguru/shashin/internal/models"
	"github.com/haguru/shashin/internal/userrepo/constants"
	"github.com/haguru/shashin/pkg/databases/postgres"
)

const (
	createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id          TEXT PRIMARY KEY,
	username    TEXT NOT NULL UNIQUE,
	password    TEXT NOT NULL,
	question    TEXT NOT NULL DEFAULT '',
	answer      TEXT NOT NULL DEFAULT '',
	profile_pic TEXT NOT NULL DEFAULT ''
)`

	renamePhotoUploader = `UPDATE photos SET uploader = $1 WHERE uploader = $2`

	// array_replace keeps the like position, array_remove drops the old name when the new one already liked
	renamePhotoLikes = `
UPDATE photos SET likes = CASE
	WHEN $1 = ANY(likes) THEN array_remove(likes, $2)
	ELSE array_replace(likes, $2, $1)
END
WHERE $2 = ANY(likes)`
)

// PostgresUserRepository implements UserRepository for PostgreSQL databases.
type PostgresUserRepository struct {
	dbClient *postgres.PostgresDatabaseClient
}

// NewPostgresUserRepository creates a new PostgreSQL repository instance.
func NewPostgresUserRepository(dbClient *postgres.PostgresDatabaseClient) (interfaces.UserRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &PostgresUserRepository{dbClient: dbClient}, nil
}

// AddUser saves a new user and returns its generated UUID.
func (r *PostgresUserRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	doc := map[string]interface{}{
		"username":    user.Username,
		"password":    user.Password,
		"question":    user.Question,
		"answer":      user.Answer,
		"profile_pic": user.ProfilePic,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, collections.Users, doc)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", constants.ErrUsernameExists, apperrors.ErrConflict)
		}
		return "", fmt.Errorf("failed to add user to PostgreSQL: %w", err)
	}
	strID, ok := insertedID.(string)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to string (expected UUID)")
	}
	return strID, nil
}

// GetUserByUsername retrieves a user by username, nil when absent.
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findUser(ctx, map[string]interface{}{"username": username})
}

// GetUserByRecovery retrieves the user whose username and recovery answer both match.
func (r *PostgresUserRepository) GetUserByRecovery(ctx context.Context, username, answer string) (*models.User, error) {
	return r.findUser(ctx, map[string]interface{}{"username": username, "answer": answer})
}

func (r *PostgresUserRepository) findUser(ctx context.Context, filter map[string]interface{}) (*models.User, error) {
	var user models.User
	err := r.dbClient.FindOne(ctx, collections.Users, filter, &user)
	if err != nil {
		if errors.Is(err, postgres.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user from PostgreSQL: %w", err)
	}
	return &user, nil
}

// UpdateProfilePic sets the profile picture URL and returns the number of matched users.
func (r *PostgresUserRepository) UpdateProfilePic(ctx context.Context, username, profilePicURL string) (int64, error) {
	affected, err := r.dbClient.UpdateOne(ctx, collections.Users,
		map[string]interface{}{"username": username},
		map[string]interface{}{"profile_pic": profilePicURL},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update profile picture in PostgreSQL: %w", err)
	}
	return affected, nil
}

// RenameUser renames the user and rewrites uploader and likes in one transaction.
func (r *PostgresUserRepository) RenameUser(ctx context.Context, oldUsername, newUsername string) error {
	return r.dbClient.WithTransaction(ctx, func(ctx context.Context) error {
		affected, err := r.dbClient.UpdateOne(ctx, collections.Users,
			map[string]interface{}{"username": oldUsername},
			map[string]interface{}{"username": newUsername},
		)
		if err != nil {
			if postgres.IsUniqueViolation(err) {
				return fmt.Errorf("%s: %w", constants.ErrUsernameExists, apperrors.ErrConflict)
			}
			return fmt.Errorf("%s: %w", constants.ErrRenameCascade, err)
		}
		if affected == 0 {
			return fmt.Errorf("%s: %w", constants.ErrRenameCascade, apperrors.ErrNotFound)
		}

		if _, err := r.dbClient.ExecContext(ctx, renamePhotoUploader, newUsername, oldUsername); err != nil {
			return fmt.Errorf("%s: uploader: %w", constants.ErrRenameCascade, err)
		}
		if _, err := r.dbClient.ExecContext(ctx, renamePhotoLikes, newUsername, oldUsername); err != nil {
			return fmt.Errorf("%s: likes: %w", constants.ErrRenameCascade, err)
		}
		return nil
	})
}

// EnsureIndices creates the users table, the UNIQUE constraint indexes username.
func (r *PostgresUserRepository) EnsureIndices(ctx context.Context) error {
	return r.dbClient.EnsureSchema(ctx, collections.Users, createUsersTable)
}
