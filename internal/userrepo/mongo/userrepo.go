package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/haguru/shashin/internal/apperrors"
	"github.com/haguru/shashin/internal/collections"
	"github.com/haguru/shashin/internal/interfaces"
	"github.com/haguru/shashin/internal/models"
	"github.com/haguru/shashin/internal/userrepo/constants"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mongoClient "github.com/haguru/shashin/pkg/databases/mongo"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoUser is the BSON shape of a user document.
type mongoUser struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Username   string             `bson:"username"`
	Password   string             `bson:"password"`
	Question   string             `bson:"question"`
	Answer     string             `bson:"answer"`
	ProfilePic string             `bson:"profile_pic"`
}

func (u mongoUser) toModel() *models.User {
	return &models.User{
		ID:         u.ID.Hex(),
		Username:   u.Username,
		Password:   u.Password,
		Question:   u.Question,
		Answer:     u.Answer,
		ProfilePic: u.ProfilePic,
	}
}

// MongoUserRepository implements UserRepository on the MongoDB client.
type MongoUserRepository struct {
	dbClient *mongoClient.MongoDBClient
}

// NewMongoUserRepository creates a new MongoDB repository instance.
// The rename cascade needs UpdateMany and transactions, so it takes the concrete client.
func NewMongoUserRepository(dbClient *mongoClient.MongoDBClient) (interfaces.UserRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &MongoUserRepository{dbClient: dbClient}, nil
}

// AddUser saves a new user and returns its hex ObjectID.
func (r *MongoUserRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	doc := mongoUser{
		ID:         primitive.NewObjectID(),
		Username:   user.Username,
		Password:   user.Password,
		Question:   user.Question,
		Answer:     user.Answer,
		ProfilePic: user.ProfilePic,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, collections.Users, doc)
	if err != nil {
		if mongosdk.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%s: %w", constants.ErrUsernameExists, apperrors.ErrConflict)
		}
		return "", fmt.Errorf("failed to add user to MongoDB: %w", err)
	}

	objID, ok := insertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to ObjectID")
	}
	return objID.Hex(), nil
}

// GetUserByUsername retrieves a user by username, nil when absent.
func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findUser(ctx, bson.M{"username": username})
}

// GetUserByRecovery retrieves the user whose username and recovery answer both match.
func (r *MongoUserRepository) GetUserByRecovery(ctx context.Context, username, answer string) (*models.User, error) {
	return r.findUser(ctx, bson.M{"username": username, "answer": answer})
}

func (r *MongoUserRepository) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc mongoUser
	err := r.dbClient.FindOne(ctx, collections.Users, filter, &doc)
	if err != nil {
		if errors.Is(err, mongoClient.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user from MongoDB: %w", err)
	}
	return doc.toModel(), nil
}

// UpdateProfilePic sets the profile picture URL and returns the number of matched users.
func (r *MongoUserRepository) UpdateProfilePic(ctx context.Context, username, profilePicURL string) (int64, error) {
	matched, err := r.dbClient.UpdateOne(ctx, collections.Users,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"profile_pic": profilePicURL}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update profile picture in MongoDB: %w", err)
	}
	return matched, nil
}

// RenameUser renames the user, then rewrites the uploader of their photos and
// replaces the old name in every likes set. $addToSet before $pull keeps likes free of duplicates.
func (r *MongoUserRepository) RenameUser(ctx context.Context, oldUsername, newUsername string) error {
	return r.dbClient.WithTransaction(ctx, func(ctx context.Context) error {
		matched, err := r.dbClient.UpdateOne(ctx, collections.Users,
			bson.M{"username": oldUsername},
			bson.M{"$set": bson.M{"username": newUsername}},
		)
		if err != nil {
			if mongosdk.IsDuplicateKeyError(err) {
				return fmt.Errorf("%s: %w", constants.ErrUsernameExists, apperrors.ErrConflict)
			}
			return fmt.Errorf("%s: %w", constants.ErrRenameCascade, err)
		}
		if matched == 0 {
			return fmt.Errorf("%s: %w", constants.ErrRenameCascade, apperrors.ErrNotFound)
		}

		if _, err := r.dbClient.UpdateMany(ctx, collections.Photos,
			bson.M{"uploader": oldUsername},
			bson.M{"$set": bson.M{"uploader": newUsername}},
		); err != nil {
			return fmt.Errorf("%s: uploader: %w", constants.ErrRenameCascade, err)
		}

		if _, err := r.dbClient.UpdateMany(ctx, collections.Photos,
			bson.M{"likes": oldUsername},
			bson.M{"$addToSet": bson.M{"likes": newUsername}},
		); err != nil {
			return fmt.Errorf("%s: likes: %w", constants.ErrRenameCascade, err)
		}

		if _, err := r.dbClient.UpdateMany(ctx, collections.Photos,
			bson.M{"likes": oldUsername},
			bson.M{"$pull": bson.M{"likes": oldUsername}},
		); err != nil {
			return fmt.Errorf("%s: likes: %w", constants.ErrRenameCascade, err)
		}
		return nil
	})
}

// EnsureIndices creates the unique username index.
func (r *MongoUserRepository) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	return r.dbClient.EnsureSchema(ctx, collections.Users, indexModel)
}
