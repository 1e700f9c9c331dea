package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haguru/shashin/internal/collections"
	"github.com/haguru/shashin/internal/interfaces"
	"github.com/haguru/shashin/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mongoClient "github.com/haguru/shashin/pkg/databases/mongo"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoPhoto is the BSON shape of a photo document.
type mongoPhoto struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Uploader    string             `bson:"uploader"`
	URL         string             `bson:"url"`
	Title       string             `bson:"title"`
	Tags        []string           `bson:"tags"`
	Description string             `bson:"description"`
	Likes       []string           `bson:"likes"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (p mongoPhoto) toModel() models.Photo {
	photo := models.Photo{
		ID:          p.ID.Hex(),
		Uploader:    p.Uploader,
		URL:         p.URL,
		Title:       p.Title,
		Tags:        p.Tags,
		Description: p.Description,
		Likes:       p.Likes,
		CreatedAt:   p.CreatedAt,
	}
	photo.Normalize()
	return photo
}

// MongoPhotoRepository implements PhotoRepository on the MongoDB client.
type MongoPhotoRepository struct {
	dbClient *mongoClient.MongoDBClient
}

// NewMongoPhotoRepository creates a new MongoDB photo repository.
func NewMongoPhotoRepository(dbClient *mongoClient.MongoDBClient) (interfaces.PhotoRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &MongoPhotoRepository{dbClient: dbClient}, nil
}

// AddPhoto stores the photo and returns its hex ObjectID.
func (r *MongoPhotoRepository) AddPhoto(ctx context.Context, photo models.Photo) (string, error) {
	photo.Normalize()
	doc := mongoPhoto{
		ID:          primitive.NewObjectID(),
		Uploader:    photo.Uploader,
		URL:         photo.URL,
		Title:       photo.Title,
		Tags:        photo.Tags,
		Description: photo.Description,
		Likes:       photo.Likes,
		CreatedAt:   photo.CreatedAt,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, collections.Photos, doc)
	if err != nil {
		return "", fmt.Errorf("failed to add photo to MongoDB: %w", err)
	}

	objID, ok := insertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to ObjectID")
	}
	return objID.Hex(), nil
}

// GetPhotoByID returns nil, nil for unknown or malformed ids.
func (r *MongoPhotoRepository) GetPhotoByID(ctx context.Context, id string) (*models.Photo, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc mongoPhoto
	err = r.dbClient.FindOne(ctx, collections.Photos, bson.M{"_id": objID}, &doc)
	if err != nil {
		if errors.Is(err, mongoClient.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get photo from MongoDB: %w", err)
	}

	photo := doc.toModel()
	return &photo, nil
}

// ListPhotos returns every photo, newest first. ObjectIDs break ties in insertion order.
func (r *MongoPhotoRepository) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})

	var docs []mongoPhoto
	if err := r.dbClient.FindMany(ctx, collections.Photos, nil, &docs, opts); err != nil {
		return nil, fmt.Errorf("failed to list photos from MongoDB: %w", err)
	}

	photos := make([]models.Photo, 0, len(docs))
	for _, doc := range docs {
		photos = append(photos, doc.toModel())
	}
	return photos, nil
}

// UpdateLikes replaces the likes set.
func (r *MongoPhotoRepository) UpdateLikes(ctx context.Context, id string, likes []string) (int64, error) {
	if likes == nil {
		likes = []string{}
	}
	return r.updateByID(ctx, id, bson.M{"likes": likes})
}

// UpdateDetails overwrites title, tags and description.
func (r *MongoPhotoRepository) UpdateDetails(ctx context.Context, id, title string, tags []string, description string) (int64, error) {
	if tags == nil {
		tags = []string{}
	}
	return r.updateByID(ctx, id, bson.M{
		"title":       title,
		"tags":        tags,
		"description": description,
	})
}

func (r *MongoPhotoRepository) updateByID(ctx context.Context, id string, fields bson.M) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	matched, err := r.dbClient.UpdateOne(ctx, collections.Photos, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return 0, fmt.Errorf("failed to update photo in MongoDB: %w", err)
	}
	return matched, nil
}

// DeletePhoto removes the photo, malformed ids delete nothing.
func (r *MongoPhotoRepository) DeletePhoto(ctx context.Context, id string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	deleted, err := r.dbClient.DeleteOne(ctx, collections.Photos, bson.M{"_id": objID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete photo from MongoDB: %w", err)
	}
	return deleted, nil
}

// EnsureIndices creates the listing index and the indices used by the rename cascade.
func (r *MongoPhotoRepository) EnsureIndices(ctx context.Context) error {
	indexModels := []mongosdk.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "uploader", Value: 1}}},
		{Keys: bson.D{{Key: "likes", Value: 1}}},
	}
	return r.dbClient.EnsureSchema(ctx, collections.Photos, indexModels)
}
