package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/haguru/shashin/config"
	"github.com/haguru/shashin/internal/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	MAXPOOLSIZE = 20
	IDFIELD     = "_id"
)

// ErrNoDocuments is wrapped by FindOne when nothing matches the filter.
var ErrNoDocuments = errors.New("no document found")

// update operators accepted in update documents
var allowedOperators = map[string]bool{
	"$set":      true,
	"$addToSet": true,
	"$pull":     true,
}

// MongoDBClient implements the interfaces.DBClient interface for MongoDB operations.
type MongoDBClient struct {
	ServerOpts       *options.ServerAPIOptions
	client           *mongo.Client
	db               *mongo.Database
	timeout          time.Duration
	useTransactions  bool
	validCollections map[string]bool // A map to validate collection names
	validFields      map[string]bool // A map to validate field names
	logger           interfaces.Logger
}

// NewMongoDB returns a MongoDB client configured from dbConfig. Call Connect before use.
func NewMongoDB(dbConfig *config.MongoDBConfig, logger interfaces.Logger) (*MongoDBClient, error) {
	if dbConfig == nil {
		return nil, fmt.Errorf("MongoDBClient: config cannot be nil")
	}

	db := &MongoDBClient{
		timeout:          dbConfig.Timeout,
		useTransactions:  dbConfig.UseTransactions,
		ServerOpts:       config.BuildServerAPIOptions(dbConfig.Options),
		validCollections: config.ListToMap(dbConfig.ValidCollections),
		validFields:      config.ListToMap(dbConfig.ValidFields),
		logger:           logger,
	}

	return db, nil
}

// Connect establishes a connection to the MongoDB database using the provided DSN (Data Source Name).
// The DSN should be in the format "mongodb://<host>:<port>/<database>".
// The database name is taken from the DSN path and becomes the active database for the client.
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	// Validate the DSN format
	if dsn == "" {
		return fmt.Errorf("MongoDBClient: DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return fmt.Errorf("MongoDBClient: Invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}

	databaseName, err := GetDBNameFromMongoDSN(dsn)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to extract database name from datasource name(dsn): %w", err)
	}

	m.logger.Info("MongoDBClient: Connecting", "database", databaseName)

	// Set a timeout for the connection
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	clientOptions := options.Client().ApplyURI(dsn)

	// Set the server API options if provided
	if m.ServerOpts != nil {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}
	clientOptions.SetMaxPoolSize(MAXPOOLSIZE)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())

	m.client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to connect: %w", err)
	}

	// Check if the connection is successful by pinging the server
	if err = m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to connect to MongoDB server: %w", err)
	}
	m.logger.Info("MongoDBClient: Connected to MongoDB server successfully")

	m.db = m.client.Database(databaseName)
	return nil
}

// UseClient attaches an already connected driver client and selects databaseName.
func (m *MongoDBClient) UseClient(client *mongo.Client, databaseName string) {
	m.client = client
	m.db = client.Database(databaseName)
}

// Disconnect closes the connection to the MongoDB database.
func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	m.logger.Info("MongoDBClient: Disconnecting")
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}

	return nil
}

// InsertOne inserts a document and returns its ID.
// Typed documents (structs) are inserted as is, maps are sanitized first.
func (m *MongoDBClient) InsertOne(ctx context.Context, collectionName string, document interfaces.Document) (interface{}, error) {
	// Avoid logging the document, it may carry credentials
	m.logger.Debug("MongoDBClient: Inserting one", "collection", collectionName)

	coll, err := m.collection(collectionName)
	if err != nil {
		return nil, err
	}

	if docMap, ok := toMap(document); ok {
		document = m.sanitizeFields(docMap, true)
	}

	res, err := coll.InsertOne(ctx, document)
	if err != nil {
		return nil, fmt.Errorf("MongoDBClient: Failed to insert one into %s: %w", collectionName, err)
	}

	return res.InsertedID, nil
}

// FindOne retrieves a single document from the specified collection using a filter.
// It decodes the result into the provided variable and wraps ErrNoDocuments if nothing matches.
func (m *MongoDBClient) FindOne(ctx context.Context, collectionName string, filter interfaces.Document, result interfaces.Document) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}

	sanitizedFilter, err := m.sanitizeFilter(filter)
	if err != nil {
		return err
	}
	m.logger.Debug("MongoDBClient: Finding one", "collection", collectionName, "filter_fields", fieldNames(sanitizedFilter))

	err = coll.FindOne(ctx, sanitizedFilter).Decode(result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("MongoDBClient: find one in %s: %w", collectionName, ErrNoDocuments)
		}
		return fmt.Errorf("MongoDBClient: Failed to find one in %s: %w", collectionName, err)
	}

	return nil
}

// FindMany retrieves every document matching the filter and decodes them into results,
// which must be a pointer to a slice.
func (m *MongoDBClient) FindMany(ctx context.Context, collectionName string, filter interfaces.Document, results interface{}, opts ...*options.FindOptions) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}

	sanitizedFilter, err := m.sanitizeFilter(filter)
	if err != nil {
		return err
	}
	m.logger.Debug("MongoDBClient: Finding many", "collection", collectionName, "filter_fields", fieldNames(sanitizedFilter))

	cursor, err := coll.Find(ctx, sanitizedFilter, opts...)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Finding many in %s failed: %w", collectionName, err)
	}

	// All closes the cursor
	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to decode cursor: %w", err)
	}

	return nil
}

// UpdateOne modifies a single document in the specified collection using a filter and update document.
// Returns the count of matched documents and an error if the operation fails.
func (m *MongoDBClient) UpdateOne(ctx context.Context, collectionName string, filter interfaces.Document, update interfaces.Document) (int64, error) {
	coll, sanitizedFilter, sanitizedUpdate, err := m.prepareUpdate(collectionName, filter, update)
	if err != nil {
		return 0, err
	}
	m.logger.Debug("MongoDBClient: Updating one", "collection", collectionName, "filter_fields", fieldNames(sanitizedFilter))

	res, err := coll.UpdateOne(ctx, sanitizedFilter, sanitizedUpdate)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed updating one in %s: %w", collectionName, err)
	}

	return res.MatchedCount, nil
}

// UpdateMany modifies every document matching the filter.
// Returns the count of matched documents and an error if the operation fails.
func (m *MongoDBClient) UpdateMany(ctx context.Context, collectionName string, filter interfaces.Document, update interfaces.Document) (int64, error) {
	coll, sanitizedFilter, sanitizedUpdate, err := m.prepareUpdate(collectionName, filter, update)
	if err != nil {
		return 0, err
	}
	m.logger.Debug("MongoDBClient: Updating many", "collection", collectionName, "filter_fields", fieldNames(sanitizedFilter))

	res, err := coll.UpdateMany(ctx, sanitizedFilter, sanitizedUpdate)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed updating many in %s: %w", collectionName, err)
	}

	return res.MatchedCount, nil
}

// DeleteOne removes a single document from the specified collection using a filter.
// Returns the count of deleted documents and an error if the operation fails.
func (m *MongoDBClient) DeleteOne(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}

	sanitizedFilter, err := m.sanitizeFilter(filter)
	if err != nil {
		return 0, err
	}
	m.logger.Debug("MongoDBClient: Deleting one", "collection", collectionName, "filter_fields", fieldNames(sanitizedFilter))

	res, err := coll.DeleteOne(ctx, sanitizedFilter)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed deleting one from %s: %w", collectionName, err)
	}

	return res.DeletedCount, nil
}

// Ping verifies the MongoDB connection health using a ping command.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("MongoDBClient is not connected")
	}
	return m.client.Ping(ctx, nil)
}

// WithTransaction runs fn inside a multi-document transaction when transactions are enabled.
// Transactions need a replica set, without them fn runs as plain sequential operations.
func (m *MongoDBClient) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.useTransactions {
		return fn(ctx)
	}
	if m.client == nil {
		return fmt.Errorf("MongoDBClient is not connected")
	}

	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

// GetDBNameFromMongoDSN extracts the database name from a MongoDB DSN.
func GetDBNameFromMongoDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB DSN: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("no database name found in MongoDB DSN path")
	}

	// If the path contains additional segments (e.g., /db/collection), use only the first as the database name.
	if idx := strings.Index(dbName, "/"); idx != -1 {
		dbName = dbName[:idx]
	}

	return dbName, nil
}

// EnsureSchema creates the indices on the specified collection.
// schema must be a mongo.IndexModel or a []mongo.IndexModel.
// If the collection does not exist, it will be created automatically.
func (m *MongoDBClient) EnsureSchema(ctx context.Context, collectionName string, schema interfaces.Document) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}

	var models []mongo.IndexModel
	switch s := schema.(type) {
	case mongo.IndexModel:
		models = []mongo.IndexModel{s}
	case []mongo.IndexModel:
		models = s
	default:
		return fmt.Errorf("EnsureSchema: expected mongo.IndexModel for MongoDB, got %T", schema)
	}

	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to create indices on %s: %w", collectionName, err)
	}
	return nil
}

func (m *MongoDBClient) collection(collectionName string) (*mongo.Collection, error) {
	if collectionName == "" {
		return nil, fmt.Errorf("MongoDBClient: Collection name cannot be empty")
	}
	if !m.validCollections[collectionName] {
		return nil, fmt.Errorf("MongoDBClient: Invalid collection name: %s", collectionName)
	}
	if m.db == nil {
		return nil, fmt.Errorf("MongoDBClient is not connected to a database")
	}
	return m.db.Collection(collectionName), nil
}

func (m *MongoDBClient) prepareUpdate(collectionName string, filter, update interfaces.Document) (*mongo.Collection, bson.M, bson.M, error) {
	coll, err := m.collection(collectionName)
	if err != nil {
		return nil, nil, nil, err
	}

	sanitizedFilter, err := m.sanitizeFilter(filter)
	if err != nil {
		return nil, nil, nil, err
	}

	sanitizedUpdate, err := m.sanitizeUpdate(update)
	if err != nil {
		return nil, nil, nil, err
	}

	return coll, sanitizedFilter, sanitizedUpdate, nil
}

// sanitizeFilter accepts only whitelisted field names, _id included.
// Any other key fails the call: dropping it would widen the match.
// Only a nil filter selects every document.
func (m *MongoDBClient) sanitizeFilter(filter interfaces.Document) (bson.M, error) {
	if filter == nil {
		return bson.M{}, nil
	}
	filterMap, ok := toMap(filter)
	if !ok {
		return nil, fmt.Errorf("MongoDBClient: filter must be a map, got %T", filter)
	}

	sanitized := m.sanitizeFields(filterMap, false)
	if len(sanitized) != len(filterMap) {
		for key := range filterMap {
			if _, kept := sanitized[key]; !kept {
				return nil, fmt.Errorf("MongoDBClient: filter field %q is not allowed", key)
			}
		}
	}
	return sanitized, nil
}

// sanitizeUpdate accepts only the allowed update operators and whitelisted fields inside them.
// The _id field can never be updated.
func (m *MongoDBClient) sanitizeUpdate(update interfaces.Document) (bson.M, error) {
	updateMap, ok := toMap(update)
	if !ok {
		return nil, fmt.Errorf("MongoDBClient: update must be a map, got %T", update)
	}

	sanitized := bson.M{}
	for operator, fields := range updateMap {
		if !allowedOperators[operator] {
			m.logger.Warn("MongoDBClient: Skipping unsupported update operator", "operator", operator)
			continue
		}
		fieldMap, ok := toMap(fields)
		if !ok {
			return nil, fmt.Errorf("MongoDBClient: update operator %s expects a map", operator)
		}
		if cleaned := m.sanitizeFields(fieldMap, true); len(cleaned) > 0 {
			sanitized[operator] = cleaned
		}
	}

	if len(sanitized) == 0 {
		return nil, fmt.Errorf("MongoDBClient: update document is empty after sanitizing")
	}
	return sanitized, nil
}

// sanitizeFields drops unknown field names and names containing '$' or '.'.
func (m *MongoDBClient) sanitizeFields(document map[string]interface{}, dropID bool) bson.M {
	sanitized := bson.M{}
	for key, value := range document {
		if dropID && key == IDFIELD {
			continue
		}

		if !m.validFields[key] || strings.ContainsAny(key, "$.") {
			m.logger.Warn("MongoDBClient: Skipping invalid or unsafe field name", "field", key)
			continue
		}

		sanitized[key] = value
	}

	return sanitized
}

// toMap accepts bson.M and plain maps. bson.M is a named map type, not an alias.
func toMap(document interfaces.Document) (map[string]interface{}, bool) {
	switch d := document.(type) {
	case bson.M:
		return map[string]interface{}(d), true
	case map[string]interface{}:
		return d, true
	default:
		return nil, false
	}
}

func fieldNames(document bson.M) []string {
	names := make([]string, 0, len(document))
	for key := range document {
		names = append(names, key)
	}
	return names
}

var _ interfaces.DBClient = (*MongoDBClient)(nil)
