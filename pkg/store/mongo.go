package store

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lessonlab/vizboard/pkg/errors"
	"github.com/lessonlab/vizboard/pkg/scene"
)

// collectionName is the MongoDB collection holding processed visualizations.
const collectionName = "visualizations"

// MongoStore persists visualizations in a MongoDB collection, keyed by the
// visualization ID as the document _id.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collectionName),
	}, nil
}

// Save upserts the visualization, assigning an ID if it has none.
func (s *MongoStore) Save(ctx context.Context, viz *scene.Visualization) (string, error) {
	if viz.ID == "" {
		viz.ID = uuid.NewString()
	}
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": viz.ID},
		viz,
		options.Replace().SetUpsert(true))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "save visualization %s", viz.ID)
	}
	return viz.ID, nil
}

// Get retrieves a visualization by identifier.
func (s *MongoStore) Get(ctx context.Context, id string) (*scene.Visualization, error) {
	var viz scene.Visualization
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&viz)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeVisualizationNotFound, "visualization %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load visualization %s", id)
	}
	return &viz, nil
}

// Delete removes a visualization.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete visualization %s", id)
	}
	return nil
}

// Close disconnects the MongoDB client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
