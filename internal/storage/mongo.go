package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pressworks/newshound/internal/types"
)

// MongoStore inserts scraped articles into a MongoDB collection. Each
// checkpoint inserts only the records added since the previous one.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	inserted   int
	logger     *slog.Logger
}

// NewMongoStore connects to MongoDB and prepares the target collection.
func NewMongoStore(uri, database, collection string, logger *slog.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_store"),
	}, nil
}

func (s *MongoStore) Name() string { return "mongodb" }

func (s *MongoStore) Checkpoint(articles []*types.ArticleRecord) error {
	if s.inserted >= len(articles) {
		return nil
	}

	fresh := articles[s.inserted:]
	docs := make([]any, len(fresh))
	for i, rec := range fresh {
		docs[i] = rec
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("mongodb insert: %w", err)}
	}

	s.inserted = len(articles)
	s.logger.Debug("articles stored in mongodb", "count", len(fresh), "total", s.inserted)
	return nil
}

func (s *MongoStore) Close() error {
	s.logger.Info("mongodb store closing", "total_articles", s.inserted)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
