// Package mongostore adapts a MongoDB database to the document.Store and
// document.BlobStore contracts: one collection per schema, GridFS for
// uploaded files.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/goliatone/go-docforms/pkg/document"
	"github.com/goliatone/go-docforms/pkg/schema"
)

// Store persists documents into the MongoDB collection named after their
// schema.
type Store struct {
	db     *mongo.Database
	logger *zap.Logger
}

// Option configures the store.
type Option func(*Store)

// WithLogger attaches a logger for save/load diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a store over the given database.
func New(db *mongo.Database, opts ...Option) *Store {
	s := &Store{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ document.Store = (*Store)(nil)

// Save upserts the instance by _id, assigning a fresh object id on first
// save.
func (s *Store) Save(ctx context.Context, doc *document.Document) error {
	if doc.ID() == "" {
		doc.SetID(primitive.NewObjectID().Hex())
	}
	record := bson.M{}
	for name, value := range doc.ToMap(nil, nil) {
		record[name] = value
	}
	coll := s.db.Collection(doc.Schema().Name())
	_, err := coll.UpdateOne(ctx,
		bson.M{"_id": doc.ID()},
		bson.M{"$set": record},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongostore: save %s/%s: %w", doc.Schema().Name(), doc.ID(), err)
	}
	s.logger.Debug("document saved",
		zap.String("schema", doc.Schema().Name()),
		zap.String("id", doc.ID()))
	return nil
}

// Get loads the instance stored under id.
func (s *Store) Get(ctx context.Context, sc *schema.Schema, id string) (*document.Document, error) {
	var record bson.M
	err := s.db.Collection(sc.Name()).FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, document.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongostore: load %s/%s: %w", sc.Name(), id, err)
	}
	return decode(sc, id, record)
}

// Exists reports whether id is stored for the schema.
func (s *Store) Exists(ctx context.Context, sc *schema.Schema, id string) (bool, error) {
	count, err := s.db.Collection(sc.Name()).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("mongostore: check %s/%s: %w", sc.Name(), id, err)
	}
	return count > 0, nil
}

// Delete removes the stored instance.
func (s *Store) Delete(ctx context.Context, sc *schema.Schema, id string) error {
	if _, err := s.db.Collection(sc.Name()).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongostore: delete %s/%s: %w", sc.Name(), id, err)
	}
	return nil
}

// List loads every instance of the schema.
func (s *Store) List(ctx context.Context, sc *schema.Schema) ([]*document.Document, error) {
	cursor, err := s.db.Collection(sc.Name()).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongostore: list %s: %w", sc.Name(), err)
	}
	defer cursor.Close(ctx)

	var out []*document.Document
	for cursor.Next(ctx) {
		var record bson.M
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("mongostore: decode %s: %w", sc.Name(), err)
		}
		id, _ := record["_id"].(string)
		doc, err := decode(sc, id, record)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongostore: iterate %s: %w", sc.Name(), err)
	}
	return out, nil
}

func decode(sc *schema.Schema, id string, record bson.M) (*document.Document, error) {
	doc := document.New(sc)
	doc.SetID(id)
	for name, value := range record {
		if name == "_id" {
			continue
		}
		if _, declared := sc.Field(name); !declared {
			// Schema drift: stored attributes the schema no longer declares
			// are skipped rather than failing the load.
			continue
		}
		if err := doc.Set(name, value); err != nil {
			return nil, fmt.Errorf("mongostore: rebuild %s/%s: %w", sc.Name(), id, err)
		}
	}
	return doc, nil
}
