package mongostore

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"

	"github.com/goliatone/go-docforms/pkg/document"
)

// GridFSStore stores uploaded file content in a GridFS bucket, renaming on
// filename collisions so existing files are never overwritten.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

// NewGridFS opens the default GridFS bucket on the database.
func NewGridFS(db *mongo.Database) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, fmt.Errorf("mongostore: open gridfs bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket}, nil
}

var _ document.BlobStore = (*GridFSStore)(nil)

// Put uploads content under name, disambiguating colliding names, and
// returns the stored name.
func (g *GridFSStore) Put(ctx context.Context, name string, content io.Reader) (string, error) {
	stored, err := document.UniqueName(ctx, name, g.Exists)
	if err != nil {
		return "", fmt.Errorf("mongostore: resolve name %q: %w", name, err)
	}
	if _, err := g.bucket.UploadFromStream(stored, content); err != nil {
		return "", fmt.Errorf("mongostore: upload %q: %w", stored, err)
	}
	return stored, nil
}

// Exists reports whether a file is stored under name.
func (g *GridFSStore) Exists(ctx context.Context, name string) (bool, error) {
	count, err := g.bucket.GetFilesCollection().CountDocuments(ctx, bson.M{"filename": name})
	if err != nil {
		return false, fmt.Errorf("mongostore: check %q: %w", name, err)
	}
	return count > 0, nil
}

// Open returns the stored content for reading.
func (g *GridFSStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	stream, err := g.bucket.OpenDownloadStreamByName(name)
	if err != nil {
		return nil, fmt.Errorf("mongostore: open %q: %w", name, err)
	}
	return stream, nil
}
