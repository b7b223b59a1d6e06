package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coolrentals/database/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by repositories when an identifier does not resolve.
var ErrNotFound = errors.New("document not found")

const (
	ReadTimeout  = 5 * time.Second
	WriteTimeout = 5 * time.Second
	ListTimeout  = 10 * time.Second
)

// WithTimeout bounds a repository call.
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// FindMany runs q against coll and decodes every match.
func FindMany[T any](ctx context.Context, coll *mongo.Collection, q query.Query) ([]T, error) {
	ctx, cancel := WithTimeout(ctx, ListTimeout)
	defer cancel()

	cursor, err := coll.Find(ctx, q.Filter.BSON(), q.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

// CountMatching counts the documents matching f.
func CountMatching(ctx context.Context, coll *mongo.Collection, f query.Filter) (int64, error) {
	ctx, cancel := WithTimeout(ctx, ListTimeout)
	defer cancel()

	n, err := coll.CountDocuments(ctx, f.BSON())
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", coll.Name(), err)
	}
	return n, nil
}

// FindByID decodes the document with the given _id, or returns ErrNotFound.
func FindByID[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) (*T, error) {
	ctx, cancel := WithTimeout(ctx, ReadTimeout)
	defer cancel()

	var doc T
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch %s %s: %w", coll.Name(), id.Hex(), err)
	}
	return &doc, nil
}

// InsertOne stores doc and returns the id the server assigned.
func InsertOne(ctx context.Context, coll *mongo.Collection, doc any) (primitive.ObjectID, error) {
	ctx, cancel := WithTimeout(ctx, WriteTimeout)
	defer cancel()

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// SetFields applies a $set to one document and returns the updated version.
func SetFields[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, fields bson.M) (*T, error) {
	ctx, cancel := WithTimeout(ctx, WriteTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update %s %s: %w", coll.Name(), id.Hex(), err)
	}
	return &doc, nil
}

// DeleteByID removes one document, or returns ErrNotFound.
func DeleteByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) error {
	ctx, cancel := WithTimeout(ctx, WriteTimeout)
	defer cancel()

	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", coll.Name(), id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the given indexes on coll.
func EnsureIndexes(coll *mongo.Collection, models ...mongo.IndexModel) error {
	ctx, cancel := WithTimeout(context.Background(), ListTimeout)
	defer cancel()

	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
	}
	return nil
}
