package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayel/intranet/internal/core/ports"
)

// Collection stores records of type T as documents whose _id is the record id.
type Collection[T ports.Entity] struct {
	col      *mongo.Collection
	notFound error
}

func NewCollection[T ports.Entity](db *mongo.Database, name string, notFound error) *Collection[T] {
	return &Collection[T]{col: db.Collection(name), notFound: notFound}
}

// List returns every document in creation order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := c.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.col.Name(), err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.col.Name(), err)
	}
	return out, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var item T
	if err := c.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		var zero T
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, c.notFound
		}
		return zero, fmt.Errorf("find %s %s: %w", c.col.Name(), id, err)
	}
	return item, nil
}

func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := c.col.InsertOne(ctx, item); err != nil {
		var zero T
		return zero, fmt.Errorf("insert %s: %w", c.col.Name(), err)
	}
	return item, nil
}

func (c *Collection[T]) Update(ctx context.Context, item T) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.ReplaceOne(ctx, bson.M{"_id": item.EntityID()}, item)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("replace %s %s: %w", c.col.Name(), item.EntityID(), err)
	}
	if res.MatchedCount == 0 {
		var zero T
		return zero, c.notFound
	}
	return item, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", c.col.Name(), id, err)
	}
	if res.DeletedCount == 0 {
		return c.notFound
	}
	return nil
}
