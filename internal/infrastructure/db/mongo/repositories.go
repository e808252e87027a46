package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

const (
	collectionUsers      = "users"
	collectionPosts      = "posts"
	collectionComments   = "comments"
	collectionEvents     = "events"
	collectionTrainings  = "trainings"
	collectionCompanies  = "companies"
	collectionExtensions = "extensions"
	collectionShortcuts  = "shortcuts"
)

// usernameCollation makes username lookups and the unique index
// case-insensitive.
var usernameCollation = &options.Collation{Locale: "en", Strength: 2}

// UserRepository stores accounts; usernames are unique.
type UserRepository struct {
	*Collection[domain.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{NewCollection[domain.User](db, collectionUsers, domain.ErrUserNotFound)}
}

func (r *UserRepository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	created, err := r.Collection.Create(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return domain.User{}, domain.ErrUserExists
	}
	return created, err
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	opts := options.FindOne().SetCollation(usernameCollation)
	if err := r.col.FindOne(ctx, bson.M{"username": username}, opts).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// PostRepository applies likes and publication with single-document updates
// so concurrent writers never replace each other's changes.
type PostRepository struct {
	*Collection[domain.Post]
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{NewCollection[domain.Post](db, collectionPosts, domain.ErrPostNotFound)}
}

func (r *PostRepository) ToggleLike(ctx context.Context, id, userID string) (bool, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	after := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"likes": 1})

	var p domain.Post
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}},
		after,
	).Decode(&p)
	if err == nil {
		return false, len(p.Likes), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return false, 0, fmt.Errorf("unlike post %s: %w", id, err)
	}

	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"likes": userID}},
		after,
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, 0, domain.ErrPostNotFound
	}
	if err != nil {
		return false, 0, fmt.Errorf("like post %s: %w", id, err)
	}
	return true, len(p.Likes), nil
}

func (r *PostRepository) MarkPublished(ctx context.Context, id string, scheduledFor time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, publishFilter(id, scheduledFor), bson.M{
		"$set": bson.M{"status": domain.StatusPublished, "published_at": scheduledFor},
	})
	if err != nil {
		return false, fmt.Errorf("publish post %s: %w", id, err)
	}
	return res.ModifiedCount == 1, nil
}

// publishFilter matches a post only while it still waits for scheduledFor.
func publishFilter(id string, scheduledFor time.Time) bson.M {
	return bson.M{
		"_id":           id,
		"status":        domain.StatusScheduled,
		"scheduled_for": scheduledFor,
	}
}

// NewStore wires every portal collection in db.
func NewStore(db *mongo.Database) ports.Store {
	return ports.Store{
		Users:      NewUserRepository(db),
		Posts:      NewPostRepository(db),
		Comments:   NewCollection[domain.Comment](db, collectionComments, domain.ErrCommentNotFound),
		Events:     NewCollection[domain.Event](db, collectionEvents, domain.ErrEventNotFound),
		Trainings:  NewCollection[domain.Training](db, collectionTrainings, domain.ErrTrainingNotFound),
		Companies:  NewCollection[domain.Company](db, collectionCompanies, domain.ErrCompanyNotFound),
		Extensions: NewCollection[domain.Extension](db, collectionExtensions, domain.ErrExtensionNotFound),
		Shortcuts:  NewCollection[domain.Shortcut](db, collectionShortcuts, domain.ErrShortcutNotFound),
	}
}

// EnsureIndexes creates the indexes the portal queries rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		collectionUsers: {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true).SetCollation(usernameCollation),
			},
			{Keys: bson.D{{Key: "company_id", Value: 1}}},
		},
		collectionPosts: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "scheduled_for", Value: 1}}},
		},
		collectionComments: {
			{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		collectionEvents: {
			{Keys: bson.D{{Key: "date", Value: 1}}},
		},
		collectionTrainings: {
			{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "category", Value: 1}}},
		},
		collectionExtensions: {
			{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "sector", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", name, err)
		}
	}
	return nil
}
