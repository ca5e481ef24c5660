package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names match the ones the previous service created, so an
// existing database is picked up as is.
const (
	usersCollection       = "users"
	progressCollection    = "progresses"
	sharedNotesCollection = "sharednotes"
	settingsCollection    = "settings"
)

// NewMongoRepositories builds the MongoDB-backed repositories.
func NewMongoRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:    &mongoUserRepository{coll: db.Collection(usersCollection)},
		Progress: &mongoProgressRepository{coll: db.Collection(progressCollection)},
		Notes:    &mongoSharedNoteRepository{coll: db.Collection(sharedNotesCollection)},
		Settings: &mongoSettingsRepository{coll: db.Collection(settingsCollection)},
		ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		},
	}
}

// EnsureMongoIndexes creates the unique and lookup indexes the repositories rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		progressCollection: {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "lectureId", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		sharedNotesCollection: {
			{Keys: bson.D{{Key: "lectureNumber", Value: 1}, {Key: "email", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}
	}
	return nil
}

func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("invalid id %q: %w", id, err)
	}
	return oid, nil
}

// mongoErr maps driver sentinels onto repository errors.
func mongoErr(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	default:
		return err
	}
}

func upsertAfter() *options.FindOneAndUpdateOptionsBuilder {
	return options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
}
