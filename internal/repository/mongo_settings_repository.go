package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"lecturetrack/internal/model"
)

type settingsDoc struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	TotalLectures int           `bson:"totalLectures"`
}

func (d settingsDoc) toModel() *model.Settings {
	return &model.Settings{ID: d.ID.Hex(), TotalLectures: d.TotalLectures}
}

// mongoSettingsRepository matches the singleton with an empty filter, so any
// existing document is reused and the first write creates one.
type mongoSettingsRepository struct {
	coll *mongo.Collection
}

func (r *mongoSettingsRepository) FindOrCreate(ctx context.Context, defaults model.Settings) (*model.Settings, error) {
	update := bson.M{"$setOnInsert": bson.M{"totalLectures": defaults.TotalLectures}}
	return r.findOneAndUpsert(ctx, update)
}

func (r *mongoSettingsRepository) Upsert(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error) {
	return r.findOneAndUpsert(ctx, settingsUpsertDoc(patch))
}

func (r *mongoSettingsRepository) findOneAndUpsert(ctx context.Context, update bson.M) (*model.Settings, error) {
	var doc settingsDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{}, update, upsertAfter()).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	return doc.toModel(), nil
}

func settingsUpsertDoc(patch model.SettingsPatch) bson.M {
	if patch.TotalLectures == nil {
		return bson.M{"$setOnInsert": bson.M{"totalLectures": model.DefaultTotalLectures}}
	}
	return bson.M{"$set": bson.M{"totalLectures": *patch.TotalLectures}}
}
