package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"lecturetrack/internal/model"
)

type progressDoc struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	UserID      bson.ObjectID `bson:"userId"`
	LectureID   int           `bson:"lectureId"`
	CompletedAt *time.Time    `bson:"completedAt"`
	Note        string        `bson:"note"`
	HasNotes    bool          `bson:"hasNotes"`
}

func (d progressDoc) toModel() model.Progress {
	return model.Progress{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		LectureID:   d.LectureID,
		CompletedAt: d.CompletedAt,
		Note:        d.Note,
		HasNotes:    d.HasNotes,
	}
}

type mongoProgressRepository struct {
	coll *mongo.Collection
}

func (r *mongoProgressRepository) ListByUser(ctx context.Context, userID string) ([]model.Progress, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"userId": oid})
}

func (r *mongoProgressRepository) List(ctx context.Context) ([]model.Progress, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoProgressRepository) Upsert(ctx context.Context, userID string, lectureID int, update model.ProgressUpdate) (*model.Progress, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	var doc progressDoc
	filter := bson.M{"userId": oid, "lectureId": lectureID}
	if err := r.coll.FindOneAndUpdate(ctx, filter, progressUpsertDoc(update), upsertAfter()).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	p := doc.toModel()
	return &p, nil
}

func (r *mongoProgressRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return 0, err
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"userId": oid})
	if err != nil {
		return 0, mongoErr(err)
	}
	return res.DeletedCount, nil
}

func (r *mongoProgressRepository) find(ctx context.Context, filter bson.M) ([]model.Progress, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, mongoErr(err)
	}
	var docs []progressDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mongoErr(err)
	}
	out := make([]model.Progress, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// progressUpsertDoc always writes completedAt; note and hasNotes are written
// when given and otherwise only defaulted on insert.
func progressUpsertDoc(update model.ProgressUpdate) bson.M {
	set := bson.M{"completedAt": update.CompletedAt}
	onInsert := bson.M{}

	if update.Note != nil {
		set["note"] = *update.Note
	} else {
		onInsert["note"] = ""
	}
	if update.HasNotes != nil {
		set["hasNotes"] = *update.HasNotes
	} else {
		onInsert["hasNotes"] = false
	}

	doc := bson.M{"$set": set}
	if len(onInsert) > 0 {
		doc["$setOnInsert"] = onInsert
	}
	return doc
}
