package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"lecturetrack/internal/model"
)

type noteDoc struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	LectureNumber int           `bson:"lectureNumber"`
	TextContent   string        `bson:"textContent,omitempty"`
	FileRef       string        `bson:"fileRef,omitempty"`
	FileType      string        `bson:"fileType,omitempty"`
	FileName      string        `bson:"fileName,omitempty"`
	UploadedBy    string        `bson:"uploadedBy"`
	Email         string        `bson:"email"`
	Date          time.Time     `bson:"date"`
}

func (d noteDoc) toModel() model.SharedNote {
	return model.SharedNote{
		ID:            d.ID.Hex(),
		LectureNumber: d.LectureNumber,
		TextContent:   d.TextContent,
		FileRef:       d.FileRef,
		FileType:      d.FileType,
		FileName:      d.FileName,
		UploadedBy:    d.UploadedBy,
		Email:         d.Email,
		Date:          d.Date,
	}
}

type mongoSharedNoteRepository struct {
	coll *mongo.Collection
}

func (r *mongoSharedNoteRepository) Create(ctx context.Context, note *model.SharedNote) error {
	doc := noteDoc{
		ID:            bson.NewObjectID(),
		LectureNumber: note.LectureNumber,
		TextContent:   note.TextContent,
		FileRef:       note.FileRef,
		FileType:      note.FileType,
		FileName:      note.FileName,
		UploadedBy:    note.UploadedBy,
		Email:         note.Email,
		Date:          note.Date,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoErr(err)
	}
	note.ID = doc.ID.Hex()
	return nil
}

func (r *mongoSharedNoteRepository) ListByDateDesc(ctx context.Context) ([]model.SharedNote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mongoErr(err)
	}
	var docs []noteDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mongoErr(err)
	}
	notes := make([]model.SharedNote, 0, len(docs))
	for _, d := range docs {
		notes = append(notes, d.toModel())
	}
	return notes, nil
}

func (r *mongoSharedNoteRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return mongoErr(err)
	}
	return nil
}

func (r *mongoSharedNoteRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"email": email})
	if err != nil {
		return 0, mongoErr(err)
	}
	return res.DeletedCount, nil
}

func (r *mongoSharedNoteRepository) UpsertByNaturalKey(ctx context.Context, note *model.SharedNote) error {
	filter, update := noteUpsertDoc(note)
	res, err := r.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return mongoErr(err)
	}
	if oid, ok := res.UpsertedID.(bson.ObjectID); ok {
		note.ID = oid.Hex()
	}
	return nil
}

// noteUpsertDoc keys on (lectureNumber, email, date) and overwrites the rest.
// Empty optional fields are not written, so an existing attachment survives a
// text-only resubmission.
func noteUpsertDoc(note *model.SharedNote) (bson.M, bson.M) {
	filter := bson.M{
		"lectureNumber": note.LectureNumber,
		"email":         note.Email,
		"date":          note.Date,
	}
	set := bson.M{"uploadedBy": note.UploadedBy}
	optional := map[string]string{
		"textContent": note.TextContent,
		"fileRef":     note.FileRef,
		"fileType":    note.FileType,
		"fileName":    note.FileName,
	}
	for field, value := range optional {
		if value != "" {
			set[field] = value
		}
	}
	return filter, bson.M{"$set": set}
}
