package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"lecturetrack/internal/model"
)

type userDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	Role      string        `bson:"role"`
	Avatar    string        `bson:"avatar,omitempty"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d userDoc) toModel() model.User {
	return model.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		Role:      d.Role,
		Avatar:    d.Avatar,
		CreatedAt: d.CreatedAt,
	}
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	doc := userDoc{
		ID:        bson.NewObjectID(),
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		Role:      user.Role,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mongoErr(err)
	}
	user.ID = doc.ID.Hex()
	user.CreatedAt = doc.CreatedAt
	return nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) FindByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email, "password": password})
}

func (r *mongoUserRepository) List(ctx context.Context) ([]model.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoUserRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	return r.find(ctx, bson.M{"role": role})
}

func (r *mongoUserRepository) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	if len(set) == 0 {
		return r.findOne(ctx, bson.M{"_id": oid})
	}

	var doc userDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	user := doc.toModel()
	return &user, nil
}

func (r *mongoUserRepository) UpsertByEmail(ctx context.Context, email string, patch model.UserPatch) error {
	update := userUpsertDoc(patch, time.Now().UTC())
	if _, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, update, options.UpdateOne().SetUpsert(true)); err != nil {
		return mongoErr(err)
	}
	return nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return mongoErr(err)
	}
	return nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	user := doc.toModel()
	return &user, nil
}

func (r *mongoUserRepository) find(ctx context.Context, filter bson.M) ([]model.User, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, mongoErr(err)
	}
	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mongoErr(err)
	}
	users := make([]model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}
	return users, nil
}

// userUpsertDoc sets the patched fields and fills role and createdAt only
// when the upsert inserts.
func userUpsertDoc(patch model.UserPatch, now time.Time) bson.M {
	set := bson.M{}
	onInsert := bson.M{}

	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if patch.Avatar != nil {
		set["avatar"] = *patch.Avatar
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	} else {
		onInsert["role"] = model.RoleUser
	}
	if patch.CreatedAt != nil {
		set["createdAt"] = *patch.CreatedAt
	} else {
		onInsert["createdAt"] = now
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(onInsert) > 0 {
		update["$setOnInsert"] = onInsert
	}
	return update
}
