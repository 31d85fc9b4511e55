package repository

import (
	"context"

	"delivery-track/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mongo implementation
type MongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection("users")}
}

func (m *MongoUserRepository) Create(ctx context.Context, u *model.User) error {
	touch(&u.CreatedAt, &u.UpdatedAt)
	res, err := m.col.InsertOne(ctx, u)
	if err != nil {
		return wrapWrite(err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *MongoUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	cur, err := m.col.Find(ctx, bson.M{}, newestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []model.User
	for cur.Next(ctx) {
		var v model.User
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, cur.Err()
}

func (m *MongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var res model.User
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var res model.User
	err := m.col.FindOne(ctx, bson.M{"email": email}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoUserRepository) Replace(ctx context.Context, id string, u *model.User) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	u.ID = oid
	touch(&u.CreatedAt, &u.UpdatedAt)

	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": oid}, u)
	if err != nil {
		return wrapWrite(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoUserRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
