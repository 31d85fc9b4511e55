package repository

import (
	"context"

	"delivery-track/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mongo implementation
type MongoClientRepository struct {
	col *mongo.Collection
}

func NewMongoClientRepository(db *mongo.Database) *MongoClientRepository {
	return &MongoClientRepository{col: db.Collection("clients")}
}

func (m *MongoClientRepository) Create(ctx context.Context, c *model.Client) error {
	touch(&c.CreatedAt, &c.UpdatedAt)
	res, err := m.col.InsertOne(ctx, c)
	if err != nil {
		return wrapWrite(err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *MongoClientRepository) FindAll(ctx context.Context, ownerID string) ([]model.Client, error) {
	filter := bson.M{}
	if ownerID != "" {
		filter["user_id"] = ownerID
	}

	cur, err := m.col.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []model.Client
	for cur.Next(ctx) {
		var v model.Client
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, cur.Err()
}

func (m *MongoClientRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var res model.Client
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoClientRepository) FindByPhone(ctx context.Context, phone string) (*model.Client, error) {
	var res model.Client
	err := m.col.FindOne(ctx, bson.M{"phone": phone}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// Replace grava o documento inteiro, preservando _id e created_at.
func (m *MongoClientRepository) Replace(ctx context.Context, id string, c *model.Client) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	c.ID = oid
	touch(&c.CreatedAt, &c.UpdatedAt)

	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": oid}, c)
	if err != nil {
		return wrapWrite(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoClientRepository) Delete(ctx context.Context, id string) error {
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
