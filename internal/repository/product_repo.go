package repository

import (
	"context"

	"delivery-track/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mongo implementation
type MongoProductRepository struct {
	col *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{col: db.Collection("products")}
}

func (m *MongoProductRepository) Create(ctx context.Context, p *model.Product) error {
	touch(&p.CreatedAt, &p.UpdatedAt)
	res, err := m.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *MongoProductRepository) FindAll(ctx context.Context, ownerID string) ([]model.Product, error) {
	filter := bson.M{}
	if ownerID != "" {
		filter["user_id"] = ownerID
	}

	cur, err := m.col.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []model.Product
	for cur.Next(ctx) {
		var v model.Product
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, cur.Err()
}

func (m *MongoProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var res model.Product
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoProductRepository) Replace(ctx context.Context, id string, p *model.Product) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	p.ID = oid
	touch(&p.CreatedAt, &p.UpdatedAt)

	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": oid}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoProductRepository) Delete(ctx context.Context, id string) error {
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
