package repository

import (
	"context"
	"time"

	"delivery-track/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mongo implementation
type MongoOrderRepository struct {
	col *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{col: db.Collection("orders")}
}

func (m *MongoOrderRepository) Create(ctx context.Context, o *model.Order) error {
	touch(&o.CreatedAt, &o.UpdatedAt)
	res, err := m.col.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *MongoOrderRepository) FindAll(ctx context.Context, ownerID string) ([]model.Order, error) {
	filter := bson.M{}
	if ownerID != "" {
		filter["user_id"] = ownerID
	}

	cur, err := m.col.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	return decodeOrders(ctx, cur)
}

// FindByDay lista os pedidos criados dentro do dia [start, end), do mais
// recente para o mais antigo, com paginação skip/limit. Retorna também o
// total do dia, para a paginação do cliente. limit <= 0 desativa a
// paginação.
func (m *MongoOrderRepository) FindByDay(ctx context.Context, start, end time.Time, skip, limit int64) ([]model.Order, int64, error) {
	filter := bson.M{"created_at": bson.M{"$gte": start, "$lt": end}}

	total, err := m.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := newestFirst()
	if limit > 0 {
		opts = opts.SetSkip(skip).SetLimit(limit)
	}

	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out, err := decodeOrders(ctx, cur)
	return out, total, err
}

func (m *MongoOrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var res model.Order
	err = m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoOrderRepository) Replace(ctx context.Context, id string, o *model.Order) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	o.ID = oid
	touch(&o.CreatedAt, &o.UpdatedAt)

	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": oid}, o)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPaymentStatus é usado pelo consumidor de confirmações de pagamento.
func (m *MongoOrderRepository) SetPaymentStatus(ctx context.Context, id string, status model.PaymentStatus) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"payment_status": status,
		"updated_at":     time.Now().UTC(),
	}}

	res, err := m.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoOrderRepository) Delete(ctx context.Context, id string) error {
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

func decodeOrders(ctx context.Context, cur *mongo.Cursor) ([]model.Order, error) {
	var out []model.Order
	for cur.Next(ctx) {
		var v model.Order
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, cur.Err()
}
