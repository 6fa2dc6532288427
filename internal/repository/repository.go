package repository

import (
	"context"
	"errors"
	"time"

	"github.com/killua200817/Bhopal-Bazaar/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("order not found")

// Mongo implementation of the order snapshot store. Snapshots arrive whole
// from the fulfillment backend; Save is an upsert, never a field merge.
type MongoOrderRepository struct {
	col *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{col: db.Collection("orders")}
}

func (m *MongoOrderRepository) Save(ctx context.Context, o *model.OrderRecord) error {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	filter := bson.M{"order_id": o.ID}
	update := bson.M{"$set": o}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, filter, update, opts)
	return err
}

func (m *MongoOrderRepository) FindByOrderID(ctx context.Context, orderID string) (*model.OrderRecord, error) {
	var res model.OrderRecord
	err := m.col.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// GetOrder is the store read used by live reconcilers on refresh.
func (m *MongoOrderRepository) GetOrder(ctx context.Context, orderID string) (*model.OrderRecord, error) {
	return m.FindByOrderID(ctx, orderID)
}

func (m *MongoOrderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*model.OrderRecord, error) {
	cur, err := m.col.Find(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.OrderRecord
	for cur.Next(ctx) {
		var v model.OrderRecord
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}
