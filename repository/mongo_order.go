package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mi-restaurante/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	models.Order `bson:",inline"`
}

func (doc orderDocument) toModel() models.Order {
	o := doc.Order
	o.ID = doc.ID.Hex()
	return o
}

type mongoOrderRepository struct{ coll *mongo.Collection }

func NewMongoOrderRepository(coll *mongo.Collection) OrderRepository {
	return &mongoOrderRepository{coll: coll}
}

func (r *mongoOrderRepository) Create(ctx context.Context, o *models.Order) error {
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now

	doc := orderDocument{ID: primitive.NewObjectID(), Order: *o}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	o.ID = doc.ID.Hex()
	return nil
}

func (r *mongoOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"usuarioId": userID})
}

func (r *mongoOrderRepository) find(ctx context.Context, query bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	list := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		list = append(list, doc.toModel())
	}
	return list, nil
}

func (r *mongoOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	o := doc.toModel()
	return &o, nil
}
