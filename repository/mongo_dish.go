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

type dishDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	models.Dish `bson:",inline"`
}

func (doc dishDocument) toModel() models.Dish {
	d := doc.Dish
	d.ID = doc.ID.Hex()
	return d
}

type mongoDishRepository struct{ coll *mongo.Collection }

func NewMongoDishRepository(coll *mongo.Collection) DishRepository {
	return &mongoDishRepository{coll: coll}
}

func (r *mongoDishRepository) Create(ctx context.Context, d *models.Dish) error {
	now := time.Now()
	d.CreatedAt, d.UpdatedAt = now, now

	doc := dishDocument{ID: primitive.NewObjectID(), Dish: *d}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	d.ID = doc.ID.Hex()
	return nil
}

func (r *mongoDishRepository) List(ctx context.Context, f DishFilter) ([]models.Dish, error) {
	query := bson.M{}
	if f.Type != "" {
		query["tipo"] = f.Type
	}
	for field, on := range map[string]bool{
		"esFrio":      f.Cold,
		"esVegano":    f.Vegan,
		"esPasta":     f.Pasta,
		"esMarisco":   f.Seafood,
		"esAlcohol":   f.Alcohol,
		"esCarne":     f.Meat,
		"esSandwitch": f.Sandwich,
	} {
		if on {
			query[field] = true
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []dishDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	list := make([]models.Dish, 0, len(docs))
	for _, doc := range docs {
		d := doc.toModel()
		if f.Query != "" && !f.Matches(&d) {
			continue
		}
		list = append(list, d)
	}
	return list, nil
}

func (r *mongoDishRepository) FindByID(ctx context.Context, id string) (*models.Dish, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var doc dishDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d := doc.toModel()
	return &d, nil
}

func (r *mongoDishRepository) Update(ctx context.Context, d *models.Dish) error {
	existing, err := r.FindByID(ctx, d.ID)
	if err != nil {
		return err
	}
	oid, _ := primitive.ObjectIDFromHex(d.ID)
	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = time.Now()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, dishDocument{ID: oid, Dish: *d})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoDishRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoDishRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}
