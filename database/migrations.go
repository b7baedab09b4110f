package database

import (
	"context"

	"github.com/mi-restaurante/backend/models"
	"github.com/mi-restaurante/backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// Collection names shared by the Mongo backend.
const (
	DishesCollection = "platos"
	OrdersCollection = "pedidos"
	UsersCollection  = "usuarios"
)

// AutoMigrate creates or updates the SQL schema. Users are only migrated
// when they live in the database rather than in the JSON file.
func AutoMigrate(db *gorm.DB, withUsers bool) error {
	tables := []interface{}{
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
	}
	if withUsers {
		tables = append(tables, &models.User{})
	}
	if err := db.AutoMigrate(tables...); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// EnsureMongoIndexes creates the indexes the Mongo repositories rely on:
// name ordering for the menu, newest-first and per-user order listings, and
// unique user emails.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		DishesCollection: {
			{Keys: bson.D{{Key: "nombre", Value: 1}}},
			{Keys: bson.D{{Key: "tipo", Value: 1}}},
		},
		OrdersCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "usuarioId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for coll, indexes := range specs {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes)
		if err != nil {
			utils.ErrorLogger.Printf("Error creating indexes on %s: %v", coll, err)
			return err
		}
		utils.InfoLogger.Printf("Indexes verified on %s: %v", coll, names)
	}
	return nil
}
