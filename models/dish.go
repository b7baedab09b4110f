package models

import (
	"strings"
	"time"
)

// Dish categories as the frontend sends them.
const (
	DishTypeStarter = "entrada"
	DishTypeMain    = "fondo"
	DishTypeDessert = "postre"
	DishTypeDrink   = "bebida"
)

var DishTypes = []string{DishTypeStarter, DishTypeMain, DishTypeDessert, DishTypeDrink}

func IsValidDishType(t string) bool {
	for _, dt := range DishTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// Dish is a menu entry ("plato"). The id is assigned by the storage backend.
type Dish struct {
	ID          string   `gorm:"primaryKey;type:varchar(36)" bson:"-" json:"_id"`
	Name        string   `gorm:"column:nombre;type:varchar(255);not null;index" bson:"nombre" json:"nombre"`
	Description string   `gorm:"column:descripcion;type:text" bson:"descripcion" json:"descripcion"`
	Price       float64  `gorm:"column:precio;type:decimal(10,2);not null" bson:"precio" json:"precio"`
	Type        string   `gorm:"column:tipo;type:varchar(20);not null;index" bson:"tipo" json:"tipo"`
	IsCold      bool     `gorm:"column:es_frio" bson:"esFrio" json:"esFrio"`
	IsVegan     bool     `gorm:"column:es_vegano" bson:"esVegano" json:"esVegano"`
	IsPasta     bool     `gorm:"column:es_pasta" bson:"esPasta" json:"esPasta"`
	IsSeafood   bool     `gorm:"column:es_marisco" bson:"esMarisco" json:"esMarisco"`
	HasAlcohol  bool     `gorm:"column:es_alcohol" bson:"esAlcohol" json:"esAlcohol"`
	HasMeat     bool     `gorm:"column:es_carne" bson:"esCarne" json:"esCarne"`
	IsSandwich  bool     `gorm:"column:es_sandwich" bson:"esSandwitch" json:"esSandwitch"`
	Ingredients []string `gorm:"column:ingredientes;serializer:json;type:text" bson:"ingredientes" json:"ingredientes"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (Dish) TableName() string {
	return "platos"
}

// SearchText is the haystack used by the free-text menu filter.
func (d *Dish) SearchText() string {
	return strings.ToLower(d.Name + " " + d.Description)
}

// CleanIngredients trims every ingredient and drops empty ones, keeping order.
func CleanIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
