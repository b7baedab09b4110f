// Package repository holds the storage contracts for dishes, orders and
// users and their GORM, MongoDB and JSON-file implementations.
package repository

import (
	"context"
	"errors"

	"github.com/mi-restaurante/backend/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidID means the id is malformed for the backend, e.g. not an
	// ObjectID under MongoDB.
	ErrInvalidID = errors.New("invalid id")
)

// DishFilter narrows a dish listing. Zero values mean "no restriction".
type DishFilter struct {
	Query    string
	Type     string
	Cold     bool
	Vegan    bool
	Pasta    bool
	Seafood  bool
	Alcohol  bool
	Meat     bool
	Sandwich bool
}

// Matches reports whether d passes the filter. Backends that cannot express
// the whole filter natively use it as a post-filter.
func (f DishFilter) Matches(d *models.Dish) bool {
	if f.Query != "" && !containsFold(d.SearchText(), f.Query) {
		return false
	}
	if f.Type != "" && d.Type != f.Type {
		return false
	}
	switch {
	case f.Cold && !d.IsCold,
		f.Vegan && !d.IsVegan,
		f.Pasta && !d.IsPasta,
		f.Seafood && !d.IsSeafood,
		f.Alcohol && !d.HasAlcohol,
		f.Meat && !d.HasMeat,
		f.Sandwich && !d.IsSandwich:
		return false
	}
	return true
}

type DishRepository interface {
	Create(ctx context.Context, d *models.Dish) error
	List(ctx context.Context, f DishFilter) ([]models.Dish, error)
	FindByID(ctx context.Context, id string) (*models.Dish, error)
	Update(ctx context.Context, d *models.Dish) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Pinger is implemented by backends that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}
