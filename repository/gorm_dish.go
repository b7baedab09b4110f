package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mi-restaurante/backend/models"
	"gorm.io/gorm"
)

type gormDishRepository struct{ db *gorm.DB }

func NewGormDishRepository(db *gorm.DB) DishRepository {
	return &gormDishRepository{db: db}
}

func (r *gormDishRepository) Create(ctx context.Context, d *models.Dish) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *gormDishRepository) List(ctx context.Context, f DishFilter) ([]models.Dish, error) {
	q := r.db.WithContext(ctx).Order("nombre asc")
	if f.Type != "" {
		q = q.Where("tipo = ?", f.Type)
	}
	for column, on := range map[string]bool{
		"es_frio":     f.Cold,
		"es_vegano":   f.Vegan,
		"es_pasta":    f.Pasta,
		"es_marisco":  f.Seafood,
		"es_alcohol":  f.Alcohol,
		"es_carne":    f.Meat,
		"es_sandwich": f.Sandwich,
	} {
		if on {
			q = q.Where(column+" = ?", true)
		}
	}

	var list []models.Dish
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	if f.Query == "" {
		return list, nil
	}

	// The text search spans name and description together, so it runs here
	// rather than as two LIKE clauses.
	out := list[:0]
	for i := range list {
		if f.Matches(&list[i]) {
			out = append(out, list[i])
		}
	}
	return out, nil
}

func (r *gormDishRepository) FindByID(ctx context.Context, id string) (*models.Dish, error) {
	var d models.Dish
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *gormDishRepository) Update(ctx context.Context, d *models.Dish) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Dish
		if err := tx.First(&existing, "id = ?", d.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		d.CreatedAt = existing.CreatedAt
		return tx.Save(d).Error
	})
}

func (r *gormDishRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Dish{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormDishRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Dish{}).Count(&n).Error
	return n, err
}
