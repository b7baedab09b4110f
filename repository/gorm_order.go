package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mi-restaurante/backend/models"
	"gorm.io/gorm"
)

type gormOrderRepository struct{ db *gorm.DB }

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func itemsInPosition(db *gorm.DB) *gorm.DB {
	return db.Order("posicion asc")
}

func (r *gormOrderRepository) Create(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	for i := range o.Items {
		o.Items[i].Position = i
	}
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *gormOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	var list []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", itemsInPosition).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *gormOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var list []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", itemsInPosition).
		Where("usuario_id = ?", userID).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *gormOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).Preload("Items", itemsInPosition).First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
