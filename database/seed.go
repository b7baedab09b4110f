package database

import (
	"context"

	"github.com/mi-restaurante/backend/models"
	"github.com/mi-restaurante/backend/repository"
	"github.com/mi-restaurante/backend/utils"
)

// InitialDishes is the starter menu shown by the frontend before anything
// has been saved.
func InitialDishes() []models.Dish {
	return []models.Dish{
		{
			Name:        "Ensalada César",
			Description: "Ensalada fresca con pollo y aderezo césar.",
			Price:       6500,
			Type:        models.DishTypeStarter,
			IsCold:      true,
			HasMeat:     true,
			Ingredients: []string{"Lechuga", "Pollo", "Crutones", "Queso parmesano", "Aderezo césar"},
		},
		{
			Name:        "Lasaña de verduras",
			Description: "Lasaña horneada con verduras de temporada.",
			Price:       8900,
			Type:        models.DishTypeMain,
			IsVegan:     true,
			IsPasta:     true,
			Ingredients: []string{"Láminas de pasta", "Zanahoria", "Zapallo italiano", "Tomate", "Salsa de tomate"},
		},
		{
			Name:        "Tiramisú",
			Description: "Postre frío clásico italiano.",
			Price:       5500,
			Type:        models.DishTypeDessert,
			IsCold:      true,
			Ingredients: []string{"Bizcotelas", "Café", "Queso mascarpone", "Cacao en polvo"},
		},
	}
}

// SeedDishes inserts InitialDishes when the dish store is empty and reports
// how many were inserted.
func SeedDishes(ctx context.Context, repo repository.DishRepository) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	dishes := InitialDishes()
	for i := range dishes {
		if err := repo.Create(ctx, &dishes[i]); err != nil {
			return i, err
		}
	}
	utils.InfoLogger.Printf("Seeded %d dishes", len(dishes))
	return len(dishes), nil
}
