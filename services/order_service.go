package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mi-restaurante/backend/models"
	"github.com/mi-restaurante/backend/repository"
	"github.com/mi-restaurante/backend/utils"
)

var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// UnknownDishError reports an order line pointing at a dish that does not
// exist.
type UnknownDishError struct {
	DishID string
}

func (e *UnknownDishError) Error() string {
	return fmt.Sprintf("dish %q not found", e.DishID)
}

// OrderLine is what the client asks for: a dish and how many.
type OrderLine struct {
	DishID   string
	Quantity int
}

// OrderNotifier is told about every stored order.
type OrderNotifier interface {
	OrderCreated(order models.Order)
}

type OrderService struct {
	dishes   repository.DishRepository
	orders   repository.OrderRepository
	notifier OrderNotifier
}

func NewOrderService(dishes repository.DishRepository, orders repository.OrderRepository, notifier OrderNotifier) *OrderService {
	return &OrderService{dishes: dishes, orders: orders, notifier: notifier}
}

// Create prices each line from the stored dish, computes the total and
// stores the order.
func (s *OrderService) Create(ctx context.Context, lines []OrderLine, userID *string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	order := &models.Order{
		Items:  make([]models.OrderItem, 0, len(lines)),
		UserID: userID,
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		dish, err := s.dishes.FindByID(ctx, line.DishID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
				return nil, &UnknownDishError{DishID: line.DishID}
			}
			return nil, fmt.Errorf("load dish: %w", err)
		}
		order.Items = append(order.Items, models.OrderItem{
			DishID:    dish.ID,
			Name:      dish.Name,
			UnitPrice: dish.Price,
			Quantity:  line.Quantity,
		})
	}
	order.ComputeTotal()

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	utils.InfoLogger.Printf("Order %s created with %d items, total %s", order.ID, len(order.Items), utils.FormatCLP(order.Total))
	if s.notifier != nil {
		s.notifier.OrderCreated(*order)
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.FindByID(ctx, id)
}
