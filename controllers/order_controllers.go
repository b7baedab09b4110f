package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/middlewares"
	"github.com/mi-restaurante/backend/models"
	"github.com/mi-restaurante/backend/repository"
	"github.com/mi-restaurante/backend/services"
	"github.com/mi-restaurante/backend/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// Client-sent snapshots (nombre, precioUnitario, total) are accepted in the
// body but not bound; prices always come from the stored dish.
type orderItemRequest struct {
	DishID   string `json:"platoId" binding:"required"`
	Quantity int    `json:"cantidad" binding:"required,min=1"`
}

type orderRequest struct {
	Items  []orderItemRequest `json:"items" binding:"required,min=1,dive"`
	UserID *string            `json:"usuarioId"`
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondInvalid(c, http.StatusBadRequest, "Error al crear el pedido", err)
		return
	}

	userID := req.UserID
	if userID != nil && *userID == "" {
		userID = nil
	}
	if claims, ok := middlewares.CurrentClaims(c); ok {
		userID = &claims.ID
	}

	lines := make([]services.OrderLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = services.OrderLine{DishID: item.DishID, Quantity: item.Quantity}
	}

	order, err := oc.Orders.Create(c.Request.Context(), lines, userID)
	if err != nil {
		var unknown *services.UnknownDishError
		switch {
		case errors.As(err, &unknown),
			errors.Is(err, services.ErrEmptyOrder),
			errors.Is(err, services.ErrInvalidQuantity):
			utils.RespondInvalid(c, http.StatusBadRequest, "Error al crear el pedido", err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, "Error al crear el pedido", err)
		}
		return
	}
	utils.RespondJSON(c, http.StatusCreated, order)
}

// GetOrders lists every order, newest first.
func (oc *OrderController) GetOrders(c *gin.Context) {
	orders, err := oc.Orders.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error al obtener los pedidos", err)
		return
	}
	respondOrders(c, orders)
}

// GetMyOrders lists the orders of the signed-in user.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	claims, ok := middlewares.CurrentClaims(c)
	if !ok {
		utils.RespondMessage(c, http.StatusUnauthorized, "No se envió token")
		return
	}

	orders, err := oc.Orders.ListByUser(c.Request.Context(), claims.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error al obtener los pedidos", err)
		return
	}
	respondOrders(c, orders)
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	order, err := oc.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		// A malformed id cannot name an order either.
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.RespondMessage(c, http.StatusNotFound, "Pedido no encontrado")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Error al obtener el pedido", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, order)
}

func respondOrders(c *gin.Context, orders []models.Order) {
	if orders == nil {
		orders = []models.Order{}
	}
	utils.RespondJSON(c, http.StatusOK, orders)
}
