package Controllers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/controllers"
	"github.com/mi-restaurante/backend/middlewares"
	"github.com/mi-restaurante/backend/models"
	"github.com/mi-restaurante/backend/repository"
	"github.com/mi-restaurante/backend/services"
	"github.com/mi-restaurante/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	router  *gin.Engine
	tokens  *utils.TokenManager
	salad   models.Dish
	dessert models.Dish
}

func setupOrderRouter(t *testing.T) *orderFixture {
	db := setupTestDB(t)
	dishes := repository.NewGormDishRepository(db)
	orders := repository.NewGormOrderRepository(db)
	tm := newTokens()

	f := &orderFixture{
		tokens:  tm,
		salad:   models.Dish{Name: "Ensalada César", Price: 6500, Type: models.DishTypeStarter},
		dessert: models.Dish{Name: "Tiramisú", Price: 5500, Type: models.DishTypeDessert},
	}
	require.NoError(t, dishes.Create(context.Background(), &f.salad))
	require.NoError(t, dishes.Create(context.Background(), &f.dessert))

	orderCtrl := controllers.NewOrderController(services.NewOrderService(dishes, orders, nil))
	router := gin.New()
	router.POST("/api/pedidos", middlewares.OptionalAuth(tm), orderCtrl.CreateOrder)
	router.GET("/api/pedidos", orderCtrl.GetOrders)
	router.GET("/api/pedidos/mios", middlewares.AuthMiddleware(tm), orderCtrl.GetMyOrders)
	router.GET("/api/pedidos/:id", orderCtrl.GetOrder)
	f.router = router
	return f
}

func TestCreateOrderPricesFromMenu(t *testing.T) {
	f := setupOrderRouter(t)

	// The client snapshot and total are wrong on purpose.
	body := map[string]interface{}{
		"items": []map[string]interface{}{
			{"platoId": f.salad.ID, "nombre": "Otra cosa", "precioUnitario": 1, "cantidad": 2},
			{"platoId": f.dessert.ID, "cantidad": 1},
		},
		"total":     3,
		"usuarioId": "from-body",
	}
	w := doJSON(f.router, http.MethodPost, "/api/pedidos", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	order := decodeObject(t, w)
	assert.NotEmpty(t, order["_id"])
	assert.Equal(t, 18500.0, order["total"])
	assert.Equal(t, "from-body", order["usuarioId"])

	items := order["items"].([]interface{})
	require.Len(t, items, 2)
	first := items[0].(map[string]interface{})
	assert.Equal(t, f.salad.ID, first["platoId"])
	assert.Equal(t, "Ensalada César", first["nombre"])
	assert.Equal(t, 6500.0, first["precioUnitario"])
	assert.Equal(t, 2.0, first["cantidad"])
}

func TestCreateOrderUserFromToken(t *testing.T) {
	f := setupOrderRouter(t)
	token := mustToken(t, f.tokens, "u-42", "ana@example.com", "Ana")

	body := map[string]interface{}{
		"items":     []map[string]interface{}{{"platoId": f.dessert.ID, "cantidad": 1}},
		"usuarioId": "someone-else",
	}
	w := doJSON(f.router, http.MethodPost, "/api/pedidos", body, token)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "u-42", decodeObject(t, w)["usuarioId"])

	w = doJSON(f.router, http.MethodPost, "/api/pedidos", map[string]interface{}{
		"items": []map[string]interface{}{{"platoId": f.salad.ID, "cantidad": 1}},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, decodeObject(t, w), "usuarioId")

	w = doJSON(f.router, http.MethodGet, "/api/pedidos/mios", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decodeList(t, w)
	require.Len(t, mine, 1)
	assert.Equal(t, "u-42", mine[0]["usuarioId"])

	w = doJSON(f.router, http.MethodGet, "/api/pedidos/mios", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrderValidation(t *testing.T) {
	f := setupOrderRouter(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{"no items", map[string]interface{}{"items": []interface{}{}}},
		{"missing items", map[string]interface{}{}},
		{"zero quantity", map[string]interface{}{"items": []map[string]interface{}{{"platoId": f.salad.ID, "cantidad": 0}}}},
		{"missing dish id", map[string]interface{}{"items": []map[string]interface{}{{"cantidad": 1}}}},
		{"unknown dish", map[string]interface{}{"items": []map[string]interface{}{{"platoId": "ghost", "cantidad": 1}}}},
		{"malformed", `{"items": [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(f.router, http.MethodPost, "/api/pedidos", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Error al crear el pedido", decodeObject(t, w)["mensaje"])
		})
	}

	w := doJSON(f.router, http.MethodGet, "/api/pedidos", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestListOrdersNewestFirst(t *testing.T) {
	f := setupOrderRouter(t)

	var ids []string
	for _, dish := range []models.Dish{f.salad, f.dessert} {
		w := doJSON(f.router, http.MethodPost, "/api/pedidos", map[string]interface{}{
			"items": []map[string]interface{}{{"platoId": dish.ID, "cantidad": 1}},
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)
		ids = append(ids, decodeObject(t, w)["_id"].(string))
		time.Sleep(5 * time.Millisecond)
	}

	w := doJSON(f.router, http.MethodGet, "/api/pedidos", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 2)
	assert.Equal(t, ids[1], list[0]["_id"])
	assert.Equal(t, ids[0], list[1]["_id"])

	w = doJSON(f.router, http.MethodGet, "/api/pedidos/"+ids[0], nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 6500.0, decodeObject(t, w)["total"])

	w = doJSON(f.router, http.MethodGet, "/api/pedidos/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Pedido no encontrado", decodeObject(t, w)["mensaje"])
}
