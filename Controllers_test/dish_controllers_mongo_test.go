package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/controllers"
	"github.com/mi-restaurante/backend/middlewares"
	"github.com/mi-restaurante/backend/repository"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestDishControllerMongoIDs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	tm := newTokens()
	token := mustToken(t, tm, "u-1", "admin@example.com", "Admin")

	setup := func(mt *mtest.T) *gin.Engine {
		dishCtrl := controllers.NewDishController(repository.NewMongoDishRepository(mt.Coll), nil)
		router := gin.New()
		router.GET("/api/platos/:id", dishCtrl.GetDish)
		router.PUT("/api/platos/:id", middlewares.AuthMiddleware(tm), dishCtrl.UpdateDish)
		router.DELETE("/api/platos/:id", middlewares.AuthMiddleware(tm), dishCtrl.DeleteDish)
		return router
	}

	mt.Run("update with malformed id", func(mt *mtest.T) {
		w := doJSON(setup(mt), http.MethodPut, "/api/platos/not-an-id", validDish("Locos"), token)
		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Equal(mt, "Error al actualizar el plato", decodeObject(mt.T, w)["mensaje"])
	})

	mt.Run("delete with malformed id", func(mt *mtest.T) {
		w := doJSON(setup(mt), http.MethodDelete, "/api/platos/not-an-id", nil, token)
		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Equal(mt, "Error al eliminar el plato", decodeObject(mt.T, w)["mensaje"])
	})

	mt.Run("read with malformed id", func(mt *mtest.T) {
		w := doJSON(setup(mt), http.MethodGet, "/api/platos/not-an-id", nil, "")
		assert.Equal(mt, http.StatusNotFound, w.Code)
	})

	mt.Run("delete missing dish", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(primitive.E{Key: "n", Value: 0}))
		w := doJSON(setup(mt), http.MethodDelete, "/api/platos/"+primitive.NewObjectID().Hex(), nil, token)
		assert.Equal(mt, http.StatusNotFound, w.Code)
		assert.Equal(mt, "Plato no encontrado", decodeObject(mt.T, w)["mensaje"])
	})
}
