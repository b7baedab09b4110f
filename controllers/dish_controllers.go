package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/models"
	"github.com/mi-restaurante/backend/repository"
	"github.com/mi-restaurante/backend/utils"
)

// DishEvents is notified after every menu mutation.
type DishEvents interface {
	MenuUpdated(dish models.Dish)
	MenuDeleted(id string)
}

type DishController struct {
	Dishes repository.DishRepository
	Events DishEvents
}

func NewDishController(dishes repository.DishRepository, events DishEvents) *DishController {
	return &DishController{Dishes: dishes, Events: events}
}

type dishRequest struct {
	Name        string   `json:"nombre" binding:"required,notblank"`
	Description string   `json:"descripcion"`
	Price       float64  `json:"precio" binding:"gt=0"`
	Type        string   `json:"tipo" binding:"required,tipo_plato"`
	IsCold      bool     `json:"esFrio"`
	IsVegan     bool     `json:"esVegano"`
	IsPasta     bool     `json:"esPasta"`
	IsSeafood   bool     `json:"esMarisco"`
	HasAlcohol  bool     `json:"esAlcohol"`
	HasMeat     bool     `json:"esCarne"`
	IsSandwich  bool     `json:"esSandwitch"`
	Ingredients []string `json:"ingredientes"`
}

func (r *dishRequest) apply(d *models.Dish) {
	d.Name = strings.TrimSpace(r.Name)
	d.Description = r.Description
	d.Price = r.Price
	d.Type = r.Type
	d.IsCold = r.IsCold
	d.IsVegan = r.IsVegan
	d.IsPasta = r.IsPasta
	d.IsSeafood = r.IsSeafood
	d.HasAlcohol = r.HasAlcohol
	d.HasMeat = r.HasMeat
	d.IsSandwich = r.IsSandwich
	d.Ingredients = models.CleanIngredients(r.Ingredients)
}

// GetAllDishes lists the menu sorted by name, optionally filtered.
func (dc *DishController) GetAllDishes(c *gin.Context) {
	dishes, err := dc.Dishes.List(c.Request.Context(), dishFilterFromQuery(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error al obtener los platos", err)
		return
	}
	if dishes == nil {
		dishes = []models.Dish{}
	}
	utils.RespondJSON(c, http.StatusOK, dishes)
}

func (dc *DishController) GetDish(c *gin.Context) {
	dish, err := dc.Dishes.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.RespondMessage(c, http.StatusNotFound, "Plato no encontrado")
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Error al obtener el plato", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, dish)
}

func (dc *DishController) CreateDish(c *gin.Context) {
	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondInvalid(c, http.StatusBadRequest, "Error al crear el plato", err)
		return
	}

	var dish models.Dish
	req.apply(&dish)
	if err := dc.Dishes.Create(c.Request.Context(), &dish); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Error al crear el plato", err)
		return
	}

	utils.InfoLogger.Printf("Dish created: %s (%s)", dish.Name, dish.ID)
	if dc.Events != nil {
		dc.Events.MenuUpdated(dish)
	}
	utils.RespondJSON(c, http.StatusCreated, dish)
}

func (dc *DishController) UpdateDish(c *gin.Context) {
	ctx := c.Request.Context()

	dish, err := dc.Dishes.FindByID(ctx, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.RespondMessage(c, http.StatusNotFound, "Plato no encontrado")
		case errors.Is(err, repository.ErrInvalidID):
			utils.RespondInvalid(c, http.StatusBadRequest, "Error al actualizar el plato", err)
		default:
			utils.RespondError(c, http.StatusBadRequest, "Error al actualizar el plato", err)
		}
		return
	}

	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondInvalid(c, http.StatusBadRequest, "Error al actualizar el plato", err)
		return
	}
	req.apply(dish)

	if err := dc.Dishes.Update(ctx, dish); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondMessage(c, http.StatusNotFound, "Plato no encontrado")
			return
		}
		utils.RespondError(c, http.StatusBadRequest, "Error al actualizar el plato", err)
		return
	}

	if dc.Events != nil {
		dc.Events.MenuUpdated(*dish)
	}
	utils.RespondJSON(c, http.StatusOK, dish)
}

func (dc *DishController) DeleteDish(c *gin.Context) {
	id := c.Param("id")
	if err := dc.Dishes.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			utils.RespondMessage(c, http.StatusNotFound, "Plato no encontrado")
		case errors.Is(err, repository.ErrInvalidID):
			utils.RespondInvalid(c, http.StatusBadRequest, "Error al eliminar el plato", err)
		default:
			utils.RespondError(c, http.StatusBadRequest, "Error al eliminar el plato", err)
		}
		return
	}

	utils.InfoLogger.Printf("Dish deleted: %s", id)
	if dc.Events != nil {
		dc.Events.MenuDeleted(id)
	}
	utils.RespondMessage(c, http.StatusOK, "Plato eliminado")
}

func dishFilterFromQuery(c *gin.Context) repository.DishFilter {
	f := repository.DishFilter{
		Query:    strings.TrimSpace(c.Query("q")),
		Cold:     queryBool(c, "frio"),
		Vegan:    queryBool(c, "vegano"),
		Pasta:    queryBool(c, "pasta"),
		Seafood:  queryBool(c, "marisco"),
		Alcohol:  queryBool(c, "alcohol"),
		Meat:     queryBool(c, "carne"),
		Sandwich: queryBool(c, "sandwich"),
	}
	if t := strings.ToLower(c.Query("tipo")); t != "" && t != "todos" {
		f.Type = t
	}
	return f
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
