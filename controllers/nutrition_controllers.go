package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/services"
	"github.com/mi-restaurante/backend/utils"
)

type NutritionController struct {
	Nutrition *services.NutritionService
}

func NewNutritionController(nutrition *services.NutritionService) *NutritionController {
	return &NutritionController{Nutrition: nutrition}
}

// GetNutrition proxies a dish lookup to CalorieNinjas and returns its body.
func (nc *NutritionController) GetNutrition(c *gin.Context) {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		utils.RespondMessage(c, http.StatusBadRequest, "Falta el parámetro q")
		return
	}

	body, err := nc.Nutrition.Lookup(c.Request.Context(), q)
	if err != nil {
		var upstream *services.UpstreamError
		if errors.As(err, &upstream) {
			utils.RespondError(c, http.StatusInternalServerError, "Error consultando API externa", err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Timeout o error de conexión con CalorieNinjas", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetAINutrition returns the ingredient-level estimate for a dish.
func (nc *NutritionController) GetAINutrition(c *gin.Context) {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		utils.RespondMessage(c, http.StatusBadRequest, "Falta parámetro q")
		return
	}

	result, err := nc.Nutrition.Estimate(c.Request.Context(), q)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Error procesando IA o nutrición", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, result)
}
