package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/models"
	"github.com/mi-restaurante/backend/services"
	"github.com/mi-restaurante/backend/utils"
)

type ChatbotController struct {
	Chatbot *services.ChatbotService
}

func NewChatbotController(chatbot *services.ChatbotService) *ChatbotController {
	return &ChatbotController{Chatbot: chatbot}
}

// The menu widget posts {message, ...}; the recommender page posts
// {mensaje, platos}. Both land here.
type chatRequest struct {
	Message      string                 `json:"message"`
	Mensaje      string                 `json:"mensaje"`
	Preferences  map[string]interface{} `json:"preferencias"`
	Restrictions string                 `json:"restricciones"`
	TimeOfDay    string                 `json:"hora"`
	Dishes       []models.Dish          `json:"platos"`
}

func (cc *ChatbotController) Chat(c *gin.Context) {
	var req chatRequest
	_ = c.ShouldBindJSON(&req)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = strings.TrimSpace(req.Mensaje)
	}
	if message == "" {
		utils.RespondMessage(c, http.StatusBadRequest, "Falta message en el body")
		return
	}

	reply, err := cc.Chatbot.Recommend(c.Request.Context(), services.ChatRequest{
		Message:      message,
		Preferences:  req.Preferences,
		Restrictions: req.Restrictions,
		TimeOfDay:    req.TimeOfDay,
		Dishes:       req.Dishes,
	})
	if err != nil {
		if errors.Is(err, services.ErrAINotConfigured) {
			utils.RespondError(c, http.StatusInternalServerError, "Falta configuración de IA", err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, "Error consultando IA", err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, gin.H{"respuesta": reply})
}
