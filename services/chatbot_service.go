package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mi-restaurante/backend/models"
	"github.com/mi-restaurante/backend/repository"
	"github.com/mi-restaurante/backend/utils"
)

const FallbackReply = "Lo siento, no pude generar una recomendación en este momento."

var ErrEmptyMessage = errors.New("empty chat message")

// TextGenerator is the slice of the Gemini client the chatbot needs.
type TextGenerator interface {
	Configured() bool
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ChatRequest carries the customer's question and optional context.
// Dishes, when given, replace the menu loaded from the store.
type ChatRequest struct {
	Message      string
	Preferences  map[string]interface{}
	Restrictions string
	TimeOfDay    string
	Dishes       []models.Dish
}

type ChatbotService struct {
	ai     TextGenerator
	dishes repository.DishRepository
}

func NewChatbotService(ai TextGenerator, dishes repository.DishRepository) *ChatbotService {
	return &ChatbotService{ai: ai, dishes: dishes}
}

// Recommend asks the model for a menu recommendation.
func (s *ChatbotService) Recommend(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", ErrEmptyMessage
	}
	if !s.ai.Configured() {
		return "", ErrAINotConfigured
	}

	menu := req.Dishes
	if len(menu) == 0 && s.dishes != nil {
		list, err := s.dishes.List(ctx, repository.DishFilter{})
		if err != nil {
			// The model can still answer without the menu.
			utils.ErrorLogger.Warnf("Chatbot could not load menu: %v", err)
		}
		menu = list
	}

	reply, err := s.ai.GenerateText(ctx, buildChatPrompt(req, menu))
	if err != nil {
		return "", err
	}
	if reply == "" {
		return FallbackReply, nil
	}
	return reply, nil
}

func buildChatPrompt(req ChatRequest, menu []models.Dish) string {
	var b strings.Builder
	b.WriteString("Eres el asistente de un restaurante chileno. Recomienda platos de la carta ")
	b.WriteString("en español, en un tono cercano y en no más de cinco líneas. ")
	b.WriteString("Si la persona pide algo que no está en la carta, sugiere la alternativa más parecida.\n")

	if len(menu) > 0 {
		b.WriteString("\nCarta:\n")
		for i := range menu {
			b.WriteString(menuLine(&menu[i]))
			b.WriteByte('\n')
		}
	}

	if len(req.Preferences) > 0 {
		if raw, err := json.Marshal(req.Preferences); err == nil {
			fmt.Fprintf(&b, "\nPreferencias: %s\n", raw)
		}
	}
	if req.Restrictions != "" {
		fmt.Fprintf(&b, "Restricciones: %s\n", req.Restrictions)
	}
	if req.TimeOfDay != "" {
		fmt.Fprintf(&b, "Momento del día: %s\n", req.TimeOfDay)
	}

	fmt.Fprintf(&b, "\nMensaje del cliente: %q\n", req.Message)
	return b.String()
}

func menuLine(d *models.Dish) string {
	line := fmt.Sprintf("- %s (%s, %s)", d.Name, d.Type, utils.FormatCLP(d.Price))
	if tags := dishTags(d); len(tags) > 0 {
		line += " [" + strings.Join(tags, ", ") + "]"
	}
	return line
}

func dishTags(d *models.Dish) []string {
	var tags []string
	if d.IsCold {
		tags = append(tags, "frío")
	}
	if d.IsVegan {
		tags = append(tags, "vegano")
	}
	if d.IsPasta {
		tags = append(tags, "pasta")
	}
	if d.IsSeafood {
		tags = append(tags, "mariscos")
	}
	if d.HasAlcohol {
		tags = append(tags, "con alcohol")
	}
	if d.HasMeat {
		tags = append(tags, "carne")
	}
	if d.IsSandwich {
		tags = append(tags, "sándwich")
	}
	return tags
}
