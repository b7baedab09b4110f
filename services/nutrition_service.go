package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mi-restaurante/backend/utils"
)

var ErrEmptyQuery = errors.New("empty nutrition query")

// UpstreamError is returned when a third-party API answers with a non-2xx
// status.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

// dishTranslations maps menu names to the English wording the nutrition API
// understands. Keys are lowercase.
var dishTranslations = map[string]string{
	"camarones apanados":           "breaded shrimp",
	"ostiones a la parmesana":      "scallops parmesan",
	"ensalada césar":               "caesar salad",
	"ensalada caprese":             "caprese salad",
	"crema de zapallo":             "pumpkin soup",
	"locos":                        "abalone",
	"falafel":                      "falafel",
	"gyosas":                       "dumplings",
	"hamburguesa clásica":          "beef burger",
	"barros luco":                  "beef cheese sandwich",
	"bistec a lo pobre":            "steak with fries",
	"milanesa de pollo napolitana": "chicken milanesa napolitana",
	"bagel de salmón ahumado":      "smoked salmon bagel",
}

// TranslateDish returns the English query for a lowercase dish name, or the
// name itself when no translation is known.
func TranslateDish(name string) string {
	if en, ok := dishTranslations[name]; ok {
		return en
	}
	return name
}

// Macros are nutrient amounts. Per-ingredient base values refer to 100 g.
type Macros struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
}

type IngredientNutrition struct {
	Name    string  `json:"name"`
	WeightG float64 `json:"weight_g"`
	Macros
}

// DishNutrition is the AI-assisted breakdown of a dish.
type DishNutrition struct {
	OriginalName string                `json:"nombre_original"`
	Translation  string                `json:"traduccion"`
	Ingredients  []IngredientNutrition `json:"ingredientes"`
	Total        Macros                `json:"total"`
}

type ninjasItem struct {
	Name                string  `json:"name"`
	Calories            float64 `json:"calories"`
	ProteinG            float64 `json:"protein_g"`
	FatTotalG           float64 `json:"fat_total_g"`
	CarbohydratesTotalG float64 `json:"carbohydrates_total_g"`
}

type ninjasResponse struct {
	Items []ninjasItem `json:"items"`
}

type dishEstimate struct {
	EnglishName           string  `json:"english_name"`
	EstimatedTotalWeightG float64 `json:"estimated_total_weight_g"`
	Ingredients           []struct {
		NameEN           string  `json:"name_en"`
		EstimatedWeightG float64 `json:"estimated_weight_g"`
	} `json:"ingredients"`
}

// JSONGenerator is the slice of the Gemini client the nutrition pipeline
// needs.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, out interface{}) error
}

// NutritionService answers nutrition lookups through CalorieNinjas, with
// Gemini estimating ingredient breakdowns. All lookups are memoised for the
// lifetime of the process.
type NutritionService struct {
	ai         JSONGenerator
	apiKey     string
	baseURL    string
	httpClient *http.Client

	mu          sync.RWMutex
	dishes      map[string]json.RawMessage
	ingredients map[string]*Macros // nil value: the API knows nothing about it
	estimates   map[string]*DishNutrition
}

func NewNutritionService(ai JSONGenerator, apiKey, baseURL string) *NutritionService {
	return &NutritionService{
		ai:          ai,
		apiKey:      apiKey,
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		dishes:      make(map[string]json.RawMessage),
		ingredients: make(map[string]*Macros),
		estimates:   make(map[string]*DishNutrition),
	}
}

// Lookup returns the raw CalorieNinjas answer for a dish name.
func (s *NutritionService) Lookup(ctx context.Context, query string) (json.RawMessage, error) {
	name := strings.ToLower(strings.TrimSpace(query))
	if name == "" {
		return nil, ErrEmptyQuery
	}

	s.mu.RLock()
	cached, ok := s.dishes[name]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	body, err := s.fetch(ctx, TranslateDish(name))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("calorieninjas returned invalid json")
	}

	s.mu.Lock()
	s.dishes[name] = body
	s.mu.Unlock()
	return body, nil
}

// Estimate asks the model for the ingredients of a dish and sums their
// scaled macros.
func (s *NutritionService) Estimate(ctx context.Context, dish string) (*DishNutrition, error) {
	if strings.TrimSpace(dish) == "" {
		return nil, ErrEmptyQuery
	}

	s.mu.RLock()
	cached, ok := s.estimates[dish]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var est dishEstimate
	if err := s.ai.GenerateJSON(ctx, estimatePrompt(dish), &est); err != nil {
		return nil, fmt.Errorf("estimate ingredients: %w", err)
	}

	result := &DishNutrition{
		OriginalName: dish,
		Translation:  est.EnglishName,
		Ingredients:  make([]IngredientNutrition, 0, len(est.Ingredients)),
	}

	var total Macros
	for _, ing := range est.Ingredients {
		key := strings.ToLower(strings.TrimSpace(ing.NameEN))
		weight := ing.EstimatedWeightG
		if key == "" || weight <= 0 {
			continue
		}

		base, err := s.ingredientMacros(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", key, err)
		}

		// The cache is keyed by the normalised name; the response keeps the
		// model's spelling.
		line := IngredientNutrition{Name: ing.NameEN, WeightG: weight}
		if base != nil {
			factor := weight / 100
			line.Macros = Macros{
				Calories: base.Calories * factor,
				ProteinG: base.ProteinG * factor,
				FatG:     base.FatG * factor,
				CarbsG:   base.CarbsG * factor,
			}
		}
		result.Ingredients = append(result.Ingredients, line)

		total.Calories += line.Calories
		total.ProteinG += line.ProteinG
		total.FatG += line.FatG
		total.CarbsG += line.CarbsG
	}

	result.Total = Macros{
		Calories: math.Round(total.Calories),
		ProteinG: round1(total.ProteinG),
		FatG:     round1(total.FatG),
		CarbsG:   round1(total.CarbsG),
	}

	s.mu.Lock()
	s.estimates[dish] = result
	s.mu.Unlock()
	return result, nil
}

func (s *NutritionService) ingredientMacros(ctx context.Context, name string) (*Macros, error) {
	s.mu.RLock()
	cached, ok := s.ingredients[name]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	body, err := s.fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	var decoded ninjasResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	var base *Macros
	if len(decoded.Items) > 0 {
		item := decoded.Items[0]
		base = &Macros{
			Calories: item.Calories,
			ProteinG: item.ProteinG,
			FatG:     item.FatTotalG,
			CarbsG:   item.CarbohydratesTotalG,
		}
	} else {
		utils.InfoLogger.Debugf("No nutrition data for ingredient %q", name)
	}

	s.mu.Lock()
	s.ingredients[name] = base
	s.mu.Unlock()
	return base, nil
}

func (s *NutritionService) fetch(ctx context.Context, query string) ([]byte, error) {
	endpoint := s.baseURL + "?query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Service: "calorieninjas", StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func estimatePrompt(dish string) string {
	return fmt.Sprintf(`Analiza el plato "%s" de un restaurante chileno.
Responde solo con JSON, sin texto adicional, con esta forma:
{"english_name": string, "estimated_total_weight_g": number,
 "ingredients": [{"name_en": string, "estimated_weight_g": number}]}
Usa nombres de ingredientes simples en inglés y pesos de una porción típica.`, dish)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
