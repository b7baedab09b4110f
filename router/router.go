package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mi-restaurante/backend/config"
	"github.com/mi-restaurante/backend/controllers"
	"github.com/mi-restaurante/backend/kds"
	"github.com/mi-restaurante/backend/middlewares"
	"github.com/mi-restaurante/backend/repository"
	"github.com/mi-restaurante/backend/services"
	"github.com/mi-restaurante/backend/utils"
	"golang.org/x/time/rate"
)

// Dependencies is everything the HTTP layer needs from main.
type Dependencies struct {
	Config *config.Config
	Tokens *utils.TokenManager

	Dishes repository.DishRepository
	Orders repository.OrderRepository
	Users  repository.UserRepository
	DB     repository.Pinger

	Google services.GoogleVerifier
	Gemini *services.GeminiService
	Hub    *kds.Hub
}

func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if err := controllers.RegisterValidators(); err != nil {
		utils.ErrorLogger.Errorf("Registering validators: %v", err)
	}

	hub := deps.Hub
	if hub == nil {
		hub = kds.NewHub()
	}

	authService := services.NewAuthService(deps.Users, deps.Tokens, deps.Google)
	orderService := services.NewOrderService(deps.Dishes, deps.Orders, hub)
	chatbotService := services.NewChatbotService(deps.Gemini, deps.Dishes)
	nutritionService := services.NewNutritionService(deps.Gemini, cfg.CalorieNinjasKey, cfg.CalorieNinjasURL)

	healthController := controllers.NewHealthController(deps.DB, cfg.DBDriver)
	userController := controllers.NewUserController(authService)
	dishController := controllers.NewDishController(deps.Dishes, hub)
	orderController := controllers.NewOrderController(orderService)
	chatbotController := controllers.NewChatbotController(chatbotService)
	nutritionController := controllers.NewNutritionController(nutritionService)
	kdsController := controllers.NewKDSController(hub, cfg.CORSOrigins)

	authRequired := middlewares.AuthMiddleware(deps.Tokens)

	r := gin.New()
	r.Use(middlewares.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigins))

	// Rate limiting is off when RATE_LIMIT_RPS is 0.
	authLimit := func(c *gin.Context) { c.Next() }
	if cfg.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst).RateLimit())
		authLimit = middlewares.NewStrictRateLimiter().RateLimit()
	}

	r.GET("/ping", healthController.Ping)
	r.GET("/health", healthController.Health)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authLimit, userController.Register)
		auth.POST("/login", authLimit, userController.Login)
		auth.POST("/google", authLimit, userController.GoogleLogin)
		auth.GET("/profile", authRequired, userController.Profile)

		platos := api.Group("/platos")
		platos.GET("", dishController.GetAllDishes)
		platos.GET("/:id", dishController.GetDish)
		platos.POST("", authRequired, dishController.CreateDish)
		platos.PUT("/:id", authRequired, dishController.UpdateDish)
		platos.DELETE("/:id", authRequired, dishController.DeleteDish)

		pedidos := api.Group("/pedidos")
		pedidos.POST("", middlewares.OptionalAuth(deps.Tokens), orderController.CreateOrder)
		pedidos.GET("", orderController.GetOrders)
		pedidos.GET("/mios", authRequired, orderController.GetMyOrders)
		pedidos.GET("/:id", orderController.GetOrder)

		api.POST("/chatbot", chatbotController.Chat)
		api.POST("/chat-recomendador", chatbotController.Chat)

		api.GET("/nutricion", nutritionController.GetNutrition)
		api.GET("/ia-nutricion", nutritionController.GetAINutrition)
	}

	r.GET("/ws/pedidos", middlewares.WebSocketAuthMiddleware(deps.Tokens), kdsController.KDSHandler)

	return r
}
