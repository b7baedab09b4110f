package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mi-restaurante/backend/config"
	"github.com/mi-restaurante/backend/database"
	"github.com/mi-restaurante/backend/kds"
	"github.com/mi-restaurante/backend/repository"
	"github.com/mi-restaurante/backend/router"
	"github.com/mi-restaurante/backend/services"
	"github.com/mi-restaurante/backend/utils"
)

// storage bundles the repositories of the selected backend.
type storage struct {
	dishes repository.DishRepository
	orders repository.OrderRepository
	users  repository.UserRepository
	db     repository.Pinger
	close  func()
}

func main() {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Warn("Warning: .env file not found")
	}
	utils.InitLogger(os.Getenv("GIN_MODE") != gin.ReleaseMode)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open storage: %v", err)
	}
	defer store.close()

	if cfg.SeedDishes {
		if _, err := database.SeedDishes(ctx, store.dishes); err != nil {
			utils.ErrorLogger.Errorf("Seeding dishes failed: %v", err)
		}
	}

	if cfg.GoogleClientID == "" {
		utils.InfoLogger.Warn("GOOGLE_CLIENT_ID not set, Google tokens are accepted for any audience")
	}
	if cfg.GeminiAPIKey == "" {
		utils.InfoLogger.Warn("GEMINI_API_KEY not set, chatbot and AI nutrition are disabled")
	}

	gemini, err := services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to init Gemini: %v", err)
	}

	r := router.SetupRouter(router.Dependencies{
		Config: cfg,
		Tokens: utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiration),
		Dishes: store.dishes,
		Orders: store.orders,
		Users:  store.users,
		DB:     store.db,
		Google: services.NewGoogleVerifier(cfg.GoogleClientID),
		Gemini: gemini,
		Hub:    kds.NewHub(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s (storage: %s, users: %s)", cfg.Port, cfg.DBDriver, cfg.UserStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Server shutdown: %v", err)
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	var store *storage
	var err error
	if cfg.DBDriver == config.DriverMongo {
		store, err = openMongo(ctx, cfg)
	} else {
		store, err = openSQL(cfg)
	}
	if err != nil {
		return nil, err
	}

	if cfg.UserStore == config.UserStoreFile {
		store.users = repository.NewFileUserRepository(cfg.UsersFile)
	}
	return store, nil
}

func openMongo(ctx context.Context, cfg *config.Config) (*storage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := config.InitMongo(connectCtx, cfg)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Connected to MongoDB database %q", cfg.MongoDatabase)

	db := client.Database(cfg.MongoDatabase)
	if err := database.EnsureMongoIndexes(connectCtx, db); err != nil {
		utils.ErrorLogger.Errorf("Creating indexes: %v", err)
	}

	return &storage{
		dishes: repository.NewMongoDishRepository(db.Collection(database.DishesCollection)),
		orders: repository.NewMongoOrderRepository(db.Collection(database.OrdersCollection)),
		users:  repository.NewMongoUserRepository(db.Collection(database.UsersCollection)),
		db:     repository.MongoPinger{Client: client},
		close: func() {
			if err := client.Disconnect(context.Background()); err != nil {
				utils.ErrorLogger.Errorf("Disconnecting MongoDB: %v", err)
			}
		},
	}, nil
}

func openSQL(cfg *config.Config) (*storage, error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db, cfg.UserStore == config.UserStoreDB); err != nil {
		return nil, err
	}

	return &storage{
		dishes: repository.NewGormDishRepository(db),
		orders: repository.NewGormOrderRepository(db),
		users:  repository.NewGormUserRepository(db),
		db:     repository.GormPinger{DB: db},
		close: func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		},
	}, nil
}
