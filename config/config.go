package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mi-restaurante/backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultJWTSecret = "clave-secreta-unsafe"

// Storage drivers for dishes and orders.
const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// User stores.
const (
	UserStoreFile = "file"
	UserStoreDB   = "db"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver      string
	MongoURI      string
	MongoDatabase string
	DBDSN         string

	UserStore string
	UsersFile string

	JWTSecret     string
	JWTExpiration time.Duration

	GoogleClientID string

	GeminiAPIKey string
	GeminiModel  string

	CalorieNinjasKey string
	CalorieNinjasURL string

	CORSOrigins []string
	SeedDishes  bool

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the configuration from the environment. The caller is expected
// to have loaded .env beforehand.
func Load() *Config {
	cfg := &Config{
		Port:    getEnv("PORT", "4000"),
		GinMode: os.Getenv("GIN_MODE"),

		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", DriverMongo)),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "restaurante"),
		DBDSN:         getEnv("DB_DSN", "restaurante.db"),

		UserStore: strings.ToLower(getEnv("USER_STORE", UserStoreFile)),
		UsersFile: getEnv("USERS_FILE", "users.json"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiration: time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 2)) * time.Hour,

		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		CalorieNinjasKey: os.Getenv("CALORIE_NINJAS_KEY"),
		CalorieNinjasURL: getEnv("CALORIE_NINJAS_URL", "https://api.calorieninjas.com/v1/nutrition"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SeedDishes:  getEnvBool("SEED_DISHES", false),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),
	}

	if cfg.JWTSecret == "" {
		utils.InfoLogger.Warn("JWT_SECRET not set, using the development default")
		cfg.JWTSecret = defaultJWTSecret
	}
	return cfg
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMongo, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	switch c.UserStore {
	case UserStoreFile, UserStoreDB:
	default:
		return fmt.Errorf("unknown USER_STORE %q", c.UserStore)
	}
	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be positive")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS lists no origins")
	}
	return nil
}

// InitDB opens the SQL database selected by DBDriver.
func InitDB(cfg *Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
	switch cfg.DBDriver {
	case DriverMySQL:
		return gorm.Open(mysql.Open(cfg.DBDSN), gormCfg)
	case DriverSQLite:
		return gorm.Open(sqlite.Open(cfg.DBDSN), gormCfg)
	default:
		return nil, fmt.Errorf("InitDB: driver %q is not a SQL driver", cfg.DBDriver)
	}
}

// InitMongo connects to MongoDB and pings the deployment.
func InitMongo(ctx context.Context, cfg *Config) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
