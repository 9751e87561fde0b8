package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Store             string `mapstructure:"STORE"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int           `mapstructure:"REDIS_CACHE_DB"`
	RedisLockDB   int           `mapstructure:"REDIS_LOCK_DB"`
	SlotLockTTL   time.Duration `mapstructure:"SLOT_LOCK_TTL"`

	// Payments and push.
	StripeKey               string `mapstructure:"STRIPE_KEY"`
	Currency                string `mapstructure:"CURRENCY"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Cron spec for closing expired auctions.
	AuctionCloseSchedule string `mapstructure:"AUCTION_CLOSE_SCHEDULE"`

	// Appointment reminders (asynq queue on Redis).
	ReminderQueueDB     int           `mapstructure:"REMINDER_QUEUE_DB"`
	ReminderLead        time.Duration `mapstructure:"REMINDER_LEAD"`
	ReminderConcurrency int           `mapstructure:"REMINDER_CONCURRENCY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "chairbid")
	viper.SetDefault("STORE", "mongo")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_LOCK_DB", 1)
	viper.SetDefault("SLOT_LOCK_TTL", "10s")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("CURRENCY", "usd")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("AUCTION_CLOSE_SCHEDULE", "@every 1m")
	viper.SetDefault("REMINDER_QUEUE_DB", 2)
	viper.SetDefault("REMINDER_LEAD", "2h")
	viper.SetDefault("REMINDER_CONCURRENCY", 5)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UseMemoryStore reports whether repositories should be backed by process memory
// instead of MongoDB. Intended for local runs and demos.
func UseMemoryStore() bool {
	return AppConfig.Store == "memory"
}
