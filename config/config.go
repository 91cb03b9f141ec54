package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// PublicBaseURL is the externally reachable address of this server,
	// used to build the payment callback URL handed to the provider.
	PublicBaseURL string `mapstructure:"PUBLIC_BASE_URL"`

	// MongoDB connection string for completed bookings.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Session storage: "memory" (default) or "redis".
	SessionStore  string `mapstructure:"SESSION_STORE"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisSession  int    `mapstructure:"REDIS_SESSION_DB"`

	// Gemini API key for the RAG responder, and the folder holding the
	// museum knowledge-base documents.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	DataDir      string `mapstructure:"DATA_DIR"`

	// Openrouteservice key for geocoding and driving distance.
	ORSAPIKey  string `mapstructure:"ORS_API_KEY"`
	ORSBaseURL string `mapstructure:"ORS_BASE_URL"`

	// Razorpay payment-link credentials.
	RazorpayKeyID  string `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpaySecret string `mapstructure:"RAZORPAY_SECRET"`

	// SMTP credentials for booking confirmation email.
	EmailUsername string `mapstructure:"EMAIL_USERNAME"`
	EmailPassword string `mapstructure:"EMAIL_PASSWORD"`
	SMTPHost      string `mapstructure:"SMTP_HOST"`
	SMTPPort      int    `mapstructure:"SMTP_PORT"`

	// Booking constants.
	TicketPriceINR int     `mapstructure:"TICKET_PRICE_INR"`
	MuseumLon      float64 `mapstructure:"MUSEUM_LON"`
	MuseumLat      float64 `mapstructure:"MUSEUM_LAT"`

	// ConfirmReprompt controls what happens when a caller at the confirm
	// step types anything other than "yes": false falls through to the
	// general Q&A responder, true re-prompts for confirmation.
	ConfirmReprompt bool `mapstructure:"CONFIRM_REPROMPT"`

	// FrontendDir optionally points at a prebuilt frontend bundle to serve.
	FrontendDir string `mapstructure:"FRONTEND_DIR"`
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("SESSION_STORE", "memory")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("ORS_BASE_URL", "https://api.openrouteservice.org")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("TICKET_PRICE_INR", 50)
	viper.SetDefault("MUSEUM_LON", 80.2574)
	viper.SetDefault("MUSEUM_LAT", 13.0674)
	viper.SetDefault("CONFIRM_REPROMPT", false)
	viper.SetDefault("FRONTEND_DIR", "")

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
