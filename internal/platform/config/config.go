package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Session signing
	SessionSecret string
	SessionExpiry time.Duration // fixed absolute lifetime, no sliding renewal
	SessionIssuer string

	// Opaque token lifetimes
	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration

	// External OAuth provider
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	// Outbound email
	EmailHost string
	EmailPort int
	EmailUser string
	EmailPass string
	EmailFrom string

	// Image host
	CloudinaryURL    string
	CloudinaryFolder string

	AppBaseURL      string // public URL used in email links
	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SESSION_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("SESSION_EXPIRY_DURATION", "720h") // 30 days
	viper.SetDefault("SESSION_ISSUER", "ibs-backend")
	viper.SetDefault("VERIFICATION_TOKEN_TTL", "24h")
	viper.SetDefault("RESET_TOKEN_TTL", "1h")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("EMAIL_HOST", "")
	viper.SetDefault("EMAIL_PORT", 465)
	viper.SetDefault("EMAIL_USER", "")
	viper.SetDefault("EMAIL_PASS", "")
	viper.SetDefault("EMAIL_FROM", "IBS London <noreply@ibs.example>")
	viper.SetDefault("CLOUDINARY_URL", "")
	viper.SetDefault("CLOUDINARY_FOLDER", "ibs-london")
	viper.SetDefault("APP_BASE_URL", "http://localhost:3000")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.SessionSecret = viper.GetString("SESSION_SECRET")
	if cfg.SessionSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: SESSION_SECRET not set. Using default insecure key.")
	}

	sessionExpiryStr := viper.GetString("SESSION_EXPIRY_DURATION")
	sessionExpiry, err := time.ParseDuration(sessionExpiryStr)
	if err != nil {
		sessionExpiry = 30 * 24 * time.Hour
		log.Printf("Warning: Invalid value for SESSION_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", sessionExpiryStr, sessionExpiry)
	}
	cfg.SessionExpiry = sessionExpiry
	cfg.SessionIssuer = viper.GetString("SESSION_ISSUER")

	verificationTTLStr := viper.GetString("VERIFICATION_TOKEN_TTL")
	verificationTTL, err := time.ParseDuration(verificationTTLStr)
	if err != nil {
		verificationTTL = 24 * time.Hour
		log.Printf("Warning: Invalid value for VERIFICATION_TOKEN_TTL ('%s'). Defaulting to %s.\n", verificationTTLStr, verificationTTL)
	}
	cfg.VerificationTokenTTL = verificationTTL

	resetTTLStr := viper.GetString("RESET_TOKEN_TTL")
	resetTTL, err := time.ParseDuration(resetTTLStr)
	if err != nil {
		resetTTL = time.Hour
		log.Printf("Warning: Invalid value for RESET_TOKEN_TTL ('%s'). Defaulting to %s.\n", resetTTLStr, resetTTL)
	}
	cfg.ResetTokenTTL = resetTTL

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}
	if cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_SECRET not set. Google sign-in will not function.")
	}

	cfg.EmailHost = viper.GetString("EMAIL_HOST")
	cfg.EmailPort = viper.GetInt("EMAIL_PORT")
	cfg.EmailUser = viper.GetString("EMAIL_USER")
	cfg.EmailPass = viper.GetString("EMAIL_PASS")
	cfg.EmailFrom = viper.GetString("EMAIL_FROM")
	if cfg.EmailHost == "" {
		log.Println("Warning: EMAIL_HOST not set. Outbound email will not function.")
	}

	cfg.CloudinaryURL = viper.GetString("CLOUDINARY_URL")
	cfg.CloudinaryFolder = viper.GetString("CLOUDINARY_FOLDER")
	if cfg.CloudinaryURL == "" {
		log.Println("Warning: CLOUDINARY_URL not set. Image uploads will not function.")
	}

	cfg.AppBaseURL = viper.GetString("APP_BASE_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}
