package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverAuto      = ""
	StoreDriverPostgres  = "postgres"
	StoreDriverRedis     = "redis"
	StoreDriverFirestore = "firestore"
	StoreDriverMemory    = "memory"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	SiteURL  string
	// Origins allowed to call the JSON API from a browser
	CORSAllowedOrigins []string

	// Document store
	StoreDriver    string
	DBUrl          string
	RedisURL       string
	RedisPassword  string
	RedisKeyPrefix string
	// Firebase / Firestore credentials
	FirebaseProjectID       string
	FirebaseClientEmail     string
	FirebasePrivateKey      string
	FirebaseCredentialsFile string

	// Admin access gate
	AdminPathPrefix       string
	AdminAccessCode       string
	AdminIPAllowlist      []string
	AdminKeyMode          string // "minute" or "signed"
	AdminSigningSecret    string
	AdminSignedKeyTTLSecs int

	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	ContactEmailTo string
}

func LoadConfig() (*Config, error) {
	// Local development only; production injects the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		SiteURL:            strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", nil),

		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreDriverAuto)),
		DBUrl:          getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "portfolio:"),

		FirebaseProjectID:   getEnv("FIREBASE_PROJECT_ID", getEnv("NEXT_PUBLIC_FIREBASE_PROJECT_ID", "")),
		FirebaseClientEmail: getEnv("FIREBASE_CLIENT_EMAIL", ""),
		// Keys pasted into .env files usually carry literal "\n" sequences
		FirebasePrivateKey:      strings.ReplaceAll(getEnv("FIREBASE_PRIVATE_KEY", ""), `\n`, "\n"),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", getEnv("GOOGLE_APPLICATION_CREDENTIALS", "")),

		AdminPathPrefix:       getEnv("ADMIN_PATH_PREFIX", "/admin"),
		AdminAccessCode:       getEnv("ADMIN_ACCESS_CODE", "1112"),
		AdminIPAllowlist:      getEnvList("ADMIN_IP_ALLOWLIST", []string{"127.0.0.1", "::1"}),
		AdminKeyMode:          strings.ToLower(getEnv("ADMIN_KEY_MODE", "minute")),
		AdminSigningSecret:    getEnv("ADMIN_SIGNING_SECRET", ""),
		AdminSignedKeyTTLSecs: getEnvInt("ADMIN_SIGNED_KEY_TTL_SECONDS", 300),

		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", ""),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
	}

	if cfg.AdminKeyMode == "signed" && cfg.AdminSigningSecret == "" {
		log.Println("WARNING: ADMIN_KEY_MODE=signed without ADMIN_SIGNING_SECRET, falling back to minute keys")
		cfg.AdminKeyMode = "minute"
	}

	if cfg.StoreDriver != StoreDriverAuto && cfg.ResolveStoreDriver() == StoreDriverAuto {
		log.Printf("WARNING: STORE_DRIVER=%s without its credentials, falling back to no store", cfg.StoreDriver)
	}
	if cfg.ResolveStoreDriver() == StoreDriverAuto {
		log.Println("WARNING: no document store configured. Reads return empty content and writes are rejected.")
	}

	return cfg, nil
}

// HasPostgres reports whether a Postgres connection string is set.
func (c *Config) HasPostgres() bool { return c.DBUrl != "" }

// HasRedis reports whether a Redis URL is set.
func (c *Config) HasRedis() bool { return c.RedisURL != "" }

// HasFirestore reports whether server-side Firestore credentials are present.
func (c *Config) HasFirestore() bool {
	if c.FirebaseProjectID == "" {
		return false
	}
	return c.FirebaseCredentialsFile != "" || (c.FirebaseClientEmail != "" && c.FirebasePrivateKey != "")
}

// HasStoreCredentials reports whether any persistent store can be built.
func (c *Config) HasStoreCredentials() bool {
	return c.HasPostgres() || c.HasRedis() || c.HasFirestore()
}

// ResolveStoreDriver picks the driver to use. An explicit STORE_DRIVER wins
// when its credentials are present; otherwise the first configured backend is
// used. Empty means unconfigured.
func (c *Config) ResolveStoreDriver() string {
	switch c.StoreDriver {
	case StoreDriverAuto:
	case StoreDriverPostgres:
		if !c.HasPostgres() {
			return StoreDriverAuto
		}
		return c.StoreDriver
	case StoreDriverRedis:
		if !c.HasRedis() {
			return StoreDriverAuto
		}
		return c.StoreDriver
	case StoreDriverFirestore:
		if !c.HasFirestore() {
			return StoreDriverAuto
		}
		return c.StoreDriver
	default:
		return c.StoreDriver
	}
	switch {
	case c.HasPostgres():
		return StoreDriverPostgres
	case c.HasRedis():
		return StoreDriverRedis
	case c.HasFirestore():
		return StoreDriverFirestore
	}
	return StoreDriverAuto
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
