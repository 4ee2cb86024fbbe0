package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs from the environment. It is
// built once in main and passed down explicitly.
type Config struct {
	Env         string
	Port        string
	MongoURI    string
	MongoDB     string
	JWTSecret   string
	JWTExpire   time.Duration
	CORSOrigins []string
	TextbeltKey string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	return Config{
		Env:         getEnv("APP_ENV", "dev"),
		Port:        getEnv("API_PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DATABASE", "doctor_appointments"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTExpire:   getEnvDuration("JWT_EXPIRE", 24*time.Hour),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		TextbeltKey: os.Getenv("TEXTBELT_API_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
