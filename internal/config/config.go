package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                      string
	VerifyToken               string
	WhatsAppToken             string
	WhatsAppBusinessAccountID string
	GraphAPIVersion           string
	DBDriver                  string // postgres or sqlite
	DBPath                    string // sqlite file path
	DBHost                    string
	DBPort                    string
	DBUser                    string
	DBPassword                string
	DBName                    string
	DBSSLMode                 string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:                      getEnv("PORT", "8080"),
		VerifyToken:               getEnv("VERIFY_TOKEN", ""),
		WhatsAppToken:             getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppBusinessAccountID: getEnv("WABA_ID", ""),
		GraphAPIVersion:           getEnv("GRAPH_API_VERSION", "v19.0"),
		DBDriver:                  getEnv("DB_DRIVER", "sqlite"),
		DBPath:                    getEnv("DB_PATH", "./notificacondo.db"),
		DBHost:                    getEnv("DB_HOST", "localhost"),
		DBPort:                    getEnv("DB_PORT", "5432"),
		DBUser:                    getEnv("DB_USER", "postgres"),
		DBPassword:                getEnv("DB_PASSWORD", ""),
		DBName:                    getEnv("DB_NAME", "notificacondo"),
		DBSSLMode:                 getEnv("DB_SSLMODE", "disable"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
