package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string

	SquareAccessToken string
	SquareEnvironment string
	SalesTaxAPIKey    string

	RedisAddr string
}

func LoadConfig() *Config {
	// Load .env for local development; deployed environments supply
	// real environment variables and have no .env file.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("error loading .env file:", err)
		}
	}

	return &Config{
		MongoURI:          getEnv("MONGO_URI", ""),
		MongoDB:           getEnv("MONGO_DB", "wilpower"),
		Port:              getEnv("PORT", "8080"),
		SquareAccessToken: getEnv("SQUARE_ACCESS_TOKEN", ""),
		SquareEnvironment: getEnv("SQUARE_ENVIRONMENT", "sandbox"),
		SalesTaxAPIKey:    getEnv("SALES_TAX_API_KEY", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
