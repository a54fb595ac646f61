package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	Env       string
	DBPath    string
	AdminUser string
	AdminPass string
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:      GetEnv("PORT", "3000"),
		Env:       GetEnv("ENV", "development"),
		DBPath:    GetEnv("DB_PATH", "./data/noteboard.db"),
		AdminUser: GetEnv("ADMIN_USER", ""),
		AdminPass: GetEnv("ADMIN_PASS", ""),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
