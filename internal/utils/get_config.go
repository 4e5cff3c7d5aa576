package utils

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Application environment (development or production)
	Env string `yaml:"ENV"`

	// Recipe importer
	ImportUserAgent string `yaml:"IMPORT_USER_AGENT"`
}

var config Config

// LoadConfig reads config.yaml, after letting a local .env file seed the
// process environment. Environment variables win over file values.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %s\n", err)
	}

	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	if config.Env != "" && os.Getenv("ENV") == "" {
		os.Setenv("ENV", config.Env)
	}
}

func GetConfig(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "ENV":
		return config.Env
	case "IMPORT_USER_AGENT":
		return config.ImportUserAgent
	default:
		return ""
	}
}
