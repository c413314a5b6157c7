package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/customeros/notestack/internal/logger"
	"github.com/customeros/notestack/internal/tracing"
)

type Config struct {
	AppConfig               *AppConfig
	Logger                  *logger.Config
	Tracing                 *tracing.JaegerConfig
	NotestackDatabaseConfig *NotestackDatabaseConfig
	ImageStorageConfig      *ImageStorageConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:               &AppConfig{},
		Logger:                  &logger.Config{},
		Tracing:                 &tracing.JaegerConfig{},
		NotestackDatabaseConfig: &NotestackDatabaseConfig{},
		ImageStorageConfig:      &ImageStorageConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading notestack config: %v", err)
	}

	return config, nil
}
