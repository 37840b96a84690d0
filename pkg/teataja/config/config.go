package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds server configuration, populated from TEATAJA_* environment
// variables with an optional .env file for development.
type Config struct {
	Port            string `envconfig:"port" default:"8080"`
	DBPath          string `envconfig:"db_path" default:"teataja.db"`
	JWTSecret       string `envconfig:"jwt_secret" default:"teataja-dev-secret-change-in-production"`
	TokenTTLHours   int    `envconfig:"token_ttl_hours" default:"24"`
	CORSOrigin      string `envconfig:"cors_origin" default:"http://localhost:5173"`
	BootstrapEmail  string `envconfig:"bootstrap_email" default:"juht@teataja.local"`
	BootstrapName   string `envconfig:"bootstrap_name" default:"Programmijuht"`
	BootstrapSecret string `envconfig:"bootstrap_password" default:"muuda-mind-123"`
}

// Load reads configuration from the environment. A missing .env file is fine
// outside release mode.
func Load() (*Config, error) {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}
	}

	c := &Config{}
	if err := envconfig.Process("teataja", c); err != nil {
		return nil, err
	}
	return c, nil
}
