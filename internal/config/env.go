package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a local .env file into the process environment if one
// is present; its absence (the normal case outside local development) is
// not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file found, using process environment")
	}
}

// ServicePort returns the port the HTTP server should bind to.
func ServicePort() string {
	return getEnv("SERVICE_PORT", "8082")
}
