// Package config loads process configuration: environment variables and the
// location taxonomy file.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file when present. Missing files are not an error;
// deployed environments set real environment variables instead.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v. Relying on system environment variables.", err)
	}
}

// Getenv returns the value of key, or fallback when unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
