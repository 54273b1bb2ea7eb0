// Package config loads application configuration from environment
// variables, with a .env file picked up when present.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  Only the database settings
// are required; redis and rabbitmq degrade gracefully when absent.
type Config struct {
	Env       string // application environment (e.g. "dev", "prod")
	DBUser    string // database username
	DBPass    string // database password (optional)
	DBHost    string // database host address
	DBPort    string // database port number
	DBName    string // database name
	AMQPURL   string // RabbitMQ URL; empty disables event publishing
	RedisAddr string // redis host:port; empty disables the seat lock
	RedisPass string // redis password (optional)
}

// Load reads configuration from the environment.  A .env file in the
// working directory is merged in first without overriding variables
// already set.  Missing required variables cause a fatal log message.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:       getenv("APP_ENV", "dev"),
		DBUser:    must("DB_USER"),
		DBPass:    os.Getenv("DB_PASS"),
		DBHost:    must("DB_HOST"),
		DBPort:    must("DB_PORT"),
		DBName:    must("DB_NAME"),
		AMQPURL:   os.Getenv("RABBITMQ_URL"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the variable's value or the fallback when unset.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
