// Package config reads runtime settings from environment variables.
// The server wants the full Config; auxiliary commands that only touch
// the database load the DB section on its own through LoadDB.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// DBConfig is the database section of the configuration.
type DBConfig struct {
	User     string
	Pass     string
	Host     string
	Port     string
	Name     string
	MaxOpen  int
	MaxIdle  int
	ConnLife time.Duration
}

// Config holds everything the HTTP server needs to start.
type Config struct {
	Env          string // "dev" or "prod"
	Port         string // HTTP listen port
	DB           DBConfig
	JWTSecret    string // HMAC secret for access tokens
	AccessTTLMin int    // access token lifetime in minutes
	BcryptCost   int    // bcrypt cost for password hashing
}

// Load reads the full server configuration. Missing required variables
// abort startup with a fatal log line.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DB:           LoadDB(),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   BcryptCost(),
	}
}

// LoadDB reads only the database variables. DB_USER, DB_HOST, DB_PORT
// and DB_NAME are required; DB_PASS may be empty and the pool knobs
// carry defaults.
func LoadDB() DBConfig {
	return DBConfig{
		User:     must("DB_USER"),
		Pass:     os.Getenv("DB_PASS"),
		Host:     must("DB_HOST"),
		Port:     must("DB_PORT"),
		Name:     must("DB_NAME"),
		MaxOpen:  envInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdle:  envInt("DB_MAX_IDLE_CONNS", 5),
		ConnLife: envDur("DB_CONN_MAX_LIFETIME", 15*time.Minute),
	}
}

// BcryptCost reads BCRYPT_COST, defaulting to 12.
func BcryptCost() int {
	return envInt("BCRYPT_COST", 12)
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is must() plus an integer conversion.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
