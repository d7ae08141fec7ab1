package server

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the process configuration.
type Config struct {
	Port          string
	TableSeats    int
	StartingChips int
	StaticDir     string
}

// LoadConfig reads a .env file when present, then the environment.
// Defaults match the reference deployment: port 3000, 6 seats, 1000 chips.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	cfg := Config{
		Port:          "3000",
		TableSeats:    6,
		StartingChips: 1000,
		StaticDir:     os.Getenv("STATIC_DIR"),
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if n := envInt("TABLE_SEATS"); n > 0 {
		cfg.TableSeats = n
	}
	if n := envInt("STARTING_CHIPS"); n > 0 {
		cfg.StartingChips = n
	}
	return cfg
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", key, v, err)
		return 0
	}
	return n
}
