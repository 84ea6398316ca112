package config

import (
	"os"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	PostgresURL     string
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
// An empty GATEHOUSE_POSTGRES_URL selects the in-memory stores, which keeps
// local development free of external services.
func FromEnv() Server {
	addr := os.Getenv("GATEHOUSE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr:            addr,
		PostgresURL:     os.Getenv("GATEHOUSE_POSTGRES_URL"),
		ShutdownTimeout: 10 * time.Second,
	}
}
