// Package config provides runtime configuration values for the server.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr        string
	MySQLDSN        string
	RedisAddr       string
	MigrationsPath  string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durenvs(key string, defSec int) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return time.Duration(defSec) * time.Second
	}
	sec, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defSec) * time.Second
	}
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults. An empty
// REDIS_ADDR runs the server without the product cache.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		MySQLDSN:        getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/shop?parseTime=true"),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		MigrationsPath:  getenv("MIGRATIONS_PATH", "migrations"),
		RequestTimeout:  durenvs("REQUEST_TIMEOUT", 30),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 5),
	}
}
