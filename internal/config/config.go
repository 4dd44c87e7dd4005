// Package config reads sqlgate settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the server needs to start.
type Config struct {
	Addr        string
	HubURL      string
	HubToken    string
	HubTimeout  time.Duration
	Chain       string
	Model       string
	DatabaseURL string // empty means in-memory history
	CacheSize   int
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:        or(getenv("SQLGATE_ADDR"), ":8080"),
		HubURL:      or(getenv("HUB_URL"), "http://localhost:8000"),
		HubToken:    getenv("HUB_AUTH_TOKEN"),
		Chain:       or(getenv("HUB_CHAIN"), "aptos_testnet"),
		Model:       or(getenv("HUB_MODEL"), "zerokdb"),
		DatabaseURL: getenv("SQLGATE_DATABASE_URL"),
		CacheSize:   1024,
		HubTimeout:  15 * time.Second,
	}

	if v := getenv("SQLGATE_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("SQLGATE_CACHE_SIZE: want a positive integer, got %q", v)
		}
		cfg.CacheSize = n
	}

	if v := getenv("SQLGATE_HUB_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("SQLGATE_HUB_TIMEOUT: want a positive duration, got %q", v)
		}
		cfg.HubTimeout = d
	}

	return cfg, nil
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
