// Package config resolves the per-environment API configuration and gates
// outbound URLs against the domain allow-list.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Environment selects between the development and production API triples.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

func (e Environment) String() string {
	return string(e)
}

// Config is the resolved API configuration. It is selected once per process
// and never mutated afterwards.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	RetryCount  int
	Environment Environment
}

// Per-environment defaults. Development gets a longer timeout for easier
// debugging and fewer retries; production retries harder.
var envDefaults = map[Environment]Config{
	Development: {
		BaseURL:     "http://127.0.0.1:5000/api",
		Timeout:     15 * time.Second,
		RetryCount:  1,
		Environment: Development,
	},
	Production: {
		BaseURL:     "https://test.3fenban.com/api",
		Timeout:     10 * time.Second,
		RetryCount:  3,
		Environment: Production,
	},
}

var dotenvOnce sync.Once

// loadDotenv loads an optional .env file into the process environment.
// A missing file is not an error.
func loadDotenv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// CurrentEnvironment reads FANBAN_ENV. Anything other than an explicit
// development value resolves to production.
func CurrentEnvironment() Environment {
	loadDotenv()
	switch strings.ToLower(strings.TrimSpace(os.Getenv("FANBAN_ENV"))) {
	case "development", "dev":
		return Development
	default:
		return Production
	}
}

// Resolve returns the configuration for the current environment. It always
// succeeds: the hardcoded defaults apply unless FANBAN_API_BASE_URL supplies
// a replacement base URL.
func Resolve() Config {
	cfg := envDefaults[CurrentEnvironment()]
	if base := strings.TrimSpace(os.Getenv("FANBAN_API_BASE_URL")); base != "" {
		cfg.BaseURL = base
	}
	return cfg
}

// BuildURL joins the base URL with an endpoint path.
func (c Config) BuildURL(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return strings.TrimSuffix(c.BaseURL, "/") + endpoint
}

// Describe returns a short human-readable summary for diagnostics output.
func (c Config) Describe() string {
	return fmt.Sprintf("env=%s base=%s timeout=%s retries=%d",
		c.Environment, c.BaseURL, c.Timeout, c.RetryCount)
}
