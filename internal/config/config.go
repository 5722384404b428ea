// Package config provides configuration management for basicchat.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIVersion is the chat completions API version used when
// BASICCHAT_API_VERSION is unset.
const DefaultAPIVersion = "2024-07-01-preview"

// Config holds all configuration for a basicchat process. It is built once at
// startup and passed by value into constructors.
type Config struct {
	// Identity provider (client-credentials grant).
	TenantID     string
	ClientID     string
	ClientSecret string
	// Resource is the scope prefix; the requested scope is Resource + ".default".
	Resource string
	// TokenURL overrides the token endpoint derived from TenantID.
	TokenURL string

	// Completion endpoint.
	APIBase         string
	Deployment      string
	APIVersion      string
	SubscriptionKey string

	// RequestTimeout bounds a single completion request (no retries).
	RequestTimeout time.Duration
	// InsecureSkipVerify disables TLS certificate verification for the
	// completion endpoint.
	InsecureSkipVerify bool

	// PromptDir holds system prompt .txt files.
	PromptDir string
	// PaperDir holds .pdf documents.
	PaperDir string
	// OutputDir receives summary_<title>.txt files.
	OutputDir string
	// ErrorLogDir receives error_<timestamp>.log files.
	ErrorLogDir string

	// DataDir is the directory for the extraction cache and the app log.
	DataDir string
	// CachePath is the full path to the SQLite extraction cache.
	CachePath string
	// LogPath is the full path to the structured application log.
	LogPath string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads a .env file in the working directory if present, then builds a
// Config from environment variables with sensible defaults. Variables already
// present in the environment win over .env entries.
func Load() (*Config, error) {
	// A missing .env file is normal; the real environment is used instead.
	_ = godotenv.Load()

	dataDir := envOr("BASICCHAT_DATA_DIR", defaultDataDir())
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	cfg := &Config{
		TenantID:           os.Getenv("TENANT_ID"),
		ClientID:           os.Getenv("CLIENT_ID"),
		ClientSecret:       os.Getenv("CLIENT_SECRET"),
		Resource:           os.Getenv("RESOURCE"),
		TokenURL:           os.Getenv("BASICCHAT_TOKEN_URL"),
		APIBase:            strings.TrimRight(os.Getenv("OPENAI_API_BASE"), "/"),
		Deployment:         os.Getenv("DEPLOYMENT_NAME"),
		APIVersion:         envOr("BASICCHAT_API_VERSION", DefaultAPIVersion),
		SubscriptionKey:    os.Getenv("SUBSCRIPTION_KEY"),
		RequestTimeout:     time.Duration(envOrInt("BASICCHAT_REQUEST_TIMEOUT", 120)) * time.Second,
		InsecureSkipVerify: envOrBool("BASICCHAT_INSECURE_SKIP_VERIFY", false),
		PromptDir:          envOr("BASICCHAT_PROMPT_DIR", "system_prompt"),
		PaperDir:           envOr("BASICCHAT_PAPER_DIR", "paper"),
		OutputDir:          envOr("BASICCHAT_OUTPUT_DIR", "output"),
		ErrorLogDir:        envOr("BASICCHAT_ERROR_LOG_DIR", "error_logs"),
		DataDir:            dataDir,
		CachePath:          filepath.Join(dataDir, "extract_cache.db"),
		LogPath:            filepath.Join(dataDir, "basicchat.log"),
		LogLevel:           envOr("BASICCHAT_LOG_LEVEL", "info"),
	}
	if cfg.TokenURL == "" && cfg.TenantID != "" {
		cfg.TokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID)
	}

	return cfg, nil
}

// Validate checks that the configuration needed to reach the completion
// endpoint is present.
func (c *Config) Validate() error {
	if c.TokenURL == "" {
		return fmt.Errorf("TENANT_ID is required (or set BASICCHAT_TOKEN_URL)")
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("CLIENT_ID and CLIENT_SECRET are required")
	}
	if c.Resource == "" {
		return fmt.Errorf("RESOURCE is required")
	}
	if c.APIBase == "" {
		return fmt.Errorf("OPENAI_API_BASE is required")
	}
	if c.Deployment == "" {
		return fmt.Errorf("DEPLOYMENT_NAME is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("BASICCHAT_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// Scope returns the OAuth scope requested for the completion resource.
func (c *Config) Scope() string {
	return c.Resource + ".default"
}

// CompletionURL returns the chat completions endpoint for the configured
// deployment and API version.
func (c *Config) CompletionURL() string {
	return fmt.Sprintf("%s/deployments/%s/chat/completions?api-version=%s", c.APIBase, c.Deployment, c.APIVersion)
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envOrBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".basicchat"
	}
	return filepath.Join(home, ".basicchat")
}
