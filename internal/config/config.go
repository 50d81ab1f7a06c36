package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrMissingCredential is returned when no API key can be found in the
// environment. The CLI treats it as fatal before any model call is made.
var ErrMissingCredential = errors.New("missing credential")

type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Trace   TraceConfig   `toml:"trace"`
	Gateway GatewayConfig `toml:"gateway"`
	DB      DBConfig      `toml:"db"`
	Tools   ToolsConfig   `toml:"tools"`
}

type LLMConfig struct {
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
}

type TraceConfig struct {
	Endpoint string `toml:"endpoint"`
	URLPath  string `toml:"url_path"`
}

type GatewayConfig struct {
	Addr string `toml:"addr"`
}

type DBConfig struct {
	Path string `toml:"path"`
}

type ToolsConfig struct {
	BraveAPIKey string `toml:"brave_api_key"`
}

// Load reads the config file (if present) over built-in defaults, after
// pulling in .env files. Environment variables already set always win over
// .env entries.
func Load(envFiles ...string) (*Config, error) {
	loadDotEnv(envFiles...)

	cfg := &Config{
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
		Trace: TraceConfig{
			URLPath: "/v1/traces",
		},
		Gateway: GatewayConfig{
			Addr: ":8686",
		},
		DB: DBConfig{
			Path: defaultDBPath(),
		},
	}

	path := Path()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	}

	return cfg, nil
}

// OpenAIKey returns the API key for the model provider. The key is only ever
// read from the environment, never from the config file.
func (c *Config) OpenAIKey() (string, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return "", fmt.Errorf("%w: OPENAI_API_KEY not set, add it to your .env file or environment", ErrMissingCredential)
	}
	return key, nil
}

// TraceAPIKey returns the optional key for the tracking backend. Tracing runs
// unauthenticated (or not at all) when it is empty.
func (c *Config) TraceAPIKey() string {
	return os.Getenv("PHOENIX_API_KEY")
}

// loadDotEnv loads .env files without overwriting existing variables.
// Search order: explicit paths, then the working directory, then ~/.env.
// Missing files are not an error.
func loadDotEnv(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = godotenv.Load(p)
		}
	}
	_ = godotenv.Load(".env")
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".env"))
	}
}

func Path() string {
	dir, _ := os.UserConfigDir()
	return filepath.Join(dir, "flightdesk", "config.toml")
}

func defaultDBPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, ".local", "share", "flightdesk", "flightdesk.db")
}
