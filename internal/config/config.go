package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DefaultLLM string                `toml:"default_llm"`
	LLMs       map[string]*LLMConfig `toml:"llm"`
	Search     SearchConfig          `toml:"search"`
	Market     MarketConfig          `toml:"market"`
	Gateway    GatewayConfig         `toml:"gateway"`
	DB         DBConfig              `toml:"db"`
	Data       DataConfig            `toml:"data"`
	Reports    ReportsConfig         `toml:"reports"`
	Trace      TraceConfig           `toml:"trace"`
}

type LLMConfig struct {
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

type SearchConfig struct {
	BraveAPIKey string `toml:"brave_api_key"`
}

type MarketConfig struct {
	BaseURL string `toml:"base_url"`
}

type GatewayConfig struct {
	Addr string `toml:"addr"`
}

type DBConfig struct {
	Path string `toml:"path"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
	// MaxAgeDays controls snapshot pruning; snapshots older than this
	// are removed by the prune command.
	MaxAgeDays int `toml:"max_age_days"`
}

type ReportsConfig struct {
	Dir string `toml:"dir"`
}

type TraceConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
	URLPath  string `toml:"url_path"`
	APIKey   string `toml:"api_key"`
}

func Load() (*Config, error) {
	cfg := Default()

	path := Path()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Secrets come from the environment when present, so the config
	// file never has to hold keys.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		for _, llm := range cfg.LLMs {
			if llm.APIKey == "" {
				llm.APIKey = key
			}
		}
	}
	if key := os.Getenv("BRAVE_API_KEY"); key != "" && cfg.Search.BraveAPIKey == "" {
		cfg.Search.BraveAPIKey = key
	}

	return cfg, nil
}

func Default() *Config {
	return &Config{
		DefaultLLM: "openai",
		LLMs: map[string]*LLMConfig{
			"openai": {
				Model: "gpt-4o",
			},
		},
		Gateway: GatewayConfig{
			Addr: ":8585",
		},
		DB: DBConfig{
			Path: defaultDBPath(),
		},
		Data: DataConfig{
			Dir:        defaultDataDir("snapshots"),
			MaxAgeDays: 30,
		},
		Reports: ReportsConfig{
			Dir: defaultDataDir("reports"),
		},
	}
}

// Write saves cfg to the default config path, creating directories as
// needed. Used by the setup command.
func Write(cfg *Config) (string, error) {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return "", err
	}
	return path, nil
}

func Path() string {
	dir, _ := os.UserConfigDir()
	return filepath.Join(dir, "finch", "config.toml")
}

func defaultDBPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, ".local", "share", "finch", "finch.db")
}

func defaultDataDir(sub string) string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, ".local", "share", "finch", sub)
}
