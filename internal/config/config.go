package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the project configuration, loaded from a single YAML file.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	LLM         LLMConfig         `yaml:"llm"`
	Classifier  ClassifierConfig  `yaml:"classifier"`
	Search      SearchConfig      `yaml:"search"`
	Interest    InterestConfig    `yaml:"interest"`
	Engine      EngineConfig      `yaml:"engine"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Log         LogConfig         `yaml:"log"`
	DB          DBConfig          `yaml:"db"`
	Telegram    TelegramConfig    `yaml:"telegram"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// LLMConfig text-generation capability settings
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// ClassifierConfig text-classification capability settings
type ClassifierConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// SearchConfig news/discussion feed source settings
type SearchConfig struct {
	Provider string        `yaml:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

// TavilyConfig Tavily settings
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG settings
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// InterestConfig search-interest source settings
type InterestConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// EngineConfig pipeline tuning knobs
type EngineConfig struct {
	// Horizon is the number of forecasted periods per keyword (3 or 6).
	Horizon int `yaml:"horizon"`
	// MaxArticles caps the recent text items fetched per niche.
	MaxArticles int `yaml:"max_articles"`
}

// ConcurrencyConfig rate limits for the generation capability
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LogConfig logging settings
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DBConfig optional postgres persistence settings
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// TelegramConfig optional run-summary notification settings
type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

// LoadConfig reads the configuration at path and applies defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("llm.api_key is not set")
	}

	return &cfg, nil
}

// ApplyDefaults fills in the values a minimal config file may omit.
func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Engine.Horizon != 3 && c.Engine.Horizon != 6 {
		c.Engine.Horizon = 3
	}
	if c.Engine.MaxArticles <= 0 || c.Engine.MaxArticles > 8 {
		c.Engine.MaxArticles = 5
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 60
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Classifier.Model == "" {
		c.Classifier.Model = "gpt-4o-mini"
	}
}
