// Load envs from .env
// Load YAML config
// Provide default values
// Per-source validation happens at the entry points

package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type OLXConfig struct {
	StartURL        string  `yaml:"start_url"`
	MinDelaySeconds float64 `yaml:"min_delay_seconds"`
	MaxItems        int     `yaml:"max_items"`
	MaxPages        int     `yaml:"max_pages"`
	ItemRetries     int     `yaml:"item_retries"`
	OutputPath      string  `yaml:"output_path"`
}

// MinDelay is the minimum pause between consecutive navigations.
func (c OLXConfig) MinDelay() time.Duration {
	return time.Duration(c.MinDelaySeconds * float64(time.Second))
}

type AdzunaConfig struct {
	// Credentials come from the environment only, never from YAML.
	AppID  string `yaml:"-"`
	AppKey string `yaml:"-"`

	Country        string   `yaml:"country"`
	Keywords       []string `yaml:"keywords"`
	Location       string   `yaml:"location"`
	ResultsPerPage int      `yaml:"results_per_page"`
	MaxResults     int      `yaml:"max_results"`
	OutputPath     string   `yaml:"output_path"`

	// Extra exclusion keywords on top of the built-in families.
	ExcludeKeywords []string `yaml:"exclude_keywords"`
	// MatchDescription widens exclusion matching from title+category to
	// the full description text. Off by default: title+category is the
	// conservative choice.
	MatchDescription bool `yaml:"match_description"`
}

type Config struct {
	OLX    OLXConfig    `yaml:"olx"`
	Adzuna AdzunaConfig `yaml:"adzuna"`

	//Optional run-summary reporting
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`

	//Paths
	CookiesPath string `yaml:"cookies_path"`
}

func Load() *Config {
	_ = godotenv.Load()
	return loadPath("configs/config.yaml")
}

func loadPath(path string) *Config {
	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if appID := os.Getenv("ADZUNA_APP_ID"); appID != "" {
		cfg.Adzuna.AppID = appID
	}
	if appKey := os.Getenv("ADZUNA_APP_KEY"); appKey != "" {
		cfg.Adzuna.AppKey = appKey
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.OLX.StartURL == "" {
		cfg.OLX.StartURL = "https://www.olx.pl/praca/"
	}
	if cfg.OLX.MinDelaySeconds <= 0 {
		cfg.OLX.MinDelaySeconds = 2
	}
	if cfg.OLX.MaxPages <= 0 {
		cfg.OLX.MaxPages = 25
	}
	if cfg.OLX.ItemRetries <= 0 {
		cfg.OLX.ItemRetries = 2
	}
	if cfg.OLX.OutputPath == "" {
		cfg.OLX.OutputPath = "jobs.csv"
	}
	if cfg.Adzuna.Country == "" {
		cfg.Adzuna.Country = "gb"
	}
	if cfg.Adzuna.ResultsPerPage <= 0 {
		cfg.Adzuna.ResultsPerPage = 50
	}
	if cfg.Adzuna.OutputPath == "" {
		cfg.Adzuna.OutputPath = "adzuna_jobs.csv"
	}

	return cfg
}

// ValidateAdzuna fails fast on missing API credentials, before any
// network activity.
func (c *Config) ValidateAdzuna() error {
	if c.Adzuna.AppID == "" || c.Adzuna.AppKey == "" {
		return errors.New("adzuna credentials missing: set ADZUNA_APP_ID and ADZUNA_APP_KEY in the environment or .env")
	}
	return nil
}
