package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats understood by the renderers.
const (
	FormatVariables = "variables"
	FormatJSON      = "json"
	FormatSummary   = "summary"
)

// Config holds all application configuration. It is built once at startup
// and passed to every component.
type Config struct {
	Counters struct {
		Primary struct {
			Username string `yaml:"username"`
			Endpoint string `yaml:"endpoint"`
		} `yaml:"primary"`
		Secondary struct {
			Username   string `yaml:"username"`
			ProfileURL string `yaml:"profile_url"`
			CardURL    string `yaml:"card_url"`
		} `yaml:"secondary"`
	} `yaml:"counters"`
	Files struct {
		History  string `yaml:"history"`
		Output   string `yaml:"output"`
		DebugLog string `yaml:"debug_log"`
		SQLite   string `yaml:"sqlite"`
	} `yaml:"files"`
	Render struct {
		Format        string `yaml:"format"`
		ActiveColor   string `yaml:"active_color"`
		InactiveColor string `yaml:"inactive_color"`
		FireOnImage   string `yaml:"fire_on_image"`
		FireOffImage  string `yaml:"fire_off_image"`
	} `yaml:"render"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Metrics struct {
		Address string `yaml:"address"`
	} `yaml:"metrics"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Timezone     string `yaml:"timezone"`
	Proxy        string `yaml:"proxy"`
	FetchTimeout string `yaml:"fetch_timeout"`

	Location *time.Location `yaml:"-"`
	Timeout  time.Duration  `yaml:"-"`
}

// Defaults returns the configuration used when nothing else is supplied.
func Defaults() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. It never fails: an unreadable or invalid file is
// logged and the defaults are used.
func Load(path string) *Config {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err != nil && os.IsNotExist(err):
		log.Printf("[INFO] config %s not found, using defaults", path)
	case err != nil:
		log.Printf("[WARN] read config: %v, using defaults", err)
	case len(data) > 0:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Printf("[WARN] parse config: %v, using defaults", err)
			cfg = &Config{}
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LEETCODE_USERNAME"); v != "" {
		cfg.Counters.Primary.Username = v
	}
	if v := os.Getenv("GFG_USERNAME"); v != "" {
		cfg.Counters.Secondary.Username = v
	}
	if v := os.Getenv("STREAK_HISTORY_FILE"); v != "" {
		cfg.Files.History = v
	}
	if v := os.Getenv("STREAK_OUTPUT_FILE"); v != "" {
		cfg.Files.Output = v
	}
	if v := os.Getenv("STREAK_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" && cfg.Proxy == "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Metrics.Address = v
	}

	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Counters.Primary.Username == "" {
		c.Counters.Primary.Username = "upratapvarun"
	}
	if c.Counters.Secondary.Username == "" {
		c.Counters.Secondary.Username = "upratapim33"
	}
	if c.Files.History == "" {
		c.Files.History = "history.json"
	}
	if c.Files.Output == "" {
		c.Files.Output = "variables.inc"
	}
	if c.Files.DebugLog == "" {
		c.Files.DebugLog = "debug.log"
	}
	switch c.Render.Format {
	case FormatVariables, FormatJSON, FormatSummary:
	case "":
		c.Render.Format = FormatVariables
	default:
		log.Printf("[WARN] unknown render format %q, using %s", c.Render.Format, FormatVariables)
		c.Render.Format = FormatVariables
	}
	if c.Render.ActiveColor == "" {
		c.Render.ActiveColor = "255,255,255,255"
	}
	if c.Render.InactiveColor == "" {
		c.Render.InactiveColor = "60,60,60,255"
	}
	if c.Render.FireOnImage == "" {
		c.Render.FireOnImage = "fireon.png"
	}
	if c.Render.FireOffImage == "" {
		c.Render.FireOffImage = "fireoff.png"
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 */30 * * * *"
	}

	c.Location = time.Local
	if c.Timezone != "" {
		if loc, err := time.LoadLocation(c.Timezone); err == nil {
			c.Location = loc
		} else {
			log.Printf("[WARN] unknown timezone %q, using local time: %v", c.Timezone, err)
		}
	}

	c.Timeout = 15 * time.Second
	if c.FetchTimeout != "" {
		if d, err := time.ParseDuration(c.FetchTimeout); err == nil && d > 0 {
			c.Timeout = d
		} else {
			log.Printf("[WARN] invalid fetch_timeout %q, using %s", c.FetchTimeout, c.Timeout)
		}
	}
}

// TelegramEnabled reports whether both Telegram credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
