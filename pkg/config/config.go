package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"YieldAdvisor/pkg/util"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// YieldEntry is one row of the static yield table.
type YieldEntry struct {
	Protocol string  `yaml:"protocol"`
	Chain    string  `yaml:"chain"`
	APY      float64 `yaml:"apy"`
	TVL      float64 `yaml:"tvl"`
}

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"5000"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowRequest     time.Duration `yaml:"slow_request" default:"3s"`
		CORSOrigins     []string      `yaml:"cors_origins" default:"[\"*\"]"`
		RateLimit       struct {
			RPS   float64 `yaml:"rps" default:"2"`
			Burst int     `yaml:"burst" default:"5"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Logging struct {
		Level     string `yaml:"level" default:"info"`
		Format    string `yaml:"format" default:"console"`
		Output    string `yaml:"output" default:"stdout"`
		Collector struct {
			Enabled   bool          `yaml:"enabled"`
			Interval  time.Duration `yaml:"interval" default:"30s"`
			Threshold int           `yaml:"threshold" default:"100"`
			Topic     string        `yaml:"topic" default:"yield-advisor.logs"`
		} `yaml:"collector"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Yields struct {
		Table     []YieldEntry `yaml:"table"`
		DefiLlama struct {
			Enabled bool          `yaml:"enabled"`
			URL     string        `yaml:"url" default:"https://yields.llama.fi/pools"`
			MinTVL  float64       `yaml:"min_tvl" default:"1000000"`
			Limit   int           `yaml:"limit" default:"10"`
			Symbols []string      `yaml:"symbols" default:"[\"USDC\",\"USDT\",\"DAI\",\"ETH\",\"WETH\",\"PYUSD\"]"`
			Timeout time.Duration `yaml:"timeout" default:"15s"`
		} `yaml:"defillama"`
	} `yaml:"yields"`
	Oracle struct {
		BaseURL string        `yaml:"base_url" default:"https://hermes.pyth.network"`
		FeedID  string        `yaml:"feed_id" default:"0xff61491a931112ddf1bd8147cd1b641375f79f5825126d665480874634fd0ace"`
		Timeout time.Duration `yaml:"timeout" default:"5s"`
		Cache   struct {
			Backend string        `yaml:"backend" default:"none"` // none, memory, redis
			TTL     time.Duration `yaml:"ttl" default:"10s"`
			Redis   struct {
				Addr     string `yaml:"addr" default:"localhost:6379"`
				Password string `yaml:"password"`
				DB       int    `yaml:"db"`
				Prefix   string `yaml:"prefix" default:"yield-advisor:oracle:"`
			} `yaml:"redis"`
		} `yaml:"cache"`
	} `yaml:"oracle"`
	LLM struct {
		Provider    string        `yaml:"provider" default:"groq"` // groq, openai, anthropic
		APIKey      string        `yaml:"api_key"`
		BaseURL     string        `yaml:"base_url"`
		Model       string        `yaml:"model"`
		Temperature float64       `yaml:"temperature" default:"0.3"`
		MaxTokens   int           `yaml:"max_tokens" default:"200"`
		Timeout     time.Duration `yaml:"timeout" default:"15s"`
	} `yaml:"llm"`
	Events struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"yield-advisor.analyses"`
		Compression  string        `yaml:"compression" default:"snappy"`
		RequiredAcks int           `yaml:"required_acks" default:"1"`
		Async        bool          `yaml:"async" default:"true"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"5s"`
		BatchTimeout time.Duration `yaml:"batch_timeout" default:"50ms"`
	} `yaml:"events"`
}

// Default returns a config populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
// A missing file is not an error: the defaults alone describe a runnable service.
func Load(path string) (*Config, error) {
	c, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads .env (if present), then the YAML file, then applies
// environment overrides. Validation runs once, on the merged result.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := load(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv(providerKeyEnv(c.LLM.Provider))
	}
	if v := os.Getenv("PYTH_FEED_ID"); v != "" {
		c.Oracle.FeedID = v
	}
	if v := os.Getenv("ORACLE_CACHE"); v != "" {
		c.Oracle.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Oracle.Cache.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = util.SplitCSV(v)
		c.Events.Enabled = true
	}
}

func providerKeyEnv(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	default:
		return "GROQ_API_KEY"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	switch c.LLM.Provider {
	case "groq", "openai", "anthropic":
	default:
		return fmt.Errorf("llm.provider must be 'groq', 'openai' or 'anthropic', got '%s'", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be in [0, 2], got %v", c.LLM.Temperature)
	}
	if c.Oracle.Timeout <= 0 {
		return fmt.Errorf("oracle.timeout must be positive")
	}
	if c.Oracle.FeedID == "" {
		return fmt.Errorf("oracle.feed_id is required")
	}
	switch c.Oracle.Cache.Backend {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("oracle.cache.backend must be 'none', 'memory' or 'redis', got '%s'", c.Oracle.Cache.Backend)
	}
	if c.Yields.DefiLlama.Enabled && (c.Yields.DefiLlama.Limit <= 0 || c.Yields.DefiLlama.Limit > 12) {
		return fmt.Errorf("yields.defillama.limit must be in 1..12, got %d", c.Yields.DefiLlama.Limit)
	}
	for i, y := range c.Yields.Table {
		if y.Protocol == "" || y.APY < 0 || y.TVL < 0 {
			return fmt.Errorf("yields.table[%d]: protocol is required and apy/tvl must be >= 0", i)
		}
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return fmt.Errorf("events.brokers cannot be empty when events are enabled")
	}
	return nil
}
