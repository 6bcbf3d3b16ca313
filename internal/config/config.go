package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP struct {
		Addr string `yaml:"addr" validate:"required"`
	} `yaml:"http"`
	Dev struct {
		Mode bool `yaml:"mode"`
	} `yaml:"dev"`
	LLM struct {
		Provider          string        `yaml:"provider" validate:"oneof=none openai ollama gemini"`
		Model             string        `yaml:"model"`
		OpenAIKey         string        `yaml:"openai_key"`
		OpenAIURL         string        `yaml:"openai_url"`
		OllamaURL         string        `yaml:"ollama_url"`
		GeminiKey         string        `yaml:"gemini_key"`
		RequestsPerMinute int           `yaml:"requests_per_minute" validate:"gte=0"`
		Timeout           time.Duration `yaml:"timeout" validate:"gte=0"`
	} `yaml:"llm"`
	Pipeline struct {
		MaxSentences    int    `yaml:"max_sentences" validate:"gte=0"`
		DefaultLanguage string `yaml:"default_language"`
	} `yaml:"pipeline"`
	Selection struct {
		Backend     string `yaml:"backend" validate:"oneof=memory redis postgres badger"`
		RedisURL    string `yaml:"redis_url" validate:"required_if=Backend redis"`
		DatabaseDSN string `yaml:"database_dsn" validate:"required_if=Backend postgres"`
		BadgerPath  string `yaml:"badger_path" validate:"required_if=Backend badger"`
	} `yaml:"selection"`
	Fetch struct {
		Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
		MaxBytes  int64         `yaml:"max_bytes" validate:"gt=0"`
		UserAgent string        `yaml:"user_agent"`
	} `yaml:"fetch"`
	Detect struct {
		Keywords []string `yaml:"keywords"`
	} `yaml:"detect"`
	MCP struct {
		ProtocolVersion string   `yaml:"protocol_version"`
		AllowOrigins    []string `yaml:"allow_origins"`
	} `yaml:"mcp"`
	Security struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"security"`
	Log struct {
		Level string `yaml:"level" validate:"oneof=debug info warn error"`
	} `yaml:"log"`
}

func Default() Config {
	var cfg Config
	cfg.HTTP.Addr = ":8089"
	cfg.Dev.Mode = true
	cfg.LLM.Provider = "none"
	cfg.LLM.Timeout = 30 * time.Second
	cfg.Pipeline.MaxSentences = 3
	cfg.Pipeline.DefaultLanguage = "en"
	cfg.Selection.Backend = "memory"
	cfg.Fetch.Timeout = 20 * time.Second
	cfg.Fetch.MaxBytes = 2 << 20
	cfg.Fetch.UserAgent = "termslens/0.1 (+legal page simplifier)"
	cfg.MCP.ProtocolVersion = "2025-11-25"
	cfg.Log.Level = "info"
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, err
			}
		} else {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = validator.New()

func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TL_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("TL_DEV_MODE"); v != "" {
		cfg.Dev.Mode = parseBool(v, cfg.Dev.Mode)
	}
	if v := os.Getenv("TL_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("TL_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("TL_OPENAI_API_KEY"); v != "" {
		cfg.LLM.OpenAIKey = v
	}
	if v := os.Getenv("TL_OPENAI_URL"); v != "" {
		cfg.LLM.OpenAIURL = v
	}
	if v := os.Getenv("TL_OLLAMA_URL"); v != "" {
		cfg.LLM.OllamaURL = v
	}
	if v := os.Getenv("TL_GEMINI_API_KEY"); v != "" {
		cfg.LLM.GeminiKey = v
	}
	if v := os.Getenv("TL_LLM_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LLM.RequestsPerMinute = n
		}
	}
	if v := os.Getenv("TL_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = d
		}
	}
	if v := os.Getenv("TL_MAX_SENTENCES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.MaxSentences = n
		}
	}
	if v := os.Getenv("TL_DEFAULT_LANGUAGE"); v != "" {
		cfg.Pipeline.DefaultLanguage = v
	}
	if v := os.Getenv("TL_SELECTION_BACKEND"); v != "" {
		cfg.Selection.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("TL_REDIS_URL"); v != "" {
		cfg.Selection.RedisURL = v
	}
	if v := os.Getenv("TL_DB_DSN"); v != "" {
		cfg.Selection.DatabaseDSN = v
	}
	if v := os.Getenv("TL_BADGER_PATH"); v != "" {
		cfg.Selection.BadgerPath = v
	}
	if v := os.Getenv("TL_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Fetch.Timeout = d
		}
	}
	if v := os.Getenv("TL_FETCH_MAX_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Fetch.MaxBytes = n
		}
	}
	if v := os.Getenv("TL_FETCH_USER_AGENT"); v != "" {
		cfg.Fetch.UserAgent = v
	}
	if v := os.Getenv("TL_DETECT_KEYWORDS"); v != "" {
		cfg.Detect.Keywords = splitCSV(v)
	}
	if v := os.Getenv("TL_MCP_PROTOCOL_VERSION"); v != "" {
		cfg.MCP.ProtocolVersion = v
	}
	if v := os.Getenv("TL_MCP_ALLOW_ORIGINS"); v != "" {
		cfg.MCP.AllowOrigins = splitCSV(v)
	}
	if v := os.Getenv("TL_API_KEY"); v != "" {
		cfg.Security.APIKey = v
	}
	if v := os.Getenv("TL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}
}

func parseBool(input string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func splitCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		val := strings.TrimSpace(part)
		if val == "" {
			continue
		}
		out = append(out, val)
	}
	return out
}
