package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port  int  `yaml:"port"`
	Debug bool `yaml:"debug"`

	LLMProvider     string `yaml:"llm_provider"`
	LLMModel        string `yaml:"llm_model"`
	GeminiAPIKey    string `yaml:"gemini_api_key"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`

	LLMMaxWorkers              int    `yaml:"llm_max_workers"`
	BatchConcurrentThreshold   int    `yaml:"batch_concurrent_threshold"`
	HealthProbeSchedule        string `yaml:"health_probe_schedule"`
	ExternalHTTPTimeoutSeconds int    `yaml:"external_http_timeout_seconds"`
}

// APIKey returns the credential for the selected provider.
func (c Config) APIKey() string {
	if c.LLMProvider == "anthropic" {
		return c.AnthropicAPIKey
	}
	return c.GeminiAPIKey
}

// LLMConfigured reports whether the selected provider has a credential. A
// missing key is not fatal: the server starts and correction endpoints
// report the missing configuration per request.
func (c Config) LLMConfigured() bool {
	return c.APIKey() != ""
}

func LoadConfig() Config {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	envOverrideInt(&cfg.Port, "PORT")
	envOverrideBool(&cfg.Debug, "DEBUG")
	envOverride(&cfg.LLMProvider, "LLM_PROVIDER")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverride(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverrideInt(&cfg.LLMMaxWorkers, "LLM_MAX_WORKERS")
	envOverrideInt(&cfg.BatchConcurrentThreshold, "BATCH_CONCURRENT_THRESHOLD")
	envOverride(&cfg.HealthProbeSchedule, "HEALTH_PROBE_SCHEDULE")
	envOverrideInt(&cfg.ExternalHTTPTimeoutSeconds, "EXTERNAL_HTTP_TIMEOUT_SECONDS")

	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "gemini"
	}
	if cfg.LLMMaxWorkers == 0 {
		cfg.LLMMaxWorkers = 3
	}
	if cfg.BatchConcurrentThreshold == 0 {
		cfg.BatchConcurrentThreshold = 3
	}
	if cfg.ExternalHTTPTimeoutSeconds == 0 {
		cfg.ExternalHTTPTimeoutSeconds = 30
	}

	switch cfg.LLMProvider {
	case "gemini", "anthropic":
	default:
		log.Fatalf("llm_provider must be 'gemini' or 'anthropic', got '%s'", cfg.LLMProvider)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		log.Fatalf("invalid port '%d': must be between 1 and 65535", cfg.Port)
	}
	if cfg.LLMMaxWorkers < 1 {
		log.Fatalf("invalid llm_max_workers '%d': must be >= 1", cfg.LLMMaxWorkers)
	}
	if cfg.BatchConcurrentThreshold < 0 {
		log.Fatalf("invalid batch_concurrent_threshold '%d': must be >= 0", cfg.BatchConcurrentThreshold)
	}
	if cfg.ExternalHTTPTimeoutSeconds < 5 {
		log.Fatalf("invalid external_http_timeout_seconds '%d': must be >= 5", cfg.ExternalHTTPTimeoutSeconds)
	}

	if !cfg.LLMConfigured() {
		key := "GEMINI_API_KEY"
		if cfg.LLMProvider == "anthropic" {
			key = "ANTHROPIC_API_KEY"
		}
		log.Printf("WARNING: %s is not set. The API will start but correction endpoints will not work.", key)
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

func envOverrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = strings.EqualFold(val, "true") || val == "1"
	}
}
