package config

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-config.yaml"))
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := LoadConfig()

	if cfg.Port != 8000 {
		t.Fatalf("unexpected port default: %d", cfg.Port)
	}
	if cfg.Debug {
		t.Fatal("debug must default to false")
	}
	if cfg.LLMProvider != "gemini" {
		t.Fatalf("unexpected provider default: %q", cfg.LLMProvider)
	}
	if cfg.LLMMaxWorkers != 3 {
		t.Fatalf("unexpected llm_max_workers default: %d", cfg.LLMMaxWorkers)
	}
	if cfg.BatchConcurrentThreshold != 3 {
		t.Fatalf("unexpected batch_concurrent_threshold default: %d", cfg.BatchConcurrentThreshold)
	}
	if cfg.HealthProbeSchedule != "" {
		t.Fatalf("health_probe_schedule must default to empty, got %q", cfg.HealthProbeSchedule)
	}
	if cfg.ExternalHTTPTimeoutSeconds != 30 {
		t.Fatalf("unexpected external HTTP timeout default: %d", cfg.ExternalHTTPTimeoutSeconds)
	}
	if cfg.APIKey() != "test-key" {
		t.Fatalf("unexpected api key: %q", cfg.APIKey())
	}
	if !cfg.LLMConfigured() {
		t.Fatal("expected LLMConfigured with GEMINI_API_KEY set")
	}
}

func TestLoadConfigMissingKeyIsNotFatal(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-config.yaml"))
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := LoadConfig()

	if cfg.LLMConfigured() {
		t.Fatal("expected unconfigured LLM without API keys")
	}
}

func TestLoadConfigYAMLAndEnvOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: 9100
debug: true
llm_provider: "anthropic"
llm_model: "yaml-model"
anthropic_api_key: "yaml-anthropic"
llm_max_workers: 5
batch_concurrent_threshold: 10
health_probe_schedule: "*/15 * * * *"
external_http_timeout_seconds: 75
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_PATH", cfgPath)
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("LLM_MAX_WORKERS", "7")

	cfg := LoadConfig()

	if cfg.LLMProvider != "gemini" {
		t.Fatalf("expected provider from env override, got %q", cfg.LLMProvider)
	}
	if cfg.APIKey() != "env-gemini" {
		t.Fatalf("expected gemini key for gemini provider, got %q", cfg.APIKey())
	}
	if cfg.LLMMaxWorkers != 7 {
		t.Fatalf("expected llm_max_workers from env override, got %d", cfg.LLMMaxWorkers)
	}
	if cfg.Port != 9100 {
		t.Fatalf("expected port from yaml, got %d", cfg.Port)
	}
	if !cfg.Debug {
		t.Fatal("expected debug from yaml")
	}
	if cfg.LLMModel != "yaml-model" {
		t.Fatalf("expected model from yaml, got %q", cfg.LLMModel)
	}
	if cfg.BatchConcurrentThreshold != 10 {
		t.Fatalf("expected batch_concurrent_threshold from yaml, got %d", cfg.BatchConcurrentThreshold)
	}
	if cfg.HealthProbeSchedule != "*/15 * * * *" {
		t.Fatalf("expected health_probe_schedule from yaml, got %q", cfg.HealthProbeSchedule)
	}
	if cfg.ExternalHTTPTimeoutSeconds != 75 {
		t.Fatalf("expected external HTTP timeout from yaml, got %d", cfg.ExternalHTTPTimeoutSeconds)
	}
}

func TestEnvOverrideHelpers(t *testing.T) {
	s := "initial"
	t.Setenv("FC_TEST_STR", "value")
	envOverride(&s, "FC_TEST_STR")
	if s != "value" {
		t.Fatalf("envOverride failed, got %q", s)
	}

	i := 1
	t.Setenv("FC_TEST_INT", "42")
	envOverrideInt(&i, "FC_TEST_INT")
	if i != 42 {
		t.Fatalf("envOverrideInt failed, got %d", i)
	}

	b := false
	t.Setenv("FC_TEST_BOOL", "1")
	envOverrideBool(&b, "FC_TEST_BOOL")
	if !b {
		t.Fatalf("envOverrideBool failed, got %v", b)
	}
	t.Setenv("FC_TEST_BOOL", "false")
	envOverrideBool(&b, "FC_TEST_BOOL")
	if b {
		t.Fatalf("envOverrideBool failed for false, got %v", b)
	}
}

func TestLoadConfigInvalidProviderFatal(t *testing.T) {
	if os.Getenv("TEST_INVALID_PROVIDER_FATAL") == "1" {
		_ = os.Setenv("CONFIG_PATH", filepath.Join(os.TempDir(), "no-config.yaml"))
		_ = os.Setenv("LLM_PROVIDER", "openai")
		LoadConfig()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestLoadConfigInvalidProviderFatal")
	cmd.Env = append(os.Environ(), "TEST_INVALID_PROVIDER_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to exit with failure")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got: %v", err)
	}
}

func TestLoadConfigTimeoutTooSmallFatal(t *testing.T) {
	if os.Getenv("TEST_TIMEOUT_FATAL") == "1" {
		_ = os.Setenv("CONFIG_PATH", filepath.Join(os.TempDir(), "no-config.yaml"))
		_ = os.Setenv("EXTERNAL_HTTP_TIMEOUT_SECONDS", "2")
		LoadConfig()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestLoadConfigTimeoutTooSmallFatal")
	cmd.Env = append(os.Environ(), "TEST_TIMEOUT_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to exit with failure")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got: %v", err)
	}
}
