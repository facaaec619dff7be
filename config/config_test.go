package config

import "testing"

func validConfig() *Config {
	return &Config{
		GeminiAPIKey:   "test-key",
		AssetHostCloud: "demo",
		SegmentSeconds: 5,
		MaxDuration:    60,
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing api key", func(c *Config) { c.GeminiAPIKey = "" }},
		{"missing asset host", func(c *Config) { c.AssetHostCloud = "" }},
		{"zero segment seconds", func(c *Config) { c.SegmentSeconds = 0 }},
		{"negative max duration", func(c *Config) { c.MaxDuration = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "hello")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_FLOAT", "0.75")
	t.Setenv("TEST_BAD_INT", "abc")

	if got := getEnv("TEST_STR", "fallback"); got != "hello" {
		t.Errorf("getEnv = %q", got)
	}
	if got := getEnv("TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnv fallback = %q", got)
	}
	if got := getEnvAsInt("TEST_INT", 0); got != 42 {
		t.Errorf("getEnvAsInt = %d", got)
	}
	if got := getEnvAsInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt fallback = %d", got)
	}
	if got := getEnvAsFloat("TEST_FLOAT", 0); got != 0.75 {
		t.Errorf("getEnvAsFloat = %g", got)
	}
}
