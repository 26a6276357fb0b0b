package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid gemini config",
			config: Config{
				LLM: LLMConfig{
					Provider: "gemini",
					APIKey:   "test-key",
				},
			},
			wantErr: false,
		},
		{
			name: "valid openai config",
			config: Config{
				LLM: LLMConfig{
					Provider: "openai",
					Model:    "llama-3.1-8b-instant",
					APIKey:   "test-key",
					BaseURL:  "https://api.groq.com/openai/v1",
				},
			},
			wantErr: false,
		},
		{
			name:    "missing provider",
			config:  Config{LLM: LLMConfig{APIKey: "test-key"}},
			wantErr: true,
		},
		{
			name:    "unsupported provider",
			config:  Config{LLM: LLMConfig{Provider: "anthropic", APIKey: "test-key"}},
			wantErr: true,
		},
		{
			name:    "missing api key",
			config:  Config{LLM: LLMConfig{Provider: "gemini"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{LLM: LLMConfig{Provider: "gemini", APIKey: "test-key"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %v, want %v", cfg.Server.Addr, ":8080")
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %v, want %v", cfg.LLM.Model, "gemini-2.5-flash")
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("Port = %v, want %v", cfg.SMTP.Port, 587)
	}
	if cfg.Paths.Inbox != "data/inbox" {
		t.Errorf("Inbox = %v, want %v", cfg.Paths.Inbox, "data/inbox")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %v, want %v", cfg.Logging.Level, "info")
	}
}

func TestSMTPConfigured(t *testing.T) {
	cfg := Config{}
	if cfg.SMTPConfigured() {
		t.Error("SMTPConfigured() = true for empty SMTP config")
	}

	cfg.SMTP = SMTPConfig{Host: "smtp.example.com", Username: "user", Password: "pass"}
	if !cfg.SMTPConfigured() {
		t.Error("SMTPConfigured() = false for complete SMTP config")
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
server:
  addr: ":9090"

llm:
  provider: "openai"
  model: "llama-3.1-8b-instant"
  api_key: "test-key"
  base_url: "https://api.groq.com/openai/v1"

smtp:
  host: "smtp.example.com"
  port: 465
  username: "user@example.com"
  password: "secret"
  use_tls: true

logging:
  level: "debug"
  format: "text"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %v, want %v", cfg.Server.Addr, ":9090")
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("Provider = %v, want %v", cfg.LLM.Provider, "openai")
	}
	if cfg.SMTP.Port != 465 {
		t.Errorf("Port = %v, want %v", cfg.SMTP.Port, 465)
	}
	if cfg.SMTP.From != "user@example.com" {
		t.Errorf("From = %v, want fallback to username", cfg.SMTP.From)
	}
	if !cfg.SMTPConfigured() {
		t.Error("SMTPConfigured() = false, want true")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
