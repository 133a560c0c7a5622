package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.StateFile != "state.json" {
		t.Errorf("state file = %q", cfg.StateFile)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.FetchTimeout)
	}
	if cfg.FetchDelay != 500*time.Millisecond {
		t.Errorf("delay = %v", cfg.FetchDelay)
	}
	if cfg.EventSitePermalinkPath != "/veranstaltungen/" {
		t.Errorf("permalink path = %q", cfg.EventSitePermalinkPath)
	}
	if cfg.PostExisting {
		t.Error("post_existing must default to false")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TG_TOKEN", "123:abc")
	t.Setenv("TG_CHAT_ID", "-100200300")
	t.Setenv("POST_EXISTING", "1")
	t.Setenv("STATE_FILE", "/var/lib/ticker/state.json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TelegramToken != "123:abc" {
		t.Errorf("token = %q", cfg.TelegramToken)
	}
	if cfg.TelegramChatID != -100200300 {
		t.Errorf("chat id = %d", cfg.TelegramChatID)
	}
	if !cfg.PostExisting {
		t.Error("POST_EXISTING=1 must enable post_existing")
	}
	if cfg.StateFile != "/var/lib/ticker/state.json" {
		t.Errorf("state file = %q", cfg.StateFile)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticker.yaml")
	yaml := `state_file: custom.json
sessionnet:
  info_url: https://sessionnet.example.de/bi/info.asp
eventsite:
  permalink_path: /events/
fetch:
  delay: 2s
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.StateFile != "custom.json" {
		t.Errorf("state file = %q", cfg.StateFile)
	}
	if cfg.SessionNetInfoURL != "https://sessionnet.example.de/bi/info.asp" {
		t.Errorf("info url = %q", cfg.SessionNetInfoURL)
	}
	if cfg.EventSitePermalinkPath != "/events/" {
		t.Errorf("permalink path = %q", cfg.EventSitePermalinkPath)
	}
	if cfg.FetchDelay != 2*time.Second {
		t.Errorf("delay = %v", cfg.FetchDelay)
	}
	// Untouched keys keep their defaults.
	if cfg.SessionNetBaseURL == "" {
		t.Error("base url default lost")
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("explicitly named missing config file must fail")
	}
}

func TestValidateDelivery(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ValidateDelivery(); err == nil {
		t.Error("empty credentials must fail validation")
	}

	cfg.TelegramToken = "123:abc"
	cfg.TelegramChatID = 42
	if err := cfg.ValidateDelivery(); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}
}
