package config

import (
	"strings"
	"testing"
)

func TestLookup_Exists(t *testing.T) {
	spec := Lookup("default-provider")
	if spec == nil {
		t.Fatal("expected to find key 'default-provider', got nil")
	}
	if spec.Name != "default-provider" {
		t.Errorf("expected Name %q, got %q", "default-provider", spec.Name)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	spec := Lookup("DEFAULT-PROVIDER")
	if spec == nil {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if spec.Name != "default-provider" {
		t.Errorf("expected Name %q, got %q", "default-provider", spec.Name)
	}
}

func TestLookup_NotFound(t *testing.T) {
	spec := Lookup("nonexistent-key")
	if spec != nil {
		t.Errorf("expected nil for unknown key, got %+v", spec)
	}
}

func TestKeys_AllHaveGetAndSet(t *testing.T) {
	for _, k := range Keys {
		if k.Get == nil {
			t.Errorf("key %q has nil Get function", k.Name)
		}
		if k.Set == nil {
			t.Errorf("key %q has nil Set function", k.Name)
		}
		if k.Description == "" {
			t.Errorf("key %q has empty Description", k.Name)
		}
	}
}

func TestKeys_GetSetRoundtrip(t *testing.T) {
	values := map[string]string{
		"default-provider": "hetzner",
		"default-template": "osFamily=UBUNTU,minRam=2048",
		"log-level":        "debug",
		"log-format":       "json",
	}

	for _, k := range Keys {
		value, ok := values[k.Name]
		if !ok {
			t.Errorf("key %q has no round-trip value", k.Name)
			continue
		}

		cfg := &Config{}
		if err := k.Set(cfg, value); err != nil {
			t.Errorf("key %q: Set(%q) error: %v", k.Name, value, err)
			continue
		}
		if got := k.Get(cfg); got != value {
			t.Errorf("key %q: Set then Get = %q, want %q", k.Name, got, value)
		}
	}
}

func TestKeys_SetRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{key: "default-template", value: "minRam=lots", want: "key minRam value set to lots, must be integer"},
		{key: "default-template", value: "bogus=1", want: "unknown key bogus"},
		{key: "log-level", value: "verbose", want: `invalid log level "verbose"`},
		{key: "log-format", value: "xml", want: `invalid log format "xml"`},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &Config{}
			err := Lookup(tt.key).Set(cfg, tt.value)
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
			if got := Lookup(tt.key).Get(cfg); got != "" {
				t.Errorf("rejected value was stored: %q", got)
			}
		})
	}
}

func TestKeys_SetNormalizes(t *testing.T) {
	cfg := &Config{}
	if err := Lookup("default-provider").Set(cfg, "  Hetzner "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultProvider != "hetzner" {
		t.Errorf("DefaultProvider = %q, want %q", cfg.DefaultProvider, "hetzner")
	}

	if err := Lookup("log-level").Set(cfg, "WARN"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logging.LevelStr != "warn" {
		t.Errorf("Logging.LevelStr = %q, want %q", cfg.Logging.LevelStr, "warn")
	}
}

func TestKeyNames(t *testing.T) {
	names := KeyNames()
	if len(names) != len(Keys) {
		t.Fatalf("expected %d names, got %d", len(Keys), len(names))
	}
	for i, name := range names {
		if name != Keys[i].Name {
			t.Errorf("index %d: expected %q, got %q", i, Keys[i].Name, name)
		}
	}
}

func TestKeysHelp_ContainsAllKeys(t *testing.T) {
	help := KeysHelp()
	if !strings.Contains(help, "Available keys:") {
		t.Error("expected 'Available keys:' header in help output")
	}
	for _, k := range Keys {
		if !strings.Contains(help, k.Name) {
			t.Errorf("expected key %q in help output", k.Name)
		}
		if !strings.Contains(help, k.Description) {
			t.Errorf("expected description %q in help output", k.Description)
		}
	}
}
