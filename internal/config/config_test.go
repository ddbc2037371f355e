package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.ClientType != "sponsor" {
		t.Errorf("client type = %q", cfg.ClientType)
	}
	if cfg.CookiesAccepted != ConsentUnset {
		t.Errorf("consent should start unset, got %q", cfg.CookiesAccepted)
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := Default()
	cfg.API.URL = "https://api.local/api/v1"
	cfg.Organization = 42
	cfg.ClientType = "provider"
	if err := cfg.SetConsent(ConsentFunctional); err != nil {
		t.Fatalf("SetConsent: %v", err)
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.API.URL != "https://api.local/api/v1" || got.Organization != 42 {
		t.Errorf("loaded %+v", got)
	}
	if got.CookiesAccepted != ConsentFunctional {
		t.Errorf("consent = %q", got.CookiesAccepted)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FUNDESK_API_URL", "https://override.local")
	t.Setenv("FUNDESK_API_TOKEN", "secret")
	t.Setenv("FUNDESK_ORGANIZATION", "99")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.URL != "https://override.local" {
		t.Errorf("url = %q", cfg.API.URL)
	}
	if cfg.API.Token != "secret" {
		t.Errorf("token = %q", cfg.API.Token)
	}
	if cfg.Organization != 99 {
		t.Errorf("organization = %d", cfg.Organization)
	}
}

func TestInvalidConsentRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("cookies_accepted: maybe\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("invalid consent value accepted")
	}

	cfg := Default()
	if err := cfg.SetConsent("sometimes"); err == nil {
		t.Fatal("SetConsent accepted a bogus value")
	}
	if cfg.CookiesAccepted != ConsentUnset {
		t.Errorf("failed SetConsent mutated the flag: %q", cfg.CookiesAccepted)
	}
}
