package config

import (
	"testing"
	"time"
)

func TestZeroValueDefaults(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if !cfg.IsSecure() {
		t.Error("zero config must default to secure")
	}
	if cfg.Credentials() != nil {
		t.Error("zero config must not produce credentials")
	}
	if cfg.Timeouts.Dial != 5*time.Second || cfg.Timeouts.Request != 60*time.Second {
		t.Errorf("unexpected default timeouts: %+v", cfg.Timeouts)
	}
}

func TestNilConfig(t *testing.T) {
	var cfg *Config
	if err := cfg.Validate(); err != nil {
		t.Fatalf("nil config must validate: %v", err)
	}
	if !cfg.IsSecure() {
		t.Error("nil config must default to secure")
	}
	if cfg.Credentials() != nil {
		t.Error("nil config must not produce credentials")
	}
}

func TestExplicitInsecure(t *testing.T) {
	cfg := &Config{Secure: Bool(false)}
	if cfg.IsSecure() {
		t.Error("Secure=false must disable https")
	}
}

func TestInvalidEndpointURL(t *testing.T) {
	cfg := &Config{EndpointURL: "not a url"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for malformed endpoint URL")
	}
}

func TestValidEndpointURL(t *testing.T) {
	cfg := &Config{EndpointURL: "http://custom.foo"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestCredentialsRequireFullTriple(t *testing.T) {
	cfg := &Config{AccessKeyID: "ak", SecretAccessKey: "sk"}
	if cfg.Credentials() != nil {
		t.Fatal("partial triple must not produce credentials")
	}

	cfg.SessionToken = "tok"
	creds := cfg.Credentials()
	if creds == nil {
		t.Fatal("full triple must produce credentials")
	}
	if creds.AccessKey != "ak" || creds.SecretKey != "sk" || creds.Token != "tok" {
		t.Fatalf("credential fields must match config: %+v", creds)
	}
}

func TestTimeoutsPreserved(t *testing.T) {
	tt := Timeouts{Dial: time.Second, Request: 2 * time.Second}.WithDefaults()
	if tt.Dial != time.Second || tt.Request != 2*time.Second {
		t.Fatalf("explicit timeouts must be preserved: %+v", tt)
	}
}
