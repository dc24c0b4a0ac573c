// Package config defines the caller-supplied configuration for generated
// clients: endpoint scheme and override, TLS verification, explicit
// credentials and HTTP timeouts. It also provides validation and defaulting
// helpers. A Config is read once at client creation and treated as immutable
// afterwards.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/thejcannon/botocore/pkg/credentials"
)

var structValidator = validator.New()

// Config holds all per-client settings. The zero value is valid and selects
// the defaults: a secure endpoint derived from the region, transport-default
// TLS verification, and transport-side credential resolution.
type Config struct {
	// Secure selects https when unset or true, http when explicitly false.
	Secure *bool `json:"is_secure"`
	// EndpointURL overrides the region-derived endpoint when non-empty.
	EndpointURL string `json:"endpoint_url" validate:"omitempty,url"`
	// Verify toggles TLS certificate verification. Unset defers to the
	// transport default.
	Verify *bool `json:"verify"`

	// AccessKeyID, SecretAccessKey and SessionToken form an explicit
	// credential triple. All three must be supplied for the client to build
	// a static credentials object; otherwise resolution is left to the
	// transport collaborator.
	AccessKeyID     string `json:"aws_access_key_id"`
	SecretAccessKey string `json:"aws_secret_access_key"`
	SessionToken    string `json:"aws_session_token"`

	// Debug enables verbose logging.
	Debug bool `json:"debug"`
	// Timeouts configures transport deadlines. See Timeouts.WithDefaults.
	Timeouts Timeouts `json:"timeouts"`
}

// Timeouts controls transport deadlines. Zero values are replaced by sane
// defaults in WithDefaults. The client core itself sets no deadlines; these
// apply inside the HTTP endpoint only.
type Timeouts struct {
	Dial    time.Duration // TCP connect
	Request time.Duration // full request/response round trip
}

// Validate normalizes the configuration and checks field constraints. It is
// safe to call on a nil receiver, which counts as an all-defaults config.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := structValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid client config: %w", err)
	}
	c.Timeouts = c.Timeouts.WithDefaults()
	return nil
}

// IsSecure reports whether the derived endpoint should use https.
func (c *Config) IsSecure() bool {
	if c == nil || c.Secure == nil {
		return true
	}
	return *c.Secure
}

// Credentials returns a static credentials object when the explicit triple is
// fully supplied, nil otherwise.
func (c *Config) Credentials() *credentials.Credentials {
	if c == nil {
		return nil
	}
	if c.AccessKeyID == "" || c.SecretAccessKey == "" || c.SessionToken == "" {
		return nil
	}
	return credentials.NewStatic(c.AccessKeyID, c.SecretAccessKey, c.SessionToken)
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Dial:    5s
//	Request: 60s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Dial == 0 {
		tt.Dial = 5 * time.Second
	}
	if tt.Request == 0 {
		tt.Request = 60 * time.Second
	}
	return tt
}

// Bool is a convenience for populating Secure and Verify.
func Bool(v bool) *bool {
	return &v
}
