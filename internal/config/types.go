package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Intent values accepted for the service state field.
const (
	StatePresent = "present"
	StateAbsent  = "absent"
)

const defaultTimeout = 30 * time.Second

// Config represents the full directorctl configuration document: how to
// reach the Director API and the single service object to reconcile.
type Config struct {
	Director DirectorConfig `yaml:"director" validate:"required"`
	Service  ServiceConfig  `yaml:"service" validate:"required"`
}

// DirectorConfig holds connection settings for the Director API. TLS,
// authentication and proxy handling are entirely a transport concern; the
// reconciliation engine never sees these fields.
type DirectorConfig struct {
	URL           string `yaml:"url" validate:"required,url"`
	Username      string `yaml:"username,omitempty"`
	Password      string `yaml:"password,omitempty"`
	ClientCert    string `yaml:"client_cert,omitempty"`
	ClientKey     string `yaml:"client_key,omitempty"`
	ValidateCerts bool   `yaml:"validate_certs,omitempty"`
	UseProxy      bool   `yaml:"use_proxy,omitempty"`

	// Timeout is parsed from a Go duration string ("30s", "2m").
	Timeout time.Duration `yaml:"-"`
}

// UnmarshalYAML decodes the director block and applies defaults: certificate
// validation and proxy usage are on unless explicitly disabled, and the
// request timeout falls back to 30s.
func (d *DirectorConfig) UnmarshalYAML(value *yaml.Node) error {
	type rawDirector struct {
		URL           string `yaml:"url"`
		Username      string `yaml:"username"`
		Password      string `yaml:"password"`
		ClientCert    string `yaml:"client_cert"`
		ClientKey     string `yaml:"client_key"`
		ValidateCerts *bool  `yaml:"validate_certs"`
		UseProxy      *bool  `yaml:"use_proxy"`
		Timeout       string `yaml:"timeout"`
	}

	var raw rawDirector
	if err := value.Decode(&raw); err != nil {
		return err
	}

	d.URL = raw.URL
	d.Username = raw.Username
	d.Password = raw.Password
	d.ClientCert = raw.ClientCert
	d.ClientKey = raw.ClientKey

	d.ValidateCerts = true
	if raw.ValidateCerts != nil {
		d.ValidateCerts = *raw.ValidateCerts
	}

	d.UseProxy = true
	if raw.UseProxy != nil {
		d.UseProxy = *raw.UseProxy
	}

	d.Timeout = defaultTimeout
	if raw.Timeout != "" {
		parsed, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
		}
		d.Timeout = parsed
	}

	return nil
}

// ServiceConfig declares the desired shape of a single Director service
// object. Optional attributes use pointers so "not set" stays distinct from
// a zero value and can be omitted from the API payload entirely.
type ServiceConfig struct {
	State      string `yaml:"state,omitempty" validate:"required,oneof=present absent"`
	ObjectName string `yaml:"object_name" validate:"required,min=1"`
	Host       string `yaml:"host" validate:"required,min=1"`
	Disabled   bool   `yaml:"disabled,omitempty"`

	CheckCommand     *string `yaml:"check_command,omitempty"`
	CheckInterval    *string `yaml:"check_interval,omitempty"`
	CheckPeriod      *string `yaml:"check_period,omitempty"`
	CheckTimeout     *string `yaml:"check_timeout,omitempty"`
	MaxCheckAttempts *string `yaml:"max_check_attempts,omitempty"`
	RetryInterval    *string `yaml:"retry_interval,omitempty"`
	Notes            *string `yaml:"notes,omitempty"`
	NotesURL         *string `yaml:"notes_url,omitempty" validate:"omitempty,max=255"`

	EnableActiveChecks  *bool `yaml:"enable_active_checks,omitempty"`
	EnableEventHandler  *bool `yaml:"enable_event_handler,omitempty"`
	EnableNotifications *bool `yaml:"enable_notifications,omitempty"`
	EnablePassiveChecks *bool `yaml:"enable_passive_checks,omitempty"`
	EnablePerfdata      *bool `yaml:"enable_perfdata,omitempty"`
	UseAgent            *bool `yaml:"use_agent,omitempty"`
	Volatile            *bool `yaml:"volatile,omitempty"`

	// Groups and Imports keep their declared order. Import order is
	// semantically significant: later templates override earlier ones.
	Groups  []string `yaml:"groups,omitempty"`
	Imports []string `yaml:"imports,omitempty"`

	// Vars holds free-form custom properties, passed through opaquely.
	Vars map[string]any `yaml:"vars,omitempty"`
}

// UnmarshalYAML decodes the service block and defaults state to "present".
func (s *ServiceConfig) UnmarshalYAML(value *yaml.Node) error {
	type rawService ServiceConfig
	var raw rawService
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*s = ServiceConfig(raw)
	if s.State == "" {
		s.State = StatePresent
	}
	return nil
}
