package icinga

import (
	"net/url"

	"github.com/alexisbeaulieu97/directorctl/internal/config"
	dcerrors "github.com/alexisbeaulieu97/directorctl/pkg/errors"
)

// Intent is the declared desired presence of an object.
type Intent string

const (
	// IntentPresent declares the object should exist with the desired shape.
	IntentPresent Intent = "present"
	// IntentAbsent declares the object should not exist.
	IntentAbsent Intent = "absent"
)

// ObjectKey is the composite identifier the Director uses to look up a
// service: object name plus the host it is assigned to. No numeric or
// internal ID is ever trusted across calls.
type ObjectKey struct {
	Name string
	Host string
}

// Validate ensures both key components are set.
func (k ObjectKey) Validate() error {
	if k.Name == "" {
		return dcerrors.NewValidationError("object_name", "object name must not be empty", nil)
	}
	if k.Host == "" {
		return dcerrors.NewValidationError("host", "host must not be empty", nil)
	}
	return nil
}

// Query builds the lookup query for the key. Each component is
// percent-encoded independently so spaces, '&', '?' and non-ASCII
// round-trip.
func (k ObjectKey) Query() url.Values {
	return url.Values{
		"name": []string{k.Name},
		"host": []string{k.Host},
	}
}

// DesiredState maps attribute names to declared values. Attributes that were
// not set in the declaration are absent from the map and therefore excluded
// from both the API payload and the diff.
type DesiredState map[string]any

// RemoteState is the attribute mapping the Director returns for an existing
// object. It shares DesiredState's shape but may carry extra
// server-populated fields which are ignored during comparison.
type RemoteState map[string]any

// Definition is the typed desired-state payload assembled from a validated
// declaration, independent of transport. It is immutable after construction.
type Definition struct {
	Key    ObjectKey
	Intent Intent
	Attrs  DesiredState
}

// NewDefinition builds a Definition from a validated service declaration.
func NewDefinition(svc config.ServiceConfig) (*Definition, error) {
	key := ObjectKey{Name: svc.ObjectName, Host: svc.Host}
	if err := key.Validate(); err != nil {
		return nil, err
	}

	intent := Intent(svc.State)
	switch intent {
	case IntentPresent, IntentAbsent:
	default:
		return nil, dcerrors.NewValidationError("state", "state must be present or absent", nil)
	}

	attrs := DesiredState{
		"object_name": svc.ObjectName,
		"host":        svc.Host,
		"object_type": "object",
		"disabled":    svc.Disabled,
	}

	setString(attrs, "check_command", svc.CheckCommand)
	setString(attrs, "check_interval", svc.CheckInterval)
	setString(attrs, "check_period", svc.CheckPeriod)
	setString(attrs, "check_timeout", svc.CheckTimeout)
	setString(attrs, "max_check_attempts", svc.MaxCheckAttempts)
	setString(attrs, "retry_interval", svc.RetryInterval)
	setString(attrs, "notes", svc.Notes)
	setString(attrs, "notes_url", svc.NotesURL)

	setBool(attrs, "enable_active_checks", svc.EnableActiveChecks)
	setBool(attrs, "enable_event_handler", svc.EnableEventHandler)
	setBool(attrs, "enable_notifications", svc.EnableNotifications)
	setBool(attrs, "enable_passive_checks", svc.EnablePassiveChecks)
	setBool(attrs, "enable_perfdata", svc.EnablePerfdata)
	setBool(attrs, "use_agent", svc.UseAgent)
	setBool(attrs, "volatile", svc.Volatile)

	// Slice order is preserved verbatim; import order decides template
	// precedence on the Director side and must never be re-sorted.
	if len(svc.Groups) > 0 {
		attrs["groups"] = append([]string(nil), svc.Groups...)
	}
	if len(svc.Imports) > 0 {
		attrs["imports"] = append([]string(nil), svc.Imports...)
	}
	if len(svc.Vars) > 0 {
		vars := make(map[string]any, len(svc.Vars))
		for k, v := range svc.Vars {
			vars[k] = v
		}
		attrs["vars"] = vars
	}

	return &Definition{Key: key, Intent: intent, Attrs: attrs}, nil
}

func setString(attrs DesiredState, key string, value *string) {
	if value != nil {
		attrs[key] = *value
	}
}

func setBool(attrs DesiredState, key string, value *bool) {
	if value != nil {
		attrs[key] = *value
	}
}
