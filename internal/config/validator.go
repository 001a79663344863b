package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	dcerrors "github.com/alexisbeaulieu97/directorctl/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})

	return validateInst
}

// ValidateConfig performs schema and cross-field validation on the
// configuration. It runs before any network call is made.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return dcerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if cfg.Director.ClientKey != "" && cfg.Director.ClientCert == "" {
		return dcerrors.NewValidationError("director.client_key", "client_key requires client_cert", nil)
	}

	if cfg.Director.Timeout <= 0 {
		return dcerrors.NewValidationError("director.timeout", "timeout must be positive", nil)
	}

	if strings.TrimSpace(cfg.Service.ObjectName) == "" {
		return dcerrors.NewValidationError("service.object_name", "object_name must not be blank", nil)
	}

	if strings.TrimSpace(cfg.Service.Host) == "" {
		return dcerrors.NewValidationError("service.host", "host must not be blank", nil)
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return dcerrors.NewValidationError(field, msg, err)
	}

	return dcerrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
