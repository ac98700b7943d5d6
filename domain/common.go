package domain

import (
	"errors"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var (
	MessageFailedBodyRequest    = "Invalid request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageRouteNotFound        = "Route not found"
	MessageDatabaseUnavailable  = "Database unavailable"

	ErrConfigMissing = errors.New("required configuration is missing")
)

// ConfigError names the missing setting. It matches ErrConfigMissing.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfigMissing
}
