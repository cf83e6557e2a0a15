package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:", len(e.Errors))
	for _, fe := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(fe.Error())
	}
	return sb.String()
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validLogFormats = map[string]bool{"json": true, "text": true}
var validMapOps = map[string]bool{":=": true, "=": true, "+=": true}

// Validate checks the configuration for semantic errors. It collects every
// problem it finds rather than stopping at the first one.
func Validate(cfg *Config) error {
	var errs []FieldError

	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.Server.ListenAddress == "" {
		add("server.listen_address", "cannot be empty")
	}
	if cfg.Server.ShutdownTimeout < 0 {
		add("server.shutdown_timeout", "cannot be negative")
	}

	if !validLogLevels[cfg.Logging.Level] {
		add("logging.level", "must be one of debug, info, warn, error (got %q)", cfg.Logging.Level)
	}
	if !validLogFormats[cfg.Logging.Format] {
		add("logging.format", "must be one of json, text (got %q)", cfg.Logging.Format)
	}

	if cfg.QueryLog.Enabled && cfg.QueryLog.Path == "" {
		add("query_log.path", "cannot be empty when the query log is enabled")
	}
	if cfg.QueryLog.RetentionDays < 0 {
		add("query_log.retention_days", "cannot be negative")
	}

	if cfg.Modules.SQL.Enabled && cfg.Modules.SQL.DSN == "" {
		add("modules.sql.dsn", "cannot be empty when the sql module is enabled")
	}

	seen := make(map[string]bool, len(cfg.Maps))
	for i, block := range cfg.Maps {
		field := fmt.Sprintf("maps[%d]", i)

		if block.Name == "" {
			add(field+".name", "cannot be empty")
		} else if seen[block.Name] {
			add(field+".name", "duplicate map block name %q", block.Name)
		}
		seen[block.Name] = true

		if block.Processor == "" {
			add(field+".processor", "cannot be empty")
		}
		if block.Src == "" {
			add(field+".src", "cannot be empty")
		}
		if len(block.Maps) == 0 {
			add(field+".maps", "at least one map entry is required")
		}
		for j, entry := range block.Maps {
			entryField := fmt.Sprintf("%s.maps[%d]", field, j)
			if entry.Dst == "" {
				add(entryField+".dst", "cannot be empty")
			}
			if entry.Op != "" && !validMapOps[entry.Op] {
				add(entryField+".op", "must be one of :=, =, += (got %q)", entry.Op)
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
