package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// Validate checks a loaded configuration for values the rest of the system
// cannot work with. It returns the first problem found.
func Validate(config *Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return &ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("port %d out of range 1-65535", config.Server.Port),
		}
	}

	if config.Server.Host == "" {
		return &ValidationError{
			Field:   "server.host",
			Message: "host must not be empty",
		}
	}

	if len(config.Content.Roots) == 0 {
		return &ValidationError{
			Field:   "content.roots",
			Message: "at least one content root is required",
		}
	}

	for _, root := range config.Content.Roots {
		if strings.Contains(root, "..") {
			return &ValidationError{
				Field:   "content.roots",
				Message: fmt.Sprintf("content root %q must not contain path traversal", root),
			}
		}
	}

	outputDir := filepath.Clean(config.Build.OutputDir)
	if outputDir == "." || outputDir == "/" {
		return &ValidationError{
			Field:   "build.output_dir",
			Message: fmt.Sprintf("refusing to build into %q", config.Build.OutputDir),
		}
	}

	// The static builder removes the output directory when clean is set, so
	// it must never alias a content root.
	for _, root := range config.Content.Roots {
		if filepath.Clean(root) == outputDir {
			return &ValidationError{
				Field:   "build.output_dir",
				Message: fmt.Sprintf("output dir %q overlaps content root %q", config.Build.OutputDir, root),
			}
		}
	}

	return nil
}
