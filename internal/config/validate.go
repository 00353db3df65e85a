package config

import "fmt"

// Issue describes a single validation problem.
type Issue struct {
	Path    string
	Message string
}

var knownLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true,
	"warn": true, "error": true, "fatal": true, "silent": true,
}

// Validate checks the configuration for problems. It returns all issues
// found rather than stopping at the first.
func Validate(cfg *Config) []Issue {
	var issues []Issue

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		issues = append(issues, Issue{
			Path:    "server.port",
			Message: fmt.Sprintf("port %d out of range (1-65535)", cfg.Server.Port),
		})
	}

	if !knownLogLevels[cfg.Logging.Level] {
		issues = append(issues, Issue{
			Path:    "logging.level",
			Message: fmt.Sprintf("unknown log level %q", cfg.Logging.Level),
		})
	}

	for _, origin := range cfg.Server.AllowedOrigins {
		if origin == "" {
			issues = append(issues, Issue{
				Path:    "server.allowedOrigins",
				Message: "empty origin entry",
			})
		}
	}

	return issues
}
