package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads the configuration from a TOML file, applies defaults and
// expands environment variable references.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	expandConfig(&cfg)

	return &cfg, nil
}

// Default returns a configuration with all defaults applied, without reading
// any file. Used when no config file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	expandConfig(&cfg)
	return &cfg
}

// Validate checks the configuration and returns all problems found.
func (c *Config) Validate() []error {
	var errors []error

	if c.Workspace.Path == "" {
		errors = append(errors, fmt.Errorf("workspace.path is required"))
	}

	if c.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[strings.ToLower(c.Logging.Level)] {
			errors = append(errors, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
		}
	}

	if c.Logging.Format != "" {
		validFormats := map[string]bool{"json": true, "text": true}
		if !validFormats[strings.ToLower(c.Logging.Format)] {
			errors = append(errors, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
		}
	}

	if c.LLM.Host == "" {
		errors = append(errors, fmt.Errorf("llm.host is required"))
	}

	if c.SMTP.Host != "" && c.SMTP.Port <= 0 {
		errors = append(errors, fmt.Errorf("smtp.port must be positive when smtp.host is set"))
	}

	if c.Scheduler.DBPath == "" {
		errors = append(errors, fmt.Errorf("scheduler.db_path is required"))
	}

	if c.Tools.Shell.Enabled && len(c.Tools.Shell.AllowedCommands) == 0 {
		errors = append(errors, fmt.Errorf("tools.shell.allowed_commands cannot be empty when shell tool is enabled"))
	}
	for _, cmd := range c.Tools.Shell.AllowedCommands {
		if strings.TrimSpace(cmd) == "" {
			errors = append(errors, fmt.Errorf("tools.shell.allowed_commands contains empty command"))
		}
	}

	return errors
}

// expandConfig expands ${VAR} references and ~ in paths in place.
func expandConfig(c *Config) {
	c.Workspace.Path = expandHome(expandEnv(c.Workspace.Path))
	c.Scheduler.DBPath = expandHome(expandEnv(c.Scheduler.DBPath))
	c.LLM.Host = expandEnv(c.LLM.Host)
	c.SMTP.Host = expandEnv(c.SMTP.Host)
	c.SMTP.Username = expandEnv(c.SMTP.Username)
	c.SMTP.Password = expandEnv(c.SMTP.Password)
	c.SMTP.From = expandEnv(c.SMTP.From)
}

// expandEnv expands a ${VAR} or ${VAR:default} reference.
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	if parts := strings.SplitN(content, ":", 2); len(parts) == 2 {
		if val := os.Getenv(parts[0]); val != "" {
			return val
		}
		return parts[1]
	}

	return os.Getenv(content)
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
