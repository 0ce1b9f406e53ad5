// Package config provides configuration loading and validation for the hub.
// It supports TOML configuration files with environment variable expansion,
// default values, and comprehensive validation.
//
// Configuration structure:
//   - [workspace]: Workspace directory shared by all tools
//   - [logging]: Logging level, format, and output
//   - [llm]: Ollama endpoint and model
//   - [smtp]: Report delivery transport (empty host disables delivery)
//   - [scheduler]: Job store location
//   - [http]: REST facade listen address
//   - [tools.shell]: Command allow-list and timeout
//   - [tools.web]: Search/scrape timeouts and limits
//
// Environment variables can be referenced using ${VAR} or ${VAR:default}
// syntax, for example: password = "${SMTP_PASS}".
package config

// Config represents the main application configuration.
type Config struct {
	Workspace WorkspaceConfig `toml:"workspace"`
	Logging   LoggingConfig   `toml:"logging"`
	LLM       LLMConfig       `toml:"llm"`
	SMTP      SMTPConfig      `toml:"smtp"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	HTTP      HTTPConfig      `toml:"http"`
	Tools     ToolsConfig     `toml:"tools"`
}

// WorkspaceConfig holds the workspace root all file and command tools are
// confined to.
type WorkspaceConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// LLMConfig holds the completion endpoint settings.
type LLMConfig struct {
	Host           string `toml:"host"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// SMTPConfig holds report delivery settings. An empty Host is a valid
// configuration meaning delivery is disabled.
type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

// SchedulerConfig holds job store settings.
type SchedulerConfig struct {
	DBPath string `toml:"db_path"`
}

// HTTPConfig holds the REST facade settings.
type HTTPConfig struct {
	Listen string `toml:"listen"`
}

// ToolsConfig groups per-tool settings.
type ToolsConfig struct {
	Shell ShellToolConfig `toml:"shell"`
	Web   WebToolConfig   `toml:"web"`
}

// ShellToolConfig holds the command execution settings.
type ShellToolConfig struct {
	Enabled         bool     `toml:"enabled"`
	AllowedCommands []string `toml:"allowed_commands"`
	TimeoutSeconds  int      `toml:"timeout_seconds"`
}

// WebToolConfig holds the search and scrape settings.
type WebToolConfig struct {
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	MaxResponseSize int64  `toml:"max_response_size"`
	UserAgent       string `toml:"user_agent"`
}
