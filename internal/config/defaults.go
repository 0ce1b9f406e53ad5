package config

const (
	// DefaultLLMHost is the Ollama endpoint used when none is configured.
	DefaultLLMHost = "http://localhost:11434"
	// DefaultLLMModel is the completion model used for report generation.
	DefaultLLMModel = "llama3.1:latest"
	// DefaultLLMTimeoutSeconds bounds a single completion call.
	DefaultLLMTimeoutSeconds = 120
	// DefaultShellTimeoutSeconds bounds a single command execution.
	DefaultShellTimeoutSeconds = 30
	// DefaultWebTimeoutSeconds bounds search and scrape HTTP calls.
	DefaultWebTimeoutSeconds = 15
	// DefaultMaxResponseSize caps fetched page bodies.
	DefaultMaxResponseSize = 5 * 1024 * 1024
	// DefaultSMTPPort is the submission port used when smtp.host is set
	// without an explicit port.
	DefaultSMTPPort = 587
	// DefaultSender is the From address used when none is configured.
	DefaultSender = "nebulus@local"
)

// DefaultAllowedCommands is the shell allow-list used when the config does
// not provide one. Read-only inspection binaries only.
var DefaultAllowedCommands = []string{
	"ls", "cat", "head", "tail", "grep", "find", "wc",
	"date", "pwd", "du", "df", "uname", "echo",
}

func applyDefaults(cfg *Config) {
	if cfg.Workspace.Path == "" {
		cfg.Workspace.Path = "/workspace"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
	if cfg.LLM.Host == "" {
		cfg.LLM.Host = DefaultLLMHost
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultLLMModel
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = DefaultLLMTimeoutSeconds
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = DefaultSMTPPort
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = DefaultSender
	}
	if cfg.Scheduler.DBPath == "" {
		cfg.Scheduler.DBPath = "scheduler.db"
	}
	if cfg.HTTP.Listen == "" {
		cfg.HTTP.Listen = ":8000"
	}
	if len(cfg.Tools.Shell.AllowedCommands) == 0 {
		cfg.Tools.Shell.AllowedCommands = append([]string(nil), DefaultAllowedCommands...)
	}
	if cfg.Tools.Shell.TimeoutSeconds == 0 {
		cfg.Tools.Shell.TimeoutSeconds = DefaultShellTimeoutSeconds
	}
	if cfg.Tools.Web.TimeoutSeconds == 0 {
		cfg.Tools.Web.TimeoutSeconds = DefaultWebTimeoutSeconds
	}
	if cfg.Tools.Web.MaxResponseSize == 0 {
		cfg.Tools.Web.MaxResponseSize = DefaultMaxResponseSize
	}
	if cfg.Tools.Web.UserAgent == "" {
		cfg.Tools.Web.UserAgent = "blackbox/1.0"
	}
}
