package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[workspace]
path = "/tmp/ws"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ws", cfg.Workspace.Path)
	assert.Equal(t, DefaultLLMHost, cfg.LLM.Host)
	assert.Equal(t, DefaultLLMModel, cfg.LLM.Model)
	assert.Equal(t, DefaultSMTPPort, cfg.SMTP.Port)
	assert.Equal(t, DefaultSender, cfg.SMTP.From)
	assert.Equal(t, DefaultShellTimeoutSeconds, cfg.Tools.Shell.TimeoutSeconds)
	assert.NotEmpty(t, cfg.Tools.Shell.AllowedCommands)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_SMTP_HOST", "mail.example.com")
	t.Setenv("TEST_SMTP_PASS", "hunter2")

	path := writeConfig(t, `
[workspace]
path = "/tmp/ws"

[smtp]
host = "${TEST_SMTP_HOST}"
password = "${TEST_SMTP_PASS}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mail.example.com", cfg.SMTP.Host)
	assert.Equal(t, "hunter2", cfg.SMTP.Password)
}

func TestLoad_EnvVarDefaultValue(t *testing.T) {
	path := writeConfig(t, `
[workspace]
path = "/tmp/ws"

[llm]
host = "${UNSET_LLM_HOST:http://ollama:11434}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://ollama:11434", cfg.LLM.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "verbose", Format: "xml"},
		SMTP:    SMTPConfig{Host: "mail.example.com", Port: 0},
		Tools: ToolsConfig{
			Shell: ShellToolConfig{Enabled: true},
		},
	}

	errs := cfg.Validate()
	require.NotEmpty(t, errs)

	var messages []string
	for _, e := range errs {
		messages = append(messages, e.Error())
	}
	joined := ""
	for _, m := range messages {
		joined += m + "\n"
	}
	assert.Contains(t, joined, "workspace.path is required")
	assert.Contains(t, joined, "invalid logging.level")
	assert.Contains(t, joined, "invalid logging.format")
	assert.Contains(t, joined, "smtp.port must be positive")
	assert.Contains(t, joined, "allowed_commands cannot be empty")
}

func TestValidate_DefaultConfigIsValid(t *testing.T) {
	assert.Empty(t, Default().Validate())
}

func TestLoadEnvOptional(t *testing.T) {
	// Missing file is fine.
	require.NoError(t, LoadEnvOptional(filepath.Join(t.TempDir(), ".env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# comment\nTEST_ENV_KEY=value\n\nBROKEN\n"), 0644))
	require.NoError(t, LoadEnvOptional(path))
	assert.Equal(t, "value", os.Getenv("TEST_ENV_KEY"))
	t.Cleanup(func() { os.Unsetenv("TEST_ENV_KEY") })
}
