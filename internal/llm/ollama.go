package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nebulus/blackbox/internal/logger"
)

const (
	// OllamaDefaultModel is used when the configuration names no model.
	OllamaDefaultModel = "llama3.1:latest"
	// OllamaRequestTimeout is the default bound on a completion call.
	OllamaRequestTimeout = 120 * time.Second
	// emptyResponseText is returned when the API answers without content.
	emptyResponseText = "No response from LLM."
)

// OllamaConfig contains configuration for the Ollama provider.
type OllamaConfig struct {
	Host           string // base URL, e.g. http://ollama:11434
	Model          string // model identifier (optional)
	TimeoutSeconds int    // per-request timeout (optional)
}

// OllamaProvider implements Provider against the Ollama generate API.
type OllamaProvider struct {
	client *http.Client
	config OllamaConfig
	apiURL string
	logger *logger.Logger
}

// ollamaRequest is the request body for /api/generate.
type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// ollamaResponse is the non-streaming response body from /api/generate.
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// NewOllamaProvider creates a provider for the given endpoint.
func NewOllamaProvider(cfg OllamaConfig, log *logger.Logger) *OllamaProvider {
	if cfg.Model == "" {
		cfg.Model = OllamaDefaultModel
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = OllamaRequestTimeout
	}

	return &OllamaProvider{
		client: &http.Client{Timeout: timeout},
		config: cfg,
		apiURL: strings.TrimRight(cfg.Host, "/") + "/api/generate",
		logger: log,
	}
}

// Model returns the configured model identifier.
func (p *OllamaProvider) Model() string {
	return p.config.Model
}

// Generate sends the prompt to Ollama and returns the completion text.
func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(ollamaRequest{
		Model:  p.config.Model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request failed: status=%d body=%s", resp.StatusCode, truncate(string(body), 200))
	}

	var apiResp ollamaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if apiResp.Error != "" {
		return "", fmt.Errorf("completion error: %s", apiResp.Error)
	}

	if p.logger != nil {
		p.logger.Debug("completion finished",
			logger.Field{Key: "model", Value: p.config.Model},
			logger.Field{Key: "duration", Value: time.Since(start).String()})
	}

	if apiResp.Response == "" {
		return emptyResponseText, nil
	}
	return apiResp.Response, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
