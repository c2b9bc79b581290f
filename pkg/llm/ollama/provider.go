package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"notesmd-be/pkg/llm"
)

// Provider talks to a local Ollama server via /api/chat.
type Provider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ llm.Provider = &Provider{}

func NewProvider(baseURL, modelName string) *Provider {
	return &Provider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type chatRequest struct {
	Model    string       `json:"model"`
	Messages []chatMsg    `json:"messages"`
	Stream   bool         `json:"stream"`
	Options  *chatOptions `json:"options,omitempty"`
}

type chatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Model   string  `json:"model"`
	Message chatMsg `json:"message"`
	Done    bool    `json:"done"`
}

func (p *Provider) Chat(ctx context.Context, messages []llm.Message, options ...llm.Option) (string, error) {
	opts := &llm.Options{Temperature: 0.7}
	for _, o := range options {
		o(opts)
	}

	msgs := make([]chatMsg, len(messages))
	for i, m := range messages {
		role := m.Role
		if role == "model" {
			role = llm.RoleAssistant
		}
		msgs[i] = chatMsg{Role: role, Content: m.Content}
	}

	model := p.ModelName
	if opts.Model != "" {
		model = opts.Model
	}

	payload := chatRequest{
		Model:    model,
		Messages: msgs,
		Stream:   false,
		Options:  &chatOptions{Temperature: opts.Temperature},
	}
	if opts.MaxTokens > 0 {
		payload.Options.NumPredict = opts.MaxTokens
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return parsed.Message.Content, nil
}
