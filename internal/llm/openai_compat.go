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
)

// defaultHTTPClient is shared across compat providers. Request deadlines come
// from the caller's context; the client timeout is only a backstop.
var defaultHTTPClient = &http.Client{
	Timeout: 5 * time.Minute,
}

// OpenAICompatProvider implements Provider for OpenAI-compatible chat APIs.
// Used by Ollama, LM Studio, DeepSeek, and other compatible servers.
type OpenAICompatProvider struct {
	baseURL string
	apiKey  string // Optional, local servers ignore it
	model   string
	name    string // Display name: "ollama", "lmstudio", "deepseek"
}

func NewOpenAICompatProvider(baseURL, apiKey, model, name string) *OpenAICompatProvider {
	return &OpenAICompatProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		name:    name,
	}
}

func (p *OpenAICompatProvider) Name() string {
	if p.model == "" {
		return p.name
	}
	return fmt.Sprintf("%s (%s)", p.name, p.model)
}

// OpenAI-compatible request/response structures, trimmed to the chat
// completion fields this client uses.
type oaiChatRequest struct {
	Model    string       `json:"model,omitempty"`
	Messages []oaiMessage `json:"messages"`
	Stream   bool         `json:"stream"`
}

type oaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type oaiChatResponse struct {
	Choices []oaiChoice  `json:"choices"`
	Error   *oaiAPIError `json:"error,omitempty"`
}

type oaiChoice struct {
	Message      oaiMessage `json:"message"`
	FinishReason string     `json:"finish_reason"`
}

type oaiAPIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (p *OpenAICompatProvider) Suggest(ctx context.Context, req Request) (string, error) {
	var messages []oaiMessage
	if req.System != "" {
		messages = append(messages, oaiMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, oaiMessage{Role: "user", Content: req.Input})

	body, err := json.Marshal(oaiChatRequest{
		Model:    p.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}

	url := p.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := defaultHTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s API request failed: %w", p.name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: failed to read response: %w", p.name, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", &AuthError{Provider: p.name, Hint: "check your API key"}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider:   p.name,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
		}
	}

	var chatResp oaiChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", &ProtocolError{Provider: p.name, Detail: err.Error()}
	}
	if chatResp.Error != nil {
		return "", &ProviderError{Provider: p.name, Message: chatResp.Error.Message}
	}
	if len(chatResp.Choices) == 0 {
		return "", &ProtocolError{Provider: p.name, Detail: "response contained no choices"}
	}

	return chatResp.Choices[0].Message.Content, nil
}
