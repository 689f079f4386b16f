package flavor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

const systemPrompt = "You narrate a horror game set in a dark pine forest. " +
	"Answer with one ominous sentence of at most twenty words."

// HTTPProvider calls a chat-completions style endpoint with a bearer token
type HTTPProvider struct {
	Endpoint string
	Model    string
	client   *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewHTTPProvider builds a provider whose client authenticates with apiKey
func NewHTTPProvider(ctx context.Context, endpoint, model, apiKey string) *HTTPProvider {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"})
	return &HTTPProvider{
		Endpoint: endpoint,
		Model:    model,
		client:   oauth2.NewClient(ctx, src),
	}
}

func (p *HTTPProvider) Generate(ctx context.Context, prompt Prompt) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: p.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt.Text},
		},
		MaxTokens: 60,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", prompt.ID)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call flavor endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("flavor endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("flavor endpoint returned no choices")
	}
	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}
