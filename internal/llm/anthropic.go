package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	anthropicBaseURL    = "https://api.anthropic.com"
	anthropicVersion    = "2023-06-01"
	anthropicMaxTokens  = 4096
	anthropicStatusPath = "/v1/messages"
)

// anthropicExecutor talks to the Anthropic Messages API directly. The
// system prompt rides in the top-level "system" field, not as a message.
type anthropicExecutor struct {
	baseURL string
	client  *http.Client
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContentBlock `json:"content"`
}

func (a *anthropicExecutor) execute(ctx context.Context, plan Plan, req Request) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:  plan.Model,
		System: req.SystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.UserText},
		},
		MaxTokens: anthropicMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(a.baseURL, "/") + anthropicStatusPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", plan.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", errf(KindNetworkFailure, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &Error{Kind: KindAPIFailure, Status: resp.StatusCode, Message: string(raw)}
	}

	var msg anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return "", errf(KindProtocolFailure, "decode response: %v", err)
	}
	if len(msg.Content) == 0 {
		return "", errf(KindProtocolFailure, "response contained no content blocks")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(b.String()), nil
}
