package llm

import (
	"context"
	"encoding/json"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

const (
	atlasCloudBaseURL = "https://api.atlascloud.ai/v1"

	openaiMaxTokens = 4096
	atlasMaxTokens  = 2048
)

// openaiExecutor calls the OpenAI chat-completions API.
type openaiExecutor struct {
	// BaseURL override for tests; empty means the public endpoint.
	baseURL string
}

func (o *openaiExecutor) execute(ctx context.Context, plan Plan, req Request) (string, error) {
	cfg := openai.DefaultConfig(plan.APIKey)
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	return chatCompletion(ctx, openai.NewClientWithConfig(cfg), plan.Model, req, openaiMaxTokens)
}

// atlasExecutor calls AtlasCloud, which speaks the OpenAI chat protocol
// at its own endpoint with vendor-qualified model names.
type atlasExecutor struct {
	baseURL string
}

func (a *atlasExecutor) execute(ctx context.Context, plan Plan, req Request) (string, error) {
	cfg := openai.DefaultConfig(plan.APIKey)
	cfg.BaseURL = a.baseURL
	return chatCompletion(ctx, openai.NewClientWithConfig(cfg), plan.Model, req, atlasMaxTokens)
}

// chatCompletion is the shared OpenAI-protocol call: system prompt as a
// system-role message, user text as a user-role message, single choice.
func chatCompletion(ctx context.Context, client *openai.Client, model string, req Request, maxTokens int) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserText,
	})

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errf(KindProtocolFailure, "response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyOpenAIError sorts go-openai failures into the taxonomy. Context
// verdicts are re-checked by the dispatcher afterwards, so only the
// transport-level distinctions matter here.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: KindAPIFailure, Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{Kind: KindAPIFailure, Status: reqErr.HTTPStatusCode, Message: reqErr.Error()}
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return errf(KindProtocolFailure, "malformed response body: %v", err)
	}
	return errf(KindNetworkFailure, "%v", err)
}
