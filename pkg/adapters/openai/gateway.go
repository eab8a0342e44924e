// Package openai implements ports.Gateway on top of the official openai-go SDK.
// Any OpenAI-compatible chat-completions endpoint can be targeted through BaseURL.
package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/aretw0/planner/pkg/domain"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is used when Settings.Model is empty.
const DefaultModel = "gpt-4o"

// Settings configures the gateway.
type Settings struct {
	APIKey  string
	Model   string
	BaseURL string
	// HTTPClient overrides the transport (tests, proxies).
	HTTPClient *http.Client
}

// Gateway sends transcripts to a chat-completions endpoint.
type Gateway struct {
	client openai.Client
	model  string
}

// New validates the settings and builds the SDK client.
// The SDK's built-in retries are disabled: a failed call is reported once and ends the session.
func New(s Settings) (*Gateway, error) {
	if s.APIKey == "" {
		return nil, &domain.ConfigError{Key: "OPENAI_API_KEY", Reason: "api key is required"}
	}
	model := s.Model
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithMaxRetries(0),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	if s.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(s.HTTPClient))
	}

	return &Gateway{client: openai.NewClient(opts...), model: model}, nil
}

// Model returns the configured model name.
func (g *Gateway) Model() string {
	return g.model
}

// Send implements ports.Gateway.
func (g *Gateway) Send(ctx context.Context, transcript domain.Transcript, instruction string) (domain.Turn, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(transcript.Turns)+1)
	if instruction != "" {
		msgs = append(msgs, openai.SystemMessage(instruction))
	}
	for _, t := range transcript.Turns {
		switch t.Role {
		case domain.RoleAssistant:
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(t.Content))
		default:
			msgs = append(msgs, openai.UserMessage(t.Content))
		}
	}

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(g.model),
		Messages: msgs,
	})
	if err != nil {
		return domain.Turn{}, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return domain.Turn{}, &domain.GatewayError{Op: "send", Err: errors.New("openai: empty choices")}
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return domain.Turn{}, &domain.GatewayError{Op: "send", Err: domain.ErrEmptyResponse}
	}
	return domain.AssistantTurn(content), nil
}

func wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &domain.GatewayError{Op: "send", StatusCode: apiErr.StatusCode, Err: err}
	}
	return &domain.GatewayError{Op: "send", Err: err}
}
