package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pavithraB-wec/OnlineQuizSystem/internal/llm/prompts"
	"github.com/pavithraB-wec/OnlineQuizSystem/internal/model"
)

// draftResponse is the JSON envelope the model is instructed to return.
type draftResponse struct {
	Questions []model.QuestionDraft `json:"questions"`
}

// Client wraps an OpenAI-compatible API client for question draft generation.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a new LLM client.
func New(baseURL, apiKey, modelName string) (*Client, error) {
	if err := prompts.Load(prompts.FS); err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}, nil
}

// Ping verifies the endpoint is reachable and the API key is accepted.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("LLM endpoint unreachable: %w", err)
	}
	return nil
}

// GenerateDrafts asks the model for count multiple-choice question drafts on
// the given topic. Drafts with an unusable correct option are dropped rather
// than surfaced to the teacher.
func (c *Client) GenerateDrafts(ctx context.Context, topic string, difficulty prompts.Variant, count int) ([]model.QuestionDraft, error) {
	systemPrompt, err := prompts.BuildGeneratePrompt(difficulty, topic, count)
	if err != nil {
		return nil, err
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("LLM returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM response", "raw", raw)

	var parsed draftResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse LLM response: %w (raw: %s)", err, raw)
	}

	drafts := normalizeDrafts(parsed.Questions)
	if len(drafts) == 0 {
		return nil, fmt.Errorf("LLM produced no usable drafts")
	}
	return drafts, nil
}

func normalizeDrafts(in []model.QuestionDraft) []model.QuestionDraft {
	var out []model.QuestionDraft
	for _, d := range in {
		d.CorrectOption = strings.ToUpper(strings.TrimSpace(d.CorrectOption))
		switch d.CorrectOption {
		case "A", "B", "C", "D":
		default:
			slog.Warn("dropping draft with invalid correct option", "correct", d.CorrectOption)
			continue
		}
		if d.Text == "" || d.OptionA == "" || d.OptionB == "" || d.OptionC == "" || d.OptionD == "" {
			slog.Warn("dropping incomplete draft", "text", d.Text)
			continue
		}
		if d.Marks < 1 {
			d.Marks = 1
		}
		out = append(out, d)
	}
	return out
}
