// Package advice turns a computed risk profile into free-text flood
// preparedness advice via the OpenAI chat completions API.
package advice

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sahilb1203/aquaalert-backend/internal/domain"
)

// systemPrompt fixes the assistant's role and output shape: bullet points
// first, then a short explanation, practical tone, no emergency claims.
const systemPrompt = "You are an AI assistant that gives recommendations to people " +
	"about what to do for flood preparedness and response based on their address and home details. " +
	"First, output 2–4 bullet points (no intro text). Then add one blank line and provide a concise explanation " +
	"(max 2 paragraphs) covering how to execute the recommendations and why you chose them. " +
	"Keep tone clear, calm, and practical. Avoid medical or emergency claims; focus on general safety tips."

const adviceTemperature = 0.6

// Generator implements domain.AdviceGenerator using an OpenAI chat model.
type Generator struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewGenerator creates an advice generator for the given API key and model.
func NewGenerator(apiKey, model string, timeout time.Duration, logger *slog.Logger) *Generator {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Generator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// GenerateAdvice runs one chat completion over the risk profile and returns
// the model's advice text.
func (g *Generator) GenerateAdvice(ctx context.Context, req domain.AdviceRequest) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: adviceTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPayload(req)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion: no choices returned")
	}

	g.logger.Debug("advice generated",
		"model", g.model,
		"finish_reason", resp.Choices[0].FinishReason,
	)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// userPayload formats the risk profile as the line-per-field prompt the
// model was tuned against.
func userPayload(req domain.AdviceRequest) string {
	specs := req.Specs
	if specs == "" {
		specs = "N/A"
	}
	return fmt.Sprintf(
		"Address: %s\nElevation: %.2f meters\nAverage Monthly Rainfall: %.2f millimeters\nFlood Risk: %s\nHome Specs / Notes: %s",
		req.Address, req.ElevationM, req.AvgMonthlyRainMM, req.RiskLevel, specs,
	)
}
