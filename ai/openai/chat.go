package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/matchwell/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrNoChoices is returned when the chat model produces no completion.
var ErrNoChoices = errors.New("chat model returned no choices")

// chatJSON sends a system/user prompt pair in JSON mode and decodes the
// answer, retrying when the model emits something that does not decode.
type chatJSON struct {
	client      llms.Model
	maxAttempts int
	logger      *slog.Logger
}

func newChatClient(config *ai.Config) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken(config.Token()),
		openai.WithModel(config.ClassifierModel),
	)
}

func (c *chatJSON) complete(ctx context.Context, systemPrompt, text string, out any) error {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, collapseWhitespace(text)),
	}

	attempts := max(c.maxAttempts, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			// Transport failures are not retried here; callers degrade instead.
			return err
		}
		if len(response.Choices) < 1 {
			return ErrNoChoices
		}

		raw := extractJSONObject(response.Choices[0].Content)
		if err := json.Unmarshal([]byte(raw), out); err == nil {
			return nil
		}
		if lastErr = json.Unmarshal([]byte(repairJSON(raw)), out); lastErr == nil {
			return nil
		}
		c.logger.Warn("error parsing model response",
			"attempt", attempt,
			"response", raw,
			"err", lastErr)
	}
	return fmt.Errorf("decoding model response after %d attempts: %w", attempts, lastErr)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
