// Package synthesizer phrases the final user-facing reply from the current
// message, the conversation transcript, and the fulfillment result when a
// handler ran. It is the single place natural-language phrasing is decided.
package synthesizer

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/foodiespot/assistant/agent/contract"
	promptx "github.com/foodiespot/assistant/agent/prompt"
)

// AnswerMarker separates the reply from any prompt echo in the generated
// text. Everything after its last occurrence is the reply; without it the
// whole output is used verbatim.
const AnswerMarker = "Final Answer:"

// NoToolMarker is embedded in the prompt when no handler produced a result.
const NoToolMarker = "(no tool was used)"

const (
	replyMaxTokens   = 256
	replyTemperature = 0.7
)

var whitespacePattern = regexp.MustCompile(`\s+`)

type Synthesizer struct {
	oracle   contractx.Oracle
	template string
}

var _ contractx.Synthesizer = (*Synthesizer)(nil)

func New(oracle contractx.Oracle, template string) *Synthesizer {
	return &Synthesizer{oracle: oracle, template: template}
}

func (s *Synthesizer) Synthesize(
	ctx context.Context,
	userMessage string,
	history []contractx.Turn,
	result *contractx.FulfillmentResult,
) (string, error) {
	prompt := promptx.Render(s.template, map[string]string{
		"history":      renderHistory(history),
		"tool_result":  renderResult(result),
		"user_message": userMessage,
	})

	out, err := s.oracle.Generate(ctx, prompt, contractx.GenerateOptions{
		MaxNewTokens: replyMaxTokens,
		DoSample:     true,
		Temperature:  replyTemperature,
	})
	if err != nil {
		return "", err
	}
	log.Debug().Str("raw", out).Msg("synthesizer oracle output")

	reply := out
	if idx := strings.LastIndex(out, AnswerMarker); idx >= 0 {
		reply = out[idx+len(AnswerMarker):]
	}

	// Normalization contract: downstream consumers receive a single-line,
	// whitespace-collapsed string.
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(reply, " ")), nil
}

func renderHistory(history []contractx.Turn) string {
	if len(history) == 0 {
		return "(empty)"
	}
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, turn.Role+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}

func renderResult(result *contractx.FulfillmentResult) string {
	if result == nil {
		return NoToolMarker
	}
	data, err := json.Marshal(result)
	if err != nil {
		// Message alone still grounds the reply.
		return result.Message
	}
	return string(data)
}
