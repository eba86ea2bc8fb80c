// Package classifier maps raw user text to a routing intent via one oracle
// call. Low-confidence or unparsable classifications are forced to the
// fallback intent: a wrong guess must never trigger a handler side effect.
package classifier

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/foodiespot/assistant/agent/contract"
	promptx "github.com/foodiespot/assistant/agent/prompt"
)

// AcceptanceThreshold gates routing: classifications at or below it fall back
// to general_response with confidence 0.
const AcceptanceThreshold = 0.9

const classifyMaxTokens = 24

// The last matching line wins: oracles echo the instructional examples, and
// those precede the real answer.
var intentLinePattern = regexp.MustCompile(`Intent:\s*([a-z_]+)\s+Confidence:\s*([\d.]+)`)

type Classifier struct {
	oracle   contractx.Oracle
	template string
}

var _ contractx.Classifier = (*Classifier)(nil)

func New(oracle contractx.Oracle, template string) *Classifier {
	return &Classifier{oracle: oracle, template: template}
}

func (c *Classifier) Classify(ctx context.Context, userMessage string) (contractx.ClassificationResult, error) {
	prompt := promptx.Render(c.template, map[string]string{"user_message": userMessage})

	out, err := c.oracle.Generate(ctx, prompt, contractx.GenerateOptions{
		MaxNewTokens: classifyMaxTokens,
		DoSample:     false,
	})
	if err != nil {
		return contractx.ClassificationResult{}, err
	}
	log.Debug().Str("raw", out).Msg("classifier oracle output")

	result := parseClassification(out)
	log.Info().
		Str("intent", string(result.Intent)).
		Float64("confidence", result.Confidence).
		Msg("classified user message")
	return result, nil
}

func parseClassification(oracleOutput string) contractx.ClassificationResult {
	fallback := contractx.ClassificationResult{
		Intent:     contractx.IntentGeneralResponse,
		Confidence: 0.0,
	}

	matches := intentLinePattern.FindAllStringSubmatch(oracleOutput, -1)
	if len(matches) == 0 {
		return fallback
	}

	last := matches[len(matches)-1]
	token := strings.TrimSpace(last[1])
	confidence, err := strconv.ParseFloat(last[2], 64)
	if err != nil || !contractx.KnownIntent(token) {
		return fallback
	}
	if confidence <= AcceptanceThreshold {
		return fallback
	}

	return contractx.ClassificationResult{
		Intent:     contractx.Intent(token),
		Confidence: confidence,
	}
}
