// Package extract implements the shared protocol for turning noisy oracle
// output into a validated structured query: scan for the last brace-delimited
// JSON object, validate it against the handler's field-type schema, decode it.
// Every failure mode is an ErrNoExtraction-wrapped error, never a panic.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	contractx "github.com/foodiespot/assistant/agent/contract"
)

// DateTimeLayout is the fixed reservation time format, minute precision.
const DateTimeLayout = "2006-01-02 15:04"

// Oracles tend to restate the prompt, so candidate objects are collected and
// the last one wins.
var jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*?\}`)

// LastJSONObject returns the last brace-delimited substring of text.
func LastJSONObject(text string) (string, bool) {
	matches := jsonObjectPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	return strings.TrimSpace(matches[len(matches)-1]), true
}

// Decode runs the full extraction protocol against the raw oracle output and
// fills out. schema is a JSON-schema document describing the expected field
// types; nil skips schema validation.
func Decode(oracleOutput string, schema map[string]any, out any) error {
	raw, ok := LastJSONObject(oracleOutput)
	if !ok {
		return fmt.Errorf("%w: no JSON object in oracle output", contractx.ErrNoExtraction)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", contractx.ErrNoExtraction, err)
	}

	if schema != nil {
		result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(doc))
		if err != nil {
			return fmt.Errorf("%w: schema validation: %v", contractx.ErrNoExtraction, err)
		}
		if !result.Valid() {
			details := make([]string, 0, len(result.Errors()))
			for _, e := range result.Errors() {
				details = append(details, e.String())
			}
			log.Debug().Strs("violations", details).Str("raw", raw).Msg("extraction schema rejected oracle output")
			return fmt.Errorf("%w: %s", contractx.ErrNoExtraction, strings.Join(details, "; "))
		}
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: decode query: %v", contractx.ErrNoExtraction, err)
	}
	return nil
}

// ObjectSchema builds a JSON-schema document for a flat query object whose
// fields each have the given type and may also be null (extraction is allowed
// to be partial).
func ObjectSchema(fieldTypes map[string]string) map[string]any {
	props := make(map[string]any, len(fieldTypes))
	for name, typ := range fieldTypes {
		props[name] = map[string]any{"type": []string{typ, "null"}}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

/* ------------------------------ validation ------------------------------- */

// Field pairs a user-facing field name with its presence.
type Field struct {
	Name    string
	Present bool
}

// Missing collects the names of absent required fields, in declaration order.
func Missing(fields ...Field) []string {
	var missing []string
	for _, f := range fields {
		if !f.Present {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// AskFor phrases the ask-the-user message for missing fields, echoing back any
// already-known fields so partial information is not discarded.
// known entries are preformatted "label value" strings.
func AskFor(missing []string, action string, known []string) string {
	msg := fmt.Sprintf("Please provide the %s to %s.", joinNames(missing), action)
	if len(known) > 0 {
		msg += " I already have " + joinNames(known) + "."
	}
	return msg
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

// NormalizeDateTime parses s against the fixed layout and re-renders it, so
// downstream slot keys compare exactly. Format violations are distinct from
// missing fields.
func NormalizeDateTime(s string) (string, error) {
	t, err := time.Parse(DateTimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: date_time %q does not match %s", contractx.ErrValidation, s, DateTimeLayout)
	}
	return t.Format(DateTimeLayout), nil
}
