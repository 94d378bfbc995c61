package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
)

var errInvalidDecision = errors.New("decision is not 0 or 1")

type parsedVerdict struct {
	models.Verdict
	rawDecision string
	err         error
}

// parseVerdict decodes a provider reply. A reply that is not a JSON object is an
// error. A JSON object whose decision is missing or outside {0, 1} keeps its
// explanation and is counted as a deny.
func parseVerdict(reply string) (parsedVerdict, error) {
	content := stripMarkdownCodeBlock(reply)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return parsedVerdict{}, fmt.Errorf("reply is not valid JSON: %w", err)
	}
	if fields == nil {
		return parsedVerdict{}, fmt.Errorf("reply is not a JSON object")
	}

	result := parsedVerdict{
		Verdict: models.Verdict{Decision: models.Deny},
	}

	if raw, ok := fields["explanation"]; ok {
		var explanation string
		if err := json.Unmarshal(raw, &explanation); err != nil {
			explanation = string(bytes.TrimSpace(raw))
		}
		result.Explanation = explanation
	}

	raw, ok := fields["decision"]
	if !ok {
		result.rawDecision = "<missing>"
		result.err = errInvalidDecision
		return result, nil
	}

	result.rawDecision = string(bytes.TrimSpace(raw))

	var decision float64
	if result.rawDecision == "null" {
		result.err = errInvalidDecision
		return result, nil
	}
	if err := json.Unmarshal(raw, &decision); err != nil {
		result.err = errInvalidDecision
		return result, nil
	}

	switch decision {
	case models.Agree:
		result.Decision = models.Agree
	case models.Deny:
		result.Decision = models.Deny
	default:
		result.err = errInvalidDecision
	}

	return result, nil
}

// stripMarkdownCodeBlock removes markdown code block formatting if present
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		content = strings.TrimSpace(content[firstNewline+1 : closingBackticks])
	}

	return content
}
