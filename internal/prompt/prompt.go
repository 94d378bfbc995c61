package prompt

import (
	"bytes"
	"text/template"
)

const decisionTemplate = `You are a decision support system. Analyse the content below and decide whether to "agree" or "deny".
Your reply must strictly follow this JSON format:
{
  "decision": (a number, 0 means deny, 1 means agree),
  "explanation": "your detailed reasoning."
}

The content to analyse is:
"{{.}}"`

var decisionPrompt = template.Must(template.New("decision").Parse(decisionTemplate))

// Build wraps content verbatim into the decision instruction.
func Build(content string) string {
	var buf bytes.Buffer
	// text/template does not escape, and executing a parsed template over a string cannot fail.
	_ = decisionPrompt.Execute(&buf, content)
	return buf.String()
}
