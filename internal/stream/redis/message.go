package redis

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
)

const (
	fieldPayload   = "payload"
	fieldRequestID = "request_id"
	fieldError     = "error"
)

var errMissingPayload = errors.New("missing payload field")

// decisionMessage is the JSON carried in the payload field of a request entry.
type decisionMessage struct {
	RequestID string `json:"request_id,omitempty"`
	models.DecisionRequest
}

// decodeMessage extracts the request from a stream entry. Entries without a
// request_id are identified by their stream id.
func decodeMessage(id string, values map[string]any) (decisionMessage, error) {
	payload, ok := values[fieldPayload].(string)
	if !ok {
		return decisionMessage{}, errMissingPayload
	}

	var msg decisionMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return decisionMessage{}, fmt.Errorf("failed to decode payload: %w", err)
	}

	if msg.RequestID == "" {
		msg.RequestID = id
	}

	return msg, nil
}
