package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/povarna/generative-ai-agents/magi-relay/internal/models"
	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

type Summary struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Failed   int `json:"failed"`
}

func (s *Summary) Add(record OutputRecord) {
	s.Total++

	switch {
	case record.Error != "":
		s.Failed++
	case record.FinalDecision == models.DecisionApproved:
		s.Approved++
	default:
		s.Rejected++
	}
}

// Writer emits one JSON line per record in jsonl format, or only the summary
// object on Close in summary format.
type Writer struct {
	out     *bufio.Writer
	encoder *json.Encoder
	format  string
	summary Summary
	logger  *zerolog.Logger
}

func NewWriter(w io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	if format != FormatJSONL && format != FormatSummary {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	out := bufio.NewWriter(w)
	return &Writer{
		out:     out,
		encoder: json.NewEncoder(out),
		format:  format,
		logger:  logger,
	}, nil
}

func (w *Writer) Write(record OutputRecord) error {
	w.summary.Add(record)

	if w.format != FormatJSONL {
		return nil
	}

	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write record %s: %w", record.ID, err)
	}
	return nil
}

func (w *Writer) Summary() Summary {
	return w.summary
}

func (w *Writer) Close() error {
	if w.format == FormatSummary {
		if err := w.encoder.Encode(w.summary); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if err := w.out.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	w.logger.Debug().Str("format", w.format).Int("records", w.summary.Total).Msg("Output flushed")
	return nil
}
