package output

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"clipforge/internal/highlight"
	"clipforge/internal/strategy"
)

// Plan is the document handed to the rendering pipeline: the ordered
// highlight list plus the diagnostic attempt trail for job-status reporting
type Plan struct {
	RequestID     string                `json:"request_id"`
	VideoDuration float64               `json:"video_duration"`
	Highlights    []highlight.Highlight `json:"highlights"`
	Attempts      []strategy.Attempt    `json:"strategy_attempts"`
}

// PlanWriter handles outputting highlight plans as JSON to a writer
type PlanWriter struct {
	writer io.Writer
	logger *zap.Logger
}

// NewPlanWriter creates a new PlanWriter instance
func NewPlanWriter(writer io.Writer, logger *zap.Logger) *PlanWriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanWriter{
		writer: writer,
		logger: logger,
	}
}

// WritePlan validates and writes a highlight plan as a single indented JSON
// document
func (pw *PlanWriter) WritePlan(plan Plan) error {
	for i := range plan.Highlights {
		if err := plan.Highlights[i].Validate(); err != nil {
			pw.logger.Error("invalid highlight in plan",
				zap.Int("index", i),
				zap.Error(err))
			return fmt.Errorf("invalid highlight %d: %w", i, err)
		}
	}

	for i := range plan.Attempts {
		if err := plan.Attempts[i].Validate(); err != nil {
			pw.logger.Error("invalid attempt record in plan",
				zap.Int("index", i),
				zap.Error(err))
			return fmt.Errorf("invalid attempt record %d: %w", i, err)
		}
	}

	jsonBytes, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		pw.logger.Error("failed to marshal plan to JSON", zap.Error(err))
		return fmt.Errorf("failed to marshal plan to JSON: %w", err)
	}

	if _, err := fmt.Fprintf(pw.writer, "%s\n", jsonBytes); err != nil {
		pw.logger.Error("failed to write JSON output", zap.Error(err))
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	pw.logger.Debug("wrote highlight plan",
		zap.String("request_id", plan.RequestID),
		zap.Int("highlights", len(plan.Highlights)),
		zap.Int("attempts", len(plan.Attempts)))

	return nil
}
