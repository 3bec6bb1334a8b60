package strategy

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Step identifies which pipeline stage an attempt belongs to
type Step string

const (
	StepTranscription       Step = "Transcription"
	StepHighlightGeneration Step = "Highlight Generation"
)

// Status is the outcome of a single strategy attempt
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
	StatusTimeout Status = "TIMEOUT"
)

// Attempt is the diagnostic record for one attempted strategy tier. Attempts
// are created once, appended to an ordered log and never mutated; the log is
// handed to job-status reporting so users can see which strategies were
// tried and why each one was abandoned.
type Attempt struct {
	Step     Step          `json:"step"`
	Strategy string        `json:"strategy"`
	Status   Status        `json:"status"`
	Elapsed  time.Duration `json:"elapsed"`
	Message  string        `json:"message"`
}

// Validate checks if the Attempt has valid values
func (a *Attempt) Validate() error {
	switch a.Step {
	case StepTranscription, StepHighlightGeneration:
	default:
		return fmt.Errorf("unknown step %q", a.Step)
	}

	switch a.Status {
	case StatusSuccess, StatusFailed, StatusTimeout:
	default:
		return fmt.Errorf("unknown status %q", a.Status)
	}

	if a.Strategy == "" {
		return fmt.Errorf("strategy cannot be empty")
	}

	if a.Elapsed < 0 {
		return fmt.Errorf("elapsed cannot be negative")
	}

	return nil
}

// LogSummary writes a structured per-step breakdown of the attempt log,
// the diagnostic trail surfaced in job-status reporting
func LogSummary(logger *zap.Logger, attempts []Attempt) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var success, failed, timeout int
	for _, a := range attempts {
		switch a.Status {
		case StatusSuccess:
			success++
		case StatusFailed:
			failed++
		case StatusTimeout:
			timeout++
		}
	}

	logger.Info("strategy attempt summary",
		zap.Int("total", len(attempts)),
		zap.Int("success", success),
		zap.Int("failed", failed),
		zap.Int("timeout", timeout))

	for i, a := range attempts {
		logger.Info("strategy attempt",
			zap.Int("attempt", i+1),
			zap.String("step", string(a.Step)),
			zap.String("strategy", a.Strategy),
			zap.String("status", string(a.Status)),
			zap.Duration("elapsed", a.Elapsed),
			zap.String("message", a.Message))
	}
}
