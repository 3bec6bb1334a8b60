package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestAttempt_Validate(t *testing.T) {
	t.Run("should accept valid attempt", func(t *testing.T) {
		// Arrange
		attempt := Attempt{
			Step:     StepHighlightGeneration,
			Strategy: "AI Analysis",
			Status:   StatusSuccess,
			Elapsed:  2 * time.Second,
			Message:  "generated 3 highlights",
		}

		// Act & Assert
		assert.NoError(t, attempt.Validate())
	})

	t.Run("should reject unknown step", func(t *testing.T) {
		// Arrange
		attempt := Attempt{Step: "Rendering", Strategy: "x", Status: StatusSuccess}

		// Act & Assert
		assert.Error(t, attempt.Validate())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		// Arrange
		attempt := Attempt{Step: StepTranscription, Strategy: "x", Status: "MAYBE"}

		// Act & Assert
		assert.Error(t, attempt.Validate())
	})

	t.Run("should reject empty strategy name", func(t *testing.T) {
		// Arrange
		attempt := Attempt{Step: StepTranscription, Strategy: "", Status: StatusFailed}

		// Act & Assert
		assert.Error(t, attempt.Validate())
	})

	t.Run("should reject negative elapsed time", func(t *testing.T) {
		// Arrange
		attempt := Attempt{
			Step:     StepTranscription,
			Strategy: "Whisper JSON",
			Status:   StatusFailed,
			Elapsed:  -time.Second,
		}

		// Act & Assert
		assert.Error(t, attempt.Validate())
	})
}

func TestLogSummary(t *testing.T) {
	t.Run("should not panic with nil logger", func(t *testing.T) {
		// Arrange
		attempts := []Attempt{
			{Step: StepTranscription, Strategy: "Whisper JSON", Status: StatusSuccess},
			{Step: StepHighlightGeneration, Strategy: "AI Analysis", Status: StatusTimeout},
		}

		// Act & Assert
		assert.NotPanics(t, func() {
			LogSummary(nil, attempts)
		})
	})

	t.Run("should handle empty attempt log", func(t *testing.T) {
		// Act & Assert
		assert.NotPanics(t, func() {
			LogSummary(zap.NewNop(), nil)
		})
	})
}
