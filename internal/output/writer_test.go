package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clipforge/internal/highlight"
	"clipforge/internal/strategy"
)

func validPlan() Plan {
	return Plan{
		RequestID:     "req-123",
		VideoDuration: 200,
		Highlights: []highlight.Highlight{
			{
				StartTime: 10,
				EndTime:   50,
				Title:     "First pick",
				Score:     0.8,
				Segments: []highlight.CaptionSegment{
					{Start: 0, End: 20, Text: "caption line"},
				},
			},
		},
		Attempts: []strategy.Attempt{
			{
				Step:     strategy.StepHighlightGeneration,
				Strategy: "Transcription-Based",
				Status:   strategy.StatusSuccess,
				Elapsed:  50 * time.Millisecond,
				Message:  "generated 1 transcription-based highlights",
			},
		},
	}
}

func TestPlanWriter_WritePlan(t *testing.T) {
	t.Run("should write valid plan as JSON document", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		writer := NewPlanWriter(&buf, zap.NewNop())

		// Act
		err := writer.WritePlan(validPlan())

		// Assert
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "req-123", decoded["request_id"])

		highlights, ok := decoded["highlights"].([]interface{})
		require.True(t, ok)
		require.Len(t, highlights, 1)
		first := highlights[0].(map[string]interface{})
		assert.Equal(t, 10.0, first["start_time"])
		assert.Equal(t, 50.0, first["end_time"])
		assert.NotNil(t, first["transcription_segments"])
	})

	t.Run("should reject plan containing invalid highlight", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		writer := NewPlanWriter(&buf, zap.NewNop())
		plan := validPlan()
		plan.Highlights[0].EndTime = plan.Highlights[0].StartTime

		// Act
		err := writer.WritePlan(plan)

		// Assert
		assert.Error(t, err)
		assert.Zero(t, buf.Len(), "nothing should be written for an invalid plan")
	})

	t.Run("should reject plan containing invalid attempt record", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		writer := NewPlanWriter(&buf, zap.NewNop())
		plan := validPlan()
		plan.Attempts[0].Status = "UNKNOWN"

		// Act
		err := writer.WritePlan(plan)

		// Assert
		assert.Error(t, err)
	})

	t.Run("should handle plan with no highlights", func(t *testing.T) {
		// Arrange
		var buf bytes.Buffer
		writer := NewPlanWriter(&buf, zap.NewNop())
		plan := Plan{RequestID: "empty", VideoDuration: 100}

		// Act
		err := writer.WritePlan(plan)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"empty"`)
	})
}
