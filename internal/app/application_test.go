package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clipforge/internal/config"
	"clipforge/internal/output"
	"clipforge/internal/strategy"
	"clipforge/internal/transcript"
)

// failingSource simulates a transcription collaborator that errors out
type failingSource struct{}

func (failingSource) Name() string { return "Failing Source" }

func (failingSource) Transcribe(ctx context.Context) (*transcript.Transcript, error) {
	return nil, errors.New("transcription backend unavailable")
}

func writeTranscriptFile(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))
	return path
}

func decodePlan(t *testing.T, data []byte) output.Plan {
	t.Helper()
	var plan output.Plan
	require.NoError(t, json.Unmarshal(data, &plan))
	return plan
}

func TestApplication_Run(t *testing.T) {
	t.Run("should produce transcription-based plan from transcript file", func(t *testing.T) {
		// Arrange
		app := NewApplicationWithConfig(config.NewConfiguration(), zap.NewNop())
		path := writeTranscriptFile(t, `{
			"segments": [
				{"start": 0, "end": 20, "text": "hello world"},
				{"start": 20, "end": 45, "text": "this is amazing content"},
				{"start": 45, "end": 70, "text": "wow incredible"}
			]
		}`)
		source := transcript.NewFileSource(path, zap.NewNop())
		var buf bytes.Buffer

		// Act
		err := app.Run(context.Background(), source, 200, &buf)

		// Assert
		require.NoError(t, err)
		plan := decodePlan(t, buf.Bytes())
		assert.NotEmpty(t, plan.RequestID)
		assert.Equal(t, 200.0, plan.VideoDuration)
		assert.NotEmpty(t, plan.Highlights)

		// Transcription succeeded, AI tier is unconfigured, grouping won
		require.GreaterOrEqual(t, len(plan.Attempts), 3)
		assert.Equal(t, strategy.StepTranscription, plan.Attempts[0].Step)
		assert.Equal(t, strategy.StatusSuccess, plan.Attempts[0].Status)
		assert.Equal(t, "Transcription-Based", plan.Attempts[2].Strategy)
		assert.Equal(t, strategy.StatusSuccess, plan.Attempts[2].Status)
	})

	t.Run("should fall back to time-based plan when transcription fails", func(t *testing.T) {
		// Arrange
		app := NewApplicationWithConfig(config.NewConfiguration(), zap.NewNop())
		var buf bytes.Buffer

		// Act
		err := app.Run(context.Background(), failingSource{}, 120, &buf)

		// Assert
		require.NoError(t, err)
		plan := decodePlan(t, buf.Bytes())
		require.NotEmpty(t, plan.Highlights)
		for _, h := range plan.Highlights {
			assert.Len(t, h.Segments, 3, "fallback clips carry synthetic captions")
		}

		assert.Equal(t, strategy.StatusFailed, plan.Attempts[0].Status)
		last := plan.Attempts[len(plan.Attempts)-1]
		assert.Equal(t, "Time-Based Fallback", last.Strategy)
		assert.Equal(t, strategy.StatusSuccess, last.Status)
	})

	t.Run("should use fallback duration when video duration is unknown", func(t *testing.T) {
		// Arrange
		app := NewApplicationWithConfig(config.NewConfiguration(), zap.NewNop())
		var buf bytes.Buffer

		// Act
		err := app.Run(context.Background(), failingSource{}, 0, &buf)

		// Assert
		require.NoError(t, err)
		plan := decodePlan(t, buf.Bytes())
		assert.Equal(t, 300.0, plan.VideoDuration)
	})

	t.Run("should record failed transcription for nil source", func(t *testing.T) {
		// Arrange
		app := NewApplicationWithConfig(config.NewConfiguration(), zap.NewNop())
		var buf bytes.Buffer

		// Act
		err := app.Run(context.Background(), nil, 120, &buf)

		// Assert
		require.NoError(t, err)
		plan := decodePlan(t, buf.Bytes())
		assert.Equal(t, strategy.StatusFailed, plan.Attempts[0].Status)
		assert.NotEmpty(t, plan.Highlights)
	})

	t.Run("should assign distinct request ids per run", func(t *testing.T) {
		// Arrange
		app := NewApplicationWithConfig(config.NewConfiguration(), zap.NewNop())
		var first, second bytes.Buffer

		// Act
		require.NoError(t, app.Run(context.Background(), failingSource{}, 120, &first))
		require.NoError(t, app.Run(context.Background(), failingSource{}, 120, &second))

		// Assert
		assert.NotEqual(t, decodePlan(t, first.Bytes()).RequestID, decodePlan(t, second.Bytes()).RequestID)
	})
}

func TestApplication_Shutdown(t *testing.T) {
	t.Run("should shut down cleanly", func(t *testing.T) {
		// Arrange
		app := NewApplicationWithConfig(config.NewConfiguration(), zap.NewNop())

		// Act & Assert
		assert.NoError(t, app.Shutdown())
	})
}
