package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipforge/internal/strategy"
	"clipforge/internal/transcript"
)

func TestParseRankedHighlights(t *testing.T) {
	t.Run("should parse highlights object", func(t *testing.T) {
		// Arrange
		raw := `{"highlights":[
			{"start_time": 10.5, "end_time": 55.0, "title": "Key moment", "score": 0.9},
			{"start_time": 80.0, "end_time": 120.0, "title": "Second pick", "score": 0.7}
		]}`

		// Act
		ranked, err := ParseRankedHighlights(raw)

		// Assert
		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.Equal(t, 10.5, ranked[0].Start)
		assert.Equal(t, 55.0, ranked[0].End)
		assert.Equal(t, "Key moment", ranked[0].Title)
		assert.Equal(t, 0.9, ranked[0].Score)
	})

	t.Run("should parse response wrapped in code fence", func(t *testing.T) {
		// Arrange
		raw := "```json\n{\"highlights\":[{\"start_time\":0,\"end_time\":30,\"title\":\"Fenced\",\"score\":0.5}]}\n```"

		// Act
		ranked, err := ParseRankedHighlights(raw)

		// Assert
		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.Equal(t, "Fenced", ranked[0].Title)
	})

	t.Run("should accept items key and bare top-level arrays", func(t *testing.T) {
		// Arrange
		withItems := `{"items":[{"start_time":5,"end_time":40,"title":"a","score":0.8}]}`
		bareArray := `[{"start_time":5,"end_time":40,"title":"b","score":0.8}]`

		// Act
		fromItems, err1 := ParseRankedHighlights(withItems)
		fromArray, err2 := ParseRankedHighlights(bareArray)

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, "a", fromItems[0].Title)
		assert.Equal(t, "b", fromArray[0].Title)
	})

	t.Run("should drop windows with non-positive duration", func(t *testing.T) {
		// Arrange
		raw := `{"highlights":[
			{"start_time": 50, "end_time": 50, "title": "degenerate", "score": 0.9},
			{"start_time": 10, "end_time": 40, "title": "valid", "score": 0.8}
		]}`

		// Act
		ranked, err := ParseRankedHighlights(raw)

		// Assert
		require.NoError(t, err)
		require.Len(t, ranked, 1)
		assert.Equal(t, "valid", ranked[0].Title)
	})

	t.Run("should return error when no highlight array exists", func(t *testing.T) {
		// Act
		_, err := ParseRankedHighlights(`{"message": "no clips here"}`)

		// Assert
		assert.Error(t, err)
	})

	t.Run("should return error when all windows are invalid", func(t *testing.T) {
		// Act
		_, err := ParseRankedHighlights(`{"highlights":[{"start_time":9,"end_time":3,"title":"x","score":1}]}`)

		// Assert
		assert.Error(t, err)
	})
}

func TestOpenAIAnalyzer_BuildPayload(t *testing.T) {
	t.Run("should embed constraints and segments in the prompt", func(t *testing.T) {
		// Arrange
		a := NewOpenAIAnalyzer(Config{APIKey: "test-key"})
		tr := &transcript.Transcript{
			Segments: []transcript.Segment{
				{Start: 0, End: 20, Text: "hello world"},
			},
		}
		opts := strategy.Options{ClipCount: 3, MinDuration: 30, MaxDuration: 60}

		// Act
		payload, err := a.buildPayload(tr, 200, opts)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, payload, `"clip_count":3`)
		assert.Contains(t, payload, `"hello world"`)
		assert.Contains(t, payload, `"video_duration":200`)
	})

	t.Run("should truncate very long segment text", func(t *testing.T) {
		// Arrange
		a := NewOpenAIAnalyzer(Config{APIKey: "test-key"})
		long := strings.Repeat("word ", 200)
		tr := &transcript.Transcript{
			Segments: []transcript.Segment{{Start: 0, End: 20, Text: long}},
		}

		// Act
		payload, err := a.buildPayload(tr, 200, strategy.DefaultOptions())

		// Assert
		require.NoError(t, err)
		assert.Less(t, len(payload), len(long), "payload should not carry the full text")
	})
}

func TestOpenAIAnalyzer_Analyze(t *testing.T) {
	t.Run("should refuse empty transcript", func(t *testing.T) {
		// Arrange
		a := NewOpenAIAnalyzer(Config{APIKey: "test-key"})

		// Act
		_, err := a.Analyze(context.Background(), transcript.Empty(), 200, strategy.DefaultOptions())

		// Assert
		assert.Error(t, err)
	})
}

func TestShouldFallbackToJSONMode(t *testing.T) {
	t.Run("should detect schema rejection errors", func(t *testing.T) {
		err := errors.New("400: response_format json_schema is not supported by this gateway")
		assert.True(t, shouldFallbackToJSONMode(err))
	})

	t.Run("should not trigger on unrelated errors", func(t *testing.T) {
		assert.False(t, shouldFallbackToJSONMode(errors.New("connection refused")))
	})
}

func TestStripCodeFence(t *testing.T) {
	t.Run("should leave plain JSON untouched", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
	})

	t.Run("should strip fence with language tag", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	})

	t.Run("should strip fence without language tag", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	})
}
