package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow_Overlaps(t *testing.T) {
	t.Run("should detect overlapping windows", func(t *testing.T) {
		// Arrange
		a := Window{Start: 0, End: 10}
		b := Window{Start: 5, End: 15}

		// Act & Assert
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))
	})

	t.Run("should not count touching edges as overlap", func(t *testing.T) {
		// Arrange
		a := Window{Start: 0, End: 10}
		b := Window{Start: 10, End: 20}

		// Act & Assert
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("should not detect disjoint windows", func(t *testing.T) {
		// Arrange
		a := Window{Start: 0, End: 5}
		b := Window{Start: 20, End: 30}

		// Act & Assert
		assert.False(t, a.Overlaps(b))
	})
}

func TestWindow_RelativeTo(t *testing.T) {
	t.Run("should translate fully contained window without clamping", func(t *testing.T) {
		// Arrange
		inner := Window{Start: 15, End: 20}
		enclosing := Window{Start: 10, End: 40}

		// Act
		rel := inner.RelativeTo(enclosing)

		// Assert
		assert.Equal(t, 5.0, rel.Start)
		assert.Equal(t, 10.0, rel.End)
	})

	t.Run("should clamp window extending past enclosing bounds", func(t *testing.T) {
		// Arrange
		inner := Window{Start: 5, End: 50}
		enclosing := Window{Start: 10, End: 40}

		// Act
		rel := inner.RelativeTo(enclosing)

		// Assert
		assert.Equal(t, 0.0, rel.Start)
		assert.Equal(t, 30.0, rel.End)
	})

	t.Run("should produce degenerate window when no overlap exists", func(t *testing.T) {
		// Arrange
		inner := Window{Start: 100, End: 110}
		enclosing := Window{Start: 10, End: 40}

		// Act
		rel := inner.RelativeTo(enclosing)

		// Assert
		assert.False(t, rel.IsValid())
	})
}

func TestWindow_ClampTo(t *testing.T) {
	t.Run("should limit window to bounds", func(t *testing.T) {
		// Arrange
		w := Window{Start: -5, End: 250}

		// Act
		clamped := w.ClampTo(0, 200)

		// Assert
		assert.Equal(t, 0.0, clamped.Start)
		assert.Equal(t, 200.0, clamped.End)
	})
}

func TestClamp(t *testing.T) {
	t.Run("should clamp values to range", func(t *testing.T) {
		assert.Equal(t, 0.0, Clamp(-1, 0, 10))
		assert.Equal(t, 10.0, Clamp(11, 0, 10))
		assert.Equal(t, 5.0, Clamp(5, 0, 10))
	})
}
