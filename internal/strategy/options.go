package strategy

import "fmt"

// ClipLength is a user-facing clip duration preset
type ClipLength string

const (
	ClipLengthShort     ClipLength = "<30s"
	ClipLengthMedium    ClipLength = "30-60s"
	ClipLengthLong      ClipLength = "60-90s"
	ClipLengthExtraLong ClipLength = "90-120s"
)

// DurationRange maps the preset to (minDuration, maxDuration) bounds in
// seconds consumed by the grouper and builder
func (cl ClipLength) DurationRange() (float64, float64) {
	switch cl {
	case ClipLengthShort:
		return 15, 30
	case ClipLengthMedium:
		return 30, 60
	case ClipLengthLong:
		return 60, 90
	case ClipLengthExtraLong:
		return 90, 120
	default:
		return 30, 60
	}
}

const (
	minClipCount     = 1
	maxClipCount     = 10
	defaultClipCount = 3

	// tierClipCap bounds how many clips the transcription and time-based
	// tiers will produce regardless of the requested count
	tierClipCap = 5
)

// Options is the subset of processing options consumed by highlight
// generation
type Options struct {
	ClipCount   int
	MinDuration float64
	MaxDuration float64
}

// DefaultOptions returns generation options with a medium clip length and
// the default clip count
func DefaultOptions() Options {
	minDur, maxDur := ClipLengthMedium.DurationRange()
	return Options{
		ClipCount:   defaultClipCount,
		MinDuration: minDur,
		MaxDuration: maxDur,
	}
}

// OptionsForLength returns generation options for the given preset and
// requested clip count, clamping the count to the supported range
func OptionsForLength(length ClipLength, clipCount int) Options {
	if clipCount < minClipCount {
		clipCount = defaultClipCount
	}
	if clipCount > maxClipCount {
		clipCount = maxClipCount
	}
	minDur, maxDur := length.DurationRange()
	return Options{
		ClipCount:   clipCount,
		MinDuration: minDur,
		MaxDuration: maxDur,
	}
}

// Validate checks if the Options carry usable bounds
func (o Options) Validate() error {
	if o.ClipCount < minClipCount || o.ClipCount > maxClipCount {
		return fmt.Errorf("clip count must be between %d and %d", minClipCount, maxClipCount)
	}

	if o.MinDuration <= 0 {
		return fmt.Errorf("min duration must be positive")
	}

	if o.MaxDuration <= o.MinDuration {
		return fmt.Errorf("max duration must be greater than min duration")
	}

	return nil
}
