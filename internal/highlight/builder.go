package highlight

import (
	"strings"

	"go.uber.org/zap"

	"clipforge/internal/transcript"
)

// Builder turns grouped transcript segments into renderable Highlight
// values with clip-relative caption data
type Builder struct {
	logger    *zap.Logger
	tolerance float64
}

// NewBuilder creates a new Builder with a no-op logger
func NewBuilder() *Builder {
	return &Builder{logger: zap.NewNop(), tolerance: DefaultTolerance}
}

// NewBuilderWithLogger creates a new Builder with the given logger
func NewBuilderWithLogger(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger, tolerance: DefaultTolerance}
}

// Build produces a Highlight from a contiguous group of segments. The raw
// window spans the group's first and last segment; a window below
// minDuration is expanded symmetrically, clamped to [0, videoDuration], and
// one above maxDuration is truncated. Caption segments are computed against
// the corrected window so their relative times never exceed the final clip
// span.
func (b *Builder) Build(group []transcript.Segment, allWords []transcript.Word, minDuration, maxDuration, videoDuration, scoreHint float64) Highlight {
	window := Window{Start: group[0].Start, End: group[len(group)-1].End}

	if d := window.Duration(); d < minDuration {
		extension := (minDuration - d) / 2
		window.Start = max(0, window.Start-extension)
		window.End = min(videoDuration, window.End+extension)
	} else if d > maxDuration {
		window.End = window.Start + maxDuration
	}

	captions := b.captionSegments(group, allWords, window)

	title := TitleFromSegments(group)

	b.logger.Debug("built highlight",
		zap.String("title", title),
		zap.Float64("start_time", window.Start),
		zap.Float64("end_time", window.End),
		zap.Int("caption_segments", len(captions)),
		zap.Float64("score", scoreHint))

	return Highlight{
		StartTime: window.Start,
		EndTime:   window.End,
		Title:     title,
		Score:     scoreHint,
		Segments:  captions,
	}
}

// AttachCaptions re-derives caption segments for an externally selected
// highlight window by scanning the whole transcript for overlapping
// segments. Used to enrich AI-ranked highlights that arrive without caption
// data.
func (b *Builder) AttachCaptions(window Window, segments []transcript.Segment, allWords []transcript.Word) []CaptionSegment {
	var overlapping []transcript.Segment
	for _, seg := range segments {
		if (Window{Start: seg.Start, End: seg.End}).Overlaps(window) {
			overlapping = append(overlapping, seg)
		}
	}
	return b.captionSegments(overlapping, allWords, window)
}

// captionSegments shifts each segment into clip-relative time and aligns
// its word timings against the final highlight window
func (b *Builder) captionSegments(group []transcript.Segment, allWords []transcript.Word, window Window) []CaptionSegment {
	var captions []CaptionSegment
	for _, seg := range group {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		rel := Window{Start: seg.Start, End: seg.End}.RelativeTo(window)
		if rel.End <= rel.Start {
			continue
		}

		words := AlignWords(seg, allWords, window, b.tolerance)

		captions = append(captions, CaptionSegment{
			Start: rel.Start,
			End:   rel.End,
			Text:  text,
			Words: words,
		})
	}
	return captions
}
