package strategy

import (
	"fmt"

	"go.uber.org/zap"

	"clipforge/internal/highlight"
)

const (
	// timeBasedClipDuration is the fixed length of a fallback clip
	timeBasedClipDuration = 45.0

	// captionsPerFallbackClip guarantees burned-in captions even with zero
	// transcription signal
	captionsPerFallbackClip = 3

	timeBasedScore = 0.7
)

// fallbackCaptions is the pool of generic engagement phrases cycled through
// fallback clips when no transcription is available.
var fallbackCaptions = []string{
	"Amazing content ahead!",
	"Don't miss this moment!",
	"This is incredible!",
	"Watch closely!",
	"Pure entertainment!",
	"You won't believe this!",
	"Absolutely stunning!",
	"Pay attention here!",
	"Mind-blowing moment!",
	"This is epic!",
}

// timeBasedHighlights cuts fixed-interval clips across the video and fills
// each with synthetic captions. Given a positive video duration it always
// produces at least one highlight, which makes it the terminal tier of the
// fallback chain.
func (s *Selector) timeBasedHighlights(videoDuration float64, opts Options) []highlight.Highlight {
	clipCount := min(opts.ClipCount, tierClipCap)
	interval := max(timeBasedClipDuration, videoDuration/float64(clipCount+1))

	s.logger.Info("creating time-based fallback highlights",
		zap.Int("clip_count", clipCount),
		zap.Float64("interval", interval),
		zap.Float64("video_duration", videoDuration))

	var highlights []highlight.Highlight
	for i := 0; i < clipCount; i++ {
		start := float64(i) * interval
		if start >= videoDuration {
			break
		}
		end := min(start+timeBasedClipDuration, videoDuration)

		duration := end - start
		segmentDuration := duration / captionsPerFallbackClip

		captions := make([]highlight.CaptionSegment, 0, captionsPerFallbackClip)
		for j := 0; j < captionsPerFallbackClip; j++ {
			segStart := float64(j) * segmentDuration
			segEnd := min(float64(j+1)*segmentDuration, duration)

			captions = append(captions, highlight.CaptionSegment{
				Start: segStart,
				End:   segEnd,
				Text:  fallbackCaptions[(i*captionsPerFallbackClip+j)%len(fallbackCaptions)],
			})
		}

		highlights = append(highlights, highlight.Highlight{
			StartTime: start,
			EndTime:   end,
			Title:     fmt.Sprintf("Highlight %d", i+1),
			Score:     timeBasedScore,
			Segments:  captions,
		})
	}

	return highlights
}
