package highlight

import (
	"go.uber.org/zap"

	"clipforge/internal/transcript"
)

// targetFraction keeps grouped clips comfortably under the maximum duration
// so the builder rarely has to truncate
const targetFraction = 0.8

// Grouper partitions ordered transcript segments into contiguous groups
// whose cumulative duration approximates a per-group target
type Grouper struct {
	logger *zap.Logger
}

// NewGrouper creates a new Grouper with a no-op logger
func NewGrouper() *Grouper {
	return &Grouper{logger: zap.NewNop()}
}

// NewGrouperWithLogger creates a new Grouper with the given logger
func NewGrouperWithLogger(logger *zap.Logger) *Grouper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grouper{logger: logger}
}

// Group partitions segments into at most targetCount contiguous groups.
// Duration is measured as the sum of each segment's own span, not the
// gap-inclusive span of the group. A group is only closed once it has
// reached minDuration, so every returned group satisfies the minimum except
// possibly the final one when the input runs out.
func (g *Grouper) Group(segments []transcript.Segment, targetCount int, minDuration, maxDuration float64) [][]transcript.Segment {
	if len(segments) == 0 {
		g.logger.Warn("no segments to group")
		return nil
	}

	// A single requested clip takes the whole transcript without
	// subdividing.
	if targetCount == 1 {
		g.logger.Debug("creating single group from all segments",
			zap.Int("segment_count", len(segments)))
		return [][]transcript.Segment{segments}
	}

	totalSpan := segments[len(segments)-1].End - segments[0].Start
	targetPerGroup := min(maxDuration*targetFraction, totalSpan/float64(targetCount))

	g.logger.Debug("grouping segments into clips",
		zap.Int("segment_count", len(segments)),
		zap.Int("target_count", targetCount),
		zap.Float64("target_per_group", targetPerGroup),
		zap.Float64("max_duration", maxDuration))

	var groups [][]transcript.Segment
	var current []transcript.Segment
	currentDuration := 0.0

	for _, seg := range segments {
		segDuration := seg.Duration()

		if len(current) > 0 && currentDuration+segDuration > targetPerGroup {
			if currentDuration >= minDuration {
				groups = append(groups, current)
				g.logger.Debug("closed group",
					zap.Int("group_index", len(groups)-1),
					zap.Int("segments", len(current)),
					zap.Float64("duration", currentDuration))
				current = nil
				currentDuration = 0
			}

			if len(groups) >= targetCount {
				break
			}
		}

		current = append(current, seg)
		currentDuration += segDuration
	}

	// The trailing partial group is kept whenever there is room for it, even
	// below the minimum duration: it is the last possible group, and the
	// builder will expand it rather than discard transcript tail content.
	if len(current) > 0 && len(groups) < targetCount {
		groups = append(groups, current)
		g.logger.Debug("closed final group",
			zap.Int("group_index", len(groups)-1),
			zap.Int("segments", len(current)),
			zap.Float64("duration", currentDuration))
	}

	if len(groups) > targetCount {
		groups = groups[:targetCount]
	}

	g.logger.Debug("grouping complete",
		zap.Int("groups", len(groups)),
		zap.Int("requested", targetCount))

	return groups
}
