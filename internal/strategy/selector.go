package strategy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"clipforge/internal/highlight"
	"clipforge/internal/transcript"
)

const (
	strategyAIAnalysis    = "AI Analysis"
	strategyTranscription = "Transcription-Based"
	strategyTimeBased     = "Time-Based Fallback"

	// DefaultAITimeout bounds the external content-analysis call
	DefaultAITimeout = 180 * time.Second
)

// InputError marks invalid caller input (bad video duration or malformed
// options). It is surfaced to the caller and never retried.
type InputError struct {
	msg string
}

func (e *InputError) Error() string {
	return e.msg
}

// RankedHighlight is an externally scored highlight window produced by a
// content-analysis collaborator. It carries no caption data; the selector
// enriches it via the word aligner.
type RankedHighlight struct {
	Start float64 `json:"start_time"`
	End   float64 `json:"end_time"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// ContentAnalyzer is the external content-analysis collaborator consulted
// by the first generation tier
type ContentAnalyzer interface {
	Analyze(ctx context.Context, t *transcript.Transcript, videoDuration float64, opts Options) ([]RankedHighlight, error)
}

// Selector orchestrates highlight generation tiers in priority order:
// AI analysis, transcription-based grouping, fixed-interval time-based
// fallback. The first tier producing at least one highlight wins; the
// time-based tier always succeeds given a valid video duration. Each
// attempt is timed and recorded for diagnostics. A Selector holds no
// cross-call state; concurrent jobs each get their own instance.
type Selector struct {
	analyzer  ContentAnalyzer
	grouper   *highlight.Grouper
	builder   *highlight.Builder
	logger    *zap.Logger
	aiTimeout time.Duration
}

// NewSelector creates a new Selector with a no-op logger. The analyzer may
// be nil, in which case the AI tier is recorded as failed and skipped.
func NewSelector(analyzer ContentAnalyzer) *Selector {
	return NewSelectorWithLogger(analyzer, nil)
}

// NewSelectorWithLogger creates a new Selector with the given logger
func NewSelectorWithLogger(analyzer ContentAnalyzer, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		analyzer:  analyzer,
		grouper:   highlight.NewGrouperWithLogger(logger),
		builder:   highlight.NewBuilderWithLogger(logger),
		logger:    logger,
		aiTimeout: DefaultAITimeout,
	}
}

// SetAITimeout overrides the bound on the external content-analysis call
func (s *Selector) SetAITimeout(d time.Duration) {
	if d > 0 {
		s.aiTimeout = d
	}
}

// tierResult is the tagged outcome of one generation tier. Tiers never
// panic or propagate errors; a failed or empty result simply advances the
// selector to the next tier.
type tierResult struct {
	highlights []highlight.Highlight
	attempt    Attempt
}

func (r tierResult) succeeded() bool {
	return r.attempt.Status == StatusSuccess && len(r.highlights) > 0
}

// Generate runs the tiers in order and returns the winning highlight list
// together with the ordered attempt log. Only invalid caller input produces
// an error; tier failures are absorbed into the attempt log.
func (s *Selector) Generate(ctx context.Context, t *transcript.Transcript, videoDuration float64, opts Options) ([]highlight.Highlight, []Attempt, error) {
	if videoDuration <= 0 {
		return nil, nil, &InputError{msg: fmt.Sprintf("video duration must be positive, got %.2f", videoDuration)}
	}
	if err := opts.Validate(); err != nil {
		return nil, nil, &InputError{msg: fmt.Sprintf("invalid options: %v", err)}
	}

	var attempts []Attempt

	res := s.runAITier(ctx, t, videoDuration, opts)
	attempts = append(attempts, res.attempt)
	if res.succeeded() {
		s.logger.Info("highlight generation succeeded",
			zap.String("strategy", strategyAIAnalysis),
			zap.Int("highlights", len(res.highlights)))
		return res.highlights, attempts, nil
	}

	// The transcription tier is only attempted when there is a transcript
	// to group.
	if !t.IsEmpty() {
		res = s.runTranscriptionTier(t, videoDuration, opts)
		attempts = append(attempts, res.attempt)
		if res.succeeded() {
			s.logger.Info("highlight generation succeeded",
				zap.String("strategy", strategyTranscription),
				zap.Int("highlights", len(res.highlights)))
			return res.highlights, attempts, nil
		}
	}

	res = s.runTimeBasedTier(videoDuration, opts)
	attempts = append(attempts, res.attempt)

	s.logger.Info("highlight generation succeeded",
		zap.String("strategy", strategyTimeBased),
		zap.Int("highlights", len(res.highlights)))
	return res.highlights, attempts, nil
}

// runAITier consults the external content analyzer under a bounded timeout
// and enriches any returned highlights with caption data derived from the
// transcript. A hung analyzer call is abandoned when the timeout fires.
func (s *Selector) runAITier(ctx context.Context, t *transcript.Transcript, videoDuration float64, opts Options) tierResult {
	start := time.Now()

	if s.analyzer == nil {
		s.logger.Debug("content analyzer not configured, skipping AI tier")
		return tierResult{attempt: Attempt{
			Step:     StepHighlightGeneration,
			Strategy: strategyAIAnalysis,
			Status:   StatusFailed,
			Elapsed:  time.Since(start),
			Message:  "content analyzer not configured",
		}}
	}

	s.logger.Info("attempting AI-based highlight generation",
		zap.Duration("timeout", s.aiTimeout))

	aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	type analyzeOutcome struct {
		ranked []RankedHighlight
		err    error
	}
	resultCh := make(chan analyzeOutcome, 1)
	go func() {
		ranked, err := s.analyzer.Analyze(aiCtx, t, videoDuration, opts)
		resultCh <- analyzeOutcome{ranked: ranked, err: err}
	}()

	var outcome analyzeOutcome
	select {
	case outcome = <-resultCh:
	case <-aiCtx.Done():
		elapsed := time.Since(start)
		s.logger.Error("AI analysis timed out", zap.Duration("elapsed", elapsed))
		return tierResult{attempt: Attempt{
			Step:     StepHighlightGeneration,
			Strategy: strategyAIAnalysis,
			Status:   StatusTimeout,
			Elapsed:  elapsed,
			Message:  fmt.Sprintf("AI analysis timed out after %s", s.aiTimeout),
		}}
	}

	elapsed := time.Since(start)

	if outcome.err != nil {
		// An analyzer that honors cancellation reports the deadline through
		// its own error; record it as a timeout, not a failure.
		if errors.Is(outcome.err, context.DeadlineExceeded) {
			s.logger.Error("AI analysis timed out", zap.Duration("elapsed", elapsed))
			return tierResult{attempt: Attempt{
				Step:     StepHighlightGeneration,
				Strategy: strategyAIAnalysis,
				Status:   StatusTimeout,
				Elapsed:  elapsed,
				Message:  fmt.Sprintf("AI analysis timed out after %s", s.aiTimeout),
			}}
		}

		s.logger.Error("AI analysis failed", zap.Error(outcome.err), zap.Duration("elapsed", elapsed))
		return tierResult{attempt: Attempt{
			Step:     StepHighlightGeneration,
			Strategy: strategyAIAnalysis,
			Status:   StatusFailed,
			Elapsed:  elapsed,
			Message:  fmt.Sprintf("AI analysis failed: %v", outcome.err),
		}}
	}

	highlights := s.enrichRanked(outcome.ranked, t, videoDuration)
	if len(highlights) == 0 {
		s.logger.Warn("AI analysis returned no usable highlights", zap.Duration("elapsed", elapsed))
		return tierResult{attempt: Attempt{
			Step:     StepHighlightGeneration,
			Strategy: strategyAIAnalysis,
			Status:   StatusFailed,
			Elapsed:  elapsed,
			Message:  "AI analysis returned no usable highlights",
		}}
	}

	return tierResult{
		highlights: highlights,
		attempt: Attempt{
			Step:     StepHighlightGeneration,
			Strategy: strategyAIAnalysis,
			Status:   StatusSuccess,
			Elapsed:  elapsed,
			Message:  fmt.Sprintf("generated %d AI-based highlights", len(highlights)),
		},
	}
}

// enrichRanked converts externally scored windows into full Highlight
// values, dropping windows that are degenerate or fall outside the video,
// and attaching caption segments when a transcript is available
func (s *Selector) enrichRanked(ranked []RankedHighlight, t *transcript.Transcript, videoDuration float64) []highlight.Highlight {
	allWords := t.AllWords()

	var highlights []highlight.Highlight
	for _, r := range ranked {
		window := highlight.Window{Start: r.Start, End: r.End}.ClampTo(0, videoDuration)
		if !window.IsValid() {
			s.logger.Warn("dropping AI highlight with invalid window",
				zap.Float64("start", r.Start),
				zap.Float64("end", r.End))
			continue
		}

		title := r.Title
		if title == "" {
			title = "Video Highlight"
		}

		h := highlight.Highlight{
			StartTime: window.Start,
			EndTime:   window.End,
			Title:     title,
			Score:     r.Score,
		}
		if !t.IsEmpty() {
			h.Segments = s.builder.AttachCaptions(window, t.Segments, allWords)
		}
		highlights = append(highlights, h)
	}
	return highlights
}

// runTranscriptionTier groups transcript segments into clips and builds one
// highlight per group with decreasing score hints
func (s *Selector) runTranscriptionTier(t *transcript.Transcript, videoDuration float64, opts Options) tierResult {
	start := time.Now()

	s.logger.Info("generating transcription-based highlights",
		zap.Int("segments", len(t.Segments)))

	targetCount := min(opts.ClipCount, tierClipCap)
	groups := s.grouper.Group(t.Segments, targetCount, opts.MinDuration, opts.MaxDuration)

	allWords := t.AllWords()
	highlights := make([]highlight.Highlight, 0, len(groups))
	for i, group := range groups {
		score := 0.8 - float64(i)*0.1
		highlights = append(highlights, s.builder.Build(group, allWords, opts.MinDuration, opts.MaxDuration, videoDuration, score))
	}

	elapsed := time.Since(start)

	if len(highlights) == 0 {
		s.logger.Warn("transcription-based generation produced no highlights",
			zap.Duration("elapsed", elapsed))
		return tierResult{attempt: Attempt{
			Step:     StepHighlightGeneration,
			Strategy: strategyTranscription,
			Status:   StatusFailed,
			Elapsed:  elapsed,
			Message:  "segment grouping produced no highlights",
		}}
	}

	return tierResult{
		highlights: highlights,
		attempt: Attempt{
			Step:     StepHighlightGeneration,
			Strategy: strategyTranscription,
			Status:   StatusSuccess,
			Elapsed:  elapsed,
			Message:  fmt.Sprintf("generated %d transcription-based highlights", len(highlights)),
		},
	}
}

// runTimeBasedTier is the unconditional terminal fallback; see timebased.go
func (s *Selector) runTimeBasedTier(videoDuration float64, opts Options) tierResult {
	start := time.Now()

	highlights := s.timeBasedHighlights(videoDuration, opts)
	elapsed := time.Since(start)

	return tierResult{
		highlights: highlights,
		attempt: Attempt{
			Step:     StepHighlightGeneration,
			Strategy: strategyTimeBased,
			Status:   StatusSuccess,
			Elapsed:  elapsed,
			Message:  fmt.Sprintf("generated %d fallback highlights with captions", len(highlights)),
		},
	}
}
