package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clipforge/internal/analyzer"
	"clipforge/internal/config"
	"clipforge/internal/logger"
	"clipforge/internal/output"
	"clipforge/internal/strategy"
	"clipforge/internal/transcript"
)

// Application orchestrates one highlight-generation pipeline: transcript
// acquisition, the tiered strategy selector and plan output. Each Run gets
// its own selector and attempt log, so concurrent jobs never share state.
type Application struct {
	config    *config.Configuration
	zapLogger *zap.Logger
	analyzer  strategy.ContentAnalyzer
}

// NewApplication creates a new application instance with all components
// initialized. Configuration comes from the file named by CONFIG_PATH when
// set, from the environment otherwise. The AI analysis tier is only wired
// when an OpenAI API key is configured.
func NewApplication() (*Application, error) {
	var cfg *config.Configuration
	var err error

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		cfg, err = config.NewConfigurationFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.NewConfigurationFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load config from environment: %w", err)
		}
	}

	zapLogger := logger.NewLoggerForMode(cfg.GetDebugMode())

	return NewApplicationWithConfig(cfg, zapLogger), nil
}

// NewApplicationWithConfig creates an application from an explicit
// configuration and logger
func NewApplicationWithConfig(cfg *config.Configuration, zapLogger *zap.Logger) *Application {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}

	var contentAnalyzer strategy.ContentAnalyzer
	if apiKey := cfg.GetOpenAIAPIKey(); apiKey != "" {
		contentAnalyzer = analyzer.NewOpenAIAnalyzerWithLogger(analyzer.Config{
			APIKey:  apiKey,
			Model:   cfg.GetOpenAIModel(),
			BaseURL: cfg.GetOpenAIBaseURL(),
		}, zapLogger)
		zapLogger.Info("AI analysis tier enabled", zap.String("model", cfg.GetOpenAIModel()))
	} else {
		zapLogger.Info("no OpenAI API key configured, AI analysis tier disabled")
	}

	return &Application{
		config:    cfg,
		zapLogger: zapLogger,
		analyzer:  contentAnalyzer,
	}
}

// Run executes one generation job: acquire the transcript from source,
// generate highlights through the strategy selector and write the plan.
// A videoDuration of zero or below falls back to the configured
// conservative default rather than failing the job.
func (app *Application) Run(ctx context.Context, source transcript.Source, videoDuration float64, out io.Writer) error {
	requestID := uuid.NewString()

	if videoDuration <= 0 {
		videoDuration = app.config.GetFallbackVideoDuration()
		app.zapLogger.Warn("video duration unavailable, using fallback",
			zap.String("request_id", requestID),
			zap.Float64("fallback_duration", videoDuration))
	}

	app.zapLogger.Info("starting highlight generation job",
		zap.String("request_id", requestID),
		zap.Float64("video_duration", videoDuration),
		zap.Int("clip_count", app.config.GetClipCount()),
		zap.String("clip_length", string(app.config.GetClipLength())))

	t, transcriptionAttempt := app.acquireTranscript(ctx, source, requestID)
	attempts := []strategy.Attempt{transcriptionAttempt}

	selector := strategy.NewSelectorWithLogger(app.analyzer, app.zapLogger)
	selector.SetAITimeout(app.config.GetAITimeout())

	highlights, generationAttempts, err := selector.Generate(ctx, t, videoDuration, app.config.GetGenerationOptions())
	attempts = append(attempts, generationAttempts...)
	if err != nil {
		strategy.LogSummary(app.zapLogger, attempts)
		return fmt.Errorf("highlight generation failed: %w", err)
	}

	strategy.LogSummary(app.zapLogger, attempts)

	plan := output.Plan{
		RequestID:     requestID,
		VideoDuration: videoDuration,
		Highlights:    highlights,
		Attempts:      attempts,
	}

	writer := output.NewPlanWriter(out, app.zapLogger)
	if err := writer.WritePlan(plan); err != nil {
		return fmt.Errorf("failed to write highlight plan: %w", err)
	}

	app.zapLogger.Info("highlight generation job complete",
		zap.String("request_id", requestID),
		zap.Int("highlights", len(highlights)))

	return nil
}

// acquireTranscript obtains the transcript under the configured timeout and
// records the outcome as a Transcription step attempt. Failures degrade to
// an empty transcript; generation continues on the fallback tiers.
func (app *Application) acquireTranscript(ctx context.Context, source transcript.Source, requestID string) (*transcript.Transcript, strategy.Attempt) {
	start := time.Now()

	if source == nil {
		app.zapLogger.Warn("no transcript source configured",
			zap.String("request_id", requestID))
		return transcript.Empty(), strategy.Attempt{
			Step:     strategy.StepTranscription,
			Strategy: "None",
			Status:   strategy.StatusFailed,
			Elapsed:  time.Since(start),
			Message:  "no transcript source configured",
		}
	}

	srcCtx, cancel := context.WithTimeout(ctx, app.config.GetTranscriptionTimeout())
	defer cancel()

	type transcribeOutcome struct {
		t   *transcript.Transcript
		err error
	}
	resultCh := make(chan transcribeOutcome, 1)
	go func() {
		t, err := source.Transcribe(srcCtx)
		resultCh <- transcribeOutcome{t: t, err: err}
	}()

	var outcome transcribeOutcome
	select {
	case outcome = <-resultCh:
	case <-srcCtx.Done():
		elapsed := time.Since(start)
		app.zapLogger.Error("transcription timed out",
			zap.String("request_id", requestID),
			zap.Duration("elapsed", elapsed))
		return transcript.Empty(), strategy.Attempt{
			Step:     strategy.StepTranscription,
			Strategy: source.Name(),
			Status:   strategy.StatusTimeout,
			Elapsed:  elapsed,
			Message:  fmt.Sprintf("transcription timed out after %s", app.config.GetTranscriptionTimeout()),
		}
	}

	elapsed := time.Since(start)

	if outcome.err != nil {
		app.zapLogger.Error("transcription failed, continuing without captions",
			zap.String("request_id", requestID),
			zap.Error(outcome.err))
		return transcript.Empty(), strategy.Attempt{
			Step:     strategy.StepTranscription,
			Strategy: source.Name(),
			Status:   strategy.StatusFailed,
			Elapsed:  elapsed,
			Message:  fmt.Sprintf("transcription failed: %v", outcome.err),
		}
	}

	if outcome.t.IsEmpty() {
		app.zapLogger.Warn("transcription returned no segments",
			zap.String("request_id", requestID))
		return transcript.Empty(), strategy.Attempt{
			Step:     strategy.StepTranscription,
			Strategy: source.Name(),
			Status:   strategy.StatusFailed,
			Elapsed:  elapsed,
			Message:  "transcription returned no segments",
		}
	}

	app.zapLogger.Info("transcription successful",
		zap.String("request_id", requestID),
		zap.Int("segments", len(outcome.t.Segments)))

	return outcome.t, strategy.Attempt{
		Step:     strategy.StepTranscription,
		Strategy: source.Name(),
		Status:   strategy.StatusSuccess,
		Elapsed:  elapsed,
		Message:  fmt.Sprintf("decoded %d transcript segments", len(outcome.t.Segments)),
	}
}

// Shutdown releases application resources
func (app *Application) Shutdown() error {
	app.zapLogger.Info("shutting down application")
	// Sync flushes any buffered log entries; stderr sync errors are harmless
	_ = app.zapLogger.Sync()
	return nil
}
