package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"clipforge/internal/strategy"
	"clipforge/internal/transcript"
)

const (
	defaultModel = "gpt-4o-mini"

	// maxPromptSegments bounds the prompt size on long transcripts
	maxPromptSegments = 400
	maxSegmentChars   = 260
)

// Config holds the settings for the OpenAI-backed content analyzer
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIAnalyzer ranks highlight windows by sending the timed transcript to
// a chat-completion model and parsing the structured response. It implements
// strategy.ContentAnalyzer.
type OpenAIAnalyzer struct {
	client openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIAnalyzer creates a new analyzer with a no-op logger
func NewOpenAIAnalyzer(cfg Config) *OpenAIAnalyzer {
	return NewOpenAIAnalyzerWithLogger(cfg, nil)
}

// NewOpenAIAnalyzerWithLogger creates a new analyzer with the given logger
func NewOpenAIAnalyzerWithLogger(cfg Config, logger *zap.Logger) *OpenAIAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &OpenAIAnalyzer{
		client: openai.NewClient(clientOpts...),
		model:  model,
		logger: logger,
	}
}

// Analyze asks the model to select the most engaging highlight windows from
// the transcript. The transcript must carry segments; picking windows out of
// thin air is the job of the time-based fallback tier, not the model.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, t *transcript.Transcript, videoDuration float64, opts strategy.Options) ([]strategy.RankedHighlight, error) {
	if t.IsEmpty() {
		return nil, errors.New("transcript has no segments to analyze")
	}

	payload, err := a.buildPayload(t, videoDuration, opts)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("requesting highlight ranking from model",
		zap.String("model", a.model),
		zap.Int("segments", len(t.Segments)))

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(payload),
		},
		Model:       a.model,
		Temperature: openai.Float(0.2),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "highlight_selection",
					Description: openai.String("Selected highlight windows with scores"),
					Strict:      openai.Bool(true),
					Schema:      responseSchema(),
				},
			},
		},
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		// Some gateways only support json_object; retry once with the looser
		// mode and rely on tolerant parsing.
		if shouldFallbackToJSONMode(err) {
			a.logger.Warn("json_schema response format rejected, retrying with json_object", zap.Error(err))
			params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
			}
			resp, err = a.client.Chat.Completions.New(ctx, params)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("model returned no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if raw == "" {
		return nil, errors.New("model returned empty content")
	}

	ranked, err := ParseRankedHighlights(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	a.logger.Debug("model returned ranked highlights", zap.Int("count", len(ranked)))
	return ranked, nil
}

const systemPrompt = "You are a short-form video editor. Given a timed " +
	"transcript, select the most engaging highlight windows for vertical " +
	"clips. Respond with JSON only."

// buildPayload renders the user prompt: task constraints plus the timed
// transcript as a JSON document
func (a *OpenAIAnalyzer) buildPayload(t *transcript.Transcript, videoDuration float64, opts strategy.Options) (string, error) {
	segments := t.Segments
	if len(segments) > maxPromptSegments {
		segments = segments[:maxPromptSegments]
	}

	items := make([]map[string]interface{}, 0, len(segments))
	for _, seg := range segments {
		items = append(items, map[string]interface{}{
			"start": seg.Start,
			"end":   seg.End,
			"text":  shortText(seg.Text, maxSegmentChars),
		})
	}

	doc := map[string]interface{}{
		"video_duration": videoDuration,
		"clip_count":     opts.ClipCount,
		"min_duration":   opts.MinDuration,
		"max_duration":   opts.MaxDuration,
		"segments":       items,
	}
	docBytes, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal prompt payload: %w", err)
	}

	prompt := "Task:\n" +
		"1) Select up to clip_count highlight windows from the transcript.\n" +
		"2) Each window must last between min_duration and max_duration seconds and stay within the video.\n" +
		"3) Windows must not overlap.\n" +
		"4) Give each window a short title (at most 8 words) and a score between 0 and 1.\n\n" +
		"Output format:\n" +
		`{"highlights":[{"start_time":0.0,"end_time":0.0,"title":"...","score":0.0}]}` + "\n\n" +
		"Transcript data:\n" + string(docBytes)

	return prompt, nil
}

// responseSchema describes the expected model output for strict
// structured-response gateways
func responseSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"highlights"},
		"properties": map[string]interface{}{
			"highlights": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"start_time", "end_time", "title", "score"},
					"properties": map[string]interface{}{
						"start_time": map[string]interface{}{"type": "number"},
						"end_time":   map[string]interface{}{"type": "number"},
						"title":      map[string]interface{}{"type": "string"},
						"score":      map[string]interface{}{"type": "number"},
					},
				},
			},
		},
	}
}

// shouldFallbackToJSONMode reports whether the error looks like a gateway
// rejecting the json_schema response format
func shouldFallbackToJSONMode(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "json_schema") ||
		strings.Contains(msg, "response_format") ||
		strings.Contains(msg, "structured output")
}

// ParseRankedHighlights extracts highlight windows from a model response.
// Parsing is deliberately tolerant: code fences are stripped and the
// highlight array is accepted under "highlights", "items" or as a bare
// top-level array, since looser json_object gateways vary in shape.
func ParseRankedHighlights(raw string) ([]strategy.RankedHighlight, error) {
	raw = stripCodeFence(raw)

	root := gjson.Parse(raw)
	items := root.Get("highlights")
	if !items.Exists() {
		items = root.Get("items")
	}
	if !items.Exists() && root.IsArray() {
		items = root
	}
	if !items.IsArray() {
		return nil, errors.New("no highlight array found in response")
	}

	var ranked []strategy.RankedHighlight
	items.ForEach(func(_, item gjson.Result) bool {
		h := strategy.RankedHighlight{
			Start: item.Get("start_time").Float(),
			End:   item.Get("end_time").Float(),
			Title: strings.TrimSpace(item.Get("title").String()),
			Score: item.Get("score").Float(),
		}
		if h.End > h.Start {
			ranked = append(ranked, h)
		}
		return true
	})

	if len(ranked) == 0 {
		return nil, errors.New("response contained no valid highlight windows")
	}
	return ranked, nil
}

// shortText truncates s to at most n runes
func shortText(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n])
}

// stripCodeFence removes a surrounding markdown code fence if present
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
