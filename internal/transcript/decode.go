package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// rawWord mirrors the word payloads produced by transcription backends.
// Whisper verbose JSON uses "word" for the word text while other backends
// use "text"; both forms are normalized here, at the boundary, so the rest
// of the codebase only ever sees Word.
type rawWord struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Word  string  `json:"word"`
}

func (rw rawWord) normalize() Word {
	text := strings.TrimSpace(rw.Text)
	if text == "" {
		text = strings.TrimSpace(rw.Word)
	}
	return Word{Start: rw.Start, End: rw.End, Text: text}
}

type rawSegment struct {
	Start float64   `json:"start"`
	End   float64   `json:"end"`
	Text  string    `json:"text"`
	Words []rawWord `json:"words"`
}

type rawTranscript struct {
	Text     string       `json:"text"`
	Segments []rawSegment `json:"segments"`
	Words    []rawWord    `json:"words"`
	Language string       `json:"language"`
}

// Decoder reads transcription JSON payloads and normalizes them into
// Transcript values
type Decoder struct {
	logger *zap.Logger
}

// NewDecoder creates a new Decoder with a no-op logger
func NewDecoder() *Decoder {
	return &Decoder{logger: zap.NewNop()}
}

// NewDecoderWithLogger creates a new Decoder with the given logger
func NewDecoderWithLogger(logger *zap.Logger) *Decoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decoder{logger: logger}
}

// Decode reads a transcription JSON document and returns the normalized
// Transcript. Words with empty text or degenerate timing are dropped;
// segments with empty text are kept out of the segment list since they can
// never produce captions.
func (d *Decoder) Decode(r io.Reader) (*Transcript, error) {
	var raw rawTranscript
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode transcript JSON: %w", err)
	}

	t := &Transcript{
		Text:     strings.TrimSpace(raw.Text),
		Segments: make([]Segment, 0, len(raw.Segments)),
		Language: raw.Language,
	}
	if t.Language == "" {
		t.Language = "en"
	}

	droppedWords := 0
	for _, rs := range raw.Segments {
		text := strings.TrimSpace(rs.Text)
		if text == "" {
			continue
		}
		seg := Segment{Start: rs.Start, End: rs.End, Text: text}
		for _, rw := range rs.Words {
			w := rw.normalize()
			if w.Text == "" || w.End <= w.Start {
				droppedWords++
				continue
			}
			seg.Words = append(seg.Words, w)
		}
		t.Segments = append(t.Segments, seg)
	}

	for _, rw := range raw.Words {
		w := rw.normalize()
		if w.Text == "" || w.End <= w.Start {
			droppedWords++
			continue
		}
		t.Words = append(t.Words, w)
	}

	d.logger.Debug("decoded transcript",
		zap.Int("segments", len(t.Segments)),
		zap.Int("words", len(t.Words)),
		zap.Int("dropped_words", droppedWords),
		zap.String("language", t.Language))

	return t, nil
}

// DecodeFile reads and normalizes a transcription JSON file
func (d *Decoder) DecodeFile(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript file %s: %w", path, err)
	}
	defer f.Close()

	t, err := d.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transcript file %s: %w", path, err)
	}
	return t, nil
}
