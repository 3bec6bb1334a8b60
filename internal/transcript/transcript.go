package transcript

import "fmt"

// Word represents a single spoken word with absolute timing relative to the
// full source video, as produced by the transcription service
type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Validate checks if the Word has valid timing values
func (w *Word) Validate() error {
	if w.Text == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if w.Start < 0 {
		return fmt.Errorf("start cannot be negative")
	}

	if w.End <= w.Start {
		return fmt.Errorf("end must be greater than start")
	}

	return nil
}

// Segment represents a transcribed sentence or phrase with absolute timing.
// Words is optional; some transcription passes only provide a flat word list
// at the transcript level.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Validate checks if the Segment has valid values
func (s *Segment) Validate() error {
	if s.Text == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if s.Start < 0 {
		return fmt.Errorf("start cannot be negative")
	}

	if s.End <= s.Start {
		return fmt.Errorf("end must be greater than start")
	}

	return nil
}

// Duration returns the intrinsic duration of the segment in seconds
func (s *Segment) Duration() float64 {
	return s.End - s.Start
}

// Transcript represents the full output of a transcription pass. Segments
// are ordered by start time ascending and assumed non-overlapping; minor
// overlap is tolerated downstream.
type Transcript struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Words    []Word    `json:"words,omitempty"`
	Language string    `json:"language,omitempty"`
}

// Empty returns a transcript with no content. Used when transcription failed
// or was skipped; an empty transcript is a normal input to highlight
// generation, not an error.
func Empty() *Transcript {
	return &Transcript{
		Text:     "",
		Segments: []Segment{},
		Words:    []Word{},
		Language: "en",
	}
}

// IsEmpty reports whether the transcript carries no segments
func (t *Transcript) IsEmpty() bool {
	return t == nil || len(t.Segments) == 0
}

// AllWords returns the flat word list for the transcript. It prefers the
// transcript-level list and falls back to collecting per-segment words, so
// callers get word timings regardless of which form the transcription pass
// produced.
func (t *Transcript) AllWords() []Word {
	if t == nil {
		return nil
	}

	if len(t.Words) > 0 {
		return t.Words
	}

	var words []Word
	for _, seg := range t.Segments {
		words = append(words, seg.Words...)
	}
	return words
}
