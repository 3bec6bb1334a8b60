package highlight

import "fmt"

// CaptionWord is a single word timing relative to the owning highlight's
// start, used for word-by-word caption emphasis
type CaptionWord struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// CaptionSegment is a caption line with timing relative to the owning
// highlight's start
type CaptionSegment struct {
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Text  string        `json:"text"`
	Words []CaptionWord `json:"words,omitempty"`
}

// Highlight is a selected absolute time window of the source video slated
// to become one output clip. StartTime and EndTime are absolute; the caption
// segments are relative to StartTime. Highlights are immutable after
// creation and handed off to the rendering pipeline as values.
type Highlight struct {
	StartTime float64          `json:"start_time"`
	EndTime   float64          `json:"end_time"`
	Title     string           `json:"title"`
	Score     float64          `json:"score"`
	Segments  []CaptionSegment `json:"transcription_segments"`
}

// Window returns the highlight's absolute time window
func (h *Highlight) Window() Window {
	return Window{Start: h.StartTime, End: h.EndTime}
}

// Duration returns the highlight's duration in seconds
func (h *Highlight) Duration() float64 {
	return h.EndTime - h.StartTime
}

// Validate checks if the Highlight has valid values
func (h *Highlight) Validate() error {
	if h.StartTime < 0 {
		return fmt.Errorf("start_time cannot be negative")
	}

	if h.EndTime <= h.StartTime {
		return fmt.Errorf("end_time must be greater than start_time")
	}

	if h.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	span := h.Duration()
	for i, seg := range h.Segments {
		if seg.Start < 0 || seg.End <= seg.Start {
			return fmt.Errorf("caption segment %d has invalid timing", i)
		}
		if seg.End > span+timingEpsilon {
			return fmt.Errorf("caption segment %d ends beyond highlight duration", i)
		}
	}

	return nil
}

// timingEpsilon absorbs floating point drift when comparing second values
const timingEpsilon = 1e-6
