package highlight

import (
	"strings"

	"clipforge/internal/transcript"
)

// DefaultTolerance absorbs timing precision drift between segmentation and
// word-level passes when matching flat word lists to a segment (100ms)
const DefaultTolerance = 0.1

// AlignWords selects the word timings belonging to a segment that fall
// inside the given absolute highlight window and shifts them to
// clip-relative time. Word timings come from the segment's own word list
// when present; otherwise the flat transcript-level list is used, filtered
// to words near the segment's span. The dual source matters because
// upstream transcription may nest word timings per segment or emit one flat
// list, and the aligner must not silently produce zero captions in the flat
// case.
func AlignWords(segment transcript.Segment, allWords []transcript.Word, window Window, tolerance float64) []CaptionWord {
	candidates := segment.Words
	if len(candidates) == 0 && len(allWords) > 0 {
		segWindow := Window{Start: segment.Start - tolerance, End: segment.End + tolerance}
		for _, w := range allWords {
			if (Window{Start: w.Start, End: w.End}).Overlaps(segWindow) {
				candidates = append(candidates, w)
			}
		}
	}

	var aligned []CaptionWord
	for _, w := range candidates {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}

		if w.Start >= window.End || w.End <= window.Start {
			continue
		}

		rel := Window{Start: w.Start, End: w.End}.RelativeTo(window)
		if rel.End <= rel.Start {
			continue
		}

		aligned = append(aligned, CaptionWord{Start: rel.Start, End: rel.End, Text: text})
	}

	return aligned
}
