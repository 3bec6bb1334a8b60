package highlight

// Window is an absolute (start,end) time interval in seconds
type Window struct {
	Start float64
	End   float64
}

// Duration returns the length of the window in seconds
func (w Window) Duration() float64 {
	return w.End - w.Start
}

// IsValid reports whether the window has positive duration and a
// non-negative start
func (w Window) IsValid() bool {
	return w.Start >= 0 && w.End > w.Start
}

// Overlaps reports whether two windows share any time. Touching edges do
// not count as overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start < other.End && w.End > other.Start
}

// ClampTo limits the window to the given bounds
func (w Window) ClampTo(lo, hi float64) Window {
	return Window{Start: Clamp(w.Start, lo, hi), End: Clamp(w.End, lo, hi)}
}

// RelativeTo translates the window into coordinates relative to the start
// of the enclosing window, clamped to the enclosing window's span. The
// result may be degenerate (End <= Start) when the two windows do not
// overlap; callers must check IsValid.
func (w Window) RelativeTo(enclosing Window) Window {
	return Window{
		Start: max(0, w.Start-enclosing.Start),
		End:   min(enclosing.Duration(), w.End-enclosing.Start),
	}
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
