package domain

// SkipWindow is an intro or outro segment expressed as second offsets
// within the video timeline, as reported by the episode source bundle.
type SkipWindow struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (w SkipWindow) IsZero() bool {
	return w.Start == 0 && w.End == 0
}

// Contains reports whether pos falls inside the window.
func (w SkipWindow) Contains(pos float64) bool {
	if w.IsZero() || w.End <= w.Start {
		return false
	}
	return pos >= w.Start && pos < w.End
}

// NextSkipTarget returns the position the player should jump to when
// auto-skip is enabled and pos is inside the intro or outro window.
func NextSkipTarget(intro, outro SkipWindow, pos float64) (float64, bool) {
	if intro.Contains(pos) {
		return intro.End, true
	}
	if outro.Contains(pos) {
		return outro.End, true
	}
	return 0, false
}
