// File: internal/element/difficulty.go
package element

// PreemptFromApproachRate converts an approach rate into the lead-in time in
// milliseconds an element is visible before its start.
func PreemptFromApproachRate(ar float64) float64 {
	switch {
	case ar < 5:
		return 1200 + 120*(5-ar)
	case ar == 5:
		return 1200
	default:
		return 1200 - 150*(ar-5)
	}
}

// FirstPreempt returns the preempt of the first element that has a positive one.
func FirstPreempt(elements []Element) (float64, bool) {
	for _, e := range elements {
		if p := e.Preempt(); p > 0 {
			return p, true
		}
	}
	return 0, false
}
