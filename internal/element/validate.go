// File: internal/element/validate.go
package element

import "fmt"

// Validate rejects elements the timeline builder cannot process. Ordering is the
// element source's responsibility and is not checked here.
func Validate(elements []Element) error {
	for i, e := range elements {
		if e.EndTime() < e.StartTime() {
			return fmt.Errorf("element %d (%s): end time %.2f precedes start time %.2f",
				i, e.Kind(), e.EndTime(), e.StartTime())
		}
		h, ok := e.(*HoldPath)
		if !ok {
			continue
		}
		if len(h.Checkpoints) == 0 && !h.HasLegacySample() {
			return fmt.Errorf("element %d: %w: no checkpoints and no legacy sample", i, ErrMalformedHoldPath)
		}
	}
	return nil
}
