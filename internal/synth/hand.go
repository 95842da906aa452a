// File: internal/synth/hand.go
package synth

import (
	"fmt"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
)

// Hand is the button currently held, if any.
type Hand uint8

const (
	HandUnset Hand = iota
	HandPrimary
	HandSecondary
)

func (h Hand) String() string {
	switch h {
	case HandUnset:
		return "unset"
	case HandPrimary:
		return "primary"
	case HandSecondary:
		return "secondary"
	default:
		return fmt.Sprintf("Hand(%d)", uint8(h))
	}
}

// Button maps the hand to the mouse button it presses.
func (h Hand) Button() schemas.MouseButton {
	switch h {
	case HandPrimary:
		return schemas.ButtonLeft
	case HandSecondary:
		return schemas.ButtonRight
	case HandUnset:
		return schemas.ButtonNone
	default:
		panic(fmt.Sprintf("synth: invalid hand %d", uint8(h)))
	}
}

// Held reports whether a button is down.
func (h Hand) Held() bool { return h != HandUnset }

// OrPrimary returns h, or HandPrimary when no hand is held.
func (h Hand) OrPrimary() Hand {
	if h == HandUnset {
		return HandPrimary
	}
	return h
}

// Alternate returns the hand for a fresh press: the other hand when one is held,
// otherwise the primary.
func (h Hand) Alternate() Hand {
	switch h {
	case HandPrimary:
		return HandSecondary
	case HandSecondary:
		return HandPrimary
	case HandUnset:
		return HandPrimary
	default:
		panic(fmt.Sprintf("synth: invalid hand %d", uint8(h)))
	}
}
