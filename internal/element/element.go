// File: internal/element/element.go
package element

import (
	"fmt"

	"github.com/xkilldash9x/autoplay-cli/api/schemas"
)

// Kind identifies the gameplay element variant.
type Kind uint8

const (
	KindTap Kind = iota + 1
	KindHoldPath
	KindSpinZone
)

func (k Kind) String() string {
	switch k {
	case KindTap:
		return "tap"
	case KindHoldPath:
		return "hold"
	case KindSpinZone:
		return "spin"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// SpinCentre is where spin zones are anchored on the playfield.
var SpinCentre = schemas.Vector2D{X: schemas.PlayfieldWidth / 2, Y: schemas.PlayfieldHeight / 2}

// Element is a timed, spatially anchored gameplay unit. Elements are immutable once
// constructed and are owned by the element source for the duration of a run.
type Element interface {
	Kind() Kind
	// Index is the 1-based position of the element in the beatmap; 0 means "no element".
	Index() int
	StartTime() float64
	EndTime() float64
	// Position is the absolute (stacked) anchor of the element.
	Position() schemas.Vector2D
	// Preempt is the lead-in time before StartTime during which the element is visible.
	Preempt() float64
}

// Base carries the attributes every element shares.
type Base struct {
	Idx         int
	Start       float64
	Pos         schemas.Vector2D
	TimePreempt float64
}

func (b Base) Index() int                 { return b.Idx }
func (b Base) StartTime() float64         { return b.Start }
func (b Base) Position() schemas.Vector2D { return b.Pos }
func (b Base) Preempt() float64           { return b.TimePreempt }

// Tap is a single instantaneous hit.
type Tap struct{ Base }

func (*Tap) Kind() Kind         { return KindTap }
func (t *Tap) EndTime() float64 { return t.Start }

// SpinZone is a time span during which the cursor must spin around the playfield centre.
type SpinZone struct {
	Base
	End float64
}

func (*SpinZone) Kind() Kind         { return KindSpinZone }
func (s *SpinZone) EndTime() float64 { return s.End }

// NewTap creates a tap at an absolute position.
func NewTap(index int, t float64, pos schemas.Vector2D, preempt float64) *Tap {
	return &Tap{Base: Base{Idx: index, Start: t, Pos: pos, TimePreempt: preempt}}
}

// NewSpinZone creates a spin zone centred on the playfield.
func NewSpinZone(index int, start, end float64, preempt float64) *SpinZone {
	return &SpinZone{Base: Base{Idx: index, Start: start, Pos: SpinCentre, TimePreempt: preempt}, End: end}
}
