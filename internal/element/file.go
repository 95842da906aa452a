// File: internal/element/file.go
package element

import (
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/xkilldash9x/autoplay-cli/api/schemas"
)

// Document is the on-disk element list consumed by the CLI. It is a boundary format
// produced by an external beatmap converter, not a beatmap file.
type Document struct {
	// ApproachRate, when set, gives every element the matching preempt.
	ApproachRate *float64 `json:"approach_rate,omitempty"`
	Elements     []Record `json:"elements"`
}

// Record is a single element entry in a Document.
type Record struct {
	Type                 string       `json:"type"`
	Time                 float64      `json:"time"`
	EndTime              float64      `json:"end_time,omitempty"`
	X                    float64      `json:"x,omitempty"`
	Y                    float64      `json:"y,omitempty"`
	Path                 [][2]float64 `json:"path,omitempty"`
	Repeats              int          `json:"repeats,omitempty"`
	Ticks                []float64    `json:"ticks,omitempty"`
	StackOffset          [2]float64   `json:"stack_offset,omitempty"`
	LegacyLastTickOffset float64      `json:"legacy_last_tick_offset,omitempty"`
}

// DecodeFile reads an element document from disk.
func DecodeFile(path string) ([]Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open element file: %w", err)
	}
	defer f.Close()

	elements, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return elements, nil
}

// Decode parses an element document. Elements keep document order and receive
// 1-based indices.
func Decode(r io.Reader) ([]Element, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode element document: %w", err)
	}
	return doc.Build()
}

// Build converts the document records into elements.
func (d Document) Build() ([]Element, error) {
	var preempt float64
	if d.ApproachRate != nil {
		preempt = PreemptFromApproachRate(*d.ApproachRate)
	}

	elements := make([]Element, 0, len(d.Elements))
	for i, rec := range d.Elements {
		index := i + 1
		switch strings.ToLower(rec.Type) {
		case "tap", "circle":
			elements = append(elements, NewTap(index, rec.Time, schemas.Vector2D{X: rec.X, Y: rec.Y}, preempt))
		case "spin", "spinner":
			elements = append(elements, NewSpinZone(index, rec.Time, rec.EndTime, preempt))
		case "hold", "slider":
			points := make([]schemas.Vector2D, len(rec.Path))
			for j, p := range rec.Path {
				points[j] = schemas.Vector2D{X: p[0], Y: p[1]}
			}
			if len(points) == 0 {
				points = []schemas.Vector2D{{X: rec.X, Y: rec.Y}}
			}
			h, err := NewHoldPath(HoldPathSpec{
				Index:                index,
				Start:                rec.Time,
				End:                  rec.EndTime,
				Points:               points,
				StackOffset:          schemas.Vector2D{X: rec.StackOffset[0], Y: rec.StackOffset[1]},
				Repeats:              rec.Repeats,
				TickTimes:            rec.Ticks,
				LegacyLastTickOffset: rec.LegacyLastTickOffset,
				Preempt:              preempt,
			})
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", index, err)
			}
			elements = append(elements, h)
		default:
			return nil, fmt.Errorf("element %d: unknown element type %q", index, rec.Type)
		}
	}
	return elements, nil
}
