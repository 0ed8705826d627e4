package diagram

import (
	"github.com/paulmach/orb"

	"github.com/silinternational/intake-api/domain"
)

// Rect is the on-screen rectangle of the diagram canvas in pixels. Min is the top-left corner and Max the
// bottom-right corner.
type Rect = orb.Bound

// NewRect builds a Rect from the left/top corner and size, the way browsers report bounding boxes
func NewRect(left, top, width, height float64) Rect {
	return orb.Bound{Min: orb.Point{left, top}, Max: orb.Point{left + width, top + height}}
}

type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
)

// PointerEvent is a mouse click or a touch on the canvas. For touches, the first entry of Touches is used.
type PointerEvent struct {
	Kind    PointerKind
	ClientX float64
	ClientY float64
	Touches []orb.Point
}

// MouseAt is a shortcut for a mouse event at the given client position
func MouseAt(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerMouse, ClientX: x, ClientY: y}
}

// TouchAt is a shortcut for a single-finger touch at the given client position
func TouchAt(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerTouch, Touches: []orb.Point{{x, y}}}
}

// MapPointer converts a pointer event into percentage coordinates within rect, clamped to [0,100]. It
// reports false for a touch event without touch points and for an empty rectangle.
func MapPointer(ev PointerEvent, rect Rect) (x, y float64, ok bool) {
	px, py := ev.ClientX, ev.ClientY
	if ev.Kind == PointerTouch {
		if len(ev.Touches) == 0 {
			return 0, 0, false
		}
		px, py = ev.Touches[0].X(), ev.Touches[0].Y()
	}

	width := rect.Max.X() - rect.Min.X()
	height := rect.Max.Y() - rect.Min.Y()
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}

	x = domain.ClampPercent((px - rect.Min.X()) / width * 100)
	y = domain.ClampPercent((py - rect.Min.Y()) / height * 100)
	return x, y, true
}

// ToPixels converts stored percentage coordinates back to a position inside rect, for placing pins
func ToPixels(x, y float64, rect Rect) orb.Point {
	return orb.Point{
		rect.Min.X() + domain.ClampPercent(x)/100*(rect.Max.X()-rect.Min.X()),
		rect.Min.Y() + domain.ClampPercent(y)/100*(rect.Max.Y()-rect.Min.Y()),
	}
}
