package gauge

import (
	"fmt"
	"math"

	"github.com/silinternational/intake-api/domain"
)

// Segment is one wedge of a rendered gauge
type Segment struct {
	Index int    `json:"index"`
	Path  string `json:"path"`
	Fill  string `json:"fill"`
	Lit   bool   `json:"lit"`
}

// Level is everything needed to draw the gauge for one fuel reading
type Level struct {
	Value       float64   `json:"value"`
	Lit         int       `json:"lit"`
	Segments    []Segment `json:"segments"`
	NeedleAngle float64   `json:"needle_angle"`
	Label       string    `json:"label"`
}

// Render clamps the value and builds the gauge view model
func Render(value float64) Level {
	v := domain.ClampPercent(value)
	lit := SegmentsLit(v)

	segments := make([]Segment, SegmentCount)
	for i := range segments {
		fill := TrackColor
		if i < lit {
			fill = SegmentColor(i)
		}
		segments[i] = Segment{
			Index: i,
			Path:  SegmentSVGPath(i),
			Fill:  fill,
			Lit:   i < lit,
		}
	}

	return Level{
		Value:       v,
		Lit:         lit,
		Segments:    segments,
		NeedleAngle: NeedleAngle(v),
		Label:       fmt.Sprintf("%d%%", int(math.Round(v))),
	}
}
