// Package gauge holds the fuel gauge geometry: a 180° arc split into eight wedges that light up as the
// level rises, plus a needle. All functions are pure.
package gauge

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"

	"github.com/silinternational/intake-api/domain"
)

const (
	SegmentCount = 8

	// SweepDegrees is the total arc covered by the segments, from the left (180°) to the right (0°)
	SweepDegrees = 180.0

	// GapDegrees is the angular gap left between neighbouring segments
	GapDegrees = 2.0

	InnerRadius = 60.0
	OuterRadius = 90.0

	// arcSteps is how many chords approximate each arc edge of a segment outline
	arcSteps = 8

	TrackColor = "#e5e7eb"
)

// Center of the gauge in the 200x110 drawing box
var Center = orb.Point{100, 100}

// Thresholds are the fuel levels at which segments light up; segment i is lit once the level reaches
// Thresholds[i+1].
var Thresholds = [SegmentCount + 1]float64{0, 13, 25, 38, 50, 63, 75, 88, 100}

var palette = [SegmentCount]string{
	"#dc2626",
	"#ea580c",
	"#f97316",
	"#f59e0b",
	"#eab308",
	"#a3e635",
	"#4ade80",
	"#16a34a",
}

// SegmentsLit returns how many of the eight segments are lit for a level in [0,100]. Values outside the
// range saturate.
func SegmentsLit(value float64) int {
	if value <= 0 || math.IsNaN(value) {
		return 0
	}
	if value >= 100 {
		return SegmentCount
	}

	lit := 0
	for i := 0; i < SegmentCount; i++ {
		if value >= Thresholds[i+1] {
			lit++
		}
	}
	return lit
}

// SegmentColor returns the fill of a lit segment. Indexes outside 0..7 get the track color.
func SegmentColor(index int) string {
	if index < 0 || index >= SegmentCount {
		return TrackColor
	}
	return palette[index]
}

// NeedleAngle maps a level to the needle direction in degrees: 180 at empty, 0 at full.
func NeedleAngle(value float64) float64 {
	return SweepDegrees - domain.ClampPercent(value)*SweepDegrees/100
}

// NeedleTip returns where a needle of the given length points for the level
func NeedleTip(value, length float64) orb.Point {
	return polarToCartesian(Center, length, NeedleAngle(value))
}

// segmentAngles returns the start and end angle of a segment, start being the one closer to 180°
func segmentAngles(index int) (float64, float64) {
	step := SweepDegrees / SegmentCount
	start := SweepDegrees - float64(index)*step - GapDegrees/2
	end := SweepDegrees - float64(index+1)*step + GapDegrees/2
	return start, end
}

// SegmentPath returns the closed outline of one donut-wedge segment. Arc edges are approximated by
// chords. An index outside 0..7 returns nil.
func SegmentPath(index int) orb.Ring {
	if index < 0 || index >= SegmentCount {
		return nil
	}
	start, end := segmentAngles(index)

	ring := make(orb.Ring, 0, 2*(arcSteps+1)+1)
	for s := 0; s <= arcSteps; s++ {
		a := start + (end-start)*float64(s)/arcSteps
		ring = append(ring, polarToCartesian(Center, OuterRadius, a))
	}
	for s := arcSteps; s >= 0; s-- {
		a := start + (end-start)*float64(s)/arcSteps
		ring = append(ring, polarToCartesian(Center, InnerRadius, a))
	}
	return append(ring, ring[0])
}

// SegmentSVGPath returns the segment outline as an SVG path using true arcs
func SegmentSVGPath(index int) string {
	if index < 0 || index >= SegmentCount {
		return ""
	}
	start, end := segmentAngles(index)
	outerStart := polarToCartesian(Center, OuterRadius, start)
	outerEnd := polarToCartesian(Center, OuterRadius, end)
	innerEnd := polarToCartesian(Center, InnerRadius, end)
	innerStart := polarToCartesian(Center, InnerRadius, start)

	var b strings.Builder
	fmt.Fprintf(&b, "M %s ", svgPoint(outerStart))
	fmt.Fprintf(&b, "A %g %g 0 0 1 %s ", OuterRadius, OuterRadius, svgPoint(outerEnd))
	fmt.Fprintf(&b, "L %s ", svgPoint(innerEnd))
	fmt.Fprintf(&b, "A %g %g 0 0 0 %s Z", InnerRadius, InnerRadius, svgPoint(innerStart))
	return b.String()
}

// polarToCartesian converts an angle in degrees (0 = right, 90 = up) to drawing coordinates, where y
// grows downward.
func polarToCartesian(center orb.Point, radius, degrees float64) orb.Point {
	rad := degrees * math.Pi / 180
	return orb.Point{
		center.X() + radius*math.Cos(rad),
		center.Y() - radius*math.Sin(rad),
	}
}

func svgPoint(p orb.Point) string {
	return fmt.Sprintf("%.2f %.2f", p.X(), p.Y())
}
