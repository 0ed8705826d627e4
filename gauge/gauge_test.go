package gauge

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SegmentsLit(t *testing.T) {
	tests := []struct {
		value float64
		want  int
	}{
		{value: -10, want: 0},
		{value: 0, want: 0},
		{value: 12.9, want: 0},
		{value: 13, want: 1},
		{value: 24, want: 1},
		{value: 25, want: 2},
		{value: 38, want: 3},
		{value: 49.99, want: 3},
		{value: 50, want: 4},
		{value: 63, want: 5},
		{value: 75, want: 6},
		{value: 87, want: 6},
		{value: 88, want: 7},
		{value: 99.9, want: 7},
		{value: 100, want: 8},
		{value: 250, want: 8},
		{value: math.NaN(), want: 0},
	}
	for _, tt := range tests {
		name := fmt.Sprintf("value=%v", tt.value)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentsLit(tt.value))
		})
	}
}

func Test_SegmentsLitMonotonic(t *testing.T) {
	prev := SegmentsLit(0)
	assert.Equal(t, 0, prev)
	for v := 0.0; v <= 100; v += 0.25 {
		got := SegmentsLit(v)
		assert.GreaterOrEqual(t, got, prev, "decreased at %v", v)
		assert.LessOrEqual(t, got, SegmentCount)
		prev = got
	}
	assert.Equal(t, SegmentCount, SegmentsLit(100))
}

func Test_SegmentColor(t *testing.T) {
	assert.Equal(t, "#dc2626", SegmentColor(0))
	assert.Equal(t, "#16a34a", SegmentColor(7))
	assert.Equal(t, TrackColor, SegmentColor(-1))
	assert.Equal(t, TrackColor, SegmentColor(8))

	seen := map[string]bool{}
	for i := 0; i < SegmentCount; i++ {
		seen[SegmentColor(i)] = true
	}
	assert.Len(t, seen, SegmentCount, "palette colors should be distinct")
}

func Test_NeedleAngle(t *testing.T) {
	tests := []struct {
		value float64
		want  float64
	}{
		{value: -5, want: 180},
		{value: 0, want: 180},
		{value: 25, want: 135},
		{value: 50, want: 90},
		{value: 100, want: 0},
		{value: 120, want: 0},
	}
	for _, tt := range tests {
		name := fmt.Sprintf("value=%v", tt.value)
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NeedleAngle(tt.value), 1e-9)
		})
	}
}

func Test_NeedleTip(t *testing.T) {
	empty := NeedleTip(0, 50)
	assert.InDelta(t, 50, empty.X(), 1e-9)
	assert.InDelta(t, 100, empty.Y(), 1e-9)

	half := NeedleTip(50, 50)
	assert.InDelta(t, 100, half.X(), 1e-9)
	assert.InDelta(t, 50, half.Y(), 1e-9)

	full := NeedleTip(100, 50)
	assert.InDelta(t, 150, full.X(), 1e-9)
	assert.InDelta(t, 100, full.Y(), 1e-9)
}

func Test_SegmentPath(t *testing.T) {
	step := SweepDegrees / SegmentCount
	wantArea := math.Pi * (OuterRadius*OuterRadius - InnerRadius*InnerRadius) * (step - GapDegrees) / 360

	for i := 0; i < SegmentCount; i++ {
		t.Run(fmt.Sprintf("segment=%d", i), func(t *testing.T) {
			ring := SegmentPath(i)
			require.NotNil(t, ring)
			assert.True(t, ring.Closed())

			assert.InDelta(t, wantArea, math.Abs(planar.Area(ring)), wantArea*0.02)

			mid := SweepDegrees - (float64(i)+0.5)*step
			inside := polarToCartesian(Center, (InnerRadius+OuterRadius)/2, mid)
			assert.True(t, planar.RingContains(ring, inside), "wedge midpoint should be inside")

			// the gap between this segment and the next is outside both
			if i < SegmentCount-1 {
				gap := polarToCartesian(Center, (InnerRadius+OuterRadius)/2, SweepDegrees-float64(i+1)*step)
				assert.False(t, planar.RingContains(ring, gap))
				assert.False(t, planar.RingContains(SegmentPath(i+1), gap))
			}

			// everything stays in the upper half of the dial
			for _, p := range ring {
				assert.LessOrEqual(t, p.Y(), Center.Y()+1e-9)
			}
		})
	}

	assert.Nil(t, SegmentPath(-1))
	assert.Nil(t, SegmentPath(SegmentCount))
}

func Test_SegmentPathOrder(t *testing.T) {
	// segments sweep from left to right
	prev := math.Inf(-1)
	for i := 0; i < SegmentCount; i++ {
		c := ringCentroidX(SegmentPath(i))
		assert.Greater(t, c, prev)
		prev = c
	}
}

func ringCentroidX(r orb.Ring) float64 {
	sum := 0.0
	for _, p := range r[:len(r)-1] {
		sum += p.X()
	}
	return sum / float64(len(r)-1)
}

func Test_SegmentSVGPath(t *testing.T) {
	p := SegmentSVGPath(0)
	assert.True(t, strings.HasPrefix(p, "M "))
	assert.True(t, strings.HasSuffix(p, " Z"))
	assert.Equal(t, 2, strings.Count(p, "A "))
	assert.Contains(t, p, "A 90 90 0 0 1")
	assert.Contains(t, p, "A 60 60 0 0 0")

	assert.Equal(t, "", SegmentSVGPath(9))
}

func Test_Render(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantValue float64
		wantLit   int
		wantLabel string
	}{
		{name: "empty", value: 0, wantValue: 0, wantLit: 0, wantLabel: "0%"},
		{name: "quarter", value: 25, wantValue: 25, wantLit: 2, wantLabel: "25%"},
		{name: "below range", value: -20, wantValue: 0, wantLit: 0, wantLabel: "0%"},
		{name: "above range", value: 140, wantValue: 100, wantLit: 8, wantLabel: "100%"},
		{name: "rounded label", value: 62.6, wantValue: 62.6, wantLit: 4, wantLabel: "63%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.value)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantLit, got.Lit)
			assert.Equal(t, tt.wantLabel, got.Label)
			require.Len(t, got.Segments, SegmentCount)
			for i, s := range got.Segments {
				assert.Equal(t, i < tt.wantLit, s.Lit)
				if s.Lit {
					assert.Equal(t, SegmentColor(i), s.Fill)
				} else {
					assert.Equal(t, TrackColor, s.Fill)
				}
			}
		})
	}
}
