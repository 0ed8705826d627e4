package models

import (
	"fmt"
	"testing"

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/domain"
)

func (ms *ModelSuite) Test_AddMarker() {
	attrs := api.MarkerAttributes{
		Type:        api.DamageTypeDent,
		Severity:    api.SeverityModerate,
		Description: "rear door",
		PhotoURLs:   []string{"https://example.com/1.jpg"},
	}

	tests := []struct {
		name     string
		insp     api.VehicleInspection
		view     api.View
		x, y     float64
		wantOK   bool
		wantX    float64
		wantY    float64
		wantType api.DamageType
	}{
		{
			name:   "no body type",
			insp:   api.VehicleInspection{},
			view:   api.ViewTop,
			x:      50,
			y:      50,
			wantOK: false,
		},
		{
			name:   "unknown view",
			insp:   NewInspection(api.VehicleTypeSedan),
			view:   "underside",
			x:      50,
			y:      50,
			wantOK: false,
		},
		{
			name:     "inside",
			insp:     NewInspection(api.VehicleTypeSedan),
			view:     api.ViewFront,
			x:        12.5,
			y:        80,
			wantOK:   true,
			wantX:    12.5,
			wantY:    80,
			wantType: api.DamageTypeDent,
		},
		{
			name:     "clamped",
			insp:     NewInspection(api.VehicleTypeVan),
			view:     api.ViewRight,
			x:        -4,
			y:        130,
			wantOK:   true,
			wantX:    0,
			wantY:    100,
			wantType: api.DamageTypeDent,
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			got, marker, ok := AddMarker(tt.insp, tt.view, tt.x, tt.y, attrs)
			ms.Equal(tt.wantOK, ok)
			if !tt.wantOK {
				ms.Equal(tt.insp, got)
				return
			}
			ms.Len(got.Markers, len(tt.insp.Markers)+1)
			ms.Equal(marker, got.Markers[len(got.Markers)-1])
			ms.Equal(tt.view, marker.View)
			ms.Equal(tt.wantX, marker.X)
			ms.Equal(tt.wantY, marker.Y)
			ms.Equal(tt.wantType, marker.Type)
			ms.Equal(api.SeverityModerate, marker.Severity)
			ms.Equal("rear door", marker.Description)
			ms.Equal([]string{"https://example.com/1.jpg"}, marker.PhotoURLs)
			ms.Equal(byte(4), marker.ID.Version())
		})
	}
}

func (ms *ModelSuite) Test_AddMarkerDoesNotMutateInput() {
	insp := createInspectionFixture(api.ViewTop)
	before := insp.Clone()

	_, _, ok := AddMarker(insp, api.ViewLeft, 1, 2, defaultAttributes())
	ms.True(ok)
	ms.Equal(before, insp)
}

func (ms *ModelSuite) Test_AddMarkerDefaultsAndPhotoCap() {
	insp := NewInspection(api.VehicleTypeSedan)
	attrs := api.MarkerAttributes{PhotoURLs: []string{"1", "2", "3", "4"}}

	_, marker, ok := AddMarker(insp, api.ViewTop, 1, 1, attrs)
	ms.True(ok)
	ms.Equal(api.DamageTypeScratch, marker.Type)
	ms.Equal(api.SeverityLight, marker.Severity)
	ms.Len(marker.PhotoURLs, domain.MaxPhotosPerMarker)
}

func (ms *ModelSuite) Test_AddThenRemoveRoundTrip() {
	for _, view := range api.Views {
		for _, pos := range [][2]float64{{0, 0}, {100, 100}, {33.3, 66.6}, {50, 0}} {
			name := fmt.Sprintf("%s at %v", view, pos)
			ms.T().Run(name, func(t *testing.T) {
				start := createInspectionFixture(api.ViewTop, api.ViewRight)

				added, marker, ok := AddMarker(start, view, pos[0], pos[1], defaultAttributes())
				ms.True(ok)

				removed, ok := RemoveMarker(added, marker.ID)
				ms.True(ok)
				ms.Equal(start, removed)
			})
		}
	}
}

func (ms *ModelSuite) Test_UpdateMarkerKeepsIdentity() {
	insp := createInspectionFixture(api.ViewTop, api.ViewFront, api.ViewLeft)
	target := insp.Markers[1]

	attrs := api.MarkerAttributes{
		Type:        api.DamageTypeRust,
		Severity:    api.SeveritySevere,
		Description: "wheel arch",
		PhotoURLs:   []string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
	}
	got, ok := UpdateMarker(insp, target.ID, attrs)
	ms.True(ok)

	updated := got.Markers[1]
	ms.Equal(target.ID, updated.ID)
	ms.Equal(target.View, updated.View)
	ms.Equal(target.X, updated.X)
	ms.Equal(target.Y, updated.Y)
	ms.Equal(api.DamageTypeRust, updated.Type)
	ms.Equal(api.SeveritySevere, updated.Severity)
	ms.Equal("wheel arch", updated.Description)
	ms.Len(updated.PhotoURLs, 2)

	// neighbours untouched, original untouched
	ms.Equal(insp.Markers[0], got.Markers[0])
	ms.Equal(insp.Markers[2], got.Markers[2])
	ms.Equal(api.DamageTypeScratch, insp.Markers[1].Type)
}

func (ms *ModelSuite) Test_UpdateMarkerSeverityOnly() {
	insp := createInspectionFixture(api.ViewRight)
	m := insp.Markers[0]

	for _, sev := range api.Severities {
		attrs := m.Attributes()
		attrs.Severity = sev
		attrs.Description = "desc " + string(sev)
		got, ok := UpdateMarker(insp, m.ID, attrs)
		ms.True(ok)
		ms.Equal(m.ID, got.Markers[0].ID)
		ms.Equal(m.View, got.Markers[0].View)
		ms.Equal(m.X, got.Markers[0].X)
		ms.Equal(m.Y, got.Markers[0].Y)
		ms.Equal(sev, got.Markers[0].Severity)
	}
}

func (ms *ModelSuite) Test_UpdateAndRemoveMissingMarker() {
	insp := createInspectionFixture(api.ViewTop)
	missing := domain.GetUUID()

	got, ok := UpdateMarker(insp, missing, defaultAttributes())
	ms.False(ok)
	ms.Equal(insp, got)

	got, ok = RemoveMarker(insp, missing)
	ms.False(ok)
	ms.Equal(insp, got)
}

func (ms *ModelSuite) Test_MarkersByView() {
	insp := createInspectionFixture(api.ViewLeft, api.ViewTop, api.ViewLeft, api.ViewFront, api.ViewLeft)

	left := MarkersByView(insp.Markers, api.ViewLeft)
	ms.Len(left, 3)
	ms.Equal(insp.Markers[0].ID, left[0].ID)
	ms.Equal(insp.Markers[2].ID, left[1].ID)
	ms.Equal(insp.Markers[4].ID, left[2].ID)

	ms.Len(MarkersByView(insp.Markers, api.ViewRight), 0)
	ms.Len(MarkersByView(nil, api.ViewTop), 0)
}

func (ms *ModelSuite) Test_CountByView() {
	insp := createInspectionFixture(api.ViewLeft, api.ViewTop, api.ViewLeft)

	ms.Equal(map[api.View]int{
		api.ViewTop:   1,
		api.ViewFront: 0,
		api.ViewLeft:  2,
		api.ViewRight: 0,
	}, CountByView(insp.Markers))
}

func (ms *ModelSuite) Test_FirstViewWithMarkers() {
	tests := []struct {
		name     string
		views    []api.View
		wantView api.View
		wantOK   bool
	}{
		{name: "none", views: nil, wantView: "", wantOK: false},
		{name: "only left", views: []api.View{api.ViewLeft}, wantView: api.ViewLeft, wantOK: true},
		{name: "right then front", views: []api.View{api.ViewRight, api.ViewFront}, wantView: api.ViewFront, wantOK: true},
		{name: "top wins", views: []api.View{api.ViewRight, api.ViewTop}, wantView: api.ViewTop, wantOK: true},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			insp := createInspectionFixture(tt.views...)
			got, ok := FirstViewWithMarkers(insp.Markers)
			ms.Equal(tt.wantOK, ok)
			ms.Equal(tt.wantView, got)
		})
	}
}

func (ms *ModelSuite) Test_FindMarker() {
	insp := createInspectionFixture(api.ViewTop)
	insp.Markers[0].PhotoURLs = []string{"u"}

	m, ok := FindMarker(insp.Markers, insp.Markers[0].ID)
	ms.True(ok)
	m.PhotoURLs[0] = "changed"
	ms.Equal("u", insp.Markers[0].PhotoURLs[0])

	_, ok = FindMarker(insp.Markers, domain.GetUUID())
	ms.False(ok)
}
