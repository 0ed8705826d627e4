package models

import (
	"github.com/gofrs/uuid"

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/domain"
)

// AddMarker appends a new marker at (x, y) on the view. Coordinates are clamped to [0,100] and a fresh id
// is assigned. Nothing is added, and false is returned, if no body type has been selected or the view is
// unknown.
func AddMarker(insp api.VehicleInspection, view api.View, x, y float64, attrs api.MarkerAttributes) (
	api.VehicleInspection, api.DamageMarker, bool,
) {
	if insp.VehicleType == "" || !view.IsValid() {
		return insp, api.DamageMarker{}, false
	}

	marker := api.DamageMarker{
		ID:   domain.GetUUID(),
		View: view,
		X:    domain.ClampPercent(x),
		Y:    domain.ClampPercent(y),
	}
	applyAttributes(&marker, attrs)

	next := insp.Clone()
	next.Markers = append(next.Markers, marker)
	return next, marker, true
}

// UpdateMarker replaces the descriptive fields of the marker with the given id. The id, view and position
// never change. False is returned if there is no such marker.
func UpdateMarker(insp api.VehicleInspection, id uuid.UUID, attrs api.MarkerAttributes) (api.VehicleInspection, bool) {
	i := markerIndex(insp.Markers, id)
	if i < 0 {
		return insp, false
	}

	next := insp.Clone()
	applyAttributes(&next.Markers[i], attrs)
	return next, true
}

// RemoveMarker drops the marker with the given id. False is returned if there is no such marker.
func RemoveMarker(insp api.VehicleInspection, id uuid.UUID) (api.VehicleInspection, bool) {
	if markerIndex(insp.Markers, id) < 0 {
		return insp, false
	}

	next := insp.Clone()
	markers := make([]api.DamageMarker, 0, len(next.Markers))
	for _, m := range next.Markers {
		if m.ID != id {
			markers = append(markers, m)
		}
	}
	next.Markers = markers
	return next, true
}

// FindMarker returns a copy of the marker with the given id
func FindMarker(markers []api.DamageMarker, id uuid.UUID) (api.DamageMarker, bool) {
	i := markerIndex(markers, id)
	if i < 0 {
		return api.DamageMarker{}, false
	}
	m := markers[i]
	m.PhotoURLs = append([]string{}, m.PhotoURLs...)
	return m, true
}

// MarkersByView returns the markers placed on the view, keeping their insertion order
func MarkersByView(markers []api.DamageMarker, view api.View) []api.DamageMarker {
	inView := make([]api.DamageMarker, 0, len(markers))
	for _, m := range markers {
		if m.View == view {
			inView = append(inView, m)
		}
	}
	return inView
}

// CountByView returns how many markers each view holds. Every view is present in the result.
func CountByView(markers []api.DamageMarker) map[api.View]int {
	counts := make(map[api.View]int, len(api.Views))
	for _, v := range api.Views {
		counts[v] = 0
	}
	for _, m := range markers {
		counts[m.View]++
	}
	return counts
}

// FirstViewWithMarkers returns the first view, in display order, that has at least one marker
func FirstViewWithMarkers(markers []api.DamageMarker) (api.View, bool) {
	counts := CountByView(markers)
	for _, v := range api.Views {
		if counts[v] > 0 {
			return v, true
		}
	}
	return "", false
}

func markerIndex(markers []api.DamageMarker, id uuid.UUID) int {
	for i := range markers {
		if markers[i].ID == id {
			return i
		}
	}
	return -1
}

func applyAttributes(m *api.DamageMarker, attrs api.MarkerAttributes) {
	m.Type = attrs.Type
	if !m.Type.IsValid() {
		m.Type = api.DamageTypeScratch
	}
	m.Severity = attrs.Severity
	if !m.Severity.IsValid() {
		m.Severity = api.SeverityLight
	}
	m.Description = attrs.Description

	urls := attrs.PhotoURLs
	if len(urls) > domain.MaxPhotosPerMarker {
		urls = urls[:domain.MaxPhotosPerMarker]
	}
	m.PhotoURLs = append([]string{}, urls...)
}
