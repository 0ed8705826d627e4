// Package diagram models the vehicle silhouette canvas: which view is showing, where the numbered damage
// pins go, and what a tap on the canvas means.
package diagram

import (
	"fmt"

	"github.com/gofrs/uuid"

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/models"
)

// ResolveBodyType picks the silhouette set for a body type. SUVs and vans reuse the sedan drawings.
func ResolveBodyType(vt api.VehicleType) api.VehicleType {
	switch vt {
	case api.VehicleTypePickup:
		return api.VehicleTypePickup
	case api.VehicleTypeSedan, api.VehicleTypeSUV, api.VehicleTypeVan:
		return api.VehicleTypeSedan
	}
	return api.VehicleTypeSedan
}

// SilhouetteAsset returns the path of the silhouette drawing within the public assets
func SilhouetteAsset(vt api.VehicleType, view api.View) string {
	if !view.IsValid() {
		view = api.ViewTop
	}
	return fmt.Sprintf("silhouettes/%s/%s.svg", ResolveBodyType(vt), view)
}

// Pin is a marker as drawn on the active view
type Pin struct {
	Number   int            `json:"number"`
	MarkerID uuid.UUID      `json:"marker_id"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Type     api.DamageType `json:"damage_type"`
	Severity api.Severity   `json:"severity"`
	Color    string         `json:"color"`
}

// TapTarget says what a tap landed on
type TapTarget int

const (
	TargetCanvas TapTarget = iota
	TargetPin
)

// Tap is a single tap on the diagram. For pin taps MarkerID identifies the pin; for canvas taps Event and
// Rect are used to find the position.
type Tap struct {
	Target   TapTarget
	MarkerID uuid.UUID
	Event    PointerEvent
	Rect     Rect
}

// TapResult is the outcome of a tap: PendingAdd, Selection, or nil when nothing happens
type TapResult interface {
	isTapResult()
}

// PendingAdd is a position on a view that is waiting for the marker editor to confirm it
type PendingAdd struct {
	View api.View
	X, Y float64
}

// Selection asks to edit an existing marker
type Selection struct {
	MarkerID uuid.UUID
}

func (PendingAdd) isTapResult() {}
func (Selection) isTapResult()  {}

// Diagram is the view selector and tap surface. It is not safe for concurrent use.
type Diagram struct {
	bodyType api.VehicleType
	active   api.View
	readOnly bool
}

func New(bodyType api.VehicleType, readOnly bool) *Diagram {
	return &Diagram{bodyType: bodyType, active: api.ViewTop, readOnly: readOnly}
}

func (d *Diagram) ActiveView() api.View {
	return d.active
}

func (d *Diagram) ReadOnly() bool {
	return d.readOnly
}

func (d *Diagram) SetReadOnly(readOnly bool) {
	d.readOnly = readOnly
}

func (d *Diagram) SetBodyType(vt api.VehicleType) {
	d.bodyType = vt
}

// SelectView switches the active view. Any view can follow any other; unknown views are ignored.
func (d *Diagram) SelectView(v api.View) {
	if !v.IsValid() {
		return
	}
	d.active = v
}

// Silhouette is the asset drawn for the current body type and view
func (d *Diagram) Silhouette() string {
	return SilhouetteAsset(d.bodyType, d.active)
}

// Pins numbers the markers of the active view 1..N in insertion order
func (d *Diagram) Pins(markers []api.DamageMarker) []Pin {
	inView := models.MarkersByView(markers, d.active)
	pins := make([]Pin, len(inView))
	for i, m := range inView {
		pins[i] = Pin{
			Number:   i + 1,
			MarkerID: m.ID,
			X:        m.X,
			Y:        m.Y,
			Type:     m.Type,
			Severity: m.Severity,
			Color:    m.Type.Color(),
		}
	}
	return pins
}

// Dispatch resolves a tap. A pin tap is consumed as a selection and never also reaches the canvas, so a
// single tap cannot both select a marker and start a new one. In read-only mode every tap is ignored.
func (d *Diagram) Dispatch(tap Tap) TapResult {
	if d.readOnly {
		return nil
	}

	switch tap.Target {
	case TargetPin:
		return Selection{MarkerID: tap.MarkerID}
	case TargetCanvas:
		x, y, ok := MapPointer(tap.Event, tap.Rect)
		if !ok {
			return nil
		}
		return PendingAdd{View: d.active, X: x, Y: y}
	}
	return nil
}
