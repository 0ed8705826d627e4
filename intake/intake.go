// Package intake ties the inspection pieces together. An Intake owns the inspection value of one vehicle
// intake form, routes taps on the diagram to the marker editor, and hands every change to the parent form
// as a complete inspection.
package intake

import (
	"context"
	"errors"
	"strings"

	"github.com/gobuffalo/events"
	"github.com/gofrs/uuid"

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/diagram"
	"github.com/silinternational/intake-api/domain"
	"github.com/silinternational/intake-api/editor"
	"github.com/silinternational/intake-api/gauge"
	"github.com/silinternational/intake-api/log"
	"github.com/silinternational/intake-api/models"
	"github.com/silinternational/intake-api/photos"
)

// Props is what the parent form passes in. All callbacks are required.
type Props struct {
	// Value is the current inspection, nil until a body type has been chosen
	Value    *api.VehicleInspection
	OnChange func(api.VehicleInspection)

	FuelLevel         int
	OnFuelLevelChange func(int)

	// EntryMileage is free text restricted to digits
	EntryMileage         string
	OnEntryMileageChange func(string)

	BodyType         api.VehicleType
	OnBodyTypeChange func(api.VehicleType)

	ReadOnly bool
}

func (p Props) validate() error {
	var missing []string
	if p.OnChange == nil {
		missing = append(missing, "OnChange")
	}
	if p.OnFuelLevelChange == nil {
		missing = append(missing, "OnFuelLevelChange")
	}
	if p.OnEntryMileageChange == nil {
		missing = append(missing, "OnEntryMileageChange")
	}
	if p.OnBodyTypeChange == nil {
		missing = append(missing, "OnBodyTypeChange")
	}
	if len(missing) > 0 {
		return api.NewAppError(
			errors.New("missing required callbacks: "+strings.Join(missing, ", ")),
			api.ErrorInvalidRequestBody,
			api.CategoryInternal,
		)
	}
	return nil
}

// Deps are the photo collaborators used by the marker editor
type Deps struct {
	Store      photos.Store
	Compressor photos.Compressor

	// GroupKey groups the photos of this intake in storage
	GroupKey string
}

// Intake is the inspection orchestrator. It is not safe for concurrent use.
type Intake struct {
	props   Props
	value   *api.VehicleInspection
	fuel    int
	mileage string

	diagram *diagram.Diagram
	editor  *editor.Editor

	autoSelected bool
}

// New creates an Intake from the parent's props
func New(props Props, deps Deps) (*Intake, error) {
	if err := props.validate(); err != nil {
		return nil, err
	}
	if deps.Store == nil {
		return nil, api.NewAppError(errors.New("a photo store is required"), api.ErrorUnknown, api.CategoryInternal)
	}

	in := &Intake{
		editor: editor.New(deps.Store, deps.Compressor, deps.GroupKey),
	}
	in.diagram = diagram.New("", props.ReadOnly)
	in.adopt(props)
	return in, nil
}

// SetProps applies a re-render from the parent. The parent's value replaces the current one.
func (in *Intake) SetProps(props Props) error {
	if err := props.validate(); err != nil {
		return err
	}
	in.adopt(props)
	return nil
}

func (in *Intake) adopt(props Props) {
	in.props = props
	in.value = nil
	if props.Value != nil {
		v := props.Value.Clone()
		in.value = &v
	}
	in.fuel = int(domain.ClampPercent(float64(props.FuelLevel)))
	in.mileage = digitsOnly(props.EntryMileage)

	in.diagram.SetReadOnly(props.ReadOnly)
	in.diagram.SetBodyType(in.BodyType())
	in.autoSelectView()
}

// autoSelectView shows the first view with damage when a read-only inspection is opened. It happens once.
func (in *Intake) autoSelectView() {
	if !in.props.ReadOnly || in.autoSelected || in.value == nil {
		return
	}
	if v, ok := models.FirstViewWithMarkers(in.value.Markers); ok {
		in.diagram.SelectView(v)
		in.autoSelected = true
	}
}

// Value returns a copy of the current inspection and whether one exists
func (in *Intake) Value() (api.VehicleInspection, bool) {
	if in.value == nil {
		return api.VehicleInspection{}, false
	}
	return in.value.Clone(), true
}

func (in *Intake) ReadOnly() bool {
	return in.props.ReadOnly
}

// BodyType is the selected body type, from the inspection if it has one, otherwise from the props
func (in *Intake) BodyType() api.VehicleType {
	if in.value != nil && in.value.VehicleType.IsValid() {
		return in.value.VehicleType
	}
	if in.props.BodyType.IsValid() {
		return in.props.BodyType
	}
	return ""
}

// base is the value edits apply to. Without a value, a blank inspection is created for the body type the
// parent passed in; without any body type there is nothing to edit.
func (in *Intake) base() (api.VehicleInspection, bool) {
	vt := in.BodyType()
	if !vt.IsValid() {
		return api.VehicleInspection{}, false
	}
	if in.value == nil {
		return models.NewInspection(vt), true
	}
	next := in.value.Clone()
	next.VehicleType = vt
	return next, true
}

func (in *Intake) BodyTypeOptions() []BodyTypeOption {
	return bodyTypeOptions(in.BodyType())
}

// SelectBodyType sets the vehicle type. A blank inspection is created only if there is no value yet;
// otherwise the type is changed and the markers and checklist are kept.
func (in *Intake) SelectBodyType(vt api.VehicleType) {
	if in.props.ReadOnly || !vt.IsValid() {
		return
	}

	var next api.VehicleInspection
	if in.value == nil {
		next = models.NewInspection(vt)
	} else {
		next = in.value.Clone()
		next.VehicleType = vt
	}

	if !in.emit(next) {
		return
	}
	in.diagram.SetBodyType(vt)
	in.props.OnBodyTypeChange(vt)
}

func (in *Intake) Diagram() *diagram.Diagram {
	return in.diagram
}

// Editor exposes the marker editor so its fields can be changed while it is open
func (in *Intake) Editor() *editor.Editor {
	return in.editor
}

func (in *Intake) SelectView(v api.View) {
	in.diagram.SelectView(v)
}

// ViewTabs lists the views in display order with their marker counts
func (in *Intake) ViewTabs() []ViewTab {
	counts := models.CountByView(in.markers())
	tabs := make([]ViewTab, len(api.Views))
	for i, v := range api.Views {
		tabs[i] = ViewTab{View: v, Label: v.Label(), Count: counts[v], Active: v == in.diagram.ActiveView()}
	}
	return tabs
}

// Pins are the numbered markers of the active view
func (in *Intake) Pins() []diagram.Pin {
	return in.diagram.Pins(in.markers())
}

func (in *Intake) markers() []api.DamageMarker {
	if in.value == nil {
		return nil
	}
	return in.value.Markers
}

// HandleTap routes a tap on the diagram. A canvas tap opens the editor for a new marker, as long as a body
// type is selected; a pin tap opens the editor on that marker.
func (in *Intake) HandleTap(tap diagram.Tap) diagram.TapResult {
	if in.props.ReadOnly {
		return nil
	}

	result := in.diagram.Dispatch(tap)
	switch r := result.(type) {
	case diagram.PendingAdd:
		if !in.BodyType().IsValid() {
			return nil
		}
		in.editor.Open(editor.Creating{View: r.View, X: r.X, Y: r.Y}, nil)
	case diagram.Selection:
		m, ok := models.FindMarker(in.markers(), r.MarkerID)
		if !ok {
			return nil
		}
		in.editor.Open(editor.Editing{MarkerID: m.ID}, &m)
	}
	return result
}

// SaveMarker applies the open editor: a new marker for a pending position, or new attributes for an
// existing one. It returns false if nothing was saved.
func (in *Intake) SaveMarker() bool {
	if in.props.ReadOnly || !in.editor.IsOpen() {
		return false
	}

	intent, attrs, _ := in.editor.Save()
	base, ok := in.base()
	if !ok {
		return false
	}

	var next api.VehicleInspection
	switch i := intent.(type) {
	case editor.Creating:
		next, _, ok = models.AddMarker(base, i.View, i.X, i.Y, attrs)
	case editor.Editing:
		next, ok = models.UpdateMarker(base, i.MarkerID, attrs)
	}
	if !ok {
		return false
	}

	return in.emit(next)
}

// CancelMarker closes the editor without saving. Photos uploaded while it was open are returned.
func (in *Intake) CancelMarker() []api.PhotoItem {
	return in.editor.Cancel()
}

// DeleteMarker removes a marker, closing the editor if it was editing that marker
func (in *Intake) DeleteMarker(id uuid.UUID) bool {
	if in.props.ReadOnly || in.value == nil {
		return false
	}

	next, ok := models.RemoveMarker(*in.value, id)
	if !ok {
		return false
	}
	if editing, isEditing := in.editor.Intent().(editor.Editing); isEditing && editing.MarkerID == id {
		in.editor.Cancel()
	}

	return in.emit(next)
}

// AddPhotos uploads photos into the open editor
func (in *Intake) AddPhotos(ctx context.Context, files []photos.File) photos.AddResult {
	if in.props.ReadOnly {
		return photos.AddResult{Added: []api.PhotoItem{}, Notices: []api.Notice{}}
	}
	return in.editor.AddPhotos(ctx, files)
}

func (in *Intake) RemovePhoto(ctx context.Context, index int) bool {
	if in.props.ReadOnly {
		return false
	}
	return in.editor.RemovePhoto(ctx, index)
}

// ToggleChecklistItem flips an item. It does nothing until a body type is selected.
func (in *Intake) ToggleChecklistItem(id string) bool {
	base, ok := in.checklistBase()
	if in.props.ReadOnly || !ok {
		return false
	}
	next, ok := models.ToggleChecklistItem(base, id)
	if !ok {
		return false
	}
	return in.emit(next)
}

func (in *Intake) SetChecklistNotes(id, notes string) bool {
	base, ok := in.checklistBase()
	if in.props.ReadOnly || !ok {
		return false
	}
	next, ok := models.SetChecklistNotes(base, id, notes)
	if !ok {
		return false
	}
	return in.emit(next)
}

// checklistBase is the value checklist edits apply to, with the template checklist filled in if needed
func (in *Intake) checklistBase() (api.VehicleInspection, bool) {
	base, ok := in.base()
	if !ok {
		return base, false
	}
	return models.EnsureChecklist(base), true
}

// Checklist returns the checklist as shown, which is the template while there is no value yet
func (in *Intake) Checklist() []api.InventoryCheckItem {
	if in.value != nil && len(in.value.Checklist) > 0 {
		return in.value.Clone().Checklist
	}
	return models.DefaultChecklist()
}

func (in *Intake) FuelLevel() int {
	return in.fuel
}

// SetFuelLevel clamps the level to [0,100] before passing it on
func (in *Intake) SetFuelLevel(level int) {
	if in.props.ReadOnly {
		return
	}
	in.fuel = int(domain.ClampPercent(float64(level)))
	in.props.OnFuelLevelChange(in.fuel)
}

// Gauge renders the fuel gauge for the current level
func (in *Intake) Gauge() gauge.Level {
	return gauge.Render(float64(in.fuel))
}

func (in *Intake) EntryMileage() string {
	return in.mileage
}

// SetEntryMileage keeps only the digits of the input
func (in *Intake) SetEntryMileage(s string) {
	if in.props.ReadOnly {
		return
	}
	in.mileage = digitsOnly(s)
	in.props.OnEntryMileageChange(in.mileage)
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// emit adopts next as the current value and hands it to the parent. A value that fails validation is
// logged and dropped, and the current value stays as it was.
func (in *Intake) emit(next api.VehicleInspection) bool {
	if err := models.ValidateInspection(next); err != nil {
		log.WithFields(map[string]any{"vehicle_type": next.VehicleType}).Errorf("inspection change rejected: %s", err)
		return false
	}

	in.value = &next
	in.props.OnChange(next.Clone())

	if err := events.Emit(events.Event{
		Kind:    domain.EventInspectionChanged,
		Message: "inspection changed",
		Payload: events.Payload{domain.EventPayloadInspection: next.Clone()},
	}); err != nil {
		log.Errorf("error emitting event %s ... %v", domain.EventInspectionChanged, err)
	}
	return true
}
