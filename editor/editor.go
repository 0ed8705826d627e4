// Package editor holds the state of the marker editor dialog, used both to describe a new damage marker
// and to change an existing one.
package editor

import (
	"context"

	"github.com/gobuffalo/events"
	"github.com/gofrs/uuid"

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/domain"
	"github.com/silinternational/intake-api/log"
	"github.com/silinternational/intake-api/photos"
)

// Intent says what saving the editor will do: Creating or Editing
type Intent interface {
	isIntent()
}

// Creating places a new marker at a position on a view
type Creating struct {
	View api.View
	X, Y float64
}

// Editing changes the descriptive fields of an existing marker
type Editing struct {
	MarkerID uuid.UUID
}

func (Creating) isIntent() {}
func (Editing) isIntent()  {}

// Editor is the marker editor. Each Open starts a new session with fully reset fields, so nothing carries
// over from the previous marker. It is not safe for concurrent use.
type Editor struct {
	store      photos.Store
	compressor photos.Compressor
	groupKey   string

	open        bool
	session     int
	intent      Intent
	damageType  api.DamageType
	severity    api.Severity
	description string
	photos      *photos.Manager
}

// New creates a closed editor. Photos are stored under groupKey.
func New(store photos.Store, compressor photos.Compressor, groupKey string) *Editor {
	return &Editor{store: store, compressor: compressor, groupKey: groupKey}
}

// Open starts a session. With a nil initial marker the fields get their defaults; otherwise they are
// copied from the marker.
func (e *Editor) Open(intent Intent, initial *api.DamageMarker) {
	e.session++
	e.open = true
	e.intent = intent
	e.damageType = api.DamageTypeScratch
	e.severity = api.SeverityLight
	e.description = ""

	var seed []string
	if initial != nil {
		e.damageType = initial.Type
		e.severity = initial.Severity
		e.description = initial.Description
		seed = initial.PhotoURLs
	}
	e.photos = photos.NewManager(e.store, e.compressor, e.groupKey, seed)
}

func (e *Editor) IsOpen() bool {
	return e.open
}

// Session increments on every Open
func (e *Editor) Session() int {
	return e.session
}

// Intent returns the intent of the open session, or nil
func (e *Editor) Intent() Intent {
	if !e.open {
		return nil
	}
	return e.intent
}

func (e *Editor) Type() api.DamageType {
	return e.damageType
}

func (e *Editor) Severity() api.Severity {
	return e.severity
}

func (e *Editor) Description() string {
	return e.description
}

// SetType ignores unknown damage types
func (e *Editor) SetType(t api.DamageType) {
	if !e.open || !t.IsValid() {
		return
	}
	e.damageType = t
}

// SetSeverity ignores unknown severities
func (e *Editor) SetSeverity(s api.Severity) {
	if !e.open || !s.IsValid() {
		return
	}
	e.severity = s
}

func (e *Editor) SetDescription(d string) {
	if !e.open {
		return
	}
	e.description = d
}

// Photos is the photo manager of the current session, nil if the editor has never been opened
func (e *Editor) Photos() *photos.Manager {
	return e.photos
}

// AddPhotos uploads files into the current session
func (e *Editor) AddPhotos(ctx context.Context, files []photos.File) photos.AddResult {
	if !e.open {
		return photos.AddResult{Added: []api.PhotoItem{}, Notices: []api.Notice{}}
	}
	return e.photos.AddFiles(ctx, files)
}

func (e *Editor) RemovePhoto(ctx context.Context, index int) bool {
	if !e.open {
		return false
	}
	return e.photos.Remove(ctx, index)
}

// Attributes returns the descriptive fields as currently edited
func (e *Editor) Attributes() api.MarkerAttributes {
	attrs := api.MarkerAttributes{
		Type:        e.damageType,
		Severity:    e.severity,
		Description: e.description,
		PhotoURLs:   []string{},
	}
	if e.photos != nil {
		attrs.PhotoURLs = e.photos.URLs()
	}
	return attrs
}

// Save closes the editor and returns what to do with the edited fields. It reports false if the editor
// was not open.
func (e *Editor) Save() (Intent, api.MarkerAttributes, bool) {
	if !e.open {
		return nil, api.MarkerAttributes{}, false
	}
	intent, attrs := e.intent, e.Attributes()
	e.close()
	return intent, attrs, true
}

// Cancel closes the editor and discards the edits. Photos uploaded during the session stay in storage; they
// are returned and announced so they can be cleaned up elsewhere.
func (e *Editor) Cancel() []api.PhotoItem {
	if !e.open {
		return []api.PhotoItem{}
	}
	orphans := e.photos.Uploaded()
	e.close()

	if len(orphans) == 0 {
		return orphans
	}

	paths := make([]string, len(orphans))
	for i, o := range orphans {
		paths[i] = o.Path
	}
	if err := events.Emit(events.Event{
		Kind:    domain.EventPhotosAbandoned,
		Message: "photos abandoned by cancelled marker edit",
		Payload: events.Payload{
			domain.EventPayloadGroupKey: e.groupKey,
			domain.EventPayloadPaths:    paths,
		},
	}); err != nil {
		log.Errorf("error emitting event %s ... %v", domain.EventPhotosAbandoned, err)
	}
	return orphans
}

func (e *Editor) close() {
	e.open = false
	e.intent = nil
}
