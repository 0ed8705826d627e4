package listeners

import (
	"fmt"
	"strings"

	"github.com/gobuffalo/events"

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/domain"
	"github.com/silinternational/intake-api/log"
	"github.com/silinternational/intake-api/models"
)

type apiListener struct {
	name     string
	listener func(events.Event)
}

// Register new listener functions here. Remember, though, that these groupings just
// describe what we want. They don't make it happen this way. The listeners
// themselves still need to verify the event kind
var apiListeners = map[string][]apiListener{
	domain.EventInspectionChanged: {
		{
			name:     "inspection-changed",
			listener: inspectionChanged,
		},
	},
	domain.EventPhotoUploaded: {
		{
			name:     "photo-uploaded",
			listener: photoUploaded,
		},
	},
	domain.EventPhotoDeleteFailed: {
		{
			name:     "photo-delete-failed",
			listener: photoDeleteFailed,
		},
	},
	domain.EventPhotosAbandoned: {
		{
			name:     "photos-abandoned",
			listener: photosAbandoned,
		},
	},
}

// RegisterListeners registers all the listeners to be used by the app
func RegisterListeners() {
	for _, listeners := range apiListeners {
		for _, l := range listeners {
			_, err := events.NamedListen(l.name, l.listener)
			if err != nil {
				log.Errorf("Failed registering listener: %s, err: %s", l.name, err.Error())
			}
		}
	}
}

func inspectionChanged(e events.Event) {
	if e.Kind != domain.EventInspectionChanged {
		return
	}

	defer panicRecover(e.Kind)

	insp, ok := e.Payload[domain.EventPayloadInspection].(api.VehicleInspection)
	if !ok {
		log.Errorf("%s event without an inspection in its payload", e.Kind)
		return
	}

	checked, total := models.ChecklistSummary(insp.Checklist)
	log.WithFields(map[string]any{
		"event":        e.Kind,
		"vehicle_type": insp.VehicleType,
		"markers":      len(insp.Markers),
		"checked":      fmt.Sprintf("%d/%d", checked, total),
	}).Debug(e.Message)
}

func photoUploaded(e events.Event) {
	if e.Kind != domain.EventPhotoUploaded {
		return
	}

	defer panicRecover(e.Kind)

	log.WithFields(map[string]any{
		"event":     e.Kind,
		"group_key": getString(e.Payload, domain.EventPayloadGroupKey),
		"path":      getString(e.Payload, domain.EventPayloadPath),
	}).Info(e.Message)
}

func photoDeleteFailed(e events.Event) {
	if e.Kind != domain.EventPhotoDeleteFailed {
		return
	}

	defer panicRecover(e.Kind)

	log.WithFields(map[string]any{
		"event": e.Kind,
		"path":  getString(e.Payload, domain.EventPayloadPath),
		"error": getString(e.Payload, domain.EventPayloadError),
	}).Warn("photo was removed from the marker but remains in storage")
}

// photosAbandoned leaves a trail of photos that were uploaded but never attached to a marker, so they can be
// cleaned out of storage
func photosAbandoned(e events.Event) {
	if e.Kind != domain.EventPhotosAbandoned {
		return
	}

	defer panicRecover(e.Kind)

	paths, _ := e.Payload[domain.EventPayloadPaths].([]string)
	log.WithFields(map[string]any{
		"event":     e.Kind,
		"group_key": getString(e.Payload, domain.EventPayloadGroupKey),
		"paths":     strings.Join(paths, ","),
	}).Warnf("%d orphaned photo(s) left in storage", len(paths))
}

func getString(p events.Payload, key string) string {
	s, _ := p[key].(string)
	return s
}

func panicRecover(name string) {
	if err := recover(); err != nil {
		log.Errorf("panic occurred in %s: %s", name, err)
	}
}
