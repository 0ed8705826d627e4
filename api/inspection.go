package api

import (
	"errors"

	"github.com/gofrs/uuid"
)

// VehicleType
//
// may be one of: sedan, pickup, suv, van. An empty value means no body type has been chosen yet.
//
// swagger:model
type VehicleType string

const (
	VehicleTypeSedan  = VehicleType("sedan")
	VehicleTypePickup = VehicleType("pickup")
	VehicleTypeSUV    = VehicleType("suv")
	VehicleTypeVan    = VehicleType("van")
)

// VehicleTypes lists the body types in the order they are offered
var VehicleTypes = []VehicleType{VehicleTypeSedan, VehicleTypePickup, VehicleTypeSUV, VehicleTypeVan}

func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleTypeSedan, VehicleTypePickup, VehicleTypeSUV, VehicleTypeVan:
		return true
	}
	return false
}

func (v VehicleType) Label() string {
	switch v {
	case VehicleTypeSedan:
		return "Sedan"
	case VehicleTypePickup:
		return "Pickup"
	case VehicleTypeSUV:
		return "SUV"
	case VehicleTypeVan:
		return "Van"
	}
	return ""
}

// View
//
// one of the four vantage points onto which damage markers are placed: top, front, left, right
//
// swagger:model
type View string

const (
	ViewTop   = View("top")
	ViewFront = View("front")
	ViewLeft  = View("left")
	ViewRight = View("right")
)

// Views lists the diagram views in their fixed display order
var Views = []View{ViewTop, ViewFront, ViewLeft, ViewRight}

func (v View) IsValid() bool {
	switch v {
	case ViewTop, ViewFront, ViewLeft, ViewRight:
		return true
	}
	return false
}

func (v View) Label() string {
	switch v {
	case ViewTop:
		return "Top"
	case ViewFront:
		return "Front"
	case ViewLeft:
		return "Left side"
	case ViewRight:
		return "Right side"
	}
	return ""
}

// DamageType
//
// may be one of: scratch, dent, paint, crack, broken, missing, rust, other
//
// swagger:model
type DamageType string

const (
	DamageTypeScratch = DamageType("scratch")
	DamageTypeDent    = DamageType("dent")
	DamageTypePaint   = DamageType("paint")
	DamageTypeCrack   = DamageType("crack")
	DamageTypeBroken  = DamageType("broken")
	DamageTypeMissing = DamageType("missing")
	DamageTypeRust    = DamageType("rust")
	DamageTypeOther   = DamageType("other")
)

var DamageTypes = []DamageType{
	DamageTypeScratch,
	DamageTypeDent,
	DamageTypePaint,
	DamageTypeCrack,
	DamageTypeBroken,
	DamageTypeMissing,
	DamageTypeRust,
	DamageTypeOther,
}

func (d DamageType) IsValid() bool {
	switch d {
	case DamageTypeScratch, DamageTypeDent, DamageTypePaint, DamageTypeCrack,
		DamageTypeBroken, DamageTypeMissing, DamageTypeRust, DamageTypeOther:
		return true
	}
	return false
}

func (d DamageType) Label() string {
	switch d {
	case DamageTypeScratch:
		return "Scratch"
	case DamageTypeDent:
		return "Dent"
	case DamageTypePaint:
		return "Paint damage"
	case DamageTypeCrack:
		return "Crack"
	case DamageTypeBroken:
		return "Broken"
	case DamageTypeMissing:
		return "Missing part"
	case DamageTypeRust:
		return "Rust"
	case DamageTypeOther:
		return "Other"
	}
	return ""
}

// Color is the pin fill used on the diagram for this damage type
func (d DamageType) Color() string {
	switch d {
	case DamageTypeScratch:
		return "#eab308"
	case DamageTypeDent:
		return "#f97316"
	case DamageTypePaint:
		return "#a855f7"
	case DamageTypeCrack:
		return "#ef4444"
	case DamageTypeBroken:
		return "#b91c1c"
	case DamageTypeMissing:
		return "#6b7280"
	case DamageTypeRust:
		return "#92400e"
	case DamageTypeOther:
		return "#3b82f6"
	}
	return "#6b7280"
}

// Severity
//
// may be one of: light, moderate, severe
//
// swagger:model
type Severity string

const (
	SeverityLight    = Severity("light")
	SeverityModerate = Severity("moderate")
	SeveritySevere   = Severity("severe")
)

var Severities = []Severity{SeverityLight, SeverityModerate, SeveritySevere}

func (s Severity) IsValid() bool {
	switch s {
	case SeverityLight, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

func (s Severity) Label() string {
	switch s {
	case SeverityLight:
		return "Light"
	case SeverityModerate:
		return "Moderate"
	case SeveritySevere:
		return "Severe"
	}
	return ""
}

// Color is the badge color for the severity
func (s Severity) Color() string {
	switch s {
	case SeverityLight:
		return "#22c55e"
	case SeverityModerate:
		return "#f59e0b"
	case SeveritySevere:
		return "#dc2626"
	}
	return "#6b7280"
}

// swagger:model
type DamageMarker struct {
	// ID of the marker, assigned once on creation
	//
	// swagger:strfmt uuid4
	ID uuid.UUID `json:"id"`

	// view the marker was placed on; never changes after creation
	View View `json:"view" validate:"view"`

	// horizontal position as a percentage of the view canvas width
	X float64 `json:"x" validate:"gte=0,lte=100"`

	// vertical position as a percentage of the view canvas height
	Y float64 `json:"y" validate:"gte=0,lte=100"`

	Type DamageType `json:"damage_type" validate:"damageType"`

	Severity Severity `json:"severity" validate:"severity"`

	Description string `json:"description,omitempty"`

	// up to three public photo URLs
	PhotoURLs []string `json:"photo_urls" validate:"max=3,dive,required"`
}

// Attributes returns the descriptive fields of the marker
func (d DamageMarker) Attributes() MarkerAttributes {
	return MarkerAttributes{
		Type:        d.Type,
		Severity:    d.Severity,
		Description: d.Description,
		PhotoURLs:   append([]string{}, d.PhotoURLs...),
	}
}

// MarkerAttributes holds the descriptive fields of a DamageMarker, which are the only ones an edit may change
type MarkerAttributes struct {
	Type        DamageType `json:"damage_type"`
	Severity    Severity   `json:"severity"`
	Description string     `json:"description,omitempty"`
	PhotoURLs   []string   `json:"photo_urls"`
}

// swagger:model
type InventoryCheckItem struct {
	// stable key of the item in the checklist template
	ID string `json:"id" validate:"required"`

	Label string `json:"label" validate:"required"`

	Checked bool `json:"checked"`

	// free-text notes, only kept while the item is checked
	Notes string `json:"notes,omitempty"`
}

// swagger:model
type VehicleInspection struct {
	VehicleType VehicleType `json:"vehicle_type" validate:"vehicleType"`

	// damage markers in insertion order
	Markers []DamageMarker `json:"markers" validate:"dive"`

	Checklist []InventoryCheckItem `json:"checklist" validate:"dive"`
}

// Clone returns a copy of the inspection that shares no slices with the original
func (v VehicleInspection) Clone() VehicleInspection {
	c := VehicleInspection{
		VehicleType: v.VehicleType,
		Markers:     make([]DamageMarker, len(v.Markers)),
		Checklist:   make([]InventoryCheckItem, len(v.Checklist)),
	}
	for i, m := range v.Markers {
		m.PhotoURLs = append([]string{}, m.PhotoURLs...)
		c.Markers[i] = m
	}
	copy(c.Checklist, v.Checklist)
	return c
}

// PhotoItem is a photo attached to a marker while it is being edited. Only URL is persisted into the
// marker; Path is kept so the stored object can be deleted.
type PhotoItem struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// Notice is a transient user-facing message, such as "photo limit reached"
type Notice struct {
	Key     ErrorKey `json:"key"`
	Message string   `json:"message"`

	// name of the file the notice refers to, if any
	File string `json:"file,omitempty"`
}

// NewNotice builds a Notice from an error. AppErrors keep their key; anything else is reported as unknown.
func NewNotice(err error, file string) Notice {
	key := ErrorUnknown
	var appErr *AppError
	if errors.As(err, &appErr) {
		key = appErr.Key
	}
	return Notice{Key: key, Message: key.Message(), File: file}
}
