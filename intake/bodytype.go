package intake

import (
	"github.com/silinternational/intake-api/api"
)

// BodyTypeOption is one choice of the body-type selector
type BodyTypeOption struct {
	Type     api.VehicleType `json:"type"`
	Label    string          `json:"label"`
	Selected bool            `json:"selected"`
}

// bodyTypeOptions lists every body type, marking the selected one. At most one option is selected.
func bodyTypeOptions(selected api.VehicleType) []BodyTypeOption {
	options := make([]BodyTypeOption, len(api.VehicleTypes))
	for i, vt := range api.VehicleTypes {
		options[i] = BodyTypeOption{Type: vt, Label: vt.Label(), Selected: vt == selected}
	}
	return options
}

// ViewTab is one entry of the view switcher, with the number of markers on that view
type ViewTab struct {
	View   api.View `json:"view"`
	Label  string   `json:"label"`
	Count  int      `json:"count"`
	Active bool     `json:"active"`
}
