// Package models holds the in-memory inspection stores: damage markers grouped by view and the inventory
// checklist. Every operation takes an inspection value and returns a new one; inputs are never mutated.
package models

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/silinternational/intake-api/api"
)

func init() {
	// initialize model validation library
	mValidate = validator.New()

	// register custom validators for custom types
	for tag, vFunc := range fieldValidators {
		if err := mValidate.RegisterValidation(tag, vFunc, false); err != nil {
			log.Fatal(fmt.Errorf("failed to register validation for %s: %s", tag, err))
		}
	}

	// register struct-level validators
	mValidate.RegisterStructValidation(inspectionStructLevelValidation, api.VehicleInspection{})
}

// NewInspection returns a blank inspection for the body type: no markers and a fresh checklist
func NewInspection(vt api.VehicleType) api.VehicleInspection {
	return api.VehicleInspection{
		VehicleType: vt,
		Markers:     []api.DamageMarker{},
		Checklist:   DefaultChecklist(),
	}
}
