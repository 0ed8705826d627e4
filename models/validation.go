package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/validate/v3"

	"github.com/silinternational/intake-api/api"
)

// Model validation tool
var mValidate *validator.Validate

var fieldValidators = map[string]func(validator.FieldLevel) bool{
	"damageType":  validateDamageType,
	"severity":    validateSeverity,
	"vehicleType": validateVehicleType,
	"view":        validateView,
}

// Validate checks an inspection against the model rules and returns all problems found
func Validate(insp api.VehicleInspection) *validate.Errors {
	return validateModel(insp)
}

// ValidateInspection is like Validate but reports the problems as a single AppError, or nil
func ValidateInspection(insp api.VehicleInspection) error {
	vErrs := Validate(insp)
	if !vErrs.HasAny() {
		return nil
	}
	return api.NewAppError(errors.New(flattenErrors(vErrs)), api.ErrorValidation, api.CategoryUser)
}

func validateModel(m any) *validate.Errors {
	vErrs := validate.NewErrors()

	if err := mValidate.Struct(m); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			vErrs.Add("model", err.Error())
			return vErrs
		}
		for _, err := range fieldErrs {
			vErrs.Add(err.StructNamespace(), err.Error())
		}
	}
	return vErrs
}

// flattenErrors - validation errors are complex structures, this flattens them to a simple string
func flattenErrors(vErrs *validate.Errors) string {
	keys := vErrs.Keys()
	sort.Strings(keys)

	var msgs []string
	for _, key := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", key, strings.Join(vErrs.Get(key), ", ")))
	}
	return strings.Join(msgs, " |")
}

func validateDamageType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.DamageType); ok {
		return value.IsValid()
	}
	return false
}

func validateSeverity(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.Severity); ok {
		return value.IsValid()
	}
	return false
}

func validateVehicleType(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.VehicleType); ok {
		return value.IsValid()
	}
	return false
}

func validateView(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.View); ok {
		return value.IsValid()
	}
	return false
}

func inspectionStructLevelValidation(sl validator.StructLevel) {
	insp, ok := sl.Current().Interface().(api.VehicleInspection)
	if !ok {
		panic("inspectionStructLevelValidation registered to a type other than VehicleInspection")
	}

	markerIDs := map[string]bool{}
	for _, m := range insp.Markers {
		if markerIDs[m.ID.String()] {
			sl.ReportError(insp.Markers, "markers", "Markers", "marker_id_unique", m.ID.String())
		}
		markerIDs[m.ID.String()] = true
	}

	itemIDs := map[string]bool{}
	for _, item := range insp.Checklist {
		if itemIDs[item.ID] {
			sl.ReportError(insp.Checklist, "checklist", "Checklist", "checklist_id_unique", item.ID)
		}
		itemIDs[item.ID] = true
	}
}
