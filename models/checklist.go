package models

import (
	"github.com/silinternational/intake-api/api"
)

type checklistTemplateEntry struct {
	id    string
	label string
}

// checklistTemplate is the fixed set of inventory items recorded on every intake
var checklistTemplate = []checklistTemplateEntry{
	{id: "spare_tire", label: "Spare tire"},
	{id: "jack", label: "Jack"},
	{id: "lug_wrench", label: "Lug wrench"},
	{id: "warning_triangle", label: "Warning triangle"},
	{id: "fire_extinguisher", label: "Fire extinguisher"},
	{id: "radio", label: "Radio / stereo"},
	{id: "floor_mats", label: "Floor mats"},
	{id: "hubcaps", label: "Hubcaps"},
	{id: "antenna", label: "Antenna"},
	{id: "owners_manual", label: "Owner's manual"},
	{id: "registration", label: "Registration documents"},
	{id: "spare_key", label: "Spare key"},
}

// DefaultChecklist returns a new, all-unchecked checklist built from the template
func DefaultChecklist() []api.InventoryCheckItem {
	items := make([]api.InventoryCheckItem, len(checklistTemplate))
	for i, e := range checklistTemplate {
		items[i] = api.InventoryCheckItem{ID: e.id, Label: e.label}
	}
	return items
}

// EnsureChecklist fills in the template checklist if the inspection has none
func EnsureChecklist(insp api.VehicleInspection) api.VehicleInspection {
	if len(insp.Checklist) > 0 {
		return insp
	}
	next := insp.Clone()
	next.Checklist = DefaultChecklist()
	return next
}

// ToggleChecklistItem flips the checked state of an item. Unchecking clears its notes in the same step.
func ToggleChecklistItem(insp api.VehicleInspection, id string) (api.VehicleInspection, bool) {
	i := itemIndex(insp.Checklist, id)
	if i < 0 {
		return insp, false
	}

	next := insp.Clone()
	item := &next.Checklist[i]
	item.Checked = !item.Checked
	if !item.Checked {
		item.Notes = ""
	}
	return next, true
}

// SetChecklistNotes sets the notes of an item. It is allowed on unchecked items, although the UI only
// offers notes for checked ones.
func SetChecklistNotes(insp api.VehicleInspection, id, notes string) (api.VehicleInspection, bool) {
	i := itemIndex(insp.Checklist, id)
	if i < 0 {
		return insp, false
	}

	next := insp.Clone()
	next.Checklist[i].Notes = notes
	return next, true
}

// ChecklistSummary counts checked items
func ChecklistSummary(items []api.InventoryCheckItem) (checked, total int) {
	for _, item := range items {
		if item.Checked {
			checked++
		}
	}
	return checked, len(items)
}

func itemIndex(items []api.InventoryCheckItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
