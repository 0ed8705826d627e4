package models

import (
	"testing"

	"github.com/silinternational/intake-api/api"
)

func (ms *ModelSuite) Test_ToggleChecklistItem() {
	insp := NewInspection(api.VehicleTypeSedan)
	id := insp.Checklist[2].ID

	checked, ok := ToggleChecklistItem(insp, id)
	ms.True(ok)
	ms.True(checked.Checklist[2].Checked)
	ms.False(insp.Checklist[2].Checked, "input was modified")

	withNotes, ok := SetChecklistNotes(checked, id, "in the trunk")
	ms.True(ok)
	ms.Equal("in the trunk", withNotes.Checklist[2].Notes)

	unchecked, ok := ToggleChecklistItem(withNotes, id)
	ms.True(ok)
	ms.False(unchecked.Checklist[2].Checked)
	ms.Empty(unchecked.Checklist[2].Notes)

	// checking again does not bring the old notes back
	rechecked, ok := ToggleChecklistItem(unchecked, id)
	ms.True(ok)
	ms.True(rechecked.Checklist[2].Checked)
	ms.Empty(rechecked.Checklist[2].Notes)
}

func (ms *ModelSuite) Test_ChecklistUnknownItem() {
	insp := NewInspection(api.VehicleTypeSedan)

	got, ok := ToggleChecklistItem(insp, "sunroof")
	ms.False(ok)
	ms.Equal(insp, got)

	got, ok = SetChecklistNotes(insp, "sunroof", "x")
	ms.False(ok)
	ms.Equal(insp, got)
}

func (ms *ModelSuite) Test_SetChecklistNotesOnUncheckedItem() {
	insp := NewInspection(api.VehicleTypeSedan)
	id := insp.Checklist[0].ID

	got, ok := SetChecklistNotes(insp, id, "left with owner")
	ms.True(ok)
	ms.False(got.Checklist[0].Checked)
	ms.Equal("left with owner", got.Checklist[0].Notes)
	ms.NoError(ValidateInspection(got))
}

func (ms *ModelSuite) Test_EnsureChecklist() {
	tests := []struct {
		name    string
		insp    api.VehicleInspection
		wantLen int
	}{
		{
			name:    "empty gets template",
			insp:    api.VehicleInspection{VehicleType: api.VehicleTypeVan},
			wantLen: len(checklistTemplate),
		},
		{
			name: "existing is kept",
			insp: api.VehicleInspection{
				VehicleType: api.VehicleTypeVan,
				Checklist:   []api.InventoryCheckItem{{ID: "jack", Label: "Jack", Checked: true}},
			},
			wantLen: 1,
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			got := EnsureChecklist(tt.insp)
			ms.Len(got.Checklist, tt.wantLen)
			ms.Equal(tt.insp.VehicleType, got.VehicleType)
		})
	}
}

func (ms *ModelSuite) Test_ChecklistSummary() {
	insp := NewInspection(api.VehicleTypeSedan)
	checked, total := ChecklistSummary(insp.Checklist)
	ms.Equal(0, checked)
	ms.Equal(len(checklistTemplate), total)

	for _, id := range []string{"jack", "radio", "spare_key"} {
		var ok bool
		insp, ok = ToggleChecklistItem(insp, id)
		ms.True(ok)
	}
	checked, total = ChecklistSummary(insp.Checklist)
	ms.Equal(3, checked)
	ms.Equal(len(checklistTemplate), total)

	checked, total = ChecklistSummary(nil)
	ms.Equal(0, checked)
	ms.Equal(0, total)
}
