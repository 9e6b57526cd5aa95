package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/rclayout/pkg/core/dialog"
)

func ctrl(id string, kind dialog.Kind, left, top, width, height int) dialog.Control {
	return dialog.NewControl(id, id, kind, dialog.Rect{Left: left, Top: top, Width: width, Height: height})
}

func ids(ctrls []dialog.Control) []string {
	out := make([]string, len(ctrls))
	for i, c := range ctrls {
		out[i] = c.ID
	}
	return out
}

func TestSortControlsOrder(t *testing.T) {
	ctrls := []dialog.Control{
		ctrl("c", dialog.KindEdit, 60, 40, 40, 12),
		ctrl("a", dialog.KindEdit, 10, 10, 40, 12),
		ctrl("d", dialog.KindEdit, 10, 40, 40, 12),
		ctrl("b", dialog.KindEdit, 60, 10, 40, 12),
	}
	SortControls(ctrls)
	if got, want := ids(ctrls), []string{"a", "b", "d", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSortControlsLabelRepair(t *testing.T) {
	ctrls := []dialog.Control{
		ctrl("label", dialog.KindStatic, 10, 12, 40, 8),
		ctrl("edit", dialog.KindEdit, 60, 10, 80, 12),
	}
	SortControls(ctrls)

	if got, want := ids(ctrls), []string{"label", "edit"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if ctrls[1].Logical.Top != 12 {
		t.Errorf("edit top = %d, want 12", ctrls[1].Logical.Top)
	}
	if ctrls[1].Device != dialog.ToDevice(ctrls[1].Logical) {
		t.Errorf("edit device rect not recomputed: %+v", ctrls[1].Device)
	}
	if ctrls[0].Logical.Top != 12 {
		t.Errorf("label top = %d, want 12", ctrls[0].Logical.Top)
	}
}

func TestSortControlsNoRepairWhenOverlapping(t *testing.T) {
	ctrls := []dialog.Control{
		ctrl("label", dialog.KindStatic, 10, 12, 80, 8),
		ctrl("edit", dialog.KindEdit, 60, 10, 80, 12),
	}
	SortControls(ctrls)

	// The label sits lower than the edit, so the two stay in separate runs.
	if got, want := ids(ctrls), []string{"edit", "label"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if ctrls[1].Logical.Top != 10 {
		t.Errorf("edit top = %d, want 10 (not snapped)", ctrls[1].Logical.Top)
	}
}

func TestSortControlsRunExcludesLowerLabel(t *testing.T) {
	ctrls := []dialog.Control{
		ctrl("edit", dialog.KindEdit, 50, 10, 40, 12),
		ctrl("label", dialog.KindStatic, 0, 12, 60, 8),
	}
	SortControls(ctrls)
	if got, want := ids(ctrls), []string{"edit", "label"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if ctrls[0].Logical.Top != 10 || ctrls[1].Logical.Top != 12 {
		t.Errorf("tops = %d, %d, want unchanged 10, 12", ctrls[0].Logical.Top, ctrls[1].Logical.Top)
	}
}

func TestSortControlsRunKeepsLabelFirstOnSameTop(t *testing.T) {
	ctrls := []dialog.Control{
		ctrl("label", dialog.KindStatic, 0, 12, 60, 8),
		ctrl("edit", dialog.KindEdit, 50, 10, 40, 12),
		ctrl("unit", dialog.KindEdit, 95, 12, 10, 12),
	}
	SortControls(ctrls)
	// edit starts the first run; label and unit share top 12 and form the second.
	if got, want := ids(ctrls), []string{"edit", "label", "unit"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSortControlsNoRepairForNonLabel(t *testing.T) {
	ctrls := []dialog.Control{
		ctrl("check", dialog.KindCheckBox, 10, 12, 40, 8),
		ctrl("edit", dialog.KindEdit, 60, 10, 80, 12),
	}
	SortControls(ctrls)
	if got, want := ids(ctrls), []string{"edit", "check"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSortControlsIdempotent(t *testing.T) {
	fixtures := [][]dialog.Control{
		{
			ctrl("label", dialog.KindStatic, 10, 12, 40, 8),
			ctrl("edit", dialog.KindEdit, 60, 10, 80, 12),
			ctrl("label2", dialog.KindStatic, 10, 31, 40, 8),
			ctrl("edit2", dialog.KindEdit, 60, 30, 80, 12),
			ctrl("ok", dialog.KindButton, 100, 60, 50, 14),
		},
		{
			ctrl("b", dialog.KindButton, 60, 10, 40, 14),
			ctrl("a", dialog.KindButton, 10, 10, 40, 14),
			ctrl("c", dialog.KindStatic, 110, 11, 40, 8),
		},
	}
	for i, fx := range fixtures {
		once := append([]dialog.Control(nil), fx...)
		SortControls(once)
		twice := append([]dialog.Control(nil), once...)
		SortControls(twice)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("fixture %d: second sort changed order: %v -> %v", i, ids(once), ids(twice))
		}
	}
}

// The repair pass only looks at the immediate predecessor, so a label that
// was itself moved can expose a new swap on the next pass.
func TestSortControlsSecondPassRepairsChainedLabel(t *testing.T) {
	ctrls := []dialog.Control{
		ctrl("name", dialog.KindEdit, 50, 11, 30, 12),
		ctrl("more", dialog.KindEdit, 100, 11, 40, 12),
		ctrl("label", dialog.KindStatic, 0, 12, 10, 8),
	}

	SortControls(ctrls)
	if got, want := ids(ctrls), []string{"name", "label", "more"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("first pass = %v, want %v", got, want)
	}
	if ctrls[0].Logical.Top != 11 || ctrls[2].Logical.Top != 12 {
		t.Errorf("first pass tops = %d, %d, want 11, 12", ctrls[0].Logical.Top, ctrls[2].Logical.Top)
	}

	SortControls(ctrls)
	if got, want := ids(ctrls), []string{"label", "name", "more"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("second pass = %v, want %v", got, want)
	}
	for _, c := range ctrls {
		if c.Logical.Top != 12 {
			t.Errorf("%s top = %d, want 12", c.ID, c.Logical.Top)
		}
	}
}
