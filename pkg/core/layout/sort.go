package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/rclayout/pkg/core/dialog"
)

// SortControls orders controls top to bottom, then left to right, in place.
//
// A static label that sorts after a field on its right (because the label was
// nudged down a unit or two to center it) is swapped in front of that field,
// and the field's top is snapped to the label's. Each run of controls sharing
// the first control's top is then re-sorted by left edge; the run's first
// control takes the label side of SameTop, so a lower label starts a new run.
func SortControls(ctrls []dialog.Control) {
	slices.SortStableFunc(ctrls, func(a, b dialog.Control) int {
		if c := cmp.Compare(a.Logical.Top, b.Logical.Top); c != 0 {
			return c
		}
		return cmp.Compare(a.Logical.Left, b.Logical.Left)
	})

	for i := 1; i < len(ctrls); i++ {
		prev, cur := &ctrls[i-1], &ctrls[i]
		if !cur.IsStatic() || !dialog.SameTop(cur, prev, false) {
			continue
		}
		if prev.Logical.Left > cur.Logical.Right() {
			top := cur.Logical.Top
			ctrls[i-1], ctrls[i] = ctrls[i], ctrls[i-1]
			ctrls[i].SetTop(top)
		}
	}

	for start := 0; start < len(ctrls); {
		end := start + 1
		for end < len(ctrls) && dialog.SameTop(&ctrls[start], &ctrls[end], false) {
			end++
		}
		slices.SortStableFunc(ctrls[start:end], func(a, b dialog.Control) int {
			return cmp.Compare(a.Logical.Left, b.Logical.Left)
		})
		start = end
	}
}
