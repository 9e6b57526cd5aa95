package layout

import "github.com/matzehuels/rclayout/pkg/core/dialog"

const (
	// NoContainer means the first control stands alone.
	NoContainer = -1
	// SingleRow means the controls form one aligned row.
	SingleRow = 0
)

// GridNeeded classifies ctrls[start:end] using exact top matching. It
// returns NoContainer, SingleRow, or the column count of the grid needed to
// hold every row in the range.
func GridNeeded(ctrls []dialog.Control, start, end int) int {
	if start < 0 {
		start = 0
	}
	if end > len(ctrls) {
		end = len(ctrls)
	}
	return gridNeeded(end-start, func(i int) *dialog.Control { return &ctrls[start+i] }, false)
}

// GroupGridNeeded classifies the controls listed in sub, tolerating the one
// or two unit drift found inside group boxes.
func GroupGridNeeded(ctrls []dialog.Control, sub []int) int {
	return gridNeeded(len(sub), func(i int) *dialog.Control { return &ctrls[sub[i]] }, true)
}

func gridNeeded(n int, at func(int) *dialog.Control, loose bool) int {
	if n < 2 || !rowMate(at(0), at(1), loose) {
		return NoContainer
	}
	columns := 0
	for row := 0; row < n; {
		width := rowWidth(n, at, row, loose)
		columns = max(columns, width)
		row += width
		if row >= n && row == width {
			return SingleRow
		}
	}
	return columns
}

// rowWidth counts the controls from start that share start's top.
func rowWidth(n int, at func(int) *dialog.Control, start int, loose bool) int {
	width := 1
	for start+width < n && rowMate(at(start), at(start+width), loose) {
		width++
	}
	return width
}

// rowMate is the row comparator used while classifying: exact top equality,
// or the loose SameTop window.
func rowMate(a, b *dialog.Control, loose bool) bool {
	if loose {
		return dialog.SameTop(a, b, true)
	}
	return a.Logical.Top == b.Logical.Top
}
