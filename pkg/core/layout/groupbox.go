package layout

import (
	"github.com/matzehuels/rclayout/pkg/core/dialog"
	"github.com/matzehuels/rclayout/pkg/core/sizer"
)

// groupBox builds the subtree for box i and pulls in unplaced controls that
// sit beside it. With siblings, the box is wrapped in a row: left siblings,
// the box, then right siblings.
func (b *builder) groupBox(i int, cur *cursor, sc scope) sizer.Handle {
	box := b.groupSubtree(i)

	left, right := b.siblings(i, cur.Rest())
	if len(left) == 0 && len(right) == 0 {
		return box
	}

	row := b.tree.Add(sizer.KindRow)
	b.addSide(row, left, sc)
	b.tree.AddContainer(row, box)
	b.addSide(row, right, sc)
	return row
}

// groupSubtree builds the container for box i and lays out its contents.
func (b *builder) groupSubtree(i int) sizer.Handle {
	box := &b.ctrls[i]
	h := b.tree.Add(sizer.KindGroupBox)
	g := b.tree.Get(h)
	g.Control = i
	g.Expand = box.Logical.Width >= b.form.Logical.Width-expandSlack
	b.placed.mark(i)

	contents := b.contents(i)
	if len(contents) == 0 {
		b.logger.Warn("group box has no controls", "form", b.form.Name, "id", box.ID, "label", box.Label)
		return h
	}
	b.fill(h, scope{seq: contents, rect: box.Logical, loose: true})
	return h
}

// contents returns the unplaced controls inside box i, in sorted order,
// leaving out whatever sits inside a nested group box.
func (b *builder) contents(i int) []int {
	box := &b.ctrls[i]
	var inside []int
	for k := range b.ctrls {
		if k == i || b.placed.has(k) || !dialog.Contains(box, &b.ctrls[k]) {
			continue
		}
		inside = append(inside, k)
	}
	return b.withoutNested(inside)
}

// withoutNested drops controls contained by a group box that is itself in
// idx; the nested box collects them when it is built.
func (b *builder) withoutNested(idx []int) []int {
	out := idx[:0:0]
	for _, k := range idx {
		nested := false
		for _, g := range idx {
			if g != k && b.ctrls[g].IsGroupBox() && dialog.Contains(&b.ctrls[g], &b.ctrls[k]) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, k)
		}
	}
	return out
}

// siblings splits the controls in rest that share the vertical span of box
// i without being inside it into those left and right of the box.
func (b *builder) siblings(i int, rest []int) (left, right []int) {
	box := &b.ctrls[i]
	var beside []int
	for _, k := range rest {
		c := &b.ctrls[k]
		if b.placed.has(k) || dialog.Contains(box, c) || !dialog.WithinVertical(c, box) {
			continue
		}
		beside = append(beside, k)
	}
	for _, k := range b.withoutNested(beside) {
		if b.ctrls[k].Logical.Left < box.Logical.Left {
			left = append(left, k)
		} else {
			right = append(right, k)
		}
	}
	return left, right
}

// addSide places the siblings on one side of a group box. More than one
// sibling is laid out in its own column.
func (b *builder) addSide(row sizer.Handle, side []int, sc scope) {
	switch {
	case len(side) == 0:
	case len(side) == 1 && b.ctrls[side[0]].IsGroupBox():
		b.tree.AddContainer(row, b.groupSubtree(side[0]))
	case len(side) == 1:
		b.place(row, side[0], sizer.AlignNone)
	default:
		col := b.tree.Add(sizer.KindColumn)
		b.fill(col, scope{seq: side, rect: sc.rect, loose: sc.loose})
		b.tree.AddContainer(row, col)
	}
}
