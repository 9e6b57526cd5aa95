package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rclayout/pkg/core/dialog"
	"github.com/matzehuels/rclayout/pkg/core/sizer"
)

const (
	// alignSlack is how close, in dialog units, a row's right edge must be
	// to its scope's right edge to count as right-aligned.
	alignSlack = 15
	// expandSlack is how close a group box's width must be to the dialog's
	// width for the box to expand.
	expandSlack = 30
)

// Option configures Build.
type Option func(*builder)

// WithLogger sets the logger used for warnings and debug tracing.
func WithLogger(l *log.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithoutStdButtons disables standard button detection, leaving OK/Cancel
// style buttons in the general flow.
func WithoutStdButtons() Option { return func(b *builder) { b.noStd = true } }

type builder struct {
	form   *dialog.Form
	ctrls  []dialog.Control
	tree   *sizer.Tree
	placed placedSet
	logger *log.Logger
	noStd  bool
}

// scope is the region being filled: the whole dialog or a group box.
type scope struct {
	seq   []int
	rect  dialog.Rect
	loose bool
	top   bool
}

// Build sorts the form's controls in place and returns the container tree
// for them. Leaves in the tree index f.Controls in its sorted order.
//
// Build never fails: any control list produces some tree, and an empty form
// yields a single empty vertical root.
func Build(f *dialog.Form, opts ...Option) *sizer.Tree {
	b := newBuilder(f, opts...)
	b.tree.Root = b.tree.Add(sizer.KindColumn)
	if len(b.ctrls) == 0 {
		return b.tree
	}

	SortControls(b.ctrls)
	if !b.noStd {
		b.detectStdButtons()
	}

	seq := make([]int, len(b.ctrls))
	for i := range seq {
		seq[i] = i
	}
	b.fill(b.tree.Root, scope{
		seq:  seq,
		rect: dialog.Rect{Width: f.Logical.Width, Height: f.Logical.Height},
		top:  true,
	})

	if b.tree.StdButtons != sizer.NoHandle {
		b.tree.AddContainer(b.tree.Root, b.tree.StdButtons)
	}
	b.tree.DedupNames()

	b.logger.Debug("layout built", "form", f.Name, "controls", len(b.ctrls), "containers", b.tree.Len())
	return b.tree
}

func newBuilder(f *dialog.Form, opts ...Option) *builder {
	b := &builder{
		form:   f,
		ctrls:  f.Controls,
		tree:   sizer.New(),
		placed: make(placedSet, len(f.Controls)),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// fill lays out the controls of sc into parent.
func (b *builder) fill(parent sizer.Handle, sc scope) {
	cur := newCursor(sc.seq, b.placed)
	for {
		i, ok := cur.Next()
		if !ok {
			return
		}
		c := &b.ctrls[i]

		if c.IsGroupBox() {
			b.tree.AddContainer(parent, b.groupBox(i, cur, sc))
			continue
		}

		next, ok := cur.Peek()
		if !ok {
			b.lastControl(parent, i, sc)
			return
		}

		if dialog.SameTop(c, &b.ctrls[next], true) {
			b.tree.AddContainer(parent, b.rowOrGrid(i, cur, sc))
			continue
		}
		b.tree.AddContainer(parent, b.column(i, cur, sc))
	}
}

// place adds control i to parent and marks it placed.
func (b *builder) place(parent sizer.Handle, i int, align sizer.Align) {
	b.tree.AddControl(parent, i, align)
	b.placed.mark(i)
}

// lastControl places the final control of a scope. At the top level it is
// wrapped in its own row so that its alignment can be expressed.
func (b *builder) lastControl(parent sizer.Handle, i int, sc scope) {
	align := b.buttonAlign(i, sc)
	if !sc.top {
		b.place(parent, i, align)
		return
	}
	row := b.tree.Add(sizer.KindRow)
	b.tree.Get(row).Align = align
	b.place(row, i, align)
	b.tree.AddContainer(parent, row)
}

// buttonAlign centers or right-aligns a lone button sitting in the right
// half of its scope.
func (b *builder) buttonAlign(i int, sc scope) sizer.Align {
	c := &b.ctrls[i]
	if !c.IsButton() {
		return sizer.AlignNone
	}
	width := sc.rect.Width
	left := c.Logical.Left - sc.rect.Left
	margin := width/2 - c.Logical.Width
	if left <= margin {
		return sizer.AlignNone
	}
	if left+c.Logical.Width < width-margin {
		return sizer.AlignCenter
	}
	return sizer.AlignRight
}

// rowOrGrid handles a control that shares its top with the next one. A
// block of two or more aligned rows becomes a grid; otherwise the loose run
// becomes a single row.
func (b *builder) rowOrGrid(first int, cur *cursor, sc scope) sizer.Handle {
	seq := append([]int{first}, cur.Rest()...)
	if rows := b.gridBlock(seq, sc.loose); len(rows) > 1 {
		var flat []int
		for _, r := range rows {
			flat = append(flat, r...)
		}
		if n := gridNeeded(len(flat), func(k int) *dialog.Control { return &b.ctrls[flat[k]] }, sc.loose); n > 0 {
			return b.grid(rows, n)
		}
	}
	return b.row(first, cur, sc)
}

// gridBlock splits seq into consecutive rows and returns the leading rows
// that could share a grid: each has at least two controls, no group box,
// and starts within Fudge pixels of the first row's left edge.
func (b *builder) gridBlock(seq []int, loose bool) [][]int {
	var rows [][]int
	at := func(k int) *dialog.Control { return &b.ctrls[seq[k]] }
	for start := 0; start < len(seq); {
		width := rowWidth(len(seq), at, start, loose)
		row := seq[start : start+width]
		if len(row) < 2 || b.hasGroupBox(row) {
			break
		}
		if len(rows) > 0 && !dialog.SameLeft(at(start), &b.ctrls[rows[0][0]]) {
			break
		}
		rows = append(rows, row)
		start += width
	}
	return rows
}

func (b *builder) hasGroupBox(idx []int) bool {
	for _, i := range idx {
		if b.ctrls[i].IsGroupBox() {
			return true
		}
	}
	return false
}

// grid places rows into a grid with the given column count, padding short
// rows with spacers.
func (b *builder) grid(rows [][]int, columns int) sizer.Handle {
	h := b.tree.Add(sizer.KindGrid)
	b.tree.Get(h).Columns = columns
	for _, r := range rows {
		for _, i := range r {
			b.place(h, i, sizer.AlignNone)
		}
		for k := len(r); k < columns; k++ {
			b.tree.AddSpacer(h)
		}
	}
	return h
}

// row consumes the loose same-top run starting at first. Group boxes met
// mid-row get their own subtree.
func (b *builder) row(first int, cur *cursor, sc scope) sizer.Handle {
	h := b.tree.Add(sizer.KindRow)
	b.place(h, first, sizer.AlignNone)
	right := b.ctrls[first].Logical.Right()
	for {
		i, ok := cur.Next()
		if !ok {
			break
		}
		if !dialog.SameTop(&b.ctrls[first], &b.ctrls[i], true) {
			cur.Back()
			break
		}
		if b.ctrls[i].IsGroupBox() {
			b.tree.AddContainer(h, b.groupSubtree(i))
		} else {
			b.place(h, i, sizer.AlignNone)
		}
		right = max(right, b.ctrls[i].Logical.Right())
	}

	indent := b.ctrls[first].Logical.Left - sc.rect.Left
	if indent > alignSlack && sc.rect.Right()-right <= alignSlack {
		b.tree.Get(h).Align = sizer.AlignRight
	}
	return h
}

// column greedily stacks controls below first while they stay left-aligned
// with it and do not start a row of their own.
func (b *builder) column(first int, cur *cursor, sc scope) sizer.Handle {
	h := b.tree.Add(sizer.KindColumn)
	b.place(h, first, sizer.AlignNone)
	last := first
	for {
		i, ok := cur.Next()
		if !ok {
			break
		}
		c := &b.ctrls[i]
		if c.Logical.Top < b.ctrls[last].Logical.Bottom() ||
			!dialog.SameLeft(c, &b.ctrls[first]) ||
			c.IsGroupBox() || b.startsRow(c, cur) {
			cur.Back()
			break
		}
		b.place(h, i, sizer.AlignNone)
		last = i
	}

	col := b.tree.Get(h)
	if len(col.Children) == 1 {
		if b.buttonAlign(first, sc) != sizer.AlignNone {
			col.Kind = sizer.KindRow
			col.Align = sizer.AlignRight
			col.Children[0].Align = sizer.AlignRight
		}
	}
	return h
}

// startsRow reports whether c shares its top with the control after it.
func (b *builder) startsRow(c *dialog.Control, cur *cursor) bool {
	next, ok := cur.Peek()
	return ok && dialog.SameTop(c, &b.ctrls[next], true)
}
