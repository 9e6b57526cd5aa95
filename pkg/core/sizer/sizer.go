package sizer

import "fmt"

// Handle indexes a container in a Tree.
type Handle int

// NoHandle marks an absent container.
const NoHandle Handle = -1

// Kind is the container type.
type Kind int

const (
	KindRow Kind = iota
	KindColumn
	KindGrid
	KindGroupBox
	KindStdButtons
)

func (k Kind) String() string {
	switch k {
	case KindRow:
		return "row"
	case KindColumn:
		return "column"
	case KindGrid:
		return "grid"
	case KindGroupBox:
		return "groupbox"
	case KindStdButtons:
		return "stdbuttons"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k := KindRow; k <= KindStdButtons; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown container kind %q", s)
}

// Align is an alignment hint for a container or child.
type Align int

const (
	AlignNone Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return ""
}

// ParseAlign is the inverse of Align.String.
func ParseAlign(s string) Align {
	switch s {
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	}
	return AlignNone
}

// ChildKind says what a child slot refers to.
type ChildKind int

const (
	ChildControl ChildKind = iota
	ChildContainer
	ChildSpacer
)

// Child is one slot in a container. Control is an index into the form's
// control slice and Container a handle into the same Tree.
type Child struct {
	Kind      ChildKind
	Control   int
	Container Handle
	Align     Align
}

// StdButtons holds the flags of a standard button row.
type StdButtons struct {
	OK, Cancel, Yes, No, Save, Close, Apply, Help bool

	// Default names the flag of the default button, if any.
	Default string
}

// Set turns on the named flag. It reports false for unknown names.
func (b *StdButtons) Set(name string) bool {
	switch name {
	case "OK":
		b.OK = true
	case "Cancel":
		b.Cancel = true
	case "Yes":
		b.Yes = true
	case "No":
		b.No = true
	case "Save":
		b.Save = true
	case "Close":
		b.Close = true
	case "Apply":
		b.Apply = true
	case "Help":
		b.Help = true
	default:
		return false
	}
	return true
}

// Names lists the flags that are on, in button-row order.
func (b StdButtons) Names() []string {
	var out []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{b.OK, "OK"}, {b.Yes, "Yes"}, {b.Save, "Save"}, {b.No, "No"},
		{b.Apply, "Apply"}, {b.Close, "Close"}, {b.Cancel, "Cancel"}, {b.Help, "Help"},
	} {
		if f.on {
			out = append(out, f.name)
		}
	}
	return out
}

// Container is a row, column, grid, group box or standard button row.
type Container struct {
	Kind     Kind
	Name     string
	Columns  int
	Expand   bool
	Align    Align
	Children []Child

	// Control is the group box control backing a KindGroupBox container,
	// or -1.
	Control int

	Buttons StdButtons
}

// Tree is an arena of containers. Containers refer to each other by Handle
// and to controls by index, so a Tree can be copied and serialized freely.
type Tree struct {
	Containers []Container
	Root       Handle
	StdButtons Handle
}

// New returns a tree with no containers.
func New() *Tree {
	return &Tree{Root: NoHandle, StdButtons: NoHandle}
}

var baseNames = map[Kind]string{
	KindRow:        "box_sizer",
	KindColumn:     "box_sizer",
	KindGrid:       "grid_sizer",
	KindGroupBox:   "static_box",
	KindStdButtons: "std_buttons",
}

// Add creates a detached container and returns its handle.
func (t *Tree) Add(kind Kind) Handle {
	t.Containers = append(t.Containers, Container{
		Kind:    kind,
		Name:    baseNames[kind],
		Control: -1,
	})
	return Handle(len(t.Containers) - 1)
}

// Get returns the container for h. It panics on an invalid handle.
func (t *Tree) Get(h Handle) *Container {
	return &t.Containers[h]
}

// Len returns the number of containers.
func (t *Tree) Len() int { return len(t.Containers) }

// AddControl appends control index ctrl to parent.
func (t *Tree) AddControl(parent Handle, ctrl int, align Align) {
	c := t.Get(parent)
	c.Children = append(c.Children, Child{Kind: ChildControl, Control: ctrl, Container: NoHandle, Align: align})
}

// AddContainer appends child to parent.
func (t *Tree) AddContainer(parent, child Handle) {
	c := t.Get(parent)
	c.Children = append(c.Children, Child{Kind: ChildContainer, Control: -1, Container: child})
}

// AddSpacer appends an empty cell to parent.
func (t *Tree) AddSpacer(parent Handle) {
	c := t.Get(parent)
	c.Children = append(c.Children, Child{Kind: ChildSpacer, Control: -1, Container: NoHandle})
}

// Walk visits every container reachable from the root, depth first, parents
// before children. Returning false from fn skips the container's subtree.
func (t *Tree) Walk(fn func(h Handle, depth int) bool) {
	if t.Root == NoHandle {
		return
	}
	var visit func(h Handle, depth int)
	visit = func(h Handle, depth int) {
		if !fn(h, depth) {
			return
		}
		for _, ch := range t.Get(h).Children {
			if ch.Kind == ChildContainer {
				visit(ch.Container, depth+1)
			}
		}
	}
	visit(t.Root, 0)
}

// Controls returns every control index placed in the tree, in tree order.
// Group box containers contribute their backing control.
func (t *Tree) Controls() []int {
	var out []int
	t.Walk(func(h Handle, _ int) bool {
		c := t.Get(h)
		if c.Control >= 0 {
			out = append(out, c.Control)
		}
		for _, ch := range c.Children {
			if ch.Kind == ChildControl {
				out = append(out, ch.Control)
			}
		}
		return true
	})
	return out
}

// DedupNames renames containers that share a name with an earlier one by
// appending _2, _3 and so on.
func (t *Tree) DedupNames() {
	used := make(map[string]bool, len(t.Containers))
	next := make(map[string]int)
	t.Walk(func(h Handle, _ int) bool {
		c := t.Get(h)
		if !used[c.Name] {
			used[c.Name] = true
			return true
		}
		base := c.Name
		n := next[base]
		if n < 2 {
			n = 2
		}
		for used[fmt.Sprintf("%s_%d", base, n)] {
			n++
		}
		c.Name = fmt.Sprintf("%s_%d", base, n)
		used[c.Name] = true
		next[base] = n + 1
		return true
	})
}
