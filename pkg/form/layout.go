package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/rclayout/pkg/core/dialog"
	"github.com/matzehuels/rclayout/pkg/core/sizer"
	"github.com/matzehuels/rclayout/pkg/errors"
)

// Node types that are not container kinds.
const (
	NodeControl = "control"
	NodeSpacer  = "spacer"
)

// Layout is the serialized result of laying out one form: the controls in
// their sorted order and the container tree that places them.
type Layout struct {
	Form     string    `json:"form" bson:"form"`
	Class    string    `json:"class" bson:"class"`
	Kind     string    `json:"kind" bson:"kind"`
	Caption  string    `json:"caption,omitempty" bson:"caption,omitempty"`
	Width    int       `json:"width" bson:"width"`
	Height   int       `json:"height" bson:"height"`
	Controls []Control `json:"controls" bson:"controls"`
	Root     Node      `json:"root" bson:"root"`
}

// Node is one element of a serialized container tree. Containers carry
// their kind in Type; leaves are "control" or "spacer".
type Node struct {
	Type    string `json:"type" bson:"type"`
	Name    string `json:"name,omitempty" bson:"name,omitempty"`
	Columns int    `json:"columns,omitempty" bson:"columns,omitempty"`
	Expand  bool   `json:"expand,omitempty" bson:"expand,omitempty"`
	Align   string `json:"align,omitempty" bson:"align,omitempty"`

	// Control indexes Layout.Controls. For group boxes it is the box itself.
	Control *int   `json:"control,omitempty" bson:"control,omitempty"`
	Label   string `json:"label,omitempty" bson:"label,omitempty"`

	Buttons []string `json:"buttons,omitempty" bson:"buttons,omitempty"`
	Default string   `json:"default,omitempty" bson:"default,omitempty"`

	Children []Node `json:"children,omitempty" bson:"children,omitempty"`
}

// Containers counts the containers in the subtree rooted at n.
func (n Node) Containers() int {
	if n.Type == "" || n.Type == NodeControl || n.Type == NodeSpacer {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Containers()
	}
	return total
}

// FromTree converts a container tree and its (sorted) form into a Layout.
func FromTree(t *sizer.Tree, f *dialog.Form) Layout {
	out := Layout{
		Form:     f.Name,
		Class:    dialog.ConvertFormID(f.Name),
		Kind:     f.Kind.String(),
		Caption:  f.Caption,
		Width:    f.Logical.Width,
		Height:   f.Logical.Height,
		Controls: make([]Control, len(f.Controls)),
	}
	for i, c := range f.Controls {
		out.Controls[i] = FromControl(c)
	}
	if t.Root != sizer.NoHandle {
		out.Root = containerNode(t, f, t.Root)
	}
	return out
}

func containerNode(t *sizer.Tree, f *dialog.Form, h sizer.Handle) Node {
	c := t.Get(h)
	n := Node{
		Type:    c.Kind.String(),
		Name:    c.Name,
		Columns: c.Columns,
		Expand:  c.Expand,
		Align:   c.Align.String(),
	}
	if c.Control >= 0 {
		n.Control = intPtr(c.Control)
		n.Label = f.Controls[c.Control].Label
	}
	if c.Kind == sizer.KindStdButtons {
		n.Buttons = c.Buttons.Names()
		n.Default = c.Buttons.Default
	}
	for _, ch := range c.Children {
		switch ch.Kind {
		case sizer.ChildControl:
			n.Children = append(n.Children, Node{
				Type:    NodeControl,
				Name:    f.Controls[ch.Control].Element,
				Align:   ch.Align.String(),
				Control: intPtr(ch.Control),
			})
		case sizer.ChildSpacer:
			n.Children = append(n.Children, Node{Type: NodeSpacer})
		case sizer.ChildContainer:
			n.Children = append(n.Children, containerNode(t, f, ch.Container))
		}
	}
	return n
}

func intPtr(i int) *int { return &i }

// Tree rebuilds the container tree and the form it indexes.
func (l Layout) Tree() (*sizer.Tree, *dialog.Form, error) {
	kind, ok := dialog.ParseFormKind(l.Kind)
	if !ok {
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "layout %s: unknown form kind %q", l.Form, l.Kind)
	}
	ctrls := make([]dialog.Control, len(l.Controls))
	for i, c := range l.Controls {
		k, ok := dialog.ParseKind(c.Kind)
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "layout %s: control %d: unknown kind %q", l.Form, i, c.Kind)
		}
		ctrls[i] = dialog.NewControl(c.ID, c.Label, k, c.Rect)
		ctrls[i].Style = c.Style
		ctrls[i].Default = c.Default
		if c.Element != "" {
			ctrls[i].Element = c.Element
		}
	}
	f := dialog.NewForm(l.Form, kind, dialog.Rect{Width: l.Width, Height: l.Height}, ctrls...)
	f.Caption = l.Caption

	t := sizer.New()
	if l.Root.Type == "" {
		return t, f, nil
	}
	root, err := buildNode(t, l.Root, len(ctrls))
	if err != nil {
		return nil, nil, fmt.Errorf("layout %s: %w", l.Form, err)
	}
	t.Root = root
	return t, f, nil
}

func buildNode(t *sizer.Tree, n Node, nctrl int) (sizer.Handle, error) {
	kind, err := sizer.ParseKind(n.Type)
	if err != nil {
		return sizer.NoHandle, errors.Wrap(errors.ErrCodeInvalidFormat, err, "node %q", n.Name)
	}
	h := t.Add(kind)
	c := t.Get(h)
	c.Name = n.Name
	c.Columns = n.Columns
	c.Expand = n.Expand
	c.Align = sizer.ParseAlign(n.Align)
	if n.Control != nil {
		if *n.Control < 0 || *n.Control >= nctrl {
			return sizer.NoHandle, errors.New(errors.ErrCodeInvalidFormat, "node %q: control %d out of range", n.Name, *n.Control)
		}
		c.Control = *n.Control
	}
	if kind == sizer.KindStdButtons {
		for _, b := range n.Buttons {
			if !c.Buttons.Set(b) {
				return sizer.NoHandle, errors.New(errors.ErrCodeInvalidFormat, "node %q: unknown button %q", n.Name, b)
			}
		}
		c.Buttons.Default = n.Default
		t.StdButtons = h
	}

	for _, ch := range n.Children {
		switch ch.Type {
		case NodeSpacer:
			t.AddSpacer(h)
		case NodeControl:
			if ch.Control == nil || *ch.Control < 0 || *ch.Control >= nctrl {
				return sizer.NoHandle, errors.New(errors.ErrCodeInvalidFormat, "node %q: control leaf without a valid index", n.Name)
			}
			t.AddControl(h, *ch.Control, sizer.ParseAlign(ch.Align))
		default:
			sub, err := buildNode(t, ch, nctrl)
			if err != nil {
				return sizer.NoHandle, err
			}
			t.AddContainer(h, sub)
		}
	}
	return h, nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout encodes a layout as indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteLayout(l, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteLayout writes a layout as JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteLayoutFile writes a layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(l, f)
}

// UnmarshalLayout decodes a JSON layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	return ReadLayout(bytes.NewReader(data))
}

// ReadLayout decodes a JSON layout from r.
func ReadLayout(r io.Reader) (Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return l, nil
}

// ReadLayoutFile reads a JSON layout file.
func ReadLayoutFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
		}
		return Layout{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}
