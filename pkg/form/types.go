package form

import (
	"github.com/matzehuels/rclayout/pkg/core/dialog"
	"github.com/matzehuels/rclayout/pkg/errors"
)

// =============================================================================
// Form Documents - Parser Output Format
// =============================================================================

// Document is a set of dialog forms as produced by a resource parser.
type Document struct {
	Source string `json:"source,omitempty" toml:"source,omitempty" yaml:"source,omitempty"`
	Forms  []Form `json:"forms" toml:"forms" yaml:"forms"`
}

// Form is one dialog, panel or menu with its controls in source order.
type Form struct {
	ID       string      `json:"id" toml:"id" yaml:"id" bson:"id"`
	Kind     string      `json:"kind,omitempty" toml:"kind,omitempty" yaml:"kind,omitempty" bson:"kind,omitempty"`
	Caption  string      `json:"caption,omitempty" toml:"caption,omitempty" yaml:"caption,omitempty" bson:"caption,omitempty"`
	Style    []string    `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty" bson:"style,omitempty"`
	Rect     dialog.Rect `json:"rect" toml:"rect" yaml:"rect" bson:"rect"`
	Controls []Control   `json:"controls" toml:"controls" yaml:"controls" bson:"controls"`
}

// Control is one control of a form.
type Control struct {
	ID      string      `json:"id" toml:"id" yaml:"id" bson:"id"`
	Kind    string      `json:"kind" toml:"kind" yaml:"kind" bson:"kind"`
	Label   string      `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty"`
	Style   []string    `json:"style,omitempty" toml:"style,omitempty" yaml:"style,omitempty" bson:"style,omitempty"`
	Default bool        `json:"default,omitempty" toml:"default,omitempty" yaml:"default,omitempty" bson:"default,omitempty"`
	Element string      `json:"element,omitempty" toml:"element,omitempty" yaml:"element,omitempty" bson:"element,omitempty"`
	Rect    dialog.Rect `json:"rect" toml:"rect" yaml:"rect" bson:"rect"`
}

// Find returns the form with the given id.
func (d *Document) Find(id string) (*Form, error) {
	for i := range d.Forms {
		if d.Forms[i].ID == id {
			return &d.Forms[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodeFormNotFound, "form %q not found", id)
}

// Names returns the form ids in document order.
func (d *Document) Names() []string {
	out := make([]string, len(d.Forms))
	for i, f := range d.Forms {
		out[i] = f.ID
	}
	return out
}

// ToDialog validates f and converts it to the layout engine's model,
// applying the importer's control fixups (see dialog.Form.Normalize).
func (f Form) ToDialog() (*dialog.Form, error) {
	return f.toDialog(true)
}

// ToDialogRaw converts f without the importer fixups.
func (f Form) ToDialogRaw() (*dialog.Form, error) {
	return f.toDialog(false)
}

func (f Form) toDialog(normalize bool) (*dialog.Form, error) {
	if err := errors.ValidateFormName(f.ID); err != nil {
		return nil, err
	}
	kind, ok := dialog.ParseFormKind(f.Kind)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidForm, "form %s: unknown kind %q", f.ID, f.Kind)
	}
	if err := validateRect(f.Rect); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "form %s", f.ID)
	}

	ctrls := make([]dialog.Control, 0, len(f.Controls))
	for i, c := range f.Controls {
		if err := errors.ValidateControlID(c.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidForm, err, "form %s: control %d", f.ID, i)
		}
		k, ok := dialog.ParseKind(c.Kind)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidForm, "form %s: control %d (%s): unknown kind %q", f.ID, i, c.ID, c.Kind)
		}
		if err := validateRect(c.Rect); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "form %s: control %d (%s)", f.ID, i, c.ID)
		}
		dc := dialog.NewControl(c.ID, c.Label, k, c.Rect)
		dc.Style = c.Style
		dc.Default = c.Default
		if c.Element != "" {
			dc.Element = c.Element
		}
		ctrls = append(ctrls, dc)
	}

	df := dialog.NewForm(f.ID, kind, f.Rect, ctrls...)
	df.Caption = f.Caption
	if normalize {
		df.Normalize(f.Style...)
	}
	return df, nil
}

func validateRect(r dialog.Rect) error {
	return errors.ValidateGeometry(r.Left, r.Top, r.Width, r.Height)
}

// FromControl converts an engine control back to its document form.
func FromControl(c dialog.Control) Control {
	return Control{
		ID:      c.ID,
		Kind:    c.Kind.String(),
		Label:   c.Label,
		Style:   c.Style,
		Default: c.Default,
		Element: c.Element,
		Rect:    c.Logical,
	}
}
