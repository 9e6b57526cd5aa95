package dialog

import "strings"

// Kind is the control type tag assigned by the resource parser.
type Kind int

const (
	KindUnknown Kind = iota
	KindButton
	KindStatic
	KindGroupBox
	KindEdit
	KindList
	KindCombo
	KindCheckBox
	KindRadio
	KindScrollBar
	KindSpin
	KindProgress
	KindSlider
	KindImage
	KindCustom
)

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindButton:    "button",
	KindStatic:    "static",
	KindGroupBox:  "groupbox",
	KindEdit:      "edit",
	KindList:      "list",
	KindCombo:     "combo",
	KindCheckBox:  "checkbox",
	KindRadio:     "radio",
	KindScrollBar: "scrollbar",
	KindSpin:      "spin",
	KindProgress:  "progress",
	KindSlider:    "slider",
	KindImage:     "image",
	KindCustom:    "custom",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps a kind name (case-insensitive) to a Kind. Resource keywords
// such as "PUSHBUTTON" or "LTEXT" are accepted as aliases.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	if k, ok := kindAliases[s]; ok {
		return k, true
	}
	return KindUnknown, false
}

var kindAliases = map[string]Kind{
	"pushbutton":      KindButton,
	"defpushbutton":   KindButton,
	"ltext":           KindStatic,
	"ctext":           KindStatic,
	"rtext":           KindStatic,
	"text":            KindStatic,
	"label":           KindStatic,
	"edittext":        KindEdit,
	"listbox":         KindList,
	"combobox":        KindCombo,
	"checkbox":        KindCheckBox,
	"autocheckbox":    KindCheckBox,
	"radiobutton":     KindRadio,
	"autoradiobutton": KindRadio,
	"icon":            KindImage,
	"control":         KindCustom,
}

// FormKind distinguishes dialogs from embeddable panels and menus.
type FormKind int

const (
	FormDialog FormKind = iota
	FormPanel
	FormMenu
)

func (k FormKind) String() string {
	switch k {
	case FormPanel:
		return "panel"
	case FormMenu:
		return "menu"
	default:
		return "dialog"
	}
}

// ParseFormKind maps "dialog", "panel" or "menu" to a FormKind. The empty
// string is a dialog.
func ParseFormKind(s string) (FormKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dialog", "dialogex":
		return FormDialog, true
	case "panel":
		return FormPanel, true
	case "menu":
		return FormMenu, true
	}
	return FormDialog, false
}

// Control is one positioned control from a dialog resource.
//
// The logical rect is authoritative; Device is always derived from it with
// [ToDevice]. Use [Control.SetTop] to move a control so both stay in step.
type Control struct {
	ID      string
	Label   string
	Kind    Kind
	Style   []string
	Default bool

	// Element names the target-side layout element this control produces.
	Element string

	Logical Rect
	Device  Rect
}

// NewControl builds a control and derives its device rect.
func NewControl(id, label string, kind Kind, r Rect) Control {
	return Control{
		ID:      id,
		Label:   label,
		Kind:    kind,
		Element: id,
		Logical: r,
		Device:  ToDevice(r),
	}
}

// SetTop moves the control's logical top and recomputes the device rect.
func (c *Control) SetTop(top int) {
	c.Logical.Top = top
	c.Device = ToDevice(c.Logical)
}

// HasStyle reports whether the style list contains s (case-insensitive).
func (c *Control) HasStyle(s string) bool {
	for _, st := range c.Style {
		if strings.EqualFold(st, s) {
			return true
		}
	}
	return false
}

func (c *Control) IsButton() bool   { return c.Kind == KindButton }
func (c *Control) IsStatic() bool   { return c.Kind == KindStatic }
func (c *Control) IsGroupBox() bool { return c.Kind == KindGroupBox }

// Form is a single dialog with its ordered controls. It owns the slice; the
// sort pass reorders it in place.
type Form struct {
	Name     string
	Kind     FormKind
	Caption  string
	Logical  Rect
	Device   Rect
	Controls []Control
}

// NewForm builds a form with its device rect derived from r.
func NewForm(name string, kind FormKind, r Rect, controls ...Control) *Form {
	return &Form{
		Name:     name,
		Kind:     kind,
		Logical:  r,
		Device:   ToDevice(r),
		Controls: controls,
	}
}

// IsDialog reports whether standard-button detection applies to the form.
func (f *Form) IsDialog() bool { return f.Kind == FormDialog }
