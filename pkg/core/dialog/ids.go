package dialog

import (
	"strings"
	"unicode"
)

// Standard button identifiers.
const (
	IDOK     = "wxID_OK"
	IDCancel = "wxID_CANCEL"
	IDYes    = "wxID_YES"
	IDNo     = "wxID_NO"
	IDAbort  = "wxID_ABORT"
	IDClose  = "wxID_CLOSE"
	IDHelp   = "wxID_HELP"
	IDApply  = "wxID_APPLY"
)

var standardIDs = map[string]string{
	"IDOK":       IDOK,
	"1":          IDOK,
	"IDC_OK":     IDOK,
	"IDCANCEL":   IDCancel,
	"2":          IDCancel,
	"IDC_CANCEL": IDCancel,
	"IDYES":      IDYes,
	"6":          IDYes,
	"IDC_YES":    IDYes,
	"IDNO":       IDNo,
	"7":          IDNo,
	"IDC_NO":     IDNo,
	"IDABORT":    IDAbort,
	"3":          IDAbort,
	"IDCLOSE":    IDClose,
	"8":          IDClose,
	"IDC_CLOSE":  IDClose,
	"IDHELP":     IDHelp,
	"9":          IDHelp,
	"IDD_HELP":   IDHelp,
	"IDC_HELP":   IDHelp,
	"ID_HELP":    IDHelp,
	"IDC_APPLY":  IDApply,
}

// StandardID maps a resource identifier to its standard button id. Ids that
// are not standard are returned unchanged.
func StandardID(id string) string {
	id = strings.TrimSpace(id)
	if std, ok := standardIDs[id]; ok {
		return std
	}
	return id
}

// ConvertFormID turns a dialog resource id into a class name: quotes and the
// IDD_ prefix are stripped, numeric ids get an id_ prefix and upper-case
// snake ids become camel case ("IDD_FIND_REPLACE" -> "FindReplace").
func ConvertFormID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return id
	}
	var value string
	switch {
	case id[0] == '"':
		value = strings.Trim(id, `"`)
	case id[0] >= '0' && id[0] <= '9':
		value = "id_" + id
	default:
		value = id
	}
	value = strings.TrimRightFunc(value, unicode.IsSpace)
	value = strings.TrimPrefix(value, "IDD_")

	if len(value) < 2 || !unicode.IsUpper(rune(value[1])) {
		return value
	}

	var b strings.Builder
	b.WriteByte(value[0])
	upper := false
	for _, r := range value[1:] {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Normalize applies the control fixups the resource importer performs before
// layout: ids are mapped through StandardID, drop-down combo boxes get their
// closed height, and an auto-buddy spin control absorbs the edit control
// right before it. A DS_CONTROL style turns a dialog into a panel.
func (f *Form) Normalize(formStyle ...string) {
	for _, s := range formStyle {
		if strings.EqualFold(s, "DS_CONTROL") && f.Kind == FormDialog {
			f.Kind = FormPanel
		}
	}

	out := f.Controls[:0]
	for _, c := range f.Controls {
		c.ID = StandardID(c.ID)
		if c.Kind == KindCombo && !c.HasStyle("CBS_SIMPLE") {
			c.Logical.Height = ComboHeight
			c.Device = ToDevice(c.Logical)
		}
		if c.Kind == KindSpin && c.HasStyle("UDS_AUTOBUDDY") {
			if n := len(out); n > 0 && out[n-1].Kind == KindEdit {
				c.ID = out[n-1].ID
				c.Element = out[n-1].Element
				out = out[:n-1]
			}
		}
		out = append(out, c)
	}
	f.Controls = out
}

// ComboHeight is the layout height of a closed drop-down combo box.
const ComboHeight = 12
