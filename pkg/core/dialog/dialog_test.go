package dialog

import "testing"

func ctrl(kind Kind, left, top, width, height int) *Control {
	c := NewControl("", "", kind, Rect{Left: left, Top: top, Width: width, Height: height})
	return &c
}

func TestToDevice(t *testing.T) {
	tests := []struct {
		in   Rect
		want Rect
	}{
		{Rect{0, 0, 0, 0}, Rect{0, 0, 0, 0}},
		{Rect{4, 4, 4, 4}, Rect{7, 15, 7, 15}},
		{Rect{10, 10, 50, 14}, Rect{17, 37, 87, 52}},
		{Rect{-4, -4, 1, 1}, Rect{-7, -15, 1, 3}},
	}
	for _, tt := range tests {
		if got := ToDevice(tt.in); got != tt.want {
			t.Errorf("ToDevice(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestSetTopKeepsDeviceInStep(t *testing.T) {
	c := ctrl(KindEdit, 10, 10, 40, 12)
	c.SetTop(12)
	if c.Logical.Top != 12 {
		t.Fatalf("Logical.Top = %d, want 12", c.Logical.Top)
	}
	if c.Device != ToDevice(c.Logical) {
		t.Errorf("Device = %+v, want %+v", c.Device, ToDevice(c.Logical))
	}
}

func TestSameTop(t *testing.T) {
	tests := []struct {
		name  string
		a, b  *Control
		loose bool
		want  bool
	}{
		{"equal", ctrl(KindEdit, 0, 10, 1, 1), ctrl(KindEdit, 0, 10, 1, 1), false, true},
		{"loose below", ctrl(KindEdit, 0, 12, 1, 1), ctrl(KindEdit, 0, 10, 1, 1), true, true},
		{"loose above", ctrl(KindEdit, 0, 9, 1, 1), ctrl(KindEdit, 0, 10, 1, 1), true, true},
		{"loose too far", ctrl(KindEdit, 0, 13, 1, 1), ctrl(KindEdit, 0, 10, 1, 1), true, false},
		{"strict edit", ctrl(KindEdit, 0, 12, 1, 1), ctrl(KindEdit, 0, 10, 1, 1), false, false},
		{"label lower", ctrl(KindStatic, 0, 12, 1, 1), ctrl(KindEdit, 0, 10, 1, 1), false, true},
		{"label one lower", ctrl(KindStatic, 0, 11, 1, 1), ctrl(KindEdit, 0, 10, 1, 1), false, true},
		{"label higher", ctrl(KindStatic, 0, 8, 1, 1), ctrl(KindEdit, 0, 10, 1, 1), false, false},
		{"reverse direction", ctrl(KindEdit, 0, 10, 1, 1), ctrl(KindStatic, 0, 12, 1, 1), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameTop(tt.a, tt.b, tt.loose); got != tt.want {
				t.Errorf("SameTop() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSameRight(t *testing.T) {
	a := ctrl(KindEdit, 10, 0, 40, 10)
	if !SameRight(a, ctrl(KindButton, 10, 30, 40, 10)) {
		t.Error("SameRight() = false for identical edges")
	}
	if SameRight(a, ctrl(KindButton, 10, 30, 41, 10)) {
		t.Error("SameRight() = true for different right edge")
	}
	if SameRight(a, ctrl(KindButton, 11, 30, 39, 10)) {
		t.Error("SameRight() = true for different left edge")
	}
}

func TestSameLeft(t *testing.T) {
	a := ctrl(KindEdit, 10, 0, 40, 10)
	if !SameLeft(a, ctrl(KindButton, 11, 30, 40, 10)) {
		t.Error("SameLeft() = false for lefts one unit apart")
	}
	if SameLeft(a, ctrl(KindButton, 13, 30, 40, 10)) {
		t.Error("SameLeft() = true for lefts beyond Fudge in device units")
	}
}

func TestWithinVerticalAndContains(t *testing.T) {
	box := ctrl(KindGroupBox, 5, 5, 100, 50)
	inside := ctrl(KindEdit, 10, 10, 40, 12)
	beside := ctrl(KindEdit, 120, 10, 40, 12)
	below := ctrl(KindEdit, 10, 50, 40, 12)

	if !WithinVertical(inside, box) || !Contains(box, inside) {
		t.Error("inside control not contained")
	}
	if !WithinVertical(beside, box) {
		t.Error("beside control not within vertical span")
	}
	if Contains(box, beside) {
		t.Error("beside control reported as contained")
	}
	if WithinVertical(below, box) {
		t.Error("below control reported within vertical span")
	}
}

func TestIsInRange(t *testing.T) {
	for _, tt := range []struct {
		a, b int
		want bool
	}{
		{10, 10, true}, {10, 13, true}, {13, 10, true}, {10, 14, false}, {-2, 1, true},
	} {
		if got := IsInRange(tt.a, tt.b); got != tt.want {
			t.Errorf("IsInRange(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"button": KindButton, "PUSHBUTTON": KindButton, "LTEXT": KindStatic,
		"groupbox": KindGroupBox, "EditText": KindEdit, "combobox": KindCombo,
	} {
		got, ok := ParseKind(in)
		if !ok || got != want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := ParseKind("widget"); ok {
		t.Error("ParseKind(widget) succeeded")
	}
}

func TestStandardID(t *testing.T) {
	for in, want := range map[string]string{
		"IDOK": IDOK, "1": IDOK, "IDCANCEL": IDCancel, "2": IDCancel,
		"IDC_APPLY": IDApply, "ID_HELP": IDHelp, "8": IDClose,
		"wxID_OK": IDOK, "IDC_NAME": "IDC_NAME",
	} {
		if got := StandardID(in); got != want {
			t.Errorf("StandardID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConvertFormID(t *testing.T) {
	for in, want := range map[string]string{
		"IDD_FIND_REPLACE": "FindReplace",
		"IDD_ABOUTBOX":     "Aboutbox",
		`"MyDialog"`:       "MyDialog",
		"101":              "id_101",
		"Settings":         "Settings",
		"":                 "",
	} {
		if got := ConvertFormID(in); got != want {
			t.Errorf("ConvertFormID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	edit := NewControl("IDC_COUNT", "", KindEdit, Rect{10, 10, 40, 12})
	spin := NewControl("IDC_SPIN", "", KindSpin, Rect{50, 10, 10, 12})
	spin.Style = []string{"UDS_AUTOBUDDY"}
	combo := NewControl("IDC_PICK", "", KindCombo, Rect{10, 30, 60, 80})
	simple := NewControl("IDC_LIST", "", KindCombo, Rect{80, 30, 60, 80})
	simple.Style = []string{"CBS_SIMPLE"}
	ok := NewControl("IDOK", "OK", KindButton, Rect{10, 60, 50, 14})

	f := NewForm("IDD_TEST", FormDialog, Rect{0, 0, 200, 100}, edit, spin, combo, simple, ok)
	f.Normalize("DS_CONTROL")

	if f.Kind != FormPanel {
		t.Errorf("Kind = %v, want panel", f.Kind)
	}
	if len(f.Controls) != 4 {
		t.Fatalf("len(Controls) = %d, want 4", len(f.Controls))
	}
	if f.Controls[0].Kind != KindSpin || f.Controls[0].ID != "IDC_COUNT" {
		t.Errorf("spin = %+v, want id IDC_COUNT", f.Controls[0])
	}
	if f.Controls[1].Logical.Height != ComboHeight {
		t.Errorf("combo height = %d, want %d", f.Controls[1].Logical.Height, ComboHeight)
	}
	if f.Controls[2].Logical.Height != 80 {
		t.Errorf("simple combo height = %d, want 80", f.Controls[2].Logical.Height)
	}
	if f.Controls[3].ID != IDOK {
		t.Errorf("ok id = %q, want %q", f.Controls[3].ID, IDOK)
	}
}
