package layout

import (
	"testing"

	"github.com/matzehuels/rclayout/pkg/core/dialog"
	"github.com/matzehuels/rclayout/pkg/core/sizer"
)

func button(id, label string, left, top int) dialog.Control {
	return dialog.NewControl(id, label, dialog.KindButton, dialog.Rect{Left: left, Top: top, Width: 50, Height: 14})
}

func TestStdButtonFlag(t *testing.T) {
	tests := []struct {
		id, label string
		want      string
		ok        bool
	}{
		{"IDOK", "OK", "OK", true},
		{"IDOK", "&Save", "Save", true},
		{"1", "yes", "Yes", true},
		{"IDCANCEL", "Cancel", "Cancel", true},
		{"IDCANCEL", "&Close", "Close", true},
		{"IDC_APPLY", "Apply", "Apply", true},
		{"IDHELP", "&Help", "Help", true},
		{"wxID_OK", "OK", "OK", true},
		{"IDCANCEL", "Abort", "", false},
		{"IDC_GO", "OK", "", false},
		{"IDNO", "No", "", false},
	}
	for _, tt := range tests {
		c := button(tt.id, tt.label, 0, 0)
		got, ok := StdButtonFlag(&c)
		if got != tt.want || ok != tt.ok {
			t.Errorf("StdButtonFlag(%s, %q) = %q, %v; want %q, %v", tt.id, tt.label, got, ok, tt.want, tt.ok)
		}
	}

	static := dialog.NewControl("IDOK", "OK", dialog.KindStatic, dialog.Rect{})
	if _, ok := StdButtonFlag(&static); ok {
		t.Error("StdButtonFlag matched a static control")
	}
}

func TestDetectStdButtonsCloseDefault(t *testing.T) {
	closeBtn := button("IDCANCEL", "Close", 140, 80)
	closeBtn.Default = true
	f := dialog.NewForm("about", dialog.FormDialog, dialog.Rect{Width: 200, Height: 100},
		ctrl("text", dialog.KindStatic, 10, 10, 120, 8),
		closeBtn,
	)

	b := newBuilder(f)
	b.detectStdButtons()

	if b.tree.StdButtons == sizer.NoHandle {
		t.Fatal("standard button container not created")
	}
	std := b.tree.Get(b.tree.StdButtons)
	if !std.Buttons.Close || std.Buttons.OK || std.Buttons.Cancel {
		t.Errorf("Buttons = %+v, want only Close", std.Buttons)
	}
	if std.Buttons.Default != "Close" {
		t.Errorf("Default = %q, want Close", std.Buttons.Default)
	}
	if !std.Expand {
		t.Error("Expand = false, want true")
	}
	if !b.placed.has(1) {
		t.Error("close button not marked placed")
	}
	if b.placed.has(0) {
		t.Error("static text marked placed")
	}
}

func TestDetectStdButtonsSkipsPanels(t *testing.T) {
	f := dialog.NewForm("panel", dialog.FormPanel, dialog.Rect{Width: 200, Height: 100},
		button("IDOK", "OK", 10, 10),
	)
	b := newBuilder(f)
	b.detectStdButtons()
	if b.tree.StdButtons != sizer.NoHandle {
		t.Error("standard buttons detected on a panel")
	}
}

func TestDetectStdButtonsAccumulates(t *testing.T) {
	f := dialog.NewForm("dlg", dialog.FormDialog, dialog.Rect{Width: 200, Height: 100},
		button("IDOK", "OK", 30, 80),
		button("IDCANCEL", "Cancel", 90, 80),
		button("IDHELP", "Help", 150, 80),
		button("IDCANCEL", "Abort", 10, 10),
	)
	b := newBuilder(f)
	b.detectStdButtons()

	std := b.tree.Get(b.tree.StdButtons)
	if !std.Buttons.OK || !std.Buttons.Cancel || !std.Buttons.Help {
		t.Errorf("Buttons = %+v, want OK, Cancel and Help", std.Buttons)
	}
	if std.Buttons.Default != "" {
		t.Errorf("Default = %q, want empty", std.Buttons.Default)
	}
	if b.placed.has(3) {
		t.Error("Abort button was treated as standard")
	}
	if b.tree.Len() != 1 {
		t.Errorf("containers = %d, want 1", b.tree.Len())
	}
}
