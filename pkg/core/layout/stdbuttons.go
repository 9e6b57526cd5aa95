package layout

import (
	"strings"

	"github.com/matzehuels/rclayout/pkg/core/dialog"
	"github.com/matzehuels/rclayout/pkg/core/sizer"
)

var stdButtonPairs = []struct {
	id, label, flag string
}{
	{dialog.IDOK, "ok", "OK"},
	{dialog.IDOK, "save", "Save"},
	{dialog.IDOK, "yes", "Yes"},
	{dialog.IDCancel, "cancel", "Cancel"},
	{dialog.IDCancel, "close", "Close"},
	{dialog.IDApply, "apply", "Apply"},
	{dialog.IDHelp, "help", "Help"},
}

// StdButtonFlag returns the standard button flag c maps to. Both the id and
// the label must match; a Cancel button labelled "Abort" is not standard.
func StdButtonFlag(c *dialog.Control) (string, bool) {
	if !c.IsButton() {
		return "", false
	}
	id := dialog.StandardID(c.ID)
	label := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(c.Label, "&", "")))
	for _, p := range stdButtonPairs {
		if p.id == id && p.label == label {
			return p.flag, true
		}
	}
	return "", false
}

// detectStdButtons moves standard buttons into the tree's standard button
// container, creating it on the first match. Matched controls are marked
// placed and never reach the general assembly pass.
func (b *builder) detectStdButtons() {
	if !b.form.IsDialog() {
		return
	}
	for i := range b.ctrls {
		c := &b.ctrls[i]
		flag, ok := StdButtonFlag(c)
		if !ok || b.placed.has(i) {
			continue
		}
		if b.tree.StdButtons == sizer.NoHandle {
			h := b.tree.Add(sizer.KindStdButtons)
			b.tree.Get(h).Expand = true
			b.tree.StdButtons = h
		}
		std := b.tree.Get(b.tree.StdButtons)
		std.Buttons.Set(flag)
		if c.Default {
			std.Buttons.Default = flag
		}
		b.placed.mark(i)
		b.logger.Debug("standard button", "id", c.ID, "flag", flag)
	}
}
