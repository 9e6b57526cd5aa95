package diagram

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/rclayout/pkg/core/dialog"
	"github.com/matzehuels/rclayout/pkg/core/sizer"
)

var (
	styleContainer = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	styleControl   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleSpacer    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleBranch    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginRight(1)
)

// ToText renders a container tree as an indented terminal tree. Colors are
// only emitted when the output is a color-capable terminal.
func ToText(t *sizer.Tree, f *dialog.Form) string {
	if t.Root == sizer.NoHandle {
		return ""
	}
	return textNode(t, f, t.Root).String()
}

func textNode(t *sizer.Tree, f *dialog.Form, h sizer.Handle) *tree.Tree {
	c := t.Get(h)
	node := tree.Root(styleContainer.Render(ContainerLabel(c, f))).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styleBranch)
	for _, ch := range c.Children {
		switch ch.Kind {
		case sizer.ChildControl:
			node.Child(styleControl.Render(ControlLabel(f.Controls[ch.Control], ch.Align)))
		case sizer.ChildSpacer:
			node.Child(styleSpacer.Render("spacer"))
		case sizer.ChildContainer:
			node.Child(textNode(t, f, ch.Container))
		}
	}
	return node
}
