// Package diagram renders layout container trees for people to look at.
//
// # Usage
//
// Convert a tree to DOT, then render it with the embedded Graphviz:
//
//	dot := diagram.ToDOT(tree, form, diagram.Options{Detailed: true})
//	svg, err := diagram.RenderSVG(ctx, dot)
//	png, err := diagram.RenderPNG(ctx, dot)
//
// For terminals, [ToText] draws the same tree with box-drawing characters:
//
//	column box_sizer
//	├── row box_sizer_2
//	│   ├── static IDC_NAME_LABEL "Name:"
//	│   ╰── edit IDC_NAME
//	╰── stdbuttons std_buttons [OK Cancel]
//
// # Dependencies
//
// DOT rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process; no system install is needed. Text output uses
// [github.com/charmbracelet/lipgloss/tree].
package diagram
