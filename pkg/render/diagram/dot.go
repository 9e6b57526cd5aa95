package diagram

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rclayout/pkg/core/dialog"
	"github.com/matzehuels/rclayout/pkg/core/sizer"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds control rectangles (in dialog units) to control labels.
	Detailed bool
}

// ToDOT converts a container tree to Graphviz DOT. Containers become boxes,
// controls become rounded boxes and spacers become points; edges run from
// each container to its children in order.
func ToDOT(t *sizer.Tree, f *dialog.Form, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	spacers := 0
	t.Walk(func(h sizer.Handle, _ int) bool {
		c := t.Get(h)
		fmt.Fprintf(&buf, "  %q [%s];\n", containerID(h), strings.Join(containerAttrs(c, f), ", "))
		for _, ch := range c.Children {
			var id string
			switch ch.Kind {
			case sizer.ChildControl:
				id = controlID(ch.Control)
				fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled\", fillcolor=%s];\n",
					id, controlLabel(f.Controls[ch.Control], ch.Align, opts.Detailed), controlFill(f.Controls[ch.Control]))
			case sizer.ChildSpacer:
				spacers++
				id = fmt.Sprintf("s%d", spacers)
				fmt.Fprintf(&buf, "  %q [shape=point, width=0.08];\n", id)
			case sizer.ChildContainer:
				id = containerID(ch.Container)
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", containerID(h), id)
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func containerID(h sizer.Handle) string { return fmt.Sprintf("n%d", h) }
func controlID(i int) string            { return fmt.Sprintf("c%d", i) }

func containerAttrs(c *sizer.Container, f *dialog.Form) []string {
	attrs := []string{fmt.Sprintf("label=%q", ContainerLabel(c, f))}
	switch c.Kind {
	case sizer.KindGroupBox:
		attrs = append(attrs, "fillcolor=lightyellow")
	case sizer.KindGrid:
		attrs = append(attrs, "fillcolor=lightblue")
	case sizer.KindStdButtons:
		attrs = append(attrs, "fillcolor=lightgreen")
	default:
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	if c.Expand {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func controlFill(c dialog.Control) string {
	if c.IsButton() {
		return "honeydew"
	}
	return "white"
}

// ContainerLabel describes a container in one line, e.g. "grid grid_sizer
// (2 cols)" or "stdbuttons std_buttons [OK Cancel]".
func ContainerLabel(c *sizer.Container, f *dialog.Form) string {
	var b strings.Builder
	b.WriteString(c.Kind.String())
	b.WriteString(" ")
	b.WriteString(c.Name)
	switch c.Kind {
	case sizer.KindGrid:
		fmt.Fprintf(&b, " (%d cols)", c.Columns)
	case sizer.KindGroupBox:
		if c.Control >= 0 && c.Control < len(f.Controls) {
			fmt.Fprintf(&b, " %q", f.Controls[c.Control].Label)
		}
	case sizer.KindStdButtons:
		fmt.Fprintf(&b, " [%s]", strings.Join(c.Buttons.Names(), " "))
	}
	if c.Align != sizer.AlignNone {
		fmt.Fprintf(&b, " (%s)", c.Align)
	}
	return b.String()
}

func controlLabel(c dialog.Control, align sizer.Align, detailed bool) string {
	s := ControlLabel(c, align)
	if detailed {
		r := c.Logical
		s += fmt.Sprintf("\n%d,%d %dx%d", r.Left, r.Top, r.Width, r.Height)
	}
	return s
}

// ControlLabel describes a placed control, e.g. `edit IDC_NAME` or
// `static IDC_LABEL "Name:" (right)`.
func ControlLabel(c dialog.Control, align sizer.Align) string {
	name := c.Element
	if name == "" {
		name = c.ID
	}
	s := c.Kind.String() + " " + name
	if c.Label != "" {
		s += fmt.Sprintf(" %q", c.Label)
	}
	if align != sizer.AlignNone {
		s += " (" + align.String() + ")"
	}
	return s
}

// =============================================================================
// Graphviz Rendering
// =============================================================================

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
