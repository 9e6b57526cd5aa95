package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/rclayout/pkg/form"
	"github.com/matzehuels/rclayout/pkg/render/diagram"
)

// Render generates output artifacts for a layout in the requested formats.
func Render(ctx context.Context, l form.Layout, opts Options) (map[string][]byte, error) {
	tree, f, err := l.Tree()
	if err != nil {
		return nil, fmt.Errorf("rebuild tree: %w", err)
	}

	var dot string
	needDOT := func() string {
		if dot == "" {
			dot = diagram.ToDOT(tree, f, diagram.Options{Detailed: opts.Detailed})
		}
		return dot
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = form.MarshalLayout(l)
		case FormatDOT:
			data = []byte(needDOT())
		case FormatSVG:
			data, err = diagram.RenderSVG(ctx, needDOT())
		case FormatPNG:
			data, err = diagram.RenderPNG(ctx, needDOT())
		case FormatText:
			data = []byte(diagram.ToText(tree, f) + "\n")
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
