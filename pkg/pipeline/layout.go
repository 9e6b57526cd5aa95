package pipeline

import (
	"github.com/matzehuels/rclayout/pkg/core/dialog"
	"github.com/matzehuels/rclayout/pkg/core/layout"
	"github.com/matzehuels/rclayout/pkg/form"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout converts f to the engine model, builds its container tree
// and returns the serialized result.
func GenerateLayout(f form.Form, opts Options) (form.Layout, error) {
	df, err := toDialog(f, opts)
	if err != nil {
		return form.Layout{}, err
	}

	var buildOpts []layout.Option
	if opts.Logger != nil {
		buildOpts = append(buildOpts, layout.WithLogger(opts.Logger.With("form", f.ID)))
	}
	if opts.NoStdButtons {
		buildOpts = append(buildOpts, layout.WithoutStdButtons())
	}
	tree := layout.Build(df, buildOpts...)
	return form.FromTree(tree, df), nil
}

func toDialog(f form.Form, opts Options) (*dialog.Form, error) {
	if opts.Raw {
		return f.ToDialogRaw()
	}
	return f.ToDialog()
}
