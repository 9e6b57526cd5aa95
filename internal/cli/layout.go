package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rclayout/pkg/pipeline"
)

// formFlags are the load and layout flags shared by layout, render and
// inspect.
type formFlags struct {
	forms        []string
	noCache      bool
	noStdButtons bool
	raw          bool
	refresh      bool
}

func (f *formFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.forms, "form", nil, "form id(s) to process (default: all)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.noStdButtons, "no-std-buttons", false, "lay out OK/Cancel/... like any other control")
	cmd.Flags().BoolVar(&f.raw, "raw", false, "skip id mapping and control fixups")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute layouts even when cached")
}

func (f *formFlags) options(input string) pipeline.Options {
	return pipeline.Options{
		Input:        input,
		Forms:        f.forms,
		NoStdButtons: f.noStdButtons,
		Raw:          f.raw,
		Refresh:      f.refresh,
	}
}

// layoutCommand creates the layout command for computing container trees.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  formFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [forms-file]",
		Short: "Compute sizer layouts from a forms document",
		Long: `Compute sizer layouts from a forms document.

The layout command reads a forms file (.json, .toml or .yaml) and builds the
container tree of every form. The output is <input>.layout.json (same format
as 'render -f json'); when several forms are laid out, each gets its own
<input>_<form>.layout.json.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or base path (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the forms, computes the layouts, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, flags formFlags, output string) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.options(input)
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layouts...")
	spinner.Start()
	prog := newProgress(c.Logger)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Laid out %s", plural(result.Stats.FormCount, "form")))

	base := basePath(output, input)
	multi := len(result.Forms) > 1
	printSuccess("Layout complete")
	for _, fr := range result.Forms {
		path := artifactPath(base, fr.Form, pipeline.FormatJSON, multi)
		if err := os.WriteFile(path, fr.Artifacts[pipeline.FormatJSON], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
		printStats(fr.Stats.ControlCount, fr.Stats.ContainerCount, fr.CacheInfo.LayoutHit)
	}
	printNewline()
	if len(result.Forms) > 0 {
		first := artifactPath(base, result.Forms[0].Form, pipeline.FormatJSON, multi)
		printNextStep("Render", appName+" render -f svg "+first)
	}
	return nil
}
