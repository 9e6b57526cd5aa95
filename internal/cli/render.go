package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rclayout/pkg/errors"
	"github.com/matzehuels/rclayout/pkg/form"
	"github.com/matzehuels/rclayout/pkg/pipeline"
)

// stdoutPath selects standard output instead of a file.
const stdoutPath = "-"

// renderCommand creates the render command for generating layout artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      formFlags
		output     string
		formatsStr string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "render [forms-file | layout.json]",
		Short: "Render layouts as JSON, DOT, SVG, PNG or text",
		Long: `Render layouts as JSON, DOT, SVG, PNG or text.

The input is either a forms document, which is laid out first, or a
.layout.json file written by 'layout'. Every requested format is written to
<base>.<ext>, with the form id appended to the base when several forms are
rendered. Use -o - to print a single artifact to standard output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			opts := flags.options(args[0])
			opts.Formats = formats
			opts.Detailed = detailed
			opts.Logger = c.Logger
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), opts, flags.noCache, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path, or - for stdout (default: input name)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, png, text (comma-separated)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show control rectangles in diagrams")
	flags.register(cmd)

	return cmd
}

// runRender produces artifacts for a forms document or a saved layout.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, opts pipeline.Options, noCache bool, output string) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	results, err := c.renderResults(ctx, runner, opts)
	if err != nil {
		return err
	}

	if output == stdoutPath {
		if len(results) != 1 || len(opts.Formats) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "-o - needs exactly one form and one format (got %d forms, %d formats)", len(results), len(opts.Formats))
		}
		_, err := stdout.Write(results[0].Artifacts[opts.Formats[0]])
		return err
	}

	base := basePath(output, opts.Input)
	multi := len(results) > 1
	printSuccess("Rendered %s", plural(len(results), "form"))
	for _, fr := range results {
		for _, format := range opts.Formats {
			path := artifactPath(base, fr.Form, format, multi)
			if err := os.WriteFile(path, fr.Artifacts[format], 0644); err != nil {
				return fmt.Errorf("write output %s: %w", path, err)
			}
			c.Logger.Debug("wrote artifact", "form", fr.Form, "format", format, "bytes", len(fr.Artifacts[format]))
			printFile(path)
		}
		printStats(fr.Stats.ControlCount, fr.Stats.ContainerCount, fr.CacheInfo.RenderHit)
	}
	return nil
}

// renderResults lays out a forms document, or loads a layout file, and
// renders the requested formats.
func (c *CLI) renderResults(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) ([]pipeline.FormResult, error) {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	defer spinner.Stop()

	if !strings.HasSuffix(opts.Input, layoutSuffix) {
		result, err := runner.Execute(ctx, opts)
		if err != nil {
			return nil, err
		}
		return result.Forms, nil
	}

	l, err := form.ReadLayoutFile(opts.Input)
	if err != nil {
		return nil, err
	}
	if !opts.Selected(l.Form) {
		return nil, errors.New(errors.ErrCodeFormNotFound, "%s holds form %q, not %s", opts.Input, l.Form, strings.Join(opts.Forms, ", "))
	}
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	fr := pipeline.FormResult{
		Form:      l.Form,
		Layout:    l,
		Artifacts: artifacts,
		CacheInfo: pipeline.CacheInfo{LayoutHit: true, RenderHit: hit},
	}
	fr.Stats.ControlCount = len(l.Controls)
	fr.Stats.ContainerCount = l.Root.Containers()
	return []pipeline.FormResult{fr}, nil
}
