package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/pipeline"
)

// renderFlags holds the render-only flags of the render command.
type renderFlags struct {
	layoutFile  string
	output      string
	formats     string
	renderer    string
	scale       float64
	caption     bool
	interactive bool
	detailed    bool
	linkPrefix  string
}

// renderCommand creates the render command for producing diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		f  layoutFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [person]",
		Short: "Draw a family tree as SVG, PNG, PDF, JSON or DOT",
		Long: `Draw a family tree as SVG, PNG, PDF, JSON or DOT.

With --layout the tree is drawn from a layout.json written by 'layout' and no
dataset is read. Otherwise the tree is laid out around the person first.

PNG and PDF output of the tree renderer need rsvg-convert on the PATH; the
nodelink renderer draws through Graphviz instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(rf.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd, firstArg(args), &f, &rf, formats)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&rf.layoutFile, "layout", "", "draw from a layout.json instead of the dataset")
	flags.StringVarP(&rf.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	flags.StringVarP(&rf.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	flags.StringVarP(&rf.renderer, "renderer", "r", pipeline.RendererTree, "renderer: tree (default), nodelink")
	flags.Float64Var(&rf.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	flags.BoolVar(&rf.caption, "caption", true, "caption connection layouts with the relationship")
	flags.BoolVar(&rf.interactive, "interactive", false, "add hover styling to boxes")
	flags.BoolVar(&rf.detailed, "detailed", false, "show lifespans in nodelink diagrams")
	flags.StringVar(&rf.linkPrefix, "links", "", "link each box to <prefix><id>")
	c.addLayoutFlags(cmd, &f)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, focusRef string, f *layoutFlags, rf *renderFlags, formats []string) error {
	ctx := cmd.Context()

	var (
		g    *kinship.Graph
		doc  graph.Layout
		opts pipeline.Options
		base string
	)
	if rf.layoutFile != "" {
		var err error
		if doc, err = graph.ReadLayoutFile(rf.layoutFile); err != nil {
			return fmt.Errorf("load layout %s: %w", rf.layoutFile, err)
		}
		opts = c.defaultOptions()
		base = strings.TrimSuffix(strings.TrimSuffix(rf.layoutFile, filepath.Ext(rf.layoutFile)), ".layout")
	} else {
		var err error
		if g, err = c.loadGraph(ctx); err != nil {
			return err
		}
		if opts, err = c.resolve(cmd, g, focusRef, f); err != nil {
			return err
		}
		base = opts.Focus
	}

	opts.Formats = formats
	opts.Renderer = rf.renderer
	opts.Scale = rf.scale
	opts.Caption = rf.caption
	opts.Interactive = rf.interactive
	opts.Detailed = rf.detailed
	opts.LinkPrefix = rf.linkPrefix
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	layoutHit := true
	if g != nil {
		if doc, layoutHit, err = c.computeLayout(ctx, runner, g, opts); err != nil {
			return err
		}
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
	spinner.Start()
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, doc, g, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if rf.output == "-" {
		for _, format := range formats {
			if _, err := cmd.OutOrStdout().Write(artifacts[format]); err != nil {
				return err
			}
		}
		return nil
	}

	paths, err := writeArtifacts(artifacts, formats, basePath(rf.output, base))
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", doc.Focus)
	for _, p := range paths {
		printFile(p)
	}
	people := 0
	if g != nil {
		people = g.Len()
	}
	printStats(people, len(doc.Boxes), layoutHit && renderHit)
	return nil
}

// basePath derives the base output path. A known format extension on
// output is stripped; an empty output falls back to fallback.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes one file per format as base.format and returns the
// paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	var paths []string
	for _, format := range slices.Compact(slices.Clone(formats)) {
		path := base + "." + format
		out, err := openOutput(path)
		if err != nil {
			return paths, err
		}
		_, err = out.Write(artifacts[format])
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
