package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/layout"
	"github.com/kinview/kinview/pkg/pipeline"
)

// layoutFlags are the flags shared by every command that builds a layout.
type layoutFlags struct {
	opts    pipeline.Options
	target  string
	noCache bool
}

func (c *CLI) addLayoutFlags(cmd *cobra.Command, f *layoutFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.opts.Style, "style", "s", "", "layout style: standard, subtree, pedigree, connection (default from config)")
	flags.StringVar(&f.target, "to", "", "second person of a connection layout (implies --style connection)")
	flags.IntVarP(&f.opts.Generations, "generations", "g", -1, "generations to show (default from config)")
	flags.IntVar(&f.opts.Zoom, "zoom", 0, "font zoom steps, negative to shrink")
	flags.BoolVar(&f.opts.Compact, "compact", false, "hide vital details in boxes")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	flags.BoolVar(&f.opts.Refresh, "refresh", false, "recompute even when cached")
}

// resolve merges the flags over the config defaults and resolves person
// references against g.
func (c *CLI) resolve(cmd *cobra.Command, g *kinship.Graph, focusRef string, f *layoutFlags) (pipeline.Options, error) {
	opts := c.defaultOptions()
	flags := cmd.Flags()
	if flags.Changed("style") {
		opts.Style = f.opts.Style
	}
	if flags.Changed("generations") {
		opts.Generations = f.opts.Generations
	}
	if flags.Changed("zoom") {
		opts.Zoom = f.opts.Zoom
	}
	if flags.Changed("compact") {
		opts.Compact = f.opts.Compact
	}
	opts.Refresh = f.opts.Refresh

	focus, err := resolvePerson(g, focusRef)
	if err != nil {
		return opts, err
	}
	opts.Focus = focus
	if f.target != "" {
		target, err := resolvePerson(g, f.target)
		if err != nil {
			return opts, err
		}
		opts.Target = target
		if !flags.Changed("style") {
			opts.Style = layout.StyleConnection.String()
		}
	}
	if err := c.applyMeasurer(&opts); err != nil {
		return opts, err
	}
	return opts, opts.ValidateForLayout()
}

// layoutCommand creates the layout command for computing positioned documents.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		f      layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [person]",
		Short: "Compute a positioned tree around a person",
		Long: `Compute a positioned tree around a person.

The person is an id, a full name or a unique part of a name; it defaults to the
dataset's initial person. The output is a layout.json document (same format as
'render -f json' without person details) that 'render --layout' can draw.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, firstArg(args), &f, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <person>.layout.json)")
	c.addLayoutFlags(cmd, &f)

	return cmd
}

// runLayout loads the dataset, computes the layout, and writes output.
func (c *CLI) runLayout(cmd *cobra.Command, focusRef string, f *layoutFlags, output string) error {
	ctx := cmd.Context()
	g, err := c.loadGraph(ctx)
	if err != nil {
		return err
	}
	opts, err := c.resolve(cmd, g, focusRef, f)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	doc, cacheHit, err := c.computeLayout(ctx, runner, g, opts)
	if err != nil {
		return err
	}

	if output == "" {
		output = opts.Focus + ".layout.json"
	}
	if err := graph.WriteLayoutFile(doc, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(g.Len(), len(doc.Boxes), cacheHit)
	if doc.Relation != "" {
		printDetail("%s", doc.Relation)
	}
	printNextStep("Render", appName+" render --layout "+output)

	return nil
}

func (c *CLI) computeLayout(ctx context.Context, runner *pipeline.Runner, g *kinship.Graph, opts pipeline.Options) (graph.Layout, bool, error) {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Style))
	spinner.Start()

	doc, cacheHit, err := runner.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return graph.Layout{}, false, fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return graph.Layout{}, false, ctx.Err()
	}
	return doc, cacheHit, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
