package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/relate"
)

// relateCommand creates the relate command for naming a relationship.
func (c *CLI) relateCommand() *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "relate <person> <person>",
		Short: "Name how two people are related",
		Long: `Name how two people are related.

The relationship follows the shortest chain of parent, child and spouse links
between the two people, for example "Ann Ash is the first cousin once removed
of Bob Ash".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context())
			if err != nil {
				return err
			}
			from, err := resolvePerson(g, args[0])
			if err != nil {
				return err
			}
			to, err := resolvePerson(g, args[1])
			if err != nil {
				return err
			}

			path, err := g.ShortestPath(from, to)
			if err != nil {
				return err
			}
			rel, err := relate.Translate(g, path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, rel)
			if showPath {
				fmt.Fprintln(out, StyleDim.Render(formatPath(g, path)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showPath, "path", "p", false, "print the chain of people")

	return cmd
}

// formatPath renders a path as "Ann Ash -P-> Carl Ash -C-> Bob Ash".
func formatPath(g *kinship.Graph, path *kinship.Path) string {
	var b strings.Builder
	for i, id := range path.IDs {
		if i > 0 {
			fmt.Fprintf(&b, " -%s-> ", path.Tags[i-1])
		}
		if p, ok := g.Person(id); ok {
			b.WriteString(p.DisplayName())
		} else {
			b.WriteString(id)
		}
	}
	return b.String()
}
