package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/relate"
)

// indexCommand lists everyone grouped by surname.
func (c *CLI) indexCommand() *cobra.Command {
	var surname string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "List everyone grouped by surname",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context())
			if err != nil {
				return err
			}
			groups := g.SurnameIndex()
			if surname != "" {
				groups = filterSurname(groups, surname)
				if len(groups) == 0 {
					printInfo("No one with surname %s", surname)
					return nil
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderIndex(groups))
			return nil
		},
	}

	cmd.Flags().StringVar(&surname, "surname", "", "only list this surname")

	return cmd
}

func filterSurname(groups []kinship.SurnameGroup, surname string) []kinship.SurnameGroup {
	var out []kinship.SurnameGroup
	for _, grp := range groups {
		if strings.EqualFold(grp.Surname, surname) {
			out = append(out, grp)
		}
	}
	return out
}

// renderIndex draws the surname index as a lipgloss table.
func renderIndex(groups []kinship.SurnameGroup) string {
	var rows [][]string
	var sexes []kinship.Sex
	for _, grp := range groups {
		for i, p := range grp.People {
			surname := ""
			if i == 0 {
				surname = grp.Surname
			}
			rows = append(rows, []string{surname, p.DisplayName(), strings.TrimSpace(p.Lifespan()), p.ID})
			sexes = append(sexes, p.Sex)
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Surname", "Name", "Lifespan", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan).Bold(true)
			case col == 1 && row < len(sexes):
				return base.Inherit(styleSex(sexes[row]))
			}
			return base.Foreground(colorDim)
		})
	return t.Render()
}

// birthdaysCommand lists living people's birthdays through the year.
func (c *CLI) birthdaysCommand() *cobra.Command {
	var month int

	cmd := &cobra.Command{
		Use:   "birthdays",
		Short: "List the birthdays of living people",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12, got %d", month)
			}
			g, err := c.loadGraph(cmd.Context())
			if err != nil {
				return err
			}

			tw := tablewriter.NewWriter(cmd.OutOrStdout())
			tw.Header("Date", "Name", "Born", "ID")
			for _, b := range g.Birthdays() {
				if month != 0 && b.Month != month {
					continue
				}
				if err := tw.Append(b.Date, b.Person.DisplayName(), b.Person.Birth.String(), b.Person.ID); err != nil {
					return err
				}
			}
			return tw.Render()
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "only list this month (1-12)")

	return cmd
}

// lineageCommand lists a person's descendants by generation.
func (c *CLI) lineageCommand() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "lineage [person]",
		Short: "List a person's descendants by generation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolvePerson(g, firstArg(args))
			if err != nil {
				return err
			}
			for _, line := range lineage(g, id, depth) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 3, "generations to descend")

	return cmd
}

// lineage returns one line per descendant of id within depth generations,
// indented by generation and labelled with the descendant term.
func lineage(g *kinship.Graph, id string, depth int) []string {
	root, ok := g.Person(id)
	if !ok {
		return nil
	}
	lines := []string{root.DisplayName() + root.Lifespan()}
	seen := map[string]bool{id: true}

	var walk func(id string, gen int)
	walk = func(id string, gen int) {
		if gen > depth {
			return
		}
		for _, kid := range g.Children(id) {
			if seen[kid] {
				continue
			}
			seen[kid] = true
			p, ok := g.Person(kid)
			if !ok {
				continue
			}
			term := relate.DescendantTerm(gen, p.Sex)
			lines = append(lines, fmt.Sprintf("%s%s%s (%s)", strings.Repeat("  ", gen), p.DisplayName(), p.Lifespan(), term))
			walk(kid, gen+1)
		}
	}
	walk(id, 1)
	return lines
}
