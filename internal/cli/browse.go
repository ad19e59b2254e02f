package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/layout"
	"github.com/kinview/kinview/pkg/pipeline"
	"github.com/kinview/kinview/pkg/relate"
	"github.com/kinview/kinview/pkg/session"
)

// Navigator styles
var (
	browseCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	browseFocusStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	browseDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	browseErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// browseStyles are the styles tab cycles through.
var browseStyles = []layout.Style{layout.StyleStandard, layout.StyleSubtree, layout.StylePedigree}

// browseCommand opens the terminal navigator.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		style  string
		resume bool
	)

	cmd := &cobra.Command{
		Use:   "browse [person]",
		Short: "Walk the family tree in the terminal",
		Long: `Walk the family tree in the terminal.

Arrow keys, wasd or hjkl move between people; 1-9 pick a spouse; enter
refocuses the tree on the selected person and backspace returns to the
previous focus. Tab cycles the layout style. The last focus is remembered
per dataset.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := c.loadGraph(ctx)
			if err != nil {
				return err
			}
			hash, err := pipeline.DatasetHash(g)
			if err != nil {
				return err
			}

			store, err := session.NewFileStore("")
			if err != nil {
				return err
			}
			if err := store.Cleanup(ctx); err != nil {
				c.Logger.Debug("session cleanup failed", "dir", store.Path(), "err", err)
			}
			key := hash[:16]
			var sess *session.Session
			switch {
			case !resume:
				if err := store.Delete(ctx, key); err != nil {
					c.Logger.Warn("could not forget saved session", "err", err)
				}
			case len(args) == 0:
				if sess, err = store.Get(ctx, key); err != nil {
					c.Logger.Warn("ignoring saved session", "err", err)
				}
			}
			if sess == nil || !g.Has(sess.Focus) {
				focus, err := resolvePerson(g, firstArg(args))
				if err != nil {
					return err
				}
				sess = session.New(key, focus, session.DefaultTTL)
			}
			if style != "" {
				sess.Style = style
			}

			opts := c.defaultOptions()
			if err := c.applyMeasurer(&opts); err != nil {
				return err
			}
			m, err := newBrowseModel(g, opts, sess)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(browseModel); ok {
				fm.sess.Extend(session.DefaultTTL)
				if err := store.Set(ctx, fm.sess); err != nil {
					c.Logger.Warn("session not saved", "err", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", "", "initial layout style")
	cmd.Flags().BoolVar(&resume, "resume", true, "resume from the last saved focus (false forgets it)")

	return cmd
}

// =============================================================================
// browseModel - Interactive tree navigation
// =============================================================================

type browseModel struct {
	graph  *kinship.Graph
	opts   pipeline.Options
	sess   *session.Session
	live   *layout.Layout
	doc    graph.Layout
	cursor string
	notice string
	err    error
}

func newBrowseModel(g *kinship.Graph, opts pipeline.Options, sess *session.Session) (browseModel, error) {
	m := browseModel{graph: g, opts: opts, sess: sess}
	if sess.Style != "" {
		m.opts.Style = sess.Style
	}
	if err := m.relayout(); err != nil {
		return m, err
	}
	return m, nil
}

// relayout rebuilds the layout around the session focus and puts the
// cursor on it.
func (m *browseModel) relayout() error {
	opts := m.opts
	opts.Focus = m.sess.Focus
	opts.Target = ""
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}
	live, err := pipeline.BuildLayout(m.graph, opts)
	if err != nil {
		return err
	}
	doc, err := graph.FromLayout(live)
	if err != nil {
		return err
	}
	m.opts.Style = opts.Style
	m.sess.Style = opts.Style
	m.live, m.doc, m.cursor = live, doc, opts.Focus
	return nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.notice = ""

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		prev := m.sess.Focus
		m.sess.Visit(m.cursor)
		m.apply(prev)
	case "backspace", "b":
		prev := m.sess.Focus
		if !m.sess.Back() {
			m.notice = "no earlier focus"
			return m, nil
		}
		m.apply(prev)
	case "tab":
		cur, _ := layout.ParseStyle(m.opts.Style)
		i := (slices.Index(browseStyles, cur) + 1) % len(browseStyles)
		prevStyle := m.opts.Style
		m.opts.Style = browseStyles[i].String()
		if err := m.relayout(); err != nil {
			m.opts.Style = prevStyle
			m.fail(err)
		}
	default:
		dir, err := layout.ParseDirection(key.String())
		if err != nil {
			return m, nil
		}
		next, ok := layout.Navigate(m.live, m.cursor, dir)
		if !ok {
			m.notice = "no one " + string(dir)
			return m, nil
		}
		m.cursor = next
	}
	return m, nil
}

// apply relayouts after a focus change, restoring prev when that fails.
func (m *browseModel) apply(prev string) {
	if err := m.relayout(); err != nil {
		m.sess.Focus = prev
		m.fail(err)
	}
}

// fail records err: fatal errors stay on screen, others show once.
func (m *browseModel) fail(err error) {
	if errors.IsFatal(err) {
		m.err = err
		return
	}
	m.notice = errors.UserMessage(err)
}

func (m browseModel) View() string {
	var b strings.Builder

	focus, _ := m.graph.Person(m.sess.Focus)
	b.WriteString(StyleTitle.Render(focus.DisplayName()))
	b.WriteString(browseDimStyle.Render(fmt.Sprintf("  %s · %d shown", m.opts.Style, len(m.doc.Boxes))))
	b.WriteString("\n\n")

	for _, row := range generationRows(m.doc.Boxes) {
		names := make([]string, len(row))
		for i, box := range row {
			switch {
			case box.ID == m.cursor:
				names[i] = browseCursorStyle.Render(box.Name)
			case box.Focus:
				names[i] = browseFocusStyle.Render(box.Name)
			default:
				names[i] = styleSex(kinship.Sex(box.Sex)).Render(box.Name)
			}
		}
		fmt.Fprintf(&b, "%s  %s\n", browseDimStyle.Render(fmt.Sprintf("%+3d", row[0].Generation)), strings.Join(names, "   "))
	}

	b.WriteString("\n")
	b.WriteString(m.details())

	if m.err != nil {
		b.WriteString("\n" + browseErrorStyle.Render(errors.UserMessage(m.err)) + "\n")
	} else if m.notice != "" {
		b.WriteString("\n" + StyleWarning.Render(m.notice) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("arrows/wasd/hjkl move  1-9 spouse  ⏎ focus  ⌫ back  tab style  q quit"))
	return b.String()
}

// details describes the person under the cursor.
func (m browseModel) details() string {
	p, ok := m.graph.Person(m.cursor)
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleHighlight.Render(p.DisplayName()) + browseDimStyle.Render(p.Lifespan()) + "\n")
	if s := p.Birth.String(); s != "" {
		b.WriteString(browseDimStyle.Render("  born ") + s + "\n")
	}
	if s := p.Death.String(); s != "" {
		b.WriteString(browseDimStyle.Render("  died ") + s + "\n")
	}
	if m.cursor != m.sess.Focus {
		if path, err := m.graph.ShortestPath(m.cursor, m.sess.Focus); err == nil {
			if rel, err := relate.Translate(m.graph, path); err == nil {
				b.WriteString("  " + rel + "\n")
			}
		}
	}
	return b.String()
}

// generationRows groups boxes by generation, oldest first, left to right.
func generationRows(boxes []graph.Box) [][]graph.Box {
	sorted := slices.Clone(boxes)
	slices.SortStableFunc(sorted, func(a, b graph.Box) int {
		if c := cmp.Compare(a.Generation, b.Generation); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})

	var rows [][]graph.Box
	for _, box := range sorted {
		if n := len(rows); n > 0 && rows[n-1][0].Generation == box.Generation {
			rows[n-1] = append(rows[n-1], box)
			continue
		}
		rows = append(rows, []graph.Box{box})
	}
	return rows
}
