package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindscape/pkg/core/content"
	"github.com/matzehuels/mindscape/pkg/pipeline"
	"github.com/matzehuels/mindscape/pkg/session"
)

// exploreCommand creates the explore command for interactive toggling.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "explore [content]",
		Short: "Toggle mental models and details in a terminal UI",
		Long: `Toggle mental models and details in a terminal UI.

Every row is either an (anchor, mental model) pair that can be switched on or
off, or a mental model whose visualizations can be shown. Each toggle runs one
recompute and reports how many render entries were reused.

With -o the final render model is written as JSON on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the final render model to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, _, err := runner.Load(pipeline.Options{Content: input})
	if err != nil {
		return err
	}
	s, err := runner.Start(ctx, g)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(newExploreModel(ctx, s), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	m := final.(exploreModel)
	if output == "" || m.last == nil {
		return nil
	}
	if err := writeSnapshot(s, m.last, output); err != nil {
		return err
	}
	printFile(output)
	return nil
}

// =============================================================================
// exploreModel - Interactive toggle list
// =============================================================================

// exploreRow is one toggleable line: a mental model pair when anchor is set,
// a detail toggle otherwise.
type exploreRow struct {
	anchor string
	target string
}

func (r exploreRow) event(on bool) session.Event {
	if r.anchor == "" {
		return session.ToggleDetail{MentalModelID: r.target, On: on}
	}
	return session.ToggleMentalModel{AnchorID: r.anchor, MentalModelID: r.target, On: on}
}

// exploreRows lists every candidate pair in anchor order, followed by every
// mental model that has detail entities.
func exploreRows(g *content.Graph) []exploreRow {
	var rows []exploreRow
	seen := make(map[string]bool)
	var secondaries []string
	for _, a := range g.Anchors() {
		for _, sec := range g.Candidates(a) {
			rows = append(rows, exploreRow{anchor: a, target: sec})
			if !seen[sec] {
				seen[sec] = true
				secondaries = append(secondaries, sec)
			}
		}
	}
	for _, sec := range secondaries {
		if len(g.TertiariesOf(sec)) > 0 {
			rows = append(rows, exploreRow{target: sec})
		}
	}
	return rows
}

type exploreModel struct {
	ctx     context.Context
	session *session.Session
	rows    []exploreRow
	cursor  int
	offset  int
	height  int
	last    *session.Result
	err     error
}

func newExploreModel(ctx context.Context, s *session.Session) exploreModel {
	m := exploreModel{
		ctx:     ctx,
		session: s,
		rows:    exploreRows(s.Graph()),
		height:  15,
	}
	m.last, m.err = s.Render(ctx)
	return m
}

// isOn reports the current state of row i.
func (m exploreModel) isOn(i int) bool {
	r := m.rows[i]
	if r.anchor == "" {
		return m.session.Details().Has(r.target)
	}
	return m.session.Toggles().Has(r.anchor, r.target)
}

// visible reports whether id is in the last render model.
func (m exploreModel) visible(id string) bool {
	if m.last == nil {
		return false
	}
	return m.last.Model.Entity(id) != nil
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ":
			if len(m.rows) == 0 {
				return m, nil
			}
			ev := m.rows[m.cursor].event(!m.isOn(m.cursor))
			res, err := m.session.Apply(m.ctx, ev)
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.last = res
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.session.ID()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ toggle  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(StyleDim.Render("No anchor applies a mental model."))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.height, len(m.rows))
	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		kind, anchor := "model", r.anchor
		if r.anchor == "" {
			kind, anchor = "details", "—"
		}
		state := "off"
		if m.isOn(i) {
			state = "on"
		}
		shown := ""
		if m.visible(r.target) {
			shown = "✓"
		}
		rows = append(rows, []string{cursor, kind, anchor, r.target, state, shown})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Toggle", "Anchor", "Entity", "State", "Shown").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.offset + row
			if idx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if m.isOn(idx) {
				base = base.Foreground(colorGreen)
			} else {
				base = base.Foreground(colorGray)
			}
			if idx == m.cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))
	b.WriteString("\n\n")
	b.WriteString(m.footer())
	return b.String()
}

// footer summarizes the last recompute.
func (m exploreModel) footer() string {
	if m.err != nil {
		return styleIconError.Render(iconError) + " " + m.err.Error()
	}
	if m.last == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s\n",
		StyleNumber.Render(fmt.Sprintf("%d", len(m.last.Model.Entities))),
		StyleDim.Render("entities"),
		StyleDim.Render(m.last.Stats.String()))
	if len(m.last.Recalculated) > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("recalculated: %s", strings.Join(m.last.Recalculated, ", "))))
		b.WriteString("\n")
	}
	for _, err := range m.last.Rejected {
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}
