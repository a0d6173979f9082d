package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindscape/pkg/core/topology"
)

// relationshipKinds lists the kinds shown in the style table, in display order.
var relationshipKinds = []topology.Kind{
	topology.KindContains,
	topology.KindPrecedes,
	topology.KindApplies,
	topology.KindVisualizes,
	topology.KindRelates,
}

// rulesCommand creates the rules command that prints the topology registry.
func (c *CLI) rulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the topology rules registry",
		Long: `Print the topology rules registry.

Each row lists what a category may connect to, which visible parents it needs
before it can be rendered, what is removed together with it and which
topology events move it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := topology.DefaultRegistry()
			fmt.Println(StyleTitle.Render("Categories"))
			fmt.Println(rulesTable(reg))
			printNewline()
			fmt.Println(StyleTitle.Render("Relationships"))
			fmt.Println(stylesTable(reg))
			return nil
		},
	}
}

var headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// rulesTable renders one row per registered category.
func rulesTable(reg *topology.Registry) string {
	t := newTable("Category", "Role", "Physics", "Targets", "Parents", "Cascade", "Recalculate on")
	for _, cat := range reg.Categories() {
		r := reg.Rule(cat)
		physics := "fixed"
		if r.Physics {
			physics = "force"
			if r.IgnoresOverrides {
				physics += " (resets drags)"
			}
		}
		t.Row(
			string(cat),
			string(r.Role),
			physics,
			formatTargets(r.AllowedTargets),
			formatParents(r.RequiredParents),
			formatCascade(r.CascadeDelete),
			formatTriggers(r.RecalcTriggers),
		)
	}
	return t.Render()
}

// stylesTable renders the style derived from each relationship kind.
func stylesTable(reg *topology.Registry) string {
	t := newTable("Kind", "Stroke", "Animated", "Directed")
	for _, k := range relationshipKinds {
		s := reg.Style(k)
		t.Row(string(k), string(s.Stroke), yesNo(s.Animated), yesNo(s.Directed))
	}
	return t.Render()
}

func formatTargets(targets []topology.Target) string {
	parts := make([]string, len(targets))
	for i, tg := range targets {
		parts[i] = fmt.Sprintf("%s %s %s", iconArrow, tg.Category, StyleDim.Render("("+string(tg.Kind)+")"))
	}
	return orDash(parts)
}

func formatParents(reqs []topology.ParentRequirement) string {
	parts := make([]string, len(reqs))
	for i, req := range reqs {
		cats := make([]string, len(req.Categories))
		for j, c := range req.Categories {
			cats[j] = string(c)
		}
		kinds := make([]string, len(req.Kinds))
		for j, k := range req.Kinds {
			kinds[j] = string(k)
		}
		parts[i] = fmt.Sprintf("%s of %s via %s", req.Mode, strings.Join(cats, "|"), strings.Join(kinds, "|"))
	}
	return orDash(parts)
}

func formatCascade(rules []topology.CascadeRule) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = fmt.Sprintf("%s (%s)", r.Category, r.Kind)
	}
	return orDash(parts)
}

func formatTriggers(triggers []topology.Trigger) string {
	parts := make([]string, len(triggers))
	for i, tr := range triggers {
		parts[i] = string(tr)
	}
	return orDash(parts)
}

func orDash(parts []string) string {
	if len(parts) == 0 {
		return StyleDim.Render("—")
	}
	return strings.Join(parts, "\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return StyleDim.Render("no")
}
