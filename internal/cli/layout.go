package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/family/generation"
	"github.com/matzehuels/genogram/pkg/pipeline"
)

// layoutCommand creates the layout command, which shows how a family is
// split into generations without drawing it.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  commonFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [family.json]",
		Short: "Show the generations and layout strategy of a family",
		Long: `Show the generations and layout strategy of a family.

The layout command normalizes the family, assigns generations and
computes positions, then prints one table row per generation with its
couples and single persons. With --output the computed layout (positions,
generations, couples and edges) is also written as JSON, the same format
as 'render -f json'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd, args[0], flags, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the layout JSON to this file")

	return cmd
}

// runLayout computes the layout and prints the generation table.
func (c *CLI) runLayout(ctx context.Context, cmd *cobra.Command, input string, flags commonFlags, output string) error {
	runner := c.newRunner(flags)
	fam, err := readFamily(ctx, cmd, runner, input)
	if err != nil {
		return err
	}

	opts := c.options(flags)
	opts.Format = pipeline.FormatJSON

	var res *pipeline.Result
	if output != "" {
		res, err = runner.WriteFile(ctx, fam, output, opts)
	} else {
		res, err = runner.Layout(ctx, fam, opts)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, generationTable(res.Family, res.Generations))
	printKeyValue(w, "Assignment", assignmentLabel(res.Family, res.Generations))
	printKeyValue(w, "Layout", string(res.Layout.Strategy))
	width, height := res.Layout.Extent()
	printKeyValue(w, "Size", fmt.Sprintf("%.0f × %.0f", width, height))
	if res.Path != "" {
		printFile(w, res.Path)
	}
	printNextStep(w, "Render", appName+" render "+input)
	return nil
}

// generationTable renders one row per generation: its index, its groups
// (couples joined with "+", groups separated by "|") and the person count.
func generationTable(f family.Family, gen generation.Result) string {
	names := make(map[string]string, len(f.Persons))
	for _, p := range f.Persons {
		names[p.ID] = p.Name
		if p.Name == "" {
			names[p.ID] = p.ID
		}
	}

	rows := make([][]string, 0, len(gen.Levels))
	for i, lvl := range gen.Levels {
		groups := make([]string, len(lvl))
		for j, g := range lvl {
			members := make([]string, len(g))
			for k, id := range g {
				members[k] = names[id]
			}
			groups[j] = strings.Join(members, " + ")
		}
		rows = append(rows, []string{strconv.Itoa(i), strings.Join(groups, " | "), strconv.Itoa(len(gen.IDs(i)))})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Gen", "Groups", "Persons").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Render()
}

func assignmentLabel(f family.Family, gen generation.Result) string {
	if gen.Strategy != generation.StrategyFocal {
		return string(gen.Strategy)
	}
	if p, ok := f.Person(gen.Focal); ok {
		return fmt.Sprintf("%s, identified patient %s", gen.Strategy, describeFocal(p))
	}
	return string(gen.Strategy)
}
