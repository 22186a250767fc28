package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/genogram/pkg/pipeline"
)

// dotCommand creates the dot command, which prints the Graphviz source of
// the normalized family graph.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		flags    commonFlags
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "dot [family.json]",
		Short: "Print the family as Graphviz DOT",
		Long: `Print the family as Graphviz DOT.

Persons become nodes ranked by generation, parent-child relationships
become edges, couples and twins become undirected links. Pipe the output
into dot(1) or use 'render -f nodelink' for an SVG.`,
		Example: `  genogram dot family.json | dot -Tpng > family.png`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDot(cmd.Context(), cmd, args[0], flags, output, detailed)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include age and conditions in node labels")

	return cmd
}

func (c *CLI) runDot(ctx context.Context, cmd *cobra.Command, input string, flags commonFlags, output string, detailed bool) error {
	runner := c.newRunner(flags)
	fam, err := readFamily(ctx, cmd, runner, input)
	if err != nil {
		return err
	}

	opts := c.options(flags)
	opts.Format = pipeline.FormatDOT
	opts.Detailed = detailed

	if output != "" {
		path, err := runner.RenderFile(ctx, fam, output, opts)
		if err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Wrote DOT source")
		printFile(cmd.OutOrStdout(), path)
		return nil
	}

	res, err := runner.Execute(ctx, fam, opts)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(res.Document)
	return err
}
