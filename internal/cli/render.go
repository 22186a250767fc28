package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	commonFlags
	output    string  // output path; the format's extension is appended if missing
	format    string  // html, svg, json, dot, nodelink, pdf or png
	title     string  // HTML page title
	scale     float64 // PNG scale factor
	detailed  bool    // detailed labels in dot and nodelink output
	pickFocal bool    // choose the identified patient interactively
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [family.json]",
		Short: "Render a family as a genogram",
		Long: `Render a family as a genogram.

The input is the family JSON produced by the extractor, in the English
(persons, relationships) or Spanish (personas, relaciones) vocabulary.
Malformed JSON is repaired. Use "-" to read from stdin.

The default output is an interactive HTML page with zoom controls next to
the input file. Other formats: svg, json (layout export), dot, nodelink
(Graphviz view), pdf and png (these two need rsvg-convert).`,
		Example: `  genogram render family.json
  genogram render family.json -f svg -o out/garcia
  genogram render family.json --pick-focal --icons assets/icons`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd, args[0], flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: "+strings.Join(pipeline.Formats, ", ")+" (default: config or html)")
	cmd.Flags().StringVar(&flags.title, "title", "", "HTML page title")
	cmd.Flags().Float64Var(&flags.scale, "scale", 0, "PNG scale factor (default: config or 2)")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "detailed labels (dot, nodelink)")
	cmd.Flags().BoolVar(&flags.pickFocal, "pick-focal", false, "choose the identified patient interactively")

	return cmd
}

// renderOptions merges the configuration with the render flags.
func (c *CLI) renderOptions(flags renderFlags) pipeline.Options {
	opts := c.options(flags.commonFlags)
	if flags.format != "" {
		opts.Format = flags.format
	}
	if flags.title != "" {
		opts.Title = flags.title
	}
	if flags.scale != 0 {
		opts.Scale = flags.scale
	}
	opts.Detailed = flags.detailed
	return opts
}

// runRender decodes the input, optionally asks for the identified patient,
// and writes the document.
func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, input string, flags renderFlags) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	opts := c.renderOptions(flags)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := c.newRunner(flags.commonFlags)
	fam, err := readFamily(ctx, cmd, runner, input)
	if err != nil {
		return err
	}

	if flags.pickFocal {
		if input == "-" {
			return errors.New(errors.ErrCodeInvalidInput, "--pick-focal reads keys from stdin and cannot be combined with input \"-\"")
		}
		if len(fam.Persons) == 0 {
			return errors.Wrap(errors.ErrCodeInvalidInput, family.ErrNoPersons, "nothing to pick from")
		}
		id, err := pickFocal(cmd.InOrStdin(), cmd.ErrOrStderr(), fam)
		if err != nil {
			return err
		}
		if id != "" {
			opts.Focal = id
		}
	}

	output := flags.output
	if output == "" {
		output = defaultOutput(input)
		if opts.Format == pipeline.FormatJSON {
			output += ".layout" + pipeline.Extension(pipeline.FormatJSON)
		}
	}

	res, err := runner.WriteFile(ctx, fam, output, opts)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("render complete", "format", opts.Format)

	w := cmd.OutOrStdout()
	printSuccess(w, "Rendered genogram")
	printFile(w, res.Path)
	printStats(w, res.Stats.Persons, res.Stats.Relationships, res.Stats.Generations, string(res.Layout.Strategy))
	if n := len(res.Missing); n > 0 {
		printWarning(w, "%s not found (run with -v to list them)", plural(n, "icon"))
	}
	if res.Repairs.Repaired() {
		printWarning(w, "input was repaired: %d healed references, %d dropped relationships",
			len(res.Repairs.Healed), res.Repairs.Dropped+res.Repairs.Duplicates)
	}
	return nil
}

// describeFocal formats a person for the picker and the layout table.
func describeFocal(p family.Person) string {
	if p.Name == "" || p.Name == p.ID {
		return p.ID
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.ID)
}
