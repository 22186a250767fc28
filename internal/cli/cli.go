// Package cli implements the genogram command-line interface.
//
// The commands read a family description (the extractor's JSON, in the
// English or Spanish vocabulary, repaired if malformed) and drive the
// shared [pipeline.Runner]:
//
//   - render: write the genogram as HTML, SVG, JSON, DOT, PDF or PNG
//   - layout: print the generation table and optionally export positions
//   - dot: print the Graphviz source of the family graph
//   - serve: expose POST /v1/genograms over HTTP
//   - completion: generate shell completion scripts
//
// Defaults come from genogram.toml (see [Config]), environment variables
// override the file and flags override both. All commands support
// --verbose (-v) for debug logging; the logger travels in the command
// context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/genogram/pkg/buildinfo"
	"github.com/matzehuels/genogram/pkg/cache"
	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/family"
	"github.com/matzehuels/genogram/pkg/pipeline"
	"github.com/matzehuels/genogram/pkg/render/genogram/layout"
)

const appName = "genogram"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
	verbose    bool
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. Configuration is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Genogram draws family diagrams from structured family data",
		Long: `Genogram lays out a family (persons and their couple, parent-child and
twin relationships) generation by generation and draws it with the
standard genogram notation: squares and circles, couple bars, descent
lines, status marks and condition badges.`,
		Version:       buildinfo.Resolve().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := loadEnv(); err != nil {
				return err
			}
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $"+envConfig+" or ./"+defaultConfigFile+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Flags
// =============================================================================

// commonFlags are the pipeline options shared by render, layout and dot.
type commonFlags struct {
	focal    string
	strategy string
	icons    string
	style    string
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.focal, "focal", "", "person id (or name) to mark as identified patient")
	cmd.Flags().StringVar(&f.strategy, "layout", "", "layout strategy: auto (default), general, compact")
	cmd.Flags().StringVar(&f.icons, "icons", "", "icon directory (default: config or $"+envIcons+")")
	cmd.Flags().StringVar(&f.style, "style", "", "visual style (default: config or "+pipeline.DefaultStyle+")")
}

// options merges the configuration with the flags the user set.
func (c *CLI) options(f commonFlags) pipeline.Options {
	m := c.Config.Layout
	opts := pipeline.Options{
		Focal:   f.focal,
		Metrics: &m,
		Format:  c.Config.Render.Format,
		Style:   c.Config.Render.Style,
		Title:   c.Config.Render.Title,
		Scale:   c.Config.Render.Scale,
		Logger:  c.Logger,
	}
	if f.strategy != "" && f.strategy != "auto" {
		opts.Layout = layout.Strategy(f.strategy)
	}
	if f.style != "" {
		opts.Style = f.style
	}
	return opts
}

// newRunner creates a runner with a fresh icon cache over the flag or
// configured icon directory.
func (c *CLI) newRunner(f commonFlags) *pipeline.Runner {
	dir := f.icons
	if dir == "" {
		dir = c.Config.Render.Icons
	}
	return pipeline.NewRunner(cache.NewIconsDir(dir), c.Logger)
}

// =============================================================================
// Input Helpers
// =============================================================================

// readFamily reads and decodes the family at input; "-" reads stdin.
func readFamily(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner, input string) (family.Family, error) {
	var (
		data []byte
		err  error
	)
	if input == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return family.Family{}, errors.Wrap(errors.ErrCodeIO, err, "read stdin")
		}
	} else {
		data, err = os.ReadFile(input)
		if err != nil {
			if os.IsNotExist(err) {
				return family.Family{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", input)
			}
			return family.Family{}, errors.Wrap(errors.ErrCodeIO, err, "read %s", input)
		}
	}
	return runner.Parse(ctx, data)
}

// defaultOutput derives the output path from the input name, without an
// extension so the pipeline appends the format's.
func defaultOutput(input string) string {
	if input == "-" {
		return appName
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}
