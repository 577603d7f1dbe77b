// Package cli implements the gondoc command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pablor21/gondoc"
	"github.com/pablor21/gondoc/config"
	"github.com/pablor21/gondoc/diag"
	"github.com/pablor21/gondoc/logger"
	"github.com/pablor21/gondoc/types"
	"github.com/pablor21/gondoc/utils"
)

// ErrFailed is returned when diagnostics were reported. The diagnostics have
// already been printed, so callers only need to set the exit status.
var ErrFailed = errors.New("gondoc: errors reported")

type rootOptions struct {
	configPath     string
	logLevel       string
	color          string
	maxDiagnostics int
	jobs           int
	output         string
	prefix         string
}

// NewRootCommand builds the gondoc command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "gondoc",
		Short:         "Expose Go doc comments at runtime",
		Long:          "gondoc reads //documented: directives and generates accessors returning the doc comments of types, fields and enum constants.",
		Version:       GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "configuration file (default: .gondoc.{yml,yaml,toml,json} in the working directory)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug|info|warn|error|none)")
	pf.StringVar(&opts.color, "color", "", "colorize diagnostics (auto|always|never)")
	pf.IntVar(&opts.maxDiagnostics, "max-diagnostics", 0, "maximum number of diagnostics kept per package")
	pf.IntVar(&opts.jobs, "jobs", -1, "packages resolved in parallel (0 = GOMAXPROCS)")
	pf.StringVarP(&opts.output, "output", "o", "", "name of the generated file in each package")
	pf.StringVar(&opts.prefix, "prefix", "", "directive namespace")

	root.AddCommand(newGenerateCommand(opts))
	root.AddCommand(newCheckCommand(opts))
	root.AddCommand(newDumpCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, ErrFailed) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

// loadConfig layers the configuration file, the command line flags and the
// package arguments, in that order.
func (o *rootOptions) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	path := o.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}

	cfg := config.NewDefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := &config.Config{}
	if len(args) > 0 {
		flags.Packages = args
	}
	f := cmd.Flags()
	if f.Changed("log-level") {
		level := logger.LogLevel(o.logLevel)
		flags.LogLevel = &level
	}
	if f.Changed("color") {
		flags.Color = utils.Ptr(o.color)
	}
	if f.Changed("max-diagnostics") {
		flags.MaxDiagnostics = utils.Ptr(o.maxDiagnostics)
	}
	if f.Changed("jobs") {
		flags.Jobs = utils.Ptr(o.jobs)
	}
	if f.Changed("output") {
		flags.Output = utils.Ptr(o.output)
	}
	if f.Changed("prefix") {
		flags.Prefix = utils.Ptr(o.prefix)
	}

	cfg = config.Merge(cfg, flags)
	if len(args) > 0 {
		// Arguments resolve against the working directory.
		cfg.ConfigDir = ""
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newContext(cmd *cobra.Command, cfg *config.Config) *types.ProcessContext {
	level := utils.DerefPtr(cfg.LogLevel, logger.LogLevelInfo)
	return types.NewProcessContext(cfg, logger.NewLogger(level, cmd.ErrOrStderr()), nil)
}

// colorEnabled resolves the color setting against the diagnostics writer.
func colorEnabled(setting string, w io.Writer) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printDiagnostics writes the diagnostics of res to the command's stderr and
// returns ErrFailed when they hold errors, or warnings with strict set.
func printDiagnostics(cmd *cobra.Command, cfg *config.Config, res *gondoc.Result, strict bool) error {
	w := cmd.ErrOrStderr()
	bag := res.Diagnostics(utils.DerefPtr(cfg.MaxDiagnostics, 100))
	bag.Sort(res.Fset)
	diag.NewPrinter(res.Fset, colorEnabled(utils.DerefPtr(cfg.Color, "auto"), w)).PrintBag(w, bag)
	if bag.HasErrors() || (strict && bag.HasWarnings()) {
		return ErrFailed
	}
	return nil
}
