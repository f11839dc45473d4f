package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vango-dev/domtree/internal/config"
	"github.com/vango-dev/domtree/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds the state shared by all commands.
type app struct {
	configPath  string
	noColor     bool
	errorFormat string

	cfg *config.Config
	log *zap.Logger
}

func main() {
	os.Exit(run(newRootCmd()))
}

// run executes cmd and reports a failure on its error stream in the style
// chosen with --error-format. It returns the exit code.
func run(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	name, _ := cmd.PersistentFlags().GetString("error-format")
	style, serr := errors.ParseStyle(name)
	if serr != nil {
		style = errors.StylePretty
	}
	errors.Fprint(cmd.ErrOrStderr(), err, style)
	return 1
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "domtree",
		Short: "Build, transform and render HTML trees",
		Long: `domtree renders HTML documents from markup, data and stylesheets.

Commands read markup from a file or stdin, inject content into
placeholders marked with data-content and data-each attributes,
and write HTML, Go source or CSS.

Settings are read from the nearest domtree.yaml unless --config
is given. Flags override the file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to domtree.yaml (default: nearest in parent directories)")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored error output")
	rootCmd.PersistentFlags().StringVar(&a.errorFormat, "error-format", string(errors.StylePretty), "Error report format (pretty, compact, json)")

	rootCmd.AddCommand(
		initCmd(a),
		renderCmd(a),
		tocodeCmd(a),
		cssCmd(a),
		versionCmd(),
	)

	return rootCmd
}

// setup loads the configuration and builds the logger.
func (a *app) setup() error {
	if a.noColor {
		errors.DisableColors()
	}
	if _, err := errors.ParseStyle(a.errorFormat); err != nil {
		return err
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	log, err := cfg.Logger()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	if cfg.Path() != "" {
		log.Debug("config loaded", zap.String("path", cfg.Path()))
	}
	return nil
}

// loadConfig honors --config, then the nearest domtree.yaml, then the
// defaults.
func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		return config.LoadFile(a.configPath)
	}
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		if de, ok := err.(*errors.DomError); ok && de.Code == "E161" {
			return config.New(), nil
		}
		return nil, err
	}
	return cfg, nil
}
