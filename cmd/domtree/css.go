package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/domtree/internal/errors"
)

func cssCmd(a *app) *cobra.Command {
	var (
		pretty bool
		minify bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "css [file.yaml]",
		Short: "Compile a YAML stylesheet to CSS",
		Long: `Compile nested style rules written in YAML to CSS.

Nested mappings become descendant selectors, "&" refers to the
parent selector and comma lists are combined pairwise.

Examples:
  domtree css site.yaml
  domtree css site.yaml --minify -o site.css`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.ResolvePath(a.cfg.CSS.File)
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return errors.New("E170").
					WithDetail("no stylesheet given").
					WithSuggestion("Pass a file or set css.file in domtree.yaml")
			}
			rules, err := loadStylesheet(path)
			if err != nil {
				return err
			}

			out := rules.Render(pretty)
			if minify {
				if out, err = rules.Minify(); err != nil {
					return err
				}
			}
			return writeOutput(cmd, output, []byte(out))
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "One declaration per line")
	cmd.Flags().BoolVar(&minify, "minify", false, "Minify the output")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
