package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/domtree/internal/templates"
)

func initCmd(a *app) *cobra.Command {
	var (
		template string
		title    string
		lang     string
		pretty   bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a domtree project",
		Long: `Create a domtree.yaml and starter files in dir (default: the
current directory). Existing files are never overwritten.

Templates:
  ` + strings.Join(templates.List(), ", ") + `

Examples:
  domtree init
  domtree init docs --template site --title "Docs"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			tmpl, err := templates.Get(template)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}

			written, err := tmpl.Create(dir, templates.Config{
				Title:  title,
				Lang:   lang,
				Pretty: pretty,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range written {
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					rel = path
				}
				success(out, "created %s", rel)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "site", "Project template ("+strings.Join(templates.List(), ", ")+")")
	cmd.Flags().StringVar(&title, "title", "", "Page title (default: directory name)")
	cmd.Flags().StringVar(&lang, "lang", "", "Document language (default: en)")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Enable indented output in domtree.yaml")

	return cmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
