package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/domtree/internal/errors"
	"github.com/vango-dev/domtree/pkg/css"
)

// readInput reads the file named by args, or stdin for none or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.New("E170").WithDetail("stdin").Wrap(err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, errors.New("E170").WithDetail(args[0]).Wrap(err)
	}
	return data, nil
}

// writeOutput writes data to path, or to the command output if path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// loadData reads a YAML mapping of content values. An empty path yields
// no values.
func loadData(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E170").WithDetail(path).Wrap(err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, errors.New("E171").WithDetail(path).Wrap(err)
	}
	return values, nil
}

// loadStylesheet reads a stylesheet in YAML form. An empty path yields
// nil rules.
func loadStylesheet(path string) (*css.Rules, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E170").WithDetail(path).Wrap(err)
	}
	return css.FromYAML(raw)
}
