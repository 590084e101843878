package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dotbrains/git-profile/internal/store"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print all profiles as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			return runExport(cmd.OutOrStdout(), s, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

func runExport(w io.Writer, s *store.Store, format string) error {
	d, err := s.Load()
	if err != nil {
		return fmt.Errorf("loading profiles: %w", err)
	}

	var data []byte
	switch format {
	case "json":
		data, err = store.Encode(d)
	case "yaml", "yml":
		data, err = yaml.Marshal(d)
	default:
		return fmt.Errorf("unsupported format %q (want json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("encoding profiles: %w", err)
	}

	_, err = w.Write(data)
	return err
}
