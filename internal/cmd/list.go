package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotbrains/git-profile/internal/store"
	"github.com/dotbrains/git-profile/internal/ui"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List all configured profiles",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			return runList(ui.NewPrinter(cmd.OutOrStdout()), s)
		},
	}
}

func runList(p *ui.Printer, s *store.Store) error {
	profiles, selected, err := s.ListProfiles()
	if err != nil {
		return fmt.Errorf("loading profiles: %w", err)
	}

	w := p.Writer()
	if len(profiles) == 0 {
		fmt.Fprintln(w, "No profiles configured yet. Run `git-profile add --profile <profile> --name <name> --email <email>` to add one.")
		return nil
	}

	fmt.Fprintln(w, "Available git profiles:")
	found := false
	for _, prof := range profiles {
		line := fmt.Sprintf("%s: %s <%s>", prof.Name, prof.User, prof.Email)
		if prof.Name == selected {
			found = true
			fmt.Fprintf(w, "%s %s\n", p.Green("*"), p.Green(line))
			continue
		}
		fmt.Fprintf(w, "- %s\n", line)
	}

	switch {
	case selected == "":
		fmt.Fprintln(w, "\nNo profile currently selected. Run `git-profile use <profile>` to select one.")
	case !found:
		fmt.Fprintf(w, "\n%s\n", p.Yellow(fmt.Sprintf("⚠️  Selected profile %q no longer exists. Run `git-profile use <profile>` to select another.", selected)))
	}
	return nil
}
