package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotbrains/git-profile/internal/gitconfig"
	"github.com/dotbrains/git-profile/internal/store"
	"github.com/dotbrains/git-profile/internal/ui"
)

func newUseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "use <profile>",
		Short: "Select a profile and apply it to the global git config",
		Long:  "Mark a profile as selected and run `git config --global` for its user.name and user.email.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			return runUse(cmd.Context(), ui.NewPrinter(cmd.OutOrStdout()), s, opts.git(), args[0])
		},
	}
}

// runUse saves the selection before git runs. The selection is kept if
// applying fails.
func runUse(ctx context.Context, p *ui.Printer, s *store.Store, applier gitconfig.Applier, name string) error {
	profile, err := s.SelectProfile(name)
	if err != nil {
		return fmt.Errorf("selecting profile: %w", err)
	}

	w := p.Writer()
	fmt.Fprintf(w, "Selected profile %q.\n", profile.Name)
	fmt.Fprintf(w, "Applying git config: user.name=%q, user.email=%q\n", profile.User, profile.Email)

	if err := applier.Apply(ctx, profile.User, profile.Email); err != nil {
		return fmt.Errorf("applying profile %q: %w", profile.Name, err)
	}

	fmt.Fprintf(w, "%s Global git identity is now %s <%s>.\n", p.Green("✅"), profile.User, profile.Email)
	return nil
}
