package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotbrains/git-profile/internal/gitconfig"
	"github.com/dotbrains/git-profile/internal/store"
	"github.com/dotbrains/git-profile/internal/ui"
)

// identityReader reads the identity git currently has configured.
type identityReader interface {
	Current(ctx context.Context) (gitconfig.Identity, error)
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Display the selected profile and the global git identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			return runStatus(cmd.Context(), ui.NewPrinter(cmd.OutOrStdout()), s, opts.git())
		},
	}
}

func runStatus(ctx context.Context, p *ui.Printer, s *store.Store, git identityReader) error {
	d, err := s.Load()
	if err != nil {
		return fmt.Errorf("loading profiles: %w", err)
	}

	w := p.Writer()
	current, gitErr := git.Current(ctx)

	profile, ok := d.SelectedProfile()
	switch {
	case d.Selected == "":
		fmt.Fprintln(w, "No profile selected.")
		fmt.Fprintln(w, "Run `git-profile use <profile>` to select one.")
	case !ok:
		fmt.Fprintf(w, "%s\n", p.Yellow(fmt.Sprintf("⚠️  Selected profile %q no longer exists.", d.Selected)))
	default:
		fmt.Fprintf(w, "  Profile:  %s\n", profile.Name)
		fmt.Fprintf(w, "  Name:     %s\n", profile.User)
		fmt.Fprintf(w, "  Email:    %s\n", profile.Email)
	}

	if gitErr != nil {
		fmt.Fprintf(w, "%s\n", p.Yellow(fmt.Sprintf("⚠️  Could not read global git config: %v", gitErr)))
		return nil
	}

	fmt.Fprintf(w, "  Git:      %s\n", formatIdentity(current))
	if ok {
		if current.Name == profile.User && current.Email == profile.Email {
			fmt.Fprintf(w, "  %s\n", p.Green("✅ Global git identity matches the selected profile."))
		} else {
			fmt.Fprintf(w, "  %s\n", p.Yellow("⚠️  Global git identity differs from the selected profile."))
			fmt.Fprintf(w, "     Run `git-profile use %s` to re-apply it.\n", profile.Name)
		}
	}
	return nil
}

func formatIdentity(id gitconfig.Identity) string {
	name, email := id.Name, id.Email
	if name == "" {
		name = "(unset)"
	}
	if email == "" {
		email = "unset"
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
