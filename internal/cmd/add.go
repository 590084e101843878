package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotbrains/git-profile/internal/ghauth"
	"github.com/dotbrains/git-profile/internal/store"
	"github.com/dotbrains/git-profile/internal/ui"
)

type addOptions struct {
	profile string
	name    string
	email   string
	fromGH  string
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var o addOptions

	cmd := &cobra.Command{
		Use:   "add --profile <profile> --name <name> --email <email>",
		Short: "Add a new git identity profile",
		Example: `  git-profile add --profile work --name "Alice Example" --email alice@work.example
  git-profile add -p oss --from-gh octocat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			return runAdd(ui.NewPrinter(cmd.OutOrStdout()), s, opts.auth, o)
		},
	}

	cmd.Flags().StringVarP(&o.profile, "profile", "p", "", "Unique name for this profile (e.g. work, personal)")
	cmd.Flags().StringVarP(&o.name, "name", "n", "", "The git user.name for this profile")
	cmd.Flags().StringVarP(&o.email, "email", "e", "", "The git user.email for this profile")
	cmd.Flags().StringVar(&o.fromGH, "from-gh", "", "Fill missing --name/--email from this GitHub account via gh")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func runAdd(p *ui.Printer, s *store.Store, auth ghauth.Auth, o addOptions) error {
	name, email := strings.TrimSpace(o.name), strings.TrimSpace(o.email)

	if o.fromGH != "" && (name == "" || email == "") {
		info, err := auth.UserInfo(o.fromGH)
		if err != nil {
			return fmt.Errorf("looking up GitHub account %q: %w", o.fromGH, err)
		}
		if name == "" {
			name = info.Name
			if name == "" {
				name = info.Login
			}
		}
		if email == "" {
			email = info.Email
		}
	}

	if name == "" {
		return fmt.Errorf("--name is required (or use --from-gh)")
	}
	if email == "" {
		return fmt.Errorf("--email is required (or use --from-gh)")
	}

	profile := store.Profile{
		Name:  o.profile,
		User:  name,
		Email: email,
	}
	if err := s.AddProfile(profile); err != nil {
		return fmt.Errorf("adding profile: %w", err)
	}

	fmt.Fprintf(p.Writer(), "✅ Profile %q added: %s <%s>\n", profile.Name, profile.User, profile.Email)
	return nil
}
