package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cli/safeexec"
	"github.com/spf13/cobra"

	"github.com/dotbrains/git-profile/internal/config"
	"github.com/dotbrains/git-profile/internal/ghauth"
	"github.com/dotbrains/git-profile/internal/store"
	"github.com/dotbrains/git-profile/internal/ui"
)

// binaryLocator resolves the git binary the applier would run.
type binaryLocator interface {
	Binary() string
	LookPath() (string, error)
}

type doctorDeps struct {
	store    *store.Store
	git      binaryLocator
	auth     ghauth.Auth
	lookPath func(string) (string, error)
}

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Validate the git-profile setup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openStore()
			if err != nil {
				return err
			}
			return runDoctor(ui.NewPrinter(cmd.OutOrStdout()), doctorDeps{
				store:    s,
				git:      opts.git(),
				auth:     opts.auth,
				lookPath: safeexec.LookPath,
			})
		},
	}
}

func runDoctor(p *ui.Printer, deps doctorDeps) error {
	w := p.Writer()
	fmt.Fprintln(w, "🩺 git-profile doctor")
	fmt.Fprintln(w)

	issues := 0
	fail := func(format string, args ...any) {
		fmt.Fprintf(w, "%s %s\n", p.Red("❌"), fmt.Sprintf(format, args...))
		issues++
	}
	warn := func(format string, args ...any) {
		fmt.Fprintf(w, "%s %s\n", p.Yellow("⚠️ "), fmt.Sprintf(format, args...))
	}
	ok := func(format string, args ...any) {
		fmt.Fprintf(w, "%s %s\n", p.Green("✅"), fmt.Sprintf(format, args...))
	}

	// Check 1: Config directory.
	configDir, err := config.Dir()
	if err != nil {
		fail("Cannot determine config directory: %v", err)
	} else if _, err := os.Stat(configDir); os.IsNotExist(err) {
		warn("Config directory does not exist yet: %s", configDir)
		fmt.Fprintln(w, "   It is created by the first `git-profile add`.")
	} else {
		ok("Config directory: %s", configDir)
	}

	// Check 2: Store file parses and is consistent.
	d, err := deps.store.Load()
	switch {
	case err != nil:
		fail("Cannot load profiles: %v", err)
		for _, h := range Hints(err) {
			fmt.Fprintf(w, "   %s\n", p.Gray(h))
		}
	case len(d.Profiles) == 0:
		warn("No profiles configured.")
	default:
		ok("%d profile(s) configured in %s", len(d.Profiles), deps.store.Path())
		for _, e := range d.Validate() {
			fail("%s", e)
		}
		if d.Selected == "" {
			warn("No profile selected.")
		} else if _, found := d.Find(d.Selected); found {
			ok("Selected profile: %s", d.Selected)
		}
	}

	// Check 3: git binary.
	if path, err := deps.git.LookPath(); err != nil {
		fail("git binary %q not found: %v", deps.git.Binary(), err)
	} else {
		ok("git binary: %s", path)
	}

	// Check 4: gh is optional; only --from-gh needs it.
	if _, err := deps.lookPath("gh"); err != nil {
		warn("gh not found on PATH; `add --from-gh` is unavailable.")
	} else if users, err := deps.auth.AuthenticatedUsers(); err != nil {
		warn("Cannot list gh accounts: %v", err)
	} else if len(users) == 0 {
		warn("gh is installed but not logged in; `add --from-gh` can only read public data.")
	} else {
		ok("gh accounts: %s", strings.Join(users, ", "))
	}

	fmt.Fprintln(w)
	if issues == 0 {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintf(w, "Found %d issue(s).\n", issues)
	return fmt.Errorf("doctor found %d issue(s)", issues)
}
