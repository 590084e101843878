// Package cmd provides the cobra command tree for git-profile.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dotbrains/git-profile/internal/config"
	"github.com/dotbrains/git-profile/internal/ghauth"
	"github.com/dotbrains/git-profile/internal/gitconfig"
	"github.com/dotbrains/git-profile/internal/logging"
	"github.com/dotbrains/git-profile/internal/store"
)

// Version is overridden at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

// rootOptions carries state shared by every subcommand. It is filled in by
// the root's PersistentPreRunE before any RunE executes.
type rootOptions struct {
	verbose  bool
	settings config.Settings
	auth     ghauth.Auth
}

// openStore returns the store handle for the resolved config directory.
func (o *rootOptions) openStore() (*store.Store, error) {
	path, err := config.StorePath()
	if err != nil {
		return nil, err
	}
	return store.New(path), nil
}

// git returns the applier configured by settings.
func (o *rootOptions) git() *gitconfig.Global {
	return gitconfig.NewGlobal(o.settings.GitBinary)
}

// NewRootCmd creates the root command for git-profile.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{
		settings: config.DefaultSettings(),
		auth:     ghauth.NewGHAuth(),
	}

	root := &cobra.Command{
		Use:           "git-profile",
		Short:         "Manage named git identities",
		Long:          `git-profile stores named git identities (user.name and user.email) and switches the global git identity between them.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			opts.settings = settings

			level := settings.Level()
			if opts.verbose {
				level = slog.LevelDebug
			}
			logging.Setup(level)
			slog.Debug("settings loaded", "git_binary", settings.GitBinary, "log_level", settings.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	root.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newUseCmd(opts),
		newStatusCmd(opts),
		newExportCmd(opts),
		newDoctorCmd(opts),
	)

	return root
}
