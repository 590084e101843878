package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/dotbrains/git-profile/internal/config"
	"github.com/dotbrains/git-profile/internal/gitconfig"
	"github.com/dotbrains/git-profile/internal/store"
)

// Hints returns follow-up advice for err, one line per entry.
func Hints(err error) []string {
	var hints []string

	var corrupt *store.CorruptError
	if errors.As(err, &corrupt) {
		hints = append(hints,
			"The profile store might be corrupted. Fix or delete it manually.",
			fmt.Sprintf("Store file location: %s", corrupt.Path),
		)
	}

	if errors.Is(err, gitconfig.ErrApply) {
		hint := fmt.Sprintf("Is git installed and on your PATH? Set %s_GIT_BINARY or git_binary in", config.EnvPrefix)
		if path, perr := config.SettingsPath(); perr == nil {
			hint += " " + path
		} else {
			hint += " config.yaml"
		}
		hints = append(hints, hint+" to use a different binary.")
	}

	if errors.Is(err, store.ErrNotFound) {
		hints = append(hints, "Run `git-profile list` to see available profiles.")
	}

	return hints
}

// PrintError writes err and any hints to w.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	for _, h := range Hints(err) {
		fmt.Fprintf(w, "Hint: %s\n", h)
	}
}
