package main

import (
	"context"
	"os"

	"github.com/dotbrains/git-profile/internal/cmd"
)

func main() {
	root := cmd.NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		cmd.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
