// Package cli implements the simplehtml commands.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root simplehtml command with all subcommands
// registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "simplehtml",
		Short:         "simplehtml - allowlist HTML sanitizer for simple inline markup",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(NewSanitizeCmd(newFileOpener()))
	root.AddCommand(NewTagsCmd())
	root.AddCommand(NewServeCmd(runServer))
	return root
}
