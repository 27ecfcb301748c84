package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/simplehtml"
)

// NewTagsCmd creates the tags subcommand, which prints the allowlist.
func NewTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the tags that pass through unescaped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, tag := range simplehtml.AllowedTags() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}
