package options

import (
	"github.com/spf13/cobra"
)

// FilterOptions captures projection filter flags for commands.
type FilterOptions struct {
	Tag           string
	Uncategorized bool
	Query         string
}

// AddFilterArgs wires projection filter flags on the provided command.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Tag, "tag", "t", "",
		"Only tasks carrying this tag.")
	cmd.Flags().BoolVar(&o.Uncategorized, "uncategorized", false,
		"Only tasks with no tags.")
	cmd.Flags().StringVarP(&o.Query, "query", "q", "",
		"Search expression, e.g. 'is:done #work'.")
}
