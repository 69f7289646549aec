package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tasque/pkg/commands/options"
	"tableflip.dev/tasque/pkg/printers"
)

func addTags(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "list tags with open-task counts",
		Example: `
tasque tags
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := loadGateway()
			if err != nil {
				return err
			}
			ctx := context.Background()
			if err := gw.ConnectAndLoad(ctx); err != nil {
				return oo.HandleError(err)
			}

			tags, err := gw.Tags(ctx)
			if err != nil {
				return oo.HandleError(err)
			}

			pp := printers.PrettyPrint{}
			pp.Title("Tags")
			pp.Tags(tags...)
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
