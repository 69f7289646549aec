package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tasque/pkg/commands/options"
	"tableflip.dev/tasque/pkg/tui/dispatch"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "add a task from a smart string",
		Long:  "Add a task. The text is a smart string; the engine parses markers like @tomorrow, !1, #errands, ~30m.",
		Example: `
tasque add Buy milk @tomorrow !1 #errands
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires task text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := loadGateway()
			if err != nil {
				return err
			}
			ctx := context.Background()
			if err := gw.ConnectAndLoad(ctx); err != nil {
				return oo.HandleError(err)
			}

			res := dispatch.New(gw).Add(ctx, strings.Join(args, " "))
			if res.Err != nil {
				return oo.HandleError(res.Err)
			}
			cmd.Println(res.Status)
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
