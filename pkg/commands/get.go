package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tasque/pkg/commands/options"
	"tableflip.dev/tasque/pkg/engine"
	"tableflip.dev/tasque/pkg/printers"
)

func addGet(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "get the current task list",
		Long:  "Get all or a filtered set of tasks from the engine.",
		Example: `
tasque get
tasque get --tag work
tasque get --uncategorized
tasque get --query "is:done #work"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				fo.Query = strings.Join(args, " ")
			}
			if fo.Tag != "" && fo.Uncategorized {
				return errors.New("--tag and --uncategorized are mutually exclusive")
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

			var sel *engine.TagSelector
			switch {
			case fo.Uncategorized:
				sel = &engine.TagSelector{Uncategorized: true}
			case fo.Tag != "":
				sel = &engine.TagSelector{Name: fo.Tag}
			}

			tasks, err := gw.Tasks(ctx, sel, fo.Query)
			if err != nil {
				return oo.HandleError(err)
			}

			pp := printers.PrettyPrint{ShowID: io.ShowID}
			pp.TitleWithCount("Tasks", len(tasks))
			pp.Tasks(tasks...)
			return nil
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
