package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tasque/pkg/commands/options"
	"tableflip.dev/tasque/pkg/printers"
)

func addCalendars(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "calendars",
		Aliases: []string{"calendar", "cals"},
		Short:   "list the discovered calendars",
		Example: `
tasque calendars
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

			calendars, err := gw.Calendars(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			cfg, err := gw.Config(ctx)
			if err != nil {
				return oo.HandleError(err)
			}

			pp := printers.PrettyPrint{ShowID: io.ShowID}
			pp.Title("Calendars")
			pp.Calendars(cfg.DefaultCalendar, calendars...)
			return nil
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
