package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tasque/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
tasque ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, err := loadGateway()
			if err != nil {
				return err
			}
			return tui.Run(gw)
		},
	}

	topLevel.AddCommand(cmd)
}
