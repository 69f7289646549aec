package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions controls how command failures are rendered. Shared across
// the command tree so every subcommand honors the same --json flag.
type OutputOptions struct {
	// JSON emits errors as a one-line JSON object instead of plain text.
	JSON bool
}

// AddOutputArg attaches the output flags to cmd.
func AddOutputArg(cmd *cobra.Command, oo *OutputOptions) {
	cmd.Flags().BoolVar(&oo.JSON, "json", false,
		"Output as JSON.")
}

// HandleError renders err according to the output flags. With --json the
// error is printed as {"error": "..."} and swallowed so cobra does not
// report it a second time; otherwise it is returned unchanged.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil || !o.JSON {
		return err
	}
	b, merr := json.Marshal(map[string]string{"error": err.Error()})
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}
