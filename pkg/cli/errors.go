package cli

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func RunAndHandleError(ctx context.Context, cmd *cobra.Command) {
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	os.Exit(0)
}
