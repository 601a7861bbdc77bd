package cli

import (
	"github.com/spf13/cobra"
	cli "github.com/xyrionz/SafeArchive/pkg/cli/builder"
	"github.com/xyrionz/SafeArchive/pkg/cli/builder/table"
	"github.com/xyrionz/SafeArchive/pkg/tables"
)

func NewInfo(c CommandContext) *cobra.Command {
	return cli.Command(&Info{client: c.ClientFactory}, cobra.Command{
		Use:          "info",
		SilenceUsage: true,
		Short:        "Info about the archive store",
		Args:         cobra.NoArgs,
	})
}

type Info struct {
	Output string `usage:"Output format (json, yaml, {{gotemplate}})" short:"o" default:"yaml"`
	client ClientFactory
}

func (i *Info) Run(cmd *cobra.Command, args []string) error {
	c, err := i.client.Create()
	if err != nil {
		return err
	}

	info, err := c.Info(cmd.Context())
	if err != nil {
		return err
	}

	out := table.NewWriter(tables.Info, false, i.Output)
	out.Write(info)
	return out.Err()
}
