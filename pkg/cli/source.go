package cli

import (
	"os"

	"github.com/spf13/cobra"
	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	cli "github.com/xyrionz/SafeArchive/pkg/cli/builder"
	"github.com/xyrionz/SafeArchive/pkg/cli/builder/table"
	"github.com/xyrionz/SafeArchive/pkg/config"
	"github.com/xyrionz/SafeArchive/pkg/tables"
)

func NewSource(c CommandContext) *cobra.Command {
	cmd := cli.Command(&Source{}, cobra.Command{
		Use:     "source [flags]",
		Aliases: []string{"sources"},
		Example: `
safearchive source`,
		SilenceUsage: true,
		Short:        "List the configured backup sources",
		Args:         cobra.NoArgs,
	})
	cmd.AddCommand(NewSourceAdd(c), NewSourceDelete(c))
	return cmd
}

type Source struct {
	Quiet  bool   `usage:"Output only paths" short:"q"`
	Output string `usage:"Output format (json, yaml, {{gotemplate}})" short:"o"`
}

func (s *Source) Run(cmd *cobra.Command, args []string) error {
	cfg, err := config.ReadConfig()
	if err != nil {
		return err
	}

	out := table.NewWriter(tables.Source, s.Quiet, s.Output)
	for _, path := range cfg.SourcePaths {
		_, err := os.Stat(path)
		out.Write(apiv1.Source{
			Path:    path,
			Present: err == nil,
		})
	}
	return out.Err()
}
