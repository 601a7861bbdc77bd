package cli

import (
	"github.com/spf13/cobra"
	cli "github.com/xyrionz/SafeArchive/pkg/cli/builder"
	"github.com/xyrionz/SafeArchive/pkg/cli/builder/table"
	"github.com/xyrionz/SafeArchive/pkg/tables"
	"golang.org/x/exp/slices"
)

func NewArchive(c CommandContext) *cobra.Command {
	cmd := cli.Command(&Archive{client: c.ClientFactory}, cobra.Command{
		Use:     "archive [flags] [ARCHIVE_NAME...]",
		Aliases: []string{"archives", "ls"},
		Example: `
safearchive archive`,
		SilenceUsage: true,
		Short:        "List or get archives",
	})
	cmd.AddCommand(NewArchiveDelete(c))
	return cmd
}

type Archive struct {
	Quiet  bool   `usage:"Output only names" short:"q"`
	Output string `usage:"Output format (json, yaml, {{gotemplate}})" short:"o"`
	client ClientFactory
}

func (a *Archive) Run(cmd *cobra.Command, args []string) error {
	c, err := a.client.Create()
	if err != nil {
		return err
	}

	out := table.NewWriter(tables.Archive, a.Quiet, a.Output)

	if len(args) == 1 {
		archive, err := c.ArchiveGet(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out.Write(archive)
		return out.Err()
	}

	archives, err := c.ArchiveList(cmd.Context())
	if err != nil {
		return err
	}

	for i, archive := range archives {
		if len(args) > 0 {
			if slices.Contains(args, archive.Name) ||
				slices.Contains(args, archive.FileName) {
				out.Write(&archives[i])
			}
			continue
		}
		out.Write(&archives[i])
	}

	return out.Err()
}
