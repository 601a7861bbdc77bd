package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	cli "github.com/xyrionz/SafeArchive/pkg/cli/builder"
	"github.com/xyrionz/SafeArchive/pkg/prompt"
)

func NewArchiveDelete(c CommandContext) *cobra.Command {
	return cli.Command(&ArchiveDelete{client: c.ClientFactory}, cobra.Command{
		Use: "rm [ARCHIVE_NAME...]",
		Example: `
safearchive archive rm my-backup`,
		SilenceUsage: true,
		Short:        "Delete archives",
	})
}

type ArchiveDelete struct {
	Force  bool `usage:"Do not prompt for confirmation" short:"f"`
	client ClientFactory
}

func (a *ArchiveDelete) Run(cmd *cobra.Command, args []string) error {
	c, err := a.client.Create()
	if err != nil {
		return err
	}

	for _, name := range args {
		if !a.Force {
			if err := prompt.Remove("archive " + name); err != nil {
				return err
			}
		}
		deleted, err := c.ArchiveDelete(cmd.Context(), name)
		if err != nil {
			return fmt.Errorf("deleting %s: %w", name, err)
		}
		if deleted != nil {
			fmt.Println(deleted.FileName)
		}
	}

	return nil
}
