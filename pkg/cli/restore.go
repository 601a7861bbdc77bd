package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	cli "github.com/xyrionz/SafeArchive/pkg/cli/builder"
	"github.com/xyrionz/SafeArchive/pkg/client"
	"github.com/xyrionz/SafeArchive/pkg/prompt"
)

func NewRestore(c CommandContext) *cobra.Command {
	return cli.Command(&Restore{client: c.ClientFactory}, cobra.Command{
		Use: "restore [flags] ARCHIVE_NAME",
		Example: `
safearchive restore -d /tmp/recovered my-backup`,
		SilenceUsage: true,
		Short:        "Unpack an archive into a directory",
		Args:         cobra.ExactArgs(1),
	})
}

type Restore struct {
	Dest     string `usage:"Directory to unpack into" short:"d" default:"."`
	Password string `usage:"Password the archive was sealed with" short:"p"`
	client   ClientFactory
}

func (r *Restore) Run(cmd *cobra.Command, args []string) error {
	c, err := r.client.Create()
	if err != nil {
		return err
	}

	password := r.Password
	if password == "" {
		archive, err := c.ArchiveGet(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if archive.Encrypted {
			password, err = prompt.Password("Password for " + archive.FileName)
			if err != nil {
				return err
			}
		}
	}

	archive, err := c.Restore(cmd.Context(), args[0], client.RestoreOptions{
		Password: password,
		Dest:     r.Dest,
	})
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Restored %s into %s", archive.FileName, r.Dest)
	return nil
}
