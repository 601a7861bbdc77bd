package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	"github.com/xyrionz/SafeArchive/pkg/backup"
	cli "github.com/xyrionz/SafeArchive/pkg/cli/builder"
	"github.com/xyrionz/SafeArchive/pkg/client"
	"github.com/xyrionz/SafeArchive/pkg/config"
	"github.com/xyrionz/SafeArchive/pkg/progressbar"
	"github.com/xyrionz/SafeArchive/pkg/prompt"
)

func NewBackup(c CommandContext) *cobra.Command {
	return cli.Command(&Backup{client: c.ClientFactory}, cobra.Command{
		Use: "backup [flags] [SOURCE_PATH...]",
		Example: `
# Back up the configured sources
safearchive backup

# Back up two folders under a custom name
safearchive backup -n laptop ~/Documents ~/Pictures`,
		SilenceUsage: true,
		Short:        "Create a new backup archive",
	})
}

type Backup struct {
	Name      string `usage:"Name for the new archive" short:"n"`
	Password  string `usage:"Encrypt the archive with this password" short:"p"`
	NoEncrypt bool   `usage:"Skip encryption even when the config enables it"`
	Quiet     bool   `usage:"Output only the archive file name" short:"q"`
	client    ClientFactory
}

func (b *Backup) Run(cmd *cobra.Command, args []string) error {
	c, err := b.client.Create()
	if err != nil {
		return err
	}

	sources := args
	password := b.Password

	if len(sources) == 0 || (password == "" && !b.NoEncrypt) {
		cfg, err := config.ReadConfig()
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			sources = cfg.SourcePaths
		}
		if password == "" && !b.NoEncrypt && cfg.Encryption {
			password, err = prompt.Password("Password for the new archive")
			if err != nil {
				return err
			}
		}
	}

	if len(sources) == 0 {
		return fmt.Errorf("nothing to back up, pass paths or add sources with 'safearchive source add'")
	}

	var (
		progress  = make(chan backup.Progress)
		done      = make(chan struct{})
		archived  *apiv1.Archive
		backupErr error
	)
	go func() {
		defer close(done)
		archived, backupErr = c.BackupCreate(cmd.Context(), sources, client.BackupOptions{
			Name:     b.Name,
			Password: password,
			Progress: progress,
		})
	}()

	if b.Quiet {
		for range progress {
		}
	} else if err := progressbar.Print(progress); err != nil {
		<-done
		return err
	}
	<-done
	if backupErr != nil {
		return backupErr
	}

	if b.Quiet {
		fmt.Println(archived.FileName)
		return nil
	}
	pterm.Success.Printfln("Stored %s (%s)", archived.FileName, humanize.IBytes(uint64(archived.Size)))
	return nil
}
