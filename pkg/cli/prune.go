package cli

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	cli "github.com/xyrionz/SafeArchive/pkg/cli/builder"
)

func NewPrune(c CommandContext) *cobra.Command {
	return cli.Command(&Prune{client: c.ClientFactory}, cobra.Command{
		Use: "prune [flags]",
		Example: `
safearchive prune`,
		SilenceUsage: true,
		Short:        "Delete archives older than the configured expiry",
		Args:         cobra.NoArgs,
	})
}

type Prune struct {
	Quiet  bool `usage:"Output only file names" short:"q"`
	client ClientFactory
}

func (p *Prune) Run(cmd *cobra.Command, args []string) error {
	c, err := p.client.Create()
	if err != nil {
		return err
	}

	pruned, err := c.Prune(cmd.Context())
	if err != nil {
		return err
	}

	if len(pruned) == 0 {
		if !p.Quiet {
			pterm.Info.Println("Nothing to prune")
		}
		return nil
	}

	for _, archive := range pruned {
		fmt.Println(archive.FileName)
	}
	return nil
}
