package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	cli "github.com/xyrionz/SafeArchive/pkg/cli/builder"
	"github.com/xyrionz/SafeArchive/pkg/version"
)

func NewVersion(c CommandContext) *cobra.Command {
	return cli.Command(&Version{}, cobra.Command{
		Use:          "version",
		SilenceUsage: true,
		Short:        "Version information for safearchive",
	})
}

type Version struct{}

func (v *Version) Run(cmd *cobra.Command, args []string) error {
	fmt.Println("safearchive version " + version.Get())
	return nil
}
