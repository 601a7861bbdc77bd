package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	cli "github.com/xyrionz/SafeArchive/pkg/cli/builder"
	"github.com/xyrionz/SafeArchive/pkg/config"
)

func NewSourceAdd(c CommandContext) *cobra.Command {
	return cli.Command(&SourceAdd{}, cobra.Command{
		Use: "add [DIRECTORY...]",
		Example: `
safearchive source add ~/Documents`,
		SilenceUsage: true,
		Short:        "Add directories to the backup sources",
		Args:         cobra.MinimumNArgs(1),
	})
}

type SourceAdd struct{}

func (s *SourceAdd) Run(cmd *cobra.Command, args []string) error {
	cfg, err := config.ReadConfig()
	if err != nil {
		return err
	}

	for _, path := range args {
		if err := cfg.AddSource(path); err != nil {
			return err
		}
		fmt.Println(path)
	}

	return cfg.Save()
}
