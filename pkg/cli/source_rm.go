package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	cli "github.com/xyrionz/SafeArchive/pkg/cli/builder"
	"github.com/xyrionz/SafeArchive/pkg/config"
)

func NewSourceDelete(c CommandContext) *cobra.Command {
	return cli.Command(&SourceDelete{}, cobra.Command{
		Use: "rm [DIRECTORY...]",
		Example: `
safearchive source rm ~/Documents`,
		SilenceUsage: true,
		Short:        "Remove directories from the backup sources",
		Args:         cobra.MinimumNArgs(1),
	})
}

type SourceDelete struct{}

func (s *SourceDelete) Run(cmd *cobra.Command, args []string) error {
	cfg, err := config.ReadConfig()
	if err != nil {
		return err
	}

	for _, path := range args {
		if err := cfg.RemoveSource(path); err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Println(path)
	}

	return cfg.Save()
}
