package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	cli "github.com/xyrionz/SafeArchive/pkg/cli/builder"
	"github.com/xyrionz/SafeArchive/pkg/streams"
	"github.com/xyrionz/SafeArchive/pkg/system"
)

func New() *cobra.Command {
	return NewWithStreams(streams.Current())
}

func NewWithStreams(s *streams.Streams) *cobra.Command {
	a := &SafeArchive{}
	root := cli.Command(a, cobra.Command{
		Use:          "safearchive",
		Long:         "\n   SafeArchive\n\nZip, seal and ship your backups.",
		SilenceUsage: true,
		Example: `
# Back up two folders into the archive store
safearchive backup ~/Documents ~/Pictures`,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	})

	c := CommandContext{
		ClientFactory: &CommandClientFactory{cmd: root, root: a},
		StdOut:        s.Out,
		StdErr:        s.Err,
		StdIn:         s.In,
	}
	root.AddCommand(
		NewArchive(c),
		NewBackup(c),
		NewRestore(c),
		NewSource(c),
		NewPrune(c),
		NewInfo(c),
		NewServe(c),
		NewVersion(c),
	)
	return root
}

type SafeArchive struct {
	ConfigFile string `usage:"Location of the config file" env:"SAFEARCHIVE_CONFIG_FILE"`
	Server     string `usage:"Address of a remote service to run against" env:"SAFEARCHIVE_SERVER"`
	APIKey     string `usage:"API key for the remote service" env:"SERVICE_API_KEY"`
	Debug      bool   `usage:"Enable debug logging"`
}

func setEnv(key, value string) error {
	if value != "" && os.Getenv(key) == "" {
		return os.Setenv(key, value)
	}
	return nil
}

func (a *SafeArchive) PersistentPre(cmd *cobra.Command, args []string) error {
	if a.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return setEnv(system.ConfigFileEnv, a.ConfigFile)
}

func (a *SafeArchive) Run(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}
