package cli

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/xyrionz/SafeArchive/pkg/client"
	"github.com/xyrionz/SafeArchive/pkg/config"
	"github.com/xyrionz/SafeArchive/pkg/system"
)

type ClientFactory interface {
	Create() (client.Client, error)
	Options() client.Options
}

type CommandContext struct {
	ClientFactory ClientFactory
	StdOut        io.Writer
	StdErr        io.Writer
	StdIn         io.Reader
}

type CommandClientFactory struct {
	cmd  *cobra.Command
	root *SafeArchive
}

func (c *CommandClientFactory) Options() client.Options {
	opts := client.Options{
		Server: c.root.Server,
		APIKey: c.root.APIKey,
	}
	if opts.Server == "" {
		opts.Server = system.Server()
	}
	if opts.APIKey == "" {
		opts.APIKey = system.APIKey()
	}
	return opts
}

func (c *CommandClientFactory) Create() (client.Client, error) {
	opts := c.Options()
	if opts.Server == "" {
		cfg, err := config.ReadConfig()
		if err != nil {
			return nil, err
		}
		opts.Config = cfg
	}
	return client.New(opts)
}
