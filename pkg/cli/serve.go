package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xyrionz/SafeArchive/pkg/backup"
	cli "github.com/xyrionz/SafeArchive/pkg/cli/builder"
	"github.com/xyrionz/SafeArchive/pkg/config"
	"github.com/xyrionz/SafeArchive/pkg/server"
	"github.com/xyrionz/SafeArchive/pkg/system"
)

func NewServe(c CommandContext) *cobra.Command {
	return cli.Command(&Serve{}, cobra.Command{
		Use: "serve [flags]",
		Example: `
SERVICE_API_KEY=secret safearchive serve --address 0.0.0.0:8080`,
		SilenceUsage: true,
		Short:        "Run the backup REST service",
		Args:         cobra.NoArgs,
	})
}

type Serve struct {
	Address     string `usage:"Address to listen on (default 0.0.0.0:8080)"`
	APIKey      string `usage:"API key clients must send, empty disables auth" env:"SERVICE_API_KEY"`
	UploadLimit int64  `usage:"Largest accepted upload in bytes" env:"MAX_TOTAL_UPLOAD_BYTES"`
	NoSweep     bool   `usage:"Do not delete expired archives in the background"`
}

func (s *Serve) Run(cmd *cobra.Command, args []string) error {
	cfg, err := config.ReadConfig()
	if err != nil {
		return err
	}

	engine, err := backup.NewEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := cmd.Context()
	if !s.NoSweep {
		engine.StartSweeper(ctx, 0)
	}
	if err := engine.StartSchedule(ctx); err != nil {
		return err
	}

	address := s.Address
	if address == "" {
		address = fmt.Sprintf("0.0.0.0:%d", system.ListenPort())
	}

	return server.NewServer(engine, server.Options{
		APIKey:      s.APIKey,
		UploadLimit: s.UploadLimit,
	}).Run(ctx, address)
}
