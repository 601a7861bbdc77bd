package client

import (
	"context"
	"io"

	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	"github.com/xyrionz/SafeArchive/pkg/backup"
	"github.com/xyrionz/SafeArchive/pkg/config"
)

// Client is how the CLI talks to a backup destination, either the
// local store or a remote service.
type Client interface {
	ArchiveList(ctx context.Context) ([]apiv1.Archive, error)
	ArchiveGet(ctx context.Context, name string) (*apiv1.Archive, error)
	ArchiveDelete(ctx context.Context, name string) (*apiv1.Archive, error)
	BackupCreate(ctx context.Context, sources []string, opts BackupOptions) (*apiv1.Archive, error)
	Restore(ctx context.Context, name string, opts RestoreOptions) (*apiv1.Archive, error)
	RestoreToWriter(ctx context.Context, name, password string, w io.Writer) (*apiv1.Archive, error)
	ZipCreate(ctx context.Context, w io.Writer, sources []string, password string) error
	Download(ctx context.Context, name string, w io.Writer) (*apiv1.Archive, error)
	Info(ctx context.Context) (*apiv1.Info, error)
	Prune(ctx context.Context) ([]apiv1.Archive, error)
	Close() error
}

type BackupOptions struct {
	Name     string
	Password string
	Progress chan<- backup.Progress
}

type RestoreOptions struct {
	Password string
	Dest     string
}

type Options struct {
	// Server selects the remote client when set, for example
	// http://localhost:8080.
	Server string
	APIKey string
	Config *config.Config
}

func New(opts Options) (Client, error) {
	if opts.Server != "" {
		return NewHTTP(opts.Server, opts.APIKey), nil
	}
	return NewLocal(opts.Config)
}
