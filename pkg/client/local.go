package client

import (
	"context"
	"io"

	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	"github.com/xyrionz/SafeArchive/pkg/backup"
	"github.com/xyrionz/SafeArchive/pkg/config"
	"github.com/xyrionz/SafeArchive/pkg/system"
	"github.com/xyrionz/SafeArchive/pkg/version"
)

// Local runs every operation against the store on this machine.
type Local struct {
	Engine *backup.Engine
}

func NewLocal(cfg *config.Config) (*Local, error) {
	engine, err := backup.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	return &Local{Engine: engine}, nil
}

func (c *Local) ArchiveList(_ context.Context) ([]apiv1.Archive, error) {
	return c.Engine.Store.List()
}

func (c *Local) ArchiveGet(_ context.Context, name string) (*apiv1.Archive, error) {
	archive, err := c.Engine.Store.Get(name)
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

func (c *Local) ArchiveDelete(_ context.Context, name string) (*apiv1.Archive, error) {
	archive, err := c.Engine.Store.Get(name)
	if err != nil {
		return nil, err
	}
	if err := c.Engine.Store.Delete(name); err != nil {
		return nil, err
	}
	return &archive, nil
}

func (c *Local) BackupCreate(ctx context.Context, sources []string, opts BackupOptions) (*apiv1.Archive, error) {
	archive, err := c.Engine.Backup(ctx, backup.BackupOptions{
		Name:     opts.Name,
		Sources:  sources,
		Password: opts.Password,
		Progress: opts.Progress,
	})
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

func (c *Local) Restore(ctx context.Context, name string, opts RestoreOptions) (*apiv1.Archive, error) {
	archive, err := c.Engine.Restore(ctx, name, opts.Password, opts.Dest)
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

func (c *Local) RestoreToWriter(ctx context.Context, name, password string, w io.Writer) (*apiv1.Archive, error) {
	archive, err := c.Engine.RestoreZip(ctx, name, password, w)
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

func (c *Local) ZipCreate(ctx context.Context, w io.Writer, sources []string, password string) error {
	_, err := c.Engine.Zip(ctx, w, sources, password)
	return err
}

func (c *Local) Download(_ context.Context, name string, w io.Writer) (*apiv1.Archive, error) {
	f, archive, err := c.Engine.Store.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return nil, err
	}
	return &archive, nil
}

func (c *Local) Info(_ context.Context) (*apiv1.Info, error) {
	archives, err := c.Engine.Store.List()
	if err != nil {
		return nil, err
	}

	var total int64
	for _, archive := range archives {
		total += archive.Size
	}

	cfg := c.Engine.Config
	return &apiv1.Info{
		Version:      version.Get(),
		Destination:  c.Engine.Store.Dir(),
		ArchiveCount: len(archives),
		TotalSize:    total,
		Encryption:   cfg.Encryption,
		Provider:     cfg.Provider(),
		Expiry:       cfg.BackupExpiry,
		Protected:    system.APIKey() != "",
	}, nil
}

func (c *Local) Prune(_ context.Context) ([]apiv1.Archive, error) {
	return c.Engine.Prune()
}

func (c *Local) Close() error {
	return c.Engine.Close()
}
