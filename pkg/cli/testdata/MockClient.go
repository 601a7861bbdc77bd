package testdata

import (
	"context"
	"io"
	"time"

	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	"github.com/xyrionz/SafeArchive/pkg/client"
	"github.com/xyrionz/SafeArchive/pkg/store"
)

type MockClientFactory struct {
	Server      string
	APIKey      string
	ArchiveList []apiv1.Archive
	ArchiveItem *apiv1.Archive
	InfoItem    *apiv1.Info
	PruneList   []apiv1.Archive
}

func (dc *MockClientFactory) Options() client.Options {
	return client.Options{
		Server: dc.Server,
		APIKey: dc.APIKey,
	}
}

func (dc *MockClientFactory) Create() (client.Client, error) {
	return &MockClient{
		Archives:    dc.ArchiveList,
		ArchiveItem: dc.ArchiveItem,
		InfoItem:    dc.InfoItem,
		Pruned:      dc.PruneList,
	}, nil
}

type MockClient struct {
	Archives    []apiv1.Archive
	ArchiveItem *apiv1.Archive
	InfoItem    *apiv1.Info
	Pruned      []apiv1.Archive
}

func fixtureArchive() apiv1.Archive {
	return apiv1.Archive{
		Name:      "vacation",
		FileName:  "vacation.zip.enc",
		Created:   time.Now().Add(-2 * time.Hour),
		Size:      2048,
		Encrypted: true,
		Digest:    "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
	}
}

func (m *MockClient) ArchiveList(ctx context.Context) ([]apiv1.Archive, error) {
	if m.Archives != nil {
		return m.Archives, nil
	}
	return []apiv1.Archive{fixtureArchive()}, nil
}

func (m *MockClient) ArchiveGet(ctx context.Context, name string) (*apiv1.Archive, error) {
	if m.ArchiveItem != nil {
		return m.ArchiveItem, nil
	}
	if name == "dne" {
		return nil, &store.ErrArchiveNotFound{Name: name}
	}
	archive := fixtureArchive()
	return &archive, nil
}

func (m *MockClient) ArchiveDelete(ctx context.Context, name string) (*apiv1.Archive, error) {
	if name == "dne" {
		return nil, &store.ErrArchiveNotFound{Name: name}
	}
	return &apiv1.Archive{
		Name:     name,
		FileName: name + ".zip",
	}, nil
}

func (m *MockClient) BackupCreate(ctx context.Context, sources []string, opts client.BackupOptions) (*apiv1.Archive, error) {
	if opts.Progress != nil {
		close(opts.Progress)
	}
	name := opts.Name
	if name == "" {
		name = "backup"
	}
	fileName := name + ".zip"
	if opts.Password != "" {
		fileName += ".enc"
	}
	return &apiv1.Archive{
		Name:        name,
		FileName:    fileName,
		Created:     time.Now(),
		Size:        2048,
		Encrypted:   opts.Password != "",
		SourceCount: len(sources),
	}, nil
}

func (m *MockClient) Restore(ctx context.Context, name string, opts client.RestoreOptions) (*apiv1.Archive, error) {
	if name == "dne" {
		return nil, &store.ErrArchiveNotFound{Name: name}
	}
	archive := fixtureArchive()
	return &archive, nil
}

func (m *MockClient) RestoreToWriter(ctx context.Context, name, password string, w io.Writer) (*apiv1.Archive, error) {
	if name == "dne" {
		return nil, &store.ErrArchiveNotFound{Name: name}
	}
	if _, err := w.Write([]byte("PK\x03\x04")); err != nil {
		return nil, err
	}
	archive := fixtureArchive()
	return &archive, nil
}

func (m *MockClient) ZipCreate(ctx context.Context, w io.Writer, sources []string, password string) error {
	_, err := w.Write([]byte("PK\x03\x04"))
	return err
}

func (m *MockClient) Download(ctx context.Context, name string, w io.Writer) (*apiv1.Archive, error) {
	if name == "dne" {
		return nil, &store.ErrArchiveNotFound{Name: name}
	}
	if _, err := w.Write([]byte("PK\x03\x04")); err != nil {
		return nil, err
	}
	archive := fixtureArchive()
	return &archive, nil
}

func (m *MockClient) Info(ctx context.Context) (*apiv1.Info, error) {
	if m.InfoItem != nil {
		return m.InfoItem, nil
	}
	return &apiv1.Info{
		Version:      "v0.0.0-dev",
		Destination:  "/var/lib/safearchive",
		ArchiveCount: 1,
		TotalSize:    2048,
		Encryption:   true,
		Provider:     "none",
		Expiry:       "Forever",
	}, nil
}

func (m *MockClient) Prune(ctx context.Context) ([]apiv1.Archive, error) {
	return m.Pruned, nil
}

func (m *MockClient) Close() error {
	return nil
}
