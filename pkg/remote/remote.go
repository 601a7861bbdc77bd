package remote

import (
	"context"
	"fmt"
	"io"

	"github.com/xyrionz/SafeArchive/pkg/config"
)

// Uploader pushes a stored archive to an off-site provider.
type Uploader interface {
	Name() string
	Upload(ctx context.Context, fileName string, r io.Reader, size int64) error
}

// ForConfig returns the uploader selected by the config, or nil when no
// provider is configured.
func ForConfig(cfg *config.Config) (Uploader, error) {
	switch cfg.Provider() {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderS3:
		if cfg.S3 == nil || cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("s3 provider selected but no bucket configured")
		}
		return NewS3(cfg.S3), nil
	case config.ProviderFTP:
		if cfg.FTP == nil || cfg.FTP.Address == "" {
			return nil, fmt.Errorf("ftp provider selected but no address configured")
		}
		return NewFTP(cfg.FTP), nil
	}
	return nil, fmt.Errorf("unknown storage provider %s", cfg.Provider())
}
