package remote

import (
	"context"
	"io"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/xyrionz/SafeArchive/pkg/config"
)

type FTP struct {
	settings *config.FTPConfig
}

func NewFTP(settings *config.FTPConfig) *FTP {
	return &FTP{
		settings: settings,
	}
}

func (f *FTP) Name() string {
	return config.ProviderFTP
}

func (f *FTP) Upload(ctx context.Context, fileName string, r io.Reader, _ int64) error {
	conn, err := ftp.Dial(f.settings.Address,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(30*time.Second))
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Quit()
	}()

	user := f.settings.Username
	if user == "" {
		user = "anonymous"
	}
	if err := conn.Login(user, f.settings.Password); err != nil {
		return err
	}

	if dir := f.settings.Directory; dir != "" {
		if err := conn.ChangeDir(dir); err != nil {
			if err := conn.MakeDir(dir); err != nil {
				return err
			}
			if err := conn.ChangeDir(dir); err != nil {
				return err
			}
		}
	}

	return conn.Stor(fileName, r)
}
