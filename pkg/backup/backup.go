package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/xyrionz/SafeArchive/pkg/archive"
	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	"github.com/xyrionz/SafeArchive/pkg/config"
	"github.com/xyrionz/SafeArchive/pkg/encryption/aescbc"
	"github.com/xyrionz/SafeArchive/pkg/metrics"
	"github.com/xyrionz/SafeArchive/pkg/remote"
	"github.com/xyrionz/SafeArchive/pkg/store"
)

// Progress reports how far a backup has come. Total and Complete count
// sources.
type Progress struct {
	Total    int64
	Complete int64
	Error    string
}

// Engine ties the zip writer, password sealing, the store and the
// optional off-site uploader together.
type Engine struct {
	Config   *config.Config
	Store    *store.Store
	Uploader remote.Uploader
}

func NewEngine(cfg *config.Config) (*Engine, error) {
	s, err := store.New(cfg.StoreDir())
	if err != nil {
		return nil, err
	}
	uploader, err := remote.ForConfig(cfg)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return &Engine{
		Config:   cfg,
		Store:    s,
		Uploader: uploader,
	}, nil
}

func (e *Engine) Close() error {
	return e.Store.Close()
}

type BackupOptions struct {
	Name     string
	Sources  []string
	Password string
	Progress chan<- Progress
}

// Backup zips the sources, seals the zip when a password is given,
// stores the result and hands it to the configured provider. Uploads
// are best effort. The progress channel, when given, is closed before
// Backup returns.
func (e *Engine) Backup(ctx context.Context, opts BackupOptions) (apiv1.Archive, error) {
	if opts.Progress != nil {
		defer close(opts.Progress)
	}

	if len(opts.Sources) == 0 {
		return apiv1.Archive{}, fmt.Errorf("nothing to back up")
	}

	name := opts.Name
	if name == "" {
		name = DefaultName(opts.Sources[0])
	}

	tmp, err := os.CreateTemp(e.Store.Dir(), ".backup-*.zip")
	if err != nil {
		return apiv1.Archive{}, err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	added, err := e.writeZip(ctx, tmp, opts)
	if err != nil {
		return apiv1.Archive{}, err
	}
	if added == 0 {
		return apiv1.Archive{}, fmt.Errorf("no sources could be archived")
	}

	var archived apiv1.Archive
	if opts.Password != "" {
		data, err := os.ReadFile(tmp.Name())
		if err != nil {
			return apiv1.Archive{}, err
		}
		sealed, err := aescbc.Encrypt(data, opts.Password)
		if err != nil {
			return apiv1.Archive{}, err
		}
		archived, err = e.Store.Save(name, true, added, bytes.NewReader(sealed))
		if err != nil {
			return apiv1.Archive{}, err
		}
	} else {
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			return apiv1.Archive{}, err
		}
		archived, err = e.Store.Save(name, false, added, tmp)
		if err != nil {
			return apiv1.Archive{}, err
		}
	}

	metrics.ArchivesStoredTotal.Inc()
	metrics.BackupBytesTotal.Add(float64(archived.Size))

	e.upload(ctx, archived)

	if e.Config.Notifications {
		logrus.Infof("Backup %s completed (%s from %d sources)", archived.FileName,
			humanize.IBytes(uint64(archived.Size)), added)
	}
	return archived, nil
}

// Zip writes a zip of sources to w, sealed when a password is given,
// and returns how many sources were archived.
func (e *Engine) Zip(ctx context.Context, w io.Writer, sources []string, password string) (int, error) {
	if password == "" {
		return e.writeZip(ctx, w, BackupOptions{Sources: sources})
	}

	var buf bytes.Buffer
	added, err := e.writeZip(ctx, &buf, BackupOptions{Sources: sources})
	if err != nil {
		return added, err
	}
	sealed, err := aescbc.Encrypt(buf.Bytes(), password)
	if err != nil {
		return added, err
	}
	_, err = w.Write(sealed)
	return added, err
}

func (e *Engine) writeZip(ctx context.Context, out io.Writer, opts BackupOptions) (int, error) {
	method, exact := archive.MethodByName(e.Config.Method())
	if !exact {
		logrus.Warnf("Compression method %s is unsupported, using %s", e.Config.Method(), config.MethodDeflated)
	}

	w := archive.NewWriter(out, archive.Options{
		Method: method,
		Level:  e.Config.Level(),
	})

	var added int
	total := int64(len(opts.Sources))
	for i, source := range opts.Sources {
		if err := ctx.Err(); err != nil {
			_ = w.Close()
			return added, err
		}
		ok, err := w.Add(source)
		if err != nil {
			_ = w.Close()
			return added, err
		}
		if ok {
			added++
		} else {
			logrus.Warnf("Skipping missing source %s", source)
		}
		if opts.Progress != nil {
			opts.Progress <- Progress{
				Total:    total,
				Complete: int64(i + 1),
			}
		}
	}

	return added, w.Close()
}

func (e *Engine) upload(ctx context.Context, archived apiv1.Archive) {
	if e.Uploader == nil {
		return
	}

	f, _, err := e.Store.Open(archived.FileName)
	if err != nil {
		logrus.Errorf("Failed to open %s for upload: %v", archived.FileName, err)
		metrics.UploadsTotal.WithLabelValues(e.Uploader.Name(), "error").Inc()
		return
	}
	defer f.Close()

	if err := e.Uploader.Upload(ctx, archived.FileName, f, archived.Size); err != nil {
		logrus.Errorf("Failed to upload %s to %s: %v", archived.FileName, e.Uploader.Name(), err)
		metrics.UploadsTotal.WithLabelValues(e.Uploader.Name(), "error").Inc()
		return
	}

	metrics.UploadsTotal.WithLabelValues(e.Uploader.Name(), "success").Inc()
	logrus.Infof("Uploaded %s to %s", archived.FileName, e.Uploader.Name())
}
