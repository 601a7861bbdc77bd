package backup

import (
	"bytes"
	"context"
	"io"

	"github.com/xyrionz/SafeArchive/pkg/archive"
	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	"github.com/xyrionz/SafeArchive/pkg/encryption/aescbc"
)

// Restore extracts a stored archive into dest, decrypting it first when
// it is sealed. An empty dest extracts into the current directory.
func (e *Engine) Restore(ctx context.Context, name, password, dest string) (apiv1.Archive, error) {
	if err := ctx.Err(); err != nil {
		return apiv1.Archive{}, err
	}

	f, archived, err := e.Store.Open(name)
	if err != nil {
		return apiv1.Archive{}, err
	}
	defer f.Close()

	if dest == "" {
		dest = "."
	}

	if !archived.Encrypted {
		return archived, archive.Extract(f, archived.Size, dest)
	}

	plain, err := e.unseal(f, password)
	if err != nil {
		return apiv1.Archive{}, err
	}
	return archived, archive.Extract(bytes.NewReader(plain), int64(len(plain)), dest)
}

// RestoreZip writes the decrypted plain zip of a stored archive to w.
func (e *Engine) RestoreZip(ctx context.Context, name, password string, w io.Writer) (apiv1.Archive, error) {
	if err := ctx.Err(); err != nil {
		return apiv1.Archive{}, err
	}

	f, archived, err := e.Store.Open(name)
	if err != nil {
		return apiv1.Archive{}, err
	}
	defer f.Close()

	if !archived.Encrypted {
		_, err = io.Copy(w, f)
		return archived, err
	}

	plain, err := e.unseal(f, password)
	if err != nil {
		return apiv1.Archive{}, err
	}
	_, err = w.Write(plain)
	return archived, err
}

func (e *Engine) unseal(r io.Reader, password string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return aescbc.Decrypt(data, password)
}
