package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyrionz/SafeArchive/pkg/config"
	"github.com/xyrionz/SafeArchive/pkg/encryption/aescbc"
	"github.com/xyrionz/SafeArchive/pkg/system"
)

func newTestEngine(t *testing.T, cfg *config.Config) *Engine {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	t.Setenv(system.BackupDirEnv, t.TempDir())

	e, err := NewEngine(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = e.Close()
	})
	return e
}

func sourceDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func zipNames(t *testing.T, data []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestBackupPlain(t *testing.T) {
	e := newTestEngine(t, nil)
	src := sourceDir(t, map[string]string{"docs/readme.md": "readme"})

	archived, err := e.Backup(context.Background(), BackupOptions{
		Name:    "job",
		Sources: []string{filepath.Join(src, "docs")},
	})
	require.NoError(t, err)

	assert.Equal(t, "job.zip", archived.FileName)
	assert.False(t, archived.Encrypted)
	assert.Equal(t, 1, archived.SourceCount)
	assert.NotEmpty(t, archived.UID)

	data, err := os.ReadFile(filepath.Join(e.Store.Dir(), "job.zip"))
	require.NoError(t, err)
	assert.Contains(t, zipNames(t, data), "docs/readme.md")
}

func TestBackupEncryptedRestoreRoundTrip(t *testing.T) {
	e := newTestEngine(t, nil)
	src := sourceDir(t, map[string]string{"docs/readme.md": "readme"})

	archived, err := e.Backup(context.Background(), BackupOptions{
		Name:     "sealed",
		Sources:  []string{filepath.Join(src, "docs")},
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "sealed.zip.enc", archived.FileName)
	assert.True(t, archived.Encrypted)

	dest := t.TempDir()
	_, err = e.Restore(context.Background(), "sealed", "s3cret", dest)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dest, "docs", "readme.md"))
	require.NoError(t, err)
	assert.Equal(t, "readme", string(content))
}

func TestRestoreWrongPassword(t *testing.T) {
	e := newTestEngine(t, nil)
	src := sourceDir(t, map[string]string{"a.txt": "a"})

	_, err := e.Backup(context.Background(), BackupOptions{
		Name:     "sealed",
		Sources:  []string{filepath.Join(src, "a.txt")},
		Password: "right",
	})
	require.NoError(t, err)

	_, err = e.Restore(context.Background(), "sealed", "wrong", t.TempDir())
	require.Error(t, err)
	assert.True(t, aescbc.IsWrongPassword(err))
}

func TestBackupNoSources(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.Backup(context.Background(), BackupOptions{Name: "empty"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to back up")
}

func TestBackupAllSourcesMissing(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.Backup(context.Background(), BackupOptions{
		Name:    "ghost",
		Sources: []string{filepath.Join(t.TempDir(), "nope")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sources could be archived")
}

func TestBackupProgress(t *testing.T) {
	e := newTestEngine(t, nil)
	src := sourceDir(t, map[string]string{
		"one/a.txt": "a",
		"two/b.txt": "b",
	})

	progress := make(chan Progress, 4)
	_, err := e.Backup(context.Background(), BackupOptions{
		Name: "tracked",
		Sources: []string{
			filepath.Join(src, "one"),
			filepath.Join(src, "two"),
		},
		Progress: progress,
	})
	require.NoError(t, err)

	var events []Progress
	for update := range progress {
		events = append(events, update)
	}
	require.Len(t, events, 2)
	assert.Equal(t, Progress{Total: 2, Complete: 1}, events[0])
	assert.Equal(t, Progress{Total: 2, Complete: 2}, events[1])
}

func TestZipSealed(t *testing.T) {
	e := newTestEngine(t, nil)
	src := sourceDir(t, map[string]string{"a.txt": "payload"})

	var out bytes.Buffer
	added, err := e.Zip(context.Background(), &out, []string{filepath.Join(src, "a.txt")}, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	plain, err := aescbc.Decrypt(out.Bytes(), "s3cret")
	require.NoError(t, err)
	assert.Contains(t, zipNames(t, plain), "a.txt")
}

func TestRestoreZipPlainStream(t *testing.T) {
	e := newTestEngine(t, nil)
	src := sourceDir(t, map[string]string{"a.txt": "a"})

	_, err := e.Backup(context.Background(), BackupOptions{
		Name:    "stream",
		Sources: []string{filepath.Join(src, "a.txt")},
	})
	require.NoError(t, err)

	var out bytes.Buffer
	archived, err := e.RestoreZip(context.Background(), "stream", "", &out)
	require.NoError(t, err)
	assert.Equal(t, "stream.zip", archived.FileName)
	assert.True(t, strings.HasPrefix(out.String(), "PK"))
}

func TestRestoreZipDecrypts(t *testing.T) {
	e := newTestEngine(t, nil)
	src := sourceDir(t, map[string]string{"a.txt": "a"})

	_, err := e.Backup(context.Background(), BackupOptions{
		Name:     "sealed",
		Sources:  []string{filepath.Join(src, "a.txt")},
		Password: "s3cret",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = e.RestoreZip(context.Background(), "sealed", "s3cret", &out)
	require.NoError(t, err)
	assert.Contains(t, zipNames(t, out.Bytes()), "a.txt")
}

func TestPruneRemovesExpired(t *testing.T) {
	e := newTestEngine(t, &config.Config{BackupExpiry: "1 month"})

	old := filepath.Join(e.Store.Dir(), "ancient.zip")
	require.NoError(t, os.WriteFile(old, []byte("old zip"), 0644))
	aged := time.Now().Add(-60 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(old, aged, aged))

	removed, err := e.Prune()
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "ancient.zip", removed[0].FileName)
}

func TestPruneKeepsForever(t *testing.T) {
	e := newTestEngine(t, nil)

	old := filepath.Join(e.Store.Dir(), "ancient.zip")
	require.NoError(t, os.WriteFile(old, []byte("old zip"), 0644))
	aged := time.Now().Add(-10 * 365 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(old, aged, aged))

	removed, err := e.Prune()
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestDefaultName(t *testing.T) {
	name := DefaultName(filepath.Join("some", "where", "photos"))
	matched, err := regexp.MatchString(`^photos_\d{14}$`, name)
	require.NoError(t, err)
	assert.True(t, matched, name)
}

func TestDefaultServiceName(t *testing.T) {
	assert.Equal(t, "backup_"+strconv.Itoa(os.Getpid()), DefaultServiceName())
}
