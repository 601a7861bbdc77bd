package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "my backup!", want: "mybackup"},
		{in: "photos_2024-01", want: "photos_2024-01"},
		{in: "../../etc/passwd", want: "etcpasswd"},
		{in: "", want: "backup"},
		{in: "???", want: "backup"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "nightly.zip", FileName("nightly", false))
	assert.Equal(t, "nightly.zip.enc", FileName("nightly", true))
	assert.Equal(t, "backup.zip", FileName("", false))
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	content := []byte("zip bytes")

	archive, err := s.Save("my backup!", false, 2, bytes.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, "mybackup", archive.Name)
	assert.Equal(t, "mybackup.zip", archive.FileName)
	assert.NotEmpty(t, archive.UID)
	assert.Equal(t, int64(len(content)), archive.Size)
	assert.Equal(t, 2, archive.SourceCount)
	assert.False(t, archive.Encrypted)

	sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(sum[:]), archive.Digest)

	byBare, err := s.Get("mybackup")
	require.NoError(t, err)
	assert.Equal(t, archive.UID, byBare.UID)

	byFile, err := s.Get("mybackup.zip")
	require.NoError(t, err)
	assert.Equal(t, archive.UID, byFile.UID)
}

func TestGetResolvesEncryptedSuffix(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save("secrets", true, 1, bytes.NewReader([]byte("sealed")))
	require.NoError(t, err)

	archive, err := s.Get("secrets")
	require.NoError(t, err)
	assert.Equal(t, "secrets.zip.enc", archive.FileName)
	assert.True(t, archive.Encrypted)
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("missing")
	require.Error(t, err)
	assert.True(t, IsArchiveNotFound(err))
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save("daily", false, 1, bytes.NewReader([]byte("first")))
	require.NoError(t, err)
	second, err := s.Save("daily", false, 1, bytes.NewReader([]byte("second run")))
	require.NoError(t, err)

	archives, err := s.List()
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, second.UID, archives[0].UID)
	assert.Equal(t, int64(len("second run")), archives[0].Size)
}

func TestListIncludesCatalogless(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save("tracked", false, 1, bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "legacy.zip"), []byte("old bytes"), 0644))

	archives, err := s.List()
	require.NoError(t, err)
	require.Len(t, archives, 2)

	byName := map[string]bool{}
	for _, archive := range archives {
		byName[archive.FileName] = archive.UID != ""
	}
	assert.True(t, byName["tracked.zip"])
	assert.False(t, byName["legacy.zip"])
}

func TestListIgnoresCatalogDB(t *testing.T) {
	s := newTestStore(t)

	archives, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, archives)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save("gone", false, 1, bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	require.NoError(t, s.Delete("gone"))

	_, err = s.Get("gone")
	assert.True(t, IsArchiveNotFound(err))

	err = s.Delete("gone")
	assert.True(t, IsArchiveNotFound(err))
}

func TestSweep(t *testing.T) {
	s := newTestStore(t)

	old, err := s.Save("old", false, 1, bytes.NewReader([]byte("old")))
	require.NoError(t, err)
	old.Created = time.Now().Add(-48 * time.Hour)
	require.NoError(t, s.record(old))

	_, err = s.Save("fresh", false, 1, bytes.NewReader([]byte("fresh")))
	require.NoError(t, err)

	removed, err := s.Sweep(24 * time.Hour)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "old.zip", removed[0].FileName)

	archives, err := s.List()
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, "fresh.zip", archives[0].FileName)
}

func TestSweepForever(t *testing.T) {
	s := newTestStore(t)

	archive, err := s.Save("keep", false, 1, bytes.NewReader([]byte("keep")))
	require.NoError(t, err)
	archive.Created = time.Now().Add(-10 * 365 * 24 * time.Hour)
	require.NoError(t, s.record(archive))

	removed, err := s.Sweep(0)
	require.NoError(t, err)
	assert.Empty(t, removed)

	archives, err := s.List()
	require.NoError(t, err)
	assert.Len(t, archives, 1)
}
