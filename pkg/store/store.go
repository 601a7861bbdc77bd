package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	bolt "go.etcd.io/bbolt"
)

const (
	SuffixPlain     = ".zip"
	SuffixEncrypted = ".zip.enc"

	catalogFile = "catalog.db"
)

var archivesBucket = []byte("archives")

// Store keeps archives as files in a single directory with a bbolt
// catalog next to them holding per-archive metadata.
type Store struct {
	dir string
	db  *bolt.DB
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, catalogFile), 0600, &bolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive catalog: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(archivesBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		dir: dir,
		db:  db,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Dir() string {
	return s.dir
}

// SanitizeName keeps letters, digits, dash and underscore, the way
// stored names have always been cleaned. An empty result becomes
// "backup".
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "backup"
	}
	return b.String()
}

// FileName returns the stored file name for a backup name.
func FileName(name string, encrypted bool) string {
	name = SanitizeName(name)
	if encrypted {
		return name + SuffixEncrypted
	}
	return name + SuffixPlain
}

// IsArchiveFileName reports whether name carries one of the archive
// suffixes the store writes.
func IsArchiveFileName(name string) bool {
	return strings.HasSuffix(name, SuffixPlain) || strings.HasSuffix(name, SuffixEncrypted)
}

// BaseName strips the archive suffix from a stored file name.
func BaseName(fileName string) string {
	fileName = strings.TrimSuffix(fileName, SuffixEncrypted)
	return strings.TrimSuffix(fileName, SuffixPlain)
}

// Save streams an archive into the store under the sanitized name,
// overwriting any previous archive stored under it, and records it in
// the catalog.
func (s *Store) Save(name string, encrypted bool, sourceCount int, r io.Reader) (apiv1.Archive, error) {
	fileName := FileName(name, encrypted)
	path := filepath.Join(s.dir, fileName)

	f, err := os.Create(path)
	if err != nil {
		return apiv1.Archive{}, err
	}

	digest := sha256.New()
	size, err := io.Copy(io.MultiWriter(f, digest), r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return apiv1.Archive{}, err
	}

	archive := apiv1.Archive{
		UID:         uuid.New().String(),
		Name:        SanitizeName(name),
		FileName:    fileName,
		Created:     time.Now(),
		Size:        size,
		Encrypted:   encrypted,
		Digest:      hex.EncodeToString(digest.Sum(nil)),
		SourceCount: sourceCount,
	}
	if err := s.record(archive); err != nil {
		return apiv1.Archive{}, err
	}
	return archive, nil
}

func (s *Store) record(archive apiv1.Archive) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(archive)
		if err != nil {
			return err
		}
		return tx.Bucket(archivesBucket).Put([]byte(archive.FileName), data)
	})
}

// Get resolves name to a stored archive. Name may be the stored file
// name or the bare backup name, in which case both suffixes are tried.
func (s *Store) Get(name string) (apiv1.Archive, error) {
	for _, fileName := range candidates(filepath.Base(name)) {
		info, err := os.Stat(filepath.Join(s.dir, fileName))
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return apiv1.Archive{}, err
		}
		return s.archiveFor(fileName, info), nil
	}
	return apiv1.Archive{}, &ErrArchiveNotFound{Name: name}
}

func candidates(name string) []string {
	if IsArchiveFileName(name) {
		return []string{name}
	}
	return []string{name + SuffixPlain, name + SuffixEncrypted}
}

// Open returns a reader over the stored archive file along with its
// metadata. The caller closes the file.
func (s *Store) Open(name string) (*os.File, apiv1.Archive, error) {
	archive, err := s.Get(name)
	if err != nil {
		return nil, apiv1.Archive{}, err
	}
	f, err := os.Open(filepath.Join(s.dir, archive.FileName))
	if err != nil {
		return nil, apiv1.Archive{}, err
	}
	return f, archive, nil
}

// Path returns the on-disk location of a stored archive.
func (s *Store) Path(name string) (string, error) {
	archive, err := s.Get(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, archive.FileName), nil
}

// List returns every archive in the store, newest first. Files that
// predate the catalog are still listed with what the filesystem knows
// about them.
func (s *Store) List() ([]apiv1.Archive, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var result []apiv1.Archive
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || !IsArchiveFileName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		result = append(result, s.archiveFor(entry.Name(), info))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Created.After(result[j].Created)
	})
	return result, nil
}

// Delete removes the archive file and its catalog record.
func (s *Store) Delete(name string) error {
	archive, err := s.Get(name)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, archive.FileName)); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(archivesBucket).Delete([]byte(archive.FileName))
	})
}

func (s *Store) archiveFor(fileName string, info os.FileInfo) apiv1.Archive {
	archive := apiv1.Archive{
		Name:      BaseName(fileName),
		FileName:  fileName,
		Created:   info.ModTime(),
		Size:      info.Size(),
		Encrypted: strings.HasSuffix(fileName, SuffixEncrypted),
	}

	_ = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(archivesBucket).Get([]byte(fileName))
		if data == nil {
			return nil
		}
		var recorded apiv1.Archive
		if err := json.Unmarshal(data, &recorded); err != nil {
			return nil
		}
		archive.UID = recorded.UID
		archive.Digest = recorded.Digest
		archive.SourceCount = recorded.SourceCount
		if !recorded.Created.IsZero() {
			archive.Created = recorded.Created
		}
		return nil
	})

	return archive
}
