package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/xyrionz/SafeArchive/pkg/system"
	"sigs.k8s.io/yaml"
)

const (
	// StoreSubdir is appended to a configured destination path, matching
	// where earlier releases placed their backups.
	StoreSubdir = "SafeArchive"

	MethodStored   = "ZIP_STORED"
	MethodDeflated = "ZIP_DEFLATED"
	MethodBzip2    = "ZIP_BZIP2"
	MethodLzma     = "ZIP_LZMA"

	ExpiryForever = "Forever"

	ProviderNone = "none"
	ProviderS3   = "s3"
	ProviderFTP  = "ftp"

	DefaultCompressionLevel = 6
)

type S3Config struct {
	Bucket string `json:"bucket,omitempty"`
	Region string `json:"region,omitempty"`
	Prefix string `json:"prefix,omitempty"`
}

type FTPConfig struct {
	Address   string `json:"address,omitempty"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	Directory string `json:"directory,omitempty"`
}

type Config struct {
	DestinationPath   string     `json:"destinationPath,omitempty"`
	SourcePaths       []string   `json:"sourcePaths,omitempty"`
	CompressionMethod string     `json:"compressionMethod,omitempty"`
	CompressionLevel  int        `json:"compressionLevel,omitempty"`
	BackupExpiry      string     `json:"backupExpiry,omitempty"`
	Encryption        bool       `json:"encryption,omitempty"`
	Notifications     bool       `json:"notifications,omitempty"`
	StorageProvider   string     `json:"storageProvider,omitempty"`
	S3                *S3Config  `json:"s3,omitempty"`
	FTP               *FTPConfig `json:"ftp,omitempty"`
	BackupSchedule    string     `json:"backupSchedule,omitempty"`

	filename string
}

func (c *Config) Sanitize() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	if c.FTP != nil {
		ftp := *c.FTP
		if ftp.Password != "" {
			ftp.Password = "<redacted>"
		}
		cp.FTP = &ftp
	}
	return &cp
}

func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.filename, data, 0655)
}

func (c *Config) GetFilename() string {
	return c.filename
}

// StoreDir returns the directory archives are written to. The
// SAFEARCHIVE_BACKUP_DIR environment variable wins over the configured
// destination, and an empty config falls back to a directory under the
// OS temp dir.
func (c *Config) StoreDir() string {
	if dir := os.Getenv(system.BackupDirEnv); dir != "" {
		return dir
	}
	if c.DestinationPath != "" {
		return filepath.Join(c.DestinationPath, StoreSubdir)
	}
	return system.BackupDir()
}

// Method returns the configured compression method, defaulting to
// ZIP_DEFLATED.
func (c *Config) Method() string {
	if c.CompressionMethod == "" {
		return MethodDeflated
	}
	return c.CompressionMethod
}

// Level returns the configured compression level clamped to 1..9.
func (c *Config) Level() int {
	if c.CompressionLevel == 0 {
		return DefaultCompressionLevel
	}
	if c.CompressionLevel < 1 {
		return 1
	}
	if c.CompressionLevel > 9 {
		return 9
	}
	return c.CompressionLevel
}

// Provider returns the configured storage provider, defaulting to none.
func (c *Config) Provider() string {
	if c.StorageProvider == "" {
		return ProviderNone
	}
	return c.StorageProvider
}

// ExpiryWindow returns how long archives are kept before the expiry
// sweep removes them. The second return is false when archives are kept
// forever.
func (c *Config) ExpiryWindow() (time.Duration, bool) {
	switch c.BackupExpiry {
	case "1 month":
		return 30 * 24 * time.Hour, true
	case "3 months":
		return 90 * 24 * time.Hour, true
	case "6 months":
		return 180 * 24 * time.Hour, true
	case "9 months":
		return 270 * 24 * time.Hour, true
	case "1 year":
		return 365 * 24 * time.Hour, true
	}
	return 0, false
}

// AddSource records a new backup source directory. The path must exist,
// be a directory, and not already be configured.
func (c *Config) AddSource(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", abs)
	}
	for _, existing := range c.SourcePaths {
		if existing == abs {
			return fmt.Errorf("%s is already a backup source", abs)
		}
	}
	c.SourcePaths = append(c.SourcePaths, abs)
	return nil
}

// RemoveSource drops a backup source, matching either the literal
// configured value or its absolute form.
func (c *Config) RemoveSource(path string) error {
	abs, _ := filepath.Abs(path)
	for i, existing := range c.SourcePaths {
		if existing == path || existing == abs {
			c.SourcePaths = append(c.SourcePaths[:i], c.SourcePaths[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s is not a backup source", path)
}

func ReadConfig() (*Config, error) {
	filename, err := File()
	if err != nil {
		return nil, err
	}
	data, err := readFile(filename)
	if err != nil {
		return nil, err
	}
	result := &Config{}
	if err := yaml.Unmarshal(data, result); err != nil {
		return nil, err
	}

	result.filename = filename
	return result, nil
}

func File() (string, error) {
	var (
		location = os.Getenv(system.ConfigFileEnv)
		err      error
	)

	if location == "" {
		location, err = xdg.ConfigFile("safearchive/config.yaml")
		if err != nil {
			return "", fmt.Errorf("failed to read user config from standard location: %w", err)
		}
	}

	return location, nil
}

func readFile(location string) ([]byte, error) {
	data, err := os.ReadFile(location)
	if os.IsNotExist(err) {
		return []byte("{}"), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read user config %s: %w", location, err)
	}

	return data, nil
}
