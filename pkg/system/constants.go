package system

import (
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultPort        = 8080
	DefaultUploadLimit = 150 * 1024 * 1024

	PortEnv        = "PORT"
	APIKeyEnv      = "SERVICE_API_KEY"
	UploadLimitEnv = "MAX_TOTAL_UPLOAD_BYTES"
	BackupDirEnv   = "SAFEARCHIVE_BACKUP_DIR"
	ConfigFileEnv  = "SAFEARCHIVE_CONFIG_FILE"
	ServerEnv      = "SAFEARCHIVE_SERVER"
)

// Server returns the remote service URL the CLI should talk to, or
// empty when operations run against the local store.
func Server() string {
	return os.Getenv(ServerEnv)
}

// ListenPort returns the TCP port the API server binds, honoring the
// PORT environment variable when it parses to a positive integer.
func ListenPort() int {
	if v := os.Getenv(PortEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultPort
}

// UploadLimit returns the maximum accepted size in bytes for the sum of
// all files in a single upload request.
func UploadLimit() int64 {
	if v := os.Getenv(UploadLimitEnv); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return DefaultUploadLimit
}

// BackupDir returns the directory the server stores archives in when no
// destination is configured.
func BackupDir() string {
	if dir := os.Getenv(BackupDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), "safearchive_backups")
}

// APIKey returns the key clients must present, or empty when the server
// runs in open access mode.
func APIKey() string {
	return os.Getenv(APIKeyEnv)
}
