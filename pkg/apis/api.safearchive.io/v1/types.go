package v1

import "time"

// Archive describes one stored backup archive.
type Archive struct {
	UID         string    `json:"uid,omitempty"`
	Name        string    `json:"name,omitempty"`
	FileName    string    `json:"fileName,omitempty"`
	Created     time.Time `json:"created,omitempty"`
	Size        int64     `json:"size,omitempty"`
	Encrypted   bool      `json:"encrypted,omitempty"`
	Digest      string    `json:"digest,omitempty"`
	SourceCount int       `json:"sourceCount,omitempty"`
}

type ArchiveList struct {
	Items []Archive `json:"items"`
}

// Source is one configured backup source path.
type Source struct {
	Path    string `json:"path,omitempty"`
	Present bool   `json:"present"`
}

type SourceList struct {
	Items []Source `json:"items"`
}

// Info summarizes the state of a server or local store.
type Info struct {
	Version      string `json:"version,omitempty"`
	Destination  string `json:"destination,omitempty"`
	ArchiveCount int    `json:"archiveCount"`
	TotalSize    int64  `json:"totalSize"`
	Encryption   bool   `json:"encryption"`
	Provider     string `json:"provider,omitempty"`
	Expiry       string `json:"expiry,omitempty"`
	Protected    bool   `json:"protected"`
}

// StatusResponse is the body of GET / and mirrors the historical wire
// format, so existing probes keep working.
type StatusResponse struct {
	Status  string `json:"status"`
	Project string `json:"project"`
}

// BackupResponse is the body of POST /backup. The backup_file key is
// part of the historical wire format.
type BackupResponse struct {
	Status     string `json:"status"`
	BackupFile string `json:"backup_file"`
}

// ErrorResponse is the error body for all JSON endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
