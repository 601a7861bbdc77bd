package store

import (
	"time"

	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
)

// Sweep removes archives older than the window and returns what was
// removed. A zero window means archives are kept forever.
func (s *Store) Sweep(window time.Duration) ([]apiv1.Archive, error) {
	if window <= 0 {
		return nil, nil
	}

	archives, err := s.List()
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-window)
	var removed []apiv1.Archive
	for _, archive := range archives {
		if archive.Created.After(cutoff) {
			continue
		}
		if err := s.Delete(archive.FileName); err != nil {
			return removed, err
		}
		removed = append(removed, archive)
	}
	return removed, nil
}
