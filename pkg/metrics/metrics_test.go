package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGathersServiceMetrics(t *testing.T) {
	RequestsTotal.WithLabelValues("/health", "200").Inc()
	ArchivesStoredTotal.Inc()
	BackupBytesTotal.Add(1024)
	ArchivesRemovedTotal.WithLabelValues("expired").Inc()
	UploadsTotal.WithLabelValues("s3", "error").Inc()

	families, err := Registry.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, family := range families {
		names[family.GetName()] = true
	}

	assert.True(t, names["safearchive_http_requests_total"])
	assert.True(t, names["safearchive_backup_bytes_total"])
	assert.True(t, names["safearchive_archives_stored_total"])
	assert.True(t, names["safearchive_archives_removed_total"])
	assert.True(t, names["safearchive_uploads_total"])
	assert.True(t, names["go_goroutines"])
}

func TestHandlerServesExposition(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)

	Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "safearchive_archives_stored_total")
}
