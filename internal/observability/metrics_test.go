package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Snapshot(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.RecordRequest("/api/v1/products", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/api/v1/products", "GET", 200, 7*time.Millisecond)
	m.RecordRequest("/api/v1/users/", "GET", 401, time.Millisecond)
	m.RecordError("/api/v1/users/", "GET", "UNAUTHORIZED")

	requests, errors := m.Snapshot()
	assert.Equal(t, int64(2), requests["/api/v1/products|GET|200"])
	assert.Equal(t, int64(1), requests["/api/v1/users/|GET|401"])
	assert.Equal(t, int64(1), errors["/api/v1/users/|GET|UNAUTHORIZED"])

	// Snapshot hands out copies; mutating them must not touch the counters.
	requests["/api/v1/products|GET|200"] = 99
	fresh, _ := m.Snapshot()
	assert.Equal(t, int64(2), fresh["/api/v1/products|GET|200"])
}

func TestMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.RecordRequest("/x", "GET", 200, 0)
	m.RecordError("/x", "GET", "INTERNAL_ERROR")

	requests, errors := m.Snapshot()
	require.Nil(t, requests)
	require.Nil(t, errors)
}
