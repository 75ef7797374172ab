package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3fenban/fanban-cli/internal/storage"
)

func TestRecorderAppendsInOrder(t *testing.T) {
	r := NewRecorder(storage.NewMemStore())

	r.Record(EventRequest, "req-1", map[string]string{"url": "/banners"})
	r.Record(EventResponse, "req-1", map[string]int{"status_code": 200})
	r.Record(EventError, "req-2", map[string]string{"error": "timeout"})

	entries := r.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, EventRequest, entries[0].Kind)
	require.Equal(t, EventResponse, entries[1].Kind)
	require.Equal(t, EventError, entries[2].Kind)
	require.Equal(t, "req-1", entries[0].RequestID)
	require.NotEmpty(t, entries[0].Timestamp)
}

func TestRecorderEvictsOldestBeyondCap(t *testing.T) {
	r := NewRecorder(storage.NewMemStore())

	for i := 0; i < 101; i++ {
		r.Record(EventRequest, fmt.Sprintf("req-%d", i), map[string]int{"n": i})
	}

	entries := r.Entries()
	require.Len(t, entries, 100)
	// req-0 was evicted; the log holds req-1 through req-100.
	require.Equal(t, "req-1", entries[0].RequestID)
	require.Equal(t, "req-100", entries[99].RequestID)
}

func TestRecorderClear(t *testing.T) {
	r := NewRecorder(storage.NewMemStore())
	r.Record(EventRequest, "req-1", nil)
	r.Clear()
	require.Empty(t, r.Entries())
}

// brokenStore fails every operation, standing in for unavailable storage.
type brokenStore struct{}

func (brokenStore) Get(string, any) (bool, error) { return false, errors.New("storage unavailable") }
func (brokenStore) Set(string, any) error         { return errors.New("storage unavailable") }
func (brokenStore) Remove(string) error           { return errors.New("storage unavailable") }

func TestRecorderSwallowsStorageFailures(t *testing.T) {
	r := NewRecorder(brokenStore{})
	var warnings int
	r.warnf = func(string, ...any) { warnings++ }

	// None of these may panic or surface an error.
	r.Record(EventRequest, "req-1", map[string]string{"url": "/banners"})
	require.Empty(t, r.Entries())
	r.Clear()
	require.Greater(t, warnings, 0)
}

func TestRecorderUnencodablePayloadDropped(t *testing.T) {
	r := NewRecorder(storage.NewMemStore())
	var warnings int
	r.warnf = func(string, ...any) { warnings++ }

	r.Record(EventRequest, "req-1", func() {})

	require.Empty(t, r.Entries())
	require.Equal(t, 1, warnings)
}
