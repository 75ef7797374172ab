package api

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/3fenban/fanban-cli/internal/storage"
)

// EventKind labels an activity log entry.
type EventKind string

const (
	EventRequest  EventKind = "REQUEST"
	EventResponse EventKind = "RESPONSE"
	EventError    EventKind = "ERROR"
)

// logKey is the storage key holding the serialized entry array.
const logKey = "network_logs"

// maxLogEntries bounds the persisted log; the oldest entries are evicted
// first when the cap is exceeded.
const maxLogEntries = 100

// LogEntry is one diagnostic record of network activity. RequestID ties the
// attempts of a single dispatch together.
type LogEntry struct {
	Timestamp string          `json:"ts"`
	Kind      EventKind       `json:"kind"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Recorder appends network activity to the persisted diagnostic log. It is a
// side channel: every failure is swallowed (at most a stderr warning) so
// logging can never break the request being logged. The read-modify-write is
// not exclusive across concurrent dispatches; interleaved writers may lose
// entries, which is acceptable for a diagnostic-only log.
type Recorder struct {
	store storage.Store
	now   func() time.Time
	warnf func(format string, args ...any)
}

// NewRecorder returns a Recorder backed by store.
func NewRecorder(store storage.Store) *Recorder {
	return &Recorder{
		store: store,
		now:   time.Now,
		warnf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		},
	}
}

// Record appends one entry, evicting the oldest beyond the 100-entry cap.
func (r *Recorder) Record(kind EventKind, requestID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.warnf("failed to encode network log payload: %v", err)
		return
	}
	entry := LogEntry{
		Timestamp: r.now().UTC().Format(time.RFC3339),
		Kind:      kind,
		RequestID: requestID,
		Payload:   data,
	}

	var entries []LogEntry
	if _, err := r.store.Get(logKey, &entries); err != nil {
		r.warnf("failed to read network log: %v", err)
		entries = nil
	}
	entries = append(entries, entry)
	if len(entries) > maxLogEntries {
		entries = entries[len(entries)-maxLogEntries:]
	}
	if err := r.store.Set(logKey, entries); err != nil {
		r.warnf("failed to save network log: %v", err)
	}
}

// Entries returns the persisted log, oldest first. Read failures yield an
// empty log.
func (r *Recorder) Entries() []LogEntry {
	var entries []LogEntry
	if _, err := r.store.Get(logKey, &entries); err != nil {
		r.warnf("failed to read network log: %v", err)
		return nil
	}
	return entries
}

// Clear discards the persisted log.
func (r *Recorder) Clear() {
	if err := r.store.Remove(logKey); err != nil {
		r.warnf("failed to clear network log: %v", err)
	}
}
