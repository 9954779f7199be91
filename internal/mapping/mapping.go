// Package mapping records the run-scoped replacement identifiers assigned to
// unsafe names.
package mapping

import (
	"strconv"

	"smalirename/internal/naming"
)

// DefaultPrefix is prepended to the creation index of every generated name.
const DefaultPrefix = "Class"

// Entry is one old → new identifier pair.
type Entry struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// Mapping assigns safe identifiers to unsafe ones in creation order. It is
// owned by a single run and is not safe for concurrent use.
type Mapping struct {
	prefix  string
	index   map[string]int
	entries []Entry
}

// New returns an empty mapping. An empty prefix selects DefaultPrefix.
func New(prefix string) *Mapping {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Mapping{prefix: prefix, index: make(map[string]int)}
}

// Resolve returns the safe identifier for id. Plain identifiers are returned
// unchanged and never recorded. An unsafe identifier seen before returns its
// existing replacement; a new one is assigned prefix+N where N is the number
// of entries recorded so far.
func (m *Mapping) Resolve(id string) string {
	if naming.IsValidPlainName(id) {
		return id
	}
	if pos, ok := m.index[id]; ok {
		return m.entries[pos].New
	}
	replacement := m.prefix + strconv.Itoa(len(m.entries))
	m.index[id] = len(m.entries)
	m.entries = append(m.entries, Entry{Old: id, New: replacement})
	return replacement
}

// Len reports the number of recorded entries.
func (m *Mapping) Len() int {
	return len(m.entries)
}

// Lookup returns the replacement recorded for id.
func (m *Mapping) Lookup(id string) (string, bool) {
	pos, ok := m.index[id]
	if !ok {
		return "", false
	}
	return m.entries[pos].New, true
}

// Entries returns a copy of the recorded pairs in creation order.
func (m *Mapping) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Freeze returns a read-only snapshot of the current entries. Later calls to
// Resolve do not affect the snapshot.
func (m *Mapping) Freeze() Snapshot {
	entries := m.Entries()
	lookup := make(map[string]string, len(entries))
	for _, e := range entries {
		lookup[e.Old] = e.New
	}
	return Snapshot{entries: entries, lookup: lookup}
}

// Snapshot is the frozen view of a Mapping handed to the substitution phase.
type Snapshot struct {
	entries []Entry
	lookup  map[string]string
}

// Len reports the number of entries.
func (s Snapshot) Len() int {
	return len(s.entries)
}

// Lookup returns the replacement for old.
func (s Snapshot) Lookup(old string) (string, bool) {
	v, ok := s.lookup[old]
	return v, ok
}

// Entries returns a copy of the pairs in creation order.
func (s Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
