package chash

import (
	"io"
	"sync"
)

// Locked wraps a Table with a read/write mutex so it can be shared between
// goroutines. Every operation holds the lock for its whole duration,
// including any resize it triggers.
type Locked struct {
	mu sync.RWMutex
	t  *Table
}

// NewLocked creates an empty table guarded by a mutex.
func NewLocked(opts ...Option) (*Locked, error) {
	t, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return &Locked{t: t}, nil
}

// Insert adds key to the table.
func (l *Locked) Insert(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.t.Insert(key)
}

// Delete removes the first entry matching key and reports whether one was
// found.
func (l *Locked) Delete(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.t.Delete(key)
}

// Search returns the first entry matching key.
func (l *Locked) Search(key string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.t.Search(key)
}

// Contains reports whether at least one entry matches key.
func (l *Locked) Contains(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.t.Contains(key)
}

// Len returns the number of entries, counting duplicates.
func (l *Locked) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.t.Len()
}

// Cap returns the current number of buckets.
func (l *Locked) Cap() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.t.Cap()
}

// Stats reports the table's current shape.
func (l *Locked) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.t.Stats()
}

// Dump writes the bucket listing of Table.Dump to w.
func (l *Locked) Dump(w io.Writer) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.t.Dump(w)
}

// String returns the output of Dump.
func (l *Locked) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.t.String()
}
