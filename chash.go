package chash

import "github.com/sirupsen/logrus"

// node is a link in a bucket chain. The first node of every chain is a
// sentinel whose key is never read; real keys always come after it.
type node struct {
	key  string
	next *node
}

// Entry is a copy of a key found by Search. It holds no reference into the
// table.
type Entry struct {
	key string
}

// Key returns the stored key.
func (e Entry) Key() string {
	return e.key
}

// Table is a hash table of string keys using separate chaining. Duplicate
// keys are kept as separate entries. Capacity doubles when the load factor
// rises above the expand threshold and halves when it drops below the
// shrink threshold.
//
// A Table is not safe for concurrent use; see Locked.
type Table struct {
	buckets  map[uint64]*node
	capacity int
	count    int

	expand float64
	shrink float64
	hash   Hasher
	log    logrus.FieldLogger

	growths int
	shrinks int
}

// New creates an empty table. Without options it starts with one bucket,
// expands above a load factor of 1.25 and shrinks below 0.5.
func New(opts ...Option) (*Table, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Table{
		buckets:  make(map[uint64]*node),
		capacity: cfg.InitialCapacity,
		expand:   cfg.ExpandThreshold,
		shrink:   cfg.ShrinkThreshold,
		hash:     cfg.Hasher,
		log:      cfg.Logger,
	}, nil
}

// Insert adds key to the table. No uniqueness check is made: inserting a
// key twice stores two entries.
func (t *Table) Insert(key string) {
	appendKey(t.buckets, t.bucketIndex(key, t.capacity), key)
	t.count++
	t.maybeGrow()
}

// Delete removes the first entry matching key from its bucket chain and
// reports whether one was found. Other copies of the key are left alone.
func (t *Table) Delete(key string) bool {
	removed := false
	if head, ok := t.buckets[t.bucketIndex(key, t.capacity)]; ok {
		for prev := head; prev.next != nil; prev = prev.next {
			if prev.next.key == key {
				prev.next = prev.next.next
				removed = true
				break
			}
		}
	}
	if removed {
		t.count--
	}
	t.maybeShrink()
	return removed
}

// Search returns the first entry matching key.
func (t *Table) Search(key string) (Entry, bool) {
	head, ok := t.buckets[t.bucketIndex(key, t.capacity)]
	if !ok {
		return Entry{}, false
	}
	for n := head.next; n != nil; n = n.next {
		if n.key == key {
			return Entry{key: n.key}, true
		}
	}
	return Entry{}, false
}

// Contains reports whether at least one entry matches key.
func (t *Table) Contains(key string) bool {
	_, ok := t.Search(key)
	return ok
}

// Len returns the number of entries, counting duplicates.
func (t *Table) Len() int {
	return t.count
}

// Cap returns the current number of buckets.
func (t *Table) Cap() int {
	return t.capacity
}

// LoadFactor returns Len()/Cap().
func (t *Table) LoadFactor() float64 {
	return loadFactor(t.count, t.capacity)
}

func (t *Table) bucketIndex(key string, capacity int) uint64 {
	return t.hash(key) % uint64(capacity)
}

// appendKey links a new node holding key at the tail of bucket idx,
// creating the sentinel head on first use.
func appendKey(buckets map[uint64]*node, idx uint64, key string) {
	tail, ok := buckets[idx]
	if !ok {
		tail = &node{}
		buckets[idx] = tail
	}
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = &node{key: key}
}

func loadFactor(count, capacity int) float64 {
	return float64(count) / float64(capacity)
}
