package chash

import (
	"maps"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
)

// MaxCapacity is the largest bucket count a table grows to, the highest
// power of two an int can hold.
const MaxCapacity = math.MaxInt/2 + 1

// maybeGrow doubles the capacity until the load factor is no longer above
// the expand threshold or MaxCapacity is reached, then rehashes once.
func (t *Table) maybeGrow() {
	if loadFactor(t.count, t.capacity) <= t.expand {
		return
	}
	capacity := t.capacity
	for capacity < MaxCapacity && loadFactor(t.count, capacity) > t.expand {
		capacity *= 2
	}
	if capacity == t.capacity {
		return
	}
	t.growths++
	t.resize(capacity)
}

// maybeShrink halves the capacity until the load factor is no longer below
// the shrink threshold or a single bucket remains, then rehashes once.
func (t *Table) maybeShrink() {
	if loadFactor(t.count, t.capacity) >= t.shrink {
		return
	}
	capacity := t.capacity
	for capacity > 1 && loadFactor(t.count, capacity) < t.shrink {
		capacity /= 2
	}
	if capacity == t.capacity {
		return
	}
	t.shrinks++
	t.resize(capacity)
}

// resize rebuilds every chain for the new capacity and swaps the result in.
// Old buckets are visited in index order so the rebuilt chains come out the
// same on every run.
func (t *Table) resize(capacity int) {
	t.log.WithFields(logrus.Fields{
		"from":  t.capacity,
		"to":    capacity,
		"count": t.count,
	}).Debug("resizing table")

	buckets := make(map[uint64]*node, min(t.count, capacity))
	for _, idx := range slices.Sorted(maps.Keys(t.buckets)) {
		for n := t.buckets[idx].next; n != nil; n = n.next {
			appendKey(buckets, t.bucketIndex(n.key, capacity), n.key)
		}
	}

	t.buckets = buckets
	t.capacity = capacity
}
