package chash

import (
	"bufio"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Stats is a snapshot of a table's shape.
type Stats struct {
	Count        int     // entries, counting duplicates
	Capacity     int     // buckets
	Buckets      int     // buckets holding at least one entry
	LongestChain int     // entries in the longest chain
	LoadFactor   float64 // Count / Capacity
	Growths      int     // resizes that doubled capacity
	Shrinks      int     // resizes that halved capacity
}

// Stats walks every chain and reports the table's current shape.
func (t *Table) Stats() Stats {
	s := Stats{
		Count:      t.count,
		Capacity:   t.capacity,
		LoadFactor: t.LoadFactor(),
		Growths:    t.growths,
		Shrinks:    t.shrinks,
	}
	for _, head := range t.buckets {
		n := chainLen(head)
		if n > 0 {
			s.Buckets++
		}
		s.LongestChain = max(s.LongestChain, n)
	}
	return s
}

// Dump writes one line per non-empty bucket, in bucket index order, listing
// the bucket's keys in chain order:
//
//	0: 4
//	1: 1 5
//	2: 2
//	3: 3
func (t *Table) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, idx := range slices.Sorted(maps.Keys(t.buckets)) {
		head := t.buckets[idx]
		if head.next == nil {
			continue
		}
		bw.WriteString(strconv.FormatUint(idx, 10))
		bw.WriteByte(':')
		for n := head.next; n != nil; n = n.next {
			bw.WriteByte(' ')
			bw.WriteString(n.key)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// String returns the output of Dump.
func (t *Table) String() string {
	var sb strings.Builder
	t.Dump(&sb)
	return sb.String()
}

func chainLen(head *node) int {
	n := 0
	for e := head.next; e != nil; e = e.next {
		n++
	}
	return n
}
