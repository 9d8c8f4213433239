/*
Package chash provides an in-memory hash table of string keys using separate
chaining, with automatic growth and shrinkage driven by the load factor.

Basic usage:

	import "github.com/theflywheel/chash"

	// Create a table with the default thresholds
	t, err := chash.New()
	if err != nil {
		log.Fatal(err)
	}

	// Insert keys
	t.Insert("alpha")
	t.Insert("beta")

	// Look one up
	if e, ok := t.Search("alpha"); ok {
		fmt.Println("Found:", e.Key())
	}

	// Remove it again
	t.Delete("alpha")

	// Print the buckets
	fmt.Print(t)

Features:

  - Separate chaining with a sentinel head per bucket
  - Duplicate keys are stored as separate entries
  - Capacity doubles when the load factor exceeds 1.25 and halves when it
    drops below 0.5 (both configurable)
  - xxHash by default, SipHash and FNV-1a available
  - Configuration from options or CHASH_* environment variables
  - Locked wrapper for use from several goroutines

Implementation Details:

Buckets are addressed by hash(key) mod capacity. Each bucket that has ever
received a key holds a chain that starts with a sentinel node; real entries
are appended after it, so insertion never special-cases an empty bucket.
Delete unlinks only the first matching entry of the chain.

After every insert the load factor count/capacity is checked against the
expand threshold, and after every delete against the shrink threshold. When
a threshold is crossed the capacity is doubled or halved (never below one
bucket) and every key is rehashed into a freshly built set of chains, which
then replaces the old one. Capacity is therefore always a power of two.

A Table is not safe for concurrent use. Wrap it in Locked, or serialize
access externally.
*/
package chash
