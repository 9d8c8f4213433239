package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/theflywheel/chash"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.DebugLevel)

	// Defaults can be overridden with CHASH_* environment variables
	t, err := chash.New(chash.FromEnv(), chash.WithLogger(log.StandardLogger()))
	if err != nil {
		log.Fatalf("Failed to create table: %v", err)
	}

	fmt.Println("Table created successfully")

	for _, key := range []string{"1", "2", "3", "4", "5"} {
		t.Insert(key)
	}

	fmt.Println("Inserted 5 keys")
	fmt.Print(t)
	printStats(t)

	if e, found := t.Search("3"); found {
		fmt.Printf("Key %s found\n", e.Key())
	}

	if !t.Delete("3") {
		log.Fatalf("Failed to delete key 3")
	}

	fmt.Println("Deleted key 3")
	fmt.Print(t)
	printStats(t)

	if _, found := t.Search("3"); !found {
		fmt.Println("Key 3 not found")
	}

	fmt.Println("Example completed successfully")
}

func printStats(t *chash.Table) {
	s := t.Stats()
	fmt.Printf("entries=%s buckets=%s load=%s longest chain=%d\n",
		humanize.Comma(int64(s.Count)),
		humanize.Comma(int64(s.Capacity)),
		humanize.FormatFloat("#.##", s.LoadFactor),
		s.LongestChain)
}
