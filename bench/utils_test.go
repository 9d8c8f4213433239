package chash_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/theflywheel/chash"
)

// BenchmarkMetrics represents metrics for a single benchmark
type BenchmarkMetrics struct {
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Operations  int                `json:"operations"`
	NsPerOp     float64            `json:"ns_per_op"`
	BytesPerOp  int                `json:"bytes_per_op,omitempty"`
	AllocsPerOp int                `json:"allocs_per_op,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// BenchmarkSummary represents all benchmark results
type BenchmarkSummary struct {
	Timestamp string             `json:"timestamp"`
	CommitID  string             `json:"commit_id"`
	Branch    string             `json:"branch"`
	GoVersion string             `json:"go_version"`
	Results   []BenchmarkMetrics `json:"results"`
}

// newBenchTable creates a table with the default configuration
func newBenchTable(b *testing.B, opts ...chash.Option) *chash.Table {
	b.Helper()
	t, err := chash.New(opts...)
	if err != nil {
		b.Fatalf("Failed to create table: %v", err)
	}
	return t
}

// numericKey formats i as the key used by the numeric benchmarks
func numericKey(i int) string {
	return "key-" + strconv.Itoa(i)
}

// getMemoryUsage returns the current memory stats as a formatted string
func getMemoryUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return fmt.Sprintf("Memory: Alloc=%s Sys=%s",
		humanize.Bytes(m.Alloc),
		humanize.Bytes(m.Sys))
}

// getMemoryStats returns the current memory stats as a map
func getMemoryStats() map[string]float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return map[string]float64{
		"alloc_mb": float64(m.Alloc) / (1024 * 1024),
		"sys_mb":   float64(m.Sys) / (1024 * 1024),
	}
}

// heapInUse returns the live heap size after a collection
func heapInUse() uint64 {
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc
}

// recordTableStats copies the table's shape into the metrics
func recordTableStats(metrics *BenchmarkMetrics, t *chash.Table) {
	s := t.Stats()
	metrics.Metrics["capacity"] = float64(s.Capacity)
	metrics.Metrics["load_factor"] = s.LoadFactor
	metrics.Metrics["longest_chain"] = float64(s.LongestChain)
	metrics.Metrics["growths"] = float64(s.Growths)
	metrics.Metrics["shrinks"] = float64(s.Shrinks)
}

// saveBenchmarkResult saves a benchmark result to the benchmark_history directory
func saveBenchmarkResult(metrics BenchmarkMetrics, resultsFile string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Benchmarks run from bench/, history lives in the repository root
	repoRoot := filepath.Dir(currentDir)

	benchmarkDir := filepath.Join(repoRoot, "benchmark_history")
	if err := os.MkdirAll(benchmarkDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	commitID, branch := gitInfo(repoRoot)

	summary := BenchmarkSummary{
		Timestamp: time.Now().Format(time.RFC3339),
		CommitID:  commitID,
		Branch:    branch,
		GoVersion: runtime.Version(),
		Results:   []BenchmarkMetrics{metrics},
	}

	// Merge with existing results if available
	latestFile := filepath.Join(benchmarkDir, resultsFile)
	if existingData, err := os.ReadFile(latestFile); err == nil {
		var existingSummary BenchmarkSummary
		if err := json.Unmarshal(existingData, &existingSummary); err == nil {
			summary.Results = append(existingSummary.Results, metrics)
		}
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	if err := os.WriteFile(latestFile, jsonData, 0644); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}

	fmt.Printf("Benchmark results saved to: %s\n", latestFile)

	return nil
}

// gitInfo reads the current commit and branch from .git, falling back to
// "local" and "dev" outside a checkout
func gitInfo(repoRoot string) (commitID, branch string) {
	commitID, branch = "local", "dev"

	gitHead, err := os.ReadFile(filepath.Join(repoRoot, ".git", "HEAD"))
	if err != nil {
		return commitID, branch
	}

	headContent := strings.TrimSpace(string(gitHead))
	if !strings.HasPrefix(headContent, "ref: ") {
		// Detached head holds the commit itself
		if len(headContent) >= 8 {
			commitID = headContent[:8]
		}
		return commitID, branch
	}

	refPath := strings.TrimPrefix(headContent, "ref: ")
	branch = strings.TrimPrefix(refPath, "refs/heads/")

	if commitData, err := os.ReadFile(filepath.Join(repoRoot, ".git", refPath)); err == nil {
		commitID = strings.TrimSpace(string(commitData))
		if len(commitID) >= 8 {
			commitID = commitID[:8]
		}
	}
	return commitID, branch
}
