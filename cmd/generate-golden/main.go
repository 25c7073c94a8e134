// Command generate-golden writes the expected partition sequences used by
// the partition package tests.
//
// The oracle is independent of the successor engine: every partition is
// produced by the restricted-growth-string generator, then the list is
// sorted lexicographically, which is the order the engine must follow.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/agbru/setpart/internal/partition"
)

// GoldenData is one entry of the golden file.
type GoldenData struct {
	N          int       `json:"n"`
	Bell       string    `json:"bell"`
	Partitions [][][]int `json:"partitions"`
}

func main() {
	outputDir := flag.String("out", "internal/partition/testdata", "Output directory for the golden file")
	maxN := flag.Int("max", 5, "Largest set size to include")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "partitions_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	var data []GoldenData
	for n := 0; n <= *maxN; n++ {
		parts := oracle(n)
		if bell := partition.Bell(n); !bell.IsInt64() || bell.Int64() != int64(len(parts)) {
			fmt.Fprintf(os.Stderr, "Oracle produced %d partitions for n=%d, expected %s\n", len(parts), n, bell)
			os.Exit(1)
		}
		entry := GoldenData{N: n, Bell: partition.Bell(n).String(), Partitions: make([][][]int, len(parts))}
		for i, p := range parts {
			entry.Partitions[i] = p
		}
		data = append(data, entry)
		fmt.Printf("Generated n=%d (%d partitions)\n", n, len(parts))
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// oracle lists the partitions of {1,…,n} in lexicographic order.
func oracle(n int) []partition.Partition {
	var parts []partition.Partition
	for p := range (&partition.RGSGenerator{}).Partitions(n) {
		parts = append(parts, p.Clone())
	}
	slices.SortFunc(parts, partition.Compare)
	return parts
}
