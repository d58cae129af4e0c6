//go:build ignore

// generate_testdata.go creates standard record datasets for benchmarking
// and demos.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//
//	testdata/benchmark/small.json    (3 projects)
//	testdata/benchmark/medium.jsonl  (25 projects)
//	testdata/benchmark/large.jsonl   (200 projects)
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/sunburst/pkg/model"
	"github.com/vanderheijden86/sunburst/pkg/testutil"
)

type datasetSpec struct {
	name     string
	projects int
	jsonl    bool
	desc     string
}

var datasets = []datasetSpec{
	{"small", 3, false, "3 projects - JSON array, default fan-out"},
	{"medium", 25, true, "25 projects - JSONL, default fan-out"},
	{"large", 200, true, "200 projects - JSONL, wide phases"},
}

func main() {
	outputDir := "testdata/benchmark"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, ds := range datasets {
		fmt.Printf("Generating %s dataset (%s)...\n", ds.name, ds.desc)

		cfg := testutil.DefaultConfig()
		cfg.Seed = int64(ds.projects) // Reproducible per-size
		cfg.Projects = ds.projects
		if ds.projects > 100 {
			cfg.PhasesPerProject = 6
		}
		records := testutil.New(cfg).Records()

		var data []byte
		var err error
		ext := ".json"
		if ds.jsonl {
			ext = ".jsonl"
			data, err = toJSONL(records)
		} else {
			data, err = json.MarshalIndent(records, "", "  ")
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode %s: %v\n", ds.name, err)
			os.Exit(1)
		}

		outputPath := filepath.Join(outputDir, ds.name+ext)
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", outputPath, err)
			os.Exit(1)
		}

		fmt.Printf("  Written %s (%d bytes, %d records)\n", outputPath, len(data), len(records))
	}

	fmt.Println("\nDone! Test datasets created in", outputDir)
}

func toJSONL(records []model.Record) ([]byte, error) {
	var buf bytes.Buffer
	for _, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
