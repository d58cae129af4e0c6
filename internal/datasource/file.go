package datasource

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/sunburst/pkg/debug"
	"github.com/vanderheijden86/sunburst/pkg/model"
)

// DefaultMaxLineSize bounds a single JSONL line.
const DefaultMaxLineSize = 1024 * 1024

// LoadJSONFile reads a JSON array of records.
func LoadJSONFile(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeJSON(f)
}

// DecodeJSON decodes a JSON array of records. A literal null decodes to a
// nil slice, which callers treat as missing data.
func DecodeJSON(r io.Reader) ([]model.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	data = bytes.TrimSpace(stripBOM(data))
	if len(data) == 0 {
		return nil, nil
	}
	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

// LoadJSONLFile reads one record per line.
func LoadJSONLFile(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeJSONL(f)
}

// DecodeJSONL decodes newline-delimited records. Blank lines are ignored;
// malformed or overlong lines are skipped with a debug message.
func DecodeJSONL(r io.Reader) ([]model.Record, error) {
	reader := bufio.NewReaderSize(r, DefaultMaxLineSize)
	records := []model.Record{}

	lineNum := 0
	for {
		lineNum++
		line, isPrefix, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read line %d: %w", lineNum, err)
		}

		if isPrefix {
			debug.Log("datasource: skipping line %d: exceeds %d bytes", lineNum, DefaultMaxLineSize)
			for isPrefix {
				_, isPrefix, err = reader.ReadLine()
				if err == io.EOF {
					break
				}
				if err != nil {
					return nil, fmt.Errorf("skip long line %d: %w", lineNum, err)
				}
			}
			continue
		}

		if lineNum == 1 {
			line = stripBOM(line)
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var rec model.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			debug.Log("datasource: skipping malformed JSON on line %d: %v", lineNum, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// stripBOM removes the UTF-8 Byte Order Mark if present
func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
}
