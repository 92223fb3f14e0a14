package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
	maxSeedBytes = 64 << 10
)

var builtinSeeds = []string{
	"",
	"{}",
	"{\n}",
	`{"a": 1}`,
	`{"a": "x", "b": {"c": 2}}`,
	`{"a" 1}`,
	`{"a": 1,}`,
	`{"a": "unterminated}`,
	`{"a": 12`,
	`{"a": #}`,
	`{} {}`,
	`{"": 1}`,
	`{"n": 99999999999999999999}`,
	"{\"k\":\r\n\t{\"d\":{\"e\":{}}}}",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.json файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(input []byte, limit int) []byte {
	if len(input) > limit {
		input = input[:limit]
	}
	return append([]byte(nil), input...)
}
