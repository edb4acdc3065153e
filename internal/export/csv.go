// Package export turns a search result into the downloadable CSV.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/altinukshini/dnafinder/internal/model"
)

const FileName = "results.csv"

var header = []string{"name", "positions_count", "positions"}

// CSV renders one row per match. Every field is quoted and embedded quotes
// are doubled; rows are joined by "\n" with no trailing newline.
func CSV(r model.SearchResult) string {
	rows := make([]string, 0, len(r.Matches)+1)
	rows = append(rows, quoteRow(header))
	for _, m := range r.Matches {
		rows = append(rows, quoteRow([]string{
			m.Name,
			strconv.Itoa(len(m.Positions)),
			JoinPositions(m.Positions, "|"),
		}))
	}
	return strings.Join(rows, "\n")
}

func JoinPositions(positions []int, sep string) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, sep)
}

func quoteRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// WriteFile writes results.csv into dir and returns its path.
func WriteFile(dir string, r model.SearchResult) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(CSV(r)), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
