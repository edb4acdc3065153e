package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/dnafinder/internal/model"
)

func TestCSV(t *testing.T) {
	tests := []struct {
		name    string
		matches []model.Match
		want    string
	}{
		{
			name:    "no matches",
			matches: nil,
			want:    `"name","positions_count","positions"`,
		},
		{
			name:    "single match",
			matches: []model.Match{{Name: "geneA", Positions: []int{10, 20}}},
			want:    "\"name\",\"positions_count\",\"positions\"\n\"geneA\",\"2\",\"10|20\"",
		},
		{
			name:    "embedded quotes and no positions",
			matches: []model.Match{{Name: `chr "X"`}},
			want:    "\"name\",\"positions_count\",\"positions\"\n\"chr \"\"X\"\"\",\"0\",\"\"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CSV(model.SearchResult{Matches: tt.matches}))
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := WriteFile(dir, model.SearchResult{Matches: []model.Match{{Name: "geneA", Positions: []int{10, 20}}}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"geneA","2","10|20"`)
}
