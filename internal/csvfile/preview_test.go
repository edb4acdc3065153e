package csvfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRecordsStopsAtN(t *testing.T) {
	in := "name,sequence\ngeneA,ACGT\ngeneB,GGCA\ngeneC,TTTT\n"
	rows, err := ReadRecords(strings.NewReader(in), PreviewRows)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "sequence"},
		{"geneA", "ACGT"},
		{"geneB", "GGCA"},
	}, rows)
}

func TestReadRecordsRaggedAndShort(t *testing.T) {
	rows, err := ReadRecords(strings.NewReader("a,b,c\nd\n"), 5)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, []string{"d"}, rows[1])
}

func TestPreviewMissingFile(t *testing.T) {
	_, err := Preview(filepath.Join(t.TempDir(), "missing.csv"), 3)
	assert.Error(t, err)
}

func TestPreviewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seqs.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,seq\n1,ACGT\n"), 0o644))

	rows, err := Preview(path, PreviewRows)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
