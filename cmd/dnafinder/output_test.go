package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/dnafinder/internal/model"
)

func TestOutputResultPiped(t *testing.T) {
	var buf bytes.Buffer
	out := newOutput(&buf)
	require.False(t, out.tty)

	err := out.Result(model.SearchResult{
		Algorithm:       "kmp",
		MatchCount:      2,
		ExecutionTimeMS: 1.25,
		Matches:         []model.Match{{Name: "geneA", Positions: []int{10, 20}}},
	})
	require.NoError(t, err)

	got := buf.String()
	assert.Contains(t, got, "Algorithm: kmp")
	assert.Contains(t, got, "1.25 ms")
	assert.Contains(t, got, "geneA")
	assert.Contains(t, got, "10, 20")
}

func TestOutputResultNoMatches(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newOutput(&buf).Result(model.SearchResult{Algorithm: "rabin_karp"}))
	assert.Contains(t, buf.String(), "No matches.")
}

func TestOutputHistory(t *testing.T) {
	var buf bytes.Buffer
	out := newOutput(&buf)

	require.NoError(t, out.History(nil))
	assert.Equal(t, "No recent searches.\n", buf.String())

	buf.Reset()
	ms := 3.5
	require.NoError(t, out.History([]model.HistoryEntry{
		{ID: "7", Pattern: "ACGT", Algorithm: "kmp", MatchCount: 4, ExecutionTimeMS: &ms},
		{ID: "8", Pattern: "TTAG", Algorithm: "rabin_karp"},
	}))
	got := buf.String()
	assert.Contains(t, got, "3.5 ms")
	assert.Less(t, strings.Index(got, "ACGT"), strings.Index(got, "TTAG"))
	assert.NotContains(t, got, "No recent searches.")
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newOutput(&buf).JSON(model.SearchResult{Algorithm: "kmp", MatchCount: 1}))
	assert.Contains(t, buf.String(), `"algorithm": "kmp"`)
	assert.Contains(t, buf.String(), `"match_count": 1`)
}

func TestCredentialsFromStdin(t *testing.T) {
	flags := credentialFlags{email: " ana@lab.org ", passwordStdin: true}
	creds, err := flags.credentials(strings.NewReader("s3cret\n"))
	require.NoError(t, err)
	assert.Equal(t, model.Credentials{Email: "ana@lab.org", Password: "s3cret"}, creds)
}
