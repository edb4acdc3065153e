package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/dnafinder/internal/apitest"
	"github.com/altinukshini/dnafinder/internal/logger"
	"github.com/altinukshini/dnafinder/internal/model"
)

type fakeSessions struct {
	token   string
	expired int
}

func (f *fakeSessions) Token() string { return f.token }

func (f *fakeSessions) Expire() error {
	f.token = ""
	f.expired++
	return nil
}

func newTestClient(t *testing.T, sessions *fakeSessions, opts ...Option) (*Client, *apitest.Backend) {
	t.Helper()
	backend := apitest.New(t)
	return NewClient(backend.URL(), 5*time.Second, sessions, logger.Discard(), opts...), backend
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seqs.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,sequence\ngeneA,ACGTACGT\n"), 0o644))
	return path
}

func TestURLJoin(t *testing.T) {
	c := NewClient("http://localhost:8000/", 0, &fakeSessions{}, logger.Discard())
	assert.Equal(t, "http://localhost:8000/history?limit=10", c.url("/history?limit=10"))
	assert.Equal(t, "http://localhost:8000/login", c.url("login"))
}

func TestHistoryFilterQueryString(t *testing.T) {
	tests := []struct {
		name   string
		filter HistoryFilter
		want   string
	}{
		{name: "defaults", filter: HistoryFilter{}, want: "?limit=10&offset=0"},
		{name: "explicit", filter: HistoryFilter{Limit: 5, Offset: 20}, want: "?limit=5&offset=20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.QueryString())
		})
	}
}

func TestLoginTokenFields(t *testing.T) {
	for _, field := range []string{"access_token", "accessToken", "token"} {
		t.Run(field, func(t *testing.T) {
			client, backend := newTestClient(t, &fakeSessions{})
			backend.AddUser("ana@lab.org", "s3cret")
			backend.IssueToken(field, "abc123")

			resp, err := client.Login(context.Background(), model.Credentials{Email: "ana@lab.org", Password: "s3cret"})
			require.NoError(t, err)
			assert.Equal(t, "abc123", resp.BearerToken())
		})
	}
}

func TestLoginFailureCarriesDetail(t *testing.T) {
	client, _ := newTestClient(t, &fakeSessions{})

	_, err := client.Login(context.Background(), model.Credentials{Email: "nobody@lab.org", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", Message(err, "Invalid credentials"))
}

func TestRegisterDuplicate(t *testing.T) {
	client, backend := newTestClient(t, &fakeSessions{})
	backend.AddUser("ana@lab.org", "s3cret")

	err := client.Register(context.Background(), model.Credentials{Email: "ana@lab.org", Password: "other"})
	require.Error(t, err)
	assert.Equal(t, "Email already registered", Message(err, "Registration failed"))

	require.NoError(t, client.Register(context.Background(), model.Credentials{Email: "bo@lab.org", Password: "pw"}))
}

func TestBearerHeaderAttached(t *testing.T) {
	sessions := &fakeSessions{token: "test-token"}
	client, backend := newTestClient(t, sessions)

	_, err := client.History(context.Background(), HistoryFilter{Limit: 10})
	require.NoError(t, err)

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer test-token", reqs[0].Authorization)
	assert.Equal(t, "limit=10&offset=0", reqs[0].Query)
}

func TestNoTokenNoHeader(t *testing.T) {
	client, backend := newTestClient(t, &fakeSessions{})
	backend.AddUser("ana@lab.org", "pw")

	_, err := client.Login(context.Background(), model.Credentials{Email: "ana@lab.org", Password: "pw"})
	require.NoError(t, err)
	assert.Empty(t, backend.Requests()[0].Authorization)
}

func TestUnauthorizedClearsSessionAndNotifies(t *testing.T) {
	sessions := &fakeSessions{token: "test-token"}
	notified := 0
	client, backend := newTestClient(t, sessions, WithUnauthorizedHandler(func() { notified++ }))
	backend.Expire()

	_, err := client.History(context.Background(), HistoryFilter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Empty(t, sessions.Token())
	assert.Equal(t, 1, sessions.expired)
	assert.Equal(t, 1, notified)
}

func TestTwoStepSearch(t *testing.T) {
	client, backend := newTestClient(t, &fakeSessions{token: "test-token"})
	backend.SetResult(model.SearchResult{
		MatchCount:      1,
		ExecutionTimeMS: 3,
		Matches:         []model.Match{{Name: "geneA", Positions: []int{0, 4}}},
	})
	path := writeCSV(t)

	up, err := client.UploadCSV(context.Background(), UploadRequest{FilePath: path, Pattern: "ACGT", Algorithm: model.AlgorithmKMP})
	require.NoError(t, err)
	assert.JSONEq(t, `"f-1"`, string(up.FileID))

	res, err := client.Search(context.Background(), SearchRequest{FileID: up.FileID, Pattern: "ACGT", Algorithm: model.AlgorithmKMP})
	require.NoError(t, err)
	assert.Equal(t, "kmp", res.Algorithm)
	assert.Equal(t, []int{0, 4}, res.Matches[0].Positions)

	reqs := backend.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "file", reqs[0].FileField)
	assert.Equal(t, "seqs.csv", reqs[0].FileName)
	assert.Equal(t, "ACGT", reqs[0].Fields["pattern"])
	assert.Equal(t, "f-1", reqs[1].JSON["file_id"])
}

func TestSingleStepSearch(t *testing.T) {
	client, backend := newTestClient(t, &fakeSessions{token: "test-token"})
	path := writeCSV(t)

	res, err := client.SearchMultipart(context.Background(), UploadRequest{FilePath: path, Pattern: "ACGT", Algorithm: model.AlgorithmRabinKarp})
	require.NoError(t, err)
	assert.Equal(t, "rabin_karp", res.Algorithm)

	reqs := backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "csv_file", reqs[0].FileField)
	assert.Equal(t, "rabin_karp", reqs[0].Fields["algorithm"])
}

func TestSearchUnknownFile(t *testing.T) {
	client, _ := newTestClient(t, &fakeSessions{token: "test-token"})

	_, err := client.Search(context.Background(), SearchRequest{FileID: []byte(`"nope"`), Pattern: "ACGT", Algorithm: model.AlgorithmKMP})
	require.Error(t, err)
	assert.Equal(t, "File not found", Message(err, "Search failed"))
}

func TestHistoryBothEncodings(t *testing.T) {
	entries := []model.HistoryEntry{
		{ID: "1", Pattern: "ACGT", Algorithm: "kmp", MatchCount: 2},
		{ID: "2", Pattern: "GATTACA", Algorithm: "rabin_karp", MatchCount: 0},
	}
	for _, bare := range []bool{false, true} {
		client, backend := newTestClient(t, &fakeSessions{token: "test-token"})
		backend.SetHistory(entries, bare)

		got, err := client.History(context.Background(), HistoryFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, entries, got)
	}
}
