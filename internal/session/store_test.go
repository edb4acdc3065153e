package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/dnafinder/internal/logger"
	"github.com/altinukshini/dnafinder/internal/model"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path, logger.Discard())
	require.NoError(t, err)
	return s
}

func TestLoginPersistsToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s := openTestStore(t, path)

	require.False(t, s.Authenticated())
	require.NoError(t, s.Login(model.Session{Token: "abc123", Email: "ana@lab.org"}))
	assert.Equal(t, "abc123", s.Token())
	require.NoError(t, s.Close())

	reopened := openTestStore(t, path)
	defer reopened.Close()
	assert.Equal(t, "abc123", reopened.Token())
	assert.Equal(t, "ana@lab.org", reopened.Session().Email)
}

func TestLoginWithoutEmailDropsPreviousEmail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s := openTestStore(t, path)
	require.NoError(t, s.Login(model.Session{Token: "first", Email: "ana@lab.org"}))
	require.NoError(t, s.Login(model.Session{Token: "second"}))
	require.NoError(t, s.Close())

	reopened := openTestStore(t, path)
	defer reopened.Close()
	assert.Equal(t, "second", reopened.Token())
	assert.Empty(t, reopened.Session().Email)
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "state.db"))
	defer s.Close()

	assert.Error(t, s.Login(model.Session{Email: "ana@lab.org"}))
	assert.False(t, s.Authenticated())
}

func TestExpireClearsTokenAndNotifies(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "state.db"))
	defer s.Close()

	var got []EventKind
	unsubscribe := s.Subscribe(func(ev Event) { got = append(got, ev.Kind) })

	require.NoError(t, s.Login(model.Session{Token: "t"}))
	require.NoError(t, s.Expire())
	assert.Empty(t, s.Token())

	unsubscribe()
	require.NoError(t, s.Logout())

	assert.Equal(t, []EventKind{EventLogin, EventExpired}, got)
}

func TestLastResultRoundTrip(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "state.db"))
	defer s.Close()

	r, err := s.LastResult()
	require.NoError(t, err)
	assert.Nil(t, r)

	var published *model.SearchResult
	s.Subscribe(func(ev Event) {
		if ev.Kind == EventResult {
			published = ev.Result
		}
	})

	want := model.SearchResult{
		Algorithm:  "kmp",
		MatchCount: 1,
		Matches:    []model.Match{{Name: "geneA", Positions: []int{10, 20}}},
	}
	require.NoError(t, s.SaveResult(want))

	got, err := s.LastResult()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
	require.NotNil(t, published)
	assert.Equal(t, "geneA", published.Matches[0].Name)
}

func TestBoltRejectsEmptyKey(t *testing.T) {
	db, err := OpenBolt(filepath.Join(t.TempDir(), "state.db"), logger.Discard())
	require.NoError(t, err)
	defer db.Close()

	assert.ErrorIs(t, db.Set("", "v"), ErrInvalidKey)
	_, err = db.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
