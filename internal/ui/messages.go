package ui

import (
	"github.com/altinukshini/dnafinder/internal/model"
	"github.com/altinukshini/dnafinder/internal/session"
)

// Auth results
type LoginDoneMsg struct {
	Email string
	Err   error
}

type RegisterDoneMsg struct {
	Email string
	Err   error
}

type LogoutDoneMsg struct {
	Err error
}

// SessionChangedMsg relays a session store event into the program.
type SessionChangedMsg struct {
	Kind session.EventKind
}

// Dashboard data
type SearchDoneMsg struct {
	Result *model.SearchResult
	Err    error
}

type HistoryLoadedMsg struct {
	Entries []model.HistoryEntry
	Err     error
}

type ExportDoneMsg struct {
	Path string
	Err  error
}

type StatusMsg struct {
	Text string
}
