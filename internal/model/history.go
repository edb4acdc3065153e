package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a backend identifier, sent either as a JSON number or a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

type HistoryEntry struct {
	ID              ID       `json:"id"`
	Pattern         string   `json:"pattern"`
	Algorithm       string   `json:"algorithm"`
	MatchCount      int      `json:"match_count"`
	ExecutionTimeMS *float64 `json:"execution_time_ms,omitempty"`
}

func (e HistoryEntry) Duration() string {
	if e.ExecutionTimeMS == nil {
		return "-"
	}
	return strconv.FormatFloat(*e.ExecutionTimeMS, 'f', -1, 64) + " ms"
}

// HistoryPage accepts both {"searches": [...]} and a bare array.
type HistoryPage struct {
	Searches []HistoryEntry `json:"searches"`
}

func (p *HistoryPage) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []HistoryEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return fmt.Errorf("decode history list: %w", err)
		}
		p.Searches = entries
		return nil
	}
	type plain HistoryPage
	var wrapped plain
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return fmt.Errorf("decode history page: %w", err)
	}
	p.Searches = wrapped.Searches
	return nil
}
