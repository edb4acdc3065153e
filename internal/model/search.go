package model

import (
	"encoding/json"
	"fmt"
)

type Algorithm string

const (
	AlgorithmKMP       Algorithm = "kmp"
	AlgorithmRabinKarp Algorithm = "rabin_karp"
)

// Algorithms lists the matchers the backend accepts, in selector order.
var Algorithms = []Algorithm{AlgorithmKMP, AlgorithmRabinKarp}

func (a Algorithm) Label() string {
	switch a {
	case AlgorithmKMP:
		return "KMP"
	case AlgorithmRabinKarp:
		return "Rabin-Karp"
	default:
		return string(a)
	}
}

// Next cycles to the following algorithm in Algorithms.
func (a Algorithm) Next() Algorithm {
	for i, alg := range Algorithms {
		if alg == a {
			return Algorithms[(i+1)%len(Algorithms)]
		}
	}
	return AlgorithmKMP
}

func ParseAlgorithm(s string) (Algorithm, error) {
	for _, alg := range Algorithms {
		if string(alg) == s {
			return alg, nil
		}
	}
	return "", fmt.Errorf("unknown algorithm %q (want kmp or rabin_karp)", s)
}

type Match struct {
	Name      string `json:"name"`
	Positions []int  `json:"positions"`
}

// UnmarshalJSON also accepts a bare string, which becomes a match with
// no positions.
func (m *Match) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*m = Match{Name: name}
		return nil
	}
	type plain Match
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode match: %w", err)
	}
	*m = Match(p)
	return nil
}

// SearchResult is the backend's answer to a search. The client never
// computes MatchCount or Positions itself.
type SearchResult struct {
	Algorithm       string  `json:"algorithm"`
	Pattern         string  `json:"pattern,omitempty"`
	MatchCount      int     `json:"match_count"`
	ExecutionTimeMS float64 `json:"execution_time_ms"`
	TotalSequences  int     `json:"total_sequences,omitempty"`
	ThreadsUsed     int     `json:"threads_used,omitempty"`
	HashCollisions  int64   `json:"hash_collisions,omitempty"`
	Matches         []Match `json:"matches"`
}
