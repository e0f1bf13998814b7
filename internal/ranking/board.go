// Package ranking implements the incremental rank engine: per-team rank
// state, the append-only history log, and the pluggable scoring-system seam.
//
// A Ranking owns one rank value per team and one log. Values change in
// exactly two ways: a one-time baseline seeding before any game, and the
// application of games in season order. Every change is recorded in the log
// under the week the game belongs to, so any rank movement can be traced
// back to the game that caused it.
package ranking

import (
	"fmt"
	"sort"
)

// Rank is one team's current standing under a single scoring system.
type Rank struct {
	Team  string
	Value float64
}

func (r Rank) String() string {
	return fmt.Sprintf("%s (%.2f)", r.Team, r.Value)
}

// Board maps team names to current rank values. Exactly one Ranking owns a
// board for its lifetime; scoring systems read and write it only for the two
// teams of the game they are applying.
type Board struct {
	values map[string]float64
	names  []string
}

// NewBoard creates a board with a zero value per team. Duplicate names are
// rejected: a rank must have exactly one owner.
func NewBoard(teams []string) (*Board, error) {
	b := &Board{values: make(map[string]float64, len(teams))}
	for _, name := range teams {
		if _, ok := b.values[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTeam, name)
		}
		b.values[name] = 0
		b.names = append(b.names, name)
	}
	return b, nil
}

// Lookup returns the team's current value, false if the team is unknown.
func (b *Board) Lookup(name string) (float64, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Value returns the team's current value, zero for an unknown team.
func (b *Board) Value(name string) float64 {
	return b.values[name]
}

// Set overwrites the team's value.
func (b *Board) Set(name string, value float64) error {
	if _, ok := b.values[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTeam, name)
	}
	b.values[name] = value
	return nil
}

// Names returns the roster in insertion order.
func (b *Board) Names() []string {
	return append([]string(nil), b.names...)
}

// Len returns the roster size.
func (b *Board) Len() int {
	return len(b.names)
}

// Ranks returns a snapshot of all ranks sorted descending by value, with
// name order breaking ties so the result is deterministic.
func (b *Board) Ranks() []Rank {
	ranks := make([]Rank, 0, len(b.names))
	for _, name := range b.names {
		ranks = append(ranks, Rank{Team: name, Value: b.values[name]})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Value != ranks[j].Value {
			return ranks[i].Value > ranks[j].Value
		}
		return ranks[i].Team < ranks[j].Team
	})
	return ranks
}
