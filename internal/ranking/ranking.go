package ranking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/utakatalp/footballer/internal/structure"
)

var (
	// ErrDuplicateTeam is returned when a roster names the same team twice.
	ErrDuplicateTeam = errors.New("duplicate team name")

	// ErrUnknownTeam is returned when a game or seeding list references a
	// team that is not on the engine's roster.
	ErrUnknownTeam = errors.New("unknown team")

	// ErrBaselineAfterGames is returned when baseline seeding is attempted
	// after a game has already been applied. Seeding overwrites values
	// outright, so allowing it mid-season would break the before/after
	// chain recorded in the log.
	ErrBaselineAfterGames = errors.New("baseline seeding after games have been applied")
)

// System is the scoring-policy seam: the only piece of the engine that
// varies between ranking flavours. ApplyGame reads both teams' current
// values from the board, computes their new values from the game result,
// writes them back, and returns an entry recording before and after for
// both sides. The engine fills in the week number.
type System interface {
	Name() string
	ApplyGame(g structure.Game, board *Board) (LogEntry, error)
}

// Ranking drives one scoring system over a season: it owns the board and
// the log, walks weeks and games in order, and delegates the per-game math
// to the system.
type Ranking struct {
	system  System
	board   *Board
	log     *Log
	applied bool
}

// New creates an engine with a zero-valued rank per roster team and an
// empty log. Duplicate roster names are rejected.
func New(system System, teams []string) (*Ranking, error) {
	board, err := NewBoard(teams)
	if err != nil {
		return nil, err
	}
	return &Ranking{
		system: system,
		board:  board,
		log:    NewLog(teams),
	}, nil
}

// SystemName returns the name of the scoring system the engine runs.
func (r *Ranking) SystemName() string {
	return r.system.Name()
}

// SeedBaseline assigns pre-season values from an ordered strength list:
// the first team gets max, each following team max - i*increment. Roster
// teams omitted from the list keep their current value. Seeding must happen
// before any game is applied.
func (r *Ranking) SeedBaseline(orderedNames []string, increment, max float64) error {
	if r.applied {
		return ErrBaselineAfterGames
	}
	for i, name := range orderedNames {
		if err := r.board.Set(name, max-float64(i)*increment); err != nil {
			return fmt.Errorf("seeding baseline: %w", err)
		}
	}
	return nil
}

// ApplyGames applies every game in the season, weeks in order and games in
// order within a week. A game naming a team outside the roster aborts the
// run: skipping it would leave a hole in the history.
func (r *Ranking) ApplyGames(season *structure.Season) error {
	for _, week := range season.Weeks {
		for _, g := range week.Games {
			if err := r.applyGame(week.Number, g); err != nil {
				return fmt.Errorf("week %d, %s: %w", week.Number, g, err)
			}
		}
	}
	return nil
}

func (r *Ranking) applyGame(week int, g structure.Game) error {
	if _, ok := r.board.Lookup(g.Home); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTeam, g.Home)
	}
	if _, ok := r.board.Lookup(g.Away); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTeam, g.Away)
	}
	entry, err := r.system.ApplyGame(g, r.board)
	if err != nil {
		return fmt.Errorf("applying %s system: %w", r.system.Name(), err)
	}
	entry.Week = week
	r.log.AddEntry(week, &entry)
	r.applied = true
	return nil
}

// Rank returns the team's current rank, false for an unknown name.
func (r *Ranking) Rank(name string) (Rank, bool) {
	v, ok := r.board.Lookup(name)
	if !ok {
		return Rank{}, false
	}
	return Rank{Team: name, Value: v}, true
}

// GreaterRank returns whichever of the two teams currently ranks higher.
// The first argument wins ties.
func (r *Ranking) GreaterRank(a, b string) (Rank, error) {
	va, ok := r.board.Lookup(a)
	if !ok {
		return Rank{}, fmt.Errorf("%w: %q", ErrUnknownTeam, a)
	}
	vb, ok := r.board.Lookup(b)
	if !ok {
		return Rank{}, fmt.Errorf("%w: %q", ErrUnknownTeam, b)
	}
	if va >= vb {
		return Rank{Team: a, Value: va}, nil
	}
	return Rank{Team: b, Value: vb}, nil
}

// Ladder returns all current ranks sorted descending by value.
func (r *Ranking) Ladder() []Rank {
	return r.board.Ranks()
}

// Log exposes the engine's history for read-only queries.
func (r *Ranking) Log() *Log {
	return r.log
}

// TeamValues returns the team's post-game values in chronological order.
func (r *Ranking) TeamValues(name string) []float64 {
	return r.log.TeamValues(name)
}

// AllValues returns every roster team's value trajectory.
func (r *Ranking) AllValues() map[string][]float64 {
	return r.log.AllValues()
}

// PairsForTeam returns the team's week-by-week history, nil entries for
// bye weeks.
func (r *Ranking) PairsForTeam(name string) []EntryPair {
	return r.log.PairsForTeam(name)
}

// GreatestChange returns the entry that moved the team's rank the most.
func (r *Ranking) GreatestChange(name string) (EntryPair, bool) {
	return r.log.GreatestChange(name)
}

// CSV renders the full log as a flat table.
func (r *Ranking) CSV() string {
	return r.log.CSV()
}

// LogForTeam renders the team's game-by-game history as text. Unknown or
// idle teams produce a header with no entries.
func (r *Ranking) LogForTeam(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s log:\n\n", name)
	for _, pair := range r.log.PairsForTeam(name) {
		if pair.Entry != nil {
			fmt.Fprintf(&b, "%s\n", pair.Entry)
		}
	}
	return b.String()
}

// String renders the current ladder, one team per line, best first.
func (r *Ranking) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ranking:\n", r.system.Name())
	for i, rank := range r.Ladder() {
		fmt.Fprintf(&b, "%d: %s\n", i+1, rank)
	}
	return b.String()
}
