package ranking

import (
	"sort"
	"strconv"
	"strings"
)

// LogEntry is the immutable record of one applied game: both participants
// and their rank values immediately before and after.
type LogEntry struct {
	Week       int
	Home, Away string
	HomeBefore float64
	HomeAfter  float64
	AwayBefore float64
	AwayAfter  float64
}

// Involves reports whether the team took part in the recorded game.
func (e *LogEntry) Involves(team string) bool {
	return e.Home == team || e.Away == team
}

// Before returns the team's value before the game, zero if the team was not
// involved.
func (e *LogEntry) Before(team string) float64 {
	switch team {
	case e.Home:
		return e.HomeBefore
	case e.Away:
		return e.AwayBefore
	}
	return 0
}

// After returns the team's value after the game, zero if the team was not
// involved.
func (e *LogEntry) After(team string) float64 {
	switch team {
	case e.Home:
		return e.HomeAfter
	case e.Away:
		return e.AwayAfter
	}
	return 0
}

// Change returns the signed rank movement the game caused for the team.
func (e *LogEntry) Change(team string) float64 {
	return e.After(team) - e.Before(team)
}

func (e *LogEntry) String() string {
	return "week " + strconv.Itoa(e.Week) + ": " +
		e.Home + " " + formatValue(e.HomeBefore) + " -> " + formatValue(e.HomeAfter) + ", " +
		e.Away + " " + formatValue(e.AwayBefore) + " -> " + formatValue(e.AwayAfter)
}

// EntryPair associates a week number with the log entry for one team in that
// week. A nil Entry means the team did not play.
type EntryPair struct {
	Week  int
	Entry *LogEntry
}

// Log is the append-only history of every applied game, keyed by week
// number. Entries are added in game-application order and never mutated.
type Log struct {
	teams   []string
	entries map[int][]*LogEntry
	latest  int
}

// NewLog creates an empty log scoped to the given roster.
func NewLog(teams []string) *Log {
	return &Log{
		teams:   append([]string(nil), teams...),
		entries: make(map[int][]*LogEntry),
	}
}

// AddEntry appends an entry under the given week number.
func (l *Log) AddEntry(week int, e *LogEntry) {
	l.entries[week] = append(l.entries[week], e)
	if week > l.latest {
		l.latest = week
	}
}

// LatestWeek returns the highest week number present, zero for an empty log.
func (l *Log) LatestWeek() int {
	return l.latest
}

// EntryCount returns the number of recorded entries across all weeks.
func (l *Log) EntryCount() int {
	n := 0
	for _, es := range l.entries {
		n += len(es)
	}
	return n
}

// Entries returns every recorded entry in week order, application order
// within a week.
func (l *Log) Entries() []*LogEntry {
	var all []*LogEntry
	for week := 1; week <= l.latest; week++ {
		all = append(all, l.entries[week]...)
	}
	return all
}

// Teams returns the roster the log is scoped to, in insertion order.
func (l *Log) Teams() []string {
	return append([]string(nil), l.teams...)
}

// PairsForTeam returns one EntryPair per week from week 1 through the latest
// week in the log. Weeks the team did not play carry a nil Entry.
func (l *Log) PairsForTeam(team string) []EntryPair {
	var pairs []EntryPair
	for week := 1; week <= l.latest; week++ {
		pair := EntryPair{Week: week}
		for _, e := range l.entries[week] {
			if e.Involves(team) {
				pair.Entry = e
				break
			}
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// TeamValues returns the team's post-game values in chronological order.
// Weeks the team did not play are omitted, not zero-filled.
func (l *Log) TeamValues(team string) []float64 {
	var values []float64
	for week := 1; week <= l.latest; week++ {
		for _, e := range l.entries[week] {
			if e.Involves(team) {
				values = append(values, e.After(team))
			}
		}
	}
	return values
}

// AllValues returns the post-game value trajectory of every team on the
// roster, keyed by team name.
func (l *Log) AllValues() map[string][]float64 {
	values := make(map[string][]float64, len(l.teams))
	for _, team := range l.teams {
		values[team] = l.TeamValues(team)
	}
	return values
}

// GreatestChange returns the entry that moved the team's rank the most, by
// absolute value. Ties go to the earliest week. The second return is false
// if the team has no recorded games.
func (l *Log) GreatestChange(team string) (EntryPair, bool) {
	var best EntryPair
	found := false
	for week := 1; week <= l.latest; week++ {
		for _, e := range l.entries[week] {
			if !e.Involves(team) {
				continue
			}
			change := e.Change(team)
			if change < 0 {
				change = -change
			}
			bestChange := 0.0
			if found {
				bestChange = best.Entry.Change(team)
				if bestChange < 0 {
					bestChange = -bestChange
				}
			}
			if !found || change > bestChange {
				best = EntryPair{Week: week, Entry: e}
				found = true
			}
		}
	}
	return best, found
}

// CSV renders the full log as a flat table: a header of week columns, then
// one row per roster team in name order. Each cell holds the team's
// post-game value for that week; a bye week is a blank cell. The layout is
// stable: the same log always produces the same bytes.
func (l *Log) CSV() string {
	var b strings.Builder
	b.WriteString("team")
	for week := 1; week <= l.latest; week++ {
		b.WriteString(",week_")
		b.WriteString(strconv.Itoa(week))
	}
	b.WriteByte('\n')

	teams := append([]string(nil), l.teams...)
	sort.Strings(teams)
	for _, team := range teams {
		b.WriteString(team)
		for week := 1; week <= l.latest; week++ {
			b.WriteByte(',')
			// Last entry wins if a team somehow plays twice in a week.
			var latest *LogEntry
			for _, e := range l.entries[week] {
				if e.Involves(team) {
					latest = e
				}
			}
			if latest != nil {
				b.WriteString(formatValue(latest.After(team)))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
