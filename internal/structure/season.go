package structure

import "fmt"

// Game is a completed fixture between two teams. Scores are final; the
// ranking engine never sees an unfinished game.
type Game struct {
	Home, Away string
	HomeScore  int
	AwayScore  int
}

// Winner returns the winning team's name, or false on a draw.
func (g Game) Winner() (string, bool) {
	switch {
	case g.HomeScore > g.AwayScore:
		return g.Home, true
	case g.AwayScore > g.HomeScore:
		return g.Away, true
	default:
		return "", false
	}
}

func (g Game) String() string {
	return fmt.Sprintf("%s %d - %d %s", g.Home, g.HomeScore, g.AwayScore, g.Away)
}

// Week is an ordered run of games sharing a week number. Week numbers
// start at 1, matching the league calendar.
type Week struct {
	Number int
	Games  []Game
}

// Season is the ordered schedule of weeks for one year.
type Season struct {
	Year  int
	Weeks []*Week
}

func NewSeason(year int) *Season {
	return &Season{Year: year}
}

// AddWeek returns the week with the given number, creating it if needed.
// Weeks are kept sorted by number no matter what order they are created in,
// so walking Weeks always replays the season chronologically. Games added to
// an existing week keep their insertion order within it.
func (s *Season) AddWeek(number int) *Week {
	if w := s.Week(number); w != nil {
		return w
	}
	w := &Week{Number: number}
	i := len(s.Weeks)
	for i > 0 && s.Weeks[i-1].Number > number {
		i--
	}
	s.Weeks = append(s.Weeks, nil)
	copy(s.Weeks[i+1:], s.Weeks[i:])
	s.Weeks[i] = w
	return w
}

// Week looks a week up by number, nil if absent.
func (s *Season) Week(number int) *Week {
	for _, w := range s.Weeks {
		if w.Number == number {
			return w
		}
	}
	return nil
}

// AddGame appends a game to the numbered week, creating the week if needed.
func (s *Season) AddGame(week int, g Game) {
	w := s.AddWeek(week)
	w.Games = append(w.Games, g)
}

// TeamNames returns every team name that appears in the schedule, in
// first-appearance order.
func (s *Season) TeamNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, w := range s.Weeks {
		for _, g := range w.Games {
			for _, name := range []string{g.Home, g.Away} {
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		}
	}
	return names
}

// GameCount returns the total number of games across all weeks.
func (s *Season) GameCount() int {
	n := 0
	for _, w := range s.Weeks {
		n += len(w.Games)
	}
	return n
}
