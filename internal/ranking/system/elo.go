// Package system provides the scoring systems shipped with the engine.
// Each system implements ranking.System and keeps its math self-contained;
// the engine neither knows nor cares which formula is behind the seam.
package system

import (
	"math"

	"github.com/utakatalp/footballer/internal/ranking"
	"github.com/utakatalp/footballer/internal/structure"
)

// DefaultEloK keeps week-to-week swings small over a short season.
const DefaultEloK = 8.0

// Elo applies the standard Elo update: each side's expected score comes
// from the current rating gap, and the rating moves by K times the gap
// between the actual and expected outcome. Zero-sum between the two teams.
type Elo struct {
	K float64
}

func (e Elo) Name() string { return "elo" }

func (e Elo) ApplyGame(g structure.Game, board *ranking.Board) (ranking.LogEntry, error) {
	k := e.K
	if k == 0 {
		k = DefaultEloK
	}

	home := board.Value(g.Home)
	away := board.Value(g.Away)

	expHome := 1.0 / (1.0 + math.Pow(10, (away-home)/400))
	expAway := 1.0 - expHome

	var actualHome, actualAway float64
	switch {
	case g.HomeScore > g.AwayScore:
		actualHome, actualAway = 1, 0
	case g.HomeScore < g.AwayScore:
		actualHome, actualAway = 0, 1
	default:
		actualHome, actualAway = 0.5, 0.5
	}

	newHome := home + k*(actualHome-expHome)
	newAway := away + k*(actualAway-expAway)

	if err := board.Set(g.Home, newHome); err != nil {
		return ranking.LogEntry{}, err
	}
	if err := board.Set(g.Away, newAway); err != nil {
		return ranking.LogEntry{}, err
	}

	return ranking.LogEntry{
		Home:       g.Home,
		Away:       g.Away,
		HomeBefore: home,
		HomeAfter:  newHome,
		AwayBefore: away,
		AwayAfter:  newAway,
	}, nil
}
