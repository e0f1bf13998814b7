package system

import (
	"math"

	"github.com/utakatalp/footballer/internal/ranking"
	"github.com/utakatalp/footballer/internal/structure"
)

// Defaults tuned for baseline values in the 1..32 range.
const (
	DefaultPointShareScale  = 4.0
	DefaultPointShareSpread = 16.0
)

// PointShare rewards margin of victory, not just the result. The game's
// dominance is the score difference over the score total (-1..1); the
// rating gap predicts a dominance on the same range via a logistic curve;
// the home team gains Scale times the surprise, the away team loses it.
// Winning by less than the ratings predicted still costs rank.
type PointShare struct {
	// Scale converts dominance surprise into rank movement.
	Scale float64
	// Spread is the rating gap at which the predicted dominance saturates.
	Spread float64
}

func (p PointShare) Name() string { return "pointshare" }

func (p PointShare) ApplyGame(g structure.Game, board *ranking.Board) (ranking.LogEntry, error) {
	scale := p.Scale
	if scale == 0 {
		scale = DefaultPointShareScale
	}
	spread := p.Spread
	if spread == 0 {
		spread = DefaultPointShareSpread
	}

	home := board.Value(g.Home)
	away := board.Value(g.Away)

	homeScore, awayScore := g.HomeScore, g.AwayScore
	// A scoreless draw carries the same information as any other draw.
	if homeScore == 0 && awayScore == 0 {
		homeScore, awayScore = 1, 1
	}

	dominance := float64(homeScore-awayScore) / float64(homeScore+awayScore)
	predicted := -1 + 2/(1+math.Exp((away-home)/spread))

	adj := scale * (dominance - predicted)
	newHome := home + adj
	newAway := away - adj

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
