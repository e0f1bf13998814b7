package system

import (
	"math"
	"testing"

	"github.com/utakatalp/footballer/internal/ranking"
	"github.com/utakatalp/footballer/internal/structure"
)

func board(t *testing.T, values map[string]float64) *ranking.Board {
	t.Helper()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	b, err := ranking.NewBoard(names)
	if err != nil {
		t.Fatal(err)
	}
	for name, v := range values {
		if err := b.Set(name, v); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEloEvenWin(t *testing.T) {
	b := board(t, map[string]float64{"A": 0, "B": 0})
	sys := Elo{K: 8}

	e, err := sys.ApplyGame(structure.Game{Home: "A", Away: "B", HomeScore: 21, AwayScore: 14}, b)
	if err != nil {
		t.Fatal(err)
	}

	// Equal ratings: expected 0.5 each, winner gains K/2.
	if !almostEqual(e.HomeAfter, 4) || !almostEqual(e.AwayAfter, -4) {
		t.Errorf("after = %v/%v, want 4/-4", e.HomeAfter, e.AwayAfter)
	}
	if b.Value("A") != e.HomeAfter || b.Value("B") != e.AwayAfter {
		t.Error("board values do not match the returned entry")
	}
}

func TestEloDrawBetweenEqualsIsNoOp(t *testing.T) {
	b := board(t, map[string]float64{"A": 10, "B": 10})
	sys := Elo{}

	e, err := sys.ApplyGame(structure.Game{Home: "A", Away: "B", HomeScore: 20, AwayScore: 20}, b)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(e.HomeAfter, 10) || !almostEqual(e.AwayAfter, 10) {
		t.Errorf("draw between equals moved ranks: %v/%v", e.HomeAfter, e.AwayAfter)
	}
}

func TestEloZeroSum(t *testing.T) {
	b := board(t, map[string]float64{"A": 27, "B": 5})
	sys := Elo{K: 8}

	e, err := sys.ApplyGame(structure.Game{Home: "A", Away: "B", HomeScore: 3, AwayScore: 30}, b)
	if err != nil {
		t.Fatal(err)
	}
	before := e.HomeBefore + e.AwayBefore
	after := e.HomeAfter + e.AwayAfter
	if !almostEqual(before, after) {
		t.Errorf("rating mass changed: %v -> %v", before, after)
	}
}

func TestEloUpsetPaysMore(t *testing.T) {
	// A favourite beating an underdog gains less than the reverse.
	favourite := board(t, map[string]float64{"A": 100, "B": 0})
	underdog := board(t, map[string]float64{"A": 0, "B": 100})
	sys := Elo{K: 8}

	win := structure.Game{Home: "A", Away: "B", HomeScore: 21, AwayScore: 7}
	expected, err := sys.ApplyGame(win, favourite)
	if err != nil {
		t.Fatal(err)
	}
	upset, err := sys.ApplyGame(win, underdog)
	if err != nil {
		t.Fatal(err)
	}

	if expected.Change("A") >= upset.Change("A") {
		t.Errorf("expected win gained %v, upset gained %v; upset should pay more",
			expected.Change("A"), upset.Change("A"))
	}
}

func TestEloDefaultK(t *testing.T) {
	b := board(t, map[string]float64{"A": 0, "B": 0})
	sys := Elo{} // zero K falls back to DefaultEloK

	e, err := sys.ApplyGame(structure.Game{Home: "A", Away: "B", HomeScore: 7, AwayScore: 0}, b)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(e.HomeAfter, DefaultEloK/2) {
		t.Errorf("HomeAfter = %v, want %v", e.HomeAfter, DefaultEloK/2)
	}
}
