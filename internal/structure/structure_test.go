package structure

import "testing"

func buildLeague(t *testing.T) *League {
	t.Helper()
	l := NewLeague("NFL")
	for _, confName := range []string{"AFC", "NFC"} {
		conf, err := l.AddConference(confName)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := conf.AddDivision("East"); err != nil {
			t.Fatal(err)
		}
	}
	for _, add := range []struct{ conf, div, team string }{
		{"AFC", "East", "Patriots"},
		{"AFC", "East", "Jets"},
		{"NFC", "East", "Eagles"},
	} {
		if _, err := l.Conference(add.conf).AddTeam(add.div, add.team); err != nil {
			t.Fatal(err)
		}
	}
	return l
}

func TestLeagueRejectsDuplicates(t *testing.T) {
	l := buildLeague(t)

	if _, err := l.AddConference("AFC"); err == nil {
		t.Error("duplicate conference accepted")
	}
	if _, err := l.Conference("AFC").AddDivision("East"); err == nil {
		t.Error("duplicate division accepted")
	}
	if _, err := l.Conference("AFC").AddTeam("East", "Patriots"); err == nil {
		t.Error("duplicate team accepted")
	}
	if _, err := l.Conference("AFC").AddTeam("West", "Broncos"); err == nil {
		t.Error("team added to missing division")
	}
}

func TestLeagueTeamsInsertionOrder(t *testing.T) {
	l := buildLeague(t)

	want := []string{"Patriots", "Jets", "Eagles"}
	got := l.TeamNames()
	if len(got) != len(want) {
		t.Fatalf("TeamNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TeamNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLeagueLookups(t *testing.T) {
	l := buildLeague(t)

	if l.Conference("XFL") != nil {
		t.Error("Conference(XFL) found something")
	}
	if _, ok := l.Conference("AFC").Division("East").Team("Patriots"); !ok {
		t.Error("Team(Patriots) not found")
	}
	if _, ok := l.Conference("AFC").Division("East").Team("Eagles"); ok {
		t.Error("Team(Eagles) found in the wrong division")
	}
}

func TestSeasonWeekOrdering(t *testing.T) {
	s := NewSeason(2017)
	s.AddGame(1, Game{Home: "A", Away: "B", HomeScore: 7, AwayScore: 3})
	s.AddGame(2, Game{Home: "C", Away: "D", HomeScore: 0, AwayScore: 0})
	// Late row for an existing week lands in that week, keeping file order.
	s.AddGame(1, Game{Home: "C", Away: "D", HomeScore: 10, AwayScore: 20})

	if len(s.Weeks) != 2 {
		t.Fatalf("season has %d weeks, want 2", len(s.Weeks))
	}
	w1 := s.Week(1)
	if len(w1.Games) != 2 {
		t.Fatalf("week 1 has %d games, want 2", len(w1.Games))
	}
	if w1.Games[0].Home != "A" || w1.Games[1].Home != "C" {
		t.Errorf("week 1 game order = %v, %v", w1.Games[0], w1.Games[1])
	}
	if s.GameCount() != 3 {
		t.Errorf("GameCount() = %d, want 3", s.GameCount())
	}
}

func TestSeasonWeeksSortedByNumber(t *testing.T) {
	s := NewSeason(2017)
	s.AddGame(3, Game{Home: "E", Away: "F", HomeScore: 14, AwayScore: 7})
	s.AddGame(1, Game{Home: "A", Away: "B", HomeScore: 7, AwayScore: 3})
	s.AddGame(2, Game{Home: "C", Away: "D", HomeScore: 0, AwayScore: 0})
	s.AddGame(1, Game{Home: "C", Away: "D", HomeScore: 10, AwayScore: 20})

	for i, want := range []int{1, 2, 3} {
		if s.Weeks[i].Number != want {
			t.Fatalf("Weeks[%d].Number = %d, want %d", i, s.Weeks[i].Number, want)
		}
	}
	// The late week 1 row still lands behind the earlier week 1 game.
	w1 := s.Week(1)
	if w1.Games[0].Home != "A" || w1.Games[1].Home != "C" {
		t.Errorf("week 1 order = %v, %v", w1.Games[0], w1.Games[1])
	}
}

func TestSeasonTeamNames(t *testing.T) {
	s := NewSeason(2017)
	s.AddGame(1, Game{Home: "A", Away: "B"})
	s.AddGame(2, Game{Home: "B", Away: "C"})

	want := []string{"A", "B", "C"}
	got := s.TeamNames()
	if len(got) != len(want) {
		t.Fatalf("TeamNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TeamNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGameWinner(t *testing.T) {
	tests := []struct {
		game    Game
		winner  string
		decided bool
	}{
		{Game{Home: "A", Away: "B", HomeScore: 21, AwayScore: 14}, "A", true},
		{Game{Home: "A", Away: "B", HomeScore: 3, AwayScore: 30}, "B", true},
		{Game{Home: "A", Away: "B", HomeScore: 20, AwayScore: 20}, "", false},
	}
	for _, tt := range tests {
		winner, decided := tt.game.Winner()
		if winner != tt.winner || decided != tt.decided {
			t.Errorf("%s: Winner() = %q/%v, want %q/%v",
				tt.game, winner, decided, tt.winner, tt.decided)
		}
	}
}
