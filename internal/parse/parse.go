// Package parse builds the league hierarchy and the season schedule from
// flat CSV files. It is the only place schedule data enters the system;
// everything downstream assumes the structures it returns are well formed.
package parse

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/utakatalp/footballer/internal/structure"
)

// Teams reads a roster file with header "conference,division,team" and
// builds the league hierarchy in file order.
func Teams(r io.Reader, leagueName string) (*structure.League, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading teams header: %w", err)
	}
	if header[0] != "conference" || header[1] != "division" || header[2] != "team" {
		return nil, fmt.Errorf("unexpected teams header %v, want [conference division team]", header)
	}

	league := structure.NewLeague(leagueName)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading teams file: %w", err)
		}
		line++

		confName, divName, teamName := record[0], record[1], record[2]
		conf := league.Conference(confName)
		if conf == nil {
			if conf, err = league.AddConference(confName); err != nil {
				return nil, fmt.Errorf("teams line %d: %w", line, err)
			}
		}
		if conf.Division(divName) == nil {
			if _, err := conf.AddDivision(divName); err != nil {
				return nil, fmt.Errorf("teams line %d: %w", line, err)
			}
		}
		if _, err := conf.AddTeam(divName, teamName); err != nil {
			return nil, fmt.Errorf("teams line %d: %w", line, err)
		}
	}
	return league, nil
}

// Schedule reads a results file with header
// "week,home,away,home_score,away_score" and builds the season. Rows may
// arrive with weeks interleaved; games keep their file order within a week.
func Schedule(r io.Reader, year int) (*structure.Season, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading schedule header: %w", err)
	}
	if header[0] != "week" || header[1] != "home" || header[2] != "away" {
		return nil, fmt.Errorf("unexpected schedule header %v, want [week home away home_score away_score]", header)
	}

	season := structure.NewSeason(year)
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading schedule file: %w", err)
		}
		line++

		week, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("schedule line %d: bad week %q: %w", line, record[0], err)
		}
		if week < 1 {
			return nil, fmt.Errorf("schedule line %d: week %d out of range", line, week)
		}
		homeScore, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, fmt.Errorf("schedule line %d: bad home score %q: %w", line, record[3], err)
		}
		awayScore, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, fmt.Errorf("schedule line %d: bad away score %q: %w", line, record[4], err)
		}

		season.AddGame(week, structure.Game{
			Home:      record[1],
			Away:      record[2],
			HomeScore: homeScore,
			AwayScore: awayScore,
		})
	}
	return season, nil
}

// Baseline reads an ordered strength list, one team name per line, best
// first. Blank lines and lines starting with '#' are skipped.
func Baseline(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		names = append(names, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading baseline list: %w", err)
	}
	return names, nil
}
