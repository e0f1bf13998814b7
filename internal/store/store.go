// Package store persists league data and computed rank histories to
// Postgres, and can reload a season for replay.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/utakatalp/footballer/internal/ranking"
	"github.com/utakatalp/footballer/internal/structure"
)

// Store wraps a Postgres connection and provides methods to persist and
// retrieve teams, games, and rank logs.
type Store struct {
	DB *sql.DB
}

// NewStore opens a Postgres connection using the given connection string.
func NewStore(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// verify early
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{DB: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Migrate creates the necessary tables if they do not exist.
func (s *Store) Migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS teams (
		    id         SERIAL PRIMARY KEY,
		    name       TEXT NOT NULL UNIQUE,
		    conference TEXT NOT NULL,
		    division   TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS games (
		    id         SERIAL PRIMARY KEY,
		    season     INT  NOT NULL,
		    week       INT  NOT NULL,
		    home_team  TEXT NOT NULL REFERENCES teams(name),
		    away_team  TEXT NOT NULL REFERENCES teams(name),
		    home_score INT  NOT NULL,
		    away_score INT  NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rank_log (
		    id           SERIAL PRIMARY KEY,
		    system       TEXT NOT NULL,
		    season       INT  NOT NULL,
		    week         INT  NOT NULL,
		    team         TEXT NOT NULL REFERENCES teams(name),
		    before_value DOUBLE PRECISION NOT NULL,
		    after_value  DOUBLE PRECISION NOT NULL
		);`,
	}
	for _, q := range queries {
		if _, err := s.DB.Exec(q); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}
	return nil
}

// InsertTeams persists the league roster. Reruns are harmless: existing
// names are left untouched.
func (s *Store) InsertTeams(league *structure.League) error {
	const q = `
    INSERT INTO teams (name, conference, division)
    VALUES ($1, $2, $3)
    ON CONFLICT (name) DO NOTHING
    `
	for _, conf := range league.Conferences {
		for _, div := range conf.Divisions {
			for _, t := range div.Teams {
				if _, err := s.DB.Exec(q, t.Name, conf.Name, div.Name); err != nil {
					return fmt.Errorf("inserting team %q: %w", t.Name, err)
				}
			}
		}
	}
	return nil
}

// SaveSeason persists every game in the season, preserving week order and
// game order within weeks via insertion ids.
func (s *Store) SaveSeason(season *structure.Season) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin SaveSeason tx: %w", err)
	}
	defer tx.Rollback()

	const q = `
    INSERT INTO games (season, week, home_team, away_team, home_score, away_score)
    VALUES ($1, $2, $3, $4, $5, $6)
    `
	for _, week := range season.Weeks {
		for _, g := range week.Games {
			if _, err := tx.Exec(q, season.Year, week.Number, g.Home, g.Away, g.HomeScore, g.AwayScore); err != nil {
				return fmt.Errorf("saving game %s (week %d): %w", g, week.Number, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit SaveSeason tx: %w", err)
	}
	return nil
}

// LoadSeason fetches all games for a year, ordered by week then insertion
// id, so replaying them reproduces the original application order.
func (s *Store) LoadSeason(year int) (*structure.Season, error) {
	const q = `
    SELECT week, home_team, away_team, home_score, away_score
    FROM games
    WHERE season = $1
    ORDER BY week, id
    `
	rows, err := s.DB.Query(q, year)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	season := structure.NewSeason(year)
	for rows.Next() {
		var week int
		var g structure.Game
		if err := rows.Scan(&week, &g.Home, &g.Away, &g.HomeScore, &g.AwayScore); err != nil {
			return nil, fmt.Errorf("scanning game row: %w", err)
		}
		season.AddGame(week, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating game rows: %w", err)
	}
	return season, nil
}

// SaveLog persists a full rank history for one system run: one row per
// participating team per entry.
func (s *Store) SaveLog(system string, year int, log *ranking.Log) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin SaveLog tx: %w", err)
	}
	defer tx.Rollback()

	const q = `
    INSERT INTO rank_log (system, season, week, team, before_value, after_value)
    VALUES ($1, $2, $3, $4, $5, $6)
    `
	for _, e := range log.Entries() {
		if _, err := tx.Exec(q, system, year, e.Week, e.Home, e.HomeBefore, e.HomeAfter); err != nil {
			return fmt.Errorf("saving log entry for %q (week %d): %w", e.Home, e.Week, err)
		}
		if _, err := tx.Exec(q, system, year, e.Week, e.Away, e.AwayBefore, e.AwayAfter); err != nil {
			return fmt.Errorf("saving log entry for %q (week %d): %w", e.Away, e.Week, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit SaveLog tx: %w", err)
	}
	return nil
}

// TeamTrajectory fetches a team's post-game values for one system and
// season, in the order the games were applied.
func (s *Store) TeamTrajectory(system string, year int, team string) ([]float64, error) {
	const q = `
    SELECT after_value
    FROM rank_log
    WHERE system = $1 AND season = $2 AND team = $3
    ORDER BY week, id
    `
	rows, err := s.DB.Query(q, system, year, team)
	if err != nil {
		return nil, fmt.Errorf("querying trajectory: %w", err)
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning trajectory row: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trajectory rows: %w", err)
	}
	return values, nil
}
