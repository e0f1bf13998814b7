// Command footballer loads a season of completed games, runs every
// configured scoring system over it, and prints the resulting ladders.
// Optionally it writes per-system CSV exports and persists the season and
// rank logs to Postgres. A persisted season can be replayed straight from
// the database with -replay, and stored trajectories inspected with
// -trajectory.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/utakatalp/footballer/internal/config"
	"github.com/utakatalp/footballer/internal/parse"
	"github.com/utakatalp/footballer/internal/ranking"
	"github.com/utakatalp/footballer/internal/ranking/system"
	"github.com/utakatalp/footballer/internal/store"
	"github.com/utakatalp/footballer/internal/structure"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		csvDir     = flag.String("csv", "", "directory to write per-system CSV exports into")
		persist    = flag.Bool("store", false, "persist the season and rank logs to Postgres")
		replay     = flag.Bool("replay", false, "load the season from Postgres instead of the schedule file")
		trajectory = flag.String("trajectory", "", "print the named team's stored trajectories and exit")
	)
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			level.Error(logger).Log("msg", "Invalid configuration", "err", err)
		}
		os.Exit(1)
	}

	if *trajectory != "" {
		if err := printTrajectories(cfg, *trajectory); err != nil {
			level.Error(logger).Log("msg", "Error reading trajectories", "err", err)
			os.Exit(1)
		}
		return
	}

	league, season, baseline, err := loadInputs(cfg, *replay)
	if err != nil {
		level.Error(logger).Log("msg", "Error loading inputs", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Season loaded",
		"league", cfg.LeagueName,
		"year", cfg.SeasonYear,
		"teams", len(league.Teams()),
		"games", season.GameCount(),
	)

	systems := configuredSystems(cfg)
	rankings := make([]*ranking.Ranking, 0, len(systems))
	for _, sys := range systems {
		r, err := runSystem(sys, league, season, baseline, cfg)
		if err != nil {
			level.Error(logger).Log("msg", "Ranking run failed", "system", sys.Name(), "err", err)
			os.Exit(1)
		}
		rankings = append(rankings, r)
		fmt.Println(r)
	}

	if *csvDir != "" {
		for _, r := range rankings {
			path := filepath.Join(*csvDir, r.SystemName()+".csv")
			if err := os.WriteFile(path, []byte(r.CSV()), 0o644); err != nil {
				level.Error(logger).Log("msg", "Error writing CSV", "path", path, "err", err)
				os.Exit(1)
			}
			level.Info(logger).Log("msg", "CSV written", "path", path)
		}
	}

	if *persist {
		if err := persistAll(cfg, league, season, rankings); err != nil {
			level.Error(logger).Log("msg", "Error persisting results", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Results persisted", "systems", len(rankings))
	}
}

func configuredSystems(cfg *config.Config) []ranking.System {
	return []ranking.System{
		system.Elo{K: cfg.EloK},
		system.PointShare{Scale: cfg.PointShareScale},
	}
}

func loadInputs(cfg *config.Config, replay bool) (*structure.League, *structure.Season, []string, error) {
	teamsFile, err := os.Open(cfg.TeamsFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening teams file: %w", err)
	}
	defer teamsFile.Close()
	league, err := parse.Teams(teamsFile, cfg.LeagueName)
	if err != nil {
		return nil, nil, nil, err
	}

	var season *structure.Season
	if replay {
		if cfg.DatabaseURL == "" {
			return nil, nil, nil, fmt.Errorf("replay requested but database_url is not configured")
		}
		st, err := store.NewStore(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		defer st.Close()
		if season, err = st.LoadSeason(cfg.SeasonYear); err != nil {
			return nil, nil, nil, err
		}
	} else {
		scheduleFile, err := os.Open(cfg.ScheduleFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening schedule file: %w", err)
		}
		defer scheduleFile.Close()
		if season, err = parse.Schedule(scheduleFile, cfg.SeasonYear); err != nil {
			return nil, nil, nil, err
		}
	}

	var baseline []string
	if cfg.BaselineFile != "" {
		baselineFile, err := os.Open(cfg.BaselineFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening baseline file: %w", err)
		}
		defer baselineFile.Close()
		if baseline, err = parse.Baseline(baselineFile); err != nil {
			return nil, nil, nil, err
		}
	}
	return league, season, baseline, nil
}

func runSystem(
	sys ranking.System,
	league *structure.League,
	season *structure.Season,
	baseline []string,
	cfg *config.Config,
) (*ranking.Ranking, error) {
	r, err := ranking.New(sys, league.TeamNames())
	if err != nil {
		return nil, err
	}
	if len(baseline) > 0 {
		if err := r.SeedBaseline(baseline, cfg.BaselineIncrement, cfg.BaselineMax); err != nil {
			return nil, err
		}
	}
	if err := r.ApplyGames(season); err != nil {
		return nil, err
	}
	return r, nil
}

func persistAll(
	cfg *config.Config,
	league *structure.League,
	season *structure.Season,
	rankings []*ranking.Ranking,
) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("persistence requested but database_url is not configured")
	}
	st, err := store.NewStore(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(); err != nil {
		return err
	}
	if err := st.InsertTeams(league); err != nil {
		return err
	}
	if err := st.SaveSeason(season); err != nil {
		return err
	}
	for _, r := range rankings {
		if err := st.SaveLog(r.SystemName(), season.Year, r.Log()); err != nil {
			return err
		}
	}
	return nil
}

func printTrajectories(cfg *config.Config, team string) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("trajectory lookup requested but database_url is not configured")
	}
	st, err := store.NewStore(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	for _, sys := range configuredSystems(cfg) {
		values, err := st.TeamTrajectory(sys.Name(), cfg.SeasonYear, team)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s: %v\n", sys.Name(), team, values)
	}
	return nil
}
