// Command rankingsd serves the computed ladders over HTTP. Rankings are
// computed once at startup from the configured schedule files and held in
// memory; the season is finished data, so there is nothing to refresh.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utakatalp/footballer/internal/config"
	"github.com/utakatalp/footballer/internal/parse"
	"github.com/utakatalp/footballer/internal/ranking"
	"github.com/utakatalp/footballer/internal/ranking/system"
)

type server struct {
	logger   log.Logger
	rankings map[string]*ranking.Ranking
	def      string // system served when ?system= is absent
}

func (s *server) ranking(r *http.Request) (*ranking.Ranking, error) {
	name := r.URL.Query().Get("system")
	if name == "" {
		name = s.def
	}
	rk, ok := s.rankings[name]
	if !ok {
		return nil, fmt.Errorf("unknown system %q", name)
	}
	return rk, nil
}

func (s *server) serveLadder(w http.ResponseWriter, r *http.Request) {
	rk, err := s.ranking(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, rk.String())
}

func (s *server) serveCSV(w http.ResponseWriter, r *http.Request) {
	rk, err := s.ranking(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", rk.SystemName()))
	fmt.Fprint(w, rk.CSV())
}

func (s *server) serveTrajectory(w http.ResponseWriter, r *http.Request) {
	rk, err := s.ranking(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	team := mux.Vars(r)["name"]
	if _, ok := rk.Rank(team); !ok {
		http.Error(w, fmt.Sprintf("unknown team %q", team), http.StatusNotFound)
		return
	}

	type trajectory struct {
		Team   string    `json:"team"`
		System string    `json:"system"`
		Values []float64 `json:"values"`
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(trajectory{
		Team:   team,
		System: rk.SystemName(),
		Values: rk.TeamValues(team),
	}); err != nil {
		level.Error(s.logger).Log("msg", "Error encoding trajectory", "err", err)
	}
}

func buildRankings(cfg *config.Config) (map[string]*ranking.Ranking, error) {
	teamsFile, err := os.Open(cfg.TeamsFile)
	if err != nil {
		return nil, fmt.Errorf("opening teams file: %w", err)
	}
	defer teamsFile.Close()
	league, err := parse.Teams(teamsFile, cfg.LeagueName)
	if err != nil {
		return nil, err
	}

	scheduleFile, err := os.Open(cfg.ScheduleFile)
	if err != nil {
		return nil, fmt.Errorf("opening schedule file: %w", err)
	}
	defer scheduleFile.Close()
	season, err := parse.Schedule(scheduleFile, cfg.SeasonYear)
	if err != nil {
		return nil, err
	}

	var baseline []string
	if cfg.BaselineFile != "" {
		baselineFile, err := os.Open(cfg.BaselineFile)
		if err != nil {
			return nil, fmt.Errorf("opening baseline file: %w", err)
		}
		defer baselineFile.Close()
		if baseline, err = parse.Baseline(baselineFile); err != nil {
			return nil, err
		}
	}

	systems := []ranking.System{
		system.Elo{K: cfg.EloK},
		system.PointShare{Scale: cfg.PointShareScale},
	}
	rankings := make(map[string]*ranking.Ranking, len(systems))
	for _, sys := range systems {
		rk, err := ranking.New(sys, league.TeamNames())
		if err != nil {
			return nil, err
		}
		if len(baseline) > 0 {
			if err := rk.SeedBaseline(baseline, cfg.BaselineIncrement, cfg.BaselineMax); err != nil {
				return nil, err
			}
		}
		if err := rk.ApplyGames(season); err != nil {
			return nil, err
		}
		rankings[sys.Name()] = rk
	}
	return rankings, nil
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			level.Error(logger).Log("msg", "Invalid configuration", "err", err)
		}
		os.Exit(1)
	}

	rankings, err := buildRankings(cfg)
	if err != nil {
		level.Error(logger).Log("msg", "Error computing rankings", "err", err)
		os.Exit(1)
	}
	srv := &server{logger: logger, rankings: rankings, def: "elo"}

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Path("/").HandlerFunc(srv.serveLadder)
	r.Path("/csv").HandlerFunc(srv.serveCSV)
	r.Path("/teams/{name}/trajectory").HandlerFunc(srv.serveTrajectory)

	term := make(chan os.Signal, 1)
	signal.Notify(term, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	level.Info(logger).Log("msg", "Listening for HTTP", "addr", cfg.ListenAddr)
	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	go func() {
		if err := httpSrv.ListenAndServe(); err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "Error listening for HTTP", "err", err)
			os.Exit(1)
		}
	}()

	s := <-term
	level.Info(logger).Log("msg", "Shutting down due to signal", "signal", s)
	httpSrv.Shutdown(context.Background())
	level.Info(logger).Log("msg", "Shutdown complete. Exiting.")
}
