// Command marchsim runs the Marchlands territory simulation: a tick-driven
// world of settlements, roads, armies, and rival lords, served over HTTP.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/veldtworks/marchlands/internal/ai"
	"github.com/veldtworks/marchlands/internal/api"
	"github.com/veldtworks/marchlands/internal/config"
	"github.com/veldtworks/marchlands/internal/engine"
	"github.com/veldtworks/marchlands/internal/entity"
	"github.com/veldtworks/marchlands/internal/history"
	"github.com/veldtworks/marchlands/internal/world"
)

func main() {
	configPath := flag.String("config", "marchsim.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("Marchlands — territory simulation",
		"seed", cfg.Seed,
		"players", len(cfg.Players),
		"tps", cfg.TicksPerSecond,
	)

	// ── History database ─────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := history.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open history database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("history database opened", "path", cfg.DBPath)

	// ── World generation (deterministic from seed) ───────────────────
	gcfg := world.DefaultGenConfig()
	gcfg.Seed = cfg.Seed
	gcfg.Width = cfg.World.Width
	gcfg.Height = cfg.World.Height
	gcfg.Players = len(cfg.Players)
	gcfg.NeutralVillages = cfg.World.NeutralVillages
	gcfg.Deposits = cfg.World.Deposits
	gen := world.Generate(gcfg)

	slog.Info("world generated",
		"settlements", len(gen.Settlements),
		"deposits", len(gen.Deposits),
	)

	var players []*entity.Player
	colors := []string{"#c0392b", "#2980b9", "#27ae60", "#8e44ad", "#d35400", "#16a085"}
	for i, pc := range cfg.Players {
		p := entity.NewPlayer(entity.PlayerID(pc.ID), pc.ID, colors[i%len(colors)], pc.AI)
		p.Aggressiveness = pc.Aggressiveness
		players = append(players, p)
	}

	sim := engine.NewSimulation(cfg.Seed, gen, players)

	for i, p := range players {
		if p.AI {
			sim.Controllers = append(sim.Controllers, ai.NewController(sim, p, i))
			slog.Info("ai controller attached", "player", p.ID, "aggressiveness", p.Aggressiveness)
		}
	}

	eng := engine.NewEngine(sim, cfg.TicksPerSecond)

	// ── Tick observers: history sink, websocket feed, periodic report ─
	hub := api.NewHub()
	eng.OnTickDone = func(tick uint64, events []engine.Event) {
		if err := db.RecordEvents(events); err != nil {
			slog.Warn("failed to record events", "error", err)
		}
		hub.BroadcastTick(tick, events)

		if cfg.ReportEvery > 0 && tick%cfg.ReportEvery == 0 {
			counts := make(map[entity.PlayerID]int)
			eng.Do(func(s *engine.Simulation) {
				for _, sett := range s.Settlements {
					counts[sett.Owner]++
				}
				for _, p := range s.Players {
					slog.Info("realm report",
						"tick", tick,
						"player", p.ID,
						"settlements", counts[p.ID],
						"treasury", humanize.CommafWithDigits(p.TreasuryTotal, 0),
						"food", humanize.CommafWithDigits(p.ResourceTotals["food"], 0),
						"researched", len(p.Researched),
					)
				}
			})
			if err := db.RecordStats(tick, sim.Players, counts); err != nil {
				slog.Warn("failed to record stats", "error", err)
			}
		}

		for _, ev := range events {
			switch ev.Kind {
			case engine.EventGameOver, engine.EventSettlementCaptured, engine.EventSettlementRevolted, engine.EventResearchComplete:
				slog.Info(string(ev.Kind), "tick", ev.Tick, "detail", ev.Description)
			}
		}
	}

	// ── API ──────────────────────────────────────────────────────────
	srv := &api.Server{Eng: eng, Hub: hub, Port: cfg.Port}
	srv.Start()
	slog.Info("api ready", "url", fmt.Sprintf("http://localhost:%d/api/v1/snapshot", cfg.Port))

	go eng.Run()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	slog.Info("shutting down")
	eng.Stop()
}
