// Command battlesim runs batches of AI-only battles headlessly and
// optionally stores their records in PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/battlecore/internal/ai"
	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/battle/ability"
	"github.com/udisondev/battlecore/internal/battle/item"
	"github.com/udisondev/battlecore/internal/config"
	"github.com/udisondev/battlecore/internal/db"
	"github.com/udisondev/battlecore/internal/replay"
	"github.com/udisondev/battlecore/internal/scene"
	"github.com/udisondev/battlecore/internal/script"
)

// maxFrames bounds a single battle when max_turns is disabled.
const maxFrames = 100_000

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.Path()
	cfg, err := config.LoadBattle(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
	ai.TraceDecisions(level == slog.LevelDebug)

	slog.Info("battlesim starting",
		"config", cfgPath,
		"battles", cfg.Simulation.Battles,
		"concurrency", cfg.Simulation.Concurrency,
		"seed", cfg.Seed)

	registry := battle.NewRegistry()
	ability.RegisterAll(registry)
	item.RegisterAll(registry)
	registry.Freeze()

	sim := &simulator{
		cfg:      cfg,
		registry: registry,
		ais:      ai.DefaultRegistry(),
		events:   script.NewLoader(cfg.EventsDir),
	}
	records, err := sim.runAll(ctx)
	if err != nil {
		return err
	}

	tally := make(map[string]int)
	for _, rec := range records {
		tally[rec.Result]++
	}
	slog.Info("simulation finished", "battles", len(records), "results", tally)

	if !cfg.Database.Enabled {
		return nil
	}
	return store(ctx, cfg.Database, records)
}

type simulator struct {
	cfg      config.Battle
	registry *battle.Registry
	ais      *ai.Registry
	events   scene.EventLoader
}

// runAll runs every configured battle and returns their records in battle
// id order.
func (s *simulator) runAll(ctx context.Context) ([]*db.BattleRecord, error) {
	records := make([]*db.BattleRecord, s.cfg.Simulation.Battles)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Simulation.Concurrency)
	for i := range s.cfg.Simulation.Battles {
		g.Go(func() error {
			rec, err := s.runOne(gctx, i+1, s.cfg.Seed+uint64(i))
			if err != nil {
				return err
			}
			mu.Lock()
			records[i] = rec
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulating battles: %w", err)
	}
	return records, nil
}

// runOne plays battle id to its end on a headless scene.
func (s *simulator) runOne(ctx context.Context, id int, seed uint64) (*db.BattleRecord, error) {
	vs := s.cfg.VsType
	journal := replay.NewJournal()
	levels := make([][]*int, 2)
	for bank := range levels {
		lvl := 1 + int((seed+uint64(bank))%3)
		levels[bank] = []*int{&lvl}
	}

	logic, err := battle.NewLogic(battle.Config{
		Info:     battle.Info{BattleID: id, VsType: vs, TrainerBattle: true, AILevels: levels},
		Parties:  demoParties(seed, vs+2),
		Registry: s.registry,
		Seed:     seed,
		MaxTurns: s.cfg.MaxTurns,
		Recorder: journal,
	})
	if err != nil {
		return nil, fmt.Errorf("creating battle %d: %w", id, err)
	}

	built, err := s.ais.Build(logic)
	if err != nil {
		return nil, fmt.Errorf("battle %d: %w", id, err)
	}
	ais := make([]scene.AI, len(built))
	for i, a := range built {
		ais[i] = a
	}

	sc, err := scene.New(scene.Config{
		Logic:    logic,
		AIs:      ais,
		Events:   scene.LoadEvents(s.events, id),
		AICanWin: s.cfg.AICanWin,
		Debug:    s.cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("creating scene %d: %w", id, err)
	}
	result, err := sc.Run(ctx, maxFrames)
	if err != nil {
		return nil, err
	}

	return &db.BattleRecord{
		BattleID: id,
		Seed:     seed,
		Result:   result.String(),
		Turns:    logic.Turn(),
		Digest:   journal.Digest(),
		Actions:  journal.Entries(),
	}, nil
}

func store(ctx context.Context, dbCfg config.DatabaseConfig, records []*db.BattleRecord) error {
	version, err := db.MigrateSchema(ctx, dbCfg.DSN())
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Debug("battle schema ready", "version", version)
	database, err := db.New(ctx, dbCfg.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	repo := database.Battles()
	for _, rec := range records {
		if err := repo.Save(ctx, rec); err != nil {
			return fmt.Errorf("saving battle %d: %w", rec.BattleID, err)
		}
	}
	slog.Info("battle records saved", "count", len(records))
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
