// Package main provides the skirmish binary: a headless twin-stick arena in
// which a player and a ring of enemies fire buffed weapons at each other on a
// fixed tick.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/twinstick/internal/config"
	"github.com/cory-johannsen/twinstick/internal/game/dice"
	"github.com/cory-johannsen/twinstick/internal/game/sim"
	"github.com/cory-johannsen/twinstick/internal/observability"
	"github.com/cory-johannsen/twinstick/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/skirmish.yaml", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("skirmish: %v", err)
	}
}

// run wires the skirmish and blocks until it finishes. Every failure after
// the logger exists is returned so deferred cleanup still closes the brain
// VMs and flushes the log.
func run(configPath string) error {
	start := time.Now()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger("skirmish", cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer observability.Sync(logger) //nolint:errcheck

	src := dice.NewCryptoSource()
	if cfg.Simulation.Seed != 0 {
		src = dice.NewSeededSource(cfg.Simulation.Seed)
	}
	roller := dice.NewLoggedRoller(src, logger)

	loadStart := time.Now()
	c, err := loadContent(cfg.Content, roller, logger)
	if err != nil {
		logger.Error("loading content", zap.Error(err))
		return fmt.Errorf("loading content: %w", err)
	}
	defer c.close()
	logger.Info("content loaded",
		zap.Int("weapons", len(c.weapons)),
		zap.Int("drop_tables", len(c.tables)),
		zap.Strings("brains", c.brains),
		zap.Duration("elapsed", time.Since(loadStart)),
	)

	arena, err := buildArena(cfg, c, roller, logger)
	if err != nil {
		logger.Error("building arena", zap.Error(err))
		return fmt.Errorf("building arena: %w", err)
	}
	runner, err := sim.NewRunner(arena, cfg.Simulation.TickRateHz, cfg.Simulation.MaxTicks, logger)
	if err != nil {
		logger.Error("creating runner", zap.Error(err))
		return fmt.Errorf("creating runner: %w", err)
	}

	lc := server.NewLifecycle(logger)
	lc.Add("arena", runner)

	logger.Info("skirmish ready",
		zap.Int("tick_rate_hz", cfg.Simulation.TickRateHz),
		zap.Int("max_ticks", cfg.Simulation.MaxTicks),
		zap.Int("characters", len(arena.Characters())),
		zap.Duration("startup", time.Since(start)),
	)

	runErr := lc.Run(context.Background())
	if runErr != nil {
		logger.Error("skirmish stopped with error", zap.Error(runErr))
	}

	s := runner.Stats()
	logger.Info("skirmish finished",
		zap.Int("ticks", s.Ticks),
		zap.Float64("elapsed", s.Elapsed),
		zap.Int("trigger_pulls", s.TriggerPulls),
		zap.Int("shots_fired", s.ShotsFired),
		zap.Int("shots_dropped", s.ShotsDropped),
		zap.Int("jams", s.Jams),
		zap.Int("hits", s.Hits),
		zap.Int("kills", s.Kills),
		zap.Int("pickups", s.Pickups),
	)
	return runErr
}
