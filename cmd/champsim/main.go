// Package main provides the champion balance simulator CLI.
// It evaluates a single champion + item pair, builds leaderboards, or runs
// an A/B sensitivity analysis over a leaderboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/champsim/internal/catalog"
	"github.com/cory-johannsen/champsim/internal/config"
	"github.com/cory-johannsen/champsim/internal/observability"
	"github.com/cory-johannsen/champsim/internal/simulation"
	"github.com/cory-johannsen/champsim/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	mode := flag.String("mode", "batch", "run mode: eval, batch, or ab")
	champion := flag.String("champion", "", "champion name or key (eval; batch and ab default to all champions)")
	item := flag.String("item", "", "item name (eval)")
	category := flag.String("category", "", "item category to analyze (ab)")
	variable := flag.String("variable", "", "item attribute to perturb (ab)")
	delta := flag.Float64("delta", 10, "attribute change in percent (ab)")
	resultsPath := flag.String("results", "", "leaderboard CSV to analyze (ab; defaults to the output directory)")
	outDir := flag.String("out", "", "output directory override")
	level := flag.Int("level", 0, "champion level override")
	armor := flag.Float64("armor", 0, "defender armor override")
	mr := flag.Float64("mr", 0, "defender magic resist override")
	physMix := flag.Float64("phys-mix", 0, "physical share of incoming damage override")
	robust := flag.Bool("robust", false, "use the worse of physical and magical survivability")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	// Only flags given on the command line override the configuration.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "level":
			cfg.Simulation.Level = *level
		case "armor":
			cfg.Simulation.DefenderArmor = *armor
		case "mr":
			cfg.Simulation.DefenderMR = *mr
		case "phys-mix":
			cfg.Simulation.PhysMix = *physMix
		case "robust":
			cfg.Simulation.Robust = *robust
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid flags: %v", err)
	}

	baseLogger, err := observability.NewLogger(cfg.Logging, "champsim")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer baseLogger.Sync()
	logger := observability.RunLogger(baseLogger, uuid.New(), *mode)

	catStart := time.Now()
	cat, err := catalog.Load(cfg.Catalog.Champions, cfg.Catalog.Items)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("champions", cat.ChampionCount()),
		zap.Int("items", cat.ItemCount()),
		zap.Duration("elapsed", time.Since(catStart)),
	)

	opts, err := simulation.OptionsFromConfig(cfg.Simulation, cfg.Sensitivity)
	if err != nil {
		logger.Fatal("building engine options", zap.Error(err))
	}
	engine := simulation.NewEngine(cat, opts, logger)

	ctx := context.Background()
	var results *postgres.ResultRepository
	if cfg.Database.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		results = pool.Results()
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.Name),
		)
	}

	r := &runner{
		cfg:     cfg,
		engine:  engine,
		query:   simulation.QueryFromConfig(cfg.Simulation),
		results: results,
		logger:  logger,
	}

	switch *mode {
	case "eval":
		err = r.eval(*champion, *item)
	case "batch":
		err = r.batch(ctx, *champion)
	case "ab":
		err = r.ab(ctx, *resultsPath, *champion, *category, *variable, *delta)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q (supported: eval, batch, ab)\n", *mode)
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
	logger.Info("run complete", zap.Duration("elapsed", time.Since(start)))
}
