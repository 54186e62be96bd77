package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cory-johannsen/champsim/internal/config"
	"github.com/cory-johannsen/champsim/internal/report"
	"github.com/cory-johannsen/champsim/internal/simulation"
	"github.com/cory-johannsen/champsim/internal/storage/postgres"
)

const (
	batchFile       = "SimulationResults_Sorted.csv"
	sensitivityFile = "AB_ChampionResults.csv"
	workbookFile    = "ChampionResults.xlsx"
)

// runner executes one CLI mode against a loaded engine.
type runner struct {
	cfg     config.Config
	engine  *simulation.Engine
	query   simulation.Query
	results *postgres.ResultRepository
	logger  *zap.Logger
}

func (r *runner) eval(champion, item string) error {
	if champion == "" || item == "" {
		return errors.New("eval requires -champion and -item")
	}
	m, err := r.engine.Evaluate(champion, item, r.query)
	if err != nil {
		return err
	}
	return report.WriteMetrics(os.Stdout, champion, item, m)
}

func (r *runner) batch(ctx context.Context, champion string) error {
	names, rows, err := r.runBatches(champion)
	if err != nil {
		return err
	}
	path := filepath.Join(r.cfg.Output.Dir, batchFile)
	if err := writeFile(path, func(f *os.File) error { return report.WriteBatchCSV(f, rows) }); err != nil {
		return err
	}
	r.logger.Info("leaderboard written",
		zap.String("path", path),
		zap.Int("champions", len(names)),
		zap.Int("rows", len(rows)),
	)

	if r.cfg.Output.XLSX {
		if err := r.exportWorkbook(rows, nil); err != nil {
			return err
		}
	}

	if r.results != nil {
		run, err := r.results.SaveBatch(ctx, r.scenario(r.engine.Options().BatchConvention.String()), rows)
		if err != nil {
			return err
		}
		r.logger.Info("leaderboard stored", zap.Stringer("batch_run", run.ID))
	}
	return nil
}

func (r *runner) ab(ctx context.Context, resultsPath, champion, category, variable string, delta float64) error {
	if category == "" || variable == "" {
		return errors.New("ab requires -category and -variable")
	}
	rows, err := r.leaderboard(ctx, resultsPath)
	switch {
	case errors.Is(err, errNoLeaderboard):
		r.logger.Info("no stored leaderboard, running batch", zap.String("champion", champion))
		if _, rows, err = r.runBatches(champion); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		r.engine.LoadResults(rows)
	}

	rep, err := r.engine.RunSensitivity(category, variable, delta)
	if err != nil {
		return err
	}

	path := filepath.Join(r.cfg.Output.Dir, sensitivityFile)
	if err := writeFile(path, func(f *os.File) error { return report.WriteSensitivityCSV(f, rep) }); err != nil {
		return err
	}
	r.logger.Info("sensitivity table written",
		zap.String("path", path),
		zap.Int("rows", len(rep.Rows)),
		zap.Int("warnings", len(rep.Warnings)),
	)
	if err := report.WriteSensitivitySummary(os.Stdout, rep); err != nil {
		return err
	}

	if r.cfg.Output.XLSX {
		if err := r.exportWorkbook(rows, &rep); err != nil {
			return err
		}
	}

	if r.results != nil {
		sens := r.engine.Options().Sensitivity
		sc := postgres.Scenario{
			Level:         sens.Level,
			DefenderArmor: sens.DefenderArmor,
			DefenderMR:    sens.DefenderMR,
			PhysMix:       sens.PhysMix,
			Robust:        sens.Robust,
			Convention:    sens.Convention.String(),
		}
		run, err := r.results.SaveSensitivity(ctx, sc, rep)
		if err != nil {
			return err
		}
		r.logger.Info("sensitivity table stored", zap.Stringer("sensitivity_run", run.ID))
	}
	return nil
}

// errNoLeaderboard reports that neither a CSV nor a stored batch is available.
var errNoLeaderboard = errors.New("no leaderboard available")

// runBatches builds the leaderboard of champion, or of every champion when
// it is empty, and returns the sorted result set.
func (r *runner) runBatches(champion string) ([]string, []simulation.Row, error) {
	names := []string{champion}
	if champion == "" {
		names = r.engine.Catalog().ChampionNames(false)
	}
	for _, name := range names {
		if _, err := r.engine.RunBatch(name, r.query); err != nil {
			return nil, nil, err
		}
	}
	rows := r.engine.Results()
	simulation.SortRows(rows)
	return names, rows, nil
}

// leaderboard returns the rows an A/B run analyzes: the named CSV, else the
// default CSV in the output directory, else the latest stored batch.
//
// Postcondition: returns errNoLeaderboard when no path was named and no
// source holds a leaderboard.
func (r *runner) leaderboard(ctx context.Context, path string) ([]simulation.Row, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(r.cfg.Output.Dir, batchFile)
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		rows, err := report.ReadBatchCSV(f)
		if err != nil {
			return nil, fmt.Errorf("reading leaderboard %s: %w", path, err)
		}
		r.logger.Info("leaderboard loaded", zap.String("path", path), zap.Int("rows", len(rows)))
		return rows, nil
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("opening leaderboard: %w", err)
	case r.results == nil:
		return nil, errNoLeaderboard
	}

	run, rows, err := r.results.LatestBatch(ctx)
	if errors.Is(err, postgres.ErrRunNotFound) {
		return nil, errNoLeaderboard
	}
	if err != nil {
		return nil, fmt.Errorf("loading stored leaderboard: %w", err)
	}
	r.logger.Info("leaderboard loaded", zap.Stringer("batch_run", run.ID), zap.Int("rows", len(rows)))
	return rows, nil
}

func (r *runner) scenario(convention string) postgres.Scenario {
	return postgres.Scenario{
		Level:         r.query.Level,
		DefenderArmor: r.query.DefenderArmor,
		DefenderMR:    r.query.DefenderMR,
		PhysMix:       r.query.PhysMix,
		Robust:        r.query.Robust,
		Convention:    convention,
	}
}

func (r *runner) exportWorkbook(rows []simulation.Row, rep *simulation.Report) error {
	path := filepath.Join(r.cfg.Output.Dir, workbookFile)
	if err := report.ExportXLSX(path, rows, rep); err != nil {
		return err
	}
	r.logger.Info("workbook written", zap.String("path", path))
	return nil
}

// writeFile creates path and its parent directory and hands the file to fn.
func writeFile(path string, fn func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
