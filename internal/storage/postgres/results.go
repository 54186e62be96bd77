package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/champsim/internal/simulation"
)

// ErrRunNotFound is returned when no stored run matches a lookup.
var ErrRunNotFound = errors.New("run not found")

// Scenario records the parameters a stored run was evaluated under.
type Scenario struct {
	Level         int
	DefenderArmor float64
	DefenderMR    float64
	PhysMix       float64
	Robust        bool
	Convention    string
}

// BatchRun is the header of one stored batch result table.
type BatchRun struct {
	ID        uuid.UUID
	Scenario  Scenario
	RowCount  int
	CreatedAt time.Time
}

// SensitivityRun is the header of one stored A/B analysis.
type SensitivityRun struct {
	ID        uuid.UUID
	Category  string
	Variable  string
	ChangePct float64
	Scenario  Scenario
	CreatedAt time.Time
}

// ResultRepository stores batch tables and A/B analyses.
type ResultRepository struct {
	db *pgxpool.Pool
}

// NewResultRepository creates a ResultRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

// SaveBatch stores rows as a new batch run.
//
// Precondition: rows should already be sorted; their position is preserved.
// Postcondition: Returns the stored run header with ID and CreatedAt set.
func (r *ResultRepository) SaveBatch(ctx context.Context, sc Scenario, rows []simulation.Row) (BatchRun, error) {
	run := BatchRun{ID: uuid.New(), Scenario: sc, RowCount: len(rows)}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return BatchRun{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO batch_runs (id, level, defender_armor, defender_mr, phys_mix, robust, convention, row_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		run.ID, sc.Level, sc.DefenderArmor, sc.DefenderMR, sc.PhysMix, sc.Robust, sc.Convention, run.RowCount,
	).Scan(&run.CreatedAt)
	if err != nil {
		return BatchRun{}, fmt.Errorf("inserting batch run: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"batch_rows"},
		[]string{"run_id", "position", "champion", "category", "item", "ad_dps", "ap_dps", "ehp", "ttk", "sustain", "composite"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			row := rows[i]
			return []any{run.ID, i, row.Champion, row.Category, row.Item,
				row.ADDPS, row.APDPS, row.EHP, row.TTK, row.Sustain, row.Composite}, nil
		}),
	)
	if err != nil {
		return BatchRun{}, fmt.Errorf("copying batch rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return BatchRun{}, fmt.Errorf("commit batch run: %w", err)
	}
	return run, nil
}

// LatestBatch returns the most recently stored batch run and its rows.
//
// Postcondition: Returns ErrRunNotFound when no batch has been stored.
// Each row's Order is its stored position.
func (r *ResultRepository) LatestBatch(ctx context.Context) (BatchRun, []simulation.Row, error) {
	var run BatchRun
	sc := &run.Scenario
	err := r.db.QueryRow(ctx,
		`SELECT id, level, defender_armor, defender_mr, phys_mix, robust, convention, row_count, created_at
		 FROM batch_runs ORDER BY created_at DESC, id LIMIT 1`,
	).Scan(&run.ID, &sc.Level, &sc.DefenderArmor, &sc.DefenderMR, &sc.PhysMix, &sc.Robust, &sc.Convention, &run.RowCount, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BatchRun{}, nil, ErrRunNotFound
		}
		return BatchRun{}, nil, fmt.Errorf("querying latest batch run: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT position, champion, category, item, ad_dps, ap_dps, ehp, ttk, sustain, composite
		 FROM batch_rows WHERE run_id = $1 ORDER BY position`,
		run.ID,
	)
	if err != nil {
		return BatchRun{}, nil, fmt.Errorf("querying batch rows: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (simulation.Row, error) {
		var res simulation.Row
		err := row.Scan(&res.Order, &res.Champion, &res.Category, &res.Item,
			&res.ADDPS, &res.APDPS, &res.EHP, &res.TTK, &res.Sustain, &res.Composite)
		return res, err
	})
	if err != nil {
		return BatchRun{}, nil, fmt.Errorf("scanning batch rows: %w", err)
	}
	return run, out, nil
}

// SaveSensitivity stores an A/B report and its rows.
// Warnings are not persisted.
//
// Postcondition: Returns the stored run header with ID and CreatedAt set.
func (r *ResultRepository) SaveSensitivity(ctx context.Context, sc Scenario, rep simulation.Report) (SensitivityRun, error) {
	run := SensitivityRun{
		ID:        uuid.New(),
		Category:  rep.Category,
		Variable:  rep.Variable,
		ChangePct: rep.ChangePct,
		Scenario:  sc,
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return SensitivityRun{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO sensitivity_runs (id, category, variable, change_pct, level, defender_armor, defender_mr, phys_mix, robust, convention)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at`,
		run.ID, run.Category, run.Variable, run.ChangePct,
		sc.Level, sc.DefenderArmor, sc.DefenderMR, sc.PhysMix, sc.Robust, sc.Convention,
	).Scan(&run.CreatedAt)
	if err != nil {
		return SensitivityRun{}, fmt.Errorf("inserting sensitivity run: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"sensitivity_rows"},
		[]string{"run_id", "position", "champion", "item", "score_a", "score_b", "delta_pct"},
		pgx.CopyFromSlice(len(rep.Rows), func(i int) ([]any, error) {
			row := rep.Rows[i]
			return []any{run.ID, i, row.Champion, row.Item, row.ScoreA, row.ScoreB, row.DeltaPct}, nil
		}),
	)
	if err != nil {
		return SensitivityRun{}, fmt.Errorf("copying sensitivity rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return SensitivityRun{}, fmt.Errorf("commit sensitivity run: %w", err)
	}
	return run, nil
}

// SensitivityRows returns the stored rows of one A/B run in report order.
//
// Postcondition: Returns ErrRunNotFound when id names no stored run.
func (r *ResultRepository) SensitivityRows(ctx context.Context, id uuid.UUID) ([]simulation.DeltaRow, error) {
	var category, variable string
	var changePct float64
	err := r.db.QueryRow(ctx,
		`SELECT category, variable, change_pct FROM sensitivity_runs WHERE id = $1`, id,
	).Scan(&category, &variable, &changePct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("querying sensitivity run: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT champion, item, score_a, score_b, delta_pct
		 FROM sensitivity_rows WHERE run_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sensitivity rows: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (simulation.DeltaRow, error) {
		d := simulation.DeltaRow{Category: category, Variable: variable, ChangePct: changePct}
		err := row.Scan(&d.Champion, &d.Item, &d.ScoreA, &d.ScoreB, &d.DeltaPct)
		return d, err
	})
}
