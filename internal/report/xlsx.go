package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/cory-johannsen/champsim/internal/simulation"
)

const (
	leaderboardSheet = "Leaderboard"
	abSheet          = "AB"
)

// ExportXLSX writes a workbook with a Leaderboard sheet of rows and, when rep
// is non-nil, an AB sheet of its rows. Parent directories are created.
func ExportXLSX(path string, rows []simulation.Row, rep *simulation.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", leaderboardSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeHeader(f, leaderboardSheet, BatchHeader, headerStyle); err != nil {
		return err
	}
	for i, r := range rows {
		row := i + 2
		values := []any{r.Champion, r.Category, r.Item, r.ADDPS, r.APDPS, r.EHP, r.TTK, r.Sustain, r.Composite}
		if err := setRow(f, leaderboardSheet, row, values); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(leaderboardSheet, "A", "C", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(leaderboardSheet, "D", "I", 12); err != nil {
		return err
	}

	if rep != nil {
		if _, err := f.NewSheet(abSheet); err != nil {
			return fmt.Errorf("creating sheet %s: %w", abSheet, err)
		}
		if err := writeHeader(f, abSheet, SensitivityHeader, headerStyle); err != nil {
			return err
		}
		for i, r := range rep.Rows {
			values := []any{r.Champion, r.Category, r.Item, r.Variable, r.ChangePct, r.ScoreA, r.ScoreB, r.DeltaPct}
			if err := setRow(f, abSheet, i+2, values); err != nil {
				return err
			}
		}
		if err := f.SetColWidth(abSheet, "A", "C", 22); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []string, style int) error {
	values := make([]any, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := setRow(f, sheet, 1, values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}
