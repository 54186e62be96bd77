// Package report renders batch leaderboards and A/B reports as flat tables.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/champsim/internal/simulation"
)

// BatchHeader is the header row of a leaderboard table.
var BatchHeader = []string{"Champion", "Category", "Item", "AD_DPS", "AP_DPS", "EHP", "TTK", "Sustain", "Composite"}

// SensitivityHeader is the header row of an A/B table.
var SensitivityHeader = []string{"Champion", "Category", "Item", "Variable", "Change%", "Comp_A", "Comp_B", "Delta%"}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// signed formats v with an explicit sign, e.g. "+10" or "-5".
func signed(v float64) string {
	return fmt.Sprintf("%+.0f", v)
}

// WriteBatchCSV writes rows as a leaderboard table with one header row.
func WriteBatchCSV(w io.Writer, rows []simulation.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(BatchHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Champion, r.Category, r.Item,
			fixed(r.ADDPS, 1), fixed(r.APDPS, 1), fixed(r.EHP, 0),
			fixed(r.TTK, 1), fixed(r.Sustain, 2), fixed(r.Composite, 3),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %q: %w", r.Item, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadBatchCSV reads a leaderboard table written by WriteBatchCSV.
//
// Postcondition: rows with fewer than 9 columns or an unparsable composite are
// skipped; other unparsable metrics read as 0. Order is the data line index.
func ReadBatchCSV(r io.Reader) ([]simulation.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows []simulation.Row
	for line := 0; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line+2, err)
		}
		if len(rec) < len(BatchHeader) {
			continue
		}
		comp, err := strconv.ParseFloat(strings.TrimSpace(rec[8]), 64)
		if err != nil {
			continue
		}
		rows = append(rows, simulation.Row{
			Champion:  strings.TrimSpace(rec[0]),
			Category:  strings.TrimSpace(rec[1]),
			Item:      strings.TrimSpace(rec[2]),
			ADDPS:     parseOrZero(rec[3]),
			APDPS:     parseOrZero(rec[4]),
			EHP:       parseOrZero(rec[5]),
			TTK:       parseOrZero(rec[6]),
			Sustain:   parseOrZero(rec[7]),
			Composite: comp,
			Order:     line,
		})
	}
	return rows, nil
}

func parseOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// WriteSensitivityCSV writes the rows of rep as an A/B table with one header row.
func WriteSensitivityCSV(w io.Writer, rep simulation.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SensitivityHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rep.Rows {
		rec := []string{
			r.Champion, r.Category, r.Item, r.Variable,
			signed(r.ChangePct), fixed(r.ScoreA, 3), fixed(r.ScoreB, 3), fixed(r.DeltaPct, 2),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %q: %w", r.Item, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
