package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/champsim/internal/balance"
	"github.com/cory-johannsen/champsim/internal/simulation"
)

// WriteSensitivitySummary writes rep as grouped, human-readable text: a header
// line, one block per champion and one line per warning.
func WriteSensitivitySummary(w io.Writer, rep simulation.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[A/B] Category: %s | Variable: %s | Change: %s%%\n", rep.Category, rep.Variable, signed(rep.ChangePct))
	b.WriteString(strings.Repeat("-", 53) + "\n")

	current := ""
	for _, r := range rep.Rows {
		if r.Champion != current {
			current = r.Champion
			fmt.Fprintf(&b, "\nChampion: %s\n", current)
		}
		fmt.Fprintf(&b, "%-22s | %s=%s%% -> %.3f -> %.3f (%+.1f%%)\n",
			r.Item, r.Variable, signed(r.ChangePct), r.ScoreA, r.ScoreB, r.DeltaPct)
	}
	if len(rep.Warnings) > 0 {
		b.WriteString("\n")
		for _, warn := range rep.Warnings {
			fmt.Fprintf(&b, "warning: %v\n", warn)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMetrics writes a single evaluation the way the interactive query
// presents it. Composite is shown as a percentage.
func WriteMetrics(w io.Writer, champion, item string, m balance.Metrics) error {
	_, err := fmt.Fprintf(w,
		"%s + %s\n(%s / %s)\n\n"+
			"AD DPS : %.1f\n"+
			"AP DPS : %.1f\n"+
			"Mixed DPS : %.1f\n"+
			"EHP : %.0f\n"+
			"TTK : %.2fs\n"+
			"Sustain : %.2f\n"+
			"Composite Score : %.1f%%\n",
		champion, item, m.Role, m.DamageType,
		m.ADDPS, m.APDPS, m.MixedDPS, m.EHP, m.TTK, m.Sustain.Combined, m.Composite*100)
	return err
}
