package simulation_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/champsim/internal/balance"
	"github.com/cory-johannsen/champsim/internal/catalog"
	"github.com/cory-johannsen/champsim/internal/config"
	"github.com/cory-johannsen/champsim/internal/simulation"
)

func champions() []catalog.ChampionRecord {
	return []catalog.ChampionRecord{
		{
			Name: "Garen", Key: "Garen", Role: "Bruiser", DamageType: "physical",
			HP:          catalog.StatCurve{Base: 690, Growth: 98},
			HPRegen:     catalog.StatCurve{Base: 8, Growth: 0.5},
			AD:          catalog.StatCurve{Base: 69, Growth: 4.5},
			AttackSpeed: catalog.StatCurve{Base: 0.625, Growth: 3.65},
			Armor:       catalog.StatCurve{Base: 38, Growth: 4.2},
			MR:          catalog.StatCurve{Base: 32, Growth: 1.55},
		},
		{
			Name: "Annie", Key: "Annie", Role: "Mage", DamageType: "magical",
			HP:          catalog.StatCurve{Base: 560, Growth: 96},
			HPRegen:     catalog.StatCurve{Base: 5.5, Growth: 0.55},
			AD:          catalog.StatCurve{Base: 50, Growth: 2.65},
			AttackSpeed: catalog.StatCurve{Base: 0.61, Growth: 1.36},
			Armor:       catalog.StatCurve{Base: 23, Growth: 4},
			MR:          catalog.StatCurve{Base: 30, Growth: 1.3},
		},
	}
}

func items() []catalog.ItemRecord {
	return []catalog.ItemRecord{
		{Name: "Infinity Edge", Category: "Crit", AD: 65, Crit: 0.25},
		{Name: "Rabadon", Category: "Mage", AP: 140},
		{Name: "Warmog", Category: "Tank", HP: 1000, HPRegen: 10},
		{Name: "Thornmail", Category: "Tank", HP: 350, Armor: 70},
		{Name: "Bloodthirster", Category: "Crit", AD: 80, Lifesteal: 0.15},
		{Name: "Luden", Category: "Mage", AP: 95, Mana: 600},
		{Name: "Sunfire", Category: "Tank", HP: 450, Armor: 45},
		{Name: "Kaenic", Category: "Tank", HP: 400, MR: 80},
		{Name: "Frozen Heart", Category: "Tank", Armor: 65, Mana: 400, Haste: 20},
		{Name: "Randuin", Category: "Tank", HP: 350, Armor: 75},
		{Name: "Stormsurge", Category: "Mage", AP: 90, MoveSpeedPct: 0.06},
	}
}

func newCatalog() *catalog.Catalog {
	return catalog.NewCatalog(champions(), items())
}

func batchParams() balance.Params {
	p := balance.DefaultParams()
	p.Convention = balance.ConventionRanking
	return p
}

func assertSorted(t assert.TestingT, rows []simulation.Row) {
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.Category == cur.Category {
			assert.GreaterOrEqual(t, prev.Composite, cur.Composite, "rows %d/%d", i-1, i)
		} else {
			assert.Less(t, prev.Category, cur.Category, "rows %d/%d", i-1, i)
		}
	}
}

func TestRunBatch_OneRowPerItemSorted(t *testing.T) {
	cat := newCatalog()
	sim := simulation.NewSimulator(cat, nil)
	champ, _ := cat.Champion("Garen")
	rows := sim.RunBatch(champ, batchParams())

	require.Len(t, rows, cat.ItemCount())
	assertSorted(t, rows)

	seen := make(map[string]bool)
	for _, r := range rows {
		assert.Equal(t, "Garen", r.Champion)
		seen[r.Category] = true
	}
	assert.Len(t, seen, len(cat.Categories()))
}

func TestRunBatch_RowMatchesEvaluate(t *testing.T) {
	cat := newCatalog()
	sim := simulation.NewSimulator(cat, nil)
	champ, _ := cat.Champion("Garen")
	p := batchParams()
	rows := sim.RunBatch(champ, p)
	for _, r := range rows {
		item, ok := cat.Item(r.Item)
		require.True(t, ok)
		m := balance.Evaluate(champ, item, p)
		assert.Equal(t, m.Composite, r.Composite, r.Item)
		assert.Equal(t, m.EHP, r.EHP, r.Item)
		assert.Equal(t, m.Sustain.Combined, r.Sustain, r.Item)
	}
}

func TestRunBatch_EmptyCatalog(t *testing.T) {
	cat := catalog.NewCatalog(champions(), nil)
	champ, _ := cat.Champion("Annie")
	rows := simulation.NewSimulator(cat, nil).RunBatch(champ, batchParams())
	assert.Empty(t, rows)
}

func TestRunBatch_TiesKeepCatalogOrder(t *testing.T) {
	cat := catalog.NewCatalog(champions(), []catalog.ItemRecord{
		{Name: "b", Category: "Same"},
		{Name: "a", Category: "Same"},
		{Name: "c", Category: "Same"},
	})
	champ, _ := cat.Champion("Garen")
	rows := simulation.NewSimulator(cat, nil).RunBatch(champ, batchParams())
	require.Len(t, rows, 3)
	assert.Equal(t, "b", rows[0].Item)
	assert.Equal(t, "a", rows[1].Item)
	assert.Equal(t, "c", rows[2].Item)
}

func TestProperty_RunBatch_PermutationInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := items()
		perm := rapid.Permutation(base).Draw(rt, "items")

		champ := champions()[rapid.IntRange(0, 1).Draw(rt, "champion")]
		a := simulation.NewSimulator(catalog.NewCatalog(champions(), base), nil).RunBatch(champ, batchParams())
		b := simulation.NewSimulator(catalog.NewCatalog(champions(), perm), nil).RunBatch(champ, batchParams())

		scores := make(map[string]float64)
		for _, r := range a {
			scores[r.Item] = r.Composite
		}
		require.Len(rt, b, len(a))
		for _, r := range b {
			assert.Equal(rt, scores[r.Item], r.Composite, r.Item)
		}
		assertSorted(rt, b)
	})
}

func TestSortRows(t *testing.T) {
	rows := []simulation.Row{
		{Item: "x", Category: "B", Composite: 0.1, Order: 0},
		{Item: "y", Category: "A", Composite: 0.2, Order: 1},
		{Item: "z", Category: "A", Composite: 0.5, Order: 2},
		{Item: "w", Category: "A", Composite: 0.5, Order: 3},
	}
	simulation.SortRows(rows)
	var got []string
	for _, r := range rows {
		got = append(got, r.Item)
	}
	assert.Equal(t, []string{"z", "w", "y", "x"}, got)
}

func TestParseAttribute(t *testing.T) {
	for _, a := range simulation.Attributes {
		got, err := simulation.ParseAttribute(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	got, err := simulation.ParseAttribute("lifesteal")
	require.NoError(t, err)
	assert.Equal(t, simulation.AttrLifesteal, got)
	_, err = simulation.ParseAttribute("crit")
	assert.Error(t, err)
}

func TestPerturb_CopiesAndScalesOneField(t *testing.T) {
	item := catalog.ItemRecord{Name: "x", AD: 10, AP: 20, AttackSpeed: 0.3, HP: 100, Armor: 40, MR: 50, Haste: 15, Lifesteal: 0.1}
	tests := []struct {
		attr  simulation.Attribute
		check func(catalog.ItemRecord) float64
		want  float64
	}{
		{simulation.AttrAD, func(i catalog.ItemRecord) float64 { return i.AD }, 11},
		{simulation.AttrAP, func(i catalog.ItemRecord) float64 { return i.AP }, 22},
		{simulation.AttrAS, func(i catalog.ItemRecord) float64 { return i.AttackSpeed }, 0.33},
		{simulation.AttrHP, func(i catalog.ItemRecord) float64 { return i.HP }, 110},
		{simulation.AttrArmor, func(i catalog.ItemRecord) float64 { return i.Armor }, 44},
		{simulation.AttrMR, func(i catalog.ItemRecord) float64 { return i.MR }, 55},
		{simulation.AttrHaste, func(i catalog.ItemRecord) float64 { return i.Haste }, 16.5},
		{simulation.AttrLifesteal, func(i catalog.ItemRecord) float64 { return i.Lifesteal }, 0.11},
	}
	for _, tc := range tests {
		out := simulation.Perturb(item, tc.attr, 10)
		assert.InDelta(t, tc.want, tc.check(out), 1e-9, tc.attr.String())
		assert.InDelta(t, tc.want/1.1, tc.check(item), 1e-9, "source mutated for %s", tc.attr)
	}
	out := simulation.Perturb(item, simulation.AttrAD, 10)
	out.AD = item.AD
	assert.Equal(t, item, out)
}

func TestRelativeChange(t *testing.T) {
	assert.InDelta(t, 10.0, simulation.RelativeChange(0.5, 0.55), 1e-9)
	assert.InDelta(t, -50.0, simulation.RelativeChange(-0.2, -0.3), 1e-9)
	assert.Equal(t, 0.0, simulation.RelativeChange(0, 0.4))
	assert.Equal(t, 0.0, simulation.RelativeChange(1e-12, 0.4))
}

func runAllBatches(t *testing.T, e *simulation.Engine) {
	t.Helper()
	q := simulation.Query{Level: 18, DefenderArmor: 40, DefenderMR: 50, PhysMix: 0.7}
	for _, name := range []string{"Garen", "Annie"} {
		_, err := e.RunBatch(name, q)
		require.NoError(t, err)
	}
}

func TestAnalyzer_TopAndBottomThreePerChampion(t *testing.T) {
	e := simulation.NewEngine(newCatalog(), simulation.DefaultOptions(), nil)
	runAllBatches(t, e)

	rep, err := e.RunSensitivity("Tank", "HP", 10)
	require.NoError(t, err)
	assert.Empty(t, rep.Warnings)
	// 6 tank items: 3 best + 3 worst per champion, no overlap.
	require.Len(t, rep.Rows, 12)
	for i, r := range rep.Rows {
		if i < 6 {
			assert.Equal(t, "Garen", r.Champion)
		} else {
			assert.Equal(t, "Annie", r.Champion)
		}
		assert.Equal(t, "Tank", r.Category)
		assert.Equal(t, "HP", r.Variable)
		assert.Equal(t, 10.0, r.ChangePct)
		assert.InDelta(t, simulation.RelativeChange(r.ScoreA, r.ScoreB), r.DeltaPct, 1e-12)
	}

	garen := rep.Rows[:6]
	assert.GreaterOrEqual(t, garen[0].ScoreA, garen[1].ScoreA)
	assert.GreaterOrEqual(t, garen[1].ScoreA, garen[2].ScoreA)
	assert.LessOrEqual(t, garen[3].ScoreA, garen[4].ScoreA)
	assert.LessOrEqual(t, garen[4].ScoreA, garen[5].ScoreA)
}

func TestAnalyzer_SmallCategoryHasNoDuplicates(t *testing.T) {
	e := simulation.NewEngine(newCatalog(), simulation.DefaultOptions(), nil)
	runAllBatches(t, e)
	rep, err := e.RunSensitivity("Mage", "AP", 20)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 6)
	seen := make(map[string]bool)
	for _, r := range rep.Rows {
		key := r.Champion + "/" + r.Item
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
	}
}

func TestAnalyzer_PerturbingHPRaisesTankScores(t *testing.T) {
	e := simulation.NewEngine(newCatalog(), simulation.DefaultOptions(), nil)
	runAllBatches(t, e)
	rep, err := e.RunSensitivity("Tank", "HP", 50)
	require.NoError(t, err)
	for _, r := range rep.Rows {
		item, _ := e.Catalog().Item(r.Item)
		if item.HP > 0 {
			assert.Greater(t, r.ScoreB, r.ScoreA, r.Item)
		} else {
			assert.Equal(t, r.ScoreA, r.ScoreB, r.Item)
		}
	}
}

func TestProperty_Analyzer_ZeroDeltaIsIdentity(t *testing.T) {
	e := simulation.NewEngine(newCatalog(), simulation.DefaultOptions(), nil)
	runAllBatches(t, e)
	cats := e.Categories()
	rapid.Check(t, func(rt *rapid.T) {
		cat := rapid.SampledFrom(cats).Draw(rt, "category")
		attr := rapid.SampledFrom(simulation.Attributes).Draw(rt, "attribute")
		rep, err := e.RunSensitivity(cat, attr.String(), 0)
		require.NoError(rt, err)
		require.NotEmpty(rt, rep.Rows)
		for _, r := range rep.Rows {
			assert.Equal(rt, 0.0, r.DeltaPct)
			assert.Equal(rt, r.ScoreA, r.ScoreB)
		}
	})
}

func TestAnalyzer_MissingEntitiesAreWarnings(t *testing.T) {
	cat := newCatalog()
	rows := []simulation.Row{
		{Champion: "Ghost", Category: "Tank", Item: "Warmog", Composite: 0.5},
		{Champion: "Garen", Category: "Tank", Item: "Vanished", Composite: 0.9, Order: 0},
		{Champion: "Garen", Category: "Tank", Item: "Warmog", Composite: 0.4, Order: 1},
		{Champion: "Garen", Category: "Crit", Item: "Infinity Edge", Composite: 0.4, Order: 2},
	}
	an := simulation.NewAnalyzer(cat, simulation.DefaultOptions().Sensitivity, 3, nil)
	rep := an.Run(rows, "Tank", simulation.AttrArmor, 25)

	require.Len(t, rep.Warnings, 2)
	assert.Equal(t, simulation.MissingChampion, rep.Warnings[0].Kind)
	assert.True(t, errors.Is(rep.Warnings[0], catalog.ErrChampionNotFound))
	assert.Equal(t, simulation.MissingItem, rep.Warnings[1].Kind)
	assert.True(t, errors.Is(rep.Warnings[1], catalog.ErrItemNotFound))

	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "Warmog", rep.Rows[0].Item)
}

func TestAnalyzer_UnknownCategoryYieldsNothing(t *testing.T) {
	e := simulation.NewEngine(newCatalog(), simulation.DefaultOptions(), nil)
	runAllBatches(t, e)
	rep, err := e.RunSensitivity("Boots", "AD", 10)
	require.NoError(t, err)
	assert.Empty(t, rep.Rows)
	assert.Empty(t, rep.Warnings)
}

func TestEngine_Evaluate(t *testing.T) {
	e := simulation.NewEngine(newCatalog(), simulation.DefaultOptions(), nil)
	q := simulation.Query{Level: 18, DefenderArmor: 40, DefenderMR: 50, PhysMix: 0.7}

	m, err := e.Evaluate("Annie", "Rabadon", q)
	require.NoError(t, err)
	// Annie is magical: the query convention drops the AD term entirely.
	w := balance.WeightsFor(balance.RoleMage)
	assert.InDelta(t, w.APDPS*m.APDPS/150+w.EHP*m.EHP/4000+
		w.TTK*min(1, m.TTK/10)+w.Sustain*min(1, m.Sustain.Combined/20), m.Composite, 1e-12)

	a, _ := e.Evaluate("Annie", "Rabadon", q)
	assert.Equal(t, m, a)

	_, err = e.Evaluate("Nobody", "Rabadon", q)
	assert.ErrorIs(t, err, catalog.ErrChampionNotFound)
	_, err = e.Evaluate("Annie", "Nothing", q)
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestEngine_RunBatchReplacesChampionRows(t *testing.T) {
	cat := newCatalog()
	e := simulation.NewEngine(cat, simulation.DefaultOptions(), nil)
	runAllBatches(t, e)
	require.Len(t, e.Results(), 2*cat.ItemCount())

	_, err := e.RunBatch("Garen", simulation.Query{Level: 1, PhysMix: 0.7})
	require.NoError(t, err)
	assert.Len(t, e.Results(), 2*cat.ItemCount())

	_, err = e.RunBatch("Nobody", simulation.Query{Level: 1})
	assert.ErrorIs(t, err, catalog.ErrChampionNotFound)
	assert.Len(t, e.Results(), 2*cat.ItemCount())
}

func TestEngine_RunSensitivityUnknownVariable(t *testing.T) {
	e := simulation.NewEngine(newCatalog(), simulation.DefaultOptions(), nil)
	_, err := e.RunSensitivity("Tank", "Crit", 10)
	assert.Error(t, err)
}

func TestEngine_LoadResults(t *testing.T) {
	e := simulation.NewEngine(newCatalog(), simulation.DefaultOptions(), nil)
	var rows []simulation.Row
	for i, it := range items() {
		rows = append(rows, simulation.Row{Champion: "Garen", Category: it.Category, Item: it.Name, Composite: float64(i), Order: i})
	}
	e.LoadResults(rows)
	assert.Equal(t, []string{"Crit", "Mage", "Tank"}, e.Categories())
	rep, err := e.RunSensitivity("Crit", "AD", 10)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "Bloodthirster", rep.Rows[0].Item)
	assert.Equal(t, "Infinity Edge", rep.Rows[1].Item)
}

func ExampleRelativeChange() {
	fmt.Printf("%.1f\n", simulation.RelativeChange(0.4, 0.5))
	// Output: 25.0
}

func TestOptionsFromConfig(t *testing.T) {
	sim := config.SimulationConfig{
		Level: 11, DefenderArmor: 60, DefenderMR: 30, PhysMix: 0.4,
		IncomingPhysDPS: 200, IncomingMagDPS: 90,
		BatchConvention: "query", QueryConvention: "ranking",
	}
	sens := config.SensitivityConfig{
		Level: 16, DefenderArmor: 120, DefenderMR: 80, PhysMix: 0.5, Robust: true,
		Sample: 4, Convention: "ranking",
	}
	opts, err := simulation.OptionsFromConfig(sim, sens)
	require.NoError(t, err)
	assert.Equal(t, balance.Incoming{Phys: 200, Mag: 90}, opts.Incoming)
	assert.Equal(t, balance.ConventionQuery, opts.BatchConvention)
	assert.Equal(t, balance.ConventionRanking, opts.QueryConvention)
	assert.Equal(t, 4, opts.Sample)
	assert.Equal(t, balance.Params{
		Level: 16, DefenderArmor: 120, DefenderMR: 80, PhysMix: 0.5, Robust: true,
		Incoming: balance.Incoming{Phys: 200, Mag: 90}, Convention: balance.ConventionRanking,
	}, opts.Sensitivity)

	q := simulation.QueryFromConfig(sim)
	assert.Equal(t, simulation.Query{Level: 11, DefenderArmor: 60, DefenderMR: 30, PhysMix: 0.4}, q)
}

func TestOptionsFromConfig_UnknownConvention(t *testing.T) {
	_, err := simulation.OptionsFromConfig(
		config.SimulationConfig{BatchConvention: "ranking", QueryConvention: "weighted"},
		config.SensitivityConfig{Convention: "ranking"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation.query_convention")
}
