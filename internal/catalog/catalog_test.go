package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/champsim/internal/catalog"
)

func TestStatCurve_LevelOne_ReturnsBase(t *testing.T) {
	c := catalog.ChampionRecord{HP: catalog.StatCurve{Base: 600, Growth: 90}}
	assert.Equal(t, 600.0, c.HPAt(1))
	assert.Equal(t, 690.0, c.HPAt(2))
	assert.Equal(t, 600.0+90*17, c.HPAt(18))
}

func TestAttackSpeedAt_IsMultiplicative(t *testing.T) {
	c := catalog.ChampionRecord{AttackSpeed: catalog.StatCurve{Base: 0.625, Growth: 2}}
	assert.Equal(t, 0.625, c.AttackSpeedAt(1))
	assert.InDelta(t, 0.625*(1+0.02*10), c.AttackSpeedAt(11), 1e-12)
}

func TestProperty_StatCurve_LinearInLevel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.Float64Range(0, 5000).Draw(rt, "base")
		growth := rapid.Float64Range(0, 200).Draw(rt, "growth")
		level := rapid.IntRange(1, 30).Draw(rt, "level")
		c := catalog.StatCurve{Base: base, Growth: growth}
		assert.InDelta(rt, growth, c.At(level+1)-c.At(level), 1e-6)
	})
}

func TestNewCatalog_LookupByNameAndKey(t *testing.T) {
	c := catalog.NewCatalog(
		[]catalog.ChampionRecord{{Name: "가렌", Key: "Garen", Role: "Bruiser"}},
		[]catalog.ItemRecord{{Name: "무한의 대검", Key: "Infinity Edge", Category: "Crit"}},
	)
	byName, ok := c.Champion("가렌")
	require.True(t, ok)
	byKey, ok := c.Champion("Garen")
	require.True(t, ok)
	assert.Equal(t, byName, byKey)

	_, ok = c.Item("Infinity Edge")
	assert.True(t, ok)
	_, ok = c.Item("Trinity Force")
	assert.False(t, ok)
}

func TestNewCatalog_DuplicateNamesAreLastWriteWins(t *testing.T) {
	c := catalog.NewCatalog(nil, []catalog.ItemRecord{
		{Name: "A", Category: "x", AD: 10},
		{Name: "B", Category: "x", AD: 20},
		{Name: "A", Category: "x", AD: 30},
	})
	require.Equal(t, 2, c.ItemCount())
	a, ok := c.Item("A")
	require.True(t, ok)
	assert.Equal(t, 30.0, a.AD)
	assert.Equal(t, []string{"A", "B"}, c.ItemNames(false))
}

func TestNewCatalog_DropsEmptyNames(t *testing.T) {
	c := catalog.NewCatalog(
		[]catalog.ChampionRecord{{Name: ""}, {Name: "Annie"}},
		[]catalog.ItemRecord{{Name: ""}, {Name: "Rabadon"}},
	)
	assert.Equal(t, 1, c.ChampionCount())
	assert.Equal(t, 1, c.ItemCount())
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c := catalog.NewCatalog(nil, []catalog.ItemRecord{{Name: "A", AD: 10}})
	items := c.Items()
	items[0].AD = 999
	a, _ := c.Item("A")
	assert.Equal(t, 10.0, a.AD)
}

func TestCatalog_Categories_SortedDistinct(t *testing.T) {
	c := catalog.NewCatalog(nil, []catalog.ItemRecord{
		{Name: "a", Category: "Tank"},
		{Name: "b", Category: "Crit"},
		{Name: "c", Category: "Tank"},
	})
	assert.Equal(t, []string{"Crit", "Tank"}, c.Categories())
}

func TestDecodeChampionsCSV_HeaderMapping(t *testing.T) {
	data := []byte("\xEF\xBB\xBFChampion_Name,champion_en,role,damage_type,hp_base,hp_growth,as_base,as_growth\n" +
		"\"가렌\",Garen,Bruiser,physical,690,98,0.625,3.65\n" +
		",Nobody,Tank,physical,1,1,1,1\n")
	recs, err := catalog.DecodeChampionsCSV(data)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "가렌", recs[0].Name)
	assert.Equal(t, "Garen", recs[0].Key)
	assert.Equal(t, 690.0, recs[0].HP.Base)
	assert.Equal(t, 98.0, recs[0].HP.Growth)
	assert.Equal(t, 3.65, recs[0].AttackSpeed.Growth)
	assert.Equal(t, 0.0, recs[0].Armor.Base)
}

func TestDecodeItemsCSV_TabDelimitedAndBadNumbers(t *testing.T) {
	data := []byte("item_name\titem_en\titem_category\tad\tcrit\tas\n" +
		"Blade\tBlade\tCrit\t65\t0.25\tn/a\n")
	recs, err := catalog.DecodeItemsCSV(data)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Crit", recs[0].Category)
	assert.Equal(t, 65.0, recs[0].AD)
	assert.Equal(t, 0.25, recs[0].Crit)
	assert.Equal(t, 0.0, recs[0].AttackSpeed)
}

func TestDecodeItemsCSV_QuotedComma(t *testing.T) {
	data := []byte("item_name,item_category,ap\n\"Hat, Deathcap\",Mage,140\n")
	recs, err := catalog.DecodeItemsCSV(data)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Hat, Deathcap", recs[0].Name)
	assert.Equal(t, 140.0, recs[0].AP)
}

func TestDecodeItemsCSV_MissingNameColumn(t *testing.T) {
	_, err := catalog.DecodeItemsCSV([]byte("foo,bar\n1,2\n"))
	assert.Error(t, err)
}

func TestDecodeChampionsCSV_Empty(t *testing.T) {
	_, err := catalog.DecodeChampionsCSV(nil)
	assert.Error(t, err)
}

func TestLoad_YAMLDirectory(t *testing.T) {
	dir := t.TempDir()
	champDir := filepath.Join(dir, "champions")
	require.NoError(t, os.Mkdir(champDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(champDir, "a.yaml"), []byte(`
champions:
  - name: Garen
    key: Garen
    role: Bruiser
    damage_type: physical
    hp: {base: 690, growth: 98}
    attack_speed: {base: 0.625, growth: 3.65}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(champDir, "ignored.txt"), []byte("x"), 0o644))

	itemsPath := filepath.Join(dir, "items.csv")
	require.NoError(t, os.WriteFile(itemsPath, []byte("item_name,item_category,hp\nWarmog,Tank,1000\n"), 0o644))

	c, err := catalog.Load(champDir, itemsPath)
	require.NoError(t, err)
	g, ok := c.Champion("Garen")
	require.True(t, ok)
	assert.Equal(t, 690.0, g.HPAt(1))
	w, ok := c.Item("Warmog")
	require.True(t, ok)
	assert.Equal(t, 1000.0, w.HP)
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := catalog.Load("/nonexistent/champions", "/nonexistent/items")
	assert.Error(t, err)
}

func TestLoadItems_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items: [\n"), 0o644))
	_, err := catalog.LoadItems(path)
	assert.Error(t, err)
}

func TestLoad_ShippedContent(t *testing.T) {
	cat, err := catalog.Load("../../content/champions", "../../content/items")
	require.NoError(t, err)
	assert.Equal(t, 7, cat.ChampionCount())
	assert.Equal(t, 16, cat.ItemCount())
	assert.Equal(t, []string{"Crit", "Fighter", "Mage", "Support", "Tank"}, cat.Categories())

	garen, ok := cat.Champion("Garen")
	require.True(t, ok)
	assert.InDelta(t, 690+98*17, garen.HPAt(18), 1e-9)
}
