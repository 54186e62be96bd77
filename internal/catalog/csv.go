package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

// header maps normalized column names to their index in a CSV row.
type header map[string]int

func (h header) str(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return cleanCell(row[i])
}

// num parses the named column; missing, empty or unparsable cells yield 0.
func (h header) num(row []string, col string) float64 {
	s := h.str(row, col)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func (h header) curve(row []string, stat string) StatCurve {
	return StatCurve{Base: h.num(row, stat+"_base"), Growth: h.num(row, stat+"_growth")}
}

// DecodeChampionsCSV parses a champion table exported as CSV or TSV.
//
// Columns are matched by case-insensitive header name (champion_name,
// champion_en, role, damage_type, hp_base, hp_growth, ...). Rows without a
// champion name are skipped.
func DecodeChampionsCSV(data []byte) ([]ChampionRecord, error) {
	h, rows, err := readTable(data)
	if err != nil {
		return nil, err
	}
	if _, ok := h["champion_name"]; !ok {
		return nil, errors.New("missing champion_name column")
	}
	var out []ChampionRecord
	for _, row := range rows {
		c := ChampionRecord{
			Name:        h.str(row, "champion_name"),
			Key:         h.str(row, "champion_en"),
			Role:        h.str(row, "role"),
			DamageType:  h.str(row, "damage_type"),
			HP:          h.curve(row, "hp"),
			HPRegen:     h.curve(row, "hp_regen"),
			AD:          h.curve(row, "ad"),
			AttackSpeed: h.curve(row, "as"),
			Armor:       h.curve(row, "armor"),
			MR:          h.curve(row, "mr"),
			Mana:        h.curve(row, "mana"),
			ManaRegen:   h.curve(row, "mana_regen"),
			MoveSpeed:   StatCurve{Base: h.num(row, "ms_base")},
			Range:       h.num(row, "range_base"),
		}
		if c.Name == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// DecodeItemsCSV parses an item table exported as CSV or TSV.
//
// Columns are matched by case-insensitive header name (item_name, item_en,
// item_category, ad, ap, as, crit, ...). Rows without an item name are skipped.
func DecodeItemsCSV(data []byte) ([]ItemRecord, error) {
	h, rows, err := readTable(data)
	if err != nil {
		return nil, err
	}
	if _, ok := h["item_name"]; !ok {
		return nil, errors.New("missing item_name column")
	}
	var out []ItemRecord
	for _, row := range rows {
		it := ItemRecord{
			Name:          h.str(row, "item_name"),
			Key:           h.str(row, "item_en"),
			Category:      h.str(row, "item_category"),
			AD:            h.num(row, "ad"),
			AP:            h.num(row, "ap"),
			AttackSpeed:   h.num(row, "as"),
			Crit:          h.num(row, "crit"),
			Haste:         h.num(row, "haste"),
			Lifesteal:     h.num(row, "lifesteal"),
			FlatArmorPen:  h.num(row, "flat_armor_pen"),
			PctArmorPen:   h.num(row, "pct_armor_pen"),
			FlatMagicPen:  h.num(row, "flat_magic_pen"),
			PctMagicPen:   h.num(row, "pct_magic_pen"),
			HP:            h.num(row, "hp"),
			Armor:         h.num(row, "armor"),
			MR:            h.num(row, "mr"),
			Tenacity:      h.num(row, "tenacity"),
			HealingAmp:    h.num(row, "healing_amp"),
			Mana:          h.num(row, "mana"),
			HPRegen:       h.num(row, "hp_regen"),
			ManaRegen:     h.num(row, "mana_regen"),
			MoveSpeedFlat: h.num(row, "ms_flat"),
			MoveSpeedPct:  h.num(row, "ms_pct"),
		}
		if it.Name == "" {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// readTable decodes the text, detects the delimiter from the header line and
// returns the header index plus all data rows.
func readTable(data []byte) (header, [][]string, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, nil, err
	}
	firstLine := text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		firstLine = text[:i]
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	if strings.Contains(firstLine, "\t") {
		r.Comma = '\t'
	}

	names, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("empty table")
		}
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	h := make(header, len(names))
	for i, n := range names {
		key := strings.ToLower(cleanCell(n))
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading row: %w", err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		rows = append(rows, row)
	}
	return h, rows, nil
}

// decodeText strips a UTF-8 BOM and falls back to CP949 for legacy exports
// that are not valid UTF-8.
func decodeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		data = data[3:]
	} else if !utf8.Valid(data) {
		decoded, err := korean.EUCKR.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decoding cp949: %w", err)
		}
		data = decoded
	}
	return strings.TrimLeft(string(data), "\ufeff\u200b\x00"), nil
}

func cleanCell(s string) string {
	s = strings.NewReplacer("\"", "", "\r", "", "\n", "").Replace(s)
	return strings.TrimSpace(s)
}
