package catalog

import (
	"errors"
	"sort"
)

// ErrChampionNotFound is returned when a champion lookup yields no record.
var ErrChampionNotFound = errors.New("champion not found")

// ErrItemNotFound is returned when an item lookup yields no record.
var ErrItemNotFound = errors.New("item not found")

// Catalog is an immutable, name-indexed view over the champion and item tables.
// It is built once and never mutated; accessors return value copies.
type Catalog struct {
	champions   []ChampionRecord
	items       []ItemRecord
	championIdx map[string]int
	itemIdx     map[string]int
}

// NewCatalog indexes champions and items by display name and canonical key.
//
// Records with an empty Name are dropped. Duplicate names are last-write-wins:
// the later record replaces the earlier one in its original catalog slot.
//
// Postcondition: Champion(n) and Item(n) resolve every surviving Name and Key.
func NewCatalog(champions []ChampionRecord, items []ItemRecord) *Catalog {
	c := &Catalog{
		championIdx: make(map[string]int, len(champions)*2),
		itemIdx:     make(map[string]int, len(items)*2),
	}
	for _, ch := range champions {
		if ch.Name == "" {
			continue
		}
		if i, ok := c.championIdx[ch.Name]; ok {
			c.champions[i] = ch
		} else {
			c.championIdx[ch.Name] = len(c.champions)
			c.champions = append(c.champions, ch)
		}
	}
	for i, ch := range c.champions {
		if ch.Key == "" {
			continue
		}
		if _, taken := c.championIdx[ch.Key]; !taken {
			c.championIdx[ch.Key] = i
		}
	}

	for _, it := range items {
		if it.Name == "" {
			continue
		}
		if i, ok := c.itemIdx[it.Name]; ok {
			c.items[i] = it
		} else {
			c.itemIdx[it.Name] = len(c.items)
			c.items = append(c.items, it)
		}
	}
	for i, it := range c.items {
		if it.Key == "" {
			continue
		}
		if _, taken := c.itemIdx[it.Key]; !taken {
			c.itemIdx[it.Key] = i
		}
	}
	return c
}

// Champion returns the champion whose display name or key equals name.
//
// Postcondition: ok is true iff a record matched.
func (c *Catalog) Champion(name string) (ChampionRecord, bool) {
	i, ok := c.championIdx[name]
	if !ok {
		return ChampionRecord{}, false
	}
	return c.champions[i], true
}

// Item returns the item whose display name or key equals name.
//
// Postcondition: ok is true iff a record matched.
func (c *Catalog) Item(name string) (ItemRecord, bool) {
	i, ok := c.itemIdx[name]
	if !ok {
		return ItemRecord{}, false
	}
	return c.items[i], true
}

// Champions returns all champions in catalog order.
func (c *Catalog) Champions() []ChampionRecord {
	out := make([]ChampionRecord, len(c.champions))
	copy(out, c.champions)
	return out
}

// Items returns all items in catalog order.
func (c *Catalog) Items() []ItemRecord {
	out := make([]ItemRecord, len(c.items))
	copy(out, c.items)
	return out
}

// ChampionCount returns the number of distinct champions.
func (c *Catalog) ChampionCount() int { return len(c.champions) }

// ItemCount returns the number of distinct items.
func (c *Catalog) ItemCount() int { return len(c.items) }

// ChampionNames returns display names, or keys when english is set, in catalog order.
func (c *Catalog) ChampionNames(english bool) []string {
	out := make([]string, 0, len(c.champions))
	for _, ch := range c.champions {
		if english {
			out = append(out, ch.Key)
		} else {
			out = append(out, ch.Name)
		}
	}
	return out
}

// ItemNames returns display names, or keys when english is set, in catalog order.
func (c *Catalog) ItemNames(english bool) []string {
	out := make([]string, 0, len(c.items))
	for _, it := range c.items {
		if english {
			out = append(out, it.Key)
		} else {
			out = append(out, it.Name)
		}
	}
	return out
}

// Categories returns the distinct item categories in ascending order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range c.items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	sort.Strings(out)
	return out
}
