package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlCatalogFile is the top-level YAML structure of a catalog file. A file may
// carry champions, items, or both.
type yamlCatalogFile struct {
	Champions []ChampionRecord `yaml:"champions"`
	Items     []ItemRecord     `yaml:"items"`
}

// Load reads champions and items from their respective paths and builds a Catalog.
//
// Precondition: both paths name a readable file or directory.
// Postcondition: Returns a Catalog or the first load error.
func Load(championsPath, itemsPath string) (*Catalog, error) {
	champs, err := LoadChampions(championsPath)
	if err != nil {
		return nil, err
	}
	items, err := LoadItems(itemsPath)
	if err != nil {
		return nil, err
	}
	return NewCatalog(champs, items), nil
}

// LoadChampions reads champion records from a YAML or CSV file, or from every
// *.yaml, *.yml and *.csv file in a directory (in lexical order).
//
// Postcondition: Returns the records in file order or a non-nil error.
func LoadChampions(path string) ([]ChampionRecord, error) {
	files, err := catalogFiles(path)
	if err != nil {
		return nil, fmt.Errorf("LoadChampions: %w", err)
	}
	var out []ChampionRecord
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("LoadChampions: cannot read file %q: %w", f, err)
		}
		var recs []ChampionRecord
		if isCSV(f) {
			recs, err = DecodeChampionsCSV(data)
		} else {
			recs, err = decodeChampionsYAML(data)
		}
		if err != nil {
			return nil, fmt.Errorf("LoadChampions: cannot parse file %q: %w", f, err)
		}
		out = append(out, recs...)
	}
	return out, nil
}

// LoadItems reads item records from a YAML or CSV file, or from every *.yaml,
// *.yml and *.csv file in a directory (in lexical order).
//
// Postcondition: Returns the records in file order or a non-nil error.
func LoadItems(path string) ([]ItemRecord, error) {
	files, err := catalogFiles(path)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: %w", err)
	}
	var out []ItemRecord
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", f, err)
		}
		var recs []ItemRecord
		if isCSV(f) {
			recs, err = DecodeItemsCSV(data)
		} else {
			recs, err = decodeItemsYAML(data)
		}
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot parse file %q: %w", f, err)
		}
		out = append(out, recs...)
	}
	return out, nil
}

func decodeChampionsYAML(data []byte) ([]ChampionRecord, error) {
	var f yamlCatalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Champions, nil
}

func decodeItemsYAML(data []byte) ([]ItemRecord, error) {
	var f yamlCatalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Items, nil
}

func catalogFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat %q: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %q: %w", path, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".csv":
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
