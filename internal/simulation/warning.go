package simulation

import (
	"fmt"

	"github.com/cory-johannsen/champsim/internal/catalog"
)

// WarningKind classifies a non-fatal condition met during a run.
type WarningKind int

const (
	// MissingChampion means a champion named by the result set is not in the catalog.
	MissingChampion WarningKind = iota
	// MissingItem means an item named by the result set is not in the catalog.
	MissingItem
)

// Warning reports a skipped champion group or row. It satisfies error and
// unwraps to catalog.ErrChampionNotFound or catalog.ErrItemNotFound.
type Warning struct {
	Kind     WarningKind
	Champion string
	Item     string
}

func (w Warning) Error() string {
	if w.Kind == MissingChampion {
		return fmt.Sprintf("%v: %q", catalog.ErrChampionNotFound, w.Champion)
	}
	return fmt.Sprintf("%v: %q (champion %q)", catalog.ErrItemNotFound, w.Item, w.Champion)
}

func (w Warning) Unwrap() error {
	if w.Kind == MissingChampion {
		return catalog.ErrChampionNotFound
	}
	return catalog.ErrItemNotFound
}
