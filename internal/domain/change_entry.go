package domain

import (
	"maps"
	"time"
)

// ChangeEntry is one append-only audit record on a task record's history.
type ChangeEntry struct {
	ModifiedAt time.Time
	ModifiedBy string
	Changes    map[string]string // field name -> new value
}

// Clone returns a copy with its own Changes map.
func (e ChangeEntry) Clone() ChangeEntry {
	e.Changes = maps.Clone(e.Changes)
	return e
}
