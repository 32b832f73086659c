package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mtlprog/complytrack/internal/domain"
)

// historyEntry is the JSONB shape of one change entry.
type historyEntry struct {
	ModifiedAt time.Time         `json:"modifiedAt"`
	ModifiedBy string            `json:"modifiedBy"`
	Changes    map[string]string `json:"changes"`
}

func encodeHistory(entries []domain.ChangeEntry) ([]byte, error) {
	out := make([]historyEntry, len(entries))
	for i, e := range entries {
		out[i] = historyEntry{ModifiedAt: e.ModifiedAt, ModifiedBy: e.ModifiedBy, Changes: e.Changes}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return b, nil
}

func decodeHistory(raw []byte) ([]domain.ChangeEntry, error) {
	if len(raw) == 0 {
		return []domain.ChangeEntry{}, nil
	}
	var in []historyEntry
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	out := make([]domain.ChangeEntry, len(in))
	for i, e := range in {
		if e.Changes == nil {
			e.Changes = map[string]string{}
		}
		out[i] = domain.ChangeEntry{ModifiedAt: e.ModifiedAt, ModifiedBy: e.ModifiedBy, Changes: e.Changes}
	}
	return out, nil
}
