package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParseOptionalID parses an id coming from a query string or form.
// An empty value yields uuid.Nil, which callers treat as "no constraint".
func ParseOptionalID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// ParseIDList parses a comma separated list of ids, skipping blanks and duplicates.
func ParseIDList(raw string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, part := range strings.Split(raw, ",") {
		id, err := ParseOptionalID(part)
		if err != nil {
			return nil, err
		}
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
