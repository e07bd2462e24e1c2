package model

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Now is truncated to microseconds so values survive a Postgres round trip.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func appendUnique(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func remove(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(slices.Clone(ids), func(x uuid.UUID) bool { return x == id })
}

func dedup(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = appendUnique(out, id)
	}
	return out
}

// ParseIDs parses every string and reports the ones that are not uuids.
func ParseIDs(raw []string) ([]uuid.UUID, []string) {
	ids := make([]uuid.UUID, 0, len(raw))
	var invalid []string
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			invalid = append(invalid, s)
			continue
		}
		ids = append(ids, id)
	}
	return ids, invalid
}

// Missing returns the wanted ids absent from found, preserving order.
func Missing(wanted, found []uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for _, id := range wanted {
		if !slices.Contains(found, id) {
			out = append(out, id)
		}
	}
	return out
}

func JoinIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
