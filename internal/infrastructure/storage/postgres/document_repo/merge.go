package document_repo

import (
	"gestor/internal/core/id"
)

// mergeByID unions two result sets, preserving primary order and appending
// rows that only the extra query matched. Duplicates are dropped by id.
// paginate cuts the offset/limit window out of a merged result set.
// Zero limit means no cap.
func paginate[T any](rows []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func mergeByID[T any](primary, extra []T, key func(T) id.ID) []T {
	if len(extra) == 0 {
		return primary
	}

	seen := make(map[id.ID]struct{}, len(primary))
	for _, item := range primary {
		seen[key(item)] = struct{}{}
	}

	out := primary
	for _, item := range extra {
		if _, ok := seen[key(item)]; ok {
			continue
		}
		seen[key(item)] = struct{}{}
		out = append(out, item)
	}
	return out
}
