package engine

// bringForwardIDs advances every selected member one slot toward the top
// (end) of the z-ordered id list using adjacent swaps. An element is only
// swapped with a neighbor that is not itself selected, which freezes the
// relative order inside a contiguous selected block while the block as a
// whole advances one position. A selection already touching the top is a
// fixed point. Reports whether the order changed.
func bringForwardIDs(ids []string, selected map[string]bool) bool {
	changed := false
	// Scan from the top so each selected member moves at most one slot.
	for i := len(ids) - 2; i >= 0; i-- {
		if selected[ids[i]] && !selected[ids[i+1]] {
			ids[i], ids[i+1] = ids[i+1], ids[i]
			changed = true
		}
	}
	return changed
}

// sendBackwardIDs is the mirror of bringForwardIDs toward the bottom.
func sendBackwardIDs(ids []string, selected map[string]bool) bool {
	changed := false
	for i := 1; i < len(ids); i++ {
		if selected[ids[i]] && !selected[ids[i-1]] {
			ids[i-1], ids[i] = ids[i], ids[i-1]
			changed = true
		}
	}
	return changed
}

// reorderByIDs rebuilds a slice of keyed values to match the given id
// order. Ids without a matching value are skipped.
func reorderByIDs[T any](values []T, idOf func(T) string, order []string) []T {
	byID := make(map[string]T, len(values))
	for _, v := range values {
		byID[idOf(v)] = v
	}

	out := make([]T, 0, len(values))
	for _, id := range order {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

func idsOf[T any](values []T, idOf func(T) string) []string {
	ids := make([]string, len(values))
	for i, v := range values {
		ids[i] = idOf(v)
	}
	return ids
}
