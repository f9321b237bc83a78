package aggregate

import "slices"

// Change is the joined past/current measure for one key.
type Change[K any] struct {
	Key     K
	Past    float64
	Current float64
	// Delta is past minus current, positive when the measure shrank.
	Delta   float64
	Stopped bool
}

// Join performs a full outer join of the two aggregates, treating a missing side as zero.
// The result is ordered by key.
func Join[K Key[K]](past, current Totals[K]) []Change[K] {
	keys := make([]K, 0, len(past)+len(current))
	for k := range past {
		keys = append(keys, k)
	}
	for k := range current {
		if _, ok := past[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b K) int { return a.Compare(b) })

	changes := make([]Change[K], 0, len(keys))
	for _, k := range keys {
		p, c := past[k], current[k]
		changes = append(changes, Change[K]{
			Key:     k,
			Past:    p,
			Current: c,
			Delta:   p - c,
			Stopped: c == 0,
		})
	}
	return changes
}

// Compare keeps only the keys whose measure strictly declined. Flat or growing keys,
// and keys without past activity, are never returned.
func Compare[K Key[K]](past, current Totals[K]) []Change[K] {
	joined := Join(past, current)
	declines := make([]Change[K], 0, len(joined))
	for _, ch := range joined {
		if ch.Delta > 0 {
			declines = append(declines, ch)
		}
	}
	return declines
}
