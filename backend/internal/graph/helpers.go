package graph

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// ============================================================================
// Helper Functions
// ============================================================================

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// compareIDs puts numeric ids first in numeric order ("2" < "10"), then the
// rest in byte order. Equal numbers such as "01" and "1" fall back to byte
// order so the ordering stays total.
func compareIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

func sortSongs(songs []Song) {
	slices.SortFunc(songs, func(a, b Song) int {
		return compareIDs(a.ID, b.ID)
	})
}
