package automaton

import (
	"slices"
	"strconv"
	"strings"
)

// NoTransition marks, in a refinement signature, a symbol the state has no
// transition on.
const NoTransition = -1

// Partition is a set of groups of state ids that covers every state exactly once.
type Partition [][]int

// normalize sorts every group and orders groups by their smallest member.
func (p Partition) normalize() {
	for _, g := range p {
		slices.Sort(g)
	}
	slices.SortFunc(p, func(a, b []int) int {
		return a[0] - b[0]
	})
}

// Equal reports whether two normalized partitions hold the same groups.
func (p Partition) Equal(q Partition) bool {
	return slices.EqualFunc(p, q, func(a, b []int) bool {
		return slices.Equal(a, b)
	})
}

// groupOf maps every state id to the index of its group.
func (p Partition) groupOf() map[int]int {
	out := make(map[int]int)
	for i, g := range p {
		for _, id := range g {
			out[id] = i
		}
	}
	return out
}

// String renders the partition as space-separated groups, e.g. "{0, 2} {1} {3}".
func (p Partition) String() string {
	groups := make([]string, len(p))
	for i, g := range p {
		groups[i] = "{" + joinInts(g, ", ") + "}"
	}
	return strings.Join(groups, " ")
}

func joinInts(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}
