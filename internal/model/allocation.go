package model

import (
	"iter"
	"maps"
	"slices"
)

// Allocation maps course IDs to the number of rounds assigned to them.
// It is an immutable value: every change returns a new Allocation and the
// receiver is left untouched. The zero value is an empty allocation.
type Allocation struct {
	rounds map[int]int
}

// NewAllocation copies m, dropping non-positive entries.
func NewAllocation(m map[int]int) Allocation {
	out := make(map[int]int, len(m))
	for id, n := range m {
		if n > 0 {
			out[id] = n
		}
	}
	return Allocation{rounds: out}
}

// Rounds returns the rounds assigned to courseID (0 when absent).
func (a Allocation) Rounds(courseID int) int {
	return a.rounds[courseID]
}

// With returns a copy with courseID set to n rounds. n <= 0 removes the entry.
func (a Allocation) With(courseID, n int) Allocation {
	out := make(map[int]int, len(a.rounds)+1)
	maps.Copy(out, a.rounds)
	if n > 0 {
		out[courseID] = n
	} else {
		delete(out, courseID)
	}
	return Allocation{rounds: out}
}

// All yields (courseID, rounds) pairs in ascending course ID order.
func (a Allocation) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for _, id := range slices.Sorted(maps.Keys(a.rounds)) {
			if !yield(id, a.rounds[id]) {
				return
			}
		}
	}
}

// Len is the number of courses with at least one round.
func (a Allocation) Len() int { return len(a.rounds) }

// TotalRounds sums rounds over every course.
func (a Allocation) TotalRounds() int {
	total := 0
	for _, n := range a.rounds {
		total += n
	}
	return total
}
