package bank

import (
	"fmt"

	"GolfPassport/internal/model"
)

// Lookup resolves courses and category policy. *catalog.Catalog satisfies it.
type Lookup interface {
	Course(id int) (model.Course, bool)
	Category(c model.Category) (model.CategoryConfig, bool)
}

// PartitionBanks splits totalCredits into the three category banks:
// 30% Signature, 40% Select, the remainder Classic, then one credit moves
// from Classic to Select whenever Classic is non-empty. The banks always
// sum to totalCredits.
func PartitionBanks(totalCredits int) (model.CategoryCredits, error) {
	if totalCredits < 0 {
		return model.CategoryCredits{}, fmt.Errorf("%w: total credits %d is negative", model.ErrInvalidArgument, totalCredits)
	}
	// tens and units split keeps the floors exact without overflowing near MaxInt
	tens, units := totalCredits/10, totalCredits%10
	sig := tens*3 + units*3/10
	sel := tens*4 + units*4/10
	cla := totalCredits - sig - sel
	if cla > 0 {
		cla--
		sel++
	}
	return model.CategoryCredits{Signature: sig, Select: sel, Classic: cla}, nil
}

// ComputeSpent sums rounds × credit cost per category. Course IDs the lookup
// does not know are stale references and are skipped.
func ComputeSpent(alloc model.Allocation, lookup Lookup) model.CategoryCredits {
	var spent model.CategoryCredits
	for id, rounds := range alloc.All() {
		course, ok := lookup.Course(id)
		if !ok {
			continue
		}
		cfg, ok := lookup.Category(course.Category)
		if !ok {
			continue
		}
		spent = spent.With(course.Category, spent.Of(course.Category)+rounds*cfg.CreditCost)
	}
	return spent
}

// Remaining is max(0, bank - spent) per category.
func Remaining(banks, spent model.CategoryCredits) model.CategoryCredits {
	var out model.CategoryCredits
	for _, c := range model.Categories {
		out = out.With(c, max(0, banks.Of(c)-spent.Of(c)))
	}
	return out
}

// Check reports why one more round at courseID would be refused, or nil if
// it is allowed. Callers must consult it (or CanIncrement) before Increment.
func Check(lookup Lookup, courseID int, alloc model.Allocation, banks, spent model.CategoryCredits) error {
	course, ok := lookup.Course(courseID)
	if !ok {
		return fmt.Errorf("%w: %d", model.ErrUnknownCourse, courseID)
	}
	cfg, ok := lookup.Category(course.Category)
	if !ok {
		return fmt.Errorf("%w: %d has no category policy", model.ErrUnknownCourse, courseID)
	}
	if alloc.Rounds(courseID) >= cfg.Cap {
		return fmt.Errorf("%w: %s allows %d rounds at %s", model.ErrCapReached, course.Category, cfg.Cap, course.Name)
	}
	left := Remaining(banks, spent).Of(course.Category)
	if left < cfg.CreditCost {
		return fmt.Errorf("%w: %s has %d left, a round costs %d", model.ErrInsufficientCredits, course.Category, left, cfg.CreditCost)
	}
	return nil
}

// CanIncrement is the admission gate for adding a round at courseID: the
// course is below its category cap and its category bank still covers one
// more round.
func CanIncrement(lookup Lookup, courseID int, alloc model.Allocation, banks, spent model.CategoryCredits) bool {
	return Check(lookup, courseID, alloc, banks, spent) == nil
}

// Increment returns alloc with one more round at courseID. It does not
// consult the gate.
func Increment(alloc model.Allocation, courseID int) model.Allocation {
	return alloc.With(courseID, alloc.Rounds(courseID)+1)
}

// Decrement returns alloc with one fewer round at courseID, never below 0.
// Giving a round back is never gated.
func Decrement(alloc model.Allocation, courseID int) model.Allocation {
	return alloc.With(courseID, max(0, alloc.Rounds(courseID)-1))
}
