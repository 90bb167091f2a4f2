package catalog

import (
	"cmp"
	"iter"
	"slices"

	"GolfPassport/internal/calculator"
	"GolfPassport/internal/model"
)

// RankedWithinRadius yields courses no further than area.RadiusMiles from
// area.Home, ordered by category rank, then distance, then name.
//
// The returned sequence is lazy: nothing is computed until it is ranged
// over, and each range recomputes from the catalog.
func (c *Catalog) RankedWithinRadius(area model.SearchArea) (iter.Seq[model.RankedCourse], error) {
	if err := model.Validate(area); err != nil {
		return nil, err
	}
	return c.withinRadius(area, byCategoryThenDistance), nil
}

// NearestWithinRadius is RankedWithinRadius ordered by distance then name,
// ignoring category.
func (c *Catalog) NearestWithinRadius(area model.SearchArea) (iter.Seq[model.RankedCourse], error) {
	if err := model.Validate(area); err != nil {
		return nil, err
	}
	return c.withinRadius(area, byDistance), nil
}

func (c *Catalog) withinRadius(area model.SearchArea, order func(a, b model.RankedCourse) int) iter.Seq[model.RankedCourse] {
	return func(yield func(model.RankedCourse) bool) {
		var hits []model.RankedCourse
		for _, course := range c.courses {
			d := calculator.DistanceMiles(area.Home, course.Location)
			if d <= area.RadiusMiles {
				hits = append(hits, model.RankedCourse{Course: course, DistanceMiles: d})
			}
		}
		slices.SortFunc(hits, order)
		for _, h := range hits {
			if !yield(h) {
				return
			}
		}
	}
}

func byCategoryThenDistance(a, b model.RankedCourse) int {
	if r := cmp.Compare(a.Category.Rank(), b.Category.Rank()); r != 0 {
		return r
	}
	return byDistance(a, b)
}

func byDistance(a, b model.RankedCourse) int {
	if r := cmp.Compare(a.DistanceMiles, b.DistanceMiles); r != 0 {
		return r
	}
	return cmp.Compare(a.Name, b.Name)
}
