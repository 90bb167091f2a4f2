package report

import (
	"fmt"
	"iter"
	"strings"

	"GolfPassport/internal/calculator"
	"GolfPassport/internal/catalog"
	"GolfPassport/internal/model"
	"GolfPassport/internal/session"
)

// FormatCourseList renders a ranked course list, or an empty-state line.
func FormatCourseList(courses iter.Seq[model.RankedCourse], radiusMiles float64) string {
	var b strings.Builder
	n := 0
	for c := range courses {
		n++
		b.WriteString(fmt.Sprintf("%4d  %-16s %-10s %5.1f mi  %s\n", c.ID, c.Name, c.Category, c.DistanceMiles, c.Area))
	}
	if n == 0 {
		return fmt.Sprintf("No courses within %.0f miles. Try a larger radius.\n", radiusMiles)
	}
	return b.String()
}

// FormatPackages renders every package with its per-credit and per-round prices.
func FormatPackages(cat *catalog.Catalog, selectedID string) (string, error) {
	var b strings.Builder
	categories := cat.Categories()
	for _, p := range cat.Packages() {
		m, err := calculator.CalculatePackageMetrics(p, categories)
		if err != nil {
			return "", fmt.Errorf("package %s: %w", p.ID, err)
		}
		marker := " "
		if p.ID == selectedID {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("%s %-11s %-18s %3d credits  £%s", marker, p.Name, p.Title, p.Credits, p.Price.StringFixed(0)))
		if p.Recommended {
			b.WriteString("  (recommended)")
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("    £%s per credit |", m.PerCredit.StringFixed(2)))
		for _, c := range categories {
			b.WriteString(fmt.Sprintf(" %s £%s", c.Category, m.PerRound[c.Category].StringFixed(2)))
		}
		b.WriteString(" per round\n")
	}
	return b.String(), nil
}

// FormatBanks renders bank, spent and remaining credits per category.
func FormatBanks(banks, spent, remaining model.CategoryCredits) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-10s %5s %5s %9s\n", "Category", "Bank", "Spent", "Remaining"))
	for _, c := range model.Categories {
		b.WriteString(fmt.Sprintf("%-10s %5d %5d %9d\n", c, banks.Of(c), spent.Of(c), remaining.Of(c)))
	}
	return b.String()
}

// FormatSummary renders the membership summary shown before confirmation.
func FormatSummary(v session.View, cat *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString("Package\n")
	b.WriteString(fmt.Sprintf("  %s • %d credits • £%s\n", v.Package.Name, v.Package.Credits, v.Package.Price.StringFixed(0)))
	if v.TopUps > 0 {
		b.WriteString(fmt.Sprintf("  plus %d top-up credits (%d total)\n", v.TopUps, v.TotalCredits()))
	}
	b.WriteString(fmt.Sprintf("  Banks Signature %d Select %d Classic %d\n\n", v.Banks.Signature, v.Banks.Select, v.Banks.Classic))

	b.WriteString(FormatBanks(v.Banks, v.Spent, v.Remaining))

	b.WriteString("\nAdd ons\n")
	if len(v.AddOns) == 0 {
		b.WriteString("  none\n")
	}
	for _, id := range v.AddOns {
		a, ok := cat.AddOn(id)
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s", a.Name))
		if a.Price.IsPositive() {
			b.WriteString(fmt.Sprintf(" £%s", a.Price.StringFixed(0)))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("  Extras total £%s\n", v.AddOnTotal.StringFixed(0)))
	return b.String()
}

// FormatDashboard renders the next round and the member's allocated courses.
func FormatDashboard(v session.View, cat *catalog.Catalog, next model.NextRound, hasNext bool) string {
	var b strings.Builder
	name := v.Profile.Name
	if name == "" {
		name = "Golfer"
	}
	b.WriteString(fmt.Sprintf("Welcome back %s\n\n", name))

	b.WriteString("Your next round\n")
	if !hasNext {
		b.WriteString("  No rounds booked yet\n")
	} else {
		course, _ := cat.Course(next.Booking.CourseID)
		b.WriteString(fmt.Sprintf("  %s starts in %d hours %d minutes (%s)\n",
			course.Name, next.Hours, next.Minutes, next.Booking.When.Format("2006-01-02 15:04")))
		if next.OfferBalls {
			b.WriteString("  Order balls for this round\n")
		}
	}

	b.WriteString("\nYour courses\n")
	n := 0
	for id, rounds := range v.Allocation.All() {
		course, ok := cat.Course(id)
		if !ok {
			continue
		}
		n++
		b.WriteString(fmt.Sprintf("  %-16s %-10s rounds remaining %d\n", course.Name, course.Category, rounds))
	}
	if n == 0 {
		b.WriteString("  You have not allocated any rounds yet\n")
	}
	return b.String()
}
