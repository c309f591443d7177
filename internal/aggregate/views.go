package aggregate

import (
	"sort"

	"github.com/fraudlens/fraudlens/internal/model"
)

// Views holds both aggregates of a dataset. It is built once and read-only afterwards.
type Views struct {
	categories    []model.CategoryTotal
	subcategories []model.SubcategoryTotal
	byCategory    map[string][]model.SubcategoryTotal
	excluded      int
}

// NewViews aggregates records.
func NewViews(records []model.Record) *Views {
	subs := ByCategorySubcategory(records)
	byCategory := make(map[string][]model.SubcategoryTotal)
	for _, s := range subs {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}

	excluded := 0
	for _, r := range records {
		if r.Category == "" {
			excluded++
		}
	}

	return &Views{
		categories:    ByCategory(records),
		subcategories: subs,
		byCategory:    byCategory,
		excluded:      excluded,
	}
}

// Categories returns all category totals, largest first.
func (v *Views) Categories() []model.CategoryTotal {
	return v.categories
}

// Top returns at most n category totals, largest first.
func (v *Views) Top(n int) []model.CategoryTotal {
	if n < 0 || n > len(v.categories) {
		n = len(v.categories)
	}
	return v.categories[:n]
}

// Subcategories returns at most m subcategory totals of category, largest first.
// Equal totals are ordered by label.
func (v *Views) Subcategories(category string, m int) []model.SubcategoryTotal {
	src := v.byCategory[category]
	result := make([]model.SubcategoryTotal, len(src))
	copy(result, src)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})
	if m >= 0 && m < len(result) {
		result = result[:m]
	}
	return result
}

// Excluded returns how many records had no category and were left out.
func (v *Views) Excluded() int {
	return v.excluded
}
