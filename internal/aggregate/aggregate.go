package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fraudlens/fraudlens/internal/model"
)

// ByCategory sums amounts per category and orders the result by descending
// total. Equal totals are ordered by label. Records without a category are skipped.
func ByCategory(records []model.Record) []model.CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, r := range records {
		if r.Category == "" {
			continue
		}
		totals[r.Category] = totals[r.Category].Add(r.Amount)
	}

	result := make([]model.CategoryTotal, 0, len(totals))
	for cat, total := range totals {
		result = append(result, model.CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Total.Cmp(result[j].Total); c != 0 {
			return c > 0
		}
		return result[i].Category < result[j].Category
	})
	return result
}

type pairKey struct {
	category    string
	subcategory string
}

// ByCategorySubcategory sums amounts per (category, subcategory) pair.
// Callers must not rely on the order of the result.
func ByCategorySubcategory(records []model.Record) []model.SubcategoryTotal {
	totals := make(map[pairKey]decimal.Decimal)
	for _, r := range records {
		if r.Category == "" || r.Subcategory == "" {
			continue
		}
		k := pairKey{r.Category, r.Subcategory}
		totals[k] = totals[k].Add(r.Amount)
	}

	result := make([]model.SubcategoryTotal, 0, len(totals))
	for k, total := range totals {
		result = append(result, model.SubcategoryTotal{Category: k.category, Subcategory: k.subcategory, Total: total})
	}
	// Stable output keeps tests and logs deterministic.
	sort.Slice(result, func(i, j int) bool {
		if result[i].Category != result[j].Category {
			return result[i].Category < result[j].Category
		}
		return result[i].Subcategory < result[j].Subcategory
	})
	return result
}

// Sum returns the total amount over records.
func Sum(records []model.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}
