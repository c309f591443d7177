package model

import "github.com/shopspring/decimal"

// Record is one cleaned row of the fraud dataset.
type Record struct {
	Category    string          // agency
	Subcategory string          // program or activity
	Amount      decimal.Decimal // base currency units, never negative
}

// CategoryTotal is the summed amount for one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// SubcategoryTotal is the summed amount for one (category, subcategory) pair.
type SubcategoryTotal struct {
	Category    string
	Subcategory string
	Total       decimal.Decimal
}
