package models

// Category classifies an expense. The set is closed; anything unknown
// falls back to CategoryOther.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryUtilities     Category = "Utilities"
	CategoryShopping      Category = "Shopping"
	CategoryHealth        Category = "Health"
	CategoryTravel        Category = "Travel"
	CategoryOther         Category = "Other"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryShopping,
	CategoryHealth,
	CategoryTravel,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeCategory maps an arbitrary string to a valid category,
// defaulting to CategoryOther for empty or unknown values.
func NormalizeCategory(s string) Category {
	if s == "" {
		return CategoryOther
	}
	c := Category(s)
	if !c.Valid() {
		return CategoryOther
	}
	return c
}
