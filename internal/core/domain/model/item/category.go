package item

import (
	"fmt"

	"buffet/internal/pkg/errs"
)

// Category classifies a catalog item. It is a value object that validates
// enumeration membership and provides string representations for persistence
// and display.
type Category int

const (
	// CategoryUnknown represents an invalid or undefined category.
	// This value (0) helps catch uninitialized Category values.
	CategoryUnknown Category = iota

	// Popcorn covers all popcorn products.
	Popcorn

	// Drinks covers all beverages.
	Drinks

	// CottonCandy covers cotton candy products.
	CottonCandy

	// Other covers everything that does not fit a dedicated category.
	Other
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		CategoryUnknown: "unknown",
		Popcorn:         "popcorn",
		Drinks:          "drinks",
		CottonCandy:     "cotton_candy",
		Other:           "other",
	}
}

func getValidCategoryStrings() map[Category]string {
	//nolint:exhaustive // CategoryUnknown is intentionally excluded as it's invalid
	return map[Category]string{
		Popcorn:     "popcorn",
		Drinks:      "drinks",
		CottonCandy: "cotton_candy",
		Other:       "other",
	}
}

// CategoryFromString parses a category from its persisted string form.
// Unrecognized input maps to Other rather than failing: the catalog is
// external storage and a new category there must not break existing flows.
func CategoryFromString(s string) Category {
	for category, str := range getValidCategoryStrings() {
		if str == s {
			return category
		}
	}
	return Other
}

// Validate checks if the Category value is a member of the enumeration.
func (c Category) Validate() error {
	if _, ok := getValidCategoryStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("category is invalid", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

// String returns the persisted name of the category.
// Implements fmt.Stringer and is safe to call on any Category value.
func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "unknown"
}
