package primitive

type CategoryEnum int

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // float -> int with truncation of the fractional part
	CategoryTextNumber                            // int, float <-> string: textual number representation
	CategoryNumericBool                           // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values

	CategoryAll  CategoryEnum = (1 << iota) - 1 //all categories combined
	CategoryNone CategoryEnum = 0               // no categories selected
)

// Has reports whether every category of want is allowed by c.
func (c CategoryEnum) Has(want CategoryEnum) bool {
	return c&want == want
}

// ParseCategory maps a category name used by the CLI to its flag.
func ParseCategory(name string) (CategoryEnum, bool) {
	switch name {
	case "safe-number":
		return CategorySafeNumber, true
	case "unsafe-number":
		return CategoryUnsafeNumber, true
	case "text-number":
		return CategoryTextNumber, true
	case "numeric-bool":
		return CategoryNumericBool, true
	case "textual-bool":
		return CategoryTextualBool, true
	case "all":
		return CategoryAll, true
	case "none":
		return CategoryNone, true
	default:
		return 0, false
	}
}
