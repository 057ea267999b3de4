// Package categories is the single source of truth for transaction
// category names (prompts, storage, reports). Keep these strings stable.
package categories

// names is the fixed vocabulary. Order matters: it is the order shown to
// the categorizer model.
var names = []string{
	"Grocery",
	"Food",
	"Transport",
	"Entertainment",
	"Digital Services",
	"Rent",
	"Utilities",
	"Shopping",
	"Health",
	"Others",
}

// All returns a copy of the category vocabulary so callers cannot mutate
// the shared list.
func All() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Valid reports whether s is an exact member of the vocabulary.
func Valid(s string) bool {
	for _, n := range names {
		if n == s {
			return true
		}
	}
	return false
}
