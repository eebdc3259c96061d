package core

// CategoryOptions returns the selectable category labels for a type: the
// built-in labels first, then the user-defined categories of the matching
// type in the order given.
func CategoryOptions(builtins []string, userCats []Category, t TransactionType) []string {
	out := append([]string(nil), builtins...)
	for _, c := range userCats {
		if c.Type == t {
			out = append(out, c.Name)
		}
	}
	return out
}

// DefaultCategory returns the label pre-selected in the entry form: the
// first user-defined category of the type when one exists, otherwise the
// first built-in. Empty when both lists are empty.
func DefaultCategory(builtins []string, userCats []Category, t TransactionType) string {
	for _, c := range userCats {
		if c.Type == t {
			return c.Name
		}
	}
	if len(builtins) > 0 {
		return builtins[0]
	}
	return ""
}
