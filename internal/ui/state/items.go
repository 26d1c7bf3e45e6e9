package state

// Item is one row of a pane. ID is stable across refreshes; Label is what
// the row shows and what the search filter matches.
type Item struct {
	ID    string
	Label string
}

// CloneItems produces a shallow copy of the provided rows.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
