package state

// List holds the rows of one pane together with its cursor, search filter,
// check marks and viewport.
type List struct {
	ID             string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	Checkable      bool
	Checked        map[string]struct{}
	LastCursor     int
	ViewportOffset int
}

// NewList constructs a List holding items.
func NewList(id, title string, items []Item) *List {
	l := &List{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
		Checked:    make(map[string]struct{}),
	}
	l.UpdateItems(items)
	if len(l.Items) > 0 {
		l.Cursor = 0
	}
	return l
}

// IndexOf returns the visible index of the row with id, or -1.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the row under the cursor.
func (l *List) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the rows. The cursor stays on the same row id when it
// survives, otherwise it is clamped.
func (l *List) UpdateItems(items []Item) {
	prevOffset := l.ViewportOffset
	prevID := ""
	if cur, ok := l.Current(); ok {
		prevID = cur.ID
	}
	l.Full = CloneItems(items)
	l.CleanupChecks()
	l.applyFilter()
	if idx := l.IndexOf(prevID); idx >= 0 {
		l.Cursor = idx
	}
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
