package loader

// Entry is one recorded selection. ItemKey is the tree item's stable key;
// the empty key stands for no selection.
type Entry struct {
	Preset  string
	ItemKey string
}

// History is a linear back/forward log. Index is 1-based and zero while the
// log is empty. Recording after navigating back discards the forward entries.
type History struct {
	entries []Entry
	index   int
}

// Record truncates the log at the cursor and appends e.
func (h *History) Record(e Entry) {
	h.entries = append(h.entries[:h.index], e)
	h.index++
}

// Back moves the cursor one step back and returns the entry there.
func (h *History) Back() (Entry, bool) {
	if !h.CanGoBack() {
		return Entry{}, false
	}
	h.index--
	return h.entries[h.index-1], true
}

// Forward moves the cursor one step forward and returns the entry there.
func (h *History) Forward() (Entry, bool) {
	if !h.CanGoForward() {
		return Entry{}, false
	}
	h.index++
	return h.entries[h.index-1], true
}

// CanGoBack reports whether an entry lies behind the cursor.
func (h *History) CanGoBack() bool {
	return h.index > 1
}

// CanGoForward reports whether an entry lies ahead of the cursor.
func (h *History) CanGoForward() bool {
	return h.index < len(h.entries)
}

// Current returns the entry under the cursor.
func (h *History) Current() (Entry, bool) {
	if h.index == 0 {
		return Entry{}, false
	}
	return h.entries[h.index-1], true
}

func (h *History) Index() int { return h.index }

func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of the log.
func (h *History) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}
