package state

import (
	"sort"

	"github.com/atomicstack/pipeline-loader/internal/backend"
	"github.com/atomicstack/pipeline-loader/internal/catalog"
)

// TypeEntry is one row of the publish type checklist.
type TypeEntry struct {
	ID          int64
	Code        string
	Description string
	Checked     bool
	Count       int
}

// TypeStore is the publish type checklist model.
type TypeStore struct {
	requester Requester
	entries   []TypeEntry
	seq       int
	loading   bool
	destroyed bool
	err       error
	onChanged func()
}

// NewTypeStore returns an empty checklist.
func NewTypeStore(requester Requester) *TypeStore {
	return &TypeStore{requester: requester}
}

// SetChangedHandler registers fn to run whenever check state or the type
// list changes.
func (s *TypeStore) SetChangedHandler(fn func()) {
	s.onChanged = fn
}

// LoadData fetches the publish types.
func (s *TypeStore) LoadData() {
	if s.destroyed || s.requester == nil {
		return
	}
	s.seq++
	if s.requester.Submit(backend.Request{Kind: backend.KindPublishTypes, Seq: s.seq}) {
		s.loading = true
	}
}

// SetTypes replaces the type list. Known types keep their check state; new
// types start checked.
func (s *TypeStore) SetTypes(seq int, types []catalog.PublishType, err error) bool {
	if s.destroyed || seq != s.seq {
		return false
	}
	s.loading = false
	s.err = err
	if err != nil {
		return true
	}
	prev := make(map[int64]TypeEntry, len(s.entries))
	for _, e := range s.entries {
		prev[e.ID] = e
	}
	entries := make([]TypeEntry, 0, len(types))
	for _, t := range types {
		entry := TypeEntry{ID: t.ID, Code: t.Code, Description: t.Description, Checked: true}
		if old, ok := prev[t.ID]; ok {
			entry.Checked = old.Checked
			entry.Count = old.Count
		}
		entries = append(entries, entry)
	}
	s.entries = entries
	s.notify()
	return true
}

// Entries returns a copy of the checklist rows.
func (s *TypeStore) Entries() []TypeEntry {
	return append([]TypeEntry(nil), s.entries...)
}

// Len returns the number of types.
func (s *TypeStore) Len() int { return len(s.entries) }

// Loading reports whether a fetch is outstanding.
func (s *TypeStore) Loading() bool { return s.loading }

// Err returns the error from the most recent fetch.
func (s *TypeStore) Err() error { return s.err }

// Toggle flips the check box at index.
func (s *TypeStore) Toggle(index int) bool {
	if index < 0 || index >= len(s.entries) {
		return false
	}
	s.entries[index].Checked = !s.entries[index].Checked
	s.notify()
	return true
}

// CheckAll checks every type.
func (s *TypeStore) CheckAll() {
	s.setAll(true)
}

// CheckNone unchecks every type.
func (s *TypeStore) CheckNone() {
	s.setAll(false)
}

func (s *TypeStore) setAll(checked bool) {
	for i := range s.entries {
		s.entries[i].Checked = checked
	}
	s.notify()
}

// GetSelectedTypes returns the ids of the checked types in ascending order.
func (s *TypeStore) GetSelectedTypes() []int64 {
	ids := make([]int64, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Checked {
			ids = append(ids, e.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// UpdateCounts recomputes how many of pubs belong to each type.
func (s *TypeStore) UpdateCounts(pubs []catalog.Publish) {
	counts := map[int64]int{}
	for _, p := range pubs {
		counts[p.TypeID]++
	}
	for i := range s.entries {
		s.entries[i].Count = counts[s.entries[i].ID]
	}
}

// Destroy drops the checklist and ignores further results.
func (s *TypeStore) Destroy() {
	s.destroyed = true
	s.entries = nil
	s.onChanged = nil
}

func (s *TypeStore) notify() {
	if s.onChanged != nil {
		s.onChanged()
	}
}
