package state

// CleanupChecks drops check marks for rows that are no longer present.
func (l *List) CleanupChecks() {
	if len(l.Checked) == 0 {
		return
	}
	valid := make(map[string]struct{}, len(l.Full))
	for _, item := range l.Full {
		valid[item.ID] = struct{}{}
	}
	for id := range l.Checked {
		if _, ok := valid[id]; !ok {
			delete(l.Checked, id)
		}
	}
}

// IsChecked reports whether the row with id carries a check mark.
func (l *List) IsChecked(id string) bool {
	if l.Checked == nil {
		return false
	}
	_, ok := l.Checked[id]
	return ok
}

// SetChecked replaces the check marks with ids.
func (l *List) SetChecked(ids []string) {
	l.Checked = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		l.Checked[id] = struct{}{}
	}
	l.CleanupChecks()
}

// CheckedItems returns the checked rows in display order.
func (l *List) CheckedItems() []Item {
	if len(l.Checked) == 0 {
		return nil
	}
	checked := make([]Item, 0, len(l.Checked))
	for _, item := range l.Items {
		if l.IsChecked(item.ID) {
			checked = append(checked, item)
		}
	}
	return checked
}
