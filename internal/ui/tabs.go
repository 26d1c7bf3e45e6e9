package ui

import (
	"fmt"

	"github.com/atomicstack/pipeline-loader/internal/loader"
)

// tabBar shows one tab per preset in configuration order.
type tabBar struct {
	names    []string
	current  string
	onChange func(name string)
}

func newTabBar() *tabBar {
	return &tabBar{}
}

// setNames installs the tabs. The first one becomes current without a
// notification, matching the controller's starting preset.
func (t *tabBar) setNames(names []string) {
	t.names = append([]string(nil), names...)
	if t.index(t.current) < 0 && len(t.names) > 0 {
		t.current = t.names[0]
	}
}

// SetCurrent activates name and notifies the handler when it changed.
func (t *tabBar) SetCurrent(name string) error {
	if t.index(name) < 0 {
		return fmt.Errorf("%w %q", loader.ErrUnknownPreset, name)
	}
	if name == t.current {
		return nil
	}
	t.current = name
	if t.onChange != nil {
		t.onChange(name)
	}
	return nil
}

func (t *tabBar) SetTabChangedHandler(fn func(name string)) {
	t.onChange = fn
}

func (t *tabBar) index(name string) int {
	for i, n := range t.names {
		if n == name {
			return i
		}
	}
	return -1
}

// neighbour returns the tab delta steps away from the current one, wrapping.
func (t *tabBar) neighbour(delta int) string {
	if len(t.names) == 0 {
		return ""
	}
	idx := t.index(t.current)
	if idx < 0 {
		idx = 0
	}
	n := len(t.names)
	return t.names[((idx+delta)%n+n)%n]
}

func (t *tabBar) at(i int) (string, bool) {
	if i < 0 || i >= len(t.names) {
		return "", false
	}
	return t.names[i], true
}
