package ui

import (
	"fmt"

	"github.com/atomicstack/pipeline-loader/internal/format/table"
	"github.com/atomicstack/pipeline-loader/internal/state"
)

// detailsPane describes the publish the controller points it at.
type detailsPane struct {
	item  *state.PublishItem
	lines []string
}

func newDetailsPane() *detailsPane {
	return &detailsPane{}
}

func (d *detailsPane) LoadDetails(item state.PublishItem) {
	d.item = &item
	d.lines = detailLines(item)
}

func (d *detailsPane) Clear() {
	d.item = nil
	d.lines = nil
}

func detailLines(item state.PublishItem) []string {
	if item.Folder || item.Publish == nil {
		return table.KeyValue([][2]string{
			{"Folder", item.Label},
			{"Key", item.TreeKey},
		})
	}
	p := item.Publish
	created := ""
	if !p.CreatedAt.IsZero() {
		created = p.CreatedAt.Format("2006-01-02 15:04")
	}
	return table.KeyValue([][2]string{
		{"Name", p.Code},
		{"Version", fmt.Sprintf("v%03d", p.Version)},
		{"Type", p.TypeCode},
		{"Entity", p.Entity.String()},
		{"Created", created},
		{"By", p.CreatedBy},
		{"Path", p.Path},
		{"Notes", p.Description},
	})
}
