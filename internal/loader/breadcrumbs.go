package loader

import (
	"strings"

	"github.com/atomicstack/pipeline-loader/internal/state"
)

// BreadcrumbSeparator joins breadcrumb labels.
const BreadcrumbSeparator = " > "

// BuildBreadcrumbs renders the labels from the root down to item.
func BuildBreadcrumbs(item *state.TreeItem) string {
	if item == nil {
		return ""
	}
	var labels []string
	for node := item; node != nil; node = node.Parent() {
		labels = append(labels, node.Label)
	}
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return strings.Join(labels, BreadcrumbSeparator)
}
