// Package ui contains the Bubble Tea program that presents the loader panel:
// one tab per preset with its entity tree, the publish list for the selected
// entity, the publish type checklist and an optional details pane.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (navigation for key presses, backend results, action results).
//   - Widgets (tabBar, treeView, publishView, typeList, detailsPane) own their
//     rows and cursors and report user intent to the loader.Controller through
//     the handlers it registers. The controller decides what happens next:
//     history, breadcrumbs, publish reloads and the type filter.
//   - Filter/input helpers (internal/ui/input.go) keep the publish search text
//     entry isolated from the Bubble Tea event loop.
//
// State ownership:
//   - Row state lives in internal/ui/state.List, which tracks items, search,
//     check marks, and viewport calculations.
//   - Entity trees, publishes and publish types live in internal/state and are
//     filled by the dispatcher as backend results arrive.
//   - Publish actions such as copying a path run through the
//     internal/ui/command bus.
//
// Backend interactions:
//   - Stores submit fetch requests to a backend.Worker. Update waits on the
//     worker's event channel and hands each result to applyBackendEvent, which
//     drops stale replies and refreshes the panes that show the updated store.
package ui
