// Package loader coordinates the loader panel: which preset tab is active,
// what is selected in its tree, the back/forward history of those
// selections, the breadcrumb label and the publish area that follows the
// selection.
//
// Collaborators (tree models and views, the publish model and its type
// filter proxy, the type checklist and the details pane) are reached only
// through the interfaces in this package. Every entry point runs on the UI
// goroutine; re-entrant notifications from the views arrive synchronously
// on the same call stack and are told apart by the controller's Mode.
package loader
