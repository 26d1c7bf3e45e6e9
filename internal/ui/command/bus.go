package command

import (
	"fmt"

	"github.com/atomicstack/pipeline-loader/internal/logging/events"
	"github.com/atomicstack/pipeline-loader/internal/state"
	tea "github.com/charmbracelet/bubbletea"
)

// Action performs a publish action and returns the command producing its
// result message.
type Action func(item state.PublishItem) tea.Cmd

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Action
	Item    state.PublishItem
}

// Bus coordinates the execution of publish actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		cmd := req.Handler(req.Item)
		if cmd == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		msg := cmd()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
