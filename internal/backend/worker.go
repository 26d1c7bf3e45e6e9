package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/pipeline-loader/internal/catalog"
	"github.com/atomicstack/pipeline-loader/internal/logging/events"
)

// Kind represents the type of data a request fetches.
type Kind int

const (
	KindEntities Kind = iota
	KindPublishes
	KindPublishTypes
)

func (k Kind) String() string {
	switch k {
	case KindEntities:
		return "entities"
	case KindPublishes:
		return "publishes"
	case KindPublishTypes:
		return "publish_types"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Request asks the worker for one fetch. Preset names the tree that issued an
// entity request; Seq lets the requester discard results that are no longer
// current.
type Request struct {
	Kind   Kind
	Preset string
	Query  catalog.EntityQuery
	Entity catalog.EntityRef
	Seq    int
}

// Target describes what the request is about, for tracing.
func (r Request) Target() string {
	switch r.Kind {
	case KindEntities:
		return r.Preset
	case KindPublishes:
		return r.Entity.String()
	}
	return ""
}

// Event conveys fetched data or an error for one request.
type Event struct {
	Request Request
	Data    interface{}
	Err     error
}

// Kind is shorthand for evt.Request.Kind.
func (e Event) Kind() Kind {
	return e.Request.Kind
}

// Source is the data the worker reads from. *catalog.Catalog satisfies it.
type Source interface {
	Entities(ctx context.Context, q catalog.EntityQuery) ([]catalog.Entity, error)
	Publishes(ctx context.Context, ref catalog.EntityRef) ([]catalog.Publish, error)
	PublishTypes(ctx context.Context) ([]catalog.PublishType, error)
}

// Worker runs fetches on a small pool of goroutines and publishes results on
// a channel the UI drains.
type Worker struct {
	source Source

	ctx    context.Context
	cancel context.CancelFunc

	requests chan Request
	events   chan Event
	throttle *throttle
	wg       sync.WaitGroup
}

// NewWorker starts size goroutines reading from source. interval spaces out
// successive fetches of the same target; zero disables throttling.
func NewWorker(source Source, size int, interval time.Duration) *Worker {
	if size <= 0 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		source:   source,
		ctx:      ctx,
		cancel:   cancel,
		requests: make(chan Request, 64),
		events:   make(chan Event, 16),
		throttle: newThrottle(interval),
	}
	for i := 0; i < size; i++ {
		w.wg.Add(1)
		go w.run()
	}
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w
}

// Submit queues a request without blocking the caller. It reports false once
// the worker has been stopped.
func (w *Worker) Submit(req Request) bool {
	if w.ctx.Err() != nil {
		return false
	}
	events.Backend.Submit(req.Kind.String(), req.Target(), req.Seq)
	select {
	case w.requests <- req:
	default:
		// queue full; hand off so the UI goroutine never waits on it
		go func() {
			select {
			case w.requests <- req:
			case <-w.ctx.Done():
			}
		}()
	}
	return true
}

// Events returns a channel of fetch results. It is closed after Stop once
// every goroutine has exited.
func (w *Worker) Events() <-chan Event {
	return w.events
}

// Stop cancels in-flight fetches. Use Wait if a clean drain is required.
func (w *Worker) Stop() {
	w.cancel()
}

// Wait blocks until all worker goroutines have exited and the events channel
// is closed.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case req := <-w.requests:
			if !w.throttle.wait(w.ctx, req.Kind.String()+" "+req.Target()) {
				return
			}
			data, err := w.fetch(req)
			events.Backend.Result(req.Kind.String(), req.Target(), req.Seq, err)
			select {
			case <-w.ctx.Done():
				return
			case w.events <- Event{Request: req, Data: data, Err: err}:
			}
		}
	}
}

func (w *Worker) fetch(req Request) (interface{}, error) {
	if w.source == nil {
		return nil, fmt.Errorf("%s fetch: no data source", req.Kind)
	}
	switch req.Kind {
	case KindEntities:
		return w.source.Entities(w.ctx, req.Query)
	case KindPublishes:
		return w.source.Publishes(w.ctx, req.Entity)
	case KindPublishTypes:
		return w.source.PublishTypes(w.ctx)
	}
	return nil, fmt.Errorf("unknown request kind %s", req.Kind)
}
