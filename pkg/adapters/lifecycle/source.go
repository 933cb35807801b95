// Package lifecycle bridges collection change events to lifecycle sources.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/folio/pkg/core"
)

// CollectionEvent is a file change tagged with the collection it belongs to.
type CollectionEvent struct {
	Kind string
	core.Event
}

func (e CollectionEvent) String() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Event)
}

type collectionSource struct {
	kind   string
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits CollectionEvents for kind.
// The output channel closes when events closes or the context passed to
// Start is cancelled.
func NewSource(kind string, events <-chan core.Event) lifecycle.Source {
	return &collectionSource{
		kind:   kind,
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *collectionSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *collectionSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				select {
				case s.out <- CollectionEvent{Kind: s.kind, Event: e}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
