// Package normalize folds flat event attribute rows into per-type event trees.
package normalize

import "explorerScope/internal/model"

// Options tunes the fold.
type Options struct {
	// ExcludeTypes lists event types dropped from the output.
	ExcludeTypes []string
}

func (o Options) excluded() map[string]struct{} {
	if len(o.ExcludeTypes) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(o.ExcludeTypes))
	for _, typ := range o.ExcludeTypes {
		out[typ] = struct{}{}
	}
	return out
}

// eventFold groups attributes by event type, keeping the order in which types
// were first seen and the order of attributes within each type.
type eventFold struct {
	index   map[string]int
	events  []model.Event
	exclude map[string]struct{}
}

func newEventFold(sizeHint int, opts Options) *eventFold {
	return &eventFold{
		index:   make(map[string]int, sizeHint),
		events:  make([]model.Event, 0, sizeHint),
		exclude: opts.excluded(),
	}
}

func (f *eventFold) add(typ string, attrs ...model.Attribute) {
	if _, skip := f.exclude[typ]; skip {
		return
	}
	if i, ok := f.index[typ]; ok {
		f.events[i].Attributes = append(f.events[i].Attributes, attrs...)
		return
	}
	f.index[typ] = len(f.events)
	f.events = append(f.events, model.Event{
		Type:       typ,
		Attributes: append(make([]model.Attribute, 0, len(attrs)), attrs...),
	})
}

func (f *eventFold) result() []model.Event {
	return f.events
}
