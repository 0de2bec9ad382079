package publishers

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Fanout delivers session events to every configured sink in order.
type Fanout struct {
	sinks []Publisher
}

// NewFanout drops nil publishers and keeps the rest in order.
func NewFanout(pubs []Publisher) *Fanout {
	f := &Fanout{}
	for _, p := range pubs {
		if p != nil {
			f.sinks = append(f.sinks, p)
		}
	}
	return f
}

// Publish hands evt to each sink. A failing sink does not stop delivery to
// the others; the returned count covers successful deliveries and the error
// joins every failure.
func (f *Fanout) Publish(ctx context.Context, evt Event) (int, error) {
	if f.Size() == 0 {
		return 0, nil
	}

	delivered := 0
	var errs []error
	for _, sink := range f.sinks {
		err := sink.Publish(ctx, evt)
		if err == nil {
			delivered++
			continue
		}
		errs = append(errs, fmt.Errorf("%s publisher[%s]: %w", sink.Type(), sink.ID(), err))
	}
	return delivered, errors.Join(errs...)
}

// Size returns the number of active publishers.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.sinks)
}

// Describe lists id/type pairs for logging.
func (f *Fanout) Describe() []map[string]string {
	if f.Size() == 0 {
		return nil
	}
	out := make([]map[string]string, 0, len(f.sinks))
	for _, sink := range f.sinks {
		out = append(out, map[string]string{"id": sink.ID(), "type": sink.Type()})
	}
	return out
}

// Close releases sinks that hold connections.
func (f *Fanout) Close() error {
	if f.Size() == 0 {
		return nil
	}
	var errs []error
	for _, sink := range f.sinks {
		if c, ok := sink.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
