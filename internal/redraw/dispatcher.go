package redraw

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/opencode-ai/hlstate/internal/hlstate"
	"github.com/opencode-ai/hlstate/internal/logging"
	"github.com/opencode-ai/hlstate/internal/models"
	"github.com/opencode-ai/hlstate/internal/wire"
	"github.com/rs/zerolog"
)

// Options configure a Dispatcher.
type Options struct {
	// PublishOnFlush publishes snapshots only at flush events and end of
	// stream. When false, every redraw notification publishes one.
	PublishOnFlush bool

	Logger *zerolog.Logger
}

// Dispatcher owns a mutable hlstate.State and applies redraw events to it in
// arrival order. Readers on other goroutines use Snapshot.
type Dispatcher struct {
	state  *hlstate.State
	opts   Options
	logger zerolog.Logger

	mu       sync.RWMutex
	snapshot *hlstate.State
	stats    models.EventStats
}

// NewDispatcher returns a dispatcher writing into state. The dispatcher must
// be the only writer of state from here on.
func NewDispatcher(state *hlstate.State, opts Options) *Dispatcher {
	logger := logging.Component("redraw")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	if state == nil {
		state = hlstate.New(hlstate.WithLogger(logger))
	}
	return &Dispatcher{
		state:    state,
		opts:     opts,
		logger:   logger,
		snapshot: state.Clone(),
		stats:    models.NewEventStats(),
	}
}

// HandleMessage applies a decoded message. Only redraw notifications are
// acted on.
func (d *Dispatcher) HandleMessage(msg Message) {
	if msg.Type != MessageNotification || msg.Method != RedrawMethod {
		d.logger.Trace().
			Str("type", msg.Type.String()).
			Str("method", msg.Method).
			Msg("ignoring message")
		return
	}
	d.HandleRedraw(msg.Params)
}

// HandleRedraw applies the params of one redraw notification: a list of
// batches, each [event_name, args...] where every args is one occurrence.
func (d *Dispatcher) HandleRedraw(batches []any) {
	for i, raw := range batches {
		batch, ok := raw.([]any)
		if !ok || len(batch) == 0 {
			d.logger.Warn().Int("batch", i).Msgf("redraw batch is %T, skipping", raw)
			continue
		}
		name, ok := wire.String(batch[0])
		if !ok {
			d.logger.Warn().Int("batch", i).Msgf("redraw event name is %T, skipping", batch[0])
			continue
		}
		d.applyBatch(models.EventType(name), batch[1:])
	}

	if !d.opts.PublishOnFlush {
		d.Publish()
	}
}

func (d *Dispatcher) applyBatch(event models.EventType, occurrences []any) {
	if event == models.EventTypeFlush {
		d.mu.Lock()
		d.stats.Flushes++
		d.mu.Unlock()
		if d.opts.PublishOnFlush {
			d.Publish()
		}
		return
	}

	if !event.IsHighlight() {
		d.mu.Lock()
		d.stats.Ignored += len(occurrences)
		d.mu.Unlock()
		return
	}

	for _, raw := range occurrences {
		args, ok := raw.([]any)
		if !ok {
			d.reject(event, errors.New("event arguments are not an array"))
			continue
		}

		var err error
		switch event {
		case models.EventTypeHlAttrDefine:
			err = d.state.Define(args)
		case models.EventTypeDefaultColorsSet:
			err = d.state.DefaultColorsSet(args)
		case models.EventTypeHlGroupSet:
			err = d.state.GroupSet(args)
		}
		if err != nil {
			d.reject(event, err)
			continue
		}

		d.mu.Lock()
		d.stats.Applied[event]++
		d.mu.Unlock()
	}
}

func (d *Dispatcher) reject(event models.EventType, err error) {
	d.logger.Warn().Err(err).Str("event", string(event)).Msg("rejected highlight event")
	d.mu.Lock()
	d.stats.Rejected[event]++
	d.mu.Unlock()
}

// Publish makes the current state visible to Snapshot callers.
func (d *Dispatcher) Publish() {
	snap := d.state.Clone()
	d.mu.Lock()
	d.snapshot = snap
	d.mu.Unlock()
}

// Snapshot returns the last published state. Callers must treat it as
// read-only; it is never written again by the dispatcher.
func (d *Dispatcher) Snapshot() *hlstate.State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// Stats returns a copy of the event counters.
func (d *Dispatcher) Stats() models.EventStats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats.Clone()
}

type decoded struct {
	msg Message
	err error
}

// Run decodes messages from r until EOF or ctx is canceled. Envelope errors
// are logged and skipped; stream corruption ends the run with an error. The
// final state is published before Run returns at EOF.
//
// Decoding happens on a separate goroutine that blocks in r.Read. On
// cancellation Run closes r when it implements io.Closer, which unblocks that
// goroutine; otherwise the goroutine exits once r returns from its pending
// read.
func (d *Dispatcher) Run(ctx context.Context, r io.Reader) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	dec := NewDecoder(r)
	msgCh := make(chan decoded)

	go func() {
		defer close(msgCh)
		for {
			msg, err := dec.Next()
			select {
			case msgCh <- decoded{msg: msg, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil && !errors.Is(err, ErrInvalidMessage) {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			d.logger.Debug().Msg("redraw stream canceled")
			if closer, ok := r.(io.Closer); ok {
				if err := closer.Close(); err != nil {
					d.logger.Debug().Err(err).Msg("failed to close redraw stream")
				}
			}
			return ctx.Err()
		case item, ok := <-msgCh:
			if !ok {
				return ctx.Err()
			}
			switch {
			case item.err == nil:
				d.HandleMessage(item.msg)
			case errors.Is(item.err, io.EOF):
				d.Publish()
				d.logger.Debug().Msg("redraw stream finished")
				return nil
			case errors.Is(item.err, ErrInvalidMessage):
				d.logger.Warn().Err(item.err).Msg("skipping message")
			default:
				return item.err
			}
		}
	}
}
