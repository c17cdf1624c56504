package audit

import "log/slog"

type Event struct {
	UserID   *string
	Action   string
	Entity   string
	EntityID *string
	Metadata any
}

// Dispatcher persists events on a background worker. A nil Dispatcher
// discards everything.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
	done   chan struct{}
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			slog.Error("audit write failed", "action", ev.Action, "error", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		// audit must never fail the request
		slog.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drains pending events and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	close(d.queue)
	<-d.done
}

func Ptr(s string) *string {
	return &s
}
