package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *memorySink) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcher_DeliversOnClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop(), 10)

	d.Dispatch(Event{Action: ActionAppointmentCreated, EntityID: "a"})
	d.Dispatch(Event{Action: ActionAppointmentConflict, EntityID: "b"})
	d.Close()

	assert.Len(t, sink.events, 2)
	assert.Equal(t, ActionAppointmentCreated, sink.events[0].Action)
}

func TestDispatcher_SinkErrorsAreSwallowed(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	d := NewDispatcher(sink, zap.NewNop(), 1)

	d.Dispatch(Event{Action: ActionAppointmentCancelled})
	d.Close()

	assert.Len(t, sink.events, 1)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionAppointmentCreated})
		d.Close()
	})
}

func TestDispatcher_DispatchAfterCloseIsDropped(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop(), 10)
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: ActionAppointmentCreated})
		d.Close()
	})
	assert.Empty(t, sink.events)
}

func TestDispatcher_ConcurrentDispatchAndClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop(), 4)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch(Event{Action: ActionAppointmentCompleted})
		}()
	}
	assert.NotPanics(t, d.Close)
	wg.Wait()
}
