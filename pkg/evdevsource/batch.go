package evdevsource

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/guettli/eventqueue/pkg/hid"
	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"
)

// EventReader is implemented by *evdev.InputDevice and CsvEventReader.
type EventReader interface {
	ReadOne() (*evdev.InputEvent, error)
}

var _ EventReader = (*evdev.InputDevice)(nil)

// Batcher collects the values of one evdev report. The kernel terminates
// each report with SYN_REPORT.
type Batcher struct {
	values     []hid.Value
	hatX       int32
	hatY       int32
	hatChanged bool
	hatTime    uint64
	dropping   bool
}

// Add returns the finished batch and true when ev ends a report.
func (b *Batcher) Add(ev evdev.InputEvent) ([]hid.Value, bool) {
	if ev.Type == evdev.EV_SYN {
		switch ev.Code {
		case evdev.SYN_REPORT:
			if b.dropping {
				// The report after SYN_DROPPED is incomplete.
				b.dropping = false
				b.reset()
				return nil, false
			}
			return b.Flush(), true
		case evdev.SYN_DROPPED:
			b.dropping = true
			b.reset()
		}
		return nil, false
	}
	if b.dropping {
		return nil, false
	}

	if ev.Type == evdev.EV_ABS {
		switch ev.Code {
		case evdev.ABS_HAT0X:
			b.hatX = ev.Value
			b.hatChanged = true
			b.hatTime = uint64(TimeStamp(ev.Time))
		case evdev.ABS_HAT0Y:
			b.hatY = ev.Value
			b.hatChanged = true
			b.hatTime = uint64(TimeStamp(ev.Time))
		}
		return nil, false
	}

	b.values = append(b.values, ToHIDValues(ev)...)
	return nil, false
}

// Flush returns the pending values, even if the report is not finished.
func (b *Batcher) Flush() []hid.Value {
	if b.hatChanged {
		b.values = append(b.values, hid.NewValue(b.hatTime, hatSwitchValue(b.hatX, b.hatY),
			hid.UsagePageGenericDesktop, hid.UsageGenericDesktopHatSwitch))
		b.hatChanged = false
	}
	values := b.values
	b.values = nil
	return values
}

// reset forgets the hat axes too, the dropped events may have moved them.
func (b *Batcher) reset() {
	b.values = nil
	b.hatX = 0
	b.hatY = 0
	b.hatChanged = false
}

type readResult struct {
	event *evdev.InputEvent
	err   error
}

// ReadBatches reads events until the reader returns an error or ctx is
// done, and calls fn for each non empty report. io.EOF ends the loop
// without an error, after the pending values are passed to fn.
func ReadBatches(ctx context.Context, log *zap.Logger, reader EventReader, fn func([]hid.Value) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// ReadOne blocks, so it runs in its own goroutine.
	ch := make(chan readResult)
	go func() {
		for {
			ev, err := reader.ReadOne()
			select {
			case ch <- readResult{ev, err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	var batcher Batcher
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-ch:
			if r.err != nil {
				if !errors.Is(r.err, io.EOF) {
					return fmt.Errorf("failed to read event: %w", r.err)
				}
				if values := batcher.Flush(); len(values) > 0 {
					if err := fn(values); err != nil {
						return err
					}
				}
				return nil
			}
			if r.event.Type == evdev.EV_SYN && r.event.Code == evdev.SYN_DROPPED {
				log.Warn("events dropped by the kernel, skipping report")
			}
			values, done := batcher.Add(*r.event)
			if !done || len(values) == 0 {
				continue
			}
			if err := fn(values); err != nil {
				return err
			}
		}
	}
}
