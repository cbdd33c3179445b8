package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/guettli/eventqueue/pkg/config"
	"github.com/guettli/eventqueue/pkg/eventqueue"
	"github.com/guettli/eventqueue/pkg/evdevsource"
	"github.com/guettli/eventqueue/pkg/hid"
	"github.com/guettli/eventqueue/pkg/pressedkeys"
	"github.com/guettli/eventqueue/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// source is one device (or log) which produces batches of values.
type source struct {
	props  types.DeviceProperties
	device config.Device
	reader evdevsource.EventReader
}

// newSource applies the settings of c to d. A device without a
// configured device_id gets the id after lastID.
func newSource(c *config.Config, d evdevsource.Device, reader evdevsource.EventReader, lastID *types.DeviceID) *source {
	settings, _ := c.Lookup(d.Name, d.Path)
	props := d.Properties(0)
	if settings.DeviceID == 0 {
		*lastID++
		props.DeviceID = *lastID
	}
	return &source{
		props:  settings.DeviceProperties(props),
		device: settings,
		reader: reader,
	}
}

// checkDeviceIDs fails if two sources share a device id. The pressed keys
// and the hat switch state are kept per device id.
func checkDeviceIDs(sources []*source) error {
	seen := map[types.DeviceID]string{}
	for _, s := range sources {
		if other, ok := seen[s.props.DeviceID]; ok {
			return fmt.Errorf("%q and %q: device_id %d: %w", other, s.props.Path, s.props.DeviceID, config.ErrDuplicateDeviceID)
		}
		seen[s.props.DeviceID] = s.props.Path
	}
	return nil
}

type batch struct {
	source *source
	values []hid.Value
}

// pipeline turns batches of values into entries and writes them as JSON
// lines. It is used by one goroutine only.
type pipeline struct {
	log         *zap.Logger
	out         io.Writer
	format      string
	text        textFormatter
	hatSwitch   *eventqueue.HatSwitchConverter
	pressedKeys map[types.DeviceID]*pressedkeys.Manager
	written     int
}

func newPipeline(log *zap.Logger, out io.Writer, format string) *pipeline {
	return &pipeline{
		log:         log,
		out:         out,
		format:      format,
		hatSwitch:   eventqueue.NewHatSwitchConverter(),
		pressedKeys: map[types.DeviceID]*pressedkeys.Manager{},
	}
}

func (p *pipeline) handle(b batch) error {
	props := b.source.props
	q := eventqueue.MakeQueue(props, b.values, b.source.device.MakeQueueParameters(p.hatSwitch))

	m, ok := p.pressedKeys[props.DeviceID]
	if !ok {
		m = pressedkeys.New()
		p.pressedKeys[props.DeviceID] = m
	}
	q = eventqueue.InsertDeviceKeysAndPointingButtonsAreReleasedEvent(q, props.DeviceID, m)

	p.log.Debug("queue",
		zap.Uint64("device_id", uint64(props.DeviceID)),
		zap.Int("values", len(b.values)),
		zap.Int("entries", q.Len()))

	for !q.Empty() {
		entry := q.GetFrontEntry()
		line := entry.ToJSON()
		if p.format == formatText {
			line = p.text.format(*entry)
		}
		if _, err := fmt.Fprintln(p.out, line); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
		p.written++
		q.EraseFrontEvent()
	}
	return nil
}

// run reads all sources concurrently. The batches are handled in the
// calling goroutine, in the order they arrive.
func (p *pipeline) run(ctx context.Context, sources []*source) error {
	if err := checkDeviceIDs(sources); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	batches := make(chan batch)

	for _, s := range sources {
		g.Go(func() error {
			return evdevsource.ReadBatches(ctx, p.log, s.reader, func(values []hid.Value) error {
				select {
				case batches <- batch{s, values}:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(batches)
	}()

	var handleErr error
	for b := range batches {
		if handleErr != nil {
			continue
		}
		if handleErr = p.handle(b); handleErr != nil {
			cancel()
		}
	}
	err := <-done
	if handleErr != nil {
		return handleErr
	}
	if err != nil {
		return err
	}
	p.log.Info("done", zap.Int("entries", p.written))
	return nil
}
