package evdevsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/guettli/eventqueue/pkg/types"
	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"
)

const DevInput = "/dev/input"

var ErrNoDevice = errors.New("no device found (try `sudo`, since root permissions are needed)")

type Device struct {
	Path             string
	Name             string
	Types            []string
	IsKeyboard       bool
	IsPointingDevice bool
	IsGamePad        bool
}

func (d Device) String() string {
	return fmt.Sprintf("%s %q %v", d.Path, d.Name, d.Types)
}

// Properties returns the description MakeQueue needs.
func (d Device) Properties(deviceID types.DeviceID) types.DeviceProperties {
	return types.DeviceProperties{
		DeviceID:         deviceID,
		Product:          d.Name,
		Path:             d.Path,
		IsKeyboard:       d.IsKeyboard,
		IsPointingDevice: d.IsPointingDevice,
		IsGamePad:        d.IsGamePad,
	}
}

func describe(dev *evdev.InputDevice) Device {
	name, _ := dev.Name()
	capable := dev.CapableTypes()
	keys := dev.CapableEvents(evdev.EV_KEY)
	names := make([]string, 0, len(capable))
	for _, t := range capable {
		names = append(names, evdev.TypeName(t))
	}
	return Device{
		Path:  dev.Path(),
		Name:  name,
		Types: names,
		// Many devices can emit EV_KEY, for example the power button.
		// EV_REP (repeated keys) is emitted only by keyboards.
		IsKeyboard:       slices.Contains(capable, evdev.EV_REP),
		IsPointingDevice: slices.Contains(dev.CapableEvents(evdev.EV_REL), evdev.REL_X),
		IsGamePad:        slices.Contains(keys, evdev.BTN_SOUTH),
	}
}

func charDevicePaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.Type()&os.ModeCharDevice == 0 {
			// not a character device file.
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// ListDevices returns the input devices in dir which can be opened.
func ListDevices(log *zap.Logger, dir string) ([]Device, error) {
	paths, err := charDevicePaths(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", dir, err)
	}
	var devices []Device
	for _, path := range paths {
		dev, err := evdev.OpenWithFlags(path, os.O_RDONLY)
		if err != nil {
			log.Debug("failed to open device", zap.String("path", path), zap.Error(err))
			continue
		}
		devices = append(devices, describe(dev))
		dev.Close()
	}
	if len(devices) == 0 {
		return nil, ErrNoDevice
	}
	return devices, nil
}

// OpenDevice opens path and describes it.
func OpenDevice(path string) (*evdev.InputDevice, Device, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, Device{}, fmt.Errorf("failed to open the source device %q: %w", path, err)
	}
	return dev, describe(dev), nil
}

type eventOfPath struct {
	path  string
	event *evdev.InputEvent
}

// FindDevice listens to all devices in dir and returns the path of the
// first one which releases a key.
func FindDevice(ctx context.Context, log *zap.Logger, dir string) (string, error) {
	paths, err := charDevicePaths(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list %q: %w", dir, err)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c := make(chan eventOfPath)
	var opened []*evdev.InputDevice
	defer func() {
		for _, dev := range opened {
			dev.Close()
		}
	}()
	for _, path := range paths {
		dev, err := evdev.Open(path)
		if err != nil {
			if strings.Contains(err.Error(), "inappropriate ioctl for device") {
				continue
			}
			log.Warn("failed to open device", zap.String("path", path), zap.Error(err))
			continue
		}
		opened = append(opened, dev)
		go readEvents(ctx, dev, path, c)
	}
	if len(opened) == 0 {
		return "", ErrNoDevice
	}

	log.Info("Please use the device you want to use, now. Capturing events ....")
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case evOfPath := <-c:
			ev := evOfPath.event
			if ev.Type != evdev.EV_KEY || ev.Value != UP {
				continue
			}
			return evOfPath.path, nil
		}
	}
}

func readEvents(ctx context.Context, dev *evdev.InputDevice, path string, c chan<- eventOfPath) {
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			return
		}
		select {
		case c <- eventOfPath{path, ev}:
		case <-ctx.Done():
			return
		}
	}
}
