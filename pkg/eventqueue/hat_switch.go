package eventqueue

import (
	"github.com/guettli/eventqueue/pkg/hid"
	"github.com/guettli/eventqueue/pkg/types"
)

type hatSwitchDirections struct {
	up, right, down, left bool
}

// Hat switch values 0..7 start at north and go clockwise. Other values
// mean neutral.
var hatSwitchValues = []hatSwitchDirections{
	{up: true},
	{up: true, right: true},
	{right: true},
	{right: true, down: true},
	{down: true},
	{down: true, left: true},
	{left: true},
	{left: true, up: true},
}

func makeHatSwitchDirections(value int64) hatSwitchDirections {
	if value < 0 || value >= int64(len(hatSwitchValues)) {
		return hatSwitchDirections{}
	}
	return hatSwitchValues[value]
}

func (d hatSwitchDirections) pressed() [4]bool {
	return [4]bool{d.up, d.right, d.down, d.left}
}

var dpadUsages = [4]hid.Usage{
	hid.UsageGenericDesktopDpadUp,
	hid.UsageGenericDesktopDpadRight,
	hid.UsageGenericDesktopDpadDown,
	hid.UsageGenericDesktopDpadLeft,
}

// DpadEvent is one direction of a hat switch which changed its state.
type DpadEvent struct {
	Event     types.MomentarySwitchEvent
	EventType types.EventType
}

// HatSwitchConverter turns hat switch values of game pads into dpad
// key_down and key_up events. It remembers the last value per device.
// It is not safe for concurrent use.
type HatSwitchConverter struct {
	last map[types.DeviceID]hatSwitchDirections
}

func NewHatSwitchConverter() *HatSwitchConverter {
	return &HatSwitchConverter{last: map[types.DeviceID]hatSwitchDirections{}}
}

// Convert returns released directions first, then pressed ones, each in
// the order up, right, down, left.
func (c *HatSwitchConverter) Convert(deviceID types.DeviceID, value int64) []DpadEvent {
	before := c.last[deviceID].pressed()
	after := makeHatSwitchDirections(value)
	c.last[deviceID] = after
	now := after.pressed()

	var events []DpadEvent
	for i := range dpadUsages {
		if before[i] && !now[i] {
			events = append(events, DpadEvent{
				Event:     types.NewMomentarySwitchEvent(hid.UsagePageGenericDesktop, dpadUsages[i]),
				EventType: types.KeyUp,
			})
		}
	}
	for i := range dpadUsages {
		if !before[i] && now[i] {
			events = append(events, DpadEvent{
				Event:     types.NewMomentarySwitchEvent(hid.UsagePageGenericDesktop, dpadUsages[i]),
				EventType: types.KeyDown,
			})
		}
	}
	return events
}

// EraseDevice forgets the state of a removed device.
func (c *HatSwitchConverter) EraseDevice(deviceID types.DeviceID) {
	delete(c.last, deviceID)
}
