package types

import (
	"errors"
	"fmt"
)

type DeviceID uint64

// AbsoluteTimePoint is a monotonic time stamp. Sources fill it with
// microseconds since the unix epoch.
type AbsoluteTimePoint uint64

type AbsoluteTimeDuration int64

func (t AbsoluteTimePoint) Add(d AbsoluteTimeDuration) AbsoluteTimePoint {
	return AbsoluteTimePoint(int64(t) + int64(d))
}

var (
	ErrUnknownEventType = errors.New("unknown event_type")
	ErrUnknownState     = errors.New("unknown state")
	ErrUnknownValidity  = errors.New("unknown validity")
)

type EventType int

const (
	KeyDown EventType = iota
	KeyUp
	Single
)

var eventTypeNames = map[EventType]string{
	KeyDown: "key_down",
	KeyUp:   "key_up",
	Single:  "single",
}

func (t EventType) String() string {
	name, ok := eventTypeNames[t]
	if !ok {
		return fmt.Sprintf("event_type(%d)", int(t))
	}
	return name
}

func MakeEventType(name string) (EventType, error) {
	for t, n := range eventTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownEventType)
}

type State int

const (
	Original State = iota
	VirtualEvent
)

func (s State) String() string {
	switch s {
	case Original:
		return "original"
	case VirtualEvent:
		return "virtual_event"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func MakeState(name string) (State, error) {
	switch name {
	case "original":
		return Original, nil
	case "virtual_event":
		return VirtualEvent, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownState)
}

type Validity int

const (
	Valid Validity = iota
	Invalid
)

func (v Validity) String() string {
	if v == Invalid {
		return "invalid"
	}
	return "valid"
}

func MakeValidity(name string) (Validity, error) {
	switch name {
	case "valid":
		return Valid, nil
	case "invalid":
		return Invalid, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownValidity)
}

// DeviceProperties describes the device a batch of hid values came from.
type DeviceProperties struct {
	DeviceID         DeviceID
	Product          string
	Path             string
	IsKeyboard       bool
	IsPointingDevice bool
	IsGamePad        bool
}
