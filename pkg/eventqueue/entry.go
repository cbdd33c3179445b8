package eventqueue

import (
	"errors"
	"fmt"

	"github.com/guettli/eventqueue/pkg/types"
	"github.com/tidwall/gjson"
)

var ErrMalformedEntry = errors.New("malformed entry")

// Entry is one queued event. Only validity and lazy may change after
// construction.
type Entry struct {
	deviceID       types.DeviceID
	eventTimeStamp EventTimeStamp
	event          Event
	eventType      types.EventType
	originalEvent  Event
	state          types.State
	validity       types.Validity
	lazy           bool
}

func NewEntry(deviceID types.DeviceID,
	eventTimeStamp EventTimeStamp,
	event Event,
	eventType types.EventType,
	originalEvent Event,
	state types.State,
	lazy bool,
) Entry {
	return Entry{
		deviceID:       deviceID,
		eventTimeStamp: eventTimeStamp,
		event:          event,
		eventType:      eventType,
		originalEvent:  originalEvent,
		state:          state,
		validity:       types.Valid,
		lazy:           lazy,
	}
}

func (e Entry) GetDeviceID() types.DeviceID {
	return e.deviceID
}

func (e Entry) GetEventTimeStamp() EventTimeStamp {
	return e.eventTimeStamp
}

func (e Entry) GetEvent() Event {
	return e.event
}

func (e Entry) GetEventType() types.EventType {
	return e.eventType
}

func (e Entry) GetOriginalEvent() Event {
	return e.originalEvent
}

func (e Entry) GetState() types.State {
	return e.state
}

func (e Entry) GetValidity() types.Validity {
	return e.validity
}

func (e *Entry) SetValidity(v types.Validity) {
	e.validity = v
}

func (e Entry) IsValid() bool {
	return e.validity == types.Valid
}

func (e Entry) GetLazy() bool {
	return e.lazy
}

func (e *Entry) SetLazy(lazy bool) {
	e.lazy = lazy
}

func (e Entry) Equal(other Entry) bool {
	return e.deviceID == other.deviceID &&
		e.eventTimeStamp == other.eventTimeStamp &&
		e.event.Equal(other.event) &&
		e.eventType == other.eventType &&
		e.originalEvent.Equal(other.originalEvent) &&
		e.state == other.state &&
		e.validity == other.validity &&
		e.lazy == other.lazy
}

func (e Entry) ToJSON() string {
	s := set("{}", "device_id", uint64(e.deviceID))
	s = setRaw(s, "event_time_stamp", e.eventTimeStamp.ToJSON())
	s = set(s, "valid", e.IsValid())
	s = set(s, "lazy", e.lazy)
	s = setRaw(s, "event", e.event.ToJSON())
	s = set(s, "event_type", e.eventType.String())
	s = setRaw(s, "original_event", e.originalEvent.ToJSON())
	return set(s, "state", e.state.String())
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return []byte(e.ToJSON()), nil
}

func MakeEntryFromJSON(s string) (Entry, error) {
	if !gjson.Valid(s) {
		return Entry{}, fmt.Errorf("%w: invalid json", ErrMalformedEntry)
	}
	r := gjson.Parse(s)
	if !r.IsObject() {
		return Entry{}, fmt.Errorf("%w: json object expected", ErrMalformedEntry)
	}

	deviceID := r.Get("device_id")
	if deviceID.Type != gjson.Number {
		return Entry{}, fmt.Errorf("%w: device_id must be a number", ErrMalformedEntry)
	}
	eventTimeStamp, err := MakeEventTimeStampFromJSON(r.Get("event_time_stamp").Raw)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrMalformedEntry, err)
	}
	event, err := MakeFromJSON(r.Get("event").Raw)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: event: %w", ErrMalformedEntry, err)
	}
	originalEvent, err := MakeFromJSON(r.Get("original_event").Raw)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: original_event: %w", ErrMalformedEntry, err)
	}
	eventType, err := types.MakeEventType(r.Get("event_type").String())
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrMalformedEntry, err)
	}
	state, err := types.MakeState(r.Get("state").String())
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrMalformedEntry, err)
	}
	lazy, err := boolField(r, "lazy")
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrMalformedEntry, err)
	}

	entry := NewEntry(types.DeviceID(deviceID.Uint()), eventTimeStamp, event, eventType, originalEvent, state, lazy)
	if valid := r.Get("valid"); valid.Exists() && !valid.Bool() {
		entry.SetValidity(types.Invalid)
	}
	return entry, nil
}
