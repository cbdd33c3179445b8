package eventqueue

import (
	"errors"
	"fmt"

	"github.com/guettli/eventqueue/pkg/types"
	"github.com/tidwall/gjson"
)

var ErrMalformedEventTimeStamp = errors.New("malformed event_time_stamp")

// EventTimeStamp is the nominal time of an event plus the delay which was
// injected before it was emitted. Two stamps are equal only if both parts
// are equal.
type EventTimeStamp struct {
	timeStamp          types.AbsoluteTimePoint
	inputDelayDuration types.AbsoluteTimeDuration
}

func NewEventTimeStamp(timeStamp types.AbsoluteTimePoint) EventTimeStamp {
	return EventTimeStamp{timeStamp: timeStamp}
}

func NewEventTimeStampWithDelay(timeStamp types.AbsoluteTimePoint, inputDelayDuration types.AbsoluteTimeDuration) EventTimeStamp {
	return EventTimeStamp{timeStamp: timeStamp, inputDelayDuration: inputDelayDuration}
}

func (t EventTimeStamp) GetTimeStamp() types.AbsoluteTimePoint {
	return t.timeStamp
}

func (t *EventTimeStamp) SetTimeStamp(timeStamp types.AbsoluteTimePoint) {
	t.timeStamp = timeStamp
}

func (t EventTimeStamp) GetInputDelayDuration() types.AbsoluteTimeDuration {
	return t.inputDelayDuration
}

func (t *EventTimeStamp) AddDelay(d types.AbsoluteTimeDuration) {
	t.inputDelayDuration += d
}

func (t EventTimeStamp) MakeTimeStampWithInputDelay() types.AbsoluteTimePoint {
	return t.timeStamp.Add(t.inputDelayDuration)
}

func (t EventTimeStamp) ToJSON() string {
	s := set("{}", "time_stamp", uint64(t.timeStamp))
	return set(s, "input_delay_duration", int64(t.inputDelayDuration))
}

func MakeEventTimeStampFromJSON(s string) (EventTimeStamp, error) {
	r := gjson.Parse(s)
	if !gjson.Valid(s) || !r.IsObject() {
		return EventTimeStamp{}, fmt.Errorf("%w: %s", ErrMalformedEventTimeStamp, s)
	}
	timeStamp := r.Get("time_stamp")
	if timeStamp.Type != gjson.Number {
		return EventTimeStamp{}, fmt.Errorf("%w: time_stamp must be a number", ErrMalformedEventTimeStamp)
	}
	delay, err := intField(r, "input_delay_duration")
	if err != nil {
		return EventTimeStamp{}, fmt.Errorf("%w: %w", ErrMalformedEventTimeStamp, err)
	}
	return NewEventTimeStampWithDelay(types.AbsoluteTimePoint(timeStamp.Uint()), types.AbsoluteTimeDuration(delay)), nil
}
