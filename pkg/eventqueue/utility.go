package eventqueue

import (
	"github.com/guettli/eventqueue/pkg/hid"
	"github.com/guettli/eventqueue/pkg/pressedkeys"
	"github.com/guettli/eventqueue/pkg/types"
)

// MakeQueueParameters tune MakeQueue. Zero multipliers mean 1.0.
// HatSwitchConverter is needed for game pads only; without it hat switch
// values are dropped.
type MakeQueueParameters struct {
	PointingMotionXYMultiplier     float64
	PointingMotionWheelsMultiplier float64
	HatSwitchConverter             *HatSwitchConverter
}

func DefaultMakeQueueParameters() MakeQueueParameters {
	return MakeQueueParameters{
		PointingMotionXYMultiplier:     1.0,
		PointingMotionWheelsMultiplier: 1.0,
	}
}

func multiplierOrOne(m float64) float64 {
	if m == 0 {
		return 1.0
	}
	return m
}

// AdjustPointingMotionValue scales v and clamps it to -127..127. A non
// zero value never becomes zero.
func AdjustPointingMotionValue(v int64, multiplier float64) int {
	adjusted := int(float64(v) * multiplier)
	if adjusted == 0 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
	}
	return min(127, max(-127, adjusted))
}

// pointingMotionBuilder joins the axes of one HID report into a single
// pointing_motion event.
type pointingMotionBuilder struct {
	timeStamp       *types.AbsoluteTimePoint
	x               *int
	y               *int
	verticalWheel   *int
	horizontalWheel *int
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func (b *pointingMotionBuilder) flush(q *Queue, deviceID types.DeviceID) {
	if b.timeStamp == nil {
		return
	}
	event := NewPointingMotionEvent(types.NewPointingMotion(
		valueOrZero(b.x),
		valueOrZero(b.y),
		valueOrZero(b.verticalWheel),
		valueOrZero(b.horizontalWheel),
	))
	q.EmplaceBackEntry(deviceID, NewEventTimeStamp(*b.timeStamp), event, types.Single, event, types.Original, false)
	*b = pointingMotionBuilder{}
}

// set stores an axis. An axis which is already set starts a new motion.
func (b *pointingMotionBuilder) set(q *Queue, deviceID types.DeviceID, axis **int, timeStamp types.AbsoluteTimePoint, value int) {
	if *axis != nil {
		b.flush(q, deviceID)
	}
	b.timeStamp = &timeStamp
	*axis = &value
}

// MakeQueue converts the raw values of one device into a queue. Values
// which are not understood are skipped.
func MakeQueue(props types.DeviceProperties, values []hid.Value, params MakeQueueParameters) *Queue {
	q := NewQueue()
	deviceID := props.DeviceID
	xyMultiplier := multiplierOrOne(params.PointingMotionXYMultiplier)
	wheelsMultiplier := multiplierOrOne(params.PointingMotionWheelsMultiplier)

	// On game pads x, y, z and rz are sticks, not pointing motion.
	isGamePad := props.IsGamePad

	var motion pointingMotionBuilder
	for _, v := range values {
		timeStamp := types.AbsoluteTimePoint(v.TimeStamp)
		switch {
		case types.IsMomentarySwitchTarget(v.UsagePage, v.Usage):
			event := NewMomentarySwitchEvent(types.NewMomentarySwitchEvent(v.UsagePage, v.Usage))
			eventType := types.KeyUp
			if v.IntegerValue != 0 {
				eventType = types.KeyDown
			}
			q.EmplaceBackEntry(deviceID, NewEventTimeStamp(timeStamp), event, eventType, event, types.Original, false)

		case v.ConformsTo(hid.UsagePageGenericDesktop, hid.UsageGenericDesktopX) && !isGamePad:
			motion.set(q, deviceID, &motion.x, timeStamp, AdjustPointingMotionValue(v.IntegerValue, xyMultiplier))

		case v.ConformsTo(hid.UsagePageGenericDesktop, hid.UsageGenericDesktopY) && !isGamePad:
			motion.set(q, deviceID, &motion.y, timeStamp, AdjustPointingMotionValue(v.IntegerValue, xyMultiplier))

		case v.ConformsTo(hid.UsagePageGenericDesktop, hid.UsageGenericDesktopWheel):
			motion.set(q, deviceID, &motion.verticalWheel, timeStamp, AdjustPointingMotionValue(v.IntegerValue, wheelsMultiplier))

		case v.ConformsTo(hid.UsagePageConsumer, hid.UsageConsumerACPan):
			motion.set(q, deviceID, &motion.horizontalWheel, timeStamp, AdjustPointingMotionValue(v.IntegerValue, wheelsMultiplier))

		case v.ConformsTo(hid.UsagePageLeds, hid.UsageLedCapsLock):
			event := MakeCapsLockStateChangedEvent(v.IntegerValue)
			q.EmplaceBackEntry(deviceID, NewEventTimeStamp(timeStamp), event, types.Single, event, types.VirtualEvent, false)

		case v.ConformsTo(hid.UsagePageGenericDesktop, hid.UsageGenericDesktopHatSwitch) && isGamePad:
			if params.HatSwitchConverter == nil {
				continue
			}
			for _, d := range params.HatSwitchConverter.Convert(deviceID, v.IntegerValue) {
				event := NewMomentarySwitchEvent(d.Event)
				q.EmplaceBackEntry(deviceID, NewEventTimeStamp(timeStamp), event, d.EventType, event, types.Original, false)
			}
		}
	}
	motion.flush(q, deviceID)

	return q
}

// InsertDeviceKeysAndPointingButtonsAreReleasedEvent returns a copy of q
// with a device_keys_and_pointing_buttons_are_released entry after each
// key_up of deviceID which releases the last pressed key. m keeps the
// pressed keys across calls.
func InsertDeviceKeysAndPointingButtonsAreReleasedEvent(q *Queue, deviceID types.DeviceID, m *pressedkeys.Manager) *Queue {
	result := NewQueue()
	if q == nil || m == nil {
		return result
	}

	for _, entry := range q.GetEntries() {
		result.PushBackEntry(entry)

		if entry.GetDeviceID() != deviceID {
			continue
		}
		switch entry.GetEventType() {
		case types.KeyDown:
			if e := GetIf[types.MomentarySwitchEvent](entry.GetEvent()); e != nil {
				m.Insert(*e)
			}
		case types.KeyUp:
			if m.Empty() {
				continue
			}
			if e := GetIf[types.MomentarySwitchEvent](entry.GetEvent()); e != nil {
				m.Erase(*e)
			}
			if m.Empty() {
				event := MakeDeviceKeysAndPointingButtonsAreReleasedEvent()
				result.EmplaceBackEntry(deviceID, entry.GetEventTimeStamp(), event, types.Single, event, types.VirtualEvent, false)
			}
		}
	}

	return result
}
