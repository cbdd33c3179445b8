package eventqueue

import (
	"testing"

	"github.com/guettli/eventqueue/pkg/hid"
	"github.com/guettli/eventqueue/pkg/pressedkeys"
	"github.com/guettli/eventqueue/pkg/types"
	"github.com/stretchr/testify/require"
)

var keyboard = types.DeviceProperties{DeviceID: 1, IsKeyboard: true, IsPointingDevice: true}

func TestMakeQueue(t *testing.T) {
	values := []hid.Value{
		hid.NewValue(1000, 1, hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardSpacebar),
		hid.NewValue(2000, 0, hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardSpacebar),

		hid.NewValue(3000, 1, hid.UsagePageConsumer, hid.UsageConsumerMute),
		hid.NewValue(4000, 0, hid.UsagePageConsumer, hid.UsageConsumerMute),

		hid.NewValue(5000, 10, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopX),
		hid.NewValue(5000, 20, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopY),
		hid.NewValue(5000, 30, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopWheel),
		hid.NewValue(5000, 40, hid.UsagePageConsumer, hid.UsageConsumerACPan),

		hid.NewValue(6000, -10, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopX),
		hid.NewValue(6000, -20, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopY),
		hid.NewValue(6000, -30, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopWheel),
		hid.NewValue(6000, -40, hid.UsagePageConsumer, hid.UsageConsumerACPan),

		hid.NewValue(7000, 10, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopX),

		hid.NewValue(8000, 0, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopX),
	}

	q := MakeQueue(keyboard, values, DefaultMakeQueueParameters())

	spacebar := keyEvent(hid.UsageKeyboardSpacebar)
	motion := func(x, y, v, h int) Event {
		return NewPointingMotionEvent(types.NewPointingMotion(x, y, v, h))
	}
	requireEntries(t, []Entry{
		entry(1, 1000, spacebar, types.KeyDown),
		entry(1, 2000, spacebar, types.KeyUp),
		entry(1, 3000, muteEvent, types.KeyDown),
		entry(1, 4000, muteEvent, types.KeyUp),
		entry(1, 5000, motion(10, 20, 30, 40), types.Single),
		entry(1, 6000, motion(-10, -20, -30, -40), types.Single),
		entry(1, 7000, motion(10, 0, 0, 0), types.Single),
		entry(1, 8000, motion(0, 0, 0, 0), types.Single),
	}, q)

	key, ok := q.GetEntries()[0].GetEvent().GetKeyCode()
	require.True(t, ok)
	require.Equal(t, hid.UsageKeyboardSpacebar, key)
	require.Equal(t, motion(10, 20, 30, 40).GetPointingMotion(), q.GetEntries()[4].GetEvent().GetPointingMotion())
}

func TestMakeQueue_empty(t *testing.T) {
	q := MakeQueue(keyboard, nil, MakeQueueParameters{})
	require.True(t, q.Empty())

	// unknown usages are skipped
	q = MakeQueue(keyboard, []hid.Value{
		hid.NewValue(1000, 1, hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardReserved),
		hid.NewValue(1000, 1, hid.UsagePageLeds, hid.UsageLedNumLock),
		hid.NewValue(1000, 1, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopZ),
		hid.NewValue(1000, 1, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopHatSwitch),
	}, DefaultMakeQueueParameters())
	require.True(t, q.Empty())
}

func TestMakeQueue_capsLockLed(t *testing.T) {
	q := MakeQueue(keyboard, []hid.Value{
		hid.NewValue(1000, 1, hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardCapsLock),
		hid.NewValue(1000, 1, hid.UsagePageLeds, hid.UsageLedCapsLock),
	}, DefaultMakeQueueParameters())

	entries := q.GetEntries()
	require.Len(t, entries, 2)
	require.Equal(t, types.KeyDown, entries[0].GetEventType())
	require.True(t, capsLockStateChanged1.Equal(entries[1].GetEvent()))
	require.Equal(t, types.Single, entries[1].GetEventType())
	require.Equal(t, types.VirtualEvent, entries[1].GetState())
	require.True(t, q.GetModifierFlagManager().IsPressed(types.ModifierFlagCapsLock))
}

func TestMakeQueue_multipliers(t *testing.T) {
	values := []hid.Value{
		hid.NewValue(1000, 10, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopX),
		hid.NewValue(1000, -1, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopY),
		hid.NewValue(1000, 3, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopWheel),
		hid.NewValue(1000, 100, hid.UsagePageConsumer, hid.UsageConsumerACPan),
	}
	q := MakeQueue(keyboard, values, MakeQueueParameters{
		PointingMotionXYMultiplier:     0.5,
		PointingMotionWheelsMultiplier: 2.0,
	})
	require.Equal(t, 1, q.Len())
	require.Equal(t, types.NewPointingMotion(5, -1, 6, 127), q.GetEntries()[0].GetEvent().GetPointingMotion())
}

func TestAdjustPointingMotionValue(t *testing.T) {
	tests := []struct {
		value      int64
		multiplier float64
		expected   int
	}{
		{10, 1.0, 10},
		{10, 1.5, 15},
		{10, 0.01, 1},
		{-10, 0.01, -1},
		{0, 100, 0},
		{100, 2.0, 127},
		{-100, 2.0, -127},
		{-3, 0.5, -1},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, AdjustPointingMotionValue(tt.value, tt.multiplier), "%d * %f", tt.value, tt.multiplier)
	}
}

func TestMakeQueue_gamePad(t *testing.T) {
	gamePad := types.DeviceProperties{DeviceID: 2, IsGamePad: true}
	params := DefaultMakeQueueParameters()
	params.HatSwitchConverter = NewHatSwitchConverter()

	dpadUp := NewMomentarySwitchEvent(types.NewMomentarySwitchEvent(hid.UsagePageGenericDesktop, hid.UsageGenericDesktopDpadUp))
	dpadRight := NewMomentarySwitchEvent(types.NewMomentarySwitchEvent(hid.UsagePageGenericDesktop, hid.UsageGenericDesktopDpadRight))

	q := MakeQueue(gamePad, []hid.Value{
		// sticks are no pointing motion on game pads
		hid.NewValue(1000, 10, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopX),
		hid.NewValue(1000, 10, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopY),
		hid.NewValue(1000, 1, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopHatSwitch),
	}, params)
	requireEntries(t, []Entry{
		entry(2, 1000, dpadUp, types.KeyDown),
		entry(2, 1000, dpadRight, types.KeyDown),
	}, q)

	// the converter keeps the state between queues
	q = MakeQueue(gamePad, []hid.Value{
		hid.NewValue(1001, -1, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopHatSwitch),
	}, params)
	requireEntries(t, []Entry{
		entry(2, 1001, dpadUp, types.KeyUp),
		entry(2, 1001, dpadRight, types.KeyUp),
	}, q)

	// without converter the hat switch is dropped
	q = MakeQueue(gamePad, []hid.Value{
		hid.NewValue(1002, 0, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopHatSwitch),
	}, DefaultMakeQueueParameters())
	require.True(t, q.Empty())
}

func TestMakeQueue_hatSwitchOnNonGamePad(t *testing.T) {
	params := DefaultMakeQueueParameters()
	params.HatSwitchConverter = NewHatSwitchConverter()
	q := MakeQueue(keyboard, []hid.Value{
		hid.NewValue(1000, 0, hid.UsagePageGenericDesktop, hid.UsageGenericDesktopHatSwitch),
	}, params)
	require.True(t, q.Empty())
}

func TestInsertDeviceKeysAndPointingButtonsAreReleasedEvent(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		q := NewQueue()
		m := pressedkeys.New()
		enqueue(q, 1, 100, aEvent, types.KeyDown)
		enqueue(q, 1, 200, aEvent, types.KeyUp)
		enqueue(q, 1, 300, bEvent, types.KeyDown)
		enqueue(q, 1, 400, bEvent, types.KeyUp)
		enqueue(q, 1, 500, muteEvent, types.KeyDown)
		enqueue(q, 1, 600, muteEvent, types.KeyUp)
		enqueue(q, 1, 700, button2Event, types.KeyDown)
		enqueue(q, 1, 800, button2Event, types.KeyUp)

		q = InsertDeviceKeysAndPointingButtonsAreReleasedEvent(q, 1, m)

		released := NewEntry(1, NewEventTimeStamp(0), releasedEvent, types.Single, releasedEvent, types.VirtualEvent, false)
		releasedAt := func(ts types.AbsoluteTimePoint) Entry {
			e := released
			e.eventTimeStamp = NewEventTimeStamp(ts)
			return e
		}
		requireEntries(t, []Entry{
			entry(1, 100, aEvent, types.KeyDown),
			entry(1, 200, aEvent, types.KeyUp),
			releasedAt(200),
			entry(1, 300, bEvent, types.KeyDown),
			entry(1, 400, bEvent, types.KeyUp),
			releasedAt(400),
			entry(1, 500, muteEvent, types.KeyDown),
			entry(1, 600, muteEvent, types.KeyUp),
			releasedAt(600),
			entry(1, 700, button2Event, types.KeyDown),
			entry(1, 800, button2Event, types.KeyUp),
			releasedAt(800),
		}, q)
		require.True(t, m.Empty())
	})

	t.Run("different device_id", func(t *testing.T) {
		q := NewQueue()
		m := pressedkeys.New()
		enqueue(q, 1, 100, aEvent, types.KeyDown)
		enqueue(q, 2, 200, aEvent, types.KeyUp)

		q = InsertDeviceKeysAndPointingButtonsAreReleasedEvent(q, 1, m)

		require.Equal(t, 2, q.Len())
		require.False(t, m.Empty())
	})

	t.Run("multiple key_down", func(t *testing.T) {
		q := NewQueue()
		m := pressedkeys.New()
		enqueue(q, 1, 100, aEvent, types.KeyDown)
		enqueue(q, 1, 200, bEvent, types.KeyDown)
		enqueue(q, 1, 300, bEvent, types.KeyUp)
		enqueue(q, 1, 400, aEvent, types.KeyUp)

		q = InsertDeviceKeysAndPointingButtonsAreReleasedEvent(q, 1, m)

		entries := q.GetEntries()
		require.Len(t, entries, 5)
		expected := []struct {
			typ       Type
			eventType types.EventType
			timeStamp types.AbsoluteTimePoint
		}{
			{TypeMomentarySwitchEvent, types.KeyDown, 100},
			{TypeMomentarySwitchEvent, types.KeyDown, 200},
			{TypeMomentarySwitchEvent, types.KeyUp, 300},
			{TypeMomentarySwitchEvent, types.KeyUp, 400},
			{TypeDeviceKeysAndPointingButtonsAreReleased, types.Single, 400},
		}
		for i, e := range expected {
			require.Equal(t, e.typ, entries[i].GetEvent().GetType(), "entry %d", i)
			require.Equal(t, e.eventType, entries[i].GetEventType(), "entry %d", i)
			require.Equal(t, e.timeStamp, entries[i].GetEventTimeStamp().GetTimeStamp(), "entry %d", i)
		}
		require.True(t, m.Empty())
	})

	t.Run("manager outlives queues", func(t *testing.T) {
		m := pressedkeys.New()

		q := NewQueue()
		enqueue(q, 1, 100, aEvent, types.KeyDown)
		q = InsertDeviceKeysAndPointingButtonsAreReleasedEvent(q, 1, m)
		require.Equal(t, 1, q.Len())

		q = NewQueue()
		enqueue(q, 1, 200, aEvent, types.KeyUp)
		q = InsertDeviceKeysAndPointingButtonsAreReleasedEvent(q, 1, m)
		require.Equal(t, 2, q.Len())
		require.True(t, m.Empty())
	})

	t.Run("nil queue", func(t *testing.T) {
		q := InsertDeviceKeysAndPointingButtonsAreReleasedEvent(nil, 1, pressedkeys.New())
		require.True(t, q.Empty())
	})
}
