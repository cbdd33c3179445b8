package eventqueue

import (
	"testing"

	"github.com/guettli/eventqueue/pkg/hid"
	"github.com/guettli/eventqueue/pkg/types"
	"github.com/stretchr/testify/require"
)

func enqueue(q *Queue, deviceID types.DeviceID, timeStamp types.AbsoluteTimePoint, event Event, eventType types.EventType) {
	q.EmplaceBackEntry(deviceID, NewEventTimeStamp(timeStamp), event, eventType, event, types.Original, false)
}

func entry(deviceID types.DeviceID, timeStamp types.AbsoluteTimePoint, event Event, eventType types.EventType) Entry {
	return NewEntry(deviceID, NewEventTimeStamp(timeStamp), event, eventType, event, types.Original, false)
}

func requireEntries(t *testing.T, expected []Entry, q *Queue) {
	t.Helper()
	actual := q.GetEntries()
	require.Len(t, actual, len(expected))
	for i := range expected {
		require.True(t, expected[i].Equal(actual[i]), "entry %d: expected %s, got %s", i, expected[i].ToJSON(), actual[i].ToJSON())
	}
}

var button2 = hid.NewUsagePair(hid.UsagePageButton, hid.UsageButton2)

func TestQueue_emplaceBackEntry(t *testing.T) {
	q := NewQueue()
	require.True(t, q.Empty())

	enqueue(q, 1, 100, aEvent, types.KeyDown)
	require.False(t, q.GetModifierFlagManager().IsPressed(types.ModifierFlagLeftShift))

	enqueue(q, 1, 200, leftShiftEvent, types.KeyDown)
	require.True(t, q.GetModifierFlagManager().IsPressed(types.ModifierFlagLeftShift))

	enqueue(q, 1, 300, button2Event, types.KeyDown)
	require.True(t, q.GetPointingButtonManager().IsPressed(button2))

	enqueue(q, 1, 400, leftShiftEvent, types.KeyUp)
	require.False(t, q.GetModifierFlagManager().IsPressed(types.ModifierFlagLeftShift))

	enqueue(q, 1, 500, aEvent, types.KeyUp)
	require.False(t, q.GetModifierFlagManager().IsPressed(types.ModifierFlagLeftShift))

	enqueue(q, 1, 600, button2Event, types.KeyUp)
	require.False(t, q.GetPointingButtonManager().IsPressed(button2))

	requireEntries(t, []Entry{
		entry(1, 100, aEvent, types.KeyDown),
		entry(1, 200, leftShiftEvent, types.KeyDown),
		entry(1, 300, button2Event, types.KeyDown),
		entry(1, 400, leftShiftEvent, types.KeyUp),
		entry(1, 500, aEvent, types.KeyUp),
		entry(1, 600, button2Event, types.KeyUp),
	}, q)

	require.Equal(t, 6, q.Len())
	require.True(t, q.GetEntries()[0].IsValid())
	require.False(t, q.GetEntries()[0].GetLazy())
}

func TestQueue_reorder(t *testing.T) {
	tests := []struct {
		name     string
		enqueued []Entry
		expected []Entry
	}{
		{
			name: "modifiers first on key_down, last on key_up",
			enqueued: []Entry{
				entry(1, 100, leftControlEvent, types.KeyDown),
				entry(1, 100, aEvent, types.KeyDown),
				entry(1, 100, leftShiftEvent, types.KeyDown),
				entry(1, 200, spacebarEvent, types.KeyDown),
				entry(1, 300, leftShiftEvent, types.KeyUp),
				entry(1, 300, aEvent, types.KeyUp),
				entry(1, 300, leftControlEvent, types.KeyUp),
				// other events keep their order
				entry(1, 400, leftShiftEvent, types.KeyDown),
				entry(1, 400, releasedEvent, types.Single),
				entry(1, 500, releasedEvent, types.Single),
				entry(1, 500, leftShiftEvent, types.KeyDown),
			},
			expected: []Entry{
				entry(1, 100, leftControlEvent, types.KeyDown),
				entry(1, 100, leftShiftEvent, types.KeyDown),
				entry(1, 100, aEvent, types.KeyDown),
				entry(1, 200, spacebarEvent, types.KeyDown),
				entry(1, 300, aEvent, types.KeyUp),
				entry(1, 300, leftShiftEvent, types.KeyUp),
				entry(1, 300, leftControlEvent, types.KeyUp),
				entry(1, 400, leftShiftEvent, types.KeyDown),
				entry(1, 400, releasedEvent, types.Single),
				entry(1, 500, releasedEvent, types.Single),
				entry(1, 500, leftShiftEvent, types.KeyDown),
			},
		},
		{
			name: "stable among modifiers and among keys",
			enqueued: []Entry{
				entry(1, 100, aEvent, types.KeyDown),
				entry(1, 100, leftShiftEvent, types.KeyDown),
				entry(1, 100, bEvent, types.KeyDown),
				entry(1, 100, leftControlEvent, types.KeyDown),
			},
			expected: []Entry{
				entry(1, 100, leftShiftEvent, types.KeyDown),
				entry(1, 100, leftControlEvent, types.KeyDown),
				entry(1, 100, aEvent, types.KeyDown),
				entry(1, 100, bEvent, types.KeyDown),
			},
		},
		{
			name: "keys before modifiers",
			enqueued: []Entry{
				entry(1, 100, bEvent, types.KeyDown),
				entry(1, 100, aEvent, types.KeyDown),
				entry(1, 100, leftControlEvent, types.KeyDown),
				entry(1, 100, leftShiftEvent, types.KeyDown),
			},
			expected: []Entry{
				entry(1, 100, leftControlEvent, types.KeyDown),
				entry(1, 100, leftShiftEvent, types.KeyDown),
				entry(1, 100, bEvent, types.KeyDown),
				entry(1, 100, aEvent, types.KeyDown),
			},
		},
		{
			name: "key_up keys before modifier key_down",
			enqueued: []Entry{
				entry(1, 100, bEvent, types.KeyUp),
				entry(1, 100, aEvent, types.KeyUp),
				entry(1, 100, leftControlEvent, types.KeyDown),
				entry(1, 100, leftShiftEvent, types.KeyDown),
			},
			expected: []Entry{
				entry(1, 100, leftControlEvent, types.KeyDown),
				entry(1, 100, leftShiftEvent, types.KeyDown),
				entry(1, 100, bEvent, types.KeyUp),
				entry(1, 100, aEvent, types.KeyUp),
			},
		},
		{
			name: "released event is a barrier",
			enqueued: []Entry{
				entry(1, 100, bEvent, types.KeyUp),
				entry(1, 100, aEvent, types.KeyUp),
				entry(1, 100, releasedEvent, types.Single),
				entry(1, 100, leftControlEvent, types.KeyDown),
				entry(1, 100, leftShiftEvent, types.KeyDown),
			},
			expected: []Entry{
				entry(1, 100, bEvent, types.KeyUp),
				entry(1, 100, aEvent, types.KeyUp),
				entry(1, 100, releasedEvent, types.Single),
				entry(1, 100, leftControlEvent, types.KeyDown),
				entry(1, 100, leftShiftEvent, types.KeyDown),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			for _, e := range tt.enqueued {
				q.PushBackEntry(e)
			}
			requireEntries(t, tt.expected, q)
		})
	}
}

func TestNeedsSwap(t *testing.T) {
	spacebarDown := entry(1, 100, spacebarEvent, types.KeyDown)
	rightShiftDown := entry(1, 100, rightShiftEvent, types.KeyDown)
	escapeDown := entry(1, 200, escapeEvent, types.KeyDown)
	spacebarUp := entry(1, 300, spacebarEvent, types.KeyUp)
	rightShiftUp := entry(1, 300, rightShiftEvent, types.KeyUp)

	tests := []struct {
		name     string
		e1, e2   Entry
		expected bool
	}{
		{"same entry", spacebarDown, spacebarDown, false},
		{"different time stamps", spacebarDown, escapeDown, false},
		{"different time stamps reversed", escapeDown, spacebarDown, false},
		{"modifier key_down after key", spacebarDown, rightShiftDown, true},
		{"modifier key_down before key", rightShiftDown, spacebarDown, false},
		{"key_down and key_up at different times", spacebarDown, rightShiftUp, false},
		{"key_up and key_down at different times", rightShiftUp, spacebarDown, false},
		{"modifier key_up after key", spacebarUp, rightShiftUp, false},
		{"modifier key_up before key", rightShiftUp, spacebarUp, true},
		{"key_up and modifier key_down at different times", spacebarUp, rightShiftDown, false},
		{"modifier key_down and key_up at different times", rightShiftDown, spacebarUp, false},
		{"not a key", entry(1, 100, releasedEvent, types.Single), rightShiftDown, false},
		{"caps lock is no modifier", spacebarDown, entry(1, 100, capsLockEvent, types.KeyDown), false},
		{"device ids are ignored", spacebarDown, entry(2, 100, rightShiftEvent, types.KeyDown), true},
		{"device ids are ignored key_up", entry(3, 300, rightShiftEvent, types.KeyUp), entry(4, 300, spacebarEvent, types.KeyUp), true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, NeedsSwap(tt.e1, tt.e2), tt.name)
	}
}

func TestQueue_increaseTimeStampDelay(t *testing.T) {
	q := NewQueue()

	enqueue(q, 1, 100, tabEvent, types.KeyDown)
	q.IncreaseTimeStampDelay(10)
	require.Equal(t, types.AbsoluteTimeDuration(10), q.GetTimeStampDelay())

	enqueue(q, 1, 200, tabEvent, types.KeyUp)
	enqueue(q, 1, 300, tabEvent, types.KeyDown)
	enqueue(q, 1, 400, tabEvent, types.KeyUp)

	requireEntries(t, []Entry{
		entry(1, 100, tabEvent, types.KeyDown),
		entry(1, 210, tabEvent, types.KeyUp),
		entry(1, 310, tabEvent, types.KeyDown),
		entry(1, 410, tabEvent, types.KeyUp),
	}, q)

	q.EraseFrontEvent()
	require.Equal(t, types.AbsoluteTimeDuration(10), q.GetTimeStampDelay())

	for !q.Empty() {
		q.EraseFrontEvent()
	}
	require.Equal(t, types.AbsoluteTimeDuration(0), q.GetTimeStampDelay())
	require.Nil(t, q.GetFrontEntry())

	// erasing an empty queue is a no-op
	q.EraseFrontEvent()
	require.True(t, q.Empty())
}

func TestQueue_clearEvents(t *testing.T) {
	q := NewQueue()
	enqueue(q, 1, 100, leftShiftEvent, types.KeyDown)
	q.IncreaseTimeStampDelay(10)
	q.ClearEvents()
	require.True(t, q.Empty())
	require.Equal(t, types.AbsoluteTimeDuration(0), q.GetTimeStampDelay())

	// managers are not a function of the queue contents
	require.True(t, q.GetModifierFlagManager().IsPressed(types.ModifierFlagLeftShift))
}

func TestQueue_frontEntry(t *testing.T) {
	q := NewQueue()
	enqueue(q, 1, 100, aEvent, types.KeyDown)
	enqueue(q, 1, 200, aEvent, types.KeyUp)

	front := q.GetFrontEntry()
	require.NotNil(t, front)
	front.SetValidity(types.Invalid)
	front.SetLazy(true)
	require.False(t, q.GetEntries()[0].IsValid())
	require.True(t, q.GetEntries()[0].GetLazy())

	q.EraseFrontEvent()
	require.Equal(t, types.AbsoluteTimePoint(200), q.GetFrontEntry().GetEventTimeStamp().GetTimeStamp())
}

func TestQueue_pushBackEntryKeepsValidity(t *testing.T) {
	e := entry(1, 100, aEvent, types.KeyDown)
	e.SetValidity(types.Invalid)

	q := NewQueue()
	q.PushBackEntry(e)
	require.True(t, e.Equal(q.GetEntries()[0]))
}

func TestQueue_capsLockStateChanged(t *testing.T) {
	q := NewQueue()
	pressed := func() bool {
		return q.GetModifierFlagManager().IsPressed(types.ModifierFlagCapsLock)
	}

	// the caps lock key does not change the flag
	enqueue(q, 1, 100, capsLockEvent, types.KeyDown)
	require.False(t, pressed())

	enqueue(q, 1, 100, capsLockStateChanged1, types.Single)
	require.True(t, pressed())

	// twice
	enqueue(q, 1, 100, capsLockStateChanged1, types.Single)
	require.True(t, pressed())

	enqueue(q, 1, 100, capsLockStateChanged0, types.Single)
	require.False(t, pressed())

	enqueue(q, 1, 100, capsLockStateChanged1, types.Single)
	require.True(t, pressed())
}

func TestQueue_eraseAll(t *testing.T) {
	q := NewQueue()
	enqueue(q, 1, 100, leftShiftEvent, types.KeyDown)
	enqueue(q, 2, 100, button2Event, types.KeyDown)
	enqueue(q, 1, 100, capsLockStateChanged1, types.Single)

	q.EraseAllActiveModifierFlagsExceptLockAndSticky(1)
	require.False(t, q.GetModifierFlagManager().IsPressed(types.ModifierFlagLeftShift))
	require.True(t, q.GetModifierFlagManager().IsPressed(types.ModifierFlagCapsLock))

	q.EraseAllActiveModifierFlags(1)
	require.False(t, q.GetModifierFlagManager().IsPressed(types.ModifierFlagCapsLock))

	q.EraseAllActivePointingButtons(1)
	require.True(t, q.GetPointingButtonManager().IsPressed(button2))
	q.EraseAllActivePointingButtons(2)
	require.False(t, q.GetPointingButtonManager().IsPressed(button2))
}

func TestQueue_manipulatorEnvironment(t *testing.T) {
	q := NewQueue()
	application := types.Application{BundleIdentifier: "com.apple.Terminal"}
	properties := types.InputSourceProperties{FirstLanguage: "en"}
	enqueue(q, 1, 100, MakeFrontmostApplicationChangedEvent(application), types.Single)
	enqueue(q, 1, 100, MakeInputSourceChangedEvent(properties), types.Single)
	enqueue(q, 1, 100, MakeSystemPreferencesPropertiesChangedEvent(types.SystemPreferencesProperties{ScrollDirectionIsNatural: true}), types.Single)
	enqueue(q, 1, 100, MakeVirtualHIDKeyboardConfigurationChangedEvent(types.VirtualHIDKeyboardConfiguration{CountryCode: 2}), types.Single)
	enqueue(q, 1, 100, MakeSetVariableEvent(types.SetVariable{Name: "mode", Value: types.NewIntVariableValue(1)}), types.KeyDown)
	enqueue(q, 1, 100, MakeSetVariableEvent(types.SetVariable{Name: "ignored", Value: types.NewIntVariableValue(1)}), types.KeyUp)

	env := q.GetManipulatorEnvironment()
	require.Equal(t, application, env.GetFrontmostApplication())
	require.True(t, properties.Equal(env.GetInputSourceProperties()))
	require.True(t, env.GetSystemPreferencesProperties().ScrollDirectionIsNatural)
	require.Equal(t, 2, env.GetVirtualHIDKeyboardConfiguration().CountryCode)
	require.Equal(t, types.NewIntVariableValue(1), env.GetVariable("mode"))
	require.False(t, env.GetVariable("ignored").IsSet())
	require.Len(t, env.GetVariables(), 1)

	enqueue(q, 1, 200, MakeSetVariableEvent(types.SetVariable{Name: "mode", Type: types.SetVariableTypeUnset}), types.KeyDown)
	require.False(t, env.GetVariable("mode").IsSet())
}
