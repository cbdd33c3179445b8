package eventqueue

import (
	"testing"

	"github.com/guettli/eventqueue/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestEntry_equal(t *testing.T) {
	entry1 := NewEntry(1,
		NewEventTimeStampWithDelay(100, 10),
		aEvent,
		types.KeyDown,
		aEvent,
		types.Original,
		false)
	entry2 := entry1
	require.True(t, entry1.Equal(entry2))

	entry2.SetLazy(true)
	require.False(t, entry1.Equal(entry2))

	entry3 := entry1
	entry3.SetValidity(types.Invalid)
	require.False(t, entry1.Equal(entry3))
	require.False(t, entry3.IsValid())

	// same time stamp, different input delay
	entry4 := NewEntry(1, NewEventTimeStamp(100), aEvent, types.KeyDown, aEvent, types.Original, false)
	require.False(t, entry1.Equal(entry4))
}

func TestEventTimeStamp(t *testing.T) {
	ts := NewEventTimeStamp(100)
	require.Equal(t, types.AbsoluteTimePoint(100), ts.GetTimeStamp())
	require.Equal(t, types.AbsoluteTimeDuration(0), ts.GetInputDelayDuration())

	ts.AddDelay(10)
	ts.SetTimeStamp(200)
	require.Equal(t, NewEventTimeStampWithDelay(200, 10), ts)
	require.Equal(t, types.AbsoluteTimePoint(210), ts.MakeTimeStampWithInputDelay())
	require.NotEqual(t, NewEventTimeStamp(200), ts)

	require.JSONEq(t, `{"time_stamp":200,"input_delay_duration":10}`, ts.ToJSON())
	got, err := MakeEventTimeStampFromJSON(ts.ToJSON())
	require.Nil(t, err)
	require.Equal(t, ts, got)

	_, err = MakeEventTimeStampFromJSON(`{"input_delay_duration":10}`)
	require.ErrorIs(t, err, ErrMalformedEventTimeStamp)
}

func TestEntry_json(t *testing.T) {
	entry := NewEntry(3,
		NewEventTimeStampWithDelay(100, 10),
		leftShiftEvent,
		types.KeyUp,
		aEvent,
		types.VirtualEvent,
		true)
	entry.SetValidity(types.Invalid)

	expected := `{
		"device_id": 3,
		"event_time_stamp": {"time_stamp": 100, "input_delay_duration": 10},
		"valid": false,
		"lazy": true,
		"event": {"type": "momentary_switch_event", "momentary_switch_event": {"key_code": "left_shift"}},
		"event_type": "key_up",
		"original_event": {"type": "momentary_switch_event", "momentary_switch_event": {"key_code": "a"}},
		"state": "virtual_event"
	}`
	require.JSONEq(t, expected, entry.ToJSON())

	got, err := MakeEntryFromJSON(entry.ToJSON())
	require.Nil(t, err)
	require.True(t, entry.Equal(got))
}

func TestMakeEntryFromJSON_errors(t *testing.T) {
	valid := NewEntry(1, NewEventTimeStamp(100), aEvent, types.KeyDown, aEvent, types.Original, false).ToJSON()
	_, err := MakeEntryFromJSON(valid)
	require.Nil(t, err)

	tests := []struct {
		json          string
		expectedError error
	}{
		{`[]`, ErrMalformedEntry},
		{`{"device_id":"1"}`, ErrMalformedEntry},
		{`{"device_id":1}`, ErrMalformedEventTimeStamp},
		{`{"device_id":1,"event_time_stamp":{"time_stamp":1},"event":{"type":"x"}}`, ErrUnknownEventType},
		{`{"device_id":1,"event_time_stamp":{"time_stamp":1},"event":{"type":"device_keys_and_pointing_buttons_are_released"},"original_event":{"type":"device_keys_and_pointing_buttons_are_released"},"event_type":"repeat"}`, types.ErrUnknownEventType},
		{`{"device_id":1,"event_time_stamp":{"time_stamp":1},"event":{"type":"device_keys_and_pointing_buttons_are_released"},"original_event":{"type":"device_keys_and_pointing_buttons_are_released"},"event_type":"single","state":"x"}`, types.ErrUnknownState},
	}
	for _, tt := range tests {
		_, err := MakeEntryFromJSON(tt.json)
		require.ErrorIs(t, err, tt.expectedError, tt.json)
		require.ErrorIs(t, err, ErrMalformedEntry, tt.json)
	}
}
