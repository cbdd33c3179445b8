package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/guettli/eventqueue/pkg/eventqueue"
	"github.com/guettli/eventqueue/pkg/hid"
	"github.com/guettli/eventqueue/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestEntryToString(t *testing.T) {
	entry := func(event eventqueue.Event, eventType types.EventType) eventqueue.Entry {
		return eventqueue.NewEntry(1, eventqueue.NewEventTimeStamp(0), event, eventType, event, types.Original, false)
	}
	tests := []struct {
		entry    eventqueue.Entry
		expected string
	}{
		{entry(keyEvent(hid.UsageKeyboardA), types.KeyDown), "a_"},
		{entry(keyEvent(hid.UsageKeyboardA), types.KeyUp), "a/"},
		{entry(keyEvent(hid.UsageKeyboardSpacebar), types.KeyUp), "␣/"},
		{entry(keyEvent(hid.UsageKeyboardLeftShift), types.KeyDown), "⇧ _"},
		{entry(keyEvent(0x7F), types.KeyDown), "(0x7,0x7f)_"},
		{entry(eventqueue.NewPointingMotionEvent(types.NewPointingMotion(1, -2, 0, 0)), types.Single), "motion(1,-2,0,0)"},
		{entry(eventqueue.MakeCapsLockStateChangedEvent(1), types.Single), "caps_lock_state=1"},
		{entry(eventqueue.MakeDeviceKeysAndPointingButtonsAreReleasedEvent(), types.Single), "device keys and pointing buttons are released"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, entryToString(tt.entry))
	}
}

func TestReplayReader_text(t *testing.T) {
	var out bytes.Buffer
	err := replayReader(testCommand(&out), nil, strings.NewReader(`
1;0;EV_KEY;KEY_LEFTSHIFT;down
1;0;EV_SYN;SYN_REPORT;0
1;120000;EV_KEY;KEY_A;down
1;120000;EV_SYN;SYN_REPORT;0
1;200000;EV_KEY;KEY_A;up
1;200000;EV_SYN;SYN_REPORT;0
1;250000;EV_KEY;KEY_LEFTSHIFT;up
1;250000;EV_SYN;SYN_REPORT;0
`), "keyboard", "", replayOptions{deviceID: 1, format: formatText})
	require.NoError(t, err)
	require.Equal(t, `   0ms  ⇧ _
 120ms  a_
  80ms  a/
  50ms  ⇧ /
   0ms  device keys and pointing buttons are released
`, out.String())
}

func TestValidFormat(t *testing.T) {
	require.NoError(t, validFormat(formatJSON))
	require.NoError(t, validFormat(formatText))
	require.ErrorContains(t, validFormat("csv"), `unknown format "csv"`)
}
