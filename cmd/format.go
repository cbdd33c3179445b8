package cmd

import (
	"fmt"
	"strings"

	"github.com/guettli/eventqueue/pkg/eventqueue"
	"github.com/guettli/eventqueue/pkg/types"
)

const (
	formatJSON = "json"
	formatText = "text"
)

var (
	eventTypeToShortString = map[types.EventType]string{
		types.KeyDown: "_",
		types.KeyUp:   "/",
		types.Single:  "",
	}
	shortKeyNames = map[string]string{
		"spacebar":    "␣",
		"left_shift":  "⇧ ",
		"right_shift": " ⇧",
	}
)

// textFormatter writes one short line per entry, with the milliseconds
// since the previous entry.
type textFormatter struct {
	prev *types.AbsoluteTimePoint
}

func (f *textFormatter) format(entry eventqueue.Entry) string {
	timeStamp := entry.GetEventTimeStamp().GetTimeStamp()
	var deltaMs int64
	if f.prev != nil {
		deltaMs = (int64(timeStamp) - int64(*f.prev)) / 1000
	}
	f.prev = &timeStamp

	s := entryToString(entry)
	if !entry.IsValid() {
		s += " (invalid)"
	}
	return fmt.Sprintf("%4dms  %s", deltaMs, s)
}

func entryToString(entry eventqueue.Entry) string {
	event := entry.GetEvent()
	switch event.GetType() {
	case eventqueue.TypeMomentarySwitchEvent:
		m, _ := event.GetMomentarySwitchEvent()
		_, name := m.JSONKeyAndName()
		if name == "" {
			name = m.UsagePair().String()
		}
		if short, ok := shortKeyNames[name]; ok {
			name = short
		}
		return name + eventTypeToShortString[entry.GetEventType()]
	case eventqueue.TypePointingMotion:
		m := event.GetPointingMotion()
		return fmt.Sprintf("motion(%d,%d,%d,%d)", m.X, m.Y, m.VerticalWheel, m.HorizontalWheel)
	case eventqueue.TypeCapsLockStateChanged:
		state, _ := event.GetIntegerValue()
		return fmt.Sprintf("caps_lock_state=%d", state)
	}
	return strings.ReplaceAll(event.GetType().String(), "_", " ")
}

func validFormat(format string) error {
	switch format {
	case formatJSON, formatText:
		return nil
	}
	return fmt.Errorf("unknown format %q, expected %q or %q", format, formatJSON, formatText)
}
