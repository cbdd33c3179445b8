package pointingbutton

import (
	"slices"

	"github.com/guettli/eventqueue/pkg/hid"
	"github.com/guettli/eventqueue/pkg/types"
)

type Type int

const (
	Increase Type = iota
	Decrease
)

func (t Type) String() string {
	if t == Decrease {
		return "decrease"
	}
	return "increase"
}

type ActivePointingButton struct {
	Type      Type
	UsagePair hid.UsagePair
	DeviceID  types.DeviceID
}

func NewActivePointingButton(t Type, usagePair hid.UsagePair, deviceID types.DeviceID) ActivePointingButton {
	return ActivePointingButton{Type: t, UsagePair: usagePair, DeviceID: deviceID}
}

// Manager tracks pressed pointing buttons across devices.
// It is not safe for concurrent use.
type Manager struct {
	activePointingButtons []ActivePointingButton
}

func NewManager() *Manager {
	return &Manager{}
}

// PushBackActivePointingButton adds a press once per (button, device).
// A release removes the button for every device. Button 0 is ignored.
func (m *Manager) PushBackActivePointingButton(b ActivePointingButton) {
	if b.UsagePair.UsagePage != hid.UsagePageButton || b.UsagePair.Usage == hid.UsageUndefined {
		return
	}
	switch b.Type {
	case Increase:
		for _, a := range m.activePointingButtons {
			if a.UsagePair == b.UsagePair && a.DeviceID == b.DeviceID {
				return
			}
		}
		m.activePointingButtons = append(m.activePointingButtons, b)
	case Decrease:
		m.activePointingButtons = slices.DeleteFunc(m.activePointingButtons, func(a ActivePointingButton) bool {
			return a.UsagePair == b.UsagePair
		})
	}
}

func (m *Manager) IsPressed(usagePair hid.UsagePair) bool {
	return slices.ContainsFunc(m.activePointingButtons, func(a ActivePointingButton) bool {
		return a.UsagePair == usagePair
	})
}

func (m *Manager) GetActivePointingButtons() []ActivePointingButton {
	return slices.Clone(m.activePointingButtons)
}

func (m *Manager) EraseAllActivePointingButtons(deviceID types.DeviceID) {
	m.activePointingButtons = slices.DeleteFunc(m.activePointingButtons, func(a ActivePointingButton) bool {
		return a.DeviceID == deviceID
	})
}

func (m *Manager) Reset() {
	m.activePointingButtons = nil
}

// MakeHIDReportButtons returns the pressed button numbers, sorted and
// without duplicates. Button1 is 1.
func (m *Manager) MakeHIDReportButtons() []int {
	var buttons []int
	for _, a := range m.activePointingButtons {
		buttons = append(buttons, int(a.UsagePair.Usage))
	}
	slices.Sort(buttons)
	return slices.Compact(buttons)
}
