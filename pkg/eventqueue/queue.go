package eventqueue

import (
	"maps"
	"slices"

	"github.com/guettli/eventqueue/pkg/modifierflag"
	"github.com/guettli/eventqueue/pkg/pointingbutton"
	"github.com/guettli/eventqueue/pkg/types"
)

// ManipulatorEnvironment holds the last known state of the world as seen
// through the events of a queue.
type ManipulatorEnvironment struct {
	frontmostApplication            types.Application
	inputSourceProperties           types.InputSourceProperties
	systemPreferencesProperties     types.SystemPreferencesProperties
	virtualHIDKeyboardConfiguration types.VirtualHIDKeyboardConfiguration
	variables                       map[string]types.VariableValue
}

func (m *ManipulatorEnvironment) GetFrontmostApplication() types.Application {
	return m.frontmostApplication
}

func (m *ManipulatorEnvironment) GetInputSourceProperties() types.InputSourceProperties {
	return m.inputSourceProperties
}

func (m *ManipulatorEnvironment) GetSystemPreferencesProperties() types.SystemPreferencesProperties {
	return m.systemPreferencesProperties
}

func (m *ManipulatorEnvironment) GetVirtualHIDKeyboardConfiguration() types.VirtualHIDKeyboardConfiguration {
	return m.virtualHIDKeyboardConfiguration
}

// GetVariable returns a value which is not set if the variable is unknown.
func (m *ManipulatorEnvironment) GetVariable(name string) types.VariableValue {
	return m.variables[name]
}

func (m *ManipulatorEnvironment) GetVariables() map[string]types.VariableValue {
	return maps.Clone(m.variables)
}

func (m *ManipulatorEnvironment) setVariable(v types.SetVariable) {
	if v.Type == types.SetVariableTypeUnset {
		delete(m.variables, v.Name)
		return
	}
	if m.variables == nil {
		m.variables = map[string]types.VariableValue{}
	}
	m.variables[v.Name] = v.Value
}

// Queue is an ordered list of entries plus the state derived from them.
// It is not safe for concurrent use.
type Queue struct {
	entries                []Entry
	modifierFlagManager    *modifierflag.Manager
	pointingButtonManager  *pointingbutton.Manager
	manipulatorEnvironment *ManipulatorEnvironment
	timeStampDelay         types.AbsoluteTimeDuration
}

func NewQueue() *Queue {
	return &Queue{
		modifierFlagManager:    modifierflag.NewManager(),
		pointingButtonManager:  pointingbutton.NewManager(),
		manipulatorEnvironment: &ManipulatorEnvironment{},
	}
}

// EmplaceBackEntry appends a valid entry. The time stamp is shifted by the
// current delay, and modifiers pressed at the same time stamp are moved in
// front of the other keys.
func (q *Queue) EmplaceBackEntry(deviceID types.DeviceID,
	eventTimeStamp EventTimeStamp,
	event Event,
	eventType types.EventType,
	originalEvent Event,
	state types.State,
	lazy bool,
) {
	q.emplaceBack(NewEntry(deviceID, eventTimeStamp, event, eventType, originalEvent, state, lazy))
}

// PushBackEntry emplaces a copy of entry, keeping its validity.
func (q *Queue) PushBackEntry(entry Entry) {
	q.emplaceBack(entry)
}

func (q *Queue) emplaceBack(entry Entry) {
	entry.eventTimeStamp.SetTimeStamp(entry.eventTimeStamp.GetTimeStamp().Add(q.timeStampDelay))

	q.entries = append(q.entries, entry)
	for i := len(q.entries) - 1; i > 0; i-- {
		if !NeedsSwap(q.entries[i-1], q.entries[i]) {
			break
		}
		q.entries[i-1], q.entries[i] = q.entries[i], q.entries[i-1]
	}

	q.updateManagers(entry.deviceID, entry.event, entry.eventType)
}

func (q *Queue) updateManagers(deviceID types.DeviceID, event Event, eventType types.EventType) {
	if m, ok := event.GetMomentarySwitchEvent(); ok {
		if flag, ok := m.MakeModifierFlag(); ok {
			t := modifierflag.Decrease
			if eventType == types.KeyDown {
				t = modifierflag.Increase
			}
			q.modifierFlagManager.PushBackActiveModifierFlag(modifierflag.NewActiveModifierFlag(t, flag, deviceID))
		}
	}

	// The caps lock key itself is not a modifier. The flag follows the LED.
	if state, ok := event.GetIntegerValue(); ok {
		t := modifierflag.DecreaseLedLock
		if state != 0 {
			t = modifierflag.IncreaseLedLock
		}
		q.modifierFlagManager.PushBackActiveModifierFlag(modifierflag.NewActiveModifierFlag(t, types.ModifierFlagCapsLock, deviceID))
	}

	if m, ok := event.GetMomentarySwitchEvent(); ok && m.IsPointingButton() {
		t := pointingbutton.Decrease
		if eventType == types.KeyDown {
			t = pointingbutton.Increase
		}
		q.pointingButtonManager.PushBackActivePointingButton(pointingbutton.NewActivePointingButton(t, m.UsagePair(), deviceID))
	}

	env := q.manipulatorEnvironment
	if a, ok := event.GetFrontmostApplication(); ok {
		env.frontmostApplication = a
	}
	if p, ok := event.GetInputSourceProperties(); ok {
		env.inputSourceProperties = p
	}
	if p, ok := event.GetSystemPreferencesProperties(); ok {
		env.systemPreferencesProperties = p
	}
	if c, ok := event.GetVirtualHIDKeyboardConfiguration(); ok {
		env.virtualHIDKeyboardConfiguration = c
	}
	if eventType == types.KeyDown {
		if v, ok := event.GetSetVariable(); ok {
			env.setVariable(v)
		}
	}
}

func (q *Queue) ClearEvents() {
	q.entries = nil
	q.timeStampDelay = 0
}

// GetFrontEntry returns nil if the queue is empty. The pointer is valid
// until the queue is modified.
func (q *Queue) GetFrontEntry() *Entry {
	if len(q.entries) == 0 {
		return nil
	}
	return &q.entries[0]
}

// EraseFrontEvent removes the oldest entry. The time stamp delay is reset
// once the queue is drained.
func (q *Queue) EraseFrontEvent() {
	if len(q.entries) == 0 {
		return
	}
	q.entries[0] = Entry{}
	q.entries = q.entries[1:]
	if len(q.entries) == 0 {
		q.entries = nil
		q.timeStampDelay = 0
	}
}

func (q *Queue) Empty() bool {
	return len(q.entries) == 0
}

func (q *Queue) Len() int {
	return len(q.entries)
}

func (q *Queue) GetEntries() []Entry {
	return slices.Clone(q.entries)
}

func (q *Queue) GetModifierFlagManager() *modifierflag.Manager {
	return q.modifierFlagManager
}

func (q *Queue) EraseAllActiveModifierFlags(deviceID types.DeviceID) {
	q.modifierFlagManager.EraseAllActiveModifierFlags(deviceID)
}

func (q *Queue) EraseAllActiveModifierFlagsExceptLockAndSticky(deviceID types.DeviceID) {
	q.modifierFlagManager.EraseAllActiveModifierFlagsExceptLockAndSticky(deviceID)
}

func (q *Queue) GetPointingButtonManager() *pointingbutton.Manager {
	return q.pointingButtonManager
}

func (q *Queue) EraseAllActivePointingButtons(deviceID types.DeviceID) {
	q.pointingButtonManager.EraseAllActivePointingButtons(deviceID)
}

func (q *Queue) GetManipulatorEnvironment() *ManipulatorEnvironment {
	return q.manipulatorEnvironment
}

func (q *Queue) GetTimeStampDelay() types.AbsoluteTimeDuration {
	return q.timeStampDelay
}

// IncreaseTimeStampDelay shifts entries emplaced from now on. Entries
// already in the queue keep their time stamps.
func (q *Queue) IncreaseTimeStampDelay(d types.AbsoluteTimeDuration) {
	q.timeStampDelay += d
}

// NeedsSwap reports whether e2 has to be moved in front of e1.
//
// Some devices send a modifier and a key in the same HID report, and the
// order of the values in the report is not defined. Key downs at the same
// time stamp are ordered modifiers first, key ups modifiers last.
func NeedsSwap(e1, e2 Entry) bool {
	if e1.eventTimeStamp.GetTimeStamp() != e2.eventTimeStamp.GetTimeStamp() {
		return false
	}

	m1, ok := e1.event.GetMomentarySwitchEvent()
	if !ok {
		return false
	}
	m2, ok := e2.event.GetMomentarySwitchEvent()
	if !ok {
		return false
	}
	if !m1.Valid() || !m2.Valid() {
		return false
	}

	modifier1 := m1.IsModifierFlag()
	modifier2 := m2.IsModifierFlag()
	switch {
	case !modifier1 && modifier2:
		return e2.eventType == types.KeyDown
	case modifier1 && !modifier2:
		return e1.eventType == types.KeyUp
	}
	return false
}
