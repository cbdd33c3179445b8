package eventqueue

import (
	"fmt"
	"hash/fnv"
	"slices"

	"github.com/guettli/eventqueue/pkg/hid"
	"github.com/guettli/eventqueue/pkg/types"
)

type Type int

const (
	TypeNone Type = iota
	TypeMomentarySwitchEvent
	TypePointingMotion
	TypeCapsLockStateChanged
	TypeShellCommand
	TypeSelectInputSource
	TypeSetVariable
	TypeFrontmostApplicationChanged
	TypeInputSourceChanged
	TypeSystemPreferencesPropertiesChanged
	TypeVirtualHIDKeyboardConfigurationChanged
	TypeDeviceKeysAndPointingButtonsAreReleased
)

var typeNames = map[Type]string{
	TypeNone:                                    "none",
	TypeMomentarySwitchEvent:                    "momentary_switch_event",
	TypePointingMotion:                          "pointing_motion",
	TypeCapsLockStateChanged:                    "caps_lock_state_changed",
	TypeShellCommand:                            "shell_command",
	TypeSelectInputSource:                       "select_input_source",
	TypeSetVariable:                             "set_variable",
	TypeFrontmostApplicationChanged:             "frontmost_application_changed",
	TypeInputSourceChanged:                      "input_source_changed",
	TypeSystemPreferencesPropertiesChanged:      "system_preferences_properties_changed",
	TypeVirtualHIDKeyboardConfigurationChanged:  "virtual_hid_keyboard_configuration_changed",
	TypeDeviceKeysAndPointingButtonsAreReleased: "device_keys_and_pointing_buttons_are_released",
}

func (t Type) String() string {
	name, ok := typeNames[t]
	if !ok {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return name
}

func MakeType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("%q: %w", name, ErrUnknownEventType)
}

// Payload types which have no own type in pkg/types.
type (
	CapsLockState         int64
	ShellCommand          string
	InputSourceSpecifiers []types.InputSourceSpecifier
)

// Event is one semantic input occurrence. The payload type depends on
// the Type, see GetIf. The zero value has TypeNone.
type Event struct {
	typ   Type
	value any
}

func NewMomentarySwitchEvent(e types.MomentarySwitchEvent) Event {
	return Event{typ: TypeMomentarySwitchEvent, value: e}
}

func NewPointingMotionEvent(m types.PointingMotion) Event {
	return Event{typ: TypePointingMotion, value: m}
}

// MakeCapsLockStateChangedEvent takes 1 for "caps lock on" and 0 for off.
// Other non-zero values are stored as 1.
func MakeCapsLockStateChangedEvent(state int64) Event {
	if state != 0 {
		state = 1
	}
	return Event{typ: TypeCapsLockStateChanged, value: CapsLockState(state)}
}

func MakeShellCommandEvent(command string) Event {
	return Event{typ: TypeShellCommand, value: ShellCommand(command)}
}

func MakeSelectInputSourceEvent(specifiers []types.InputSourceSpecifier) Event {
	return Event{typ: TypeSelectInputSource, value: InputSourceSpecifiers(slices.Clone(specifiers))}
}

func MakeSetVariableEvent(v types.SetVariable) Event {
	return Event{typ: TypeSetVariable, value: v}
}

func MakeFrontmostApplicationChangedEvent(a types.Application) Event {
	return Event{typ: TypeFrontmostApplicationChanged, value: a}
}

func MakeInputSourceChangedEvent(p types.InputSourceProperties) Event {
	p.Languages = slices.Clone(p.Languages)
	return Event{typ: TypeInputSourceChanged, value: p}
}

func MakeSystemPreferencesPropertiesChangedEvent(p types.SystemPreferencesProperties) Event {
	return Event{typ: TypeSystemPreferencesPropertiesChanged, value: p}
}

func MakeVirtualHIDKeyboardConfigurationChangedEvent(c types.VirtualHIDKeyboardConfiguration) Event {
	return Event{typ: TypeVirtualHIDKeyboardConfigurationChanged, value: c}
}

func MakeDeviceKeysAndPointingButtonsAreReleasedEvent() Event {
	return Event{typ: TypeDeviceKeysAndPointingButtonsAreReleased}
}

func (e Event) GetType() Type {
	return e.typ
}

// GetIf returns the payload if it has type T, nil otherwise.
func GetIf[T any](e Event) *T {
	v, ok := e.value.(T)
	if !ok {
		return nil
	}
	return &v
}

func (e Event) GetMomentarySwitchEvent() (types.MomentarySwitchEvent, bool) {
	if v := GetIf[types.MomentarySwitchEvent](e); v != nil {
		return *v, true
	}
	return types.MomentarySwitchEvent{}, false
}

func (e Event) usageOf(usagePage hid.UsagePage) (hid.Usage, bool) {
	m, ok := e.GetMomentarySwitchEvent()
	if !ok || m.UsagePair().UsagePage != usagePage {
		return hid.UsageUndefined, false
	}
	return m.UsagePair().Usage, true
}

func (e Event) GetKeyCode() (hid.Usage, bool) {
	return e.usageOf(hid.UsagePageKeyboardOrKeypad)
}

func (e Event) GetConsumerKeyCode() (hid.Usage, bool) {
	return e.usageOf(hid.UsagePageConsumer)
}

func (e Event) GetPointingButton() (hid.Usage, bool) {
	return e.usageOf(hid.UsagePageButton)
}

// GetPointingMotion returns the zero motion for other event types.
func (e Event) GetPointingMotion() types.PointingMotion {
	if v := GetIf[types.PointingMotion](e); v != nil {
		return *v
	}
	return types.PointingMotion{}
}

func (e Event) GetIntegerValue() (int64, bool) {
	if v := GetIf[CapsLockState](e); v != nil {
		return int64(*v), true
	}
	return 0, false
}

func (e Event) GetShellCommand() (string, bool) {
	if v := GetIf[ShellCommand](e); v != nil {
		return string(*v), true
	}
	return "", false
}

func (e Event) GetInputSourceSpecifiers() ([]types.InputSourceSpecifier, bool) {
	if v := GetIf[InputSourceSpecifiers](e); v != nil {
		return slices.Clone(*v), true
	}
	return nil, false
}

func (e Event) GetSetVariable() (types.SetVariable, bool) {
	if v := GetIf[types.SetVariable](e); v != nil {
		return *v, true
	}
	return types.SetVariable{}, false
}

func (e Event) GetFrontmostApplication() (types.Application, bool) {
	if v := GetIf[types.Application](e); v != nil {
		return *v, true
	}
	return types.Application{}, false
}

func (e Event) GetInputSourceProperties() (types.InputSourceProperties, bool) {
	if v := GetIf[types.InputSourceProperties](e); v != nil {
		p := *v
		p.Languages = slices.Clone(p.Languages)
		return p, true
	}
	return types.InputSourceProperties{}, false
}

func (e Event) GetSystemPreferencesProperties() (types.SystemPreferencesProperties, bool) {
	if v := GetIf[types.SystemPreferencesProperties](e); v != nil {
		return *v, true
	}
	return types.SystemPreferencesProperties{}, false
}

func (e Event) GetVirtualHIDKeyboardConfiguration() (types.VirtualHIDKeyboardConfiguration, bool) {
	if v := GetIf[types.VirtualHIDKeyboardConfiguration](e); v != nil {
		return *v, true
	}
	return types.VirtualHIDKeyboardConfiguration{}, false
}

func (e Event) Equal(other Event) bool {
	if e.typ != other.typ {
		return false
	}
	switch v := e.value.(type) {
	case InputSourceSpecifiers:
		o, ok := other.value.(InputSourceSpecifiers)
		return ok && slices.Equal(v, o)
	case types.InputSourceProperties:
		o, ok := other.value.(types.InputSourceProperties)
		return ok && v.Equal(o)
	case types.SetVariable:
		o, ok := other.value.(types.SetVariable)
		return ok && v.Equal(o)
	}
	return e.value == other.value
}

// Hash is consistent with Equal: the json form holds every field.
func (e Event) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(e.ToJSON()))
	return h.Sum64()
}

func (e Event) String() string {
	return e.ToJSON()
}
