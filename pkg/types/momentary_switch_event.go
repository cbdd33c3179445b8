package types

import (
	"fmt"

	"github.com/guettli/eventqueue/pkg/hid"
)

// MomentarySwitchEvent is a key, consumer key or pointing button.
// The zero value is an invalid event.
type MomentarySwitchEvent struct {
	usagePair hid.UsagePair
}

func NewMomentarySwitchEvent(usagePage hid.UsagePage, usage hid.Usage) MomentarySwitchEvent {
	if IsMomentarySwitchTarget(usagePage, usage) {
		return MomentarySwitchEvent{usagePair: hid.NewUsagePair(usagePage, usage)}
	}
	return MomentarySwitchEvent{}
}

func MomentarySwitchEventFromModifierFlag(flag ModifierFlag) MomentarySwitchEvent {
	switch flag {
	case ModifierFlagCapsLock:
		return NewMomentarySwitchEvent(hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardCapsLock)
	case ModifierFlagLeftControl:
		return NewMomentarySwitchEvent(hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardLeftControl)
	case ModifierFlagLeftShift:
		return NewMomentarySwitchEvent(hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardLeftShift)
	case ModifierFlagLeftOption:
		return NewMomentarySwitchEvent(hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardLeftAlt)
	case ModifierFlagLeftCommand:
		return NewMomentarySwitchEvent(hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardLeftGui)
	case ModifierFlagRightControl:
		return NewMomentarySwitchEvent(hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardRightControl)
	case ModifierFlagRightShift:
		return NewMomentarySwitchEvent(hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardRightShift)
	case ModifierFlagRightOption:
		return NewMomentarySwitchEvent(hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardRightAlt)
	case ModifierFlagRightCommand:
		return NewMomentarySwitchEvent(hid.UsagePageKeyboardOrKeypad, hid.UsageKeyboardRightGui)
	case ModifierFlagFn:
		return NewMomentarySwitchEvent(hid.UsagePageAppleVendorTopCase, hid.UsageAppleVendorTopCaseKeyboardFn)
	}
	return MomentarySwitchEvent{}
}

func (e MomentarySwitchEvent) UsagePair() hid.UsagePair {
	return e.usagePair
}

func (e MomentarySwitchEvent) Valid() bool {
	return e.usagePair.UsagePage != hid.UsagePageUndefined &&
		e.usagePair.Usage != hid.UsageUndefined
}

// MakeModifierFlag returns false for caps lock: its state follows the
// caps lock LED, not the key.
func (e MomentarySwitchEvent) MakeModifierFlag() (ModifierFlag, bool) {
	usage := e.usagePair.Usage
	switch e.usagePair.UsagePage {
	case hid.UsagePageKeyboardOrKeypad:
		switch usage {
		case hid.UsageKeyboardLeftControl:
			return ModifierFlagLeftControl, true
		case hid.UsageKeyboardLeftShift:
			return ModifierFlagLeftShift, true
		case hid.UsageKeyboardLeftAlt:
			return ModifierFlagLeftOption, true
		case hid.UsageKeyboardLeftGui:
			return ModifierFlagLeftCommand, true
		case hid.UsageKeyboardRightControl:
			return ModifierFlagRightControl, true
		case hid.UsageKeyboardRightShift:
			return ModifierFlagRightShift, true
		case hid.UsageKeyboardRightAlt:
			return ModifierFlagRightOption, true
		case hid.UsageKeyboardRightGui:
			return ModifierFlagRightCommand, true
		}
	case hid.UsagePageAppleVendorKeyboard:
		if usage == hid.UsageAppleVendorKeyboardFunction {
			return ModifierFlagFn, true
		}
	case hid.UsagePageAppleVendorTopCase:
		if usage == hid.UsageAppleVendorTopCaseKeyboardFn {
			return ModifierFlagFn, true
		}
	}
	return ModifierFlagZero, false
}

func (e MomentarySwitchEvent) IsModifierFlag() bool {
	_, ok := e.MakeModifierFlag()
	return ok
}

func (e MomentarySwitchEvent) IsPointingButton() bool {
	return e.usagePair.UsagePage == hid.UsagePageButton
}

func (e MomentarySwitchEvent) String() string {
	key, name := e.JSONKeyAndName()
	if key == "" {
		return "invalid"
	}
	if name == "" {
		return fmt.Sprintf("%s:%d", key, int32(e.usagePair.Usage))
	}
	return fmt.Sprintf("%s:%s", key, name)
}

func IsMomentarySwitchTarget(usagePage hid.UsagePage, usage hid.Usage) bool {
	switch usagePage {
	case hid.UsagePageKeyboardOrKeypad:
		return hid.UsageKeyboardA <= usage && usage < hid.UsageKeyboardReserved
	case hid.UsagePageConsumer:
		_, ok := consumerKeyCodeNames[usage]
		return ok
	case hid.UsagePageAppleVendorKeyboard:
		_, ok := appleVendorKeyboardKeyCodeNames[usage]
		return ok
	case hid.UsagePageAppleVendorTopCase:
		_, ok := appleVendorTopCaseKeyCodeNames[usage]
		return ok
	case hid.UsagePageButton:
		return hid.UsageButton1 <= usage && usage <= maxPointingButton
	case hid.UsagePageGenericDesktop:
		return hid.UsageGenericDesktopDpadUp <= usage && usage <= hid.UsageGenericDesktopDpadLeft
	}
	return false
}
