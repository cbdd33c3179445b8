package types

import "fmt"

type ModifierFlag int

const (
	ModifierFlagZero ModifierFlag = iota
	ModifierFlagCapsLock
	ModifierFlagLeftControl
	ModifierFlagLeftShift
	ModifierFlagLeftOption
	ModifierFlagLeftCommand
	ModifierFlagRightControl
	ModifierFlagRightShift
	ModifierFlagRightOption
	ModifierFlagRightCommand
	ModifierFlagFn
)

var modifierFlagNames = []string{
	"zero",
	"caps_lock",
	"left_control",
	"left_shift",
	"left_option",
	"left_command",
	"right_control",
	"right_shift",
	"right_option",
	"right_command",
	"fn",
}

// AllModifierFlags lists every flag except zero.
var AllModifierFlags = []ModifierFlag{
	ModifierFlagCapsLock,
	ModifierFlagLeftControl,
	ModifierFlagLeftShift,
	ModifierFlagLeftOption,
	ModifierFlagLeftCommand,
	ModifierFlagRightControl,
	ModifierFlagRightShift,
	ModifierFlagRightOption,
	ModifierFlagRightCommand,
	ModifierFlagFn,
}

func (f ModifierFlag) String() string {
	if f < 0 || int(f) >= len(modifierFlagNames) {
		return fmt.Sprintf("modifier_flag(%d)", int(f))
	}
	return modifierFlagNames[f]
}
