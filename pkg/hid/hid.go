package hid

import "fmt"

type UsagePage int32

type Usage int32

const (
	UsagePageUndefined           UsagePage = 0x00
	UsagePageGenericDesktop      UsagePage = 0x01
	UsagePageKeyboardOrKeypad    UsagePage = 0x07
	UsagePageLeds                UsagePage = 0x08
	UsagePageButton              UsagePage = 0x09
	UsagePageConsumer            UsagePage = 0x0C
	UsagePageAppleVendorTopCase  UsagePage = 0xFF
	UsagePageAppleVendorKeyboard UsagePage = 0xFF01
)

const UsageUndefined Usage = 0

// generic_desktop
const (
	UsageGenericDesktopX         Usage = 0x30
	UsageGenericDesktopY         Usage = 0x31
	UsageGenericDesktopZ         Usage = 0x32
	UsageGenericDesktopRz        Usage = 0x35
	UsageGenericDesktopWheel     Usage = 0x38
	UsageGenericDesktopHatSwitch Usage = 0x39
	UsageGenericDesktopDpadUp    Usage = 0x90
	UsageGenericDesktopDpadDown  Usage = 0x91
	UsageGenericDesktopDpadRight Usage = 0x92
	UsageGenericDesktopDpadLeft  Usage = 0x93
)

// keyboard_or_keypad
const (
	UsageKeyboardA                 Usage = 0x04
	UsageKeyboardB                 Usage = 0x05
	UsageKeyboardReturnOrEnter     Usage = 0x28
	UsageKeyboardEscape            Usage = 0x29
	UsageKeyboardDeleteOrBackspace Usage = 0x2A
	UsageKeyboardTab               Usage = 0x2B
	UsageKeyboardSpacebar          Usage = 0x2C
	UsageKeyboardCapsLock          Usage = 0x39
	UsageKeyboardLeftControl       Usage = 0xE0
	UsageKeyboardLeftShift         Usage = 0xE1
	UsageKeyboardLeftAlt           Usage = 0xE2
	UsageKeyboardLeftGui           Usage = 0xE3
	UsageKeyboardRightControl      Usage = 0xE4
	UsageKeyboardRightShift        Usage = 0xE5
	UsageKeyboardRightAlt          Usage = 0xE6
	UsageKeyboardRightGui          Usage = 0xE7
	UsageKeyboardReserved          Usage = 0xE8
)

// leds
const (
	UsageLedNumLock  Usage = 0x01
	UsageLedCapsLock Usage = 0x02
)

// button
const (
	UsageButton1  Usage = 0x01
	UsageButton2  Usage = 0x02
	UsageButton3  Usage = 0x03
	UsageButton32 Usage = 0x20
)

// consumer
const (
	UsageConsumerPower                       Usage = 0x30
	UsageConsumerMenu                        Usage = 0x40
	UsageConsumerDisplayBrightnessIncrement  Usage = 0x6F
	UsageConsumerDisplayBrightnessDecrement  Usage = 0x70
	UsageConsumerFastForward                 Usage = 0xB3
	UsageConsumerRewind                      Usage = 0xB4
	UsageConsumerScanNextTrack               Usage = 0xB5
	UsageConsumerScanPreviousTrack           Usage = 0xB6
	UsageConsumerStop                        Usage = 0xB7
	UsageConsumerEject                       Usage = 0xB8
	UsageConsumerPlayOrPause                 Usage = 0xCD
	UsageConsumerVoiceCommand                Usage = 0xCF
	UsageConsumerMute                        Usage = 0xE2
	UsageConsumerVolumeIncrement             Usage = 0xE9
	UsageConsumerVolumeDecrement             Usage = 0xEA
	UsageConsumerALCalculator                Usage = 0x192
	UsageConsumerALTerminalLockOrScreensaver Usage = 0x19E
	UsageConsumerACSearch                    Usage = 0x221
	UsageConsumerACHome                      Usage = 0x223
	UsageConsumerACBack                      Usage = 0x224
	UsageConsumerACForward                   Usage = 0x225
	UsageConsumerACPan                       Usage = 0x238
)

// apple_vendor_top_case
const (
	UsageAppleVendorTopCaseKeyboardFn       Usage = 0x03
	UsageAppleVendorTopCaseBrightnessUp     Usage = 0x04
	UsageAppleVendorTopCaseBrightnessDown   Usage = 0x05
	UsageAppleVendorTopCaseIlluminationUp   Usage = 0x08
	UsageAppleVendorTopCaseIlluminationDown Usage = 0x09
)

// apple_vendor_keyboard
const (
	UsageAppleVendorKeyboardSpotlight      Usage = 0x01
	UsageAppleVendorKeyboardDashboard      Usage = 0x02
	UsageAppleVendorKeyboardFunction       Usage = 0x03
	UsageAppleVendorKeyboardLaunchpad      Usage = 0x04
	UsageAppleVendorKeyboardExposeAll      Usage = 0x10
	UsageAppleVendorKeyboardExposeDesktop  Usage = 0x11
	UsageAppleVendorKeyboardBrightnessUp   Usage = 0x20
	UsageAppleVendorKeyboardBrightnessDown Usage = 0x21
	UsageAppleVendorKeyboardLanguage       Usage = 0x30
)

type UsagePair struct {
	UsagePage UsagePage
	Usage     Usage
}

func NewUsagePair(usagePage UsagePage, usage Usage) UsagePair {
	return UsagePair{UsagePage: usagePage, Usage: usage}
}

func (p UsagePair) String() string {
	return fmt.Sprintf("(0x%x,0x%x)", int32(p.UsagePage), int32(p.Usage))
}

// Value is one raw sample of a HID element.
type Value struct {
	TimeStamp    uint64
	IntegerValue int64
	UsagePage    UsagePage
	Usage        Usage
	LogicalMax   *int64
	LogicalMin   *int64
}

func NewValue(timeStamp uint64, integerValue int64, usagePage UsagePage, usage Usage) Value {
	return Value{
		TimeStamp:    timeStamp,
		IntegerValue: integerValue,
		UsagePage:    usagePage,
		Usage:        usage,
	}
}

func (v Value) ConformsTo(usagePage UsagePage, usage Usage) bool {
	return v.UsagePage == usagePage && v.Usage == usage
}

func (v Value) UsagePair() UsagePair {
	return UsagePair{UsagePage: v.UsagePage, Usage: v.Usage}
}
