// Package evdevsource turns Linux evdev input events into raw HID values.
package evdevsource

import (
	"syscall"

	"github.com/guettli/eventqueue/pkg/hid"
	"github.com/guettli/eventqueue/pkg/types"
	"github.com/holoplot/go-evdev"
)

const (
	UP     = 0
	DOWN   = 1
	REPEAT = 2
)

// Linux key codes to usages of the keyboard_or_keypad page.
var keyboardUsages = map[evdev.EvCode]hid.Usage{
	evdev.KEY_A:          0x04,
	evdev.KEY_B:          0x05,
	evdev.KEY_C:          0x06,
	evdev.KEY_D:          0x07,
	evdev.KEY_E:          0x08,
	evdev.KEY_F:          0x09,
	evdev.KEY_G:          0x0a,
	evdev.KEY_H:          0x0b,
	evdev.KEY_I:          0x0c,
	evdev.KEY_J:          0x0d,
	evdev.KEY_K:          0x0e,
	evdev.KEY_L:          0x0f,
	evdev.KEY_M:          0x10,
	evdev.KEY_N:          0x11,
	evdev.KEY_O:          0x12,
	evdev.KEY_P:          0x13,
	evdev.KEY_Q:          0x14,
	evdev.KEY_R:          0x15,
	evdev.KEY_S:          0x16,
	evdev.KEY_T:          0x17,
	evdev.KEY_U:          0x18,
	evdev.KEY_V:          0x19,
	evdev.KEY_W:          0x1a,
	evdev.KEY_X:          0x1b,
	evdev.KEY_Y:          0x1c,
	evdev.KEY_Z:          0x1d,
	evdev.KEY_1:          0x1e,
	evdev.KEY_2:          0x1f,
	evdev.KEY_3:          0x20,
	evdev.KEY_4:          0x21,
	evdev.KEY_5:          0x22,
	evdev.KEY_6:          0x23,
	evdev.KEY_7:          0x24,
	evdev.KEY_8:          0x25,
	evdev.KEY_9:          0x26,
	evdev.KEY_0:          0x27,
	evdev.KEY_ENTER:      0x28,
	evdev.KEY_ESC:        0x29,
	evdev.KEY_BACKSPACE:  0x2a,
	evdev.KEY_TAB:        0x2b,
	evdev.KEY_SPACE:      0x2c,
	evdev.KEY_MINUS:      0x2d,
	evdev.KEY_EQUAL:      0x2e,
	evdev.KEY_LEFTBRACE:  0x2f,
	evdev.KEY_RIGHTBRACE: 0x30,
	evdev.KEY_BACKSLASH:  0x31,
	evdev.KEY_SEMICOLON:  0x33,
	evdev.KEY_APOSTROPHE: 0x34,
	evdev.KEY_GRAVE:      0x35,
	evdev.KEY_COMMA:      0x36,
	evdev.KEY_DOT:        0x37,
	evdev.KEY_SLASH:      0x38,
	evdev.KEY_CAPSLOCK:   0x39,
	evdev.KEY_F1:         0x3a,
	evdev.KEY_F2:         0x3b,
	evdev.KEY_F3:         0x3c,
	evdev.KEY_F4:         0x3d,
	evdev.KEY_F5:         0x3e,
	evdev.KEY_F6:         0x3f,
	evdev.KEY_F7:         0x40,
	evdev.KEY_F8:         0x41,
	evdev.KEY_F9:         0x42,
	evdev.KEY_F10:        0x43,
	evdev.KEY_F11:        0x44,
	evdev.KEY_F12:        0x45,
	evdev.KEY_SYSRQ:      0x46,
	evdev.KEY_SCROLLLOCK: 0x47,
	evdev.KEY_PAUSE:      0x48,
	evdev.KEY_INSERT:     0x49,
	evdev.KEY_HOME:       0x4a,
	evdev.KEY_PAGEUP:     0x4b,
	evdev.KEY_DELETE:     0x4c,
	evdev.KEY_END:        0x4d,
	evdev.KEY_PAGEDOWN:   0x4e,
	evdev.KEY_RIGHT:      0x4f,
	evdev.KEY_LEFT:       0x50,
	evdev.KEY_DOWN:       0x51,
	evdev.KEY_UP:         0x52,
	evdev.KEY_NUMLOCK:    0x53,
	evdev.KEY_KPSLASH:    0x54,
	evdev.KEY_KPASTERISK: 0x55,
	evdev.KEY_KPMINUS:    0x56,
	evdev.KEY_KPPLUS:     0x57,
	evdev.KEY_KPENTER:    0x58,
	evdev.KEY_KP1:        0x59,
	evdev.KEY_KP2:        0x5a,
	evdev.KEY_KP3:        0x5b,
	evdev.KEY_KP4:        0x5c,
	evdev.KEY_KP5:        0x5d,
	evdev.KEY_KP6:        0x5e,
	evdev.KEY_KP7:        0x5f,
	evdev.KEY_KP8:        0x60,
	evdev.KEY_KP9:        0x61,
	evdev.KEY_KP0:        0x62,
	evdev.KEY_KPDOT:      0x63,
	evdev.KEY_102ND:      0x64,
	evdev.KEY_COMPOSE:    0x65,
	evdev.KEY_KPEQUAL:    0x67,
	evdev.KEY_F13:        0x68,
	evdev.KEY_F14:        0x69,
	evdev.KEY_F15:        0x6a,
	evdev.KEY_F16:        0x6b,
	evdev.KEY_F17:        0x6c,
	evdev.KEY_F18:        0x6d,
	evdev.KEY_F19:        0x6e,
	evdev.KEY_F20:        0x6f,
	evdev.KEY_F21:        0x70,
	evdev.KEY_F22:        0x71,
	evdev.KEY_F23:        0x72,
	evdev.KEY_F24:        0x73,
	evdev.KEY_LEFTCTRL:   0xe0,
	evdev.KEY_LEFTSHIFT:  0xe1,
	evdev.KEY_LEFTALT:    0xe2,
	evdev.KEY_LEFTMETA:   0xe3,
	evdev.KEY_RIGHTCTRL:  0xe4,
	evdev.KEY_RIGHTSHIFT: 0xe5,
	evdev.KEY_RIGHTALT:   0xe6,
	evdev.KEY_RIGHTMETA:  0xe7,
}

var consumerUsages = map[evdev.EvCode]hid.Usage{
	evdev.KEY_POWER:          hid.UsageConsumerPower,
	evdev.KEY_BRIGHTNESSUP:   hid.UsageConsumerDisplayBrightnessIncrement,
	evdev.KEY_BRIGHTNESSDOWN: hid.UsageConsumerDisplayBrightnessDecrement,
	evdev.KEY_FASTFORWARD:    hid.UsageConsumerFastForward,
	evdev.KEY_REWIND:         hid.UsageConsumerRewind,
	evdev.KEY_NEXTSONG:       hid.UsageConsumerScanNextTrack,
	evdev.KEY_PREVIOUSSONG:   hid.UsageConsumerScanPreviousTrack,
	evdev.KEY_STOPCD:         hid.UsageConsumerStop,
	evdev.KEY_EJECTCD:        hid.UsageConsumerEject,
	evdev.KEY_PLAYPAUSE:      hid.UsageConsumerPlayOrPause,
	evdev.KEY_MUTE:           hid.UsageConsumerMute,
	evdev.KEY_VOLUMEUP:       hid.UsageConsumerVolumeIncrement,
	evdev.KEY_VOLUMEDOWN:     hid.UsageConsumerVolumeDecrement,
	evdev.KEY_CALC:           hid.UsageConsumerALCalculator,
	evdev.KEY_SCREENLOCK:     hid.UsageConsumerALTerminalLockOrScreensaver,
	evdev.KEY_SEARCH:         hid.UsageConsumerACSearch,
	evdev.KEY_HOMEPAGE:       hid.UsageConsumerACHome,
	evdev.KEY_BACK:           hid.UsageConsumerACBack,
	evdev.KEY_FORWARD:        hid.UsageConsumerACForward,
}

// Mouse buttons and game pad buttons share the button page.
var buttonUsages = map[evdev.EvCode]hid.Usage{
	evdev.BTN_LEFT:    1,
	evdev.BTN_RIGHT:   2,
	evdev.BTN_MIDDLE:  3,
	evdev.BTN_SIDE:    4,
	evdev.BTN_EXTRA:   5,
	evdev.BTN_FORWARD: 6,
	evdev.BTN_BACK:    7,
	evdev.BTN_TASK:    8,
	evdev.BTN_SOUTH:   1,
	evdev.BTN_EAST:    2,
	evdev.BTN_C:       3,
	evdev.BTN_NORTH:   4,
	evdev.BTN_WEST:    5,
	evdev.BTN_Z:       6,
	evdev.BTN_TL:      7,
	evdev.BTN_TR:      8,
	evdev.BTN_TL2:     9,
	evdev.BTN_TR2:     10,
	evdev.BTN_SELECT:  11,
	evdev.BTN_START:   12,
	evdev.BTN_MODE:    13,
	evdev.BTN_THUMBL:  14,
	evdev.BTN_THUMBR:  15,
}

var dpadUsages = map[evdev.EvCode]hid.Usage{
	evdev.BTN_DPAD_UP:    hid.UsageGenericDesktopDpadUp,
	evdev.BTN_DPAD_DOWN:  hid.UsageGenericDesktopDpadDown,
	evdev.BTN_DPAD_RIGHT: hid.UsageGenericDesktopDpadRight,
	evdev.BTN_DPAD_LEFT:  hid.UsageGenericDesktopDpadLeft,
}

// TimeStamp converts the kernel time of an event to microseconds since
// the epoch.
func TimeStamp(tv syscall.Timeval) types.AbsoluteTimePoint {
	return types.AbsoluteTimePoint(tv.Sec*1_000_000 + tv.Usec)
}

func timeStampToTimeval(t types.AbsoluteTimePoint) syscall.Timeval {
	return syscall.Timeval{
		Sec:  int64(t / 1_000_000),
		Usec: int64(t % 1_000_000),
	}
}

// ToHIDValues converts a single evdev event. Events without a HID
// counterpart, key repeats and the hat switch axes return nil. The hat
// switch needs both axes and is handled by the Batcher.
func ToHIDValues(ev evdev.InputEvent) []hid.Value {
	timeStamp := uint64(TimeStamp(ev.Time))
	value := func(page hid.UsagePage, usage hid.Usage) []hid.Value {
		return []hid.Value{hid.NewValue(timeStamp, int64(ev.Value), page, usage)}
	}

	switch ev.Type {
	case evdev.EV_KEY:
		if ev.Value == REPEAT {
			return nil
		}
		if usage, ok := keyboardUsages[ev.Code]; ok {
			return value(hid.UsagePageKeyboardOrKeypad, usage)
		}
		if usage, ok := consumerUsages[ev.Code]; ok {
			return value(hid.UsagePageConsumer, usage)
		}
		if usage, ok := buttonUsages[ev.Code]; ok {
			return value(hid.UsagePageButton, usage)
		}
		if usage, ok := dpadUsages[ev.Code]; ok {
			return value(hid.UsagePageGenericDesktop, usage)
		}
		if ev.Code == evdev.KEY_FN {
			return value(hid.UsagePageAppleVendorTopCase, hid.UsageAppleVendorTopCaseKeyboardFn)
		}
	case evdev.EV_REL:
		switch ev.Code {
		case evdev.REL_X:
			return value(hid.UsagePageGenericDesktop, hid.UsageGenericDesktopX)
		case evdev.REL_Y:
			return value(hid.UsagePageGenericDesktop, hid.UsageGenericDesktopY)
		case evdev.REL_WHEEL:
			return value(hid.UsagePageGenericDesktop, hid.UsageGenericDesktopWheel)
		case evdev.REL_HWHEEL:
			return value(hid.UsagePageConsumer, hid.UsageConsumerACPan)
		}
	case evdev.EV_LED:
		if ev.Code == evdev.LED_CAPSL {
			return value(hid.UsagePageLeds, hid.UsageLedCapsLock)
		}
	}
	return nil
}

// hatSwitchValue combines the two hat axes (-1, 0, 1 each) into the HID
// hat switch value: 0 is north, counting clockwise up to 7. Neutral is 8.
func hatSwitchValue(x, y int32) int64 {
	switch {
	case x == 0 && y < 0:
		return 0
	case x > 0 && y < 0:
		return 1
	case x > 0 && y == 0:
		return 2
	case x > 0 && y > 0:
		return 3
	case x == 0 && y > 0:
		return 4
	case x < 0 && y > 0:
		return 5
	case x < 0 && y == 0:
		return 6
	case x < 0 && y < 0:
		return 7
	}
	return 8
}
