package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/guettli/eventqueue/pkg/hid"
)

const maxPointingButton hid.Usage = 0xFF

// json keys of momentary_switch_event
const (
	KeyCodeJSONKey                    = "key_code"
	ConsumerKeyCodeJSONKey            = "consumer_key_code"
	AppleVendorKeyboardKeyCodeJSONKey = "apple_vendor_keyboard_key_code"
	AppleVendorTopCaseKeyCodeJSONKey  = "apple_vendor_top_case_key_code"
	PointingButtonJSONKey             = "pointing_button"
	GenericDesktopJSONKey             = "generic_desktop"
)

var (
	ErrUnknownMomentarySwitchKey  = errors.New("unknown momentary_switch_event key")
	ErrUnknownMomentarySwitchName = errors.New("unknown momentary_switch_event name")
)

type nameUsage struct {
	name  string
	usage hid.Usage
}

var keyCodeTable = []nameUsage{
	{"return_or_enter", 0x28},
	{"escape", 0x29},
	{"delete_or_backspace", 0x2A},
	{"tab", 0x2B},
	{"spacebar", 0x2C},
	{"hyphen", 0x2D},
	{"equal_sign", 0x2E},
	{"open_bracket", 0x2F},
	{"close_bracket", 0x30},
	{"backslash", 0x31},
	{"non_us_pound", 0x32},
	{"semicolon", 0x33},
	{"quote", 0x34},
	{"grave_accent_and_tilde", 0x35},
	{"comma", 0x36},
	{"period", 0x37},
	{"slash", 0x38},
	{"caps_lock", 0x39},
	{"print_screen", 0x46},
	{"scroll_lock", 0x47},
	{"pause", 0x48},
	{"insert", 0x49},
	{"home", 0x4A},
	{"page_up", 0x4B},
	{"delete_forward", 0x4C},
	{"end", 0x4D},
	{"page_down", 0x4E},
	{"right_arrow", 0x4F},
	{"left_arrow", 0x50},
	{"down_arrow", 0x51},
	{"up_arrow", 0x52},
	{"keypad_num_lock", 0x53},
	{"keypad_slash", 0x54},
	{"keypad_asterisk", 0x55},
	{"keypad_hyphen", 0x56},
	{"keypad_plus", 0x57},
	{"keypad_enter", 0x58},
	{"keypad_period", 0x63},
	{"non_us_backslash", 0x64},
	{"application", 0x65},
	{"power", 0x66},
	{"keypad_equal_sign", 0x67},
	{"execute", 0x74},
	{"help", 0x75},
	{"menu", 0x76},
	{"select", 0x77},
	{"stop", 0x78},
	{"again", 0x79},
	{"undo", 0x7A},
	{"cut", 0x7B},
	{"copy", 0x7C},
	{"paste", 0x7D},
	{"find", 0x7E},
	{"locking_caps_lock", 0x82},
	{"locking_num_lock", 0x83},
	{"locking_scroll_lock", 0x84},
	{"keypad_comma", 0x85},
	{"keypad_equal_sign_as400", 0x86},
	{"alternate_erase", 0x99},
	{"sys_req_or_attention", 0x9A},
	{"cancel", 0x9B},
	{"clear", 0x9C},
	{"prior", 0x9D},
	{"return", 0x9E},
	{"separator", 0x9F},
	{"out", 0xA0},
	{"oper", 0xA1},
	{"clear_or_again", 0xA2},
	{"cr_sel_or_props", 0xA3},
	{"ex_sel", 0xA4},
	{"left_control", hid.UsageKeyboardLeftControl},
	{"left_shift", hid.UsageKeyboardLeftShift},
	{"left_alt", hid.UsageKeyboardLeftAlt},
	{"left_gui", hid.UsageKeyboardLeftGui},
	{"right_control", hid.UsageKeyboardRightControl},
	{"right_shift", hid.UsageKeyboardRightShift},
	{"right_alt", hid.UsageKeyboardRightAlt},
	{"right_gui", hid.UsageKeyboardRightGui},
}

// accepted on input only
var keyCodeAliases = map[string]hid.Usage{
	"left_option":          hid.UsageKeyboardLeftAlt,
	"left_command":         hid.UsageKeyboardLeftGui,
	"right_option":         hid.UsageKeyboardRightAlt,
	"right_command":        hid.UsageKeyboardRightGui,
	"japanese_eisuu":       0x91, // lang2
	"japanese_kana":        0x90, // lang1
	"japanese_pc_nfer":     0x8B, // international5
	"japanese_pc_xfer":     0x8A, // international4
	"japanese_pc_katakana": 0x88, // international2
	"volume_up":            0x80,
	"volume_down":          0x81,
}

// names given as key_code which live on other usage pages
var keyCodeOtherUsagePages = map[string]hid.UsagePair{
	"mute":                         hid.NewUsagePair(hid.UsagePageConsumer, hid.UsageConsumerMute),
	"volume_decrement":             hid.NewUsagePair(hid.UsagePageConsumer, hid.UsageConsumerVolumeDecrement),
	"volume_increment":             hid.NewUsagePair(hid.UsagePageConsumer, hid.UsageConsumerVolumeIncrement),
	"display_brightness_decrement": hid.NewUsagePair(hid.UsagePageConsumer, hid.UsageConsumerDisplayBrightnessDecrement),
	"display_brightness_increment": hid.NewUsagePair(hid.UsagePageConsumer, hid.UsageConsumerDisplayBrightnessIncrement),
	"eject":                        hid.NewUsagePair(hid.UsagePageConsumer, hid.UsageConsumerEject),
	"fastforward":                  hid.NewUsagePair(hid.UsagePageConsumer, hid.UsageConsumerFastForward),
	"play_or_pause":                hid.NewUsagePair(hid.UsagePageConsumer, hid.UsageConsumerPlayOrPause),
	"rewind":                       hid.NewUsagePair(hid.UsagePageConsumer, hid.UsageConsumerRewind),
	"dashboard":                    hid.NewUsagePair(hid.UsagePageAppleVendorKeyboard, hid.UsageAppleVendorKeyboardDashboard),
	"launchpad":                    hid.NewUsagePair(hid.UsagePageAppleVendorKeyboard, hid.UsageAppleVendorKeyboardLaunchpad),
	"mission_control":              hid.NewUsagePair(hid.UsagePageAppleVendorKeyboard, hid.UsageAppleVendorKeyboardExposeAll),
	"fn":                           hid.NewUsagePair(hid.UsagePageAppleVendorTopCase, hid.UsageAppleVendorTopCaseKeyboardFn),
	"illumination_decrement":       hid.NewUsagePair(hid.UsagePageAppleVendorTopCase, hid.UsageAppleVendorTopCaseIlluminationDown),
	"illumination_increment":       hid.NewUsagePair(hid.UsagePageAppleVendorTopCase, hid.UsageAppleVendorTopCaseIlluminationUp),
}

var consumerKeyCodeTable = []nameUsage{
	{"power", hid.UsageConsumerPower},
	{"menu", hid.UsageConsumerMenu},
	{"display_brightness_increment", hid.UsageConsumerDisplayBrightnessIncrement},
	{"display_brightness_decrement", hid.UsageConsumerDisplayBrightnessDecrement},
	{"fast_forward", hid.UsageConsumerFastForward},
	{"rewind", hid.UsageConsumerRewind},
	{"scan_next_track", hid.UsageConsumerScanNextTrack},
	{"scan_previous_track", hid.UsageConsumerScanPreviousTrack},
	{"stop", hid.UsageConsumerStop},
	{"eject", hid.UsageConsumerEject},
	{"play_or_pause", hid.UsageConsumerPlayOrPause},
	{"voice_command", hid.UsageConsumerVoiceCommand},
	{"mute", hid.UsageConsumerMute},
	{"volume_increment", hid.UsageConsumerVolumeIncrement},
	{"volume_decrement", hid.UsageConsumerVolumeDecrement},
	{"al_calculator", hid.UsageConsumerALCalculator},
	{"al_terminal_lock_or_screensaver", hid.UsageConsumerALTerminalLockOrScreensaver},
	{"ac_search", hid.UsageConsumerACSearch},
	{"ac_home", hid.UsageConsumerACHome},
	{"ac_back", hid.UsageConsumerACBack},
	{"ac_forward", hid.UsageConsumerACForward},
}

var consumerKeyCodeAliases = map[string]hid.Usage{
	"dictation": hid.UsageConsumerVoiceCommand,
}

var appleVendorKeyboardKeyCodeTable = []nameUsage{
	{"spotlight", hid.UsageAppleVendorKeyboardSpotlight},
	{"dashboard", hid.UsageAppleVendorKeyboardDashboard},
	{"function", hid.UsageAppleVendorKeyboardFunction},
	{"launchpad", hid.UsageAppleVendorKeyboardLaunchpad},
	{"expose_all", hid.UsageAppleVendorKeyboardExposeAll},
	{"expose_desktop", hid.UsageAppleVendorKeyboardExposeDesktop},
	{"brightness_up", hid.UsageAppleVendorKeyboardBrightnessUp},
	{"brightness_down", hid.UsageAppleVendorKeyboardBrightnessDown},
	{"language", hid.UsageAppleVendorKeyboardLanguage},
}

var appleVendorTopCaseKeyCodeTable = []nameUsage{
	{"keyboard_fn", hid.UsageAppleVendorTopCaseKeyboardFn},
	{"brightness_up", hid.UsageAppleVendorTopCaseBrightnessUp},
	{"brightness_down", hid.UsageAppleVendorTopCaseBrightnessDown},
	{"illumination_up", hid.UsageAppleVendorTopCaseIlluminationUp},
	{"illumination_down", hid.UsageAppleVendorTopCaseIlluminationDown},
}

var genericDesktopTable = []nameUsage{
	{"dpad_up", hid.UsageGenericDesktopDpadUp},
	{"dpad_down", hid.UsageGenericDesktopDpadDown},
	{"dpad_right", hid.UsageGenericDesktopDpadRight},
	{"dpad_left", hid.UsageGenericDesktopDpadLeft},
}

var (
	keyCodeNames                    = map[hid.Usage]string{}
	keyCodeUsages                   = map[string]hid.Usage{}
	consumerKeyCodeNames            = map[hid.Usage]string{}
	consumerKeyCodeUsages           = map[string]hid.Usage{}
	appleVendorKeyboardKeyCodeNames = map[hid.Usage]string{}
	appleVendorKeyboardUsages       = map[string]hid.Usage{}
	appleVendorTopCaseKeyCodeNames  = map[hid.Usage]string{}
	appleVendorTopCaseUsages        = map[string]hid.Usage{}
	genericDesktopNames             = map[hid.Usage]string{}
	genericDesktopUsages            = map[string]hid.Usage{}
)

func init() {
	table := make([]nameUsage, 0, 200)
	for i := 0; i < 26; i++ {
		table = append(table, nameUsage{string(rune('a' + i)), hid.UsageKeyboardA + hid.Usage(i)})
	}
	for i := 1; i <= 9; i++ {
		table = append(table, nameUsage{strconv.Itoa(i), 0x1E + hid.Usage(i-1)})
	}
	table = append(table, nameUsage{"0", 0x27})
	for i := 1; i <= 12; i++ {
		table = append(table, nameUsage{fmt.Sprintf("f%d", i), 0x3A + hid.Usage(i-1)})
	}
	for i := 13; i <= 24; i++ {
		table = append(table, nameUsage{fmt.Sprintf("f%d", i), 0x68 + hid.Usage(i-13)})
	}
	for i := 1; i <= 9; i++ {
		table = append(table, nameUsage{fmt.Sprintf("keypad_%d", i), 0x59 + hid.Usage(i-1)})
	}
	table = append(table, nameUsage{"keypad_0", 0x62})
	for i := 1; i <= 9; i++ {
		table = append(table, nameUsage{fmt.Sprintf("international%d", i), 0x87 + hid.Usage(i-1)})
		table = append(table, nameUsage{fmt.Sprintf("lang%d", i), 0x90 + hid.Usage(i-1)})
	}
	table = append(table, keyCodeTable...)
	fill(table, keyCodeNames, keyCodeUsages)
	for name, usage := range keyCodeAliases {
		keyCodeUsages[name] = usage
	}

	fill(consumerKeyCodeTable, consumerKeyCodeNames, consumerKeyCodeUsages)
	for name, usage := range consumerKeyCodeAliases {
		consumerKeyCodeUsages[name] = usage
	}
	fill(appleVendorKeyboardKeyCodeTable, appleVendorKeyboardKeyCodeNames, appleVendorKeyboardUsages)
	fill(appleVendorTopCaseKeyCodeTable, appleVendorTopCaseKeyCodeNames, appleVendorTopCaseUsages)
	fill(genericDesktopTable, genericDesktopNames, genericDesktopUsages)
}

func fill(table []nameUsage, names map[hid.Usage]string, usages map[string]hid.Usage) {
	for _, nu := range table {
		if _, ok := names[nu.usage]; !ok {
			names[nu.usage] = nu.name
		}
		usages[nu.name] = nu.usage
	}
}

// JSONKeyAndName returns the json key and the usage name. The name is empty
// if the usage has no name; the key is empty for invalid events.
func (e MomentarySwitchEvent) JSONKeyAndName() (key string, name string) {
	usage := e.usagePair.Usage
	switch e.usagePair.UsagePage {
	case hid.UsagePageKeyboardOrKeypad:
		return KeyCodeJSONKey, keyCodeNames[usage]
	case hid.UsagePageConsumer:
		return ConsumerKeyCodeJSONKey, consumerKeyCodeNames[usage]
	case hid.UsagePageAppleVendorKeyboard:
		return AppleVendorKeyboardKeyCodeJSONKey, appleVendorKeyboardKeyCodeNames[usage]
	case hid.UsagePageAppleVendorTopCase:
		return AppleVendorTopCaseKeyCodeJSONKey, appleVendorTopCaseKeyCodeNames[usage]
	case hid.UsagePageButton:
		return PointingButtonJSONKey, fmt.Sprintf("button%d", int32(usage))
	case hid.UsagePageGenericDesktop:
		return GenericDesktopJSONKey, genericDesktopNames[usage]
	}
	return "", ""
}

func usagePageOfJSONKey(key string) (hid.UsagePage, error) {
	switch key {
	case KeyCodeJSONKey:
		return hid.UsagePageKeyboardOrKeypad, nil
	case ConsumerKeyCodeJSONKey:
		return hid.UsagePageConsumer, nil
	case AppleVendorKeyboardKeyCodeJSONKey:
		return hid.UsagePageAppleVendorKeyboard, nil
	case AppleVendorTopCaseKeyCodeJSONKey:
		return hid.UsagePageAppleVendorTopCase, nil
	case PointingButtonJSONKey:
		return hid.UsagePageButton, nil
	case GenericDesktopJSONKey:
		return hid.UsagePageGenericDesktop, nil
	}
	return hid.UsagePageUndefined, fmt.Errorf("%q: %w", key, ErrUnknownMomentarySwitchKey)
}

func MakeMomentarySwitchEventFromName(key string, name string) (MomentarySwitchEvent, error) {
	usagePage, err := usagePageOfJSONKey(key)
	if err != nil {
		return MomentarySwitchEvent{}, err
	}
	var usage hid.Usage
	ok := false
	switch usagePage {
	case hid.UsagePageKeyboardOrKeypad:
		if pair, found := keyCodeOtherUsagePages[name]; found {
			return NewMomentarySwitchEvent(pair.UsagePage, pair.Usage), nil
		}
		usage, ok = keyCodeUsages[name]
	case hid.UsagePageConsumer:
		usage, ok = consumerKeyCodeUsages[name]
	case hid.UsagePageAppleVendorKeyboard:
		usage, ok = appleVendorKeyboardUsages[name]
	case hid.UsagePageAppleVendorTopCase:
		usage, ok = appleVendorTopCaseUsages[name]
	case hid.UsagePageButton:
		if n, found := strings.CutPrefix(name, "button"); found {
			i, err := strconv.Atoi(n)
			if err == nil && i > 0 && hid.Usage(i) <= maxPointingButton {
				usage, ok = hid.Usage(i), true
			}
		}
	case hid.UsagePageGenericDesktop:
		usage, ok = genericDesktopUsages[name]
	}
	if !ok {
		return MomentarySwitchEvent{}, fmt.Errorf("%s %q: %w", key, name, ErrUnknownMomentarySwitchName)
	}
	return NewMomentarySwitchEvent(usagePage, usage), nil
}

func MakeMomentarySwitchEventFromNumber(key string, usage int64) (MomentarySwitchEvent, error) {
	usagePage, err := usagePageOfJSONKey(key)
	if err != nil {
		return MomentarySwitchEvent{}, err
	}
	if usage < 0 || usage > math.MaxInt32 || !IsMomentarySwitchTarget(usagePage, hid.Usage(usage)) {
		return MomentarySwitchEvent{}, fmt.Errorf("%s %d: %w", key, usage, ErrUnknownMomentarySwitchName)
	}
	return NewMomentarySwitchEvent(usagePage, hid.Usage(usage)), nil
}
