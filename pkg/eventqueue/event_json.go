package eventqueue

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/guettli/eventqueue/pkg/types"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	ErrUnknownEventType = errors.New("unknown event type")
	ErrMalformedEvent   = errors.New("malformed event")
)

// ParseError is returned by MakeFromJSON. It wraps ErrUnknownEventType or
// ErrMalformedEvent.
type ParseError struct {
	JSON string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse event %s: %v", e.JSON, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e Event) ToJSON() string {
	s := set("{}", "type", e.typ.String())
	switch v := e.value.(type) {
	case types.MomentarySwitchEvent:
		obj := "{}"
		key, name := v.JSONKeyAndName()
		switch {
		case key == "":
		case name == "":
			obj = set(obj, key, int64(v.UsagePair().Usage))
		default:
			obj = set(obj, key, name)
		}
		s = setRaw(s, "momentary_switch_event", obj)
	case types.PointingMotion:
		obj := set("{}", "x", v.X)
		obj = set(obj, "y", v.Y)
		obj = set(obj, "vertical_wheel", v.VerticalWheel)
		obj = set(obj, "horizontal_wheel", v.HorizontalWheel)
		s = setRaw(s, "pointing_motion", obj)
	case CapsLockState:
		s = set(s, "caps_lock_state_changed", int64(v))
	case ShellCommand:
		s = set(s, "shell_command", string(v))
	case InputSourceSpecifiers:
		s = setRaw(s, "input_source_specifiers", "[]")
		for _, specifier := range v {
			obj := setNonEmpty("{}", "language", specifier.Language)
			obj = setNonEmpty(obj, "input_source_id", specifier.InputSourceID)
			obj = setNonEmpty(obj, "input_mode_id", specifier.InputModeID)
			s = setRaw(s, "input_source_specifiers.-1", obj)
		}
	case types.SetVariable:
		obj := set("{}", "name", v.Name)
		if v.Value.IsSet() {
			obj = set(obj, "value", v.Value.Interface())
		}
		if v.KeyUpValue.IsSet() {
			obj = set(obj, "key_up_value", v.KeyUpValue.Interface())
		}
		obj = set(obj, "type", v.Type.String())
		s = setRaw(s, "set_variable", obj)
	case types.Application:
		obj := setNonEmpty("{}", "bundle_identifier", v.BundleIdentifier)
		obj = setNonEmpty(obj, "file_path", v.FilePath)
		s = setRaw(s, "frontmost_application", obj)
	case types.InputSourceProperties:
		obj := setNonEmpty("{}", "first_language", v.FirstLanguage)
		obj = setNonEmpty(obj, "input_source_id", v.InputSourceID)
		obj = setNonEmpty(obj, "input_mode_id", v.InputModeID)
		if len(v.Languages) > 0 {
			obj = set(obj, "languages", v.Languages)
		}
		s = setRaw(s, "input_source_properties", obj)
	case types.SystemPreferencesProperties:
		obj := set("{}", "use_fkeys_as_standard_function_keys", v.UseFkeysAsStandardFunctionKeys)
		obj = set(obj, "scroll_direction_is_natural", v.ScrollDirectionIsNatural)
		s = setRaw(s, "system_preferences_properties", obj)
	case types.VirtualHIDKeyboardConfiguration:
		obj := set("{}", "country_code", v.CountryCode)
		obj = set(obj, "mouse_key_xy_scale", v.MouseKeyXYScale)
		s = setRaw(s, "virtual_hid_keyboard_configuration", obj)
	}
	return s
}

// sjson only fails on invalid paths; all paths used here are constants.
func set(s string, path string, value any) string {
	out, err := sjson.Set(s, path, value)
	if err != nil {
		panic(fmt.Sprintf("failed to set %s: %v", path, err))
	}
	return out
}

func setRaw(s string, path string, raw string) string {
	out, err := sjson.SetRaw(s, path, raw)
	if err != nil {
		panic(fmt.Sprintf("failed to set %s: %v", path, err))
	}
	return out
}

func setNonEmpty(s string, path string, value string) string {
	if value == "" {
		return s
	}
	return set(s, path, value)
}

func (e Event) MarshalJSON() ([]byte, error) {
	return []byte(e.ToJSON()), nil
}

func (e *Event) UnmarshalJSON(data []byte) error {
	event, err := MakeFromJSON(string(data))
	if err != nil {
		return err
	}
	*e = event
	return nil
}

func MakeFromJSON(s string) (Event, error) {
	if !gjson.Valid(s) {
		return Event{}, &ParseError{JSON: s, Err: fmt.Errorf("%w: invalid json", ErrMalformedEvent)}
	}
	event, err := makeFromJSON(gjson.Parse(s))
	if err != nil {
		return Event{}, &ParseError{JSON: s, Err: err}
	}
	return event, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedEvent, fmt.Sprintf(format, args...))
}

func makeFromJSON(r gjson.Result) (Event, error) {
	if !r.IsObject() {
		return Event{}, malformed("json object expected")
	}
	t := r.Get("type")
	if t.Type != gjson.String {
		return Event{}, malformed("type must be a string")
	}
	typ, err := MakeType(t.String())
	if err != nil {
		return Event{}, err
	}

	switch typ {
	case TypeMomentarySwitchEvent:
		obj, err := objectField(r, "momentary_switch_event")
		if err != nil {
			return Event{}, err
		}
		m, err := momentarySwitchEventFromJSON(obj)
		if err != nil {
			return Event{}, err
		}
		return NewMomentarySwitchEvent(m), nil

	case TypePointingMotion:
		obj, err := objectField(r, "pointing_motion")
		if err != nil {
			return Event{}, err
		}
		var m types.PointingMotion
		for _, f := range []struct {
			name string
			dest *int
		}{
			{"x", &m.X},
			{"y", &m.Y},
			{"vertical_wheel", &m.VerticalWheel},
			{"horizontal_wheel", &m.HorizontalWheel},
		} {
			v, err := intField(obj, f.name)
			if err != nil {
				return Event{}, err
			}
			*f.dest = int(v)
		}
		return NewPointingMotionEvent(m), nil

	case TypeCapsLockStateChanged:
		v := r.Get("caps_lock_state_changed")
		if v.Type != gjson.Number || (v.Raw != "0" && v.Raw != "1") {
			return Event{}, malformed("caps_lock_state_changed must be 0 or 1")
		}
		return MakeCapsLockStateChangedEvent(v.Int()), nil

	case TypeShellCommand:
		v := r.Get("shell_command")
		if v.Type != gjson.String {
			return Event{}, malformed("shell_command must be a string")
		}
		return MakeShellCommandEvent(v.String()), nil

	case TypeSelectInputSource:
		v := r.Get("input_source_specifiers")
		if !v.IsArray() {
			return Event{}, malformed("input_source_specifiers must be an array")
		}
		specifiers := []types.InputSourceSpecifier{}
		for _, item := range v.Array() {
			if !item.IsObject() {
				return Event{}, malformed("input_source_specifiers must contain objects")
			}
			var specifier types.InputSourceSpecifier
			for _, f := range []struct {
				name string
				dest *string
			}{
				{"language", &specifier.Language},
				{"input_source_id", &specifier.InputSourceID},
				{"input_mode_id", &specifier.InputModeID},
			} {
				if *f.dest, err = stringField(item, f.name); err != nil {
					return Event{}, err
				}
			}
			specifiers = append(specifiers, specifier)
		}
		return MakeSelectInputSourceEvent(specifiers), nil

	case TypeSetVariable:
		obj, err := objectField(r, "set_variable")
		if err != nil {
			return Event{}, err
		}
		return setVariableFromJSON(obj)

	case TypeFrontmostApplicationChanged:
		obj, err := objectField(r, "frontmost_application")
		if err != nil {
			return Event{}, err
		}
		var a types.Application
		if a.BundleIdentifier, err = stringField(obj, "bundle_identifier"); err != nil {
			return Event{}, err
		}
		if a.FilePath, err = stringField(obj, "file_path"); err != nil {
			return Event{}, err
		}
		return MakeFrontmostApplicationChangedEvent(a), nil

	case TypeInputSourceChanged:
		obj, err := objectField(r, "input_source_properties")
		if err != nil {
			return Event{}, err
		}
		return inputSourcePropertiesFromJSON(obj)

	case TypeSystemPreferencesPropertiesChanged:
		obj, err := objectField(r, "system_preferences_properties")
		if err != nil {
			return Event{}, err
		}
		var p types.SystemPreferencesProperties
		if p.UseFkeysAsStandardFunctionKeys, err = boolField(obj, "use_fkeys_as_standard_function_keys"); err != nil {
			return Event{}, err
		}
		if p.ScrollDirectionIsNatural, err = boolField(obj, "scroll_direction_is_natural"); err != nil {
			return Event{}, err
		}
		return MakeSystemPreferencesPropertiesChangedEvent(p), nil

	case TypeVirtualHIDKeyboardConfigurationChanged:
		obj, err := objectField(r, "virtual_hid_keyboard_configuration")
		if err != nil {
			return Event{}, err
		}
		var c types.VirtualHIDKeyboardConfiguration
		countryCode, err := intField(obj, "country_code")
		if err != nil {
			return Event{}, err
		}
		scale, err := intField(obj, "mouse_key_xy_scale")
		if err != nil {
			return Event{}, err
		}
		c.CountryCode = int(countryCode)
		c.MouseKeyXYScale = int(scale)
		return MakeVirtualHIDKeyboardConfigurationChangedEvent(c), nil

	case TypeDeviceKeysAndPointingButtonsAreReleased:
		return MakeDeviceKeysAndPointingButtonsAreReleasedEvent(), nil
	}

	// "none" is the zero value and is never written by ToJSON of a
	// constructed event.
	return Event{}, fmt.Errorf("%q: %w", typ.String(), ErrUnknownEventType)
}

// momentarySwitchEventFromJSON accepts exactly one key; "{}" is the
// invalid event.
func momentarySwitchEventFromJSON(obj gjson.Result) (types.MomentarySwitchEvent, error) {
	var (
		m     types.MomentarySwitchEvent
		err   error
		count int
	)
	obj.ForEach(func(key, value gjson.Result) bool {
		count++
		if count > 1 {
			err = malformed("momentary_switch_event must have a single key")
			return false
		}
		var e error
		switch value.Type {
		case gjson.String:
			m, e = types.MakeMomentarySwitchEventFromName(key.String(), value.String())
		case gjson.Number:
			m, e = types.MakeMomentarySwitchEventFromNumber(key.String(), value.Int())
		default:
			err = malformed("%s must be a string or a number", key.String())
			return false
		}
		if e != nil {
			err = fmt.Errorf("%w: %w", ErrMalformedEvent, e)
		}
		return err == nil
	})
	if err != nil {
		return types.MomentarySwitchEvent{}, err
	}
	return m, nil
}

func setVariableFromJSON(obj gjson.Result) (Event, error) {
	var (
		v   types.SetVariable
		err error
	)
	name := obj.Get("name")
	if name.Type != gjson.String {
		return Event{}, malformed("set_variable.name must be a string")
	}
	v.Name = name.String()
	if v.Value, err = variableValue(obj, "value"); err != nil {
		return Event{}, err
	}
	if v.KeyUpValue, err = variableValue(obj, "key_up_value"); err != nil {
		return Event{}, err
	}
	typeName, err := stringField(obj, "type")
	if err != nil {
		return Event{}, err
	}
	if typeName != "" {
		if v.Type, err = types.MakeSetVariableType(typeName); err != nil {
			return Event{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
		}
	}
	return MakeSetVariableEvent(v), nil
}

func inputSourcePropertiesFromJSON(obj gjson.Result) (Event, error) {
	var (
		p   types.InputSourceProperties
		err error
	)
	if p.FirstLanguage, err = stringField(obj, "first_language"); err != nil {
		return Event{}, err
	}
	if p.InputSourceID, err = stringField(obj, "input_source_id"); err != nil {
		return Event{}, err
	}
	if p.InputModeID, err = stringField(obj, "input_mode_id"); err != nil {
		return Event{}, err
	}
	if languages := obj.Get("languages"); languages.Exists() {
		if !languages.IsArray() {
			return Event{}, malformed("languages must be an array")
		}
		for _, l := range languages.Array() {
			if l.Type != gjson.String {
				return Event{}, malformed("languages must contain strings")
			}
			p.Languages = append(p.Languages, l.String())
		}
	}
	return MakeInputSourceChangedEvent(p), nil
}

func objectField(r gjson.Result, name string) (gjson.Result, error) {
	v := r.Get(name)
	if !v.IsObject() {
		return gjson.Result{}, malformed("%s must be an object", name)
	}
	return v, nil
}

// Missing fields are zero.
func intField(obj gjson.Result, name string) (int64, error) {
	v := obj.Get(name)
	if !v.Exists() {
		return 0, nil
	}
	if v.Type != gjson.Number {
		return 0, malformed("%s must be a number", name)
	}
	return v.Int(), nil
}

func stringField(obj gjson.Result, name string) (string, error) {
	v := obj.Get(name)
	if !v.Exists() {
		return "", nil
	}
	if v.Type != gjson.String {
		return "", malformed("%s must be a string", name)
	}
	return v.String(), nil
}

func boolField(obj gjson.Result, name string) (bool, error) {
	v := obj.Get(name)
	if !v.Exists() {
		return false, nil
	}
	if v.Type != gjson.True && v.Type != gjson.False {
		return false, malformed("%s must be a bool", name)
	}
	return v.Bool(), nil
}

// variableValue accepts integers, bools and strings. A missing or null
// value is not set.
func variableValue(obj gjson.Result, name string) (types.VariableValue, error) {
	v := obj.Get(name)
	switch v.Type {
	case gjson.Null:
		return types.VariableValue{}, nil
	case gjson.String:
		return types.NewStringVariableValue(v.String()), nil
	case gjson.True, gjson.False:
		return types.NewBoolVariableValue(v.Bool()), nil
	case gjson.Number:
		i, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return types.VariableValue{}, malformed("%s must be an integer", name)
		}
		return types.NewIntVariableValue(i), nil
	}
	return types.VariableValue{}, malformed("%s must be an integer, a bool or a string", name)
}
