package types

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

type PointingMotion struct {
	X               int
	Y               int
	VerticalWheel   int
	HorizontalWheel int
}

func NewPointingMotion(x, y, verticalWheel, horizontalWheel int) PointingMotion {
	return PointingMotion{
		X:               x,
		Y:               y,
		VerticalWheel:   verticalWheel,
		HorizontalWheel: horizontalWheel,
	}
}

func (m PointingMotion) IsZero() bool {
	return m == PointingMotion{}
}

// Application is the frontmost application.
type Application struct {
	BundleIdentifier string
	FilePath         string
}

type InputSourceProperties struct {
	FirstLanguage string
	InputSourceID string
	InputModeID   string
	Languages     []string
}

func (p InputSourceProperties) Equal(other InputSourceProperties) bool {
	return p.FirstLanguage == other.FirstLanguage &&
		p.InputSourceID == other.InputSourceID &&
		p.InputModeID == other.InputModeID &&
		slices.Equal(p.Languages, other.Languages)
}

// InputSourceSpecifier fields are regular expressions.
type InputSourceSpecifier struct {
	Language      string
	InputSourceID string
	InputModeID   string
}

type SetVariableType int

const (
	SetVariableTypeSet SetVariableType = iota
	SetVariableTypeUnset
)

func (t SetVariableType) String() string {
	if t == SetVariableTypeUnset {
		return "unset"
	}
	return "set"
}

var ErrUnknownSetVariableType = errors.New("unknown set_variable type")

func MakeSetVariableType(name string) (SetVariableType, error) {
	switch name {
	case "set":
		return SetVariableTypeSet, nil
	case "unset":
		return SetVariableTypeUnset, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownSetVariableType)
}

type VariableValueType int

const (
	VariableValueNone VariableValueType = iota
	VariableValueInt
	VariableValueBool
	VariableValueString
)

// VariableValue holds an int64, a bool or a string. The zero value is
// "not set".
type VariableValue struct {
	typ VariableValueType
	i   int64
	b   bool
	s   string
}

func NewIntVariableValue(v int64) VariableValue {
	return VariableValue{typ: VariableValueInt, i: v}
}

func NewBoolVariableValue(v bool) VariableValue {
	return VariableValue{typ: VariableValueBool, b: v}
}

func NewStringVariableValue(v string) VariableValue {
	return VariableValue{typ: VariableValueString, s: v}
}

func (v VariableValue) Type() VariableValueType {
	return v.typ
}

func (v VariableValue) IsSet() bool {
	return v.typ != VariableValueNone
}

// Interface returns int64, bool, string or nil.
func (v VariableValue) Interface() any {
	switch v.typ {
	case VariableValueInt:
		return v.i
	case VariableValueBool:
		return v.b
	case VariableValueString:
		return v.s
	}
	return nil
}

func (v VariableValue) String() string {
	switch v.typ {
	case VariableValueInt:
		return strconv.FormatInt(v.i, 10)
	case VariableValueBool:
		return strconv.FormatBool(v.b)
	case VariableValueString:
		return v.s
	}
	return "<unset>"
}

// SetVariable is sent by manipulators. KeyUpValue is not set if not
// given.
type SetVariable struct {
	Name       string
	Value      VariableValue
	KeyUpValue VariableValue
	Type       SetVariableType
}

func (v SetVariable) Equal(other SetVariable) bool {
	return v.Name == other.Name &&
		v.Value == other.Value &&
		v.KeyUpValue == other.KeyUpValue &&
		v.Type == other.Type
}

type SystemPreferencesProperties struct {
	UseFkeysAsStandardFunctionKeys bool
	ScrollDirectionIsNatural       bool
}

type VirtualHIDKeyboardConfiguration struct {
	CountryCode     int
	MouseKeyXYScale int
}
