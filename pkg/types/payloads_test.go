package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariableValue(t *testing.T) {
	tests := []struct {
		value    VariableValue
		typ      VariableValueType
		expected any
		str      string
	}{
		{VariableValue{}, VariableValueNone, nil, "<unset>"},
		{NewIntVariableValue(-3), VariableValueInt, int64(-3), "-3"},
		{NewBoolVariableValue(true), VariableValueBool, true, "true"},
		{NewStringVariableValue("vim"), VariableValueString, "vim", "vim"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.typ, tt.value.Type())
		require.Equal(t, tt.typ != VariableValueNone, tt.value.IsSet())
		require.Equal(t, tt.expected, tt.value.Interface())
		require.Equal(t, tt.str, tt.value.String())
	}
}

func TestSetVariable_equal(t *testing.T) {
	mode := SetVariable{Name: "mode", Value: NewStringVariableValue("vim"), KeyUpValue: NewBoolVariableValue(false)}
	tests := []struct {
		name     string
		other    SetVariable
		expected bool
	}{
		{"copy", mode, true},
		{"other name", SetVariable{Name: "x", Value: mode.Value, KeyUpValue: mode.KeyUpValue}, false},
		{"other value", SetVariable{Name: "mode", Value: NewStringVariableValue("emacs"), KeyUpValue: mode.KeyUpValue}, false},
		{"int and string", SetVariable{Name: "mode", Value: NewIntVariableValue(0), KeyUpValue: mode.KeyUpValue}, false},
		{"missing key_up_value", SetVariable{Name: "mode", Value: mode.Value}, false},
		{"unset", SetVariable{Name: "mode", Value: mode.Value, KeyUpValue: mode.KeyUpValue, Type: SetVariableTypeUnset}, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, mode.Equal(tt.other), tt.name)
	}
}
