/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/
package verrors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCode_Classification(t *testing.T) {
	for _, def := range Definitions() {
		t.Run(def.String(), func(t *testing.T) {
			isGroup := def.Code&0x80 != 0
			require.Equal(t, isGroup, def.Code.IsGroup())
			require.Equal(t, isGroup && def.Code&0x10 != 0, def.Code.IsLogic())
		})
	}
}

func TestCode_LogicBitMatchesTable(t *testing.T) {
	require.Equal(t, logicBit, Logical.Code-ErrorGroup.Code)

	for _, def := range []ErrorDefinition{NoneOf, OneOf, AnyOf, AllOf} {
		require.True(t, def.Code.IsLogic(), def.String())
		require.Equal(t, FamilyLogic, def.Family())
	}
	for _, def := range []ErrorDefinition{Schema, ItemsRules, KeysRules, ValuesRules, Items} {
		require.True(t, def.Code.IsGroup(), def.String())
		require.False(t, def.Code.IsLogic(), def.String())
		require.Equal(t, FamilyGroup, def.Family())
	}
}

func TestCode_Family(t *testing.T) {
	tests := map[string]struct {
		def      ErrorDefinition
		expected Family
	}{
		"custom":         {def: Custom, expected: FamilyExistence},
		"required":       {def: RequiredField, expected: FamilyExistence},
		"type":           {def: Type, expected: FamilyShape},
		"maxlength":      {def: MaxLength, expected: FamilyShape},
		"regex":          {def: RegexMismatch, expected: FamilyContent},
		"contains":       {def: MissingMembers, expected: FamilyContent},
		"normalization":  {def: Normalization, expected: FamilyNormalization},
		"default_setter": {def: SettingDefaultFailed, expected: FamilyNormalization},
		"schema":         {def: Schema, expected: FamilyGroup},
		"oneof":          {def: OneOf, expected: FamilyLogic},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.def.Family())
			require.Equal(t, tc.expected == FamilyNormalization, tc.def.Code.IsNormalization())
		})
	}
}

func TestCode_String(t *testing.T) {
	require.Equal(t, "0x24", Type.Code.String())
	require.Equal(t, "0x8f", Items.Code.String())
	require.Equal(t, "type (0x24)", Type.String())
	require.Equal(t, "0x03", UnknownField.String())
	require.Equal(t, "logic", FamilyLogic.String())
}

func TestDefinitions_UniqueCodes(t *testing.T) {
	defs := Definitions()
	seen := make(map[Code]bool, len(defs))
	for i, d := range defs {
		require.False(t, seen[d.Code], "duplicate code %s", d.Code)
		seen[d.Code] = true
		if i > 0 {
			require.Less(t, defs[i-1].Code, d.Code)
		}
	}
	d, ok := LookupCode(0x93)
	require.True(t, ok)
	require.Equal(t, AnyOf, d)
}

func TestLookupRule(t *testing.T) {
	require.Equal(t, []ErrorDefinition{UnallowedValue, UnallowedValues}, LookupRule("allowed"))
	require.Equal(t, []ErrorDefinition{Type}, LookupRule("type"))
	require.Empty(t, LookupRule("no-such-rule"))
}

func TestRegister(t *testing.T) {
	custom := ErrorDefinition{Code: 0x3a, Rule: "isodate"}
	t.Cleanup(func() { definitions.remove(custom.Code) })

	require.NoError(t, Register(custom))
	d, ok := LookupCode(custom.Code)
	require.True(t, ok)
	require.Equal(t, custom, d)

	require.ErrorIs(t, Register(custom), ErrDuplicateCode)
	require.ErrorIs(t, Register(ErrorDefinition{Code: Type.Code, Rule: "other"}), ErrDuplicateCode)
	require.ErrorIs(t, Register(ErrorDefinition{Code: 0x85, Rule: "bulk"}), ErrReservedCode)
	require.ErrorIs(t, Register(ErrorDefinition{Code: 0x95, Rule: "someof"}), ErrReservedCode)
	require.ErrorIs(t, Register(ErrorDefinition{Code: 0x100, Rule: "wide"}), ErrReservedCode)
	_, ok = LookupCode(0x100)
	require.False(t, ok)
}

func TestParseCode(t *testing.T) {
	tests := map[string]struct {
		in       string
		expected Code
		wantErr  bool
	}{
		"hex":       {in: "0x24", expected: Type.Code},
		"upper hex": {in: "0X8F", expected: Items.Code},
		"decimal":   {in: "36", expected: Type.Code},
		"too large": {in: "0x100", wantErr: true},
		"garbage":   {in: "type", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseCode(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}
