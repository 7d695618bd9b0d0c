package legacy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeAndString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		alternate   string
		suffix      string
		expectError bool
	}{
		{
			name:     "simple path",
			input:    "3foo3barE",
			expected: "foo::bar",
			suffix:   "",
		},
		{
			name:      "trailing hash",
			input:     "3foo17h1234567890abcdefE",
			expected:  "foo::h1234567890abcdef",
			alternate: "foo",
		},
		{
			name:     "escaped punctuation",
			input:    "3foo7bar$BP$E",
			expected: "foo::bar*",
		},
		{
			name:     "nested path collapsed with dots",
			input:    "8foo..barE",
			expected: "foo::bar",
		},
		{
			name:     "suffix passthrough",
			input:    "3fooE.llvm.9D1C9369",
			expected: "foo",
			suffix:   ".llvm.9D1C9369",
		},
		{
			name:        "malformed length overruns input",
			input:       "99fooE",
			expectError: true,
		},
		{
			name:        "no elements",
			input:       "E",
			expectError: true,
		},
		{
			name:        "missing terminator",
			input:       "3foo",
			expectError: true,
		},
	}

	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			sym, suffix, err := Decode([]byte(tc.input))
			if tc.expectError {
				require.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, sym.String(false))
			if tc.alternate != "" {
				require.Equal(t, tc.alternate, sym.String(true))
			}
			require.Equal(t, tc.suffix, string(suffix))
		})
	}
}

func TestIsHashElement(t *testing.T) {
	require.True(t, isHashElement([]byte("h1234567890abcdef")))
	require.False(t, isHashElement([]byte("hworld")))
	require.False(t, isHashElement([]byte("foo")))
	require.False(t, isHashElement([]byte("h")))
}
