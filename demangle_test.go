package demangle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/demangle/api"
)

func TestDemangleV0Simple(t *testing.T) {
	sym := Demangle([]byte("_RNvC6_123foo3bar"))
	require.Equal(t, api.KindV0, sym.Kind())
	require.Equal(t, "123foo::bar", sym.String())
}

func TestDemangleLegacySimple(t *testing.T) {
	sym := Demangle([]byte("_ZN3foo3barE"))
	require.Equal(t, api.KindLegacy, sym.Kind())
	require.Equal(t, "foo::bar", sym.String())
}

func TestDemangleLegacyWithSuffix(t *testing.T) {
	sym := Demangle([]byte("_ZN3fooE.llvm.1234"))
	require.Equal(t, "foo.llvm.1234", sym.String())
}

func TestDemangleUnmangledPassesThrough(t *testing.T) {
	sym := Demangle([]byte("not_a_mangled_name"))
	require.Equal(t, api.KindUnknown, sym.Kind())
	require.Equal(t, "not_a_mangled_name", sym.String())
}

func TestTryDemangleReturnsErrNotMangled(t *testing.T) {
	_, err := TryDemangle([]byte("plain"))
	require.ErrorIs(t, err, ErrNotMangled)
}

func TestTryDemangleRejectsNonASCII(t *testing.T) {
	_, err := TryDemangle([]byte("_RNvC6_123foo3bar\xff"))
	require.ErrorIs(t, err, ErrNotMangled)
}

func TestTryDemangleRejectsBadSuffix(t *testing.T) {
	// A suffix that doesn't start with '.' is rejected.
	_, err := TryDemangle([]byte("_ZN3fooEbogus"))
	require.ErrorIs(t, err, ErrNotMangled)
}

func TestFormatAlternateHidesCrateDisambiguator(t *testing.T) {
	sym := Demangle([]byte("_RCs_3foo"))
	require.Equal(t, "foo[1]", sym.String())
	require.Equal(t, "foo", fmt.Sprintf("%#v", sym))
}
