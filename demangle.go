// Package demangle turns mangled Rust symbol names back into the path,
// generics, and type information the compiler encoded into them. It
// understands both mangling schemes rustc has shipped: the legacy
// _ZN...E scheme (shared with the Itanium C++ ABI its codec was adapted
// from) and the richer v0 scheme (_R...) introduced to carry full type
// and const-generic information. See the legacy and v0 subpackages for
// the two grammars themselves; this package is the envelope recognizer
// and Symbol type that sits above them.
package demangle

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tetratelabs/demangle/api"
	"github.com/tetratelabs/demangle/legacy"
	"github.com/tetratelabs/demangle/v0"
)

// ErrNotMangled means the input does not begin with a recognized
// mangling prefix, or what follows the prefix fails that scheme's own
// grammar or suffix rules.
var ErrNotMangled = errors.New("demangle: not a mangled symbol")

// ErrInvalidMangling and ErrRecursedTooDeep are re-exported from the v0
// package, whose Validate reports them. TryDemangle does not return
// them: every failure it reports is ErrNotMangled.
var (
	ErrInvalidMangling = v0.ErrInvalid
	ErrRecursedTooDeep = v0.ErrRecursedTooDeep
)

// Symbol is a successfully or unsuccessfully demangled name. A Symbol
// for which demangling failed still renders: its String and Format
// methods fall back to the original bytes, the same "best effort"
// behavior the legacy C++ demanglers this scheme was adapted from use.
type Symbol struct {
	raw       []byte
	kind      api.Kind
	body      []byte
	suffix    []byte
	legacySym *legacy.Symbol
}

// Kind reports which mangling scheme, if any, matched.
func (s *Symbol) Kind() api.Kind { return s.kind }

// String renders s using the default (non-alternate) configuration.
func (s *Symbol) String() string {
	var buf strings.Builder
	_ = s.writeTo(&buf, false)
	return buf.String()
}

// Format implements fmt.Formatter: the "%#v"-style alternate flag
// selects Rust's alternate Display form (no crate disambiguators or
// compiler hashes), matching how rustc-demangle's own Display impl
// reads fmt.Formatter's alternate flag.
func (s *Symbol) Format(f fmt.State, verb rune) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(demangle.Symbol)", verb)
		return
	}
	_ = s.writeTo(f, f.Flag('#'))
}

func (s *Symbol) writeTo(w io.Writer, alternate bool) error {
	switch s.kind {
	case api.KindLegacy:
		if _, err := io.WriteString(w, s.legacySym.String(alternate)); err != nil {
			return err
		}
		return writeLegacySuffix(w, s.suffix, alternate)
	case api.KindV0:
		p := v0.NewPrinter(s.body, w, alternate)
		if err := p.Run(); err != nil {
			return err
		}
		_, err := w.Write(s.suffix)
		return err
	default:
		_, err := w.Write(s.raw)
		return err
	}
}

// writeLegacySuffix appends a legacy symbol's trailing suffix verbatim,
// except that alternate (short) rendering drops a ".llvm.<hash>" suffix
// LLVM appends to symbols it's deduplicated across translation units:
// that hash is no more meaningful to a reader than the crate
// disambiguator alternate rendering already hides.
func writeLegacySuffix(w io.Writer, suffix []byte, alternate bool) error {
	if alternate && hasLLVMSuffix(suffix) {
		return nil
	}
	_, err := w.Write(suffix)
	return err
}

func hasLLVMSuffix(suffix []byte) bool {
	const marker = ".llvm."
	for i := 0; i+len(marker) <= len(suffix); i++ {
		if string(suffix[i:i+len(marker)]) == marker {
			return true
		}
	}
	return false
}

// Demangle always succeeds: on anything that isn't recognizably mangled,
// the returned Symbol has Kind() == api.KindUnknown and renders s
// verbatim, matching how a linker map or stack trace should pass
// unrecognized names through untouched rather than failing.
func Demangle(s []byte) *Symbol {
	sym, err := TryDemangle(s)
	if err != nil {
		return &Symbol{raw: s, kind: api.KindUnknown}
	}
	return sym
}

// TryDemangle recognizes s's mangling envelope and decodes its payload,
// returning ErrNotMangled if no envelope matches or the matched one
// fails to validate.
func TryDemangle(s []byte) (*Symbol, error) {
	if sym, ok := tryV0(s); ok {
		return sym, nil
	}
	if sym, ok := tryLegacy(s); ok {
		return sym, nil
	}
	return nil, ErrNotMangled
}

func tryV0(s []byte) (*Symbol, bool) {
	rest, ok := stripPrefix(s, "_R", "__R", "R")
	if !ok {
		return nil, false
	}
	if b, ok := peekByte(rest); !ok || b < 'A' || b > 'Z' {
		return nil, false
	}
	if !isASCII(rest) {
		return nil, false
	}
	n, err := v0.Validate(rest)
	if err != nil {
		return nil, false
	}
	body, suffix := rest[:n], rest[n:]
	if !validSuffix(suffix) {
		return nil, false
	}
	return &Symbol{raw: s, kind: api.KindV0, body: body, suffix: suffix}, true
}

func tryLegacy(s []byte) (*Symbol, bool) {
	rest, ok := stripPrefix(s, "_ZN", "__ZN", "ZN")
	if !ok {
		return nil, false
	}
	if !isASCII(rest) {
		return nil, false
	}
	sym, suffix, err := legacy.Decode(rest)
	if err != nil {
		return nil, false
	}
	if !validSuffix(suffix) {
		return nil, false
	}
	return &Symbol{raw: s, kind: api.KindLegacy, suffix: suffix, legacySym: sym}, true
}

func peekByte(s []byte) (byte, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[0], true
}

func stripPrefix(s []byte, prefixes ...string) ([]byte, bool) {
	for _, p := range prefixes {
		if len(s) >= len(p) && string(s[:len(p)]) == p {
			return s[len(p):], true
		}
	}
	return nil, false
}

func isASCII(s []byte) bool {
	for _, b := range s {
		if b >= utf8RuneSelf {
			return false
		}
	}
	return true
}

const utf8RuneSelf = 0x80

// validSuffix accepts an empty suffix, or one starting with '.' and
// containing only bytes a linker or debugger would treat as part of a
// single symbol token.
func validSuffix(suffix []byte) bool {
	if len(suffix) == 0 {
		return true
	}
	if suffix[0] != '.' {
		return false
	}
	for _, b := range suffix {
		if !isSuffixByte(b) {
			return false
		}
	}
	return true
}

func isSuffixByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9', b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z':
		return true
	case b == '.' || b == '_' || b == '@' || b == '$':
		return true
	}
	return false
}
