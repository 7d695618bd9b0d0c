// Package v0 decodes and prints the v0 Rust mangling grammar: a
// recursion-bounded recursive-descent parser/printer over paths, types,
// generic arguments, const values, trait objects and lifetime binders,
// with backreferences and punycode-encoded identifiers.
package v0

import (
	"bytes"
	"errors"
)

// MaxDepth bounds the recursion depth of the parser/printer, the same
// bound the backreference machinery shares so a cyclic or merely very
// deep symbol can't exhaust the Go call stack.
const MaxDepth = 500

// ErrInvalid means the input bytes do not form a valid v0 mangling
// grammar production at the point the parser reached.
var ErrInvalid = errors.New("v0: invalid mangling")

// ErrRecursedTooDeep means parsing or printing would recurse past
// MaxDepth, including depth consumed by following backreferences.
var ErrRecursedTooDeep = errors.New("v0: recursion limit reached")

// cursor walks the byte string making up a v0 symbol body, tracking a
// read position and a recursion depth. Backreferences spawn a new
// cursor over the same underlying bytes at an earlier position, sharing
// (and incrementing) the depth counter of the cursor that spawned them.
type cursor struct {
	sym   []byte
	pos   int
	depth uint32
}

func (c *cursor) pushDepth() error {
	c.depth++
	if c.depth > MaxDepth {
		return ErrRecursedTooDeep
	}
	return nil
}

func (c *cursor) popDepth() { c.depth-- }

func (c *cursor) peek() (byte, bool) {
	if c.pos >= len(c.sym) {
		return 0, false
	}
	return c.sym[c.pos], true
}

func (c *cursor) eat(b byte) bool {
	if v, ok := c.peek(); ok && v == b {
		c.pos++
		return true
	}
	return false
}

func (c *cursor) nextByte() (byte, error) {
	v, ok := c.peek()
	if !ok {
		return 0, ErrInvalid
	}
	c.pos++
	return v, nil
}

func (c *cursor) digit10() (byte, error) {
	v, ok := c.peek()
	if !ok || v < '0' || v > '9' {
		return 0, ErrInvalid
	}
	c.pos++
	return v - '0', nil
}

func (c *cursor) digit62() (byte, error) {
	v, ok := c.peek()
	if !ok {
		return 0, ErrInvalid
	}
	switch {
	case v >= '0' && v <= '9':
		c.pos++
		return v - '0', nil
	case v >= 'a' && v <= 'z':
		c.pos++
		return 10 + (v - 'a'), nil
	case v >= 'A' && v <= 'Z':
		c.pos++
		return 36 + (v - 'A'), nil
	}
	return 0, ErrInvalid
}

// integer62 reads a base-62 digit run terminated by '_', or just '_' for
// zero, returning the value plus one (there is no way to encode zero
// digits followed by more digits, so the encoding adds one to allow an
// empty digit run to mean zero).
func (c *cursor) integer62() (uint64, error) {
	if c.eat('_') {
		return 0, nil
	}
	var x uint64
	for !c.eat('_') {
		d, err := c.digit62()
		if err != nil {
			return 0, err
		}
		nx, ok := checkedMulAdd(x, 62, uint64(d))
		if !ok {
			return 0, ErrInvalid
		}
		x = nx
	}
	r, ok := checkedAdd(x, 1)
	if !ok {
		return 0, ErrInvalid
	}
	return r, nil
}

// optInteger62 reads integer62()+1 if tag is the next byte, else 0 (tag
// absent). The extra +1 on top of integer62's own +1 is what lets 0 mean
// "tag absent" and the smallest present value (integer62 itself reading
// "_") still be distinguishable as 1, not 0.
func (c *cursor) optInteger62(tag byte) (uint64, error) {
	if !c.eat(tag) {
		return 0, nil
	}
	v, err := c.integer62()
	if err != nil {
		return 0, err
	}
	r, ok := checkedAdd(v, 1)
	if !ok {
		return 0, ErrInvalid
	}
	return r, nil
}

func (c *cursor) disambiguator() (uint64, error) {
	return c.optInteger62('s')
}

// hexNibbles reads a run of lowercase hex digits terminated by '_',
// returning the digits without the terminator.
func (c *cursor) hexNibbles() ([]byte, error) {
	start := c.pos
	for {
		b, err := c.nextByte()
		if err != nil {
			return nil, err
		}
		switch {
		case b >= '0' && b <= '9', b >= 'a' && b <= 'f':
		case b == '_':
			return c.sym[start : c.pos-1], nil
		default:
			return nil, ErrInvalid
		}
	}
}

// namespaceTag is the result of parsing an N-path's namespace byte: an
// uppercase letter names a "special" (compiler-generated) namespace
// such as closures; a lowercase letter is an ordinary, unnamed one.
type namespaceTag struct {
	letter  byte
	special bool
}

func (c *cursor) namespace() (namespaceTag, error) {
	b, err := c.nextByte()
	if err != nil {
		return namespaceTag{}, err
	}
	switch {
	case b >= 'A' && b <= 'Z':
		return namespaceTag{letter: b, special: true}, nil
	case b >= 'a' && b <= 'z':
		return namespaceTag{}, nil
	}
	return namespaceTag{}, ErrInvalid
}

// backref reads a B<base-62 integer> backreference tag (the 'B' byte
// itself must already be consumed) and spawns a cursor positioned at the
// referenced offset. The offset must point strictly before the 'B' tag
// byte; the spawned cursor shares this cursor's depth, incremented once,
// so a chain of self-referential backreferences still trips MaxDepth.
func (c *cursor) backref() (*cursor, error) {
	tagPos := c.pos - 1
	i, err := c.integer62()
	if err != nil {
		return nil, err
	}
	if i >= uint64(tagPos) {
		return nil, ErrInvalid
	}
	nc := &cursor{sym: c.sym, pos: int(i), depth: c.depth}
	if err := nc.pushDepth(); err != nil {
		return nil, err
	}
	return nc, nil
}

// Ident is a decoded identifier: an ASCII part and, if the identifier
// was punycode-tagged, a punycode part covering the non-ASCII
// characters RFC 3492 would restore.
type Ident struct {
	ASCII    []byte
	Punycode []byte
}

// ident reads a [u]<decimal length>[_]<bytes> identifier production.
func (c *cursor) ident() (Ident, error) {
	isPunycode := c.eat('u')
	d, err := c.digit10()
	if err != nil {
		return Ident{}, err
	}
	length := uint64(d)
	if length != 0 {
		for {
			d2, err := c.digit10()
			if err != nil {
				break
			}
			nl, ok := checkedMulAdd(length, 10, uint64(d2))
			if !ok {
				return Ident{}, ErrInvalid
			}
			length = nl
		}
	}
	c.eat('_')
	start := c.pos
	end64 := uint64(start) + length
	if end64 > uint64(len(c.sym)) {
		return Ident{}, ErrInvalid
	}
	end := int(end64)
	c.pos = end
	raw := c.sym[start:end]
	if !isPunycode {
		return Ident{ASCII: raw}, nil
	}
	idx := bytes.LastIndexByte(raw, '_')
	var ascii, puny []byte
	if idx >= 0 {
		ascii, puny = raw[:idx], raw[idx+1:]
	} else {
		puny = raw
	}
	if len(puny) == 0 {
		return Ident{}, ErrInvalid
	}
	return Ident{ASCII: ascii, Punycode: puny}, nil
}

func checkedMulAdd(x, mul, add uint64) (uint64, bool) {
	if x != 0 && mul != 0 && x > (^uint64(0))/mul {
		return 0, false
	}
	p := x * mul
	s := p + add
	if s < p {
		return 0, false
	}
	return s, true
}

func checkedAdd(x, y uint64) (uint64, bool) {
	s := x + y
	if s < x {
		return 0, false
	}
	return s, true
}
