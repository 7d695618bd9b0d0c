package v0

import "unicode/utf8"

// smallPunycodeLen bounds the number of decoded runes an identifier can
// produce: decoding happens into a fixed stack buffer rather than a
// growable slice, so pathologically long punycode can't force an
// unbounded allocation; it just falls back to the literal rendering.
const smallPunycodeLen = 128

const (
	punycodeBase   = 36
	punycodeTMin   = 1
	punycodeTMax   = 26
	punycodeSkew   = 38
	punycodeDamp   = 700
	punycodeBias0  = 72
	punycodeInitCP = 0x80
)

// decodePunycode implements RFC 3492 generalized variable-length integer
// decoding over id's ASCII and punycode parts, writing into a fixed
// buffer. It returns ok=false (rather than an error) for any failure:
// overflow, a buffer that would grow past smallPunycodeLen, or a decoded
// code point that isn't a valid scalar value. The caller falls back to
// a literal punycode{...} rendering in that case.
func decodePunycode(id Ident) ([]rune, bool) {
	var out [smallPunycodeLen]rune
	n := 0
	for _, b := range id.ASCII {
		if n >= len(out) {
			return nil, false
		}
		out[n] = rune(b)
		n++
	}

	cp := uint64(punycodeInitCP)
	insertPos := uint64(0)
	bias := uint64(punycodeBias0)
	damp := uint64(punycodeDamp)

	rest := id.Punycode
	for len(rest) > 0 {
		var delta, w, k uint64
		w = 1
		for {
			if len(rest) == 0 {
				return nil, false
			}
			b := rest[0]
			rest = rest[1:]
			var d uint64
			switch {
			case b >= 'a' && b <= 'z':
				d = uint64(b - 'a')
			case b >= '0' && b <= '9':
				d = 26 + uint64(b-'0')
			default:
				return nil, false
			}
			k += punycodeBase

			var t uint64
			if k > bias {
				t = k - bias
			}
			if t < punycodeTMin {
				t = punycodeTMin
			}
			if t > punycodeTMax {
				t = punycodeTMax
			}

			dw, ok := checkedMulAdd(d, w, 0)
			if !ok {
				return nil, false
			}
			delta, ok = checkedAdd(delta, dw)
			if !ok {
				return nil, false
			}
			if d < t {
				break
			}
			w, ok = checkedMulAdd(w, punycodeBase-t, 0)
			if !ok {
				return nil, false
			}
		}

		n++
		np, ok := checkedAdd(insertPos, delta)
		if !ok {
			return nil, false
		}
		insertPos = np
		ncp, ok := checkedAdd(cp, insertPos/uint64(n))
		if !ok {
			return nil, false
		}
		cp = ncp
		insertPos %= uint64(n)

		if cp > utf8.MaxRune || !utf8.ValidRune(rune(cp)) {
			return nil, false
		}
		if n > len(out) {
			return nil, false
		}
		copy(out[insertPos+1:n], out[insertPos:n-1])
		out[insertPos] = rune(cp)
		insertPos++

		if len(rest) == 0 {
			break
		}

		delta /= damp
		damp = 2
		delta += delta / uint64(n)
		k = 0
		for delta > ((punycodeBase-punycodeTMin)*punycodeTMax)/2 {
			delta /= punycodeBase - punycodeTMin
			k += punycodeBase
		}
		bias = k + ((punycodeBase-punycodeTMin+1)*delta)/(delta+punycodeSkew)
	}

	result := make([]rune, n)
	copy(result, out[:n])
	return result, true
}

// String renders id, decoding its punycode part if present. Decoding
// failure (buffer overflow, malformed varints, an invalid scalar value)
// falls back to the literal punycode{ascii-punycode} form rather than
// silently dropping characters.
func (id Ident) String() string {
	if len(id.Punycode) == 0 {
		return string(id.ASCII)
	}
	if runes, ok := decodePunycode(id); ok {
		return string(runes)
	}
	if len(id.ASCII) == 0 {
		return "punycode{" + string(id.Punycode) + "}"
	}
	return "punycode{" + string(id.ASCII) + "-" + string(id.Punycode) + "}"
}
