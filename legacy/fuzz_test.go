package legacy

import "testing"

// FuzzDecode is the Go-native equivalent of the original's separate
// fuzz crate: Decode must never panic on arbitrary bytes, regardless of
// whether they form a valid element sequence.
func FuzzDecode(f *testing.F) {
	seeds := []string{
		"3foo3barE",
		"3foo17h1234567890abcdefE",
		"3foo7bar$BP$E",
		"8foo..barE",
		"E",
		"99fooE",
		"3foo",
		"",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		sym, _, err := Decode(data)
		if err == nil {
			_ = sym.String(false)
			_ = sym.String(true)
		}
	})
}
