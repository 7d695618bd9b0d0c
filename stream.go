package demangle

import (
	"bufio"
	"io"
)

// isCandidateByte reports whether b could appear inside a mangled
// symbol's envelope or suffix: letters, digits, and the handful of
// punctuation bytes rustc's mangler ever emits. DemangleStream uses this
// to find candidate runs in arbitrary text (a linker map, a crash log, a
// perf trace) without needing the caller to have already split it into
// tokens.
func isCandidateByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9', b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z':
		return true
	case b == '_' || b == '.' || b == '@' || b == '$':
		return true
	}
	return false
}

// DemangleStream copies r to w, replacing every maximal run of candidate
// bytes that TryDemangle recognizes with its demangled form, and passing
// everything else (including a candidate run that turns out not to be
// a real mangling) through verbatim. This is the mode the demangle
// command line tool runs in when given no name arguments: piping a
// linker's raw output through it rewrites symbol names in place.
func DemangleStream(r io.Reader, w io.Writer, cfg Config) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	var run []byte
	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		sym, err := TryDemangle(run)
		if err != nil {
			_, werr := bw.Write(run)
			run = run[:0]
			return werr
		}
		werr := sym.writeTo(bw, cfg.alternate)
		run = run[:0]
		return werr
	}

	for {
		b, err := br.ReadByte()
		if err != nil {
			if ferr := flush(); ferr != nil {
				return ferr
			}
			if err == io.EOF {
				return bw.Flush()
			}
			return err
		}
		if isCandidateByte(b) {
			run = append(run, b)
			continue
		}
		if ferr := flush(); ferr != nil {
			return ferr
		}
		if err := bw.WriteByte(b); err != nil {
			return err
		}
	}
}
