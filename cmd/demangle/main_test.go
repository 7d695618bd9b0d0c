package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoMainSingleArgument(t *testing.T) {
	var out, errOut bytes.Buffer
	code := doMain([]string{"_ZN3foo3barE"}, strings.NewReader(""), &out, &errOut)
	require.Equal(t, 0, code)
	require.Equal(t, "foo::bar\n", out.String())
}

func TestDoMainAlternateFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	code := doMain([]string{"-a", "_RCs_3foo"}, strings.NewReader(""), &out, &errOut)
	require.Equal(t, 0, code)
	require.Equal(t, "foo\n", out.String())
}

func TestDoMainStreamsStdinWhenNoArgs(t *testing.T) {
	var out, errOut bytes.Buffer
	code := doMain(nil, strings.NewReader("x = _ZN3fooE"), &out, &errOut)
	require.Equal(t, 0, code)
	require.Equal(t, "x = foo", out.String())
}

func TestDoMainHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	code := doMain([]string{"-h"}, strings.NewReader(""), &out, &errOut)
	require.Equal(t, 0, code)
	require.Contains(t, errOut.String(), "usage: demangle")
}

func TestDoMainUnknownFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	code := doMain([]string{"-bogus"}, strings.NewReader(""), &out, &errOut)
	require.Equal(t, 2, code)
}
