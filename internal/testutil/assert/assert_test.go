// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

package assert

import (
	"fmt"
	"io"
	"regexp"
	"testing"
)

// fakeTB records the first fatal failure instead of aborting the test.
type fakeTB struct {
	failed bool
	msg    string
}

func (f *fakeTB) Helper() {}

func (f *fakeTB) Fatalf(format string, args ...any) {
	f.failed = true
	f.msg = fmt.Sprintf(format, args...)
}

func wantFailure(t *testing.T, f *fakeTB, pattern string) {
	t.Helper()
	if !f.failed {
		t.Fatalf("expected a failure matching %q", pattern)
	}
	if !regexp.MustCompile(pattern).MatchString(f.msg) {
		t.Fatalf("failure message %q does not match %q", f.msg, pattern)
	}
}

func TestEqual(t *testing.T) {
	Equal(t, 2, 2)
	Equal(t, "ok", "ok")

	mock := &fakeTB{}
	Equal(mock, 2, 1)
	wantFailure(t, mock, `^got 1; want 2$`)
}

func TestDeepEqual(t *testing.T) {
	DeepEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	DeepEqual(t, map[string]int{"a": 1}, map[string]int{"a": 1})

	mock := &fakeTB{}
	DeepEqual(mock, []int{2}, []int{1})
	wantFailure(t, mock, `^got \[1\]; want \[2\]$`)
}

func TestNoError(t *testing.T) {
	var err error
	NoError(t, err)

	mock := &fakeTB{}
	NoError(mock, fmt.Errorf("problem"))
	wantFailure(t, mock, `^unexpected error: problem$`)
}

func TestErrorMatches(t *testing.T) {
	ErrorMatches(t, `http \d+: not found`, fmt.Errorf("http 404: not found"))

	mock := &fakeTB{}
	ErrorMatches(mock, `x`, nil)
	wantFailure(t, mock, `^got nil; want error matching "x"$`)

	mock = &fakeTB{}
	ErrorMatches(mock, `def`, fmt.Errorf("abc"))
	wantFailure(t, mock, `^error "abc" does not match "def"$`)
}

type pathErr struct {
	path string
}

func (e *pathErr) Error() string { return "bad path " + e.path }

func TestErrorAs(t *testing.T) {
	var err error = fmt.Errorf("wrap: %w", &pathErr{path: "/x"})

	var target *pathErr
	ErrorAs(t, err, &target)
	Equal(t, "/x", target.path)

	mock := &fakeTB{}
	var other *fakeTB
	_ = other
	var pe *pathErr
	ErrorAs(mock, fmt.Errorf("plain"), &pe)
	wantFailure(t, mock, `want \*assert\.pathErr`)
}

func TestNilChecks(t *testing.T) {
	var p *int
	IsNil(t, p)
	var s []int
	IsNil(t, s)
	var w io.Writer
	IsNil(t, w)

	NotNil(t, make([]int, 0))
	x := 0
	NotNil(t, &x)

	mock := &fakeTB{}
	IsNil(mock, &x)
	wantFailure(t, mock, `^got non-nil`)

	mock = &fakeTB{}
	NotNil(mock, p)
	wantFailure(t, mock, `^got nil; want non-nil$`)
}

func TestTrue(t *testing.T) {
	True(t, 1 < 2)

	mock := &fakeTB{}
	True(mock, false)
	wantFailure(t, mock, `^got false; want true$`)
}

func TestPanicMatches(t *testing.T) {
	PanicMatches(t, `boom \d+`, func() { panic("boom 123") })
	PanicMatches(t, `fail xyz`, func() { panic(fmt.Errorf("fail xyz")) })

	mock := &fakeTB{}
	PanicMatches(mock, `x`, func() {})
	wantFailure(t, mock, `^function did not panic`)
}
