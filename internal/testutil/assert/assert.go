// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package assert provides the small set of assertion helpers used by the
// doctree tests, so that the tests need no external framework.
package assert

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
)

type testingTB interface {
	Helper()
	Fatalf(string, ...any)
}

// Equal asserts that two comparable values are equal.
func Equal(tb testingTB, want, got any) {
	tb.Helper()
	if got != want {
		tb.Fatalf("got %v; want %v", got, want)
	}
}

// DeepEqual asserts that two values are equal under reflect.DeepEqual.
// Use it for slices, maps and structs containing them.
func DeepEqual(tb testingTB, want, got any) {
	tb.Helper()
	if !reflect.DeepEqual(got, want) {
		tb.Fatalf("got %+v; want %+v", got, want)
	}
}

// NoError asserts that err is nil.
func NoError(tb testingTB, err error) {
	tb.Helper()
	if err != nil {
		tb.Fatalf("unexpected error: %v", err)
	}
}

// ErrorMatches asserts that err is non-nil and its message matches the
// given regular expression.
func ErrorMatches(tb testingTB, pattern string, err error) {
	tb.Helper()
	if err == nil {
		tb.Fatalf("got nil; want error matching %q", pattern)
		return
	}
	re, reErr := regexp.Compile(pattern)
	if reErr != nil {
		tb.Fatalf("invalid regexp %q: %v", pattern, reErr)
		return
	}
	if !re.MatchString(err.Error()) {
		tb.Fatalf("error %q does not match %q", err.Error(), pattern)
	}
}

// ErrorAs asserts that err's chain contains an error assignable to target,
// which must be a non-nil pointer, and assigns it.
func ErrorAs(tb testingTB, err error, target any) {
	tb.Helper()
	if !errors.As(err, target) {
		tb.Fatalf("got %#v; want %s", err, reflect.TypeOf(target).Elem())
	}
}

// IsNil asserts that v is nil, including typed nil pointers, slices, maps,
// channels and functions.
func IsNil(tb testingTB, v any) {
	tb.Helper()
	if !isNil(v) {
		tb.Fatalf("got non-nil (type %T): %#v", v, v)
	}
}

// NotNil asserts that v is not nil.
func NotNil(tb testingTB, v any) {
	tb.Helper()
	if isNil(v) {
		tb.Fatalf("got nil; want non-nil")
	}
}

// True asserts that got is true.
func True(tb testingTB, got bool) {
	tb.Helper()
	if !got {
		tb.Fatalf("got false; want true")
	}
}

// PanicMatches asserts that f panics with a value whose message matches
// the given regular expression.
func PanicMatches(tb testingTB, pattern string, f func()) {
	tb.Helper()
	var got any
	func() {
		defer func() { got = recover() }()
		f()
	}()
	if got == nil {
		tb.Fatalf("function did not panic; want panic matching %q", pattern)
		return
	}
	var msg string
	switch x := got.(type) {
	case error:
		msg = x.Error()
	case string:
		msg = x
	default:
		msg = fmt.Sprint(x)
	}
	re, reErr := regexp.Compile(pattern)
	if reErr != nil {
		tb.Fatalf("invalid regexp %q: %v", pattern, reErr)
		return
	}
	if !re.MatchString(msg) {
		tb.Fatalf("panic %q does not match %q", msg, pattern)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer,
		reflect.Slice, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
