// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Error types for document loading.
// Provides structured error reporting with position information.

package doctree

import (
	"fmt"
	"strings"
)

// ParserError reports a lexical or syntactic fault from the low-level
// event parser. It is always fatal to the load that observed it.
type ParserError struct {
	// Message is a short summary of the parse phase that failed.
	Message string

	// Problem describes what the parser could not accept.
	Problem string

	// Offset is the byte offset of the fault in the stream.
	Offset int

	// Mark is the fault's position.
	Mark Mark

	// Context holds surrounding source text, when the parser supplied it.
	Context string
}

func (e *ParserError) Error() string {
	var builder strings.Builder
	builder.WriteString("yaml: ")
	if e.Message != "" {
		fmt.Fprintf(&builder, "%s: ", e.Message)
	}
	fmt.Fprintf(&builder, "%s: %s", e.Mark, e.Problem)
	if e.Context != "" {
		fmt.Fprintf(&builder, "\n\t%s", e.Context)
	}
	return builder.String()
}

// UnresolvedAliasError reports an alias whose anchor is not defined
// anywhere in the document. It is fatal to the load.
type UnresolvedAliasError struct {
	// Anchor is the referenced anchor name.
	Anchor string

	// Mark is the alias's position.
	Mark Mark
}

func (e *UnresolvedAliasError) Error() string {
	return fmt.Sprintf("yaml: %s: unknown anchor '%s' referenced", e.Mark, e.Anchor)
}

// yamlError is an internal error wrapper type.
type yamlError struct {
	err error
}

func (e *yamlError) Error() string {
	return e.err.Error()
}

func fail(err error) {
	panic(&yamlError{err})
}

func failf(format string, args ...any) {
	panic(&yamlError{fmt.Errorf("yaml: "+format, args...)})
}

func handleErr(err *error) {
	if v := recover(); v != nil {
		if e, ok := v.(*yamlError); ok {
			*err = e.err
		} else {
			panic(v)
		}
	}
}
