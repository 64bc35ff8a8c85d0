// Copyright 2026 The doctree Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Event model consumed by the loader.
// Defines source position marks, the event vocabulary of the low-level
// parser, and the pull interface through which events are read.

package doctree

import (
	"fmt"
	"strings"
)

// Mark holds a position in the source stream.
type Mark struct {
	Index  int // The byte offset into the stream.
	Line   int // The position line (1-indexed).
	Column int // The position column (1-indexed).
}

func (m Mark) String() string {
	var builder strings.Builder
	if m.Line == 0 {
		return "<unknown position>"
	}

	fmt.Fprintf(&builder, "line %d", m.Line)
	if m.Column != 0 {
		fmt.Fprintf(&builder, ", column %d", m.Column)
	}

	return builder.String()
}

type EventType int8

// Event types.
const (
	// An empty event.
	NO_EVENT EventType = iota

	STREAM_START_EVENT   // A STREAM-START event.
	STREAM_END_EVENT     // A STREAM-END event.
	DOCUMENT_START_EVENT // A DOCUMENT-START event.
	DOCUMENT_END_EVENT   // A DOCUMENT-END event.
	ALIAS_EVENT          // An ALIAS event.
	SCALAR_EVENT         // A SCALAR event.
	SEQUENCE_START_EVENT // A SEQUENCE-START event.
	SEQUENCE_END_EVENT   // A SEQUENCE-END event.
	MAPPING_START_EVENT  // A MAPPING-START event.
	MAPPING_END_EVENT    // A MAPPING-END event.
)

var eventStrings = []string{
	NO_EVENT:             "none",
	STREAM_START_EVENT:   "stream start",
	STREAM_END_EVENT:     "stream end",
	DOCUMENT_START_EVENT: "document start",
	DOCUMENT_END_EVENT:   "document end",
	ALIAS_EVENT:          "alias",
	SCALAR_EVENT:         "scalar",
	SEQUENCE_START_EVENT: "sequence start",
	SEQUENCE_END_EVENT:   "sequence end",
	MAPPING_START_EVENT:  "mapping start",
	MAPPING_END_EVENT:    "mapping end",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventStrings) {
		return fmt.Sprintf("unknown event %d", e)
	}
	return eventStrings[e]
}

// Event holds one parsing event.
type Event struct {
	// The event type.
	Type EventType

	// The start and end of the event.
	StartMark, EndMark Mark

	// The anchor name. For ALIAS_EVENT this is the referenced anchor;
	// for SCALAR_EVENT, SEQUENCE_START_EVENT and MAPPING_START_EVENT it is
	// the node's own binding, if any.
	Anchor string

	// The tag (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT).
	// Empty or "!" means the non-specific tag.
	Tag string

	// The scalar value (for SCALAR_EVENT).
	Value string

	// The presentation style (for SCALAR_EVENT, SEQUENCE_START_EVENT,
	// MAPPING_START_EVENT).
	Style Style
}

// String renders the event compactly, for debugging and stream dumps.
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	if e.Anchor != "" {
		if e.Type == ALIAS_EVENT {
			fmt.Fprintf(&b, " *%s", e.Anchor)
		} else {
			fmt.Fprintf(&b, " &%s", e.Anchor)
		}
	}
	if e.Tag != "" {
		fmt.Fprintf(&b, " %s", e.Tag)
	}
	if e.Type == SCALAR_EVENT {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	return b.String()
}

// An EventSource is a pull source of parsing events.
//
// Next fills e with the next event of the stream, or returns an error when
// the underlying parser cannot produce one. A source reports a well-formed
// stream as STREAM_START, zero or more DOCUMENT_START/DOCUMENT_END pairs
// bracketing node events, and a final STREAM_END. Requesting an event after
// STREAM_END has been produced is a programming error.
//
// The two Produced methods let a loader be driven repeatedly against the
// same source for multi-document streams.
type EventSource interface {
	Next(e *Event) error
	StreamStartProduced() bool
	StreamEndProduced() bool
}
