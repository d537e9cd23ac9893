// Copyright 2025 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package jot decodes a permissive dialect of JSON into an immutable value
// tree and renders trees back to compact JSON text.  It decodes successive
// values from a byte stream, reporting whether bad input is malformed or
// merely incomplete so that callers can retry with more data.  Only UTF-8
// encoding is supported.
//
// # Dialect
//
// The grammar is deliberately narrower and looser than RFC 8259 in equal
// measure.  Differences that reject standard JSON:
//
//   - There are no "true" or "false" literals.  Only null, numbers,
//     strings, arrays, and objects exist.
//   - White space is never skipped inside a value, so "[1, 2]" is
//     malformed while "[1,2]" is fine.  The stream Decoder does allow
//     white space between top-level values.
//   - The \f escape is not recognized.
//
// Differences that accept more than standard JSON:
//
//   - Numbers may have a leading '+', leading zeros, and a bare leading
//     or trailing decimal point, so "+0", "00012345", and ".5" are all
//     valid numbers.
//   - Strings may contain raw control characters, including newlines.
//
// All numbers are float64.  Values that overflow float64 saturate to an
// infinity rather than erroring.  A \uXXXX escape becomes the UTF-8
// encoding of its code point; surrogate pairs are not combined, so each
// half becomes U+FFFD.
//
// Object member order is preserved.  Keys are unique: if a key repeats,
// the first occurrence wins and later ones are dropped.
//
// # Incremental decoding
//
// Decode reads one value from the front of its input and returns the
// unconsumed remainder, so values can be decoded back to back from one
// buffer.  Errors distinguish input that can never become valid
// (ErrMalformed) from input that ended too soon (ErrIncomplete).
// Decoder wraps this contract around an io.Reader, retrying incomplete
// values as more input arrives.
//
// # Rendering
//
// MarshalTo and String render a value tree to compact JSON with no
// whitespace.  Rendering never fails, but string content is written
// without escaping, so output containing quotes, backslashes, or an
// infinite number is not guaranteed to decode back to the same tree.
//
// # BSON
//
// ToBSON and FromBSON bridge value trees to the MongoDB Go driver's
// document types so that decoded JSON can be stored as BSON and BSON
// read back as a value tree.
//
// # Testing
//
// Jot is extensively tested.
//
// Decoding of the common subset of this dialect and standard JSON is
// cross-checked against the json-iterator library.  Grammar edge cases
// live in a corpus under testdata/grammar, split into files that must
// parse, files that must fail, and files that must report incomplete
// input.  A go-fuzz harness in testdata/fuzzing exercises the
// distinguishing invariants: decoding never panics, malformed input
// stays malformed when extended, and renderable trees survive a decode
// round trip.
package jot
