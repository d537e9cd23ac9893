// Copyright 2025 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package jot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// readChunkSize is how many bytes the Decoder requests from its reader
// at a time.
const readChunkSize = 8192

// Decoder reads and decodes successive JSON values from an input
// stream.  Values may be back to back or separated by white space; the
// grammar itself never skips white space, so separators between
// top-level values are consumed by the Decoder, not the parser.
//
// If a UTF-8 byte-order-mark (BOM) exists, it will be stripped.  Because
// only UTF-8 is supported, other BOMs are errors.
type Decoder struct {
	reader   io.Reader
	buf      []byte
	offset   int64 // stream offset of buf[0]
	maxDepth int
	eof      bool
	started  bool
}

// NewDecoder returns a new decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		reader:   r,
		maxDepth: DefaultMaxDepth,
	}
}

// MaxDepth sets the maximum allowed depth of arrays and objects.  The
// default is DefaultMaxDepth.
func (d *Decoder) MaxDepth(n int) {
	d.maxDepth = n
}

// InputOffset returns the stream offset of the first byte not yet
// consumed by Decode.  After a successful Decode it points just past the
// decoded value, at any separator bytes not yet skipped.
func (d *Decoder) InputOffset() int64 {
	return d.offset
}

// Decode returns the next JSON value from the input stream.  It returns
// io.EOF if no values remain.  A value truncated by end of input yields
// an error wrapping both io.ErrUnexpectedEOF and ErrIncomplete; grammar
// errors yield a *ParseError whose offset is absolute within the
// stream.
//
// A number that runs all the way to the end of a read chunk is not
// returned until the next chunk shows a delimiter or the stream ends,
// since more digits could have been in flight.
func (d *Decoder) Decode() (*Value, error) {
	if !d.started {
		if err := d.handleBOM(); err != nil {
			return nil, err
		}
		d.started = true
	}

	for {
		d.skipSeparators()
		if len(d.buf) == 0 {
			if d.eof {
				return nil, io.EOF
			}
			if err := d.fill(); err != nil {
				return nil, err
			}
			continue
		}

		v, rest, err := decode(d.buf, d.maxDepth)
		switch {
		case err == nil:
			if v.Type() == TypeNumber && len(rest) == 0 && !d.eof {
				if err := d.fill(); err != nil {
					return nil, err
				}
				continue
			}
			d.advance(len(d.buf) - len(rest))
			return v, nil
		case errors.Is(err, ErrIncomplete):
			if d.eof {
				return nil, fmt.Errorf("truncated JSON value: %w (%w)", io.ErrUnexpectedEOF, d.rebase(err))
			}
			if err := d.fill(); err != nil {
				return nil, err
			}
		default:
			return nil, d.rebase(err)
		}
	}
}

// skipSeparators consumes white space between top-level values.
func (d *Decoder) skipSeparators() {
	n := 0
	for n < len(d.buf) {
		switch d.buf[n] {
		case ' ', '\t', '\n', '\r':
			n++
		default:
			d.advance(n)
			return
		}
	}
	d.advance(n)
}

// advance drops n consumed bytes from the front of the buffer.
func (d *Decoder) advance(n int) {
	if n == 0 {
		return
	}
	d.offset += int64(n)
	d.buf = d.buf[:copy(d.buf, d.buf[n:])]
}

// fill reads one more chunk from the underlying reader, growing the
// buffer as needed.  Reaching end of input is not an error; it is
// recorded so decoding can treat the buffer as final.
func (d *Decoder) fill() error {
	n := len(d.buf)
	if cap(d.buf)-n < readChunkSize {
		grown := make([]byte, n, n+readChunkSize)
		copy(grown, d.buf)
		d.buf = grown
	}
	r, err := d.reader.Read(d.buf[n : n+readChunkSize])
	d.buf = d.buf[:n+r]
	if err != nil {
		if err == io.EOF {
			d.eof = true
			return nil
		}
		return newReadError(err)
	}
	return nil
}

// rebase shifts a ParseError's offset from buffer-relative to
// stream-absolute.
func (d *Decoder) rebase(err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return &ParseError{Offset: d.offset + pe.Offset, Msg: pe.Msg, kind: pe.kind}
	}
	return err
}

// Unmarshal converts JSON text into a single Value.  Unlike Decode, it
// requires that the input hold exactly one value: trailing bytes after
// the value are an error.
func Unmarshal(data []byte) (*Value, error) {
	v, rest, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		off := len(data) - len(rest)
		return nil, &ParseError{
			Offset: int64(off),
			Msg:    "unexpected trailing data" + excerpt(data, off),
			kind:   ErrMalformed,
		}
	}
	return v, nil
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16BEBOM = []byte{0xFE, 0xFF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf32BEBOM = []byte{0x00, 0x00, 0xFE, 0xFF}
	utf32LEBOM = []byte{0xFF, 0xFE, 0x00, 0x00}
)

// detect/discard/error on BOM.  Reads until four bytes are buffered so
// the longest BOM can be ruled out; a shorter stream is checked as-is.
func (d *Decoder) handleBOM() error {
	for len(d.buf) < 4 && !d.eof {
		if err := d.fill(); err != nil {
			return err
		}
	}
	switch {
	case bytes.HasPrefix(d.buf, utf32BEBOM), bytes.HasPrefix(d.buf, utf32LEBOM):
		return fmt.Errorf("error: detected unsupported UTF-32 BOM")
	case bytes.HasPrefix(d.buf, utf16BEBOM), bytes.HasPrefix(d.buf, utf16LEBOM):
		return fmt.Errorf("error: detected unsupported UTF-16 BOM")
	case bytes.HasPrefix(d.buf, utf8BOM):
		d.advance(len(utf8BOM))
	}
	return nil
}

// newReadError is used when we expect to be able to read and fail.
func newReadError(err error) error {
	return fmt.Errorf("error reading json: %w", err)
}
