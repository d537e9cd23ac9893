package jot

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// DefaultMaxDepth is the maximum nesting depth of arrays and objects
// that Decode accepts.  Decoder.MaxDepth can raise or lower the limit
// for streams.
const DefaultMaxDepth = 200

// Decode reads a single JSON value from the front of data and returns it
// along with the unconsumed remainder of data.  It consumes exactly the
// bytes of the value: no leading whitespace is allowed and anything after
// the value, including whitespace, is left in the remainder.
//
// On failure the returned error is a *ParseError wrapping ErrIncomplete
// when data ended before the value did, or ErrMalformed when the input
// can never become a valid value.  Incremental callers can retry an
// ErrIncomplete decode with more input appended.
//
// A number ending exactly at the end of data decodes successfully even
// though more input could extend it; callers reading from a stream should
// use Decoder, which re-reads in that case.
func Decode(data []byte) (*Value, []byte, error) {
	return decode(data, DefaultMaxDepth)
}

func decode(data []byte, maxDepth int) (*Value, []byte, error) {
	p := &parser{in: data, maxDepth: maxDepth}
	v, err := p.parseElement()
	if err != nil {
		return nil, nil, err
	}
	return v, p.in[p.pos:], nil
}

// parser is a cursor over one input buffer.
type parser struct {
	in       []byte
	pos      int
	depth    int
	maxDepth int
}

// incomplete reports that input ended mid-value.  Incomplete errors are
// always positioned at the end of input.
func (p *parser) incomplete(msg string) error {
	return &ParseError{Offset: int64(len(p.in)), Msg: msg, kind: ErrIncomplete}
}

func (p *parser) malformed(msg string) error {
	return p.malformedAt(p.pos, msg)
}

func (p *parser) malformedAt(off int, msg string) error {
	return &ParseError{Offset: int64(off), Msg: msg + excerpt(p.in, off), kind: ErrMalformed}
}

func (p *parser) parseElement() (*Value, error) {
	if p.pos >= len(p.in) {
		return nil, p.incomplete("expecting element")
	}
	switch ch := p.in[p.pos]; {
	case ch == '{':
		return p.parseObject()
	case ch == '[':
		return p.parseArray()
	case ch == 'n':
		return p.parseNull()
	case ch == '"':
		s, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case ch == '-' || ch == '+' || ch == '.' || isDigit(ch):
		return p.parseNumber()
	default:
		return nil, p.malformed("expecting element")
	}
}

// parseNull matches the literal "null".  There are no "true" or "false"
// literals in this dialect; a leading 't' or 'f' is not an element start.
func (p *parser) parseNull() (*Value, error) {
	const literal = "null"
	for i := 0; i < len(literal); i++ {
		if p.pos+i >= len(p.in) {
			return nil, p.incomplete("expecting null")
		}
		if p.in[p.pos+i] != literal[i] {
			return nil, p.malformedAt(p.pos+i, "expecting null")
		}
	}
	p.pos += len(literal)
	return Null(), nil
}

// parseQuoted decodes a string production, including both quotes, and
// returns the unescaped text.  The caller has already checked that the
// byte at p.pos is an opening quote.
func (p *parser) parseQuoted() (string, error) {
	p.pos++
	start := p.pos

	// Fast path: scan for the closing quote with no escapes.
	i := start
	for i < len(p.in) && p.in[i] != '"' && p.in[i] != '\\' {
		i++
	}
	if i >= len(p.in) {
		return "", p.incomplete("unterminated string")
	}
	if p.in[i] == '"' {
		s := string(p.in[start:i])
		p.pos = i + 1
		return s, nil
	}

	// Slow path: build the unescaped text from the first backslash on.
	out := append(make([]byte, 0, i-start+16), p.in[start:i]...)
	p.pos = i
	for {
		if p.pos >= len(p.in) {
			return "", p.incomplete("unterminated string")
		}
		switch p.in[p.pos] {
		case '"':
			p.pos++
			return string(out), nil
		case '\\':
			var err error
			out, err = p.parseEscape(out)
			if err != nil {
				return "", err
			}
		default:
			j := p.pos
			for j < len(p.in) && p.in[j] != '"' && p.in[j] != '\\' {
				j++
			}
			out = append(out, p.in[p.pos:j]...)
			p.pos = j
		}
	}
}

// parseEscape decodes one backslash escape, appending its expansion to
// out.  Recognized escapes are \" \\ \/ \b \n \r \t and \uXXXX.  A
// \uXXXX escape yields the code point's UTF-8 bytes; surrogate halves
// are not combined and encode as the replacement character U+FFFD.
func (p *parser) parseEscape(out []byte) ([]byte, error) {
	if p.pos+1 >= len(p.in) {
		return nil, p.incomplete("truncated escape")
	}
	switch ch := p.in[p.pos+1]; ch {
	case '"', '\\', '/':
		out = append(out, ch)
		p.pos += 2
	case 'b':
		out = append(out, '\b')
		p.pos += 2
	case 'n':
		out = append(out, '\n')
		p.pos += 2
	case 'r':
		out = append(out, '\r')
		p.pos += 2
	case 't':
		out = append(out, '\t')
		p.pos += 2
	case 'u':
		var r rune
		for i := p.pos + 2; i < p.pos+6; i++ {
			if i >= len(p.in) {
				return nil, p.incomplete("truncated unicode escape")
			}
			d, ok := hexDigit(p.in[i])
			if !ok {
				return nil, p.malformedAt(i, "invalid unicode escape")
			}
			r = r<<4 | rune(d)
		}
		out = utf8.AppendRune(out, r)
		p.pos += 6
	default:
		return nil, p.malformedAt(p.pos+1, fmt.Sprintf("unknown escape '\\%c'", ch))
	}
	return out, nil
}

func hexDigit(ch byte) (byte, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	default:
		return 0, false
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// parseNumber matches a permissive float: an optional '+' or '-' sign, a
// mantissa of digits that may carry leading zeros and a leading or
// trailing decimal point, and an optional exponent.  At least one
// mantissa digit is required.  An 'e' that is not followed by a
// well-formed exponent is not part of the number and is left
// unconsumed.
func (p *parser) parseNumber() (*Value, error) {
	start := p.pos
	i := p.pos
	n := len(p.in)

	if i < n && (p.in[i] == '+' || p.in[i] == '-') {
		i++
	}
	digits := 0
	for i < n && isDigit(p.in[i]) {
		i++
		digits++
	}
	if i < n && p.in[i] == '.' {
		i++
		for i < n && isDigit(p.in[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		if i >= n {
			return nil, p.incomplete("truncated number")
		}
		return nil, p.malformedAt(i, "expecting digit in number")
	}

	if i < n && (p.in[i] == 'e' || p.in[i] == 'E') {
		j := i + 1
		if j < n && (p.in[j] == '+' || p.in[j] == '-') {
			j++
		}
		expDigits := 0
		for j < n && isDigit(p.in[j]) {
			j++
			expDigits++
		}
		switch {
		case expDigits > 0:
			i = j
		case j >= n:
			return nil, p.incomplete("truncated number")
		}
	}

	f, err := strconv.ParseFloat(string(p.in[start:i]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, p.malformedAt(start, "invalid number")
	}
	p.pos = i
	return Number(f), nil
}

func (p *parser) parseArray() (*Value, error) {
	if err := p.push(); err != nil {
		return nil, err
	}
	defer p.pop()
	p.pos++

	if p.pos >= len(p.in) {
		return nil, p.incomplete("expecting element or end of array")
	}
	if p.in[p.pos] == ']' {
		p.pos++
		return Array(), nil
	}

	var items []*Value
	for {
		item, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.pos >= len(p.in) {
			return nil, p.incomplete("expecting value-separator or end of array")
		}
		switch p.in[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return Array(items...), nil
		default:
			return nil, p.malformed("expecting value-separator or end of array")
		}
	}
}

func (p *parser) parseObject() (*Value, error) {
	if err := p.push(); err != nil {
		return nil, err
	}
	defer p.pop()
	p.pos++

	// Check for empty object or start of key
	if p.pos >= len(p.in) {
		return nil, p.incomplete("expecting key or end of object")
	}
	switch p.in[p.pos] {
	case '}':
		p.pos++
		return Object(), nil
	case '"':
	default:
		return nil, p.malformed("expecting key or end of object")
	}

	members, err := p.parsePair(nil)
	if err != nil {
		return nil, err
	}
	for {
		if p.pos >= len(p.in) {
			return nil, p.incomplete("expecting value-separator or end of object")
		}
		switch p.in[p.pos] {
		case ',':
			p.pos++
			if p.pos >= len(p.in) {
				return nil, p.incomplete("expecting key")
			}
			if p.in[p.pos] != '"' {
				return nil, p.malformed("expecting key")
			}
			members, err = p.parsePair(members)
			if err != nil {
				return nil, err
			}
		case '}':
			p.pos++
			return &Value{kind: TypeObject, members: members}, nil
		default:
			return nil, p.malformed("expecting value-separator or end of object")
		}
	}
}

// parsePair decodes one key, name separator, and value, appending the
// member to members.  The first occurrence of a repeated key wins; later
// duplicates are parsed and dropped.
func (p *parser) parsePair(members []Member) ([]Member, error) {
	key, err := p.parseQuoted()
	if err != nil {
		return nil, err
	}
	if p.pos >= len(p.in) {
		return nil, p.incomplete("expecting ':'")
	}
	if p.in[p.pos] != ':' {
		return nil, p.malformed("expecting ':'")
	}
	p.pos++
	value, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	return appendMember(members, Member{Key: key, Value: value}), nil
}

// Depth check
func (p *parser) push() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.malformed("maximum depth exceeded")
	}
	return nil
}

func (p *parser) pop() {
	p.depth--
}
