package jot

import "strconv"

// MarshalTo appends the compact JSON rendering of v to buf.  If the
// buffer is not large enough, a new buffer will be allocated on demand.
// The final buffer is returned, just like with `append`.
//
// Rendering is total: it never fails and emits no whitespace.  Numbers
// use the shortest representation that round-trips through float64.
// String content is written verbatim between quotes with no escaping, so
// output is only well-formed when string values and object keys are free
// of '"' and '\' bytes.
func (v *Value) MarshalTo(buf []byte) []byte {
	switch v.kind {
	case TypeNumber:
		return strconv.AppendFloat(buf, v.number, 'g', -1, 64)
	case TypeString:
		buf = append(buf, '"')
		buf = append(buf, v.str...)
		return append(buf, '"')
	case TypeArray:
		buf = append(buf, '[')
		for i, item := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = item.MarshalTo(buf)
		}
		return append(buf, ']')
	case TypeObject:
		buf = append(buf, '{')
		for i, m := range v.members {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, '"')
			buf = append(buf, m.Key...)
			buf = append(buf, '"', ':')
			buf = m.Value.MarshalTo(buf)
		}
		return append(buf, '}')
	default:
		return append(buf, "null"...)
	}
}

// String returns the compact JSON rendering of v.
func (v *Value) String() string {
	return string(v.MarshalTo(nil))
}
