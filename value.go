package jot

// Type identifies which kind of JSON value a Value holds.
type Type int

const (
	TypeNull Type = iota
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

// String returns the JSON name of the type.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value *Value
}

// Value is a single JSON value: null, a number, a string, an array of
// values, or an object of members.  Values are immutable once built; the
// accessors expose internal slices which callers must not modify.  The
// zero Value is null.
//
// Object members keep their original order.  Keys are unique: when the
// same key is given more than once, the first occurrence wins and later
// ones are dropped.
type Value struct {
	kind    Type
	number  float64
	str     string
	items   []*Value
	members []Member
}

// Null returns the JSON null value.
func Null() *Value {
	return &Value{}
}

// Number returns a JSON number value.
func Number(f float64) *Value {
	return &Value{kind: TypeNumber, number: f}
}

// String returns a JSON string value holding s.
func String(s string) *Value {
	return &Value{kind: TypeString, str: s}
}

// Array returns a JSON array of the given items.  A nil item is treated
// as JSON null.
func Array(items ...*Value) *Value {
	for i, item := range items {
		if item == nil {
			items[i] = Null()
		}
	}
	return &Value{kind: TypeArray, items: items}
}

// Object returns a JSON object of the given members, preserving order and
// dropping all but the first member for any repeated key.  A nil member
// value is treated as JSON null.
func Object(members ...Member) *Value {
	v := &Value{kind: TypeObject}
	for _, m := range members {
		if m.Value == nil {
			m.Value = Null()
		}
		v.members = appendMember(v.members, m)
	}
	return v
}

// appendMember adds m to members unless its key is already present.
func appendMember(members []Member, m Member) []Member {
	for i := range members {
		if members[i].Key == m.Key {
			return members
		}
	}
	return append(members, m)
}

// Type returns the kind of JSON value v holds.
func (v *Value) Type() Type { return v.kind }

// Float64 returns the numeric value.  It is zero unless v is a number.
func (v *Value) Float64() float64 { return v.number }

// StringValue returns the string value.  It is empty unless v is a
// string.
func (v *Value) StringValue() string { return v.str }

// Items returns the elements of an array value, nil for other types.
func (v *Value) Items() []*Value { return v.items }

// Members returns the members of an object value in their original
// order, nil for other types.
func (v *Value) Members() []Member { return v.members }

// Get returns the value for key in an object value, or nil if the key is
// absent or v is not an object.
func (v *Value) Get(key string) *Value {
	for i := range v.members {
		if v.members[i].Key == key {
			return v.members[i].Value
		}
	}
	return nil
}

// Equal reports whether two values represent the same JSON value.
// Arrays are compared in order; objects are compared without regard to
// member order.
func (v *Value) Equal(u *Value) bool {
	if v == nil || u == nil {
		return v == u
	}
	if v.kind != u.kind {
		return false
	}
	switch v.kind {
	case TypeNumber:
		return v.number == u.number
	case TypeString:
		return v.str == u.str
	case TypeArray:
		if len(v.items) != len(u.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(u.items[i]) {
				return false
			}
		}
		return true
	case TypeObject:
		if len(v.members) != len(u.members) {
			return false
		}
		for i := range v.members {
			w := u.Get(v.members[i].Key)
			if w == nil || !v.members[i].Value.Equal(w) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Interface converts v to the generic types used by encoding/json:
// nil, float64, string, []interface{}, and map[string]interface{}.
// Converting an object discards member order and is lossy if a caller
// later depends on it.
func (v *Value) Interface() interface{} {
	switch v.kind {
	case TypeNumber:
		return v.number
	case TypeString:
		return v.str
	case TypeArray:
		items := make([]interface{}, len(v.items))
		for i, item := range v.items {
			items[i] = item.Interface()
		}
		return items
	case TypeObject:
		m := make(map[string]interface{}, len(v.members))
		for _, member := range v.members {
			m[member.Key] = member.Value.Interface()
		}
		return m
	default:
		return nil
	}
}
