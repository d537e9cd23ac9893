package jot

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToBSON converts v into the ordered document and array types of the
// MongoDB Go driver: objects become bson.D, arrays become bson.A, and
// null becomes primitive.Null.  The result of an object conversion can
// be passed directly to bson.Marshal; other types must be placed inside
// a document first.
func ToBSON(v *Value) interface{} {
	switch v.Type() {
	case TypeNumber:
		return v.Float64()
	case TypeString:
		return v.StringValue()
	case TypeArray:
		items := v.Items()
		a := make(bson.A, 0, len(items))
		for _, item := range items {
			a = append(a, ToBSON(item))
		}
		return a
	case TypeObject:
		members := v.Members()
		doc := make(bson.D, 0, len(members))
		for _, m := range members {
			doc = append(doc, bson.E{Key: m.Key, Value: ToBSON(m.Value)})
		}
		return doc
	default:
		return primitive.Null{}
	}
}

// FromBSON converts a BSON document into an object Value.  Int32 and
// int64 fields collapse into numbers per the float64 data model.  BSON
// types with no JSON counterpart, such as booleans, ObjectIDs, or
// timestamps, are an error.  Repeated keys follow the usual rule: the
// first occurrence wins.
func FromBSON(doc bson.Raw) (*Value, error) {
	elements, err := doc.Elements()
	if err != nil {
		return nil, fmt.Errorf("invalid BSON document: %w", err)
	}
	members := make([]Member, 0, len(elements))
	for _, e := range elements {
		key := e.Key()
		v, err := fromBSONValue(e.Value())
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		members = appendMember(members, Member{Key: key, Value: v})
	}
	return &Value{kind: TypeObject, members: members}, nil
}

func fromBSONValue(rv bson.RawValue) (*Value, error) {
	switch rv.Type {
	case bsontype.Double:
		return Number(rv.Double()), nil
	case bsontype.Int32:
		return Number(float64(rv.Int32())), nil
	case bsontype.Int64:
		return Number(float64(rv.Int64())), nil
	case bsontype.String:
		return String(rv.StringValue()), nil
	case bsontype.Null:
		return Null(), nil
	case bsontype.EmbeddedDocument:
		return FromBSON(rv.Document())
	case bsontype.Array:
		values, err := rv.Array().Values()
		if err != nil {
			return nil, fmt.Errorf("invalid BSON array: %w", err)
		}
		items := make([]*Value, 0, len(values))
		for _, value := range values {
			item, err := fromBSONValue(value)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return Array(items...), nil
	default:
		return nil, fmt.Errorf("unsupported BSON type %s", rv.Type)
	}
}
