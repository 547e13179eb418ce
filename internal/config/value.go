package config

import (
	"strconv"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a format-neutral document node produced by the YAML and TOML
// front-ends. Only the field matching Kind is meaningful.
type Value struct {
	Kind  ValueKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Seq   []Value
	Map   *Mapping
}

// Entry is a single key/value pair of a Mapping.
type Entry struct {
	Key   Value
	Value Value
}

// Mapping is an ordered list of entries. Keys keep document order and may repeat.
type Mapping struct {
	Entries []Entry
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

// Float returns a float value.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Sequence returns a sequence value holding items.
func Sequence(items ...Value) Value { return Value{Kind: KindSequence, Seq: items} }

// NewMapping returns a mapping value holding entries.
func NewMapping(entries ...Entry) Value {
	return Value{Kind: KindMapping, Map: &Mapping{Entries: entries}}
}

// Pair builds a mapping entry with a string key.
func Pair(key string, v Value) Entry {
	return Entry{Key: String(key), Value: v}
}

// Get returns the value of the first entry whose key is the string key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	for _, e := range m.Entries {
		if e.Key.Kind == KindString && e.Key.Str == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// lookup returns a pointer to the first entry value with the string key.
func (m *Mapping) lookup(key string) *Value {
	for i := range m.Entries {
		if m.Entries[i].Key.Kind == KindString && m.Entries[i].Key.Str == key {
			return &m.Entries[i].Value
		}
	}
	return nil
}

// Set appends an entry for key.
func (m *Mapping) Set(key string, v Value) *Value {
	m.Entries = append(m.Entries, Pair(key, v))
	return &m.Entries[len(m.Entries)-1].Value
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Entries)
}

// Scalar renders a scalar value as text. Containers render as their kind name.
func (v Value) Scalar() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return v.Str
	default:
		return v.Kind.String()
	}
}
