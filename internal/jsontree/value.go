// Package jsontree decodes schema-less JSON into a tagged value tree and
// answers path queries against it.
//
// Pages embed metadata whose shape varies from release to release, so
// callers never bind it to structs. They query it instead:
//
//	v, err := jsontree.Parse(data)
//	url, ok := v.Get("additionalProperty.#(name=file_mp3-128).value").Str()
//
// Paths are dot separated. Each segment is an object key, an array index, or
// a filter of the form #(key=value) that selects the first array element
// whose key has the given scalar text.
package jsontree

import (
	"errors"
	"strconv"

	"github.com/tidwall/gjson"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "null"
	}
}

// ErrInvalid is returned by Parse for malformed input.
var ErrInvalid = errors.New("invalid json")

// Value is one node of a decoded document. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	raw  string // number text as written
	s    string
	arr  []Value
	keys []string
	obj  map[string]Value
}

// Parse decodes data into a tree.
func Parse(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, ErrInvalid
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// ParseString is Parse for string input.
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.True, gjson.False:
		return Value{kind: Bool, b: r.Bool()}
	case gjson.Number:
		return Value{kind: Number, n: r.Num, raw: r.Raw}
	case gjson.String:
		return Value{kind: String, s: r.Str}
	case gjson.JSON:
		if r.IsArray() {
			items := r.Array()
			arr := make([]Value, 0, len(items))
			for _, item := range items {
				arr = append(arr, fromResult(item))
			}
			return Value{kind: Array, arr: arr}
		}
		v := Value{kind: Object, obj: make(map[string]Value)}
		r.ForEach(func(key, val gjson.Result) bool {
			k := key.String()
			if _, seen := v.obj[k]; !seen {
				v.keys = append(v.keys, k)
			}
			v.obj[k] = fromResult(val)
			return true
		})
		return v
	default:
		return Value{}
	}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null or missing.
func (v Value) IsNull() bool { return v.kind == Null }

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.s, true
}

// Num returns the number held by v.
func (v Value) Num() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	return v.n, true
}

// Int returns the number held by v truncated to an int.
func (v Value) Int() (int, bool) {
	n, ok := v.Num()
	return int(n), ok
}

// Boolean returns the bool held by v.
func (v Value) Boolean() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

// Items returns the elements of an array, or nil.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return v.arr
}

// Keys returns object keys in document order, or nil.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	return v.keys
}

// Field returns the member named key of an object.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	f, ok := v.obj[key]
	return f, ok
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Text returns scalar values as text: strings as is, numbers as written in
// the source, bools as "true"/"false". Other kinds report false.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case String:
		return v.s, true
	case Number:
		if v.raw != "" {
			return v.raw, true
		}
		return strconv.FormatFloat(v.n, 'f', -1, 64), true
	case Bool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}
