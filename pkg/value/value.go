// Package value implements the Jyro value model: the six-variant tagged sum
// described in spec §3/§4.1 (Null, Boolean, Number, String, Array, Object)
// together with equality, truthiness, stringification, arithmetic, ordering
// and iteration.
//
// This has no natural third-party-library seam — a tagged union with
// epsilon-aware numeric equality and JSON-shaped stringification is pure
// domain logic, so it is implemented on the standard library alone (see
// DESIGN.md).
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	default:
		return "Invalid"
	}
}

// Epsilon is the tolerance used for Number equality and IsInteger (spec §3/§4.1).
const Epsilon = 1e-9

// Null is the singleton null value.
var Null = &Value{kind: KindNull}

// True and False are the two boolean singletons.
var (
	True  = &Value{kind: KindBoolean, boolean: true}
	False = &Value{kind: KindBoolean, boolean: false}
)

// Value is a Jyro runtime value. The zero Value is not valid; use the
// constructors below.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	str     string
	array   []*Value
	object  *orderedMap
}

// Kind returns the variant tag.
func (v *Value) Kind() Kind { return v.kind }

// Bool constructs a Boolean value.
func Bool(b bool) *Value {
	if b {
		return True
	}
	return False
}

// Number constructs a Number value.
func Number(n float64) *Value { return &Value{kind: KindNumber, number: n} }

// String constructs a String value.
func String(s string) *Value { return &Value{kind: KindString, str: s} }

// NewArray constructs an Array value from elements (copied, never aliased).
func NewArray(elems ...*Value) *Value {
	cp := make([]*Value, len(elems))
	copy(cp, elems)
	return &Value{kind: KindArray, array: cp}
}

// NewObject constructs an empty, insertion-ordered Object value.
func NewObject() *Value {
	return &Value{kind: KindObject, object: newOrderedMap()}
}

// --- accessors ---

// AsBool returns the underlying bool. Only valid when Kind() == KindBoolean.
func (v *Value) AsBool() bool { return v.boolean }

// AsNumber returns the underlying float64. Only valid when Kind() == KindNumber.
func (v *Value) AsNumber() float64 { return v.number }

// AsString returns the underlying string. Only valid when Kind() == KindString.
func (v *Value) AsString() string { return v.str }

// Elements returns the live backing slice of an Array value. Callers that
// mutate it are mutating the value in place, matching spec §3's in-place
// mutation model.
func (v *Value) Elements() []*Value { return v.array }

// Len returns the number of elements/keys for Array/Object, 0 otherwise.
func (v *Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.array)
	case KindObject:
		return v.object.len()
	default:
		return 0
	}
}

// Get returns the element at i for an Array. The caller must have already
// range-checked; out-of-range reads are a runtime-error concern handled by
// pkg/interpreter, not by the value model.
func (v *Value) Get(i int) *Value { return v.array[i] }

// Set assigns the element at i for an Array.
func (v *Value) Set(i int, elem *Value) { v.array[i] = elem }

// Append appends to an Array in place.
func (v *Value) Append(elem *Value) { v.array = append(v.array, elem) }

// Keys returns an Object's keys in insertion order.
func (v *Value) Keys() []string { return v.object.keys() }

// Property reads an Object property, returning Null for a missing key (spec §3).
func (v *Value) Property(name string) *Value {
	if val, ok := v.object.get(name); ok {
		return val
	}
	return Null
}

// HasProperty reports whether an Object has name set.
func (v *Value) HasProperty(name string) bool {
	_, ok := v.object.get(name)
	return ok
}

// SetProperty sets an Object property in place, preserving insertion order
// for new keys.
func (v *Value) SetProperty(name string, val *Value) { v.object.set(name, val) }

// --- truthiness ---

// Truthy implements spec §4.1's truthiness table. Per SPEC_FULL.md §C.2 the
// open question on Array/Object truthiness is resolved as unconditionally
// truthy.
func (v *Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBoolean:
		return v.boolean
	case KindNumber:
		return v.number != 0
	case KindString:
		return v.str != ""
	case KindArray, KindObject:
		return true
	default:
		return false
	}
}

// IsInteger reports whether a Number is within Epsilon of an integer value.
func (v *Value) IsInteger() bool {
	if v.kind != KindNumber {
		return false
	}
	return math.Abs(v.number-math.Round(v.number)) < Epsilon
}

// --- equality ---

// Equal implements spec §4.1's `==` contract.
func Equal(a, b *Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBoolean:
		return a.boolean == b.boolean
	case KindNumber:
		return math.Abs(a.number-b.number) < Epsilon
	case KindString:
		return a.str == b.str
	case KindArray:
		if len(a.array) != len(b.array) {
			return false
		}
		for i := range a.array {
			if !Equal(a.array[i], b.array[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.object.len() != b.object.len() {
			return false
		}
		for _, k := range a.object.keys() {
			av, _ := a.object.get(k)
			bv, ok := b.object.get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// --- stringification ---

// Stringify renders a Value for diagnostics and string-concatenation
// fallback (spec §4.1). Arrays/Objects get a JSON-shaped rendering.
func Stringify(v *Value) string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBoolean:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.number)
	case KindString:
		return v.str
	case KindArray:
		parts := make([]string, len(v.array))
		for i, e := range v.array {
			parts[i] = jsonShape(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		return jsonShape(v)
	default:
		return ""
	}
}

func jsonShape(v *Value) string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindArray:
		parts := make([]string, len(v.array))
		for i, e := range v.array {
			parts[i] = jsonShape(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		keys := v.object.keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			val, _ := v.object.get(k)
			parts[i] = strconv.Quote(k) + ": " + jsonShape(val)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return Stringify(v)
	}
}

func formatNumber(n float64) string {
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	if math.IsNaN(n) {
		return "NaN"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// --- iteration ---

// IterationElement is one step of iterating an Array (Value set, Key empty)
// or an Object (Key and Value set) per spec §4.1/§4.7.
type IterationElement struct {
	Key   string
	Value *Value
}

// Iterate returns the fixed-at-call-time iteration sequence for an Array or
// Object, and an error flag for any other variant (spec §4.1: "all other
// variants raise a runtime error when used as the collection of a foreach").
func Iterate(v *Value) ([]IterationElement, bool) {
	switch v.kind {
	case KindArray:
		elems := make([]IterationElement, len(v.array))
		for i, e := range v.array {
			elems[i] = IterationElement{Value: e}
		}
		return elems, true
	case KindObject:
		keys := v.object.keys()
		elems := make([]IterationElement, len(keys))
		for i, k := range keys {
			val, _ := v.object.get(k)
			elems[i] = IterationElement{Key: k, Value: val}
		}
		return elems, true
	default:
		return nil, false
	}
}

// --- orderedMap: insertion-ordered string->*Value map backing Object ---

type orderedMap struct {
	index map[string]int
	keyz  []string
	vals  []*Value
}

func newOrderedMap() *orderedMap {
	return &orderedMap{index: make(map[string]int)}
}

func (m *orderedMap) get(key string) (*Value, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.vals[i], true
}

func (m *orderedMap) set(key string, val *Value) {
	if i, ok := m.index[key]; ok {
		m.vals[i] = val
		return
	}
	m.index[key] = len(m.keyz)
	m.keyz = append(m.keyz, key)
	m.vals = append(m.vals, val)
}

func (m *orderedMap) keys() []string {
	out := make([]string, len(m.keyz))
	copy(out, m.keyz)
	return out
}

func (m *orderedMap) len() int { return len(m.keyz) }

// --- debug helper, not used by the interpreter's hot path ---

func (v *Value) GoString() string {
	return fmt.Sprintf("Value{%s: %s}", v.kind, Stringify(v))
}
