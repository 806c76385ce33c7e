// Copyright (c) 2026, Tidevault Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package telemetry

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindObject
	KindArray
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a tagged-variant JSON value. The zero Value is null.
// Object member order is not preserved; traversal and marshalling use
// sorted keys so derived artifacts are stable across runs.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	obj  map[string]*Value
	arr  []*Value
}

// Null returns a null Value.
func Null() *Value { return &Value{kind: KindNull} }

// Number returns a numeric Value.
func Number(f float64) *Value { return &Value{kind: KindNumber, num: f} }

// String returns a string Value.
func String(s string) *Value { return &Value{kind: KindString, str: s} }

// Bool returns a boolean Value.
func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// Object returns an empty object Value.
func Object() *Value { return &Value{kind: KindObject, obj: make(map[string]*Value)} }

// Array returns an array Value holding the given items.
func Array(items ...*Value) *Value { return &Value{kind: KindArray, arr: items} }

// FromAny converts a value produced by encoding/json decoding into a Value.
// Unrecognized Go types are stored as their string representation, the same
// lossy fallback the rest of the system applies to unexpected input.
func FromAny(v any) *Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case float64:
		return Number(val)
	case int:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case map[string]any:
		obj := Object()
		for k, member := range val {
			obj.Set(k, FromAny(member))
		}
		return obj
	case []any:
		items := make([]*Value, 0, len(val))
		for _, member := range val {
			items = append(items, FromAny(member))
		}
		return Array(items...)
	default:
		return String(fmt.Sprintf("%v", val))
	}
}

// Kind returns the variant held by the Value. A nil Value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// AsFloat returns the numeric value and true if the Value is a number.
func (v *Value) AsFloat() (float64, bool) {
	if v == nil || v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsString returns the string value and true if the Value is a string.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsBool returns the boolean value and true if the Value is a bool.
func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Get returns the named object member, or nil if the Value is not an object
// or the member is absent. Safe on a nil receiver.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	return v.obj[key]
}

// GetPath descends through nested object members, returning nil if any
// segment is absent.
func (v *Value) GetPath(keys ...string) *Value {
	cur := v
	for _, k := range keys {
		cur = cur.Get(k)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Set stores an object member. It is a no-op if the Value is not an object.
func (v *Value) Set(key string, member *Value) {
	if v == nil || v.kind != KindObject {
		return
	}
	v.obj[key] = member
}

// Delete removes an object member. It is a no-op if the Value is not an
// object.
func (v *Value) Delete(key string) {
	if v == nil || v.kind != KindObject {
		return
	}
	delete(v.obj, key)
}

// Keys returns the object member names in sorted order. Empty for
// non-objects.
func (v *Value) Keys() []string {
	if v == nil || v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Items returns the array elements. Empty for non-arrays.
func (v *Value) Items() []*Value {
	if v == nil || v.kind != KindArray {
		return nil
	}
	return v.arr
}

// SetItems replaces the array elements. It is a no-op if the Value is not an
// array.
func (v *Value) SetItems(items []*Value) {
	if v == nil || v.kind != KindArray {
		return
	}
	v.arr = items
}

// Len returns the number of object members or array elements, zero otherwise.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindObject:
		return len(v.obj)
	case KindArray:
		return len(v.arr)
	default:
		return 0
	}
}

// Any converts the Value back to the plain Go shape encoding/json produces.
func (v *Value) Any() any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, member := range v.obj {
			out[k] = member.Any()
		}
		return out
	case KindArray:
		out := make([]any, 0, len(v.arr))
		for _, member := range v.arr {
			out = append(out, member.Any())
		}
		return out
	default:
		return nil
	}
}

// NumericFields returns the object's members as a name-to-number map and
// true when the Value is a non-empty object whose every member is numeric.
// This is how logically atomic multi-field readings (like a position) are
// recognized.
func (v *Value) NumericFields() (map[string]float64, bool) {
	if v.Kind() != KindObject || len(v.obj) == 0 {
		return nil, false
	}
	fields := make(map[string]float64, len(v.obj))
	for k, member := range v.obj {
		f, ok := member.AsFloat()
		if !ok {
			return nil, false
		}
		fields[k] = f
	}
	return fields, true
}

// MarshalJSON emits the underlying JSON value. Object keys are sorted by
// encoding/json's map ordering, which keeps serialized artifacts stable.
func (v *Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// UnmarshalJSON decodes any JSON value into the tagged variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = *FromAny(raw)
	return nil
}

// Parse decodes a JSON document into a Value tree.
func Parse(data []byte) (*Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse telemetry document: %w", err)
	}
	return FromAny(raw), nil
}
