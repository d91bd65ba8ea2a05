// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node

import (
	"fmt"
	"iter"

	"github.com/creachadair/jindex"
	"github.com/creachadair/jindex/internal/escape"
	"go4.org/mem"
)

// An Object is a view of a JSON object. Members are reported in the order
// they occur in the source. Duplicate keys are preserved; lookups by key
// resolve to the first member with that key.
type Object struct{ base }

// entries calls f with the token index of each member entry of o.
func (o Object) entries(f func(ent int) bool) { o.d.children(o.i, f) }

// keyIs reports whether the key of the member at index ent equals key.
func (o Object) keyIs(ent int, key string) bool {
	raw := o.d.text(ent + 1)
	if n := raw.Len(); n >= 2 && raw.At(0) == '"' {
		raw = raw.Slice(1, n-1)
		if mem.IndexByte(raw, '\\') >= 0 {
			return string(escape.Unquote(raw)) == key
		}
	}
	return raw.EqualString(key)
}

// key returns the decoded key of the member at index ent.
func (o Object) key(ent int) string { return jindex.KeyText(o.d.text(ent + 1)) }

// Len reports the number of members in o, including duplicates.
func (o Object) Len() int {
	var n int
	o.entries(func(int) bool { n++; return true })
	return n
}

// Keys returns the keys of o in source order, including duplicates.
func (o Object) Keys() []string {
	var keys []string
	o.entries(func(ent int) bool {
		keys = append(keys, o.key(ent))
		return true
	})
	return keys
}

// All returns an iterator over the keys and values of o in source order.
func (o Object) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		o.entries(func(ent int) bool { return yield(o.key(ent), o.d.node(ent+2)) })
	}
}

// Get returns the value of the first member of o with the given key, and
// reports whether such a member was found.
func (o Object) Get(key string) (Node, bool) {
	found := -1
	o.entries(func(ent int) bool {
		if o.keyIs(ent, key) {
			found = ent + 2
			return false
		}
		return true
	})
	if found < 0 {
		return nil, false
	}
	return o.d.node(found), true
}

// Has reports whether o has a member with the given key.
func (o Object) Has(key string) bool { _, ok := o.Get(key); return ok }

// Find returns the values of all the members of o with the given key, in
// source order.
func (o Object) Find(key string) []Node {
	var out []Node
	o.entries(func(ent int) bool {
		if o.keyIs(ent, key) {
			out = append(out, o.d.node(ent+2))
		}
		return true
	})
	return out
}

// String returns the decoded string value of the given key.
func (o Object) String(key string) (string, error) {
	s, err := member[String](o, key)
	if err != nil {
		return "", err
	}
	return s.Unquote(), nil
}

// Int64 returns the integer value of the given key.
func (o Object) Int64(key string) (int64, error) {
	n, err := member[Number](o, key)
	if err != nil {
		return 0, err
	}
	return n.Int64()
}

// Float64 returns the numeric value of the given key.
func (o Object) Float64(key string) (float64, error) {
	n, err := member[Number](o, key)
	if err != nil {
		return 0, err
	}
	return n.Float64()
}

// Bool returns the Boolean value of the given key.
func (o Object) Bool(key string) (bool, error) {
	b, err := member[Bool](o, key)
	if err != nil {
		return false, err
	}
	return b.Bool(), nil
}

// Object returns the object value of the given key.
func (o Object) Object(key string) (Object, error) { return member[Object](o, key) }

// Array returns the array value of the given key.
func (o Object) Array(key string) (Array, error) { return member[Array](o, key) }

// Value implements part of the Node interface. It returns a map[string]any.
func (o Object) Value() any { return o.d.value(o.i) }

func member[T Node](o Object, key string) (T, error) {
	n, ok := o.Get(key)
	if !ok {
		var zero T
		return zero, fmt.Errorf("key %q not found", key)
	}
	v, err := as[T](n)
	if err != nil {
		return v, fmt.Errorf("key %q: %w", key, err)
	}
	return v, nil
}

// An Array is a view of a JSON array.
//
// Elements are located by walking the tokens of the array, so finding the
// kth element takes time proportional to the size of the elements before it.
type Array struct{ base }

// Len reports the number of elements in a.
func (a Array) Len() int {
	var n int
	a.d.children(a.i, func(int) bool { n++; return true })
	return n
}

// Index returns the element of a at offset i, and reports whether i is in
// range. Negative offsets are not in range.
func (a Array) Index(i int) (Node, bool) {
	found, k := -1, 0
	a.d.children(a.i, func(j int) bool {
		if k == i {
			found = j
			return false
		}
		k++
		return true
	})
	if found < 0 {
		return nil, false
	}
	return a.d.node(found), true
}

// At returns the element of a at offset i. It panics if i is out of range.
func (a Array) At(i int) Node {
	n, ok := a.Index(i)
	if !ok {
		panic(fmt.Sprintf("index %d out of range for array of length %d", i, a.Len()))
	}
	return n
}

// All returns an iterator over the offsets and elements of a, in order.
func (a Array) All() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		var k int
		a.d.children(a.i, func(j int) bool {
			ok := yield(k, a.d.node(j))
			k++
			return ok
		})
	}
}

// Value implements part of the Node interface. It returns a []any.
func (a Array) Value() any { return a.d.value(a.i) }
