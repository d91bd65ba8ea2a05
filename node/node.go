// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package node provides lazily-decoded, read-only views of a JSON document
// scanned into index-overlay tokens by a jindex.Parser.
//
// A view is a small value recording the token it represents; nothing is
// decoded until a method asks for it. Looking up one key of an object does
// not decode any other member. Views never modify the document, and may be
// shared freely among goroutines.
//
// The tokens and the input buffer must not be modified while any view of
// them is in use.
package node

import (
	"errors"
	"fmt"

	"github.com/creachadair/jindex"
	"go4.org/mem"
)

// A Node is a view of a single JSON value. The concrete type of a Node is
// one of Object, Array, String, Number, Bool, or Null.
type Node interface {
	// Kind reports the kind of the value's token.
	Kind() jindex.Kind

	// Token returns the token for the value.
	Token() jindex.Token

	// Text returns a copy of the undecoded source text of the value.
	Text() string

	// Value decodes the complete value into plain Go values: objects become
	// map[string]any, arrays become []any, strings become string, booleans
	// become bool, and null becomes nil. Integers that fit in an int64 become
	// int64; other numbers become float64. If an object has duplicate keys,
	// the first occurrence wins.
	Value() any
}

// A doc is a scanned document shared by all views of it.
type doc struct {
	src  mem.RO
	toks []jindex.Token
}

// node returns a view of the value whose token is at index i.
func (d *doc) node(i int) Node {
	b := base{d: d, i: i}
	switch d.toks[i].Kind {
	case jindex.Object:
		return Object{b}
	case jindex.Array:
		return Array{b}
	case jindex.String:
		return String{b}
	case jindex.Number:
		return Number{b}
	case jindex.Boolean:
		return Bool{b}
	case jindex.Null:
		return Null{b}
	default:
		panic(fmt.Sprintf("token %d is not a value: %v", i, d.toks[i]))
	}
}

// text returns a view of the source text of token i.
func (d *doc) text(i int) mem.RO {
	t := d.toks[i]
	return d.src.Slice(t.Start, t.End)
}

// children calls f with the index of each token directly contained by the
// token at index i, in order, until f returns false.
func (d *doc) children(i int, f func(int) bool) {
	end := d.toks[i].End
	for j := i + 1; j < len(d.toks) && d.toks[j].Start < end; j = jindex.Skip(d.toks, j) {
		if !f(j) {
			return
		}
	}
}

// value decodes the complete value whose token is at index i, as documented
// by Node.Value. Containers are built with an explicit stack in a single
// pass over the tokens, so nesting depth is limited only by memory.
func (d *doc) value(i int) any {
	type open struct {
		end int            // end offset of the container
		obj map[string]any // for objects
		arr []any          // for arrays
		key string         // key of the pending object member
	}
	var stk []*open
	var result any

	// put stores a completed value in the innermost open container.
	put := func(v any) {
		if len(stk) == 0 {
			result = v
			return
		}
		top := stk[len(stk)-1]
		if top.obj != nil {
			top.obj[top.key] = v
		} else {
			top.arr = append(top.arr, v)
		}
	}
	// pop closes the innermost open container.
	pop := func() {
		top := stk[len(stk)-1]
		stk = stk[:len(stk)-1]
		if top.obj != nil {
			put(top.obj)
		} else {
			put(top.arr)
		}
	}

	last := jindex.Skip(d.toks, i)
	for j := i; j < last; j++ {
		t := d.toks[j]
		for len(stk) != 0 && t.Start >= stk[len(stk)-1].end {
			pop()
		}
		switch t.Kind {
		case jindex.Object:
			stk = append(stk, &open{end: t.End, obj: make(map[string]any)})
		case jindex.Array:
			stk = append(stk, &open{end: t.End, arr: make([]any, 0)})
		case jindex.ObjectEntry:
			top := stk[len(stk)-1]
			key := jindex.KeyText(d.text(j + 1))
			if _, dup := top.obj[key]; dup {
				j = jindex.Skip(d.toks, j) - 1 // the first occurrence wins
				continue
			}
			top.key = key
			j++ // skip the key token
		default:
			put(d.node(j).Value())
		}
	}
	for len(stk) != 0 {
		pop()
	}
	return result
}

// base is the common representation of a view.
type base struct {
	d *doc
	i int // index of the token in d.toks
}

// Kind implements part of the Node interface.
func (b base) Kind() jindex.Kind { return b.d.toks[b.i].Kind }

// Token implements part of the Node interface.
func (b base) Token() jindex.Token { return b.d.toks[b.i] }

// Text implements part of the Node interface.
func (b base) Text() string { return b.d.text(b.i).StringCopy() }

// A Root is a view of a complete scanned document.
type Root struct{ d *doc }

// Parse scans data with p and returns a view of the resulting document.
// If p == nil, a default parser is used.
func Parse(p *jindex.Parser, data []byte) (Root, error) {
	if p == nil {
		p = jindex.NewParser(nil)
	}
	toks, err := p.Scan(data)
	if err != nil {
		return Root{}, err
	}
	return Root{d: &doc{src: mem.B(data), toks: toks}}, nil
}

// ParseString scans s with p and returns a view of the resulting document.
// If p == nil, a default parser is used.
func ParseString(p *jindex.Parser, s string) (Root, error) {
	if p == nil {
		p = jindex.NewParser(nil)
	}
	toks, err := p.ScanString(s)
	if err != nil {
		return Root{}, err
	}
	return Root{d: &doc{src: mem.S(s), toks: toks}}, nil
}

// New constructs a view of tokens previously scanned from src.  It reports
// an error if toks does not begin with a Root token enclosing a value, or if
// any token lies outside src.
func New(src mem.RO, toks []jindex.Token) (Root, error) {
	if len(toks) < 2 || toks[0].Kind != jindex.Root {
		return Root{}, errors.New("tokens do not describe a document")
	} else if !isValue(toks[1].Kind) || toks[1].Span() != toks[0].Span() {
		return Root{}, fmt.Errorf("token 1 (%v) is not the value of the document", toks[1])
	}
	for i, t := range toks {
		if t.Start < 0 || t.End > src.Len() || t.Start > t.End {
			return Root{}, fmt.Errorf("token %d (%v) is out of range", i, t)
		}
	}
	return Root{d: &doc{src: src, toks: toks}}, nil
}

// Tokens returns the tokens of the document. The caller must not modify the
// contents of the slice.
func (r Root) Tokens() []jindex.Token { return r.d.toks }

// Span returns the span of the document's value, without surrounding
// whitespace.
func (r Root) Span() jindex.Span { return r.d.toks[0].Span() }

// Location returns the location of the document's value in the source.
func (r Root) Location() jindex.Location { return jindex.LocationOf(r.d.src, r.Span()) }

// Node returns a view of the top-level value of the document.
func (r Root) Node() Node { return r.d.node(1) }

// Kind reports the kind of the top-level value of the document.
func (r Root) Kind() jindex.Kind { return r.d.toks[1].Kind }

// Object returns the top-level value of the document, which must be an object.
func (r Root) Object() (Object, error) { return as[Object](r.Node()) }

// Array returns the top-level value of the document, which must be an array.
func (r Root) Array() (Array, error) { return as[Array](r.Node()) }

// Value decodes the complete document as documented by Node.Value.
func (r Root) Value() any { return r.Node().Value() }

// Path traverses path from the top-level value of the document.
// See the Path function.
func (r Root) Path(path ...any) (Node, error) { return Path(r.Node(), path...) }

// as converts n to the concrete view type T, or reports an error.
func as[T Node](n Node) (T, error) {
	v, ok := n.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("value is %v, not %v", n.Kind(), kindOf(zero))
	}
	return v, nil
}

// isValue reports whether k is the kind of a JSON value.
func isValue(k jindex.Kind) bool {
	switch k {
	case jindex.Object, jindex.Array, jindex.String, jindex.Number, jindex.Boolean, jindex.Null:
		return true
	}
	return false
}

// kindOf reports the token kind viewed by the concrete type of n.
func kindOf(n Node) jindex.Kind {
	switch n.(type) {
	case Object:
		return jindex.Object
	case Array:
		return jindex.Array
	case String:
		return jindex.String
	case Number:
		return jindex.Number
	case Bool:
		return jindex.Boolean
	case Null:
		return jindex.Null
	}
	return jindex.Invalid
}
