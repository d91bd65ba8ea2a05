// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

import "fmt"

// Kind is the type of a token in the index overlay.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid     Kind = iota // invalid token
	Object                  // object: { ... }
	Array                   // array: [ ... ]
	String                  // quoted string
	Number                  // number: integer or real
	Boolean                 // constant: true or false
	Null                    // constant: null
	ObjectKey               // the key of an object member
	ObjectEntry             // an object member: "key": value
	Root                    // the whole document
)

var kindStr = [...]string{
	Invalid:     "invalid",
	Object:      "object",
	Array:       "array",
	String:      "string",
	Number:      "number",
	Boolean:     "boolean",
	Null:        "null",
	ObjectKey:   "key",
	ObjectEntry: "entry",
	Root:        "root",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// IsContainer reports whether tokens of kind k enclose other tokens.
func (k Kind) IsContainer() bool {
	return k == Object || k == Array || k == ObjectEntry || k == Root
}

// A Token records the kind and location of one element of a JSON document.
// Tokens hold no reference to the text; Start and End are offsets into the
// buffer that was scanned.
//
// A slice of tokens produced by a Parser is in pre-order: each container
// token is followed by the tokens of its contents, and the contents of a
// token t are exactly the tokens following it whose Start is less than t.End.
type Token struct {
	Kind       Kind
	Start, End int
}

// Span returns the location span of t.
func (t Token) Span() Span { return Span{Pos: t.Start, End: t.End} }

// Len reports the length in bytes of the text spanned by t.
func (t Token) Len() int { return t.End - t.Start }

func (t Token) String() string { return fmt.Sprintf("%v[%d:%d]", t.Kind, t.Start, t.End) }

// Skip returns the index of the first token following the contents of
// toks[i], that is, the index of its next sibling or len(toks).
func Skip(toks []Token, i int) int {
	end := toks[i].End
	j := i + 1
	for j < len(toks) && toks[j].Start < end {
		j++
	}
	return j
}
