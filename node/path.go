// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package node

import "fmt"

// Path traverses a sequential path through the structure of a value starting
// at n, where path elements are either strings (denoting object keys) or
// integers (denoting offsets into arrays).  If the path is valid, the element
// reached is returned. In case of error, the input n is returned along with
// the error.
//
// If a path element is a string, the corresponding value must be an object,
// and the string resolves the first object member with that name.
//
// If a path element is an integer, the corresponding value must be an array,
// and the integer resolves to an index in the array. Negative indices count
// backward from the end of the array (-1 is last, -2 second last, etc.).
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(node.Node) (node.Node, error)
//
// If the function fails, the traversal reports its error.
func Path(n Node, path ...any) (Node, error) {
	cur := n
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			o, ok := cur.(Object)
			if !ok {
				return n, fmt.Errorf("cannot traverse %v with %q", cur.Kind(), t)
			}
			v, ok := o.Get(t)
			if !ok {
				return n, fmt.Errorf("key %q not found", t)
			}
			cur = v
		case int:
			a, ok := cur.(Array)
			if !ok {
				return n, fmt.Errorf("cannot traverse %v with %v", cur.Kind(), t)
			}
			i := t
			if i < 0 {
				i += a.Len()
			}
			v, ok := a.Index(i)
			if !ok {
				return n, fmt.Errorf("array index %d out of bounds (n=%d)", t, a.Len())
			}
			cur = v
		case func(Node) (Node, error):
			next, err := t(cur)
			if err != nil {
				return n, err
			}
			cur = next
		default:
			return n, fmt.Errorf("invalid path element %T", elt)
		}
	}
	return cur, nil
}
