// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node_test

import (
	"fmt"
	"log"

	"github.com/creachadair/jindex"
	"github.com/creachadair/jindex/node"
)

func Example() {
	root, err := node.ParseString(nil, `{"hi": "how are you?", "n": [1, 2.5]}`)
	if err != nil {
		log.Fatalf("Parse: %v", err)
	}
	obj, err := root.Object()
	if err != nil {
		log.Fatalf("Object: %v", err)
	}
	hi, err := obj.String("hi")
	if err != nil {
		log.Fatalf("Lookup: %v", err)
	}
	fmt.Println(hi)

	n, _ := obj.Array("n")
	for i, elt := range n.All() {
		fmt.Println(i, elt.Kind(), elt.Text())
	}
	// Output:
	// how are you?
	// 0 number 1
	// 1 number 2.5
}

func ExamplePath() {
	p := jindex.NewParser(&jindex.Options{Strict: true})
	root, err := node.ParseString(p, `{"users": [{"name": "ann"}, {"name": "bo\u0062"}]}`)
	if err != nil {
		log.Fatalf("Parse: %v", err)
	}
	last, err := root.Path("users", -1, "name")
	if err != nil {
		log.Fatalf("Path: %v", err)
	}
	fmt.Println(last.Value())
	// Output:
	// bob
}
