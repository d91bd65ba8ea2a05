// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node_test

import (
	"testing"

	"github.com/buger/jsonparser"
	"github.com/creachadair/jindex"
	"github.com/creachadair/jindex/node"
	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"
)

const crossInput = `{
  "name": "widget \"deluxe\"",
  "id": 1234567,
  "price": 19.95,
  "ratio": -1.5e-3,
  "tags": ["a\u00e9", "tab\there", "\ud83d\ude00"],
  "ok": true,
  "none": null,
  "dims": {"w": 3, "h": [4, 5, {"deep": "\\path\/x"}]},
  "empty": {}
}`

// TestScalarsRoundTrip checks that decoding the raw text of each scalar
// token in isolation with an independent decoder agrees with the views.
func TestScalarsRoundTrip(t *testing.T) {
	api := jsoniter.ConfigCompatibleWithStandardLibrary
	for _, p := range []*jindex.Parser{fastParser, strictParser} {
		root := mustParse(t, p, crossInput)
		toks := root.Tokens()

		var visit func(node.Node)
		visit = func(n node.Node) {
			switch v := n.(type) {
			case node.Object:
				for _, elt := range v.All() {
					visit(elt)
				}
			case node.Array:
				for _, elt := range v.All() {
					visit(elt)
				}
			default:
				var want any
				if err := api.UnmarshalFromString(n.Text(), &want); err != nil {
					t.Errorf("Unmarshal %q: %v", n.Text(), err)
					return
				}
				got := n.Value()
				if i, ok := got.(int64); ok {
					got = float64(i) // the reference decodes all numbers as float64
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("Value of %v (-want, +got):\n%s", n.Token(), diff)
				}
			}
		}
		visit(root.Node())

		// Every token of the document is reached from its parent's range.
		for i, tok := range toks[1:] {
			if !toks[0].Span().Contains(tok.Span()) {
				t.Errorf("Token %d (%v) lies outside the document", i+1, tok)
			}
		}
	}
}

// TestLookupsAgree checks object lookups against a second index-free
// parser operating on the same bytes.
func TestLookupsAgree(t *testing.T) {
	data := []byte(crossInput)
	root, err := node.Parse(strictParser, data)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}

	strs := [][]string{{"name"}, {"tags", "[0]"}, {"tags", "[1]"}, {"tags", "[2]"}, {"dims", "h", "[2]", "deep"}}
	for _, keys := range strs {
		want, err := jsonparser.GetString(data, keys...)
		if err != nil {
			t.Fatalf("GetString %q: %v", keys, err)
		}
		n, err := root.Path(pathOf(keys)...)
		if err != nil {
			t.Errorf("Path %q: unexpected error: %v", keys, err)
			continue
		}
		if got := n.(node.String).Unquote(); got != want {
			t.Errorf("Path %q: got %q, want %q", keys, got, want)
		}
	}

	ints := [][]string{{"id"}, {"dims", "w"}, {"dims", "h", "[1]"}}
	for _, keys := range ints {
		want, err := jsonparser.GetInt(data, keys...)
		if err != nil {
			t.Fatalf("GetInt %q: %v", keys, err)
		}
		n, err := root.Path(pathOf(keys)...)
		if err != nil {
			t.Errorf("Path %q: unexpected error: %v", keys, err)
			continue
		}
		if got, err := n.(node.Number).Int64(); err != nil || got != want {
			t.Errorf("Path %q: got (%v, %v), want %d", keys, got, err, want)
		}
	}

	for _, key := range []string{"price", "ratio"} {
		want, err := jsonparser.GetFloat(data, key)
		if err != nil {
			t.Fatalf("GetFloat %q: %v", key, err)
		}
		obj, _ := root.Object()
		if got, err := obj.Float64(key); err != nil || got != want {
			t.Errorf("Float64 %q: got (%v, %v), want %v", key, got, err, want)
		}
	}

	var wantKeys []string
	if err := jsonparser.ObjectEach(data, func(key, _ []byte, _ jsonparser.ValueType, _ int) error {
		wantKeys = append(wantKeys, string(key))
		return nil
	}); err != nil {
		t.Fatalf("ObjectEach: %v", err)
	}
	obj, _ := root.Object()
	if diff := cmp.Diff(wantKeys, obj.Keys()); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}
}

// pathOf converts jsonparser key paths, where "[n]" denotes an array index,
// into node.Path arguments.
func pathOf(keys []string) []any {
	out := make([]any, len(keys))
	for i, k := range keys {
		var n int
		if len(k) > 2 && k[0] == '[' && k[len(k)-1] == ']' {
			for _, c := range k[1 : len(k)-1] {
				n = n*10 + int(c-'0')
			}
			out[i] = n
			continue
		}
		out[i] = k
	}
	return out
}
