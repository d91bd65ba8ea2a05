package jindex_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jindex"
	"github.com/creachadair/jindex/node"
)

// benchInput constructs a document with a mix of value types.
func benchInput(n int) []byte {
	var sb strings.Builder
	sb.WriteString(`{"episodes": [`)
	for i := range n {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"episode": %d, "title": "Episode \"%d\"", "rating": %d.%d5e-1,`+
			` "hasDetail": %v, "tags": ["a", "bé", null]}`, i, i, i%10, i%7, i%2 == 0)
	}
	sb.WriteString("]}")
	return []byte(sb.String())
}

func BenchmarkScan(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Unmarshal", func(b *testing.B) {
		for b.Loop() {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
	for _, opts := range []*jindex.Options{nil, {Strict: true}} {
		p := jindex.NewParser(opts)
		name := "Fast"
		if p.Options().Strict {
			name = "Strict"
		}
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			for b.Loop() {
				if _, err := p.Scan(input); err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		})
		b.Run(name+"/Value", func(b *testing.B) {
			for b.Loop() {
				root, err := node.Parse(p, input)
				if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
				_ = root.Value()
			}
		})
	}
}
