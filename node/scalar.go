// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package node

import (
	"github.com/creachadair/jindex"
	"github.com/creachadair/jindex/internal/escape"
	"github.com/shopspring/decimal"
)

// A String is a view of a JSON string value.
type String struct{ base }

// Raw returns the undecoded text of s, including its quotation marks.
func (s String) Raw() string { return s.Text() }

// Unquote decodes and returns the contents of s. The string is decoded on
// each call. Invalid escape sequences are replaced by the Unicode
// replacement rune.
func (s String) Unquote() string {
	raw := s.d.text(s.i)
	return string(escape.Unquote(raw.Slice(1, raw.Len()-1)))
}

// Value implements part of the Node interface. It returns a string.
func (s String) Value() any { return s.Unquote() }

// A Number is a view of a JSON number value. The accessors decode the
// number from its source text on each call.
type Number struct{ base }

// IsInt reports whether n is written as an integer, with no fraction or
// exponent.
func (n Number) IsInt() bool { return jindex.IsInteger(n.d.text(n.i)) }

// Int32 returns the value of n as an int32. It reports an error if n is not
// an integer or is out of range.
func (n Number) Int32() (int32, error) { return jindex.ParseInt32(n.d.text(n.i)) }

// Int64 returns the value of n as an int64. It reports an error if n is not
// an integer or is out of range.
func (n Number) Int64() (int64, error) { return jindex.ParseInt64(n.d.text(n.i)) }

// Float32 returns the value of n as a float32.
func (n Number) Float32() (float32, error) { return jindex.ParseFloat32(n.d.text(n.i)) }

// Float64 returns the value of n as a float64.
func (n Number) Float64() (float64, error) { return jindex.ParseFloat64(n.d.text(n.i)) }

// Decimal returns the exact value of n as a decimal.
func (n Number) Decimal() (decimal.Decimal, error) { return jindex.ParseDecimal(n.d.text(n.i)) }

// Value implements part of the Node interface. It returns an int64 if n is
// an integer in range, otherwise a float64.
func (n Number) Value() any {
	if n.IsInt() {
		if v, err := n.Int64(); err == nil {
			return v
		}
	}
	v, _ := n.Float64() // out-of-range values are reported as ±Inf
	return v
}

// A Bool is a view of a JSON true or false constant.
type Bool struct{ base }

// Bool reports the value of b.
func (b Bool) Bool() bool { return b.d.text(b.i).At(0) == 't' }

// Value implements part of the Node interface. It returns a bool.
func (b Bool) Value() any { return b.Bool() }

// A Null is a view of a JSON null constant.
type Null struct{ base }

// Value implements part of the Node interface. It returns nil.
func (Null) Value() any { return nil }
