// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jindex

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go4.org/mem"
)

// ParseInt64 decodes a JSON integer literal directly from the bytes of m.
// The literal must be an optional minus sign followed by decimal digits.
// Values outside the range of int64 report an error wrapping
// strconv.ErrRange.
func ParseInt64(m mem.RO) (int64, error) {
	n, i := m.Len(), 0
	neg := n > 0 && m.At(0) == '-'
	if neg {
		i++
	}
	if i == n {
		return 0, numError("ParseInt64", m, strconv.ErrSyntax)
	}

	// Accumulate the value as a negative number, so that math.MinInt64 does
	// not overflow on the way in.
	var v int64
	for ; i < n; i++ {
		b := m.At(i)
		if b < '0' || b > '9' {
			return 0, numError("ParseInt64", m, strconv.ErrSyntax)
		}
		d := int64(b - '0')
		if v < (math.MinInt64+d)/10 {
			return 0, numError("ParseInt64", m, strconv.ErrRange)
		}
		v = v*10 - d
	}
	if neg {
		return v, nil
	} else if v == math.MinInt64 {
		return 0, numError("ParseInt64", m, strconv.ErrRange)
	}
	return -v, nil
}

// ParseInt32 decodes a JSON integer literal directly from the bytes of m.
// Values outside the range of int32 report an error wrapping
// strconv.ErrRange.
func ParseInt32(m mem.RO) (int32, error) {
	v, err := ParseInt64(m)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok {
			ne.Func = "ParseInt32"
		}
		return 0, err
	} else if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, numError("ParseInt32", m, strconv.ErrRange)
	}
	return int32(v), nil
}

// ParseFloat64 decodes a JSON number literal in m as a float64.
func ParseFloat64(m mem.RO) (float64, error) { return mem.ParseFloat(m, 64) }

// ParseFloat32 decodes a JSON number literal in m as a float32.
func ParseFloat32(m mem.RO) (float32, error) {
	v, err := mem.ParseFloat(m, 32)
	return float32(v), err
}

// ParseDecimal decodes a JSON number literal in m as an arbitrary-precision
// decimal value.
func ParseDecimal(m mem.RO) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(m.StringCopy())
	if err != nil {
		return decimal.Zero, fmt.Errorf("ParseDecimal: %w", err)
	}
	return d, nil
}

// IsInteger reports whether m is a JSON number literal with no fraction or
// exponent.
func IsInteger(m mem.RO) bool {
	for i := 0; i < m.Len(); i++ {
		switch m.At(i) {
		case '.', 'e', 'E':
			return false
		}
	}
	return m.Len() != 0
}

func numError(fn string, m mem.RO, err error) error {
	return &strconv.NumError{Func: fn, Num: m.StringCopy(), Err: err}
}

func fmtByte(b byte) string {
	if b < utf8.RuneSelf {
		return strconv.QuoteRune(rune(b))
	}
	return fmt.Sprintf("byte 0x%02x", b)
}
