package obj

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Power-of-ten table range. pow10Table[d][e-minPow10] holds d×10^e for every
// digit d in 0..9 and exponent e in minPow10..maxPow10 (10×32 entries).
const (
	minPow10 = -16
	maxPow10 = 15
	numPow10 = maxPow10 - minPow10 + 1
)

// Limits of the exact fast path. Integers below 2^53 are exact in float64,
// and a float32 division of two exact operands is correctly rounded as long
// as the mantissa fits 24 bits and 10^frac fits float32 exactly (frac <= 10).
const (
	maxExactDigits   = maxPow10
	maxExactMantissa = 1 << 24
	maxExactFrac     = 10
)

// pow10Table is built once at package init and only read afterwards.
var pow10Table = buildPow10Table()

func buildPow10Table() [10][numPow10]float64 {
	var t [10][numPow10]float64
	for e := minPow10; e <= maxPow10; e++ {
		p := math.Pow10(e)
		for d := 0; d < 10; d++ {
			t[d][e-minPow10] = float64(d) * p
		}
	}
	return t
}

// digitPow returns d×10^e from the table.
func digitPow(d byte, e int) float64 {
	return pow10Table[d][e-minPow10]
}

// parseFloat decodes an optionally negative decimal run with at most one
// point and no exponent. The result matches strconv.ParseFloat(run, 32) bit
// for bit; runs that cannot be decoded exactly on the table path are handed
// to strconv.
func parseFloat(run []byte) (float32, error) {
	point := -1
	digits := 0
	leadingZeros := 0
	negate := false
	for i, c := range run {
		switch {
		case c >= '0' && c <= '9':
			if digits == leadingZeros && c == '0' {
				leadingZeros++
			}
			digits++
		case c == '.':
			if point >= 0 {
				return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, run)
			}
			point = i
		case c == '-' && i == 0:
			negate = true
		default:
			return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, run)
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, run)
	}

	frac := 0
	if point >= 0 {
		frac = len(run) - point - 1
	}
	significant := digits - leadingZeros
	if significant > maxExactDigits || frac > maxExactFrac {
		return parseFloatSlow(run)
	}

	var mantissa float64
	pos := digits - 1
	for _, c := range run {
		if c < '0' || c > '9' {
			continue
		}
		if c != '0' {
			mantissa += digitPow(c-'0', pos)
		}
		pos--
	}
	if mantissa >= maxExactMantissa {
		return parseFloatSlow(run)
	}

	result := float32(mantissa) / float32(digitPow(1, frac))
	if negate {
		result = -result
	}
	return result, nil
}

func parseFloatSlow(run []byte) (float32, error) {
	f, err := strconv.ParseFloat(string(run), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, run)
	}
	return float32(f), nil
}

// parseUint decodes an unsigned decimal run. Overflow of T is reported as a
// malformed number.
func parseUint[T constraints.Unsigned](run []byte) (T, error) {
	if len(run) == 0 {
		return 0, fmt.Errorf("%w: empty index", ErrMalformedNumber)
	}
	limit := ^T(0)
	var result T
	for _, c := range run {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, run)
		}
		d := T(c - '0')
		if result > (limit-d)/10 {
			return 0, fmt.Errorf("%w: %q overflows", ErrMalformedNumber, run)
		}
		result = result*10 + d
	}
	return result, nil
}
