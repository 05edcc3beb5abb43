package obj

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

func referenceFloat(t *testing.T, s string) float32 {
	t.Helper()
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		t.Fatalf("reference parse %q: %v", s, err)
	}
	return float32(f)
}

func TestParseFloat_MatchesReference(t *testing.T) {
	inputs := []string{
		"0", "1", "-1", "0.5", "-0.5", "123.456", ".5", "-.5", "5.", "-0",
		"0.000001", "0.0000000001", "1234567.0", "-98.7654", "0.1", "0.2", "0.3",
		"16777215", "16777216", "16777217", "99999999", "3.14159265358979",
		"0.12345678901234567", "123456789012345", "1.00000000000",
		"000123.4500", "-000.000", "340282346638528859811704183484516925440",
	}

	for _, s := range inputs {
		t.Run(s, func(t *testing.T) {
			got, err := parseFloat([]byte(s))
			if err != nil {
				t.Fatalf("parseFloat(%q) error: %v", s, err)
			}
			want := referenceFloat(t, s)
			if math.Float32bits(got) != math.Float32bits(want) {
				t.Errorf("parseFloat(%q) = %v (%#x), want %v (%#x)",
					s, got, math.Float32bits(got), want, math.Float32bits(want))
			}
		})
	}
}

func TestParseFloat_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var sb strings.Builder
	for i := 0; i < 20000; i++ {
		sb.Reset()
		if rng.Intn(2) == 0 {
			sb.WriteByte('-')
		}
		intDigits := rng.Intn(10)
		for j := 0; j < intDigits; j++ {
			sb.WriteByte(byte('0' + rng.Intn(10)))
		}
		fracDigits := 0
		if intDigits == 0 || rng.Intn(3) != 0 {
			fracDigits = 1 + rng.Intn(10)
			sb.WriteByte('.')
			for j := 0; j < fracDigits; j++ {
				sb.WriteByte(byte('0' + rng.Intn(10)))
			}
		}
		s := sb.String()

		got, err := parseFloat([]byte(s))
		if err != nil {
			t.Fatalf("parseFloat(%q) error: %v", s, err)
		}
		want := referenceFloat(t, s)
		if math.Float32bits(got) != math.Float32bits(want) {
			t.Fatalf("parseFloat(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParseFloat_Malformed(t *testing.T) {
	inputs := []string{"", "-", ".", "-.", "1.2.3", "1-2", "--1", "+1", "1e5", "abc", "1,5"}

	for _, s := range inputs {
		t.Run(s, func(t *testing.T) {
			_, err := parseFloat([]byte(s))
			if !errors.Is(err, ErrMalformedNumber) {
				t.Errorf("parseFloat(%q) error = %v, want ErrMalformedNumber", s, err)
			}
		})
	}
}

func TestPow10Table_Range(t *testing.T) {
	if got := len(pow10Table); got != 10 {
		t.Fatalf("digit rows = %d, want 10", got)
	}
	if got := len(pow10Table[0]); got != 32 {
		t.Fatalf("exponent columns = %d, want 32", got)
	}

	tests := []struct {
		digit byte
		exp   int
		want  float64
	}{
		{1, maxPow10, 1e15},
		{9, maxPow10, 9e15},
		{1, minPow10, 1e-16},
		{1, 0, 1},
		{7, 3, 7000},
		{0, 12, 0},
	}
	for _, tt := range tests {
		if got := digitPow(tt.digit, tt.exp); got != tt.want {
			t.Errorf("digitPow(%d, %d) = %v, want %v", tt.digit, tt.exp, got, tt.want)
		}
	}
}

func TestParseFloat_ExtremeExponents(t *testing.T) {
	// 15 significant digits use the 10^15 column; 10 fraction digits the
	// largest exact float32 divisor.
	for _, s := range []string{"999999999999999", "100000000000000", "0.0000000001", "-0.9999999999"} {
		got, err := parseFloat([]byte(s))
		if err != nil {
			t.Fatalf("parseFloat(%q) error: %v", s, err)
		}
		if want := referenceFloat(t, s); got != want {
			t.Errorf("parseFloat(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParseUint(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"0", 0, false},
		{"7", 7, false},
		{"42", 42, false},
		{"000123", 123, false},
		{"4294967295", math.MaxUint32, false},
		{"4294967296", 0, true},
		{"", 0, true},
		{"1a", 0, true},
		{"-1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseUint[uint32]([]byte(tt.in))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedNumber) {
					t.Errorf("parseUint(%q) error = %v, want ErrMalformedNumber", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseUint(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseUint(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseUint_NarrowType(t *testing.T) {
	if got, err := parseUint[uint8]([]byte("255")); err != nil || got != 255 {
		t.Errorf("parseUint[uint8](255) = %d, %v", got, err)
	}
	if _, err := parseUint[uint8]([]byte("256")); !errors.Is(err, ErrMalformedNumber) {
		t.Errorf("parseUint[uint8](256) error = %v, want ErrMalformedNumber", err)
	}
}

func BenchmarkParseFloat(b *testing.B) {
	run := []byte("-12.345678")
	for i := 0; i < b.N; i++ {
		_, _ = parseFloat(run)
	}
}

func BenchmarkStrconvParseFloat(b *testing.B) {
	s := "-12.345678"
	for i := 0; i < b.N; i++ {
		_, _ = strconv.ParseFloat(s, 32)
	}
}
