package encoding

import (
	"bytes"
	"errors"
	"testing"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func TestToUTF8_PassThrough(t *testing.T) {
	in := []byte("g cube\nv 0 0 0\n")
	for _, charset := range []string{"", "utf-8", "UTF8"} {
		out, err := ToUTF8(in, charset)
		if err != nil {
			t.Fatalf("ToUTF8(%q) error: %v", charset, err)
		}
		if !bytes.Equal(out, in) {
			t.Errorf("ToUTF8(%q) = %q, want unchanged", charset, out)
		}
	}
}

func TestToUTF8_StripsUTF8BOM(t *testing.T) {
	out, err := ToUTF8([]byte("\xEF\xBB\xBFg cube\n"), "latin1")
	if err != nil {
		t.Fatalf("ToUTF8 error: %v", err)
	}
	if string(out) != "g cube\n" {
		t.Errorf("got %q", out)
	}
}

func TestToUTF8_UTF16(t *testing.T) {
	tests := []struct {
		name   string
		endian unicode.Endianness
	}{
		{"little endian", unicode.LittleEndian},
		{"big endian", unicode.BigEndian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := unicode.UTF16(tt.endian, unicode.UseBOM).NewEncoder()
			in, _, err := transform.Bytes(enc, []byte("g ärmel\n"))
			if err != nil {
				t.Fatalf("encoding fixture: %v", err)
			}
			out, err := ToUTF8(in, "")
			if err != nil {
				t.Fatalf("ToUTF8 error: %v", err)
			}
			if string(out) != "g ärmel\n" {
				t.Errorf("got %q", out)
			}
		})
	}
}

func TestToUTF8_Latin1(t *testing.T) {
	out, err := ToUTF8([]byte("g caf\xe9\n"), "latin1")
	if err != nil {
		t.Fatalf("ToUTF8 error: %v", err)
	}
	if string(out) != "g café\n" {
		t.Errorf("got %q", out)
	}
}

func TestToUTF8_EUCKR(t *testing.T) {
	in, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte("g 건물\n"))
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	out, err := ToUTF8(in, "euc-kr")
	if err != nil {
		t.Fatalf("ToUTF8 error: %v", err)
	}
	if string(out) != "g 건물\n" {
		t.Errorf("got %q", out)
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, err := Lookup("klingon-8"); !errors.Is(err, ErrUnknownCharset) {
		t.Errorf("error = %v, want ErrUnknownCharset", err)
	}
	if _, err := ToUTF8([]byte("v 0 0 0"), "klingon-8"); !errors.Is(err, ErrUnknownCharset) {
		t.Errorf("error = %v, want ErrUnknownCharset", err)
	}
}
