// Package encoding converts OBJ payloads to UTF-8 text before parsing.
package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset is returned for charset labels that cannot be resolved.
var ErrUnknownCharset = errors.New("unknown charset")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Lookup resolves a WHATWG charset label such as "utf-8", "latin1" or "euc-kr".
// An empty label means UTF-8.
func Lookup(charset string) (encoding.Encoding, error) {
	label := strings.ToLower(strings.TrimSpace(charset))
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, charset)
	}
	return enc, nil
}

// ToUTF8 decodes data to UTF-8. A byte order mark takes precedence over
// charset: UTF-8 BOMs are stripped and UTF-16 input is transcoded.
func ToUTF8(data []byte, charset string) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return nil, fmt.Errorf("decoding utf-16: %w", err)
		}
		return out, nil
	}

	enc, err := Lookup(charset)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return data, nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", charset, err)
	}
	return out, nil
}
