package obj

import (
	"fmt"

	"github.com/Faultbox/objmesh/pkg/math"
)

// fieldScanner walks the field data of one line.
type fieldScanner struct {
	data []byte
	pos  int
}

func (s *fieldScanner) done() bool {
	return s.pos >= len(s.data)
}

func (s *fieldScanner) skipSpace() {
	for s.pos < len(s.data) && isSpace(s.data[s.pos]) {
		s.pos++
	}
}

// atDelimiter reports whether the cursor sits on whitespace or end of line.
func (s *fieldScanner) atDelimiter() bool {
	return s.done() || isSpace(s.data[s.pos])
}

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '.'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// float consumes the next whitespace-delimited numeric field.
func (s *fieldScanner) float() (float32, error) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.data) && isNumberByte(s.data[s.pos]) {
		s.pos++
	}
	run := s.data[start:s.pos]
	if !s.atDelimiter() {
		return 0, fmt.Errorf("%w: unexpected %q after %q", ErrMalformedNumber, s.data[s.pos], run)
	}
	return parseFloat(run)
}

// digits consumes a run of decimal digits, possibly empty.
func (s *fieldScanner) digits() []byte {
	start := s.pos
	for s.pos < len(s.data) && isDigit(s.data[s.pos]) {
		s.pos++
	}
	return s.data[start:s.pos]
}

// optionalIndex decodes a uv or normal slot; an empty slot is 0.
func (s *fieldScanner) optionalIndex() (uint32, error) {
	run := s.digits()
	if len(run) == 0 {
		return 0, nil
	}
	return parseUint[uint32](run)
}

func (s *fieldScanner) skipSlash() bool {
	if s.pos < len(s.data) && s.data[s.pos] == '/' {
		s.pos++
		return true
	}
	return false
}

// parseVec3 decodes the fields of a v or vn record. Fields past the third
// (vertex colours, w) are ignored.
func parseVec3(data []byte) (math.Vec3, error) {
	s := fieldScanner{data: data}
	var v math.Vec3
	var err error
	if v.X, err = s.float(); err != nil {
		return v, err
	}
	if v.Y, err = s.float(); err != nil {
		return v, err
	}
	if v.Z, err = s.float(); err != nil {
		return v, err
	}
	return v, nil
}

// parseVec2 decodes the fields of a vt record.
func parseVec2(data []byte) (math.Vec2, error) {
	s := fieldScanner{data: data}
	var v math.Vec2
	var err error
	if v.X, err = s.float(); err != nil {
		return v, err
	}
	if v.Y, err = s.float(); err != nil {
		return v, err
	}
	return v, nil
}

// parseFace appends the corners of an f record to dst. Accepted corner forms
// are v, v/vt, v//vn and v/vt/vn.
func parseFace(data []byte, dst []IndexTriple) ([]IndexTriple, error) {
	s := fieldScanner{data: data}
	for {
		s.skipSpace()
		if s.done() {
			return dst, nil
		}

		var t IndexTriple
		var err error
		if t.Vertex, err = parseUint[uint32](s.digits()); err != nil {
			return dst, err
		}
		if s.skipSlash() {
			if t.UV, err = s.optionalIndex(); err != nil {
				return dst, err
			}
			if s.skipSlash() {
				if t.Normal, err = s.optionalIndex(); err != nil {
					return dst, err
				}
			}
		}
		if !s.atDelimiter() {
			return dst, fmt.Errorf("%w: unexpected %q in face corner", ErrMalformedNumber, s.data[s.pos])
		}
		dst = append(dst, t)
	}
}
