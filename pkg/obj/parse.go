package obj

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Faultbox/objmesh/pkg/math"
)

// cancelCheckLines is how many lines are parsed between context checks.
const cancelCheckLines = 1024

// Option configures a single parse.
type Option func(*options)

type options struct {
	requireGroup bool
	capacityHint int
}

// WithRequireGroup rejects faces that appear before any g record with
// ErrFaceWithoutGroup instead of opening an implicit default group.
func WithRequireGroup(require bool) Option {
	return func(o *options) {
		o.requireGroup = require
	}
}

// WithCapacityHint preallocates the vertex tables for about n entries.
func WithCapacityHint(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacityHint = n
		}
	}
}

// parser holds the state of one parse. It is never shared between calls.
type parser struct {
	tables
	groups collector
	face   []IndexTriple
}

func newParser(o options) *parser {
	p := &parser{
		groups: collector{requireGroup: o.requireGroup},
		face:   make([]IndexTriple, 0, 8),
	}
	if o.capacityHint > 0 {
		p.positions = make([]math.Vec3, 0, o.capacityHint)
		p.uvs = make([]math.Vec2, 0, o.capacityHint)
		p.normals = make([]math.Vec3, 0, o.capacityHint)
	}
	return p
}

// Parse parses OBJ text and returns one MeshRecord per non-empty group.
// Input without faces yields an empty slice and a nil error.
func Parse(data []byte, opts ...Option) ([]MeshRecord, error) {
	return ParseContext(context.Background(), data, opts...)
}

// ParseString is Parse for string input.
func ParseString(s string, opts ...Option) ([]MeshRecord, error) {
	return Parse([]byte(s), opts...)
}

// Decode reads r to the end and parses the result.
func Decode(ctx context.Context, r io.Reader, opts ...Option) ([]MeshRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}
	return ParseContext(ctx, data, opts...)
}

// ParseContext is Parse with cooperative cancellation checked at line
// boundaries. On any error no meshes are returned.
func ParseContext(ctx context.Context, data []byte, opts ...Option) ([]MeshRecord, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := newParser(o)
	lineNo := 0
	for len(data) > 0 {
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}
		lineNo++

		if lineNo%cancelCheckLines == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		if kind, err := p.parseLine(line); err != nil {
			return nil, &ParseError{Line: lineNo, Kind: kind, Err: err}
		}
	}

	return assemble(p.groups.groups, &p.tables)
}

func (p *parser) parseLine(line []byte) (RecordKind, error) {
	kind, offset := Classify(line)
	data := line[offset:]

	switch kind {
	case RecordObjectName:
		p.groups.object = recordName(data)
	case RecordGroupStart:
		p.groups.startGroup(recordName(data))
	case RecordVertex:
		v, err := parseVec3(data)
		if err != nil {
			return kind, err
		}
		p.positions = append(p.positions, v)
	case RecordTextureCoord:
		v, err := parseVec2(data)
		if err != nil {
			return kind, err
		}
		p.uvs = append(p.uvs, v)
	case RecordNormal:
		v, err := parseVec3(data)
		if err != nil {
			return kind, err
		}
		p.normals = append(p.normals, v)
	case RecordFace:
		var err error
		if p.face, err = parseFace(data, p.face[:0]); err != nil {
			return kind, err
		}
		for _, t := range p.face {
			if err := p.check(t); err != nil {
				return kind, err
			}
		}
		if err := p.groups.addFace(p.face); err != nil {
			return kind, err
		}
	}
	return kind, nil
}

func recordName(data []byte) string {
	return strings.TrimSpace(string(data))
}
