package obj

import "fmt"

// RecordKind identifies the type of one OBJ line.
type RecordKind uint8

const (
	RecordUnknown      RecordKind = iota // Skipped silently
	RecordComment                        // # ...
	RecordObjectName                     // o <name>
	RecordGroupStart                     // g [name]
	RecordVertex                         // v x y z
	RecordTextureCoord                   // vt u v
	RecordNormal                         // vn x y z
	RecordFace                           // f i[/i][/i] ...
)

// String returns the OBJ keyword for the kind.
func (k RecordKind) String() string {
	switch k {
	case RecordUnknown:
		return "unknown"
	case RecordComment:
		return "#"
	case RecordObjectName:
		return "o"
	case RecordGroupStart:
		return "g"
	case RecordVertex:
		return "v"
	case RecordTextureCoord:
		return "vt"
	case RecordNormal:
		return "vn"
	case RecordFace:
		return "f"
	default:
		return fmt.Sprintf("RecordKind(%d)", k)
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// Classify returns the record kind of line and the offset at which its field
// data begins. line must not include the terminating newline.
func Classify(line []byte) (RecordKind, int) {
	if len(line) == 0 {
		return RecordUnknown, 0
	}

	switch line[0] {
	case '#':
		return RecordComment, 1
	case 'g':
		if len(line) == 1 {
			return RecordGroupStart, 1
		}
		if isSpace(line[1]) {
			return RecordGroupStart, 2
		}
	case 'o':
		if len(line) > 1 && isSpace(line[1]) {
			return RecordObjectName, 2
		}
	case 'v':
		if len(line) < 2 {
			break
		}
		if isSpace(line[1]) {
			return RecordVertex, 2
		}
		if len(line) > 2 && isSpace(line[2]) {
			switch line[1] {
			case 't':
				return RecordTextureCoord, 3
			case 'n':
				return RecordNormal, 3
			}
		}
	case 'f':
		if len(line) > 1 && isSpace(line[1]) {
			return RecordFace, 2
		}
	}
	return RecordUnknown, 0
}
