package workload

import (
	"strconv"
)

// Command tokens understood by Parse.
const (
	TokenRead     = "read"
	TokenWrite    = "write"
	TokenSnapshot = "string"
)

// Kind tags the variant an Operation holds.
type Kind uint8

const (
	Unknown Kind = iota
	Read
	Write
	Snapshot
)

func (k Kind) String() string {
	switch k {
	case Read:
		return "read"
	case Write:
		return "write"
	case Snapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Operation is a single parsed command. Field is set for Read and Write, Value
// only for Write. An Operation remembers the text it was parsed from, so
// String returns exactly that text. An Unknown operation with empty text has
// no line of its own: Save skips it, since Load drops blank lines anyway.
type Operation struct {
	Kind  Kind
	Field int
	Value int

	text string
}

// ReadOp returns the operation "read <field>".
func ReadOp(field int) Operation {
	return Operation{Kind: Read, Field: field}
}

// WriteOp returns the operation "write <field> <value>".
func WriteOp(field, value int) Operation {
	return Operation{Kind: Write, Field: field, Value: value}
}

// SnapshotOp returns the operation "string".
func SnapshotOp() Operation {
	return Operation{Kind: Snapshot}
}

// Parse turns one command line into an Operation. Only the exact lines
// "read 0", "write 0 1", "read 1", "write 1 1" and "string" are recognized;
// any other line, including a differently spaced or valued variant of one of
// them, parses as Unknown and is kept verbatim.
func Parse(line string) Operation {
	switch line {
	case "read 0":
		return Operation{Kind: Read, Field: 0, text: line}
	case "write 0 1":
		return Operation{Kind: Write, Field: 0, Value: 1, text: line}
	case "read 1":
		return Operation{Kind: Read, Field: 1, text: line}
	case "write 1 1":
		return Operation{Kind: Write, Field: 1, Value: 1, text: line}
	case TokenSnapshot:
		return Operation{Kind: Snapshot, text: line}
	default:
		return Operation{Kind: Unknown, text: line}
	}
}

// String returns the command line for the operation.
func (op Operation) String() string {
	if op.text != "" {
		return op.text
	}

	switch op.Kind {
	case Read:
		return TokenRead + " " + strconv.Itoa(op.Field)
	case Write:
		return TokenWrite + " " + strconv.Itoa(op.Field) + " " + strconv.Itoa(op.Value)
	case Snapshot:
		return TokenSnapshot
	default:
		return ""
	}
}
