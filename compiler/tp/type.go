package tp

import "fmt"

type (
	// Type is a static type of the language.
	Type int
)

const (
	Void Type = iota
	Int
)

// Size is the width of a value in bytes.
func (x Type) Size() int {
	switch x {
	case Int:
		return 4
	default:
		return 0
	}
}

func (x Type) String() string {
	switch x {
	case Void:
		return "void"
	case Int:
		return "int"
	default:
		return fmt.Sprintf("Type(%d)", int(x))
	}
}

func (x Type) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
