package tp

type (
	// Type is the static type of an expression or identifier.
	Type int
)

const (
	Integer Type = iota
	Boolean
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Boolean:
		return "TESTAMENT"
	default:
		return "???"
	}
}
