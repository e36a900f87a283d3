package schema

// Type is the declared storage type of a column. It is pure metadata: it
// selects the type name emitted in DDL and documents which value variant a
// column is expected to carry.
type Type uint8

// Column storage types.
const (
	TypeInteger Type = iota + 1
	TypeReal
	TypeText
	TypeBlob
	TypeBoolean
	TypeTimestamp
)

var typeNames = [...]string{
	TypeInteger:   "integer",
	TypeReal:      "real",
	TypeText:      "text",
	TypeBlob:      "blob",
	TypeBoolean:   "boolean",
	TypeTimestamp: "timestamp",
}

// String returns the SQL name of the type, as rendered in DDL.
func (t Type) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return "invalid"
}

// Valid reports whether t is one of the declared storage types.
func (t Type) Valid() bool {
	return t >= TypeInteger && t <= TypeTimestamp
}
