package schema

// Field is a canonical inventory attribute.
type Field int

const (
	FieldProject Field = iota
	FieldRooms
	FieldArea
	FieldPrice
	FieldStatus
	FieldFloor

	numFields
)

// Fields lists every canonical field in matching priority order.
var Fields = []Field{FieldProject, FieldRooms, FieldArea, FieldPrice, FieldStatus, FieldFloor}

func (f Field) String() string {
	switch f {
	case FieldProject:
		return "project"
	case FieldRooms:
		return "rooms"
	case FieldArea:
		return "area"
	case FieldPrice:
		return "price"
	case FieldStatus:
		return "status"
	case FieldFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// Unmapped marks a field without a column.
const Unmapped = -1

// Mapping holds the column index of every canonical field, Unmapped when absent.
type Mapping [numFields]int

// EmptyMapping returns a mapping with every field unmapped.
func EmptyMapping() Mapping {
	var m Mapping
	for i := range m {
		m[i] = Unmapped
	}
	return m
}

// Column returns the column index of a field.
func (m Mapping) Column(f Field) int {
	return m[f]
}

// Has reports whether a field is mapped.
func (m Mapping) Has(f Field) bool {
	return m[f] != Unmapped
}

// Count returns the number of mapped fields.
func (m Mapping) Count() int {
	n := 0
	for _, c := range m {
		if c != Unmapped {
			n++
		}
	}
	return n
}

// Columns returns the field name to column index view of the mapping.
func (m Mapping) Columns() map[string]int {
	out := make(map[string]int, len(Fields))
	for _, f := range Fields {
		if m.Has(f) {
			out[f.String()] = m[f]
		}
	}
	return out
}
