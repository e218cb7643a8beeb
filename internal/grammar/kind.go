package grammar

// ElementKind identifies one of the structural element categories tracked
// in a file profile.
type ElementKind int

const (
	KindClass ElementKind = iota
	KindFunction
	KindRecord
	KindImplementation
)

// Kinds returns all element kinds in their canonical ordering. Report and
// suggestion output iterate kinds in this order.
func Kinds() []ElementKind {
	return []ElementKind{KindClass, KindFunction, KindRecord, KindImplementation}
}

// String returns the human-readable kind name used in suggestions and
// rendered reports.
func (k ElementKind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindFunction:
		return "Function"
	case KindRecord:
		return "Struct"
	case KindImplementation:
		return "Implementation"
	default:
		return "Unknown"
	}
}
