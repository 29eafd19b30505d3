package schema

import "fmt"

// Kind is the closed enumeration of supported document field kinds.
type Kind string

const (
	KindString     Kind = "string"
	KindEmail      Kind = "email"
	KindURL        Kind = "url"
	KindInt        Kind = "int"
	KindFloat      Kind = "float"
	KindDecimal    Kind = "decimal"
	KindBool       Kind = "bool"
	KindDateTime   Kind = "datetime"
	KindObjectID   Kind = "objectid"
	KindReference  Kind = "reference"
	KindEmbedded   Kind = "embedded"
	KindList       Kind = "list"
	KindSortedList Kind = "sortedlist"
	KindMap        Kind = "map"
	KindFile       Kind = "file"
	KindImage      Kind = "image"
)

// Kinds returns every supported kind in declaration order. Generator
// construction iterates this to verify its dispatch table is exhaustive.
func Kinds() []Kind {
	return []Kind{
		KindString, KindEmail, KindURL, KindInt, KindFloat, KindDecimal,
		KindBool, KindDateTime, KindObjectID, KindReference, KindEmbedded,
		KindList, KindSortedList, KindMap, KindFile, KindImage,
	}
}

// ParseKind validates a kind tag read from an external definition.
func ParseKind(tag string) (Kind, error) {
	k := Kind(tag)
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("schema: unknown field kind %q", tag)
}

// Normalize folds alias kinds onto the kind that drives form generation.
// A sorted list binds like a list, an image like a file.
func (k Kind) Normalize() Kind {
	switch k {
	case KindSortedList:
		return KindList
	case KindImage:
		return KindFile
	default:
		return k
	}
}

// Container reports whether the kind wraps an element kind.
func (k Kind) Container() bool {
	switch k.Normalize() {
	case KindList, KindMap:
		return true
	default:
		return false
	}
}
