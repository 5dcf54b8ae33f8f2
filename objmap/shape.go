package objmap

import (
	"reflect"

	"github.com/tagmap-io/tagmap/tag"
)

// shape is the closed classification a type is dispatched on, computed once
// per type and cached. Every value takes exactly one branch in both walker
// directions.
type shape int

const (
	shapeUnsupported shape = iota
	shapeTag
	shapeScalar
	shapeSequence
	shapeMapping
	shapeRecord
)

func (s shape) String() string {
	switch s {
	case shapeTag:
		return "tag"
	case shapeScalar:
		return "scalar"
	case shapeSequence:
		return "sequence"
	case shapeMapping:
		return "mapping"
	case shapeRecord:
		return "record"
	}
	return "unsupported"
}

var nodeType = reflect.TypeOf((*tag.Node)(nil))

// shapeOf classifies a non-pointer, non-interface type. Scalar wins over
// sequence so that []byte and []int32 land on the array leaf kinds rather
// than on List.
func shapeOf(t reflect.Type) shape {
	if t == nodeType {
		return shapeTag
	}
	if scalarKindOf(t) != tag.KindInvalid {
		return shapeScalar
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return shapeSequence
	case reflect.Map:
		return shapeMapping
	case reflect.Struct:
		return shapeRecord
	}
	return shapeUnsupported
}
