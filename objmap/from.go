package objmap

import (
	"fmt"
	"reflect"

	"github.com/tagmap-io/tagmap/tag"
)

// FromTag converts a tag tree to a value. v must be a non-nil pointer; the
// pointee starts from its zero value, and members absent from the tree keep
// that default. Kind mismatches between tree and destination are fatal.
func FromTag(node *tag.Node, v interface{}, opts ...Option) error {
	cfg := newConfig(opts)
	if node == nil {
		return &UnmarshalError{Message: "tag cannot be nil"}
	}
	val, err := targetOf(v)
	if err != nil {
		return err
	}
	return fromTagValue(node, val, "", 0, cfg)
}

// As converts a tag tree to a fresh value of type T.
func As[T any](node *tag.Node, opts ...Option) (T, error) {
	var out T
	err := FromTag(node, &out, opts...)
	return out, err
}

// Fill populates an existing value in place from a tag tree without
// replacing it: collections are cleared and repopulated, records run the
// member loop against the existing instance, scalar targets are left
// untouched. v must be a non-nil pointer so the mutation is observable.
func Fill(node *tag.Node, v interface{}, opts ...Option) error {
	cfg := newConfig(opts)
	if node == nil {
		return &UnmarshalError{Message: "tag cannot be nil"}
	}
	val, err := targetOf(v)
	if err != nil {
		return err
	}
	return fillValue(node, val, "", 0, cfg)
}

func targetOf(v interface{}) (reflect.Value, error) {
	if v == nil {
		return reflect.Value{}, &UnmarshalError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr {
		return reflect.Value{}, &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return reflect.Value{}, &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	return val.Elem(), nil
}

func fromTagValue(node *tag.Node, val reflect.Value, path string, depth int, cfg *config) error {
	if cfg.depthExceeded(depth) {
		return &UnmarshalError{FieldPath: path, Message: "max depth exceeded"}
	}
	if node == nil {
		return &UnmarshalError{FieldPath: path, Message: "tag node is nil"}
	}
	typ := val.Type()

	// Symmetric pass-through with the serialize side: a tag destination
	// takes a name-cleared clone. Clearing the name on the source node
	// would break later lookups in its parent compound.
	if typ == nodeType {
		val.Set(reflect.ValueOf(node.Clone().ClearName()))
		return nil
	}
	if typ == nodeType.Elem() {
		val.Set(reflect.ValueOf(*node.Clone().ClearName()))
		return nil
	}

	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return fromTagValue(node, val.Elem(), path, depth, cfg)
	}

	switch infoOf(typ).shape {
	case shapeScalar:
		return scalarFromTag(node, val, path)
	case shapeSequence:
		return sequenceFromTag(node, val, path, depth, cfg)
	case shapeMapping:
		return mappingFromTag(node, val, path, depth, cfg, false)
	case shapeRecord:
		return recordFromTag(node, val, path, depth, cfg)
	}
	return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("unsupported destination type: %s", typ)}
}

func sequenceFromTag(node *tag.Node, val reflect.Value, path string, depth int, cfg *config) error {
	if node.Kind != tag.KindList {
		return &TypeError{FieldPath: path, Expected: tag.KindList.String(), Actual: node.Kind.String()}
	}
	length := node.Len()
	typ := val.Type()
	if typ.Kind() == reflect.Array {
		if val.Len() != length {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("array length mismatch: expected %d, got %d", val.Len(), length),
			}
		}
	} else {
		val.Set(reflect.MakeSlice(typ, length, length))
	}
	for i := 0; i < length; i++ {
		if err := fromTagValue(node.Children[i], val.Index(i), indexPath(path, i), depth+1, cfg); err != nil {
			return err
		}
	}
	return nil
}

// mappingFromTag converts a compound into a string-keyed map. With inPlace
// set, an existing map is cleared key by key and repopulated so the
// caller's map keeps its identity.
func mappingFromTag(node *tag.Node, val reflect.Value, path string, depth int, cfg *config, inPlace bool) error {
	if node.Kind != tag.KindCompound {
		return &TypeError{FieldPath: path, Expected: tag.KindCompound.String(), Actual: node.Kind.String()}
	}
	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("map keys must be strings, got %s", typ.Key()),
		}
	}
	if inPlace && !val.IsNil() {
		for _, key := range val.MapKeys() {
			val.SetMapIndex(key, reflect.Value{})
		}
	} else {
		val.Set(reflect.MakeMapWithSize(typ, node.Len()))
	}
	for _, child := range node.Children {
		elem := reflect.New(typ.Elem()).Elem()
		if err := fromTagValue(child, elem, childPath(path, child.Name), depth+1, cfg); err != nil {
			return err
		}
		key := reflect.New(typ.Key()).Elem()
		key.SetString(child.Name)
		val.SetMapIndex(key, elem)
	}
	return nil
}

// recordFromTag runs the member loop against val, which is either a fresh
// zero instance (deserialize) or the caller's existing one (fill). Members
// absent from the compound, or carrying no directive, are never touched.
func recordFromTag(node *tag.Node, val reflect.Value, path string, depth int, cfg *config) error {
	if node.Kind != tag.KindCompound {
		return &TypeError{FieldPath: path, Expected: tag.KindCompound.String(), Actual: node.Kind.String()}
	}
	for _, fi := range infoOf(val.Type()).fields {
		child := node.Get(fi.name)
		if child == nil {
			continue
		}
		fieldVal := val.FieldByIndex(fi.index)
		fieldPath := childPath(path, fi.name)
		if fi.fillOnly {
			if err := fillValue(child, fieldVal, fieldPath, depth+1, cfg); err != nil {
				return err
			}
			continue
		}
		if err := fromTagValue(child, fieldVal, fieldPath, depth+1, cfg); err != nil {
			return err
		}
	}
	return nil
}

// fillValue populates an existing value from a node without replacing it.
// Scalars have no sub-structure and are left untouched; collections are
// cleared and repopulated in place; records run the member loop against
// the existing instance.
func fillValue(node *tag.Node, val reflect.Value, path string, depth int, cfg *config) error {
	if cfg.depthExceeded(depth) {
		return &UnmarshalError{FieldPath: path, Message: "max depth exceeded"}
	}
	typ := val.Type()
	if typ == nodeType {
		val.Set(reflect.ValueOf(node.Clone().ClearName()))
		return nil
	}
	if typ == nodeType.Elem() {
		val.Set(reflect.ValueOf(*node.Clone().ClearName()))
		return nil
	}
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return fillValue(node, val.Elem(), path, depth, cfg)
	}
	switch infoOf(typ).shape {
	case shapeScalar:
		return nil
	case shapeSequence:
		return sequenceFill(node, val, path, depth, cfg)
	case shapeMapping:
		return mappingFromTag(node, val, path, depth, cfg, true)
	case shapeRecord:
		return recordFromTag(node, val, path, depth, cfg)
	}
	return nil
}

// sequenceFill repopulates a slice in place: truncate to zero, then append,
// reusing the backing array when capacity allows.
func sequenceFill(node *tag.Node, val reflect.Value, path string, depth int, cfg *config) error {
	if node.Kind != tag.KindList {
		return &TypeError{FieldPath: path, Expected: tag.KindList.String(), Actual: node.Kind.String()}
	}
	typ := val.Type()
	if typ.Kind() == reflect.Array || val.IsNil() {
		return sequenceFromTag(node, val, path, depth, cfg)
	}
	val.SetLen(0)
	for i, child := range node.Children {
		elem := reflect.New(typ.Elem()).Elem()
		if err := fromTagValue(child, elem, indexPath(path, i), depth+1, cfg); err != nil {
			return err
		}
		val.Set(reflect.Append(val, elem))
	}
	return nil
}
