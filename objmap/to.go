package objmap

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/tagmap-io/tagmap/tag"
)

// ToTag converts a record value to a compound tag tree.
//
// v must be non-nil and must map to a compound root: a value that maps to
// a bare scalar, or whose every member elides, is an error. Pre-built
// *tag.Node values pass through unchanged.
func ToTag(v interface{}, opts ...Option) (*tag.Node, error) {
	cfg := newConfig(opts)
	if v == nil {
		return nil, &MarshalError{Message: "value cannot be nil"}
	}
	visited := make(map[uintptr]string)
	node, err := toTagValue(reflect.ValueOf(v), "", 0, visited, cfg)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, &MarshalError{Message: "value produced no tag"}
	}
	if node.Kind != tag.KindCompound {
		return nil, &MarshalError{Message: fmt.Sprintf("root tag is %s, not Compound", node.Kind)}
	}
	return node.ClearName(), nil
}

// toTagValue converts one value to a tag node. A nil node with a nil error
// means "no tag produced": the containing member is elided, never a hard
// failure. Strategy order: pass-through, scalar, collection, record.
func toTagValue(val reflect.Value, path string, depth int, visited map[uintptr]string, cfg *config) (*tag.Node, error) {
	if cfg.depthExceeded(depth) {
		return nil, &MarshalError{FieldPath: path, Message: "max depth exceeded"}
	}
	if !val.IsValid() {
		return nil, nil
	}
	typ := val.Type()

	// Pre-built tags pass through unchanged; the caller renames them.
	if typ == nodeType {
		if val.IsNil() {
			return nil, nil
		}
		return val.Interface().(*tag.Node), nil
	}
	if typ == nodeType.Elem() {
		n := val.Interface().(tag.Node)
		return &n, nil
	}

	switch val.Kind() {
	case reflect.Interface:
		if val.IsNil() {
			return nil, nil
		}
		return toTagValue(val.Elem(), path, depth, visited, cfg)

	case reflect.Ptr:
		if val.IsNil() {
			return nil, nil
		}
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, path),
			}
		}
		visited[ptrAddr] = path
		node, err := toTagValue(val.Elem(), path, depth, visited, cfg)
		delete(visited, ptrAddr)
		return node, err
	}

	switch infoOf(typ).shape {
	case shapeScalar:
		node, _ := scalarToTag(val)
		return node, nil
	case shapeSequence:
		return sequenceToTag(val, path, depth, visited, cfg)
	case shapeMapping:
		return mappingToTag(val, path, depth, visited, cfg)
	case shapeRecord:
		return recordToTag(val, path, depth, visited, cfg)
	}

	// No strategy applies. The member is silently elided.
	return nil, nil
}

func sequenceToTag(val reflect.Value, path string, depth int, visited map[uintptr]string, cfg *config) (*tag.Node, error) {
	length := val.Len()
	// Empty sequences vanish rather than appear as empty lists.
	if length == 0 {
		return nil, nil
	}

	if val.Kind() == reflect.Slice {
		slicePtr := val.Pointer()
		if prevPath, seen := visited[slicePtr]; seen {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, path),
			}
		}
		visited[slicePtr] = path
		defer delete(visited, slicePtr)
	}

	list := tag.NewList()
	for i := 0; i < length; i++ {
		child, err := toTagValue(val.Index(i), indexPath(path, i), depth+1, visited, cfg)
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		list.Append(child)
	}
	return list, nil
}

func mappingToTag(val reflect.Value, path string, depth int, visited map[uintptr]string, cfg *config) (*tag.Node, error) {
	// Only string keys translate; anything else is silently
	// untranslatable and the member is omitted.
	if val.Type().Key().Kind() != reflect.String {
		return nil, nil
	}
	if val.IsNil() || val.Len() == 0 {
		return nil, nil
	}

	mapPtr := val.Pointer()
	if prevPath, seen := visited[mapPtr]; seen {
		return nil, &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, path),
		}
	}
	visited[mapPtr] = path
	defer delete(visited, mapPtr)

	// Go maps are unordered; children are emitted in sorted key order so
	// repeated serialization is stable.
	keys := val.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	comp := tag.NewCompound()
	for _, key := range keys {
		name := key.String()
		child, err := toTagValue(val.MapIndex(key), childPath(path, name), depth+1, visited, cfg)
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		comp.Put(child.WithName(name))
	}
	if comp.Len() == 0 {
		return nil, nil
	}
	return comp, nil
}

func recordToTag(val reflect.Value, path string, depth int, visited map[uintptr]string, cfg *config) (*tag.Node, error) {
	comp := tag.NewCompound()
	for _, fi := range infoOf(val.Type()).fields {
		fieldVal := val.FieldByIndex(fi.index)
		if fi.omitDefault && isDefault(fieldVal) {
			continue
		}
		child, err := toTagValue(fieldVal, childPath(path, fi.name), depth+1, visited, cfg)
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		comp.Put(child.WithName(fi.name))
	}
	// Records whose every member elides vanish; emptiness propagates
	// transitively to the parent.
	if comp.Len() == 0 {
		return nil, nil
	}
	return comp, nil
}

func childPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
