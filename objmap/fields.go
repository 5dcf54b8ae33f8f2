package objmap

import (
	"reflect"
	"strings"
	"sync"
)

// TagKey is the struct tag key carrying a field's mapping directive.
//
// Participation is opt-in: only fields with a tagmap tag take part in
// either direction. The first element is the exported name (empty keeps
// the field's own name, "-" opts out); the options are "omitdefault"
// (elide when the value equals the default for its kind) and "fill"
// (never replace on deserialize, mutate the current value in place).
//
//	type Player struct {
//		ID    int64             `tagmap:"id"`
//		Tags  []string          `tagmap:"tags,omitdefault"`
//		Stats map[string]int32  `tagmap:"stats,fill"`
//		note  string            // no directive: never mapped
//	}
const TagKey = "tagmap"

// fieldInfo is the resolved mapping directive of one record member.
type fieldInfo struct {
	index       []int
	name        string
	omitDefault bool
	fillOnly    bool
	typ         reflect.Type
}

// typeInfo caches what the walkers need about one type: its shape and, for
// records, the resolved directives. Populated once per type, then shared
// read-only across goroutines.
type typeInfo struct {
	shape  shape
	fields []fieldInfo // shapeRecord only
}

var typeCache sync.Map // reflect.Type -> *typeInfo

func infoOf(t reflect.Type) *typeInfo {
	if ti, ok := typeCache.Load(t); ok {
		return ti.(*typeInfo)
	}
	ti := &typeInfo{shape: shapeOf(t)}
	if ti.shape == shapeRecord {
		ti.fields = recordFields(t)
	}
	actual, _ := typeCache.LoadOrStore(t, ti)
	return actual.(*typeInfo)
}

// recordFields enumerates the mappable members of a record type in
// declaration order. Fields without a directive are invisible to both
// serialization and deserialization.
func recordFields(t reflect.Type) []fieldInfo {
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		dir, ok := parseDirective(field.Tag)
		if !ok {
			continue
		}
		if dir.name == "" {
			dir.name = field.Name
		}
		fields = append(fields, fieldInfo{
			index:       field.Index,
			name:        dir.name,
			omitDefault: dir.omitDefault,
			fillOnly:    dir.fillOnly,
			typ:         field.Type,
		})
	}
	return fields
}

type directive struct {
	name        string
	omitDefault bool
	fillOnly    bool
}

func parseDirective(st reflect.StructTag) (directive, bool) {
	raw, ok := st.Lookup(TagKey)
	if !ok {
		return directive{}, false
	}
	parts := strings.Split(raw, ",")
	dir := directive{name: strings.TrimSpace(parts[0])}
	if dir.name == "-" {
		return directive{}, false
	}
	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "omitdefault":
			dir.omitDefault = true
		case "fill":
			dir.fillOnly = true
		}
	}
	return dir, true
}

// isDefault reports whether a value equals the default for its kind.
// Only numeric kinds and bool have an elidable default; strings, arrays,
// records and collections never default-elide.
func isDefault(val reflect.Value) bool {
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return val.Float() == 0
	case reflect.Bool:
		return !val.Bool()
	}
	return false
}
