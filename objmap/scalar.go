package objmap

import (
	"reflect"

	"github.com/tagmap-io/tagmap/tag"
)

// scalarKindOf maps a Go type to the leaf tag kind that stores it, or
// KindInvalid when the type has no scalar mapping. Signed and unsigned
// types of equal width share one kind; the destination type decides how
// the stored bits are read back. Types with no mapping are not an error:
// the caller falls through to collection or record handling.
func scalarKindOf(t reflect.Type) tag.Kind {
	switch t.Kind() {
	case reflect.Int8, reflect.Uint8, reflect.Bool:
		return tag.KindByte
	case reflect.Int16, reflect.Uint16:
		return tag.KindShort
	case reflect.Int32, reflect.Uint32:
		return tag.KindInt
	case reflect.Int64, reflect.Uint64, reflect.Int, reflect.Uint:
		return tag.KindLong
	case reflect.Float32:
		return tag.KindFloat
	case reflect.Float64:
		return tag.KindDouble
	case reflect.String:
		return tag.KindString
	case reflect.Slice:
		switch t.Elem().Kind() {
		case reflect.Uint8:
			return tag.KindByteArray
		case reflect.Int32:
			return tag.KindIntArray
		}
	}
	return tag.KindInvalid
}

// signExtend stores an unsigned value as the signed bit pattern at the
// kind's width. Lossless: the destination recovers the original bits.
func signExtend(u uint64, k tag.Kind) int64 {
	switch k {
	case tag.KindByte:
		return int64(int8(uint8(u)))
	case tag.KindShort:
		return int64(int16(uint16(u)))
	case tag.KindInt:
		return int64(int32(uint32(u)))
	}
	return int64(u)
}

// truncInt narrows a stored value to the kind's width, sign-extended.
func truncInt(i int64, k tag.Kind) int64 {
	switch k {
	case tag.KindByte:
		return int64(int8(i))
	case tag.KindShort:
		return int64(int16(i))
	case tag.KindInt:
		return int64(int32(i))
	}
	return i
}

// reinterpretUint reads the stored bit pattern back as unsigned at the
// kind's width.
func reinterpretUint(i int64, k tag.Kind) uint64 {
	switch k {
	case tag.KindByte:
		return uint64(uint8(i))
	case tag.KindShort:
		return uint64(uint16(i))
	case tag.KindInt:
		return uint64(uint32(i))
	}
	return uint64(i)
}

// scalarToTag converts a scalar-shaped value to a leaf node. The second
// return is false when the value's type has no scalar mapping.
func scalarToTag(val reflect.Value) (*tag.Node, bool) {
	kind := scalarKindOf(val.Type())
	if kind == tag.KindInvalid {
		return nil, false
	}
	switch val.Kind() {
	case reflect.Bool:
		return tag.FromBool(val.Bool()), true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &tag.Node{Kind: kind, Int: val.Int()}, true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &tag.Node{Kind: kind, Int: signExtend(val.Uint(), kind)}, true

	case reflect.Float32:
		return tag.FromFloat(float32(val.Float())), true

	case reflect.Float64:
		return tag.FromDouble(val.Float()), true

	case reflect.String:
		return tag.FromString(val.String()), true

	case reflect.Slice:
		// Array leaves serialize even when empty and never default-elide.
		if kind == tag.KindByteArray {
			return tag.FromBytes(append([]byte{}, val.Bytes()...)), true
		}
		ints := make([]int32, val.Len())
		for i := range ints {
			ints[i] = int32(val.Index(i).Int())
		}
		return tag.FromInts(ints), true
	}
	return nil, false
}

// scalarFromTag populates a scalar-shaped destination from a leaf node.
// The node's kind must match the kind the destination type declares; the
// destination's signedness selects the bit reinterpretation.
func scalarFromTag(n *tag.Node, val reflect.Value, path string) error {
	want := scalarKindOf(val.Type())
	if n.Kind != want {
		return &TypeError{FieldPath: path, Expected: want.String(), Actual: n.Kind.String()}
	}
	switch val.Kind() {
	case reflect.Bool:
		val.SetBool(n.AsBool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		val.SetInt(truncInt(n.Int, n.Kind))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		val.SetUint(reinterpretUint(n.Int, n.Kind))

	case reflect.Float32, reflect.Float64:
		val.SetFloat(n.Float)

	case reflect.String:
		val.SetString(n.Str)

	case reflect.Slice:
		if want == tag.KindByteArray {
			out := reflect.MakeSlice(val.Type(), len(n.Bytes), len(n.Bytes))
			for i, b := range n.Bytes {
				out.Index(i).SetUint(uint64(b))
			}
			val.Set(out)
			break
		}
		out := reflect.MakeSlice(val.Type(), len(n.Ints), len(n.Ints))
		for i, x := range n.Ints {
			out.Index(i).SetInt(int64(x))
		}
		val.Set(out)
	}
	return nil
}
