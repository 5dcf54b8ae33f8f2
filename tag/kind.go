package tag

import "fmt"

// Kind identifies the payload carried by a Node.
type Kind int

const (
	KindInvalid Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		KindByte:      "Byte",
		KindShort:     "Short",
		KindInt:       "Int",
		KindLong:      "Long",
		KindFloat:     "Float",
		KindDouble:    "Double",
		KindByteArray: "ByteArray",
		KindString:    "String",
		KindList:      "List",
		KindCompound:  "Compound",
		KindIntArray:  "IntArray",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Byte":      KindByte,
		"Short":     KindShort,
		"Int":       KindInt,
		"Long":      KindLong,
		"Float":     KindFloat,
		"Double":    KindDouble,
		"ByteArray": KindByteArray,
		"String":    KindString,
		"List":      KindList,
		"Compound":  KindCompound,
		"IntArray":  KindIntArray,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		KindByte,
		KindShort,
		KindInt,
		KindLong,
		KindFloat,
		KindDouble,
		KindByteArray,
		KindString,
		KindList,
		KindCompound,
		KindIntArray,
	}
}

// IsLeaf reports whether nodes of this kind carry a value rather than
// children.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindList, KindCompound:
		return false
	default:
		return true
	}
}

// IsInteger reports whether the kind stores an integer bit pattern.
func (k Kind) IsInteger() bool {
	switch k {
	case KindByte, KindShort, KindInt, KindLong:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the kind stores a floating point value.
func (k Kind) IsFloat() bool {
	return k == KindFloat || k == KindDouble
}

// Bits returns the storage width of an integer or float kind.
func (k Kind) Bits() int {
	switch k {
	case KindByte:
		return 8
	case KindShort:
		return 16
	case KindInt, KindFloat:
		return 32
	case KindLong, KindDouble:
		return 64
	}
	return 0
}
