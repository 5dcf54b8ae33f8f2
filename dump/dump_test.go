package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tagmap-io/tagmap/tag"
)

func TestSdump(t *testing.T) {
	root := tag.NewCompound().
		Put(tag.FromLong(42).WithName("id")).
		Put(tag.NewList(tag.FromString("a"), tag.FromString("b")).WithName("tags")).
		Put(tag.FromInts([]int32{1, 2}).WithName("xs")).
		Put(tag.FromBytes([]byte{9, 9, 9}).WithName("blob")).
		Put(tag.FromDouble(2.5).WithName("ratio")).
		Put(tag.FromBool(true).WithName("on"))

	want := `Compound: 6 entries
  Long("id"): 42
  List("tags"): 2 entries
    String: "a"
    String: "b"
  IntArray("xs"): [1, 2]
  ByteArray("blob"): 3 bytes
  Double("ratio"): 2.5
  Byte("on"): 1
`
	assert.Equal(t, want, Sdump(root))
}

func TestSdumpSingleEntry(t *testing.T) {
	root := tag.NewCompound().Put(tag.FromShort(7).WithName("n"))
	assert.Equal(t, "Compound: 1 entry\n  Short(\"n\"): 7\n", Sdump(root))
}

func TestSdumpNil(t *testing.T) {
	assert.Equal(t, "<nil>\n", Sdump(nil))
}

func TestDumpIndentOption(t *testing.T) {
	root := tag.NewCompound().Put(tag.FromByte(1).WithName("b"))
	got := Sdump(root, WithIndent("\t"))
	assert.Contains(t, got, "\tByte(\"b\"): 1\n")
}

func TestDumpColorOff(t *testing.T) {
	// Forced-off color must produce plain text even if the writer would
	// have been detected as a terminal.
	root := tag.NewCompound().Put(tag.FromString("x").WithName("s"))
	got := Sdump(root, WithColor(false))
	assert.NotContains(t, got, "\x1b[")
}
