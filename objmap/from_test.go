package objmap

import (
	"testing"

	"github.com/tagmap-io/tagmap/tag"
)

func TestFromTag_Basic(t *testing.T) {
	type weapon struct {
		ID      int64   `tagmap:"id"`
		Name    string  `tagmap:"name"`
		Damage  float32 `tagmap:"damage"`
		Enchant bool    `tagmap:"enchanted"`
	}
	node := tag.NewCompound().
		Put(tag.FromLong(42).WithName("id")).
		Put(tag.FromString("sword").WithName("name")).
		Put(tag.FromFloat(7.5).WithName("damage")).
		Put(tag.FromBool(true).WithName("enchanted"))

	var w weapon
	if err := FromTag(node, &w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.ID != 42 || w.Name != "sword" || w.Damage != 7.5 || !w.Enchant {
		t.Errorf("unexpected result: %+v", w)
	}
}

func TestAs(t *testing.T) {
	type rec struct {
		N int32 `tagmap:"n"`
	}
	node := tag.NewCompound().Put(tag.FromInt(7).WithName("n"))
	got, err := As[rec](node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.N != 7 {
		t.Errorf("expected N=7, got %d", got.N)
	}
}

func TestFromTag_MissingKeysLeaveDefaults(t *testing.T) {
	type rec struct {
		A int64    `tagmap:"a"`
		B string   `tagmap:"b"`
		C []string `tagmap:"c"`
	}
	node := tag.NewCompound().Put(tag.FromLong(1).WithName("a"))
	var r rec
	if err := FromTag(node, &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.A != 1 {
		t.Errorf("expected A=1, got %d", r.A)
	}
	if r.B != "" || r.C != nil {
		t.Errorf("expected absent members at their defaults, got %+v", r)
	}
}

func TestFromTag_UnannotatedNeverTouched(t *testing.T) {
	type rec struct {
		Kept     int64 `tagmap:"kept"`
		Untagged int64
	}
	// A key matching the untagged field's name must not reach it.
	node := tag.NewCompound().
		Put(tag.FromLong(1).WithName("kept")).
		Put(tag.FromLong(99).WithName("Untagged"))
	var r rec
	if err := FromTag(node, &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Untagged != 0 {
		t.Errorf("expected untagged member to stay at its default, got %d", r.Untagged)
	}
}

func TestFromTag_NestedAndCollections(t *testing.T) {
	type point struct {
		X int32 `tagmap:"x"`
		Y int32 `tagmap:"y"`
	}
	type rec struct {
		Points []point          `tagmap:"points"`
		Scores map[string]int32 `tagmap:"scores"`
		Blob   []byte           `tagmap:"blob"`
	}
	node := tag.NewCompound().
		Put(tag.NewList(
			tag.NewCompound().Put(tag.FromInt(1).WithName("x")).Put(tag.FromInt(2).WithName("y")),
			tag.NewCompound().Put(tag.FromInt(3).WithName("x")).Put(tag.FromInt(4).WithName("y")),
		).WithName("points")).
		Put(tag.NewCompound().
			Put(tag.FromInt(10).WithName("a")).
			Put(tag.FromInt(20).WithName("b")).
			WithName("scores")).
		Put(tag.FromBytes([]byte{1, 2}).WithName("blob"))

	var r rec
	if err := FromTag(node, &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Points) != 2 || r.Points[1] != (point{3, 4}) {
		t.Errorf("unexpected points: %+v", r.Points)
	}
	if len(r.Scores) != 2 || r.Scores["a"] != 10 || r.Scores["b"] != 20 {
		t.Errorf("unexpected scores: %+v", r.Scores)
	}
	if len(r.Blob) != 2 || r.Blob[0] != 1 {
		t.Errorf("unexpected blob: %v", r.Blob)
	}
}

func TestFromTag_PointerFieldAllocated(t *testing.T) {
	type inner struct {
		N int64 `tagmap:"n"`
	}
	type rec struct {
		Sub *inner `tagmap:"sub"`
	}
	node := tag.NewCompound().
		Put(tag.NewCompound().Put(tag.FromLong(5).WithName("n")).WithName("sub"))
	var r rec
	if err := FromTag(node, &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Sub == nil || r.Sub.N != 5 {
		t.Errorf("expected allocated nested record, got %+v", r.Sub)
	}
}

func TestFromTag_PassThroughTarget(t *testing.T) {
	type rec struct {
		Extra *tag.Node `tagmap:"extra"`
	}
	node := tag.NewCompound().Put(tag.FromString("raw").WithName("extra"))
	var r rec
	if err := FromTag(node, &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Extra == nil || r.Extra.Str != "raw" {
		t.Fatalf("expected pass-through tag, got %v", r.Extra)
	}
	if r.Extra.Name != "" {
		t.Errorf("expected pass-through tag name to be cleared, got %q", r.Extra.Name)
	}
	// The source tree keeps its child name so repeated lookups still work.
	if node.Get("extra") == nil {
		t.Error("expected source tree to be left intact")
	}
}

func TestFromTag_KindMismatchFatal(t *testing.T) {
	type withList struct {
		Xs []int64 `tagmap:"xs"`
	}
	type withScalar struct {
		N int64 `tagmap:"n"`
	}
	type withMap struct {
		M map[string]int64 `tagmap:"m"`
	}

	tests := []struct {
		name string
		node *tag.Node
		dst  interface{}
	}{
		{
			"scalar tag for list member",
			tag.NewCompound().Put(tag.FromLong(1).WithName("xs")),
			&withList{},
		},
		{
			"list tag for scalar member",
			tag.NewCompound().Put(tag.NewList(tag.FromLong(1)).WithName("n")),
			&withScalar{},
		},
		{
			"scalar tag for map member",
			tag.NewCompound().Put(tag.FromLong(1).WithName("m")),
			&withMap{},
		},
		{
			"list root for record",
			tag.NewList(tag.FromLong(1)),
			&withScalar{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := FromTag(tc.node, tc.dst)
			if err == nil {
				t.Fatal("expected fatal type error")
			}
			if _, ok := err.(*TypeError); !ok {
				t.Errorf("expected *TypeError, got %T: %v", err, err)
			}
		})
	}
}

func TestFromTag_DestinationErrors(t *testing.T) {
	node := tag.NewCompound()
	if err := FromTag(node, nil); err == nil {
		t.Error("expected error for nil destination")
	}
	var r struct{}
	if err := FromTag(node, r); err == nil {
		t.Error("expected error for non-pointer destination")
	}
	if err := FromTag(nil, &r); err == nil {
		t.Error("expected error for nil tag")
	}
	var pr *struct{}
	if err := FromTag(node, pr); err == nil {
		t.Error("expected error for nil pointer destination")
	}
}
