// Package objmap converts between Go values and tag trees in both
// directions.
//
// # Usage
//
//	type Player struct {
//		ID   int64    `tagmap:"id"`
//		Tags []string `tagmap:"tags,omitdefault"`
//	}
//
//	// Serialize a record to a compound tag
//	node, err := objmap.ToTag(Player{ID: 42})
//
//	// Deserialize a compound tag into a fresh record
//	player, err := objmap.As[Player](node)
//
//	// Populate an existing record in place
//	err = objmap.Fill(node, &player)
//
// Participation is opt-in: only fields carrying a `tagmap` struct tag are
// mapped in either direction. Members that serialize to nothing (empty
// collections, records whose every member elides) are omitted from their
// parent compound rather than emitted empty, and members absent from an
// incoming compound are left at their zero value.
//
// Each call is a pure function of its inputs; per-type introspection
// results are cached populate-once and shared, so concurrent calls on
// disjoint values are safe.
//
// # Related Packages
//
//   - github.com/tagmap-io/tagmap/tag - the tag-tree node type
//   - github.com/tagmap-io/tagmap/dump - human-readable tree rendering
package objmap
