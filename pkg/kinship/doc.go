// Package kinship provides the read-only kinship graph and the pure
// traversal functions the layout engine and the relationship namer are built
// on.
//
// # Overview
//
// A [Graph] maps person ids to [Person] records. Records carry ordered
// parent, child and spouse id lists; the package assumes those lists are
// mutually consistent and never modifies them. A Graph is safe for concurrent
// reads, so several layouts may share one.
//
// # Traversal
//
// The traversal methods derive relatives in a fixed, reproducible order:
//
//   - [Graph.ParentsSortedByGender]: parents with the male parent first
//   - [Graph.ChildrenIncludingStep]: children of one-parent records plus
//     children shared with a spouse
//   - [Graph.Siblings]: everyone with exactly the same parent set
//   - [Graph.ShortestPath]: breadth-first search over child, parent and
//     spouse hops
//
// # Names
//
// Display names follow the GEDCOM convention of wrapping the surname in
// slashes ("John /Smith/"). [DisplayName], [Surname] and [SplitName] split
// them.
package kinship
