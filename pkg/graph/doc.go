// Package graph provides the serialized form of a positioned kinship layout.
//
// This package defines the wire format shared by the JSON export, the HTTP
// API, the artifact cache and every renderer. Renderers never walk a live
// [layout.Layout]; they draw a [Layout] from this package, so a cached
// document renders exactly like a fresh one.
//
// # Architecture
//
//   - pkg/kinship.Graph: the people and their relations
//   - pkg/layout.Layout: the node tree and its positions (computation)
//   - [Layout]: the flattened, positioned document (this package)
//
// Use [FromLayout] to flatten a positioned layout:
//
//	if err := l.Position(cfg); err != nil {
//	    return err
//	}
//	doc, err := graph.FromLayout(l)
//
// # Core Types
//
//   - [Box]: one person's box with its text lines and markers
//   - [Group]: spouses drawn side by side, joined by a spouse line
//   - [Edge]: a parent to child line between connector points
//   - [Path]: the relationship chain of a connection layout
//
// # Serialization
//
//	data, _ := graph.MarshalLayout(doc)
//	doc, err := graph.UnmarshalLayout(data)
//	graph.WriteLayoutFile(doc, "tree.json")
//
// # Concurrency
//
// A Layout is a plain value. It is safe for concurrent reads.
package graph
